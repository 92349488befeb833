package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wgraj/famplot/internal/stats"
	"github.com/wgraj/famplot/internal/testutil"
)

func openStore(t *testing.T, dataDir string) *Store {
	t.Helper()
	s, err := Open(context.Background(), Config{DataDir: dataDir, Logger: testutil.NewTestLogger(t)})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_LoadAllTables(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, testutil.SetupDataDir(t))

	for _, tbl := range Tables() {
		t.Run(tbl.Name, func(t *testing.T) {
			require.NoError(t, s.Load(ctx, tbl))

			n, err := s.RowCount(ctx, tbl)
			require.NoError(t, err)
			assert.Positive(t, n)
		})
	}
}

func TestStore_Pairs(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, testutil.SetupDataDir(t))
	require.NoError(t, s.Load(ctx, FamilySizes))

	pairs, err := s.Pairs(ctx, FamilySizes, "sz", "count")
	require.NoError(t, err)
	assert.Equal(t, []Pair{{1, 100}, {2, 10}, {3, 4}, {8, 1}}, pairs)
}

func TestStore_Values(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, testutil.SetupDataDir(t))
	require.NoError(t, s.Load(ctx, ReleaseSizeDiffs))

	all, err := s.Values(ctx, ReleaseSizeDiffs, "size_diff")
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 4, 4, 17, 31, 32, 1000}, all)

	below, err := s.ValuesBelow(ctx, ReleaseSizeDiffs, "size_diff", 32)
	require.NoError(t, err)
	assert.Equal(t, stats.Below(all, 32), below)
}

func TestStore_Observations(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, testutil.SetupDataDir(t))
	require.NoError(t, s.Load(ctx, UseFreq))

	obs, err := s.Observations(ctx)
	require.NoError(t, err)
	require.Len(t, obs, 12)
	assert.Equal(t, stats.Observation{Position: 0, Value: 0.9}, obs[0])
	assert.Equal(t, stats.Observation{Position: 6, Value: 0.01}, obs[11])
}

func TestStore_EmptyTable(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	testutil.WriteCSV(t, dir, NormCoUse.File, "coeff\n")
	s := openStore(t, dir)

	require.NoError(t, s.Load(ctx, NormCoUse))
	values, err := s.Values(ctx, NormCoUse, "coeff")
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestStore_IncompleteRows(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	testutil.WriteCSV(t, dir, FamilySizes.File, "sz,count\n1,100\n2,\n,7\n3,10\n")
	s := openStore(t, dir)

	require.NoError(t, s.Load(ctx, FamilySizes))
	assert.Equal(t, 2, s.Incomplete(FamilySizes))

	pairs, err := s.Pairs(ctx, FamilySizes, "sz", "count")
	require.NoError(t, err)
	assert.Len(t, pairs, 2)
}

func TestStore_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("missing file", func(t *testing.T) {
		s := openStore(t, t.TempDir())
		err := s.Load(ctx, FamilySizes)
		assert.ErrorIs(t, err, ErrMissingInput)
		assert.Contains(t, err.Error(), "family_sizes.csv")
	})

	t.Run("missing column", func(t *testing.T) {
		dir := t.TempDir()
		testutil.WriteCSV(t, dir, FamilySizes.File, "size,count\n1,100\n")
		s := openStore(t, dir)

		err := s.Load(ctx, FamilySizes)
		assert.ErrorIs(t, err, ErrMissingColumn)
		assert.Contains(t, err.Error(), `"sz"`)
	})

	t.Run("non-numeric value", func(t *testing.T) {
		dir := t.TempDir()
		testutil.WriteCSV(t, dir, ConsistencyScores.File, "score\n0.5\nabc\n")
		s := openStore(t, dir)

		err := s.Load(ctx, ConsistencyScores)
		assert.ErrorIs(t, err, ErrMalformedInput)
		assert.Contains(t, err.Error(), `"abc"`)
	})

	t.Run("unreadable file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, CoUse.File), 0755))
		s := openStore(t, dir)

		assert.Error(t, s.Load(ctx, CoUse))
	})

	t.Run("not loaded", func(t *testing.T) {
		s := openStore(t, t.TempDir())
		_, err := s.Values(ctx, ConsistencyScores, "score")
		assert.ErrorIs(t, err, ErrNotLoaded)
	})
}

func TestStore_FileDatabase(t *testing.T) {
	ctx := context.Background()
	dir := testutil.SetupDataDir(t)
	dbPath := filepath.Join(t.TempDir(), "famplot.duckdb")

	s, err := Open(ctx, Config{DataDir: dir, Path: dbPath})
	require.NoError(t, err)
	require.NoError(t, s.Load(ctx, CoUse))
	require.NoError(t, s.Close())

	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "database file should exist")
}

func TestTableForFile(t *testing.T) {
	tbl, ok := TableForFile("use_freq.csv")
	assert.True(t, ok)
	assert.Equal(t, UseFreq.Name, tbl.Name)

	_, ok = TableForFile("other.csv")
	assert.False(t, ok)
}
