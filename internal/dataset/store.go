package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/wgraj/famplot/internal/stats"

	_ "github.com/marcboeker/go-duckdb" // duckdb driver
)

// Config configures a Store.
type Config struct {
	// DataDir is the directory holding the input CSV files.
	DataDir string
	// Path is the DuckDB database path. Empty means in-memory.
	Path   string
	Logger *slog.Logger
}

// Store is a DuckDB connection holding the loaded input tables.
type Store struct {
	DB      *sql.DB
	dataDir string
	logger  *slog.Logger
	loaded  map[string]bool
	// incomplete counts the rows of each table with an empty required cell.
	incomplete map[string]int64
}

// Open connects to DuckDB.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb connection: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping duckdb: %w", err)
	}

	logger.Debug("opened duckdb", "path", path)
	return &Store{
		DB:      db,
		dataDir: cfg.DataDir,
		logger:  logger,
		loaded:  make(map[string]bool),

		incomplete: make(map[string]int64),
	}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.DB == nil {
		return nil
	}
	s.logger.Debug("closing duckdb connection")
	return s.DB.Close()
}

// Path returns the location of a table's CSV file.
func (s *Store) Path(t Table) string {
	return filepath.Join(s.dataDir, t.File)
}

// Load reads the table's CSV into DuckDB, replacing any previous copy,
// and checks that the required columns are present and numeric. Rows
// with an empty required cell are counted and skipped by the readers.
func (s *Store) Load(ctx context.Context, t Table) error {
	path := s.Path(t)
	if err := s.LoadCSV(ctx, t.Name, path); err != nil {
		return err
	}

	cols, err := s.Columns(ctx, t.Name)
	if err != nil {
		return err
	}
	have := make(map[string]bool, len(cols))
	for _, c := range cols {
		have[strings.ToLower(c)] = true
	}
	for _, want := range t.Columns {
		if !have[want] {
			return fmt.Errorf("%s: %w %q (have %s)", path, ErrMissingColumn, want, strings.Join(cols, ", "))
		}
	}
	for _, col := range t.Columns {
		if err := s.checkNumeric(ctx, t, col); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}

	incomplete, err := s.countIncomplete(ctx, t)
	if err != nil {
		return err
	}
	if incomplete > 0 {
		s.logger.Warn("skipping rows with empty cells", "table", t.Name, "rows", incomplete)
	}
	s.incomplete[t.Name] = incomplete
	s.loaded[t.Name] = true
	return nil
}

// Incomplete returns the number of rows of a loaded table that have an
// empty required cell and are left out of every chart.
func (s *Store) Incomplete(t Table) int {
	return int(s.incomplete[t.Name])
}

// checkNumeric fails with ErrMalformedInput when a non-empty cell of col
// is not a number.
func (s *Store) checkNumeric(ctx context.Context, t Table, col string) error {
	query := fmt.Sprintf( //nolint:gosec // identifiers are package constants
		"SELECT COUNT(*), MIN(CAST(%[1]s AS VARCHAR)) FROM %[2]s WHERE %[1]s IS NOT NULL AND TRY_CAST(%[1]s AS DOUBLE) IS NULL",
		quoteIdent(col), quoteIdent(t.Name),
	)
	var n int64
	var sample sql.NullString
	if err := s.DB.QueryRowContext(ctx, query).Scan(&n, &sample); err != nil {
		return fmt.Errorf("failed to check column %s.%s: %w", t.Name, col, err)
	}
	if n > 0 {
		return fmt.Errorf("%w: column %q has %d non-numeric values (e.g. %q)", ErrMalformedInput, col, n, sample.String)
	}
	return nil
}

func (s *Store) countIncomplete(ctx context.Context, t Table) (int64, error) {
	conds := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		conds[i] = quoteIdent(col) + " IS NULL"
	}
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s", //nolint:gosec // identifiers are package constants
		quoteIdent(t.Name), strings.Join(conds, " OR "))
	var n int64
	if err := s.DB.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count empty cells of %s: %w", t.Name, err)
	}
	return n, nil
}

// LoadCSV loads a CSV file into a table, letting DuckDB infer the schema.
func (s *Store) LoadCSV(ctx context.Context, tableName, filePath string) error {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}
	f, err := os.Open(absPath)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", filePath, ErrMissingInput, err)
	}
	_ = f.Close()

	query := fmt.Sprintf(
		"CREATE OR REPLACE TABLE %s AS SELECT * FROM read_csv_auto('%s', header=true)",
		quoteIdent(tableName),
		strings.ReplaceAll(absPath, "'", "''"),
	)
	if _, err := s.DB.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("%s: %w: %w", filePath, ErrMalformedInput, err)
	}

	s.logger.Debug("loaded csv", "table", tableName, "file", absPath)
	return nil
}

// Columns returns the column names of a loaded table in ordinal order.
func (s *Store) Columns(ctx context.Context, tableName string) ([]string, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_schema = 'main' AND table_name = ?
		ORDER BY ordinal_position
	`, tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to query column metadata: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var cols []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan column metadata: %w", err)
		}
		cols = append(cols, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating column metadata: %w", err)
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("table %s not found", tableName)
	}
	return cols, nil
}

// RowCount returns the number of rows in a loaded table.
func (s *Store) RowCount(ctx context.Context, t Table) (int64, error) {
	if err := s.checkLoaded(t); err != nil {
		return 0, err
	}
	var n int64
	query := "SELECT COUNT(*) FROM " + quoteIdent(t.Name) //nolint:gosec // table names are package constants
	if err := s.DB.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count rows of %s: %w", t.Name, err)
	}
	return n, nil
}

// Pair is one (x, y) row.
type Pair struct {
	X float64
	Y float64
}

// Pairs reads two numeric columns in file order.
func (s *Store) Pairs(ctx context.Context, t Table, xCol, yCol string) ([]Pair, error) {
	if err := s.checkLoaded(t); err != nil {
		return nil, err
	}
	query := fmt.Sprintf(
		"SELECT CAST(%s AS DOUBLE), CAST(%s AS DOUBLE) FROM %s ORDER BY rowid",
		quoteIdent(xCol), quoteIdent(yCol), quoteIdent(t.Name),
	)
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", t.Name, err)
	}
	defer func() { _ = rows.Close() }()

	var out []Pair
	for rows.Next() {
		var x, y sql.NullFloat64
		if err := rows.Scan(&x, &y); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", t.Name, err)
		}
		if !x.Valid || !y.Valid {
			continue
		}
		out = append(out, Pair{X: x.Float64, Y: y.Float64})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s: %w", t.Name, err)
	}
	return out, nil
}

// Values reads one numeric column in file order. Nulls are skipped.
func (s *Store) Values(ctx context.Context, t Table, col string) ([]float64, error) {
	return s.values(ctx, t, col, "")
}

// ValuesBelow reads the values of col strictly less than limit.
func (s *Store) ValuesBelow(ctx context.Context, t Table, col string, limit float64) ([]float64, error) {
	return s.values(ctx, t, col, fmt.Sprintf("WHERE CAST(%s AS DOUBLE) < %g", quoteIdent(col), limit))
}

func (s *Store) values(ctx context.Context, t Table, col, where string) ([]float64, error) {
	if err := s.checkLoaded(t); err != nil {
		return nil, err
	}
	query := fmt.Sprintf("SELECT CAST(%s AS DOUBLE) FROM %s %s ORDER BY rowid",
		quoteIdent(col), quoteIdent(t.Name), where)
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s.%s: %w", t.Name, col, err)
	}
	defer func() { _ = rows.Close() }()

	var out []float64
	for rows.Next() {
		var v sql.NullFloat64
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan %s.%s: %w", t.Name, col, err)
		}
		if v.Valid {
			out = append(out, v.Float64)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s.%s: %w", t.Name, col, err)
	}
	return out, nil
}

// Observations reads the usage table as rank observations.
func (s *Store) Observations(ctx context.Context) ([]stats.Observation, error) {
	t := UseFreq
	if err := s.checkLoaded(t); err != nil {
		return nil, err
	}
	query := `
		SELECT CAST("position" AS BIGINT), CAST("usage" AS DOUBLE)
		FROM use_freq
		WHERE "position" IS NOT NULL AND "usage" IS NOT NULL
		ORDER BY rowid
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", t.Name, err)
	}
	defer func() { _ = rows.Close() }()

	var out []stats.Observation
	for rows.Next() {
		var o stats.Observation
		if err := rows.Scan(&o.Position, &o.Value); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", t.Name, err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s: %w", t.Name, err)
	}
	return out, nil
}

func (s *Store) checkLoaded(t Table) error {
	if !s.loaded[t.Name] {
		return fmt.Errorf("%s: %w", t.Name, ErrNotLoaded)
	}
	return nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
