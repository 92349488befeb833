package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteCSV writes content to dir/name and returns the file path.
func WriteCSV(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// SampleData holds a small, valid copy of every input table.
var SampleData = map[string]string{
	"family_sizes.csv": `sz,count
1,100
2,10
3,4
8,1
`,
	"use_freq.csv": `position,usage
0,0.9
0,0.8
1,0.4
1,0.3
2,0.2
2,0.25
3,0.1
3,0.12
4,0.05
5,0.02
5,0.03
6,0.01
`,
	"co_use.csv": `num_deps,cnt
1,500
2,120
3,30
5,2
`,
	"norm_co_use.csv": `coeff
0.5
0.5
0.5
0.5
0.5
`,
	"consistency_scores.csv": `score
0.1
0.45
0.9
1.0
`,
	"release_size_diffs.csv": `size_diff
0
1
4
4
17
31
32
1000
`,
}

// SetupDataDir writes SampleData into a fresh temporary directory.
func SetupDataDir(t testing.TB) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range SampleData {
		WriteCSV(t, dir, name, content)
	}
	return dir
}
