// Package dataset loads the summary-statistics CSV tables into DuckDB and
// reads typed series back out of them.
package dataset

// Table describes one input CSV and the columns famplot reads from it.
type Table struct {
	Name    string
	File    string
	Columns []string
}

// Input tables.
var (
	FamilySizes = Table{
		Name:    "family_sizes",
		File:    "family_sizes.csv",
		Columns: []string{"sz", "count"},
	}
	UseFreq = Table{
		Name:    "use_freq",
		File:    "use_freq.csv",
		Columns: []string{"position", "usage"},
	}
	CoUse = Table{
		Name:    "co_use",
		File:    "co_use.csv",
		Columns: []string{"num_deps", "cnt"},
	}
	NormCoUse = Table{
		Name:    "norm_co_use",
		File:    "norm_co_use.csv",
		Columns: []string{"coeff"},
	}
	ConsistencyScores = Table{
		Name:    "consistency_scores",
		File:    "consistency_scores.csv",
		Columns: []string{"score"},
	}
	ReleaseSizeDiffs = Table{
		Name:    "release_size_diffs",
		File:    "release_size_diffs.csv",
		Columns: []string{"size_diff"},
	}
)

// Tables lists every input table.
func Tables() []Table {
	return []Table{FamilySizes, UseFreq, CoUse, NormCoUse, ConsistencyScores, ReleaseSizeDiffs}
}

// TableForFile returns the table read from the named CSV file.
func TableForFile(name string) (Table, bool) {
	for _, t := range Tables() {
		if t.File == name {
			return t, true
		}
	}
	return Table{}, false
}
