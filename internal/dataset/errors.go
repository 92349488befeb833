package dataset

import "errors"

var (
	// ErrMissingInput is returned when an input CSV does not exist or cannot be read.
	ErrMissingInput = errors.New("input file missing or unreadable")

	// ErrMalformedInput is returned when DuckDB cannot parse an input CSV.
	ErrMalformedInput = errors.New("malformed input file")

	// ErrMissingColumn is returned when an input lacks a required column.
	ErrMissingColumn = errors.New("missing column")

	// ErrNotLoaded is returned when a table is read before Load.
	ErrNotLoaded = errors.New("table not loaded")
)
