// Package batch runs the chart jobs: load each input table, aggregate,
// build the figure and write it in every configured format.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/wgraj/famplot/internal/chart"
	"github.com/wgraj/famplot/internal/dataset"
)

// ErrUnknownChart is returned when a requested chart does not exist.
var ErrUnknownChart = errors.New("unknown chart")

// Options configures a Renderer.
type Options struct {
	DataDir  string
	PlotsDir string
	// Database is the DuckDB path; empty keeps tables in memory.
	Database string
	Formats  []string
	Style    chart.Style
	// AverageRankLimit truncates the rank-average chart; 0 disables.
	AverageRankLimit int
	Logger           *slog.Logger
}

// Artifact describes the files written for one chart.
type Artifact struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Files  []string `json:"files"`
	Points int      `json:"points"`
	// Dropped counts rows with an empty cell and values a log axis cannot show.
	Dropped  int           `json:"dropped"`
	Duration time.Duration `json:"duration_ns"`
}

// Renderer is the chart batch renderer.
type Renderer struct {
	opts   Options
	jobs   []Job
	logger *slog.Logger
}

// New creates a Renderer over every chart job.
func New(opts Options) *Renderer {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if len(opts.Formats) == 0 {
		opts.Formats = chart.DefaultFormats
	}
	return &Renderer{opts: opts, jobs: Jobs(), logger: logger}
}

// Jobs returns the renderer's jobs in batch order.
func (r *Renderer) Jobs() []Job {
	return r.jobs
}

// OutputBase returns the output path of a job without extension.
func (r *Renderer) OutputBase(j Job) string {
	return filepath.Join(r.opts.PlotsDir, j.ID)
}

// Select returns the jobs matching names (chart name or ID), in batch
// order. No names selects every job.
func (r *Renderer) Select(names ...string) ([]Job, error) {
	if len(names) == 0 {
		return r.jobs, nil
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		found := false
		for _, j := range r.jobs {
			if j.ID == n || j.Name == n {
				want[j.ID] = true
				found = true
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: %q (run 'famplot list' for chart names)", ErrUnknownChart, n)
		}
	}
	var out []Job
	for _, j := range r.jobs {
		if want[j.ID] {
			out = append(out, j)
		}
	}
	return out, nil
}

// Run renders the named charts, or all charts when none are named. Jobs
// run one at a time; the first error aborts the batch.
func (r *Renderer) Run(ctx context.Context, names ...string) ([]Artifact, error) {
	jobs, err := r.Select(names...)
	if err != nil {
		return nil, err
	}
	for _, f := range r.opts.Formats {
		if !chart.IsSupported(f) {
			return nil, fmt.Errorf("%w: %q", chart.ErrUnsupportedFormat, f)
		}
	}

	store, err := dataset.Open(ctx, dataset.Config{
		DataDir: r.opts.DataDir,
		Path:    r.opts.Database,
		Logger:  r.logger,
	})
	if err != nil {
		return nil, err
	}
	defer func() { _ = store.Close() }()

	loaded := make(map[string]bool)
	artifacts := make([]Artifact, 0, len(jobs))
	for _, j := range jobs {
		if err := ctx.Err(); err != nil {
			return artifacts, err
		}
		if !loaded[j.Table.Name] {
			if err := store.Load(ctx, j.Table); err != nil {
				return artifacts, fmt.Errorf("chart %s: %w", j.ID, err)
			}
			loaded[j.Table.Name] = true
		}

		a, err := r.runJob(ctx, store, j)
		if err != nil {
			return artifacts, fmt.Errorf("chart %s: %w", j.ID, err)
		}
		artifacts = append(artifacts, a)
	}
	return artifacts, nil
}

func (r *Renderer) runJob(ctx context.Context, store *dataset.Store, j Job) (Artifact, error) {
	start := time.Now()
	logger := r.logger.With("chart", j.Name, "id", j.ID)
	logger.Debug("building chart", "table", j.Table.Name)

	fig, err := j.build(ctx, r, store, j)
	if err != nil {
		return Artifact{}, err
	}
	if fig.Dropped > 0 {
		logger.Warn("dropped non-positive values on log axis", "dropped", fig.Dropped)
	}
	fig.Dropped += store.Incomplete(j.Table)
	if fig.Points == 0 {
		logger.Warn("chart has no data points")
	}

	files, err := r.opts.Style.Save(fig.Plot, r.OutputBase(j), r.opts.Formats)
	if err != nil {
		return Artifact{}, err
	}

	a := Artifact{
		ID:       j.ID,
		Name:     j.Name,
		Files:    files,
		Points:   fig.Points,
		Dropped:  fig.Dropped,
		Duration: time.Since(start),
	}
	logger.Info("rendered chart", "points", a.Points, "files", strings.Join(files, ","))
	return a, nil
}
