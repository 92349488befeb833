package output

// RenderOutput is the JSON result of the render command.
type RenderOutput struct {
	Charts  []ChartResult `json:"charts"`
	Summary RenderSummary `json:"summary"`
}

// ChartResult describes one rendered chart.
type ChartResult struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Files      []string `json:"files"`
	Points     int      `json:"points"`
	Dropped    int      `json:"dropped,omitempty"`
	DurationMs int64    `json:"duration_ms"`
}

// RenderSummary totals a render run.
type RenderSummary struct {
	Charts     int    `json:"charts"`
	Files      int    `json:"files"`
	PlotsDir   string `json:"plots_dir"`
	DurationMs int64  `json:"duration_ms"`
}

// ListOutput is the JSON result of the list command.
type ListOutput struct {
	Charts []ChartInfo `json:"charts"`
}

// ChartInfo describes one chart the batch can render.
type ChartInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Table       string   `json:"table"`
	Input       string   `json:"input"`
	Outputs     []string `json:"outputs"`
}
