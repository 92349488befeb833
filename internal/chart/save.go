package chart

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgeps"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"
	"gonum.org/v1/plot/vg/vgtex"
)

// ErrUnsupportedFormat is returned for an output format famplot cannot write.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Output formats. tex is PGF/TikZ for \input into LaTeX documents.
const (
	FormatTeX = "tex"
	FormatPDF = "pdf"
	FormatSVG = "svg"
	FormatEPS = "eps"
	FormatPNG = "png"
	FormatJPG = "jpg"
	FormatTIF = "tif"
)

// Formats lists the supported output formats.
var Formats = []string{FormatTeX, FormatPDF, FormatSVG, FormatEPS, FormatPNG, FormatJPG, FormatTIF}

// DefaultFormats are a typesetting copy and a raster preview.
var DefaultFormats = []string{FormatTeX, FormatPNG}

// IsSupported reports whether format can be written.
func IsSupported(format string) bool {
	return slices.Contains(Formats, format)
}

// Save writes the plot to base.<format> for every format and returns the
// written paths. The parent directory is created if needed.
func (s Style) Save(p *plot.Plot, base string, formats []string) ([]string, error) {
	if err := os.MkdirAll(filepath.Dir(base), 0750); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		path := base + "." + format
		if err := s.saveFile(p, path, format); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (s Style) saveFile(p *plot.Plot, path, format string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := s.WriteTo(f, p, format); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}

// WriteTo renders the plot in the given format to w.
func (s Style) WriteTo(w io.Writer, p *plot.Plot, format string) error {
	c, err := s.canvas(format)
	if err != nil {
		return err
	}
	p.Draw(draw.New(c))
	_, err = c.WriteTo(w)
	return err
}

func (s Style) canvas(format string) (vg.CanvasWriterTo, error) {
	switch format {
	case FormatTeX:
		return vgtex.New(s.Width, s.Height), nil
	case FormatPDF:
		return vgpdf.New(s.Width, s.Height), nil
	case FormatSVG:
		return vgsvg.New(s.Width, s.Height), nil
	case FormatEPS:
		return vgeps.New(s.Width, s.Height), nil
	case FormatPNG, FormatJPG, FormatTIF:
		img := vgimg.NewWith(vgimg.UseWH(s.Width, s.Height), vgimg.UseDPI(s.DPI))
		switch format {
		case FormatPNG:
			return vgimg.PngCanvas{Canvas: img}, nil
		case FormatJPG:
			return vgimg.JpegCanvas{Canvas: img}, nil
		default:
			return vgimg.TiffCanvas{Canvas: img}, nil
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
