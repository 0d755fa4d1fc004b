// Package chart renders the dashboard charts as PNG files. It only draws
// numbers it is given; aggregation lives in the service layer.
package chart

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Renderer writes chart images and returns the file name relative to its
// output directory.
type Renderer interface {
	Bar(name string, c BarChart) (string, error)
	Pie(name string, c PieChart) (string, error)
}

type BarChart struct {
	Title  string
	YLabel string
	Labels []string
	Values []float64
	// YMax fixes the top of the axis; zero scales to the largest value.
	YMax float64
}

type PieChart struct {
	Title  string
	Labels []string
	Values []float64
}

const (
	width  = 800
	height = 600
	margin = 60
)

var palette = []drawing.Color{
	drawing.ColorFromHex("007bff"),
	drawing.ColorFromHex("28a745"),
	drawing.ColorFromHex("dc3545"),
	drawing.ColorFromHex("ffc107"),
	drawing.ColorFromHex("6f42c1"),
	drawing.ColorFromHex("17a2b8"),
}

type PNGRenderer struct {
	Dir string
}

func NewPNGRenderer(dir string) *PNGRenderer {
	return &PNGRenderer{Dir: dir}
}

func (r *PNGRenderer) Bar(name string, c BarChart) (string, error) {
	if len(c.Labels) != len(c.Values) {
		return "", fmt.Errorf("bar chart %q: %d labels for %d values", name, len(c.Labels), len(c.Values))
	}
	if len(c.Values) == 0 {
		return "", fmt.Errorf("bar chart %q: nothing to draw", name)
	}

	top := c.YMax
	if top <= 0 {
		for _, v := range c.Values {
			top = math.Max(top, v)
		}
	}
	if top <= 0 {
		top = 1
	}

	bars := make([]gochart.Value, len(c.Values))
	for i, v := range c.Values {
		color := palette[i%len(palette)]
		bars[i] = gochart.Value{
			Label: c.Labels[i],
			Value: math.Max(0, math.Min(v, top)),
			Style: gochart.Style{FillColor: color, StrokeColor: color},
		}
	}

	graph := gochart.BarChart{
		Title:      c.Title,
		Width:      width,
		Height:     height,
		BarWidth:   barWidth(len(bars)),
		Background: gochart.Style{Padding: gochart.Box{Top: margin, Left: 10, Right: 10, Bottom: 10}},
		YAxis: gochart.YAxis{
			Name:  c.YLabel,
			Range: &gochart.ContinuousRange{Min: 0, Max: top},
		},
		Bars: bars,
	}
	return r.write(name, func(w io.Writer) error {
		return graph.Render(gochart.PNG, w)
	})
}

func (r *PNGRenderer) Pie(name string, c PieChart) (string, error) {
	if len(c.Labels) != len(c.Values) {
		return "", fmt.Errorf("pie chart %q: %d labels for %d values", name, len(c.Labels), len(c.Values))
	}
	total := 0.0
	for _, v := range c.Values {
		if v > 0 {
			total += v
		}
	}
	if total == 0 {
		return "", fmt.Errorf("pie chart %q: nothing to draw", name)
	}

	// Empty slices are left out so their labels do not pile up.
	slices := make([]gochart.Value, 0, len(c.Values))
	for i, v := range c.Values {
		if v <= 0 {
			continue
		}
		color := palette[i%len(palette)]
		slices = append(slices, gochart.Value{
			Label: fmt.Sprintf("%s (%.1f%%)", c.Labels[i], v/total*100),
			Value: v,
			Style: gochart.Style{FillColor: color, StrokeColor: drawing.ColorWhite},
		})
	}

	graph := gochart.PieChart{
		Title:  c.Title,
		Width:  width,
		Height: height,
		Values: slices,
	}
	return r.write(name, func(w io.Writer) error {
		return graph.Render(gochart.PNG, w)
	})
}

func barWidth(n int) int {
	w := (width - 2*margin) / n * 3 / 5
	if w < 8 {
		return 8
	}
	return w
}

// write renders into a temp file and renames it over name so readers never
// see a partial image.
func (r *PNGRenderer) write(name string, render func(io.Writer) error) (string, error) {
	if err := os.MkdirAll(r.Dir, 0o755); err != nil {
		return "", fmt.Errorf("creating chart dir: %w", err)
	}
	tmp, err := os.CreateTemp(r.Dir, name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating chart file: %w", err)
	}
	if err := render(tmp); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	if err := os.Rename(tmp.Name(), filepath.Join(r.Dir, name)); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("publishing %s: %w", name, err)
	}
	return name, nil
}
