package bench

import (
	"errors"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// ErrNoResults is returned when there is nothing to plot.
var ErrNoResults = errors.New("no results")

const (
	plotWidth  = 6 * vg.Inch
	plotHeight = 4 * vg.Inch
)

var barWidth = vg.Points(24)

// NewPlot builds a bar chart of the per-operation time of each result in
// nanoseconds.
func NewPlot(results []Result, title string) (*plot.Plot, error) {
	if len(results) == 0 {
		return nil, ErrNoResults
	}

	values := make(plotter.Values, len(results))
	labels := make([]string, len(results))
	for i, r := range results {
		values[i] = float64(r.PerOp().Nanoseconds())
		labels[i] = r.Name
		if r.Backend != "" {
			labels[i] = r.Name + "/" + r.Backend
		}
	}

	bars, err := plotter.NewBarChart(values, barWidth)
	if err != nil {
		return nil, fmt.Errorf("bar chart: %w", err)
	}
	bars.LineStyle.Width = vg.Length(0)
	bars.Color = plotutil.Color(0)

	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = "ns/op"
	p.Add(bars)
	p.NominalX(labels...)
	return p, nil
}

// SavePlot writes the bar chart to path. The file extension selects the
// image format (png, svg, pdf, ...).
func SavePlot(results []Result, path, title string) error {
	p, err := NewPlot(results, title)
	if err != nil {
		return err
	}
	if err := p.Save(plotWidth, plotHeight, path); err != nil {
		return fmt.Errorf("save plot %s: %w", path, err)
	}
	return nil
}
