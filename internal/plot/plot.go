// Package plot renders paths, ensembles and terminal histograms as PNG.
package plot

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/wcharczuk/go-chart/v2"

	"stochwalk/internal/walk"
)

// MaxEnsemblePaths caps the number of lines drawn for an ensemble.
const MaxEnsemblePaths = 100

var ErrNoData = errors.New("nothing to plot")

type Series struct {
	Name string
	X, Y []float64
}

func valueFormatter(v interface{}) string {
	if vf, isFloat := v.(float64); isFloat {
		return fmt.Sprintf("%.4f", vf)
	}
	return ""
}

// Lines draws every series on a shared time axis.
func Lines(w io.Writer, title string, series []Series) error {
	if len(series) == 0 {
		return ErrNoData
	}

	graph := chart.Chart{
		Title:  title,
		XAxis:  chart.XAxis{Name: "Time"},
		YAxis:  chart.YAxis{Name: "Price", ValueFormatter: valueFormatter},
		Series: make([]chart.Series, 0, len(series)),
	}
	for _, s := range series {
		if len(s.X) < 2 {
			return fmt.Errorf("%w: series %q has %d points", ErrNoData, s.Name, len(s.X))
		}
		graph.Series = append(graph.Series, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: s.X,
			YValues: s.Y,
		})
	}
	if len(series) > 1 && len(series) <= 10 {
		graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	}
	return graph.Render(chart.PNG, w)
}

func Path(w io.Writer, title string, p *walk.Path) error {
	return Lines(w, title, []Series{{Name: title, X: p.Times, Y: p.Values}})
}

// Ensemble draws at most MaxEnsemblePaths repetitions.
func Ensemble(w io.Writer, title string, e *walk.Ensemble) error {
	n := min(e.Len(), MaxEnsemblePaths)
	series := make([]Series, n)
	for i := range series {
		series[i] = Series{Name: fmt.Sprintf("#%d", i), X: e.Times, Y: e.Values[i]}
	}
	return Lines(w, title, series)
}

// Histogram draws the terminal value distribution of a summary.
func Histogram(w io.Writer, title string, s *walk.Summary) error {
	if s.Count == 0 || len(s.Counts) == 0 {
		return ErrNoData
	}

	bars := make([]chart.Value, len(s.Counts))
	for i, c := range s.Counts {
		bars[i] = chart.Value{
			Value: c,
			Label: fmt.Sprintf("%.1f", (s.Dividers[i]+s.Dividers[i+1])/2),
		}
	}
	graph := chart.BarChart{
		Title:    title,
		Height:   512,
		BarWidth: 40,
		Bars:     bars,
	}
	return graph.Render(chart.PNG, w)
}

// SaveFile renders into a newly created file at path.
func SaveFile(path string, render func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create plot file %s: %w", path, err)
	}
	defer f.Close()

	if err := render(f); err != nil {
		return fmt.Errorf("cannot render %s: %w", path, err)
	}
	return f.Close()
}
