package viz

import (
	"errors"
	"math"

	"github.com/guptarohit/asciigraph"
)

var ErrNothingToPlot = errors.New("viz: no finite data to plot")

// SeriesColors are assigned to PlotMany series in order.
var SeriesColors = []asciigraph.AnsiColor{
	asciigraph.Red,
	asciigraph.Green,
	asciigraph.Blue,
	asciigraph.Yellow,
	asciigraph.Magenta,
	asciigraph.Cyan,
}

func finite(data []float64) []float64 {
	out := make([]float64, 0, len(data))
	for _, v := range data {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}

// Plot draws states as a terminal line chart.
func Plot(states []float64, caption string, width, height int) (string, error) {
	data := finite(states)
	if len(data) == 0 {
		return "", ErrNothingToPlot
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	), nil
}

// PlotMany overlays several trajectories. asciigraph stretches each series to
// width, so series sampled on different grids line up over the same interval.
func PlotMany(series [][]float64, caption string, width, height int) (string, error) {
	data := make([][]float64, 0, len(series))
	for _, s := range series {
		f := finite(s)
		if len(f) == 0 {
			return "", ErrNothingToPlot
		}
		data = append(data, f)
	}
	if len(data) == 0 {
		return "", ErrNothingToPlot
	}

	colors := make([]asciigraph.AnsiColor, len(data))
	for i := range colors {
		colors[i] = SeriesColors[i%len(SeriesColors)]
	}

	return asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(colors...),
	), nil
}
