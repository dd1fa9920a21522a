package viz

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Series is one labelled trajectory.
type Series struct {
	Name   string
	Times  []float64
	States []float64
}

func (s Series) points() plotter.XYs {
	pts := make(plotter.XYs, 0, len(s.Times))
	for i := range s.Times {
		x := s.States[i]
		if math.IsNaN(x) || math.IsInf(x, 0) {
			continue
		}
		pts = append(pts, plotter.XY{X: s.Times[i], Y: x})
	}
	return pts
}

// SavePNG writes a line plot of all series to path. The extension of path
// picks the image format (.png, .svg, .pdf).
func SavePNG(path, title string, series ...Series) error {
	if len(series) == 0 {
		return ErrNothingToPlot
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "t"
	p.Y.Label.Text = "x"
	p.Add(plotter.NewGrid())

	args := make([]interface{}, 0, 2*len(series))
	for _, s := range series {
		if len(s.Times) != len(s.States) {
			return fmt.Errorf("viz: series %q has %d times for %d states", s.Name, len(s.Times), len(s.States))
		}
		pts := s.points()
		if len(pts) == 0 {
			return fmt.Errorf("%w: series %q", ErrNothingToPlot, s.Name)
		}
		args = append(args, s.Name, pts)
	}

	if err := plotutil.AddLinePoints(p, args...); err != nil {
		return err
	}

	return p.Save(8*vg.Inch, 4*vg.Inch, path)
}
