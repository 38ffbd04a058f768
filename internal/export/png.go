package export

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/san-kum/dragsim/internal/sim"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

var (
	pathColor = color.RGBA{B: 255, A: 255}
	apexColor = color.RGBA{R: 255, A: 255}
)

// TrajectoryPlot builds height versus horizontal distance in meters, with
// the apex marked.
func TrajectoryPlot(result *sim.Result) (*plot.Plot, error) {
	if len(result.Frames) == 0 {
		return nil, fmt.Errorf("no frames to plot")
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("h=%.1f m  v=%.1f m/s  angle=%.1f°  drag=%.2f /s",
		result.Params.Height, result.Params.Speed, result.Params.Angle, result.Params.Drag)
	p.X.Label.Text = "distance (m)"
	p.Y.Label.Text = "height (m)"
	p.Add(plotter.NewGrid())

	x0 := result.Surface.Width / 2 / sim.ScaleFactor
	pts := make(plotter.XYs, 0, len(result.Frames)+1)
	pts = append(pts, plotter.XY{X: 0, Y: result.Params.Height})
	for _, f := range result.Frames {
		if !plottable(f.XMeters) || !plottable(f.Height) {
			break
		}
		pts = append(pts, plotter.XY{X: f.XMeters - x0, Y: f.Height})
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.LineStyle.Width = vg.Points(1.5)
	line.LineStyle.Color = pathColor
	p.Add(line)
	p.Legend.Add("trajectory", line)

	if a := result.Final.Apex; a != nil && plottable(*a/sim.ScaleFactor) {
		apex := (result.Surface.Height - *a) / sim.ScaleFactor
		minX, maxX := math.Inf(1), math.Inf(-1)
		for _, pt := range pts {
			minX = math.Min(minX, pt.X)
			maxX = math.Max(maxX, pt.X)
		}
		if minX == maxX {
			maxX = minX + 1
		}
		marker, err := plotter.NewLine(plotter.XYs{{X: minX, Y: apex}, {X: maxX, Y: apex}})
		if err != nil {
			return nil, err
		}
		marker.LineStyle.Color = apexColor
		marker.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(marker)
		p.Legend.Add(fmt.Sprintf("apex %.2f m", apex), marker)
	}

	return p, nil
}

// plotLimit bounds plotted distances in meters. A run that overflows passes
// through values no axis can label before reaching Inf.
const plotLimit = 1e12

func plottable(v float64) bool {
	return finite(v) && math.Abs(v) < plotLimit
}

// WritePNG draws the trajectory plot at the given size in inches.
func WritePNG(w io.Writer, result *sim.Result, widthIn, heightIn float64) error {
	p, err := TrajectoryPlot(result)
	if err != nil {
		return err
	}

	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(widthIn)*vg.Inch, vg.Length(heightIn)*vg.Inch),
		vgimg.UseDPI(150),
	)
	p.Draw(draw.New(c))

	pngc := vgimg.PngCanvas{Canvas: c}
	if _, err := pngc.WriteTo(w); err != nil {
		return fmt.Errorf("cannot write png: %w", err)
	}
	return nil
}
