// Package report renders PNG charts of a finished run with gonum/plot.
package report

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/san-kum/dpend/internal/dynamo"
	"github.com/san-kum/dpend/internal/pendulum"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const (
	widthIn  = 8.0
	heightIn = 6.0
)

// DPI of the written images.
var DPI = 300

var (
	colorTheta1 = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	colorTheta2 = color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}
	colorTrail  = color.RGBA{R: 0x94, G: 0x67, B: 0xbd, A: 0xff}
)

// Write renders every chart of the run into dir and returns the file paths.
func Write(dir string, p pendulum.Params, result *dynamo.Result) ([]string, error) {
	if len(result.States) == 0 {
		return nil, fmt.Errorf("report: empty run")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create directory: %w", err)
	}

	states := make([]pendulum.State, len(result.States))
	for i, x := range result.States {
		s, err := pendulum.StateFromVector(x)
		if err != nil {
			return nil, err
		}
		states[i] = s
	}

	charts := []struct {
		file  string
		build func() (*plot.Plot, error)
	}{
		{"angles.png", func() (*plot.Plot, error) { return AnglesPlot(result.Times, states) }},
		{"energy.png", func() (*plot.Plot, error) { return EnergyPlot(result.Times, states, p) }},
		{"trail.png", func() (*plot.Plot, error) { return TrailPlot(states, p) }},
		{"phase.png", func() (*plot.Plot, error) { return PhasePlot(states) }},
	}

	var written []string
	for _, c := range charts {
		pl, err := c.build()
		if err != nil {
			return written, fmt.Errorf("%s: %w", c.file, err)
		}
		path := filepath.Join(dir, c.file)
		if err := savePlotPNG(pl, path); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

func AnglesPlot(times []float64, states []pendulum.State) (*plot.Plot, error) {
	p := newPlot("Arm angles", "time (s)", "angle (rad)")

	th1 := make(plotter.XYs, 0, len(states))
	th2 := make(plotter.XYs, 0, len(states))
	for i, s := range states {
		if !s.IsFinite() {
			break
		}
		th1 = append(th1, plotter.XY{X: times[i], Y: s.Theta1})
		th2 = append(th2, plotter.XY{X: times[i], Y: s.Theta2})
	}

	if err := addLine(p, "θ1", th1, colorTheta1); err != nil {
		return nil, err
	}
	if err := addLine(p, "θ2", th2, colorTheta2); err != nil {
		return nil, err
	}
	return p, nil
}

// EnergyPlot shows the relative deviation of total energy from its initial
// value. For an exact integrator it is the zero line.
func EnergyPlot(times []float64, states []pendulum.State, params pendulum.Params) (*plot.Plot, error) {
	p := newPlot("Relative energy drift", "time (s)", "(E - E0) / |E0|")
	p.Y.Tick.Marker = limitedTicker(8, "%.1e")

	e0 := pendulum.Energy(states[0], params)
	norm := math.Abs(e0)
	if norm == 0 {
		norm = 1
	}

	pts := make(plotter.XYs, 0, len(states))
	for i, s := range states {
		if !s.IsFinite() {
			break
		}
		pts = append(pts, plotter.XY{X: times[i], Y: (pendulum.Energy(s, params) - e0) / norm})
	}
	if err := addLine(p, "", pts, colorTheta1); err != nil {
		return nil, err
	}
	return p, nil
}

// TrailPlot draws the path of the second bob in the plane, pivot at origin.
func TrailPlot(states []pendulum.State, params pendulum.Params) (*plot.Plot, error) {
	p := newPlot("Second bob path", "x (m)", "y (m)")

	reach := params.Reach() * 1.05
	p.X.Min, p.X.Max = -reach, reach
	p.Y.Min, p.Y.Max = -reach, reach

	pts := make(plotter.XYs, 0, len(states))
	for _, s := range states {
		if !s.IsFinite() {
			break
		}
		b2 := pendulum.BobPositions(s, params).Bob2
		pts = append(pts, plotter.XY{X: b2.X, Y: b2.Y})
	}
	if err := addLine(p, "", pts, colorTrail); err != nil {
		return nil, err
	}

	pivot, err := plotter.NewScatter(plotter.XYs{{X: 0, Y: 0}})
	if err != nil {
		return nil, err
	}
	pivot.GlyphStyle.Shape = draw.CircleGlyph{}
	pivot.GlyphStyle.Radius = vg.Points(5)
	p.Add(pivot)
	return p, nil
}

func PhasePlot(states []pendulum.State) (*plot.Plot, error) {
	p := newPlot("Phase portrait", "θ1 (rad)", "ω1 (rad/s)")

	pts := make(plotter.XYs, 0, len(states))
	for _, s := range states {
		if !s.IsFinite() {
			break
		}
		pts = append(pts, plotter.XY{X: s.Theta1, Y: s.Omega1})
	}
	if err := addLine(p, "", pts, colorTheta1); err != nil {
		return nil, err
	}
	return p, nil
}

func newPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	stylePlot(p)
	return p
}

func addLine(p *plot.Plot, name string, pts plotter.XYs, c color.Color) error {
	if len(pts) == 0 {
		return fmt.Errorf("report: no finite samples")
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.LineStyle.Width = vg.Points(2.0)
	line.LineStyle.Color = c
	p.Add(line)
	if name != "" {
		p.Legend.Add(name, line)
	}
	return nil
}

func limitedTicker(maxLabels int, labelFmt string) plot.Ticker {
	if maxLabels < 2 {
		maxLabels = 2
	}
	return plot.TickerFunc(func(min, max float64) []plot.Tick {
		if math.IsNaN(min) || math.IsNaN(max) || math.IsInf(min, 0) || math.IsInf(max, 0) {
			return nil
		}
		if min == max {
			return []plot.Tick{{Value: min, Label: fmt.Sprintf(labelFmt, min)}}
		}
		step := (max - min) / float64(maxLabels-1)
		ticks := make([]plot.Tick, 0, maxLabels)
		for i := 0; i < maxLabels; i++ {
			v := min + float64(i)*step
			ticks = append(ticks, plot.Tick{Value: v, Label: fmt.Sprintf(labelFmt, v)})
		}
		return ticks
	})
}

func stylePlot(p *plot.Plot) {
	p.Title.TextStyle.Font.Size = vg.Points(22)
	p.Title.Padding = vg.Points(12)

	p.X.Label.TextStyle.Font.Size = vg.Points(18)
	p.Y.Label.TextStyle.Font.Size = vg.Points(18)
	p.X.Label.Padding = vg.Points(10)
	p.Y.Label.Padding = vg.Points(10)

	p.X.Tick.Label.Font.Size = vg.Points(14)
	p.Y.Tick.Label.Font.Size = vg.Points(14)

	p.X.Tick.Marker = limitedTicker(9, "%.1f")
	p.Y.Tick.Marker = limitedTicker(9, "%.1f")

	p.Legend.Top = true
	p.Legend.TextStyle.Font.Size = vg.Points(14)
	p.Add(plotter.NewGrid())
}

func savePlotPNG(p *plot.Plot, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("cannot create png: %w", err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if err := WritePNG(bw, p); err != nil {
		return err
	}
	return bw.Flush()
}

// WritePNG draws p at the package DPI and encodes it as PNG.
func WritePNG(w io.Writer, p *plot.Plot) error {
	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(widthIn)*vg.Inch, vg.Length(heightIn)*vg.Inch),
		vgimg.UseDPI(DPI),
	)
	p.Draw(draw.New(c))

	pngc := vgimg.PngCanvas{Canvas: c}
	if _, err := pngc.WriteTo(w); err != nil {
		return fmt.Errorf("cannot write png: %w", err)
	}
	return nil
}
