package viz

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/aperez/cyclab/internal/protocol"
	"github.com/aperez/cyclab/internal/tester"
)

// ExportSequencePNG writes the protocol displacement history as a
// time-series plot. The extension selects the format; gonum/plot
// handles png, svg and pdf.
func ExportSequencePNG(seq *protocol.Sequence, filename string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s loading protocol", seq.Kind)
	p.X.Label.Text = "Normalized time"
	p.Y.Label.Text = "Displacement"

	pts := make(plotter.XYs, seq.NPoints())
	for i := range seq.Time {
		pts[i] = plotter.XY{X: seq.Time[i], Y: seq.Disp[i]}
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.LineStyle.Width = vg.Points(1.5)
	line.LineStyle.Color = color.RGBA{R: 0, G: 100, B: 200, A: 255}
	p.Add(line)

	addZeroLine(p, 0, 1)

	return savePlot(p, 8*vg.Inch, 5*vg.Inch, filename)
}

// ExportHysteresisPNG writes the stress-strain response of a test run.
func ExportHysteresisPNG(result *tester.Result, filename string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s under %s", result.Material, result.Protocol)
	p.X.Label.Text = "Strain"
	p.Y.Label.Text = "Stress"

	pts := make(plotter.XYs, result.NumPoints())
	for i := range result.Strain {
		pts[i] = plotter.XY{X: result.Strain[i], Y: result.Stress[i]}
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.LineStyle.Width = vg.Points(1)
	line.LineStyle.Color = color.RGBA{R: 200, G: 30, B: 30, A: 255}
	p.Add(line)

	xmin, xmax := minMax(result.Strain)
	addZeroLine(p, xmin, xmax)

	return savePlot(p, 7*vg.Inch, 7*vg.Inch, filename)
}

// ExportBackbonePNG writes a monotonic envelope curve.
func ExportBackbonePNG(result *tester.Result, filename string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s backbone", result.Material)
	p.X.Label.Text = "Strain"
	p.Y.Label.Text = "Stress"

	pts := make(plotter.XYs, result.NumPoints())
	for i := range result.Strain {
		pts[i] = plotter.XY{X: result.Strain[i], Y: result.Stress[i]}
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.LineStyle.Width = vg.Points(1.5)
	line.LineStyle.Color = color.RGBA{R: 0, G: 120, B: 60, A: 255}
	p.Add(line)

	xmin, xmax := minMax(result.Strain)
	addZeroLine(p, xmin, xmax)

	return savePlot(p, 7*vg.Inch, 5*vg.Inch, filename)
}

func addZeroLine(p *plot.Plot, xmin, xmax float64) {
	zero, err := plotter.NewLine(plotter.XYs{
		{X: xmin, Y: 0},
		{X: xmax, Y: 0},
	})
	if err != nil {
		return
	}
	zero.LineStyle.Color = color.Gray{Y: 128}
	zero.LineStyle.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
	p.Add(zero)
}

func savePlot(p *plot.Plot, width, height vg.Length, filename string) error {
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		os.MkdirAll(dir, 0755)
	}

	switch filepath.Ext(filename) {
	case ".png", ".svg", ".pdf":
		return p.Save(width, height, filename)
	default:
		return p.Save(width, height, filename+".png")
	}
}
