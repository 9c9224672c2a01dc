package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/aperez/cyclab/internal/protocol"
	"github.com/aperez/cyclab/internal/tester"
)

// SequencePlot renders the displacement history of a protocol as a
// terminal line chart.
func SequencePlot(seq *protocol.Sequence, width, height int) string {
	caption := fmt.Sprintf("%s  peak=%.4g  points=%d", seq.Kind, seq.PeakAmplitude(), seq.NPoints())
	return asciigraph.Plot(seq.Disp,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}

// StressPlot renders the stress history of a test run.
func StressPlot(result *tester.Result, width, height int) string {
	caption := fmt.Sprintf("%s / %s  peak stress=%.4g", result.Material, result.Protocol, result.PeakStress())
	return asciigraph.Plot(result.Stress,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}

// StrainPlot renders the imposed strain history of a test run.
func StrainPlot(result *tester.Result, width, height int) string {
	caption := fmt.Sprintf("%s / %s  strain history", result.Material, result.Protocol)
	return asciigraph.Plot(result.Strain,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}

// HysteresisPlot renders the stress-strain loop on a braille canvas.
// asciigraph charts one value per column, so the loop goes through
// Canvas.PlotXY instead.
func HysteresisPlot(result *tester.Result, width, height int) string {
	c := NewCanvas(width, height)
	c.PlotXY(result.Strain, result.Stress)
	return c.String() + fmt.Sprintf("strain [%.4g, %.4g]  stress [%.4g, %.4g]",
		minOf(result.Strain), maxOf(result.Strain),
		minOf(result.Stress), maxOf(result.Stress))
}

// BackbonePlot renders a monotonic envelope on a braille canvas.
func BackbonePlot(result *tester.Result, width, height int) string {
	c := NewCanvas(width, height)
	c.PlotXY(result.Strain, result.Stress)
	return c.String() + fmt.Sprintf("%s backbone  peak stress=%.4g", result.Material, result.PeakStress())
}

func minOf(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	lo, _ := minMax(vals)
	return lo
}

func maxOf(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	_, hi := minMax(vals)
	return hi
}
