// Package viz renders protocol sequences and test results for the
// terminal and for image files.
//
//   - [Canvas]: Braille-based pixel canvas for x-y traces such as
//     hysteresis loops
//   - [SequencePlot], [StressPlot], [StrainPlot]: asciigraph line
//     charts of time histories
//   - [ExportSequencePNG], [ExportHysteresisPNG], [ExportBackbonePNG]:
//     gonum/plot image export (png, svg, pdf by extension)
//
// Styles shared with the live view (status colors, sparklines,
// progress bars) live in styles.go.
package viz
