// Package timeseries defines the load histories a tester can replay:
// linear and constant ramps plus explicit time/value paths, all sampled
// over a normalized [0, 1] time axis.
package timeseries

import (
	"errors"
	"fmt"

	"github.com/aperez/cyclab/internal/protocol"
)

// ErrShapeMismatch indicates a path whose time and value lists disagree.
var ErrShapeMismatch = errors.New("timeseries: time and values must have the same length")

// Series is a scalar load history over normalized time.
type Series interface {
	Name() string
	// At evaluates the series at normalized time t in [0, 1].
	At(t float64) float64
	// Points returns the breakpoints that define the series. The returned
	// slices must be treated as read-only.
	Points() (time, values []float64)
}

// Linear ramps from zero to Factor over the unit interval.
type Linear struct {
	Factor float64
}

func (l Linear) Name() string          { return "linear" }
func (l Linear) At(t float64) float64  { return l.Factor * t }
func (l Linear) Points() ([]float64, []float64) {
	return []float64{0, 1}, []float64{0, l.Factor}
}

// Constant holds Factor over the whole interval.
type Constant struct {
	Factor float64
}

func (c Constant) Name() string          { return "constant" }
func (c Constant) At(t float64) float64  { return c.Factor }
func (c Constant) Points() ([]float64, []float64) {
	return []float64{0, 1}, []float64{c.Factor, c.Factor}
}

// Path interpolates linearly between explicit time/value breakpoints.
// Outside the defined range it returns zero, or holds the last value
// when UseLast is set.
type Path struct {
	Time    []float64
	Values  []float64
	Factor  float64
	UseLast bool

	name string
}

// NewPath validates the breakpoints and prepends a (0, 0) point when the
// history does not already start at time zero.
func NewPath(time, values []float64) (*Path, error) {
	if len(time) != len(values) {
		return nil, fmt.Errorf("%w: %d vs %d", ErrShapeMismatch, len(time), len(values))
	}
	if len(time) > 0 && time[0] != 0 {
		time = append([]float64{0}, time...)
		values = append([]float64{0}, values...)
	}
	return &Path{Time: time, Values: values, Factor: 1.0, name: "path"}, nil
}

// FromSequence wraps a generated protocol sequence as a replayable path.
func FromSequence(seq *protocol.Sequence) *Path {
	return &Path{
		Time:   seq.Time,
		Values: seq.Disp,
		Factor: 1.0,
		name:   seq.Kind.String(),
	}
}

func (p *Path) Name() string {
	if p.name == "" {
		return "path"
	}
	return p.name
}

func (p *Path) At(t float64) float64 {
	n := len(p.Time)
	if n == 0 {
		return 0
	}
	if t <= p.Time[0] {
		return p.Factor * p.Values[0]
	}
	if t >= p.Time[n-1] {
		if p.UseLast {
			return p.Factor * p.Values[n-1]
		}
		if t > p.Time[n-1] {
			return 0
		}
		return p.Factor * p.Values[n-1]
	}

	// Breakpoints are non-decreasing; scan for the enclosing segment.
	for i := 1; i < n; i++ {
		if t <= p.Time[i] {
			dt := p.Time[i] - p.Time[i-1]
			if dt == 0 {
				return p.Factor * p.Values[i]
			}
			frac := (t - p.Time[i-1]) / dt
			return p.Factor * (p.Values[i-1] + frac*(p.Values[i]-p.Values[i-1]))
		}
	}
	return p.Factor * p.Values[n-1]
}

func (p *Path) Points() ([]float64, []float64) {
	if p.Factor == 1.0 {
		return p.Time, p.Values
	}
	scaled := make([]float64, len(p.Values))
	for i, v := range p.Values {
		scaled[i] = p.Factor * v
	}
	return p.Time, scaled
}
