package protocol

import (
	"fmt"
	"math"
)

// Kind selects one of the supported cyclic loading standards.
type Kind int

const (
	ASCE41 Kind = iota
	ModifiedATC24
	FEMA461
)

func (k Kind) String() string {
	switch k {
	case ASCE41:
		return "asce41"
	case ModifiedATC24:
		return "atc24"
	case FEMA461:
		return "fema461"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind maps a protocol name to its Kind. Accepted names are
// "asce41", "atc24" and "fema461".
func ParseKind(name string) (Kind, error) {
	switch name {
	case "asce41":
		return ASCE41, nil
	case "atc24":
		return ModifiedATC24, nil
	case "fema461":
		return FEMA461, nil
	default:
		return 0, fmt.Errorf("%w: unknown protocol %q", ErrInvalidParameter, name)
	}
}

// Kinds lists every supported protocol in generation order.
func Kinds() []Kind {
	return []Kind{ASCE41, ModifiedATC24, FEMA461}
}

// DefaultAlpha is the FEMA-461 amplitude growth ratio per level.
const DefaultAlpha = 0.62

// Spec parameterizes one protocol. Alpha is only meaningful for FEMA461.
type Spec struct {
	Kind         Kind
	MaxAmplitude float64
	Alpha        float64
}

// NewASCE41 builds a spec for the ASCE 41-17 protocol.
func NewASCE41(maxAmplitude float64) Spec {
	return Spec{Kind: ASCE41, MaxAmplitude: maxAmplitude}
}

// NewModifiedATC24 builds a spec for the Modified ATC-24 protocol.
func NewModifiedATC24(maxAmplitude float64) Spec {
	return Spec{Kind: ModifiedATC24, MaxAmplitude: maxAmplitude}
}

// NewFEMA461 builds a spec for the FEMA-461 protocol. Alpha <= 0 is
// rejected at generation time; DefaultAlpha is the usual choice.
func NewFEMA461(maxAmplitude, alpha float64) Spec {
	return Spec{Kind: FEMA461, MaxAmplitude: maxAmplitude, Alpha: alpha}
}

// Sequence is a generated loading history. Time is normalized to [0, 1]
// and non-decreasing; Disp shares the caller's amplitude units. The two
// slices always have equal length and must be treated as read-only.
type Sequence struct {
	Kind Kind
	Time []float64
	Disp []float64
}

// NPoints reports the number of (time, amplitude) pairs.
func (s *Sequence) NPoints() int { return len(s.Time) }

// PeakAmplitude reports the largest absolute amplitude in the history.
func (s *Sequence) PeakAmplitude() float64 {
	peak := 0.0
	for _, d := range s.Disp {
		if a := math.Abs(d); a > peak {
			peak = a
		}
	}
	return peak
}

// ASCE-41 drift ratios, rescaled at generation time so the top level
// reaches the requested amplitude exactly.
var (
	asce41Fractions = []float64{0.0025, 0.005, 0.0075, 0.010, 0.015, 0.020, 0.030, 0.040, 0.060}
	asce41Reps      = []int{3, 3, 3, 3, 3, 3, 2, 2, 2}
)

// Modified ATC-24 levels, already expressed as fractions of the peak.
var (
	atc24Fractions = []float64{0.1, 0.2, 0.3, 0.5, 0.7, 1.0}
	atc24Reps      = []int{3, 3, 3, 2, 2, 1}
)

// Generate produces the loading history for a spec. It fails with
// ErrInvalidParameter on non-positive MaxAmplitude, on non-positive Alpha
// for FEMA461, and on an unknown kind.
func Generate(spec Spec) (*Sequence, error) {
	if spec.MaxAmplitude <= 0 {
		return nil, fmt.Errorf("%w: max amplitude must be positive, got %g",
			ErrInvalidParameter, spec.MaxAmplitude)
	}

	var (
		disp []float64
		err  error
	)
	switch spec.Kind {
	case ASCE41:
		disp, err = tableCycles(asce41Fractions, asce41Reps, spec.MaxAmplitude, true)
	case ModifiedATC24:
		disp, err = tableCycles(atc24Fractions, atc24Reps, spec.MaxAmplitude, false)
	case FEMA461:
		disp, err = geometricCycles(spec.MaxAmplitude, spec.Alpha)
	default:
		return nil, fmt.Errorf("%w: unknown protocol kind %d", ErrInvalidParameter, int(spec.Kind))
	}
	if err != nil {
		return nil, err
	}

	return &Sequence{Kind: spec.Kind, Time: normalizeTime(disp), Disp: disp}, nil
}

// tableCycles emits the fixed-table protocols: a leading zero, then for
// each level its (+A, -A) pair repeated, then a trailing zero. With
// rescale set the fractions are divided by the top entry, so the largest
// level hits maxAmplitude exactly.
func tableCycles(fractions []float64, reps []int, maxAmplitude float64, rescale bool) ([]float64, error) {
	if len(fractions) == 0 || len(fractions) != len(reps) {
		return nil, fmt.Errorf("%w: malformed level table", ErrInvalidParameter)
	}

	top := fractions[len(fractions)-1]
	prev := 0.0
	disp := make([]float64, 0, 2*totalReps(reps)+2)
	disp = append(disp, 0.0)

	for i, f := range fractions {
		if f <= prev || reps[i] <= 0 {
			return nil, fmt.Errorf("%w: malformed level table", ErrInvalidParameter)
		}
		prev = f

		a := f
		if rescale {
			a = f / top
		}
		amp := a * maxAmplitude
		for r := 0; r < reps[i]; r++ {
			disp = append(disp, amp, -amp)
		}
	}

	return append(disp, 0.0), nil
}

// geometricCycles emits the FEMA-461 history: one cycle per level,
// starting at 1% of the peak and growing by (1+alpha) while strictly
// below the peak. A level that fails to grow in floating point would
// loop forever, so stalled growth is rejected instead.
func geometricCycles(maxAmplitude, alpha float64) ([]float64, error) {
	if alpha <= 0 {
		return nil, fmt.Errorf("%w: alpha must be positive, got %g", ErrInvalidParameter, alpha)
	}

	disp := []float64{0.0}
	d := 0.01 * maxAmplitude
	for math.Abs(d) < maxAmplitude {
		disp = append(disp, d, -d)
		next := d * (1.0 + alpha)
		if next <= d {
			return nil, fmt.Errorf("%w: alpha %g stalls amplitude growth", ErrInvalidParameter, alpha)
		}
		d = next
	}

	return append(disp, 0.0), nil
}

// normalizeTime maps an amplitude list to its [0, 1] progress axis:
// cumulative absolute step-to-step change, divided by the total. The
// all-zero history keeps the raw cumulative values to avoid dividing
// by zero.
func normalizeTime(disp []float64) []float64 {
	t := make([]float64, len(disp))
	for i := 1; i < len(disp); i++ {
		t[i] = t[i-1] + math.Abs(disp[i]-disp[i-1])
	}

	total := t[len(t)-1]
	if total > 1e-10 {
		for i := range t {
			t[i] /= total
		}
	}
	return t
}

func totalReps(reps []int) int {
	n := 0
	for _, r := range reps {
		n += r
	}
	return n
}
