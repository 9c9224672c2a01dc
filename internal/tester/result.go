package tester

import "math"

// Result holds the recorded response of one replayed test. Time is the
// normalized analysis time, not the protocol's travel coordinate.
type Result struct {
	Strain    []float64
	Stress    []float64
	Time      []float64
	Converged bool
	Material  string
	Protocol  string
}

func (r *Result) NumPoints() int { return len(r.Strain) }

// PeakStress is the largest absolute stress reached.
func (r *Result) PeakStress() float64 {
	peak := 0.0
	for _, s := range r.Stress {
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}
	return peak
}

// PeakStrain is the largest absolute strain reached.
func (r *Result) PeakStrain() float64 {
	peak := 0.0
	for _, s := range r.Strain {
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}
	return peak
}

// EnergyDissipated integrates stress over strain with the trapezoid
// rule. For a closed hysteresis loop this is the dissipated energy; for
// a monotonic run it is the area under the curve.
func (r *Result) EnergyDissipated() float64 {
	e := 0.0
	for i := 1; i < len(r.Strain); i++ {
		e += 0.5 * (r.Stress[i] + r.Stress[i-1]) * (r.Strain[i] - r.Strain[i-1])
	}
	return e
}
