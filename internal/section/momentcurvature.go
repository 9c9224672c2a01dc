package section

import (
	"context"
	"fmt"
	"math"
)

// MCResult is the recorded moment-curvature response. A non-converged
// result is truncated to the last equilibrated curvature step.
type MCResult struct {
	Curvature []float64
	Moment    []float64
	AxialLoad float64
	Converged bool
}

func (r *MCResult) NumPoints() int { return len(r.Curvature) }

// PeakMoment is the largest absolute moment reached.
func (r *MCResult) PeakMoment() float64 {
	peak := 0.0
	for _, m := range r.Moment {
		if a := math.Abs(m); a > peak {
			peak = a
		}
	}
	return peak
}

// MomentCurvature ramps curvature over a section while holding a
// constant axial load, iterating on the centroidal strain at each step
// so the fiber stress resultant balances the load.
type MomentCurvature struct {
	Section *Section
	Tol     float64 // axial force tolerance, relative to 1+|load|
	MaxIter int
}

func NewMomentCurvature(sec *Section) *MomentCurvature {
	return &MomentCurvature{Section: sec, Tol: 1e-6, MaxIter: 50}
}

// Solve traces the response from zero to maxCurvature in nPoints equal
// increments. Compressive axial load is negative. Steps that fail to
// equilibrate truncate the result with Converged=false, mirroring the
// truncate-to-last-converged policy of the test drivers.
func (mc *MomentCurvature) Solve(ctx context.Context, axialLoad, maxCurvature float64, nPoints int) (*MCResult, error) {
	n := nPoints
	if n <= 0 {
		return nil, fmt.Errorf("section: points must be positive, got %d", nPoints)
	}
	if maxCurvature == 0 {
		return nil, fmt.Errorf("section: max curvature must be nonzero")
	}

	mc.Section.Reset()

	result := &MCResult{
		Curvature: make([]float64, 0, n+1),
		Moment:    make([]float64, 0, n+1),
		AxialLoad: axialLoad,
		Converged: true,
	}

	eps0 := 0.0 // centroidal strain, warm-started across steps
	for i := 0; i <= n; i++ {
		select {
		case <-ctx.Done():
			result.Converged = false
			return result, ctx.Err()
		default:
		}

		kappa := maxCurvature * float64(i) / float64(n)

		var moment float64
		var ok bool
		eps0, moment, ok = mc.equilibrate(eps0, kappa, axialLoad)
		if !ok {
			result.Converged = false
			break
		}

		for j := range mc.Section.Fibers {
			mc.Section.Fibers[j].Law.Commit()
		}

		result.Curvature = append(result.Curvature, kappa)
		result.Moment = append(result.Moment, moment)
	}

	return result, nil
}

// equilibrate runs Newton iterations on the centroidal strain until the
// axial resultant matches the applied load, then returns the strain, the
// bending moment about the centroid, and whether it converged.
func (mc *MomentCurvature) equilibrate(eps0, kappa, axialLoad float64) (float64, float64, bool) {
	tol := mc.Tol * (1 + math.Abs(axialLoad))

	for iter := 0; iter < mc.MaxIter; iter++ {
		axial, moment, stiffness, ok := mc.resultants(eps0, kappa)
		if !ok {
			return eps0, 0, false
		}

		residual := axial - axialLoad
		if math.Abs(residual) <= tol {
			return eps0, moment, true
		}
		// A softening section can present a negative tangent; Newton
		// handles that, but a vanished stiffness cannot recover.
		if stiffness == 0 || math.IsNaN(stiffness) {
			return eps0, 0, false
		}

		eps0 -= residual / stiffness
	}
	return eps0, 0, false
}

// resultants evaluates all fiber laws at the plane-section strain field
// and integrates axial force, moment, and axial stiffness.
func (mc *MomentCurvature) resultants(eps0, kappa float64) (axial, moment, stiffness float64, ok bool) {
	for i := range mc.Section.Fibers {
		f := &mc.Section.Fibers[i]
		strain := eps0 - kappa*f.Y

		stress, tangent, err := f.Law.Trial(strain)
		if err != nil {
			return 0, 0, 0, false
		}

		axial += stress * f.Area
		moment += -stress * f.Area * f.Y
		stiffness += tangent * f.Area
	}
	return axial, moment, stiffness, true
}
