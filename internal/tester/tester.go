// Package tester replays load histories through a uniaxial material law
// and records the stress-strain response, standing in for a
// displacement-controlled test rig.
package tester

import (
	"context"
	"fmt"

	"github.com/aperez/cyclab/internal/material"
	"github.com/aperez/cyclab/internal/timeseries"
)

// Tester drives one material law. It is not safe for concurrent use;
// run independent tests on independent law instances.
type Tester struct {
	law material.Law
}

func New(law material.Law) *Tester {
	return &Tester{law: law}
}

// Run replays a series over nPoints equal analysis steps. Material
// failure and context cancellation truncate the result to the last
// committed step and clear Converged; the partial result is still
// returned so callers can inspect how far the test got.
func (t *Tester) Run(ctx context.Context, series timeseries.Series, nPoints int) (*Result, error) {
	if nPoints <= 0 {
		return nil, fmt.Errorf("tester: points must be positive, got %d", nPoints)
	}

	t.law.Reset()

	result := &Result{
		Strain:    make([]float64, 0, nPoints+1),
		Stress:    make([]float64, 0, nPoints+1),
		Time:      make([]float64, 0, nPoints+1),
		Converged: true,
		Material:  t.law.Name(),
		Protocol:  series.Name(),
	}

	for i := 0; i <= nPoints; i++ {
		select {
		case <-ctx.Done():
			result.Converged = false
			return result, ctx.Err()
		default:
		}

		tt := float64(i) / float64(nPoints)
		strain := series.At(tt)

		stress, _, err := t.law.Trial(strain)
		if err != nil {
			result.Converged = false
			break
		}
		t.law.Commit()

		result.Strain = append(result.Strain, strain)
		result.Stress = append(result.Stress, stress)
		result.Time = append(result.Time, tt)
	}

	return result, nil
}

// Backbone traces the monotonic envelope: a negative branch from
// strainMin to zero followed by a positive branch to strainMax, each
// sampled with nPoints steps.
func (t *Tester) Backbone(ctx context.Context, strainMax, strainMin float64, nPoints int) (*Result, error) {
	if strainMax <= 0 {
		return nil, fmt.Errorf("tester: strain max must be positive, got %g", strainMax)
	}
	if strainMin >= 0 {
		return nil, fmt.Errorf("tester: strain min must be negative, got %g", strainMin)
	}

	pos, err := t.Run(ctx, timeseries.Linear{Factor: strainMax}, nPoints)
	if err != nil {
		return nil, err
	}
	neg, err := t.Run(ctx, timeseries.Linear{Factor: strainMin}, nPoints)
	if err != nil {
		return nil, err
	}

	// Reverse the negative branch and drop its duplicate origin point.
	n := len(neg.Strain)
	result := &Result{
		Strain:    make([]float64, 0, n-1+len(pos.Strain)),
		Stress:    make([]float64, 0, n-1+len(pos.Stress)),
		Converged: pos.Converged && neg.Converged,
		Material:  t.law.Name(),
		Protocol:  "backbone",
	}
	for i := n - 1; i > 0; i-- {
		result.Strain = append(result.Strain, neg.Strain[i])
		result.Stress = append(result.Stress, neg.Stress[i])
	}
	result.Strain = append(result.Strain, pos.Strain...)
	result.Stress = append(result.Stress, pos.Stress...)

	total := len(result.Strain)
	result.Time = make([]float64, total)
	for i := range result.Time {
		result.Time[i] = float64(i) / float64(total-1)
	}

	return result, nil
}
