package material

import (
	"fmt"
	"math"
)

// Steel01 is a bilinear steel law with kinematic hardening: elastic
// modulus E, yield strength Fy, post-yield slope B*E. An optional
// MaxStrain turns strains past that magnitude into an ErrFailure,
// modeling bar rupture.
type Steel01 struct {
	Fy        float64
	E         float64
	B         float64
	MaxStrain float64 // 0 disables the rupture check

	// committed state
	cPlastic float64 // plastic strain
	cBack    float64 // kinematic back stress

	// trial state
	tPlastic float64
	tBack    float64
}

func NewSteel01(fy, e, b float64) (*Steel01, error) {
	if fy <= 0 {
		return nil, fmt.Errorf("%w: yield strength must be positive, got %g", ErrInvalidParameter, fy)
	}
	if e <= 0 {
		return nil, fmt.Errorf("%w: modulus must be positive, got %g", ErrInvalidParameter, e)
	}
	if b < 0 || b >= 1 {
		return nil, fmt.Errorf("%w: hardening ratio must be in [0, 1), got %g", ErrInvalidParameter, b)
	}
	return &Steel01{Fy: fy, E: e, B: b}, nil
}

func (s *Steel01) Name() string { return "steel01" }

func (s *Steel01) Trial(strain float64) (float64, float64, error) {
	if s.MaxStrain > 0 && math.Abs(strain) > s.MaxStrain {
		return 0, 0, fmt.Errorf("%w: strain %g exceeds rupture limit %g", ErrFailure, strain, s.MaxStrain)
	}

	s.tPlastic = s.cPlastic
	s.tBack = s.cBack

	trial := s.E * (strain - s.cPlastic)
	xi := trial - s.cBack
	f := math.Abs(xi) - s.Fy
	if f <= 0 {
		return trial, s.E, nil
	}

	// Plastic corrector. The hardening modulus H gives a post-yield
	// slope of exactly B*E.
	h := s.hardening()
	dGamma := f / (s.E + h)
	sign := 1.0
	if xi < 0 {
		sign = -1.0
	}

	s.tPlastic = s.cPlastic + sign*dGamma
	s.tBack = s.cBack + sign*h*dGamma

	stress := trial - sign*s.E*dGamma
	tangent := s.E * h / (s.E + h)
	return stress, tangent, nil
}

func (s *Steel01) Commit() {
	s.cPlastic = s.tPlastic
	s.cBack = s.tBack
}

func (s *Steel01) Reset() {
	s.cPlastic, s.cBack = 0, 0
	s.tPlastic, s.tBack = 0, 0
}

func (s *Steel01) hardening() float64 {
	if s.B == 0 {
		return 0
	}
	return s.B * s.E / (1 - s.B)
}
