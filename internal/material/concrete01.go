package material

import "fmt"

// Concrete01 is a Kent-Scott-Park concrete law: parabolic compression
// envelope to (Epsc0, Fpc), linear descent to the crushing point
// (Epsu, Fpcu), residual stress beyond, degraded linear unloading and
// reloading through the residual-strain point, and no tensile strength.
//
// Compression is negative. Constructors accept positive magnitudes and
// flip their sign, so NewConcrete01(30, 0.002, 6, 0.02) and the
// all-negative form describe the same material.
type Concrete01 struct {
	Fpc   float64 // compressive strength, < 0
	Epsc0 float64 // strain at peak strength, < 0
	Fpcu  float64 // crushing strength, < 0 or 0
	Epsu  float64 // strain at crushing strength, < 0

	// committed state
	cEpsMin float64 // most compressive strain reached
	cEpsRes float64 // residual strain the unload line passes through
	cSlope  float64 // unload/reload slope

	// trial state
	tEpsMin float64
}

func NewConcrete01(fpc, epsc0, fpcu, epsu float64) (*Concrete01, error) {
	fpc, epsc0, fpcu, epsu = negate(fpc), negate(epsc0), negate(fpcu), negate(epsu)

	if fpc == 0 || epsc0 == 0 {
		return nil, fmt.Errorf("%w: peak strength and strain must be nonzero", ErrInvalidParameter)
	}
	if epsu >= epsc0 {
		return nil, fmt.Errorf("%w: crushing strain %g must exceed peak strain %g in magnitude",
			ErrInvalidParameter, epsu, epsc0)
	}
	if fpcu < fpc {
		return nil, fmt.Errorf("%w: crushing strength %g cannot exceed peak strength %g in magnitude",
			ErrInvalidParameter, fpcu, fpc)
	}

	c := &Concrete01{Fpc: fpc, Epsc0: epsc0, Fpcu: fpcu, Epsu: epsu}
	c.Reset()
	return c, nil
}

func (c *Concrete01) Name() string { return "concrete01" }

// Ec returns the initial tangent 2*Fpc/Epsc0.
func (c *Concrete01) Ec() float64 { return 2 * c.Fpc / c.Epsc0 }

func (c *Concrete01) Trial(strain float64) (float64, float64, error) {
	c.tEpsMin = c.cEpsMin

	// Open crack: no tension capacity past the residual strain.
	if strain >= c.cEpsRes {
		return 0, 0, nil
	}

	// New compressive excursion follows the envelope.
	if strain <= c.cEpsMin {
		c.tEpsMin = strain
		sig, tan := c.envelope(strain)
		return sig, tan, nil
	}

	// Between the residual point and the envelope: degraded linear
	// unload/reload line, never stronger than the envelope.
	sig := c.cSlope * (strain - c.cEpsRes)
	if env, tan := c.envelope(strain); sig < env {
		return env, tan, nil
	}
	return sig, c.cSlope, nil
}

func (c *Concrete01) Commit() {
	if c.tEpsMin < c.cEpsMin {
		c.cEpsMin = c.tEpsMin
		c.cEpsRes, c.cSlope = c.residual(c.cEpsMin)
	}
}

func (c *Concrete01) Reset() {
	c.cEpsMin = 0
	c.cEpsRes = 0
	c.cSlope = c.Ec()
	c.tEpsMin = 0
}

// envelope evaluates the monotonic compression backbone at a strain <= 0.
func (c *Concrete01) envelope(eps float64) (sig, tan float64) {
	switch {
	case eps >= 0:
		return 0, 0
	case eps > c.Epsc0:
		eta := eps / c.Epsc0
		return c.Fpc * (2*eta - eta*eta), 2 * c.Fpc / c.Epsc0 * (1 - eta)
	case eps > c.Epsu:
		slope := (c.Fpcu - c.Fpc) / (c.Epsu - c.Epsc0)
		return c.Fpc + slope*(eps-c.Epsc0), slope
	default:
		return c.Fpcu, 0
	}
}

// residual computes the Karsan-Jirsa residual strain for the deepest
// excursion and the matching unload slope.
func (c *Concrete01) residual(epsMin float64) (epsRes, slope float64) {
	eps := epsMin
	if eps < c.Epsu {
		eps = c.Epsu
	}

	eta := eps / c.Epsc0
	var ratio float64
	if eta < 2 {
		ratio = 0.145*eta*eta + 0.13*eta
	} else {
		ratio = 0.707*(eta-2) + 0.834
	}
	epsRes = ratio * c.Epsc0

	sig, _ := c.envelope(eps)
	if denom := eps - epsRes; denom < 0 {
		slope = sig / denom
	} else {
		slope = c.Ec()
	}
	return epsRes, slope
}

// negate flips a positive magnitude into the negative sign convention.
func negate(v float64) float64 {
	if v > 0 {
		return -v
	}
	return v
}
