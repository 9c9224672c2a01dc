package material

import "fmt"

// Concrete02 extends Concrete01 with linear tension stiffening: elastic
// tension up to Ft, then linear softening with slope Ets down to zero.
// Tensile strain is measured from the compression residual point, so
// prior crushing shifts and effectively weakens the tension branch.
// Unloading from a tension excursion follows the secant to that point.
type Concrete02 struct {
	comp *Concrete01
	Ft   float64 // tensile strength, > 0
	Ets  float64 // tension softening slope, > 0

	// committed / trial tensile excursion, measured from the residual point
	cEpsMaxT float64
	tEpsMaxT float64
}

func NewConcrete02(fpc, epsc0, fpcu, epsu, ft, ets float64) (*Concrete02, error) {
	comp, err := NewConcrete01(fpc, epsc0, fpcu, epsu)
	if err != nil {
		return nil, err
	}
	if ft <= 0 {
		return nil, fmt.Errorf("%w: tensile strength must be positive, got %g", ErrInvalidParameter, ft)
	}
	if ets <= 0 {
		return nil, fmt.Errorf("%w: tension softening slope must be positive, got %g", ErrInvalidParameter, ets)
	}
	return &Concrete02{comp: comp, Ft: ft, Ets: ets}, nil
}

func (c *Concrete02) Name() string { return "concrete02" }

func (c *Concrete02) Trial(strain float64) (float64, float64, error) {
	// The compression core tracks excursion state in every branch.
	sig, tan, err := c.comp.Trial(strain)
	if err != nil {
		return 0, 0, err
	}
	c.tEpsMaxT = c.cEpsMaxT

	et := strain - c.comp.cEpsRes
	if et <= 0 {
		return sig, tan, nil
	}

	if et >= c.cEpsMaxT {
		c.tEpsMaxT = et
		return c.tensionEnvelope(et)
	}

	// Inside a previous tension excursion: secant to the residual point.
	peak, _, _ := c.tensionEnvelope(c.cEpsMaxT)
	secant := peak / c.cEpsMaxT
	return secant * et, secant, nil
}

func (c *Concrete02) Commit() {
	c.comp.Commit()
	if c.tEpsMaxT > c.cEpsMaxT {
		c.cEpsMaxT = c.tEpsMaxT
	}
}

func (c *Concrete02) Reset() {
	c.comp.Reset()
	c.cEpsMaxT, c.tEpsMaxT = 0, 0
}

func (c *Concrete02) tensionEnvelope(et float64) (float64, float64, error) {
	ec := c.comp.Ec()
	eps0 := c.Ft / ec
	switch {
	case et <= eps0:
		return ec * et, ec, nil
	default:
		sig := c.Ft - c.Ets*(et-eps0)
		if sig <= 0 {
			return 0, 0, nil
		}
		return sig, -c.Ets, nil
	}
}
