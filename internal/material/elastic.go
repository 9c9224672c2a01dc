package material

import "fmt"

// Elastic is a linear law with no history.
type Elastic struct {
	E float64
}

func NewElastic(e float64) (*Elastic, error) {
	if e <= 0 {
		return nil, fmt.Errorf("%w: modulus must be positive, got %g", ErrInvalidParameter, e)
	}
	return &Elastic{E: e}, nil
}

func (e *Elastic) Name() string { return "elastic" }

func (e *Elastic) Trial(strain float64) (float64, float64, error) {
	return e.E * strain, e.E, nil
}

func (e *Elastic) Commit() {}
func (e *Elastic) Reset()  {}
