// Package material implements uniaxial constitutive laws for hysteresis
// testing. A law carries its own committed state, replacing the
// process-global tag/model bookkeeping of typical FE scripting with an
// explicit object owned by the caller.
//
// Laws follow trial/commit semantics: Trial evaluates a candidate strain
// against the last committed state without altering it, so equilibrium
// iterations may probe freely; Commit makes the last trial permanent.
package material

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter indicates a law was constructed with
	// out-of-range parameters.
	ErrInvalidParameter = errors.New("material: invalid parameter")

	// ErrFailure indicates the material response is no longer defined,
	// e.g. strain past a configured rupture limit. Drivers treat it like
	// solver non-convergence and truncate to the last committed step.
	ErrFailure = errors.New("material: response failure")
)

// Law is a path-dependent uniaxial stress-strain relation.
type Law interface {
	Name() string
	// Trial evaluates the law at a candidate strain, measured from the
	// last committed state. It returns the stress and tangent modulus.
	Trial(strain float64) (stress, tangent float64, err error)
	// Commit makes the last trial state the new committed state.
	Commit()
	// Reset returns the law to its virgin state.
	Reset()
}

// New builds a law by name from a flat parameter map, mirroring how
// models are resolved from CLI and config input.
func New(name string, params map[string]float64) (Law, error) {
	switch name {
	case "elastic":
		return NewElastic(params["e"])
	case "steel01":
		s, err := NewSteel01(params["fy"], params["e"], params["b"])
		if err != nil {
			return nil, err
		}
		if limit, ok := params["max_strain"]; ok {
			s.MaxStrain = limit
		}
		return s, nil
	case "concrete01":
		return NewConcrete01(params["fpc"], params["epsc0"], params["fpcu"], params["epsu"])
	case "concrete02":
		return NewConcrete02(params["fpc"], params["epsc0"], params["fpcu"], params["epsu"],
			params["ft"], params["ets"])
	default:
		return nil, fmt.Errorf("%w: unknown material %q", ErrInvalidParameter, name)
	}
}

// Names lists the materials New understands.
func Names() []string {
	return []string{"elastic", "steel01", "concrete01", "concrete02"}
}
