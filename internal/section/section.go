// Package section builds fiber cross-sections and runs moment-curvature
// analyses on them. Each fiber owns an independent material law, so a
// section is a self-contained bundle of state with no global solver
// bookkeeping behind it.
package section

import (
	"errors"
	"fmt"

	"github.com/aperez/cyclab/internal/material"
)

var ErrInvalidGeometry = errors.New("section: invalid geometry")

// Fiber is one integration point: centroid offset from the section
// centroid, tributary area, and its own law instance.
type Fiber struct {
	Y    float64
	Z    float64
	Area float64
	Law  material.Law
}

// Section is a fiber bundle under plane-section kinematics.
type Section struct {
	Fibers []Fiber
}

// Reset returns every fiber law to its virgin state.
func (s *Section) Reset() {
	for i := range s.Fibers {
		s.Fibers[i].Law.Reset()
	}
}

// LawFactory produces a fresh law instance per fiber. Fibers cannot
// share laws: each carries independent committed state.
type LawFactory func() (material.Law, error)

// RectangularColumn describes a rectangular reinforced column: overall
// dimensions, cover to the bar centers, fiber counts for the concrete
// grid, and a symmetric bar layout (two bar rows top and bottom).
type RectangularColumn struct {
	B       float64 // width  (z direction)
	H       float64 // height (y direction)
	Cover   float64
	NFibers int // concrete fibers over the height, per column of the grid
	NBars   int // bars per face row
	BarArea float64
}

// Build discretizes the column into cover and core concrete fibers plus
// steel bar fibers. Core fibers lie inside the cover offset and use the
// confined law; the rest of the grid uses the cover law.
func (rc RectangularColumn) Build(core, cover, steel LawFactory) (*Section, error) {
	if rc.B <= 0 || rc.H <= 0 {
		return nil, fmt.Errorf("%w: dimensions must be positive (B=%g, H=%g)", ErrInvalidGeometry, rc.B, rc.H)
	}
	if rc.Cover <= 0 || 2*rc.Cover >= rc.H || 2*rc.Cover >= rc.B {
		return nil, fmt.Errorf("%w: cover %g does not fit the section", ErrInvalidGeometry, rc.Cover)
	}
	if rc.NFibers < 2 {
		return nil, fmt.Errorf("%w: need at least 2 fibers over the height", ErrInvalidGeometry)
	}
	if rc.NBars < 2 || rc.BarArea <= 0 {
		return nil, fmt.Errorf("%w: bar layout requires NBars >= 2 and positive area", ErrInvalidGeometry)
	}

	sec := &Section{}

	// Concrete grid: NFibers strips over the height, split into a core
	// and two cover columns over the width.
	dy := rc.H / float64(rc.NFibers)
	coreB := rc.B - 2*rc.Cover
	coreTop := rc.H/2 - rc.Cover
	for i := 0; i < rc.NFibers; i++ {
		y := -rc.H/2 + (float64(i)+0.5)*dy

		inCore := y > -coreTop && y < coreTop
		if inCore {
			law, err := core()
			if err != nil {
				return nil, err
			}
			sec.Fibers = append(sec.Fibers, Fiber{Y: y, Area: coreB * dy, Law: law})

			for _, z := range []float64{-(rc.B - rc.Cover) / 2, (rc.B - rc.Cover) / 2} {
				law, err := cover()
				if err != nil {
					return nil, err
				}
				sec.Fibers = append(sec.Fibers, Fiber{Y: y, Z: z, Area: rc.Cover * dy, Law: law})
			}
		} else {
			law, err := cover()
			if err != nil {
				return nil, err
			}
			sec.Fibers = append(sec.Fibers, Fiber{Y: y, Area: rc.B * dy, Law: law})
		}
	}

	// Bar rows at the cover line, top and bottom.
	for _, y := range []float64{rc.H/2 - rc.Cover, -(rc.H/2 - rc.Cover)} {
		for j := 0; j < rc.NBars; j++ {
			z := -coreB/2 + float64(j)*coreB/float64(rc.NBars-1)
			law, err := steel()
			if err != nil {
				return nil, err
			}
			sec.Fibers = append(sec.Fibers, Fiber{Y: y, Z: z, Area: rc.BarArea, Law: law})
		}
	}

	return sec, nil
}
