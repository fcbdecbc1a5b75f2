package groupgen

import (
	"fmt"

	"github.com/sketchsolve/core/emit"
	"github.com/sketchsolve/core/sketch"
)

// auxParamSeed is the initial guess given to a constraint's auxiliary
// parameter (PT_ON_LINE's position fraction, a 3D PARALLEL/SAME_ORIENTATION/
// CUBIC_LINE_TANGENT's scale factor). 0.5 sits mid-line for the position
// fraction and is a harmless starting scale for the others; Newton iteration
// corrects it regardless.
const auxParamSeed = 0.5

// Constraint adds c to the store, first validating that workplane-only kinds
// actually carry a workplane and allocating the one auxiliary parameter a
// handful of kinds need before their equations can be built.
func Constraint(s *sketch.Store, c *sketch.ConstraintBase) (*sketch.ConstraintBase, error) {
	if emit.Is2DOnly(c.Kind) && c.Wrkpl == sketch.FreeIn3D {
		return nil, fmt.Errorf("groupgen: constraint kind %d requires a workplane", c.Kind)
	}
	if c.NeedsAuxParam() {
		p := s.NewParam(c.Group, auxParamSeed)
		c.ValP = p.H
	}
	return s.NewConstraint(c), nil
}
