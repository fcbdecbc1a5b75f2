package expr

import "github.com/sketchsolve/core/sketch"

// Equation pairs a stable handle with the residual expression it wraps.
// Equations are generated fresh on every solve and discarded with the
// Arena that built them; only the handle needs to survive across solves,
// which EquationHandleFor guarantees by deriving it from the owning
// constraint plus an index rather than from allocation order.
type Equation struct {
	H EquationHandle
	E *Expr
}

// EquationHandle re-exports sketch.EquationHandle so callers building
// Equation values don't need to import sketch directly just for the type.
type EquationHandle = sketch.EquationHandle
