package numeric

import (
	"github.com/sketchsolve/core/expr"
	"github.com/sketchsolve/core/sketch"
)

// Substitution is the Phase A pass: before the expensive Newton iteration
// runs, equations of the trivial shape "param - param" or "param - const"
// are pulled out and solved directly by merging the parameters (or fixing
// one to a constant) rather than carrying them into the Jacobian. A sketch
// with many POINTS_COINCIDENT constraints collapses most of its unknowns
// this way before Phase B ever sees them.
type Substitution struct {
	store *sketch.Store
	uf    *unionFind
	// fixed records a param forced to a constant by a "param - const"
	// equation, keyed by the union-find root of its set.
	fixed map[sketch.ParamHandle]float64
}

// NewSubstitution prepares an empty substitution pass over store.
func NewSubstitution(store *sketch.Store) *Substitution {
	return &Substitution{store: store, uf: newUnionFind(), fixed: make(map[sketch.ParamHandle]float64)}
}

// Absorb scans eqs for trivial equality shapes and folds them into the
// union-find; it returns the subset of eqs that were NOT trivial and still
// need to go to Phase B.
func (s *Substitution) Absorb(eqs []expr.Equation) []expr.Equation {
	remaining := make([]expr.Equation, 0, len(eqs))
	for _, eq := range eqs {
		if lhs, rhs, ok := trivialParamEquality(eq.E); ok {
			s.uf.add(lhs)
			if rhs.Valid() {
				s.uf.add(rhs)
				s.uf.union(lhs, rhs)
			} else {
				s.fixed[s.uf.find(lhs)] = rhsConst(eq.E)
			}
			continue
		}
		remaining = append(remaining, eq)
	}
	return remaining
}

// Apply writes the substitution decisions back into the store: every
// non-representative member of a merged set gets Substd pointed at its
// set's representative, and any set pinned to a constant has its
// representative marked Known with that value.
func (s *Substitution) Apply() {
	roots := make(map[sketch.ParamHandle][]sketch.ParamHandle)
	for h := range s.uf.parent {
		root := s.uf.find(h)
		roots[root] = append(roots[root], h)
	}
	for root, members := range roots {
		if val, ok := s.fixed[root]; ok {
			p, err := s.store.Params.FindByID(root)
			if err == nil {
				p.Known = true
				p.Val = val
			}
		}
		for _, h := range members {
			if h == root {
				continue
			}
			p, err := s.store.Params.FindByID(h)
			if err != nil {
				continue
			}
			p.Substd = root
		}
	}
}

// trivialParamEquality recognizes "paramA - paramB" (rhs valid) and
// "param - const" (rhs zero/invalid, the constant recovered separately via
// rhsConst) residual shapes built by emit.pointsCoincident and similar
// constraints once FoldConstants has simplified them.
func trivialParamEquality(e *expr.Expr) (lhs, rhs sketch.ParamHandle, ok bool) {
	folded := e.FoldConstants()
	if folded.Kind == expr.KindParam {
		// "param - 0" folds down to the bare param.
		return folded.ParamH, sketch.NoHandle, true
	}
	if folded.Kind != expr.KindBinary || folded.Op != expr.OpSub {
		return 0, 0, false
	}
	a, b := folded.A, folded.B
	if a.Kind != expr.KindParam {
		return 0, 0, false
	}
	switch b.Kind {
	case expr.KindParam:
		return a.ParamH, b.ParamH, true
	case expr.KindConst:
		return a.ParamH, sketch.NoHandle, true
	default:
		return 0, 0, false
	}
}

func rhsConst(e *expr.Expr) float64 {
	folded := e.FoldConstants()
	if folded.Kind == expr.KindParam {
		return 0
	}
	return folded.B.Value
}
