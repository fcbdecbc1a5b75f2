package expr

import "github.com/sketchsolve/core/sketch"

// DeepCopyWithParamsAsPointers walks the DAG and, for every KindParam leaf,
// looks its handle up first in firstTry and then in thenTry, following any
// Substd chain to the representative parameter. If found and that parameter
// is Known, the node is rewritten to a KindConst leaf holding its current
// value; otherwise it is rewritten to a KindParamPtr pointing directly at
// the live Param slot.
//
// This is the critical optimization described for the Numeric Kernel: once
// rewritten, every Newton iteration evaluates the Jacobian without a single
// map or table lookup — KindParamPtr dereferences one pointer.
//
// thenTry may be nil, in which case a miss in firstTry panics: every
// parameter the emitter references must exist in at least one of the two
// tables the caller supplies (almost always the solve's working ParamTable,
// with a nil fallback).
func (e *Expr) DeepCopyWithParamsAsPointers(firstTry, thenTry *sketch.ParamTable) *Expr {
	switch e.Kind {
	case KindConst:
		return FromConst(e.Value)
	case KindParamPtr:
		return &Expr{Kind: KindParamPtr, ParamP: e.ParamP}
	case KindParam:
		p := lookupParam(e.ParamH, firstTry, thenTry)
		for seen := map[sketch.ParamHandle]bool{}; p.Substd.Valid() && !seen[p.H]; {
			seen[p.H] = true
			p = lookupParam(p.Substd, firstTry, thenTry)
		}
		if p.Known {
			return FromConst(p.Val)
		}
		return &Expr{Kind: KindParamPtr, ParamP: p}
	case KindUnary:
		return unary(e.Op, e.A.DeepCopyWithParamsAsPointers(firstTry, thenTry))
	case KindBinary:
		return binary(e.Op, e.A.DeepCopyWithParamsAsPointers(firstTry, thenTry), e.B.DeepCopyWithParamsAsPointers(firstTry, thenTry))
	default:
		panic("expr: unknown node kind in DeepCopyWithParamsAsPointers")
	}
}

func lookupParam(h sketch.ParamHandle, firstTry, thenTry *sketch.ParamTable) *sketch.Param {
	if firstTry != nil {
		if p, ok := firstTry.FindByIDNoOops(h); ok {
			return p
		}
	}
	if thenTry != nil {
		if p, ok := thenTry.FindByIDNoOops(h); ok {
			return p
		}
	}
	panic("expr: param handle not found in either table during rewrite")
}
