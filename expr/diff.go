package expr

import (
	"fmt"

	"github.com/sketchsolve/core/sketch"
)

// PartialWrt returns a new DAG computing d(e)/d(h) by the standard symbolic
// rules. If e does not contain h at all, the result is the constant 0
// (DependsOn is checked first so unrelated subtrees short-circuit instead of
// building dead arithmetic).
func (e *Expr) PartialWrt(h sketch.ParamHandle) *Expr {
	if !e.DependsOn(h) {
		return FromConst(0)
	}
	switch e.Kind {
	case KindConst:
		return FromConst(0)
	case KindParam:
		if e.ParamH == h {
			return FromConst(1)
		}
		return FromConst(0)
	case KindParamPtr:
		// The numeric kernel differentiates pointer-ified equations
		// directly (System.Jacobian runs PartialWrt on DAGs that have
		// already been through DeepCopyWithParamsAsPointers), so a
		// KindParamPtr leaf must resolve exactly like its pre-rewrite
		// KindParam counterpart, via the Param it points at.
		if e.ParamP.H == h {
			return FromConst(1)
		}
		return FromConst(0)
	case KindUnary:
		return e.diffUnary(h)
	case KindBinary:
		return e.diffBinary(h)
	default:
		panic(fmt.Sprintf("expr: unknown node kind %d", e.Kind))
	}
}

func (e *Expr) diffUnary(h sketch.ParamHandle) *Expr {
	da := e.A.PartialWrt(h)
	switch e.Op {
	case OpNeg:
		return Negate(da)
	case OpSqrt:
		// d/dx sqrt(a) = da / (2*sqrt(a))
		return Div(da, Times(FromConst(2), Sqrt(e.A)))
	case OpSquare:
		// d/dx a^2 = 2*a*da
		return Times(FromConst(2), Times(e.A, da))
	case OpSin:
		return Times(Cos(e.A), da)
	case OpCos:
		return Negate(Times(Sin(e.A), da))
	case OpAsin:
		// d/dx asin(a) = da / sqrt(1-a^2)
		return Div(da, Sqrt(Minus(FromConst(1), Square(e.A))))
	case OpAcos:
		// d/dx acos(a) = -da / sqrt(1-a^2)
		return Negate(Div(da, Sqrt(Minus(FromConst(1), Square(e.A)))))
	default:
		panic(fmt.Sprintf("expr: unknown unary op %d", e.Op))
	}
}

func (e *Expr) diffBinary(h sketch.ParamHandle) *Expr {
	da := e.A.PartialWrt(h)
	db := e.B.PartialWrt(h)
	switch e.Op {
	case OpAdd:
		return Plus(da, db)
	case OpSub:
		return Minus(da, db)
	case OpMul:
		// product rule: d(a*b) = da*b + a*db
		return Plus(Times(da, e.B), Times(e.A, db))
	case OpDiv:
		// quotient rule: d(a/b) = (da*b - a*db) / b^2
		return Div(Minus(Times(da, e.B), Times(e.A, db)), Square(e.B))
	default:
		panic(fmt.Sprintf("expr: unknown binary op %d", e.Op))
	}
}
