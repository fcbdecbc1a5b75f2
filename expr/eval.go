package expr

import (
	"fmt"
	"math"

	"github.com/sketchsolve/core/sketch"
)

// Eval recursively evaluates e. KindParam looks the handle up through store
// (a second, slower path kept for pre-rewrite diagnostics and tests);
// KindParamPtr dereferences the resolved pointer directly, with no lookup at
// all — this is the fast path every Newton iteration takes after
// DeepCopyWithParamsAsPointers has run.
//
// The emitter is responsible for never constructing an expression that
// takes sqrt of a negative value or divides by a quantity that can vanish
// at a valid solution; Eval does not itself guard against those cases and a
// NaN here indicates an emitter bug, not a user error.
func (e *Expr) Eval(store *sketch.Store) float64 {
	switch e.Kind {
	case KindConst:
		return e.Value
	case KindParam:
		if store == nil {
			panic("expr: Eval of KindParam requires a non-nil store")
		}
		return store.Val(e.ParamH)
	case KindParamPtr:
		return e.ParamP.Val
	case KindUnary:
		return evalUnary(e.Op, e.A.Eval(store))
	case KindBinary:
		return evalBinary(e.Op, e.A.Eval(store), e.B.Eval(store))
	default:
		panic(fmt.Sprintf("expr: unknown node kind %d", e.Kind))
	}
}

func evalUnary(op Op, a float64) float64 {
	switch op {
	case OpNeg:
		return -a
	case OpSqrt:
		return math.Sqrt(a)
	case OpSquare:
		return a * a
	case OpSin:
		return math.Sin(a)
	case OpCos:
		return math.Cos(a)
	case OpAsin:
		return math.Asin(a)
	case OpAcos:
		return math.Acos(a)
	default:
		panic(fmt.Sprintf("expr: unknown unary op %d", op))
	}
}

func evalBinary(op Op, a, b float64) float64 {
	switch op {
	case OpAdd:
		return a + b
	case OpSub:
		return a - b
	case OpMul:
		return a * b
	case OpDiv:
		return a / b
	default:
		panic(fmt.Sprintf("expr: unknown binary op %d", op))
	}
}
