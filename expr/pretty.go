package expr

import (
	"fmt"
	"strconv"
)

var unaryNames = map[Op]string{
	OpNeg: "-", OpSqrt: "sqrt", OpSquare: "square",
	OpSin: "sin", OpCos: "cos", OpAsin: "asin", OpAcos: "acos",
}

var binaryNames = map[Op]string{
	OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/",
}

// Pretty renders e as a fully-parenthesized infix string, useful for
// diagnostics and test failure messages. It never touches a Store, so it
// works equally well before and after DeepCopyWithParamsAsPointers.
func (e *Expr) Pretty() string {
	switch e.Kind {
	case KindConst:
		return strconv.FormatFloat(e.Value, 'g', -1, 64)
	case KindParam:
		return fmt.Sprintf("p%d", e.ParamH)
	case KindParamPtr:
		return fmt.Sprintf("*p%d", e.ParamP.H)
	case KindUnary:
		name := unaryNames[e.Op]
		if e.Op == OpNeg {
			return "-(" + e.A.Pretty() + ")"
		}
		return name + "(" + e.A.Pretty() + ")"
	case KindBinary:
		return "(" + e.A.Pretty() + " " + binaryNames[e.Op] + " " + e.B.Pretty() + ")"
	default:
		return "?"
	}
}
