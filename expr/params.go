package expr

import "github.com/sketchsolve/core/sketch"

// DependsOn reports whether e's DAG contains a leaf for h — a KindParam
// node matching by handle directly, or a KindParamPtr node matching through
// the Param it was rewritten to point at. The numeric kernel always builds
// its Jacobian from pointer-ified equations (DeepCopyWithParamsAsPointers
// runs before Solve ever constructs a System), so KindParamPtr must resolve
// the same as KindParam or every post-rewrite dependency check is a false
// negative.
func (e *Expr) DependsOn(h sketch.ParamHandle) bool {
	switch e.Kind {
	case KindParam:
		return e.ParamH == h
	case KindParamPtr:
		return e.ParamP.H == h
	case KindUnary:
		return e.A.DependsOn(h)
	case KindBinary:
		return e.A.DependsOn(h) || e.B.DependsOn(h)
	default:
		return false
	}
}

// bloomBits is the modulus used by ParamsUsed's signature, matching the
// documented "bit = handle mod 61" scheme.
const bloomBits = 61

// ParamsUsed returns a 64-bit Bloom-style signature of the parameter handles
// e references: bit (h mod 61) is set for every KindParam or KindParamPtr
// leaf (the latter via the Param it points at). False positives are
// possible (two different handles can share a bit); false negatives are
// not — if a parameter actually appears in e, its bit is always set. The
// Jacobian builder uses this to skip evaluating an entry it can prove is
// structurally zero without walking the whole subtree.
func (e *Expr) ParamsUsed() uint64 {
	switch e.Kind {
	case KindParam:
		return uint64(1) << (uint32(e.ParamH) % bloomBits)
	case KindParamPtr:
		return uint64(1) << (uint32(e.ParamP.H) % bloomBits)
	case KindUnary:
		return e.A.ParamsUsed()
	case KindBinary:
		return e.A.ParamsUsed() | e.B.ParamsUsed()
	default:
		return 0
	}
}

// MightDependOn uses the Bloom signature to cheaply rule out a dependency;
// a false result is conclusive, a true result requires confirming with
// DependsOn.
func MightDependOn(sig uint64, h sketch.ParamHandle) bool {
	return sig&(uint64(1)<<(uint32(h)%bloomBits)) != 0
}
