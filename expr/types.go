// Package expr implements the immutable DAG of algebraic expression nodes
// used to build constraint residuals: construction, evaluation, symbolic
// partial differentiation, constant folding and the param-pointer rewrite
// that makes Jacobian evaluation cheap inside the Newton loop.
//
// Nodes are never mutated after construction: every transform
// (FoldConstants, PartialWrt, DeepCopyWithParamsAsPointers) returns a new
// DAG.
package expr

import "github.com/sketchsolve/core/sketch"

// Op identifies a unary or binary operator.
type Op int

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpNeg
	OpSqrt
	OpSquare
	OpSin
	OpCos
	OpAsin
	OpAcos
)

// Kind tags which variant an *Expr node is.
type Kind int

const (
	KindConst Kind = iota
	KindParam
	KindParamPtr
	KindUnary
	KindBinary
)

// Expr is one node of the expression DAG. Only the fields relevant to Kind
// are meaningful:
//
//	KindConst:    Value
//	KindParam:    ParamH
//	KindParamPtr: ParamP (resolved pointer into a solver's working array)
//	KindUnary:    Op, A
//	KindBinary:   Op, A, B
type Expr struct {
	Kind Kind
	Op   Op

	Value  float64
	ParamH sketch.ParamHandle
	ParamP *sketch.Param

	A, B *Expr
}

// FromConst builds a constant leaf.
func FromConst(v float64) *Expr {
	return &Expr{Kind: KindConst, Value: v}
}

// FromParam builds a leaf referencing a parameter by handle. It is rewritten
// to a KindParamPtr or KindConst node by DeepCopyWithParamsAsPointers before
// the numeric kernel's hot loop runs.
func FromParam(h sketch.ParamHandle) *Expr {
	return &Expr{Kind: KindParam, ParamH: h}
}

func binary(op Op, a, b *Expr) *Expr { return &Expr{Kind: KindBinary, Op: op, A: a, B: b} }
func unary(op Op, a *Expr) *Expr     { return &Expr{Kind: KindUnary, Op: op, A: a} }

// Plus, Minus, Times and Div build the four binary arithmetic nodes.
func Plus(a, b *Expr) *Expr  { return binary(OpAdd, a, b) }
func Minus(a, b *Expr) *Expr { return binary(OpSub, a, b) }
func Times(a, b *Expr) *Expr { return binary(OpMul, a, b) }
func Div(a, b *Expr) *Expr   { return binary(OpDiv, a, b) }

// Negate, Sqrt, Square, Sin, Cos, Asin and Acos build the unary nodes.
func Negate(a *Expr) *Expr { return unary(OpNeg, a) }
func Sqrt(a *Expr) *Expr   { return unary(OpSqrt, a) }
func Square(a *Expr) *Expr { return unary(OpSquare, a) }
func Sin(a *Expr) *Expr    { return unary(OpSin, a) }
func Cos(a *Expr) *Expr    { return unary(OpCos, a) }
func Asin(a *Expr) *Expr   { return unary(OpAsin, a) }
func Acos(a *Expr) *Expr   { return unary(OpAcos, a) }

// Sum folds a slice of expressions with Plus, returning the zero constant
// for an empty slice.
func Sum(terms ...*Expr) *Expr {
	if len(terms) == 0 {
		return FromConst(0)
	}
	out := terms[0]
	for _, t := range terms[1:] {
		out = Plus(out, t)
	}
	return out
}

// Vec3 and Vec2 are the ExprVector forms the emitter hands around: three (or
// two, in a workplane) scalar component expressions for a point/normal/
// vector entity.
type Vec3 struct{ X, Y, Z *Expr }
type Vec2 struct{ U, V *Expr }

// Dot3 builds the scalar dot-product expression of two Vec3s.
func Dot3(a, b Vec3) *Expr {
	return Plus(Plus(Times(a.X, b.X), Times(a.Y, b.Y)), Times(a.Z, b.Z))
}

// Cross3 builds the Vec3 cross-product expression of two Vec3s.
func Cross3(a, b Vec3) Vec3 {
	return Vec3{
		X: Minus(Times(a.Y, b.Z), Times(a.Z, b.Y)),
		Y: Minus(Times(a.Z, b.X), Times(a.X, b.Z)),
		Z: Minus(Times(a.X, b.Y), Times(a.Y, b.X)),
	}
}

// MinusVec3 builds the componentwise difference a-b.
func MinusVec3(a, b Vec3) Vec3 {
	return Vec3{X: Minus(a.X, b.X), Y: Minus(a.Y, b.Y), Z: Minus(a.Z, b.Z)}
}

// MagnitudeSquared3 builds |v|^2 = v.v.
func MagnitudeSquared3(v Vec3) *Expr { return Dot3(v, v) }

// Magnitude3 builds |v| = sqrt(v.v).
func Magnitude3(v Vec3) *Expr { return Sqrt(MagnitudeSquared3(v)) }

// Dot2 and Magnitude2 are the workplane-projected analogues of Dot3/Magnitude3.
func Dot2(a, b Vec2) *Expr { return Plus(Times(a.U, b.U), Times(a.V, b.V)) }
func MinusVec2(a, b Vec2) Vec2 {
	return Vec2{U: Minus(a.U, b.U), V: Minus(a.V, b.V)}
}
func MagnitudeSquared2(v Vec2) *Expr { return Dot2(v, v) }
func Magnitude2(v Vec2) *Expr        { return Sqrt(MagnitudeSquared2(v)) }
