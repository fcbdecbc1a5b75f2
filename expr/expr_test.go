package expr_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sketchsolve/core/expr"
	"github.com/sketchsolve/core/sketch"
)

func TestEvalArithmetic(t *testing.T) {
	e := expr.Plus(expr.Times(expr.FromConst(2), expr.FromConst(3)), expr.FromConst(1))
	assert.Equal(t, 7.0, e.Eval(nil))
}

func TestEvalParamThroughStore(t *testing.T) {
	store := sketch.NewStore()
	p := store.NewParam(1, 4.0)
	e := expr.Square(expr.FromParam(p.H))
	assert.Equal(t, 16.0, e.Eval(store))
}

func TestFoldConstantsIdentities(t *testing.T) {
	x := expr.FromParam(5)
	cases := []struct {
		name string
		in   *expr.Expr
		want string
	}{
		{"x+0", expr.Plus(x, expr.FromConst(0)), x.Pretty()},
		{"x*1", expr.Times(x, expr.FromConst(1)), x.Pretty()},
		{"x*0", expr.Times(x, expr.FromConst(0)), expr.FromConst(0).Pretty()},
		{"const fold", expr.Plus(expr.FromConst(2), expr.FromConst(3)), expr.FromConst(5).Pretty()},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := c.in.FoldConstants()
			assert.Equal(t, c.want, got.Pretty())
		})
	}
}

func TestPartialWrtIndependentIsZero(t *testing.T) {
	e := expr.FromParam(1)
	d := e.PartialWrt(2).FoldConstants()
	assert.Equal(t, expr.KindConst, d.Kind)
	assert.Equal(t, 0.0, d.Value)
}

func TestPartialWrtProductRule(t *testing.T) {
	store := sketch.NewStore()
	a := store.NewParam(1, 3.0)
	b := store.NewParam(1, 5.0)
	e := expr.Times(expr.FromParam(a.H), expr.FromParam(b.H))

	da := e.PartialWrt(a.H)
	require.Equal(t, b.Val, da.Eval(store))

	db := e.PartialWrt(b.H)
	require.Equal(t, a.Val, db.Eval(store))
}

// central finite difference check of the symbolic derivative, grounded on
// the spec's universal "partial derivative consistency" property.
func TestPartialWrtMatchesFiniteDifference(t *testing.T) {
	store := sketch.NewStore()
	a := store.NewParam(1, 1.3)
	b := store.NewParam(1, 0.7)
	e := expr.Sqrt(expr.Plus(expr.Square(expr.FromParam(a.H)), expr.Square(expr.FromParam(b.H))))

	const eps = 1e-5
	d := e.PartialWrt(a.H)
	analytic := d.Eval(store)

	orig := a.Val
	a.Val = orig + eps
	fPlus := e.Eval(store)
	a.Val = orig - eps
	fMinus := e.Eval(store)
	a.Val = orig

	fd := (fPlus - fMinus) / (2 * eps)
	assert.InDelta(t, fd, analytic, 1e-5)
}

func TestDeepCopyWithParamsAsPointersFoldsKnown(t *testing.T) {
	store := sketch.NewStore()
	known := store.NewParam(1, 9.0)
	known.Known = true
	free := store.NewParam(1, 2.0)

	e := expr.Plus(expr.FromParam(known.H), expr.FromParam(free.H))
	rewritten := e.DeepCopyWithParamsAsPointers(store.Params, nil)

	require.Equal(t, expr.KindConst, rewritten.A.Kind)
	assert.Equal(t, 9.0, rewritten.A.Value)
	require.Equal(t, expr.KindParamPtr, rewritten.B.Kind)
	assert.Equal(t, 11.0, rewritten.Eval(nil))
}

// TestPartialWrtAfterRewriteIsNonzero guards against a regression where
// PartialWrt (and the DependsOn/ParamsUsed checks it relies on) treated
// KindParamPtr leaves as opaque, making every post-rewrite derivative
// silently fold to zero. Every production call site differentiates
// equations *after* DeepCopyWithParamsAsPointers has already run (see
// numeric.System.Jacobian), so this is the path the solver actually
// exercises.
func TestPartialWrtAfterRewriteIsNonzero(t *testing.T) {
	store := sketch.NewStore()
	a := store.NewParam(1, 3.0)
	b := store.NewParam(1, 5.0)
	e := expr.Times(expr.FromParam(a.H), expr.FromParam(b.H))
	rewritten := e.DeepCopyWithParamsAsPointers(store.Params, nil)

	require.True(t, rewritten.DependsOn(a.H))
	assert.True(t, expr.MightDependOn(rewritten.ParamsUsed(), a.H))

	da := rewritten.PartialWrt(a.H)
	assert.Equal(t, b.Val, da.Eval(store))
}

func TestParamsUsedNoFalseNegatives(t *testing.T) {
	e := expr.Plus(expr.FromParam(7), expr.Times(expr.FromParam(130), expr.FromConst(2)))
	sig := e.ParamsUsed()
	assert.True(t, expr.MightDependOn(sig, 7))
	assert.True(t, expr.MightDependOn(sig, 130))
}

func TestParseArithmetic(t *testing.T) {
	e, err := expr.Parse("(10+5)/3")
	require.NoError(t, err)
	assert.InDelta(t, 5.0, e.FoldConstants().Eval(nil), 1e-12)
}

func TestParseFunctionsAndUnaryMinus(t *testing.T) {
	e, err := expr.Parse("-sqrt(4)+cos(0)")
	require.NoError(t, err)
	assert.InDelta(t, -1.0, e.Eval(nil), 1e-12)
}

func TestParseErrors(t *testing.T) {
	_, err := expr.Parse("(1+2")
	assert.ErrorIs(t, err, expr.ErrExpectedCloseParen)

	_, err = expr.Parse("1+")
	assert.ErrorIs(t, err, expr.ErrUnexpectedEOF)

	_, err = expr.Parse("foo(1)")
	assert.ErrorIs(t, err, expr.ErrUnknownName)

	_, err = expr.Parse("1 2")
	assert.ErrorIs(t, err, expr.ErrUnexpectedChars)
}

func TestTrigRoundTrip(t *testing.T) {
	e := expr.Acos(expr.Cos(expr.FromConst(0.4)))
	assert.True(t, math.Abs(e.Eval(nil)-0.4) < 1e-9)
}
