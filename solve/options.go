package solve

import (
	"github.com/sketchsolve/core/numeric"
	"github.com/sketchsolve/core/sketch"
)

// Options configures a single Solve call. Use DefaultOptions, or one of the
// With* functions passed variadically to Solve, rather than constructing
// Options directly.
type Options struct {
	// Newton tunes the damped Newton-Raphson loop.
	Newton numeric.NewtonParams

	// OnIteration, if set, is called after every Newton iteration with the
	// iteration index and the residual infinity-norm it produced — useful
	// for a caller driving a progress bar or a convergence log.
	OnIteration func(iteration int, residualNorm float64)

	// SkipSubstitution disables the Phase A trivial-equality pass, useful
	// for tests that want to see Phase B handle every equation directly.
	SkipSubstitution bool

	// FindFree additionally runs the O(n^2 * rank_cost) free-parameter
	// identification pass and populates Result.DOF/Result.FreeParams even
	// on a successful solve, matching the spec's "andFindFree=true" DOF
	// computation. Left off by default since most callers only need the
	// pass/fail outcome.
	FindFree bool

	// Dragged names parameters the caller is actively manipulating. Solve
	// pins each one with a weighted soft equation (see draggedEquations)
	// rather than a hard Known freeze, and a dragged parameter lets a
	// TooManyUnknowns group still reach Newton-Raphson instead of bailing
	// out, the same way the wire surface's System.Dragged does.
	Dragged []sketch.ParamHandle
}

// Option configures an Options value.
type Option func(*Options)

// DefaultOptions returns an Options with the numeric package's default
// Newton tuning and no callbacks.
func DefaultOptions() Options {
	return Options{Newton: numeric.DefaultNewtonParams()}
}

// WithNewtonParams overrides the Newton-Raphson tuning.
func WithNewtonParams(p numeric.NewtonParams) Option {
	return func(o *Options) { o.Newton = p }
}

// WithIterationCallback registers fn to be called once per Newton iteration.
func WithIterationCallback(fn func(iteration int, residualNorm float64)) Option {
	return func(o *Options) { o.OnIteration = fn }
}

// WithoutSubstitution disables Phase A for this call.
func WithoutSubstitution() Option {
	return func(o *Options) { o.SkipSubstitution = true }
}

// WithFindFree requests the free-parameter identification pass, populating
// Result.DOF and Result.FreeParams on every outcome except an Inconsistent
// classification.
func WithFindFree() Option {
	return func(o *Options) { o.FindFree = true }
}

// WithDragged marks handles as actively dragged for this solve, per the
// wire surface's System.Dragged[4].
func WithDragged(handles ...sketch.ParamHandle) Option {
	return func(o *Options) { o.Dragged = handles }
}
