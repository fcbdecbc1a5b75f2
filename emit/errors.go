package emit

import "errors"

// Sentinel errors for the equation emitter. Most emitter failures are
// programming errors per the spec's error taxonomy (a bad handle or a
// 2D-only constraint used in FREE_IN_3D mode always indicates a bug in the
// caller, not a user mistake) and are raised by panic via programmingErrorFreeIn3D /
// sketch.Store's Must* helpers rather than returned — these sentinels exist
// for the handful of cases callers can recover from, such as
// ModifyToSatisfy being asked to re-value a non-reference constraint.
var (
	// ErrNotReference is returned by ModifyToSatisfy when asked to
	// re-value a constraint that is not marked Reference.
	ErrNotReference = errors.New("emit: constraint is not a reference dimension")

	// ErrUnknownConstraintKind indicates a ConstraintKind with no residual
	// emitter registered.
	ErrUnknownConstraintKind = errors.New("emit: unknown constraint kind")
)

// programmingErrorFreeIn3D panics with a message identifying the
// workplane-only constraint kind that was used with FREE_IN_3D. Per the
// spec, this is a programming error (the caller built an invalid
// constraint) and aborts rather than returning an error.
func programmingErrorFreeIn3D(kind string) {
	panic("emit: " + kind + " constraint requires a workplane, got FREE_IN_3D")
}
