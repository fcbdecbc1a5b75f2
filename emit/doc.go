// Package emit knows the geometric semantics of every entity and constraint
// kind: for entities it builds the expression vectors (point/normal/vector
// forms, in 3-space or projected into a workplane) that constraints are
// built from; for constraints it builds the scalar residual expressions
// that a consistent sketch must drive to zero.
//
// Every public entry point here is organized as two dispatch tables keyed
// by sketch.EntityKind and sketch.ConstraintKind respectively — the
// "dispatch table of function-like objects" shape recommended for a source
// that encodes many variants behind a handful of shared fields.
package emit
