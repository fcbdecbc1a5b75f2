// Package numeric is the solver's arithmetic core: it assembles the dense
// Jacobian of a group's residual equations, classifies its rank, eliminates
// trivial equality substitutions ahead of the heavy work, and runs the
// damped Newton-Raphson iteration that drives every residual to zero.
//
// Apart from the expression DAG, which it differentiates, pattern-matches
// for Phase A and evaluates at a working point, every routine here operates
// on plain float64 slices and the small Matrix type defined in matrix.go,
// following the same
// stage-numbered, fail-fast style as the dense linear-algebra helpers this
// package is adapted from.
package numeric
