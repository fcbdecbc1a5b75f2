// Package core is the geometric constraint solver at the heart of a
// parametric 2D/3D sketcher: given entities (points, lines, arcs, circles,
// workplanes, normals, distances) and constraints relating them
// (coincidence, distance, angle, parallelism, tangency, symmetry, and
// around thirty more kinds), it finds parameter values that satisfy every
// constraint simultaneously, or diagnoses the system as inconsistent,
// redundant, or under-determined.
//
// The solver is organized as a small pipeline of subpackages, leaves first:
//
//	expr/        — immutable expression DAG: construction, symbolic partial
//	               differentiation, constant folding, the param-pointer
//	               rewrite that makes Jacobian evaluation cheap
//	sketch/      — handle-addressed tables of Param, EntityBase and
//	               ConstraintBase that make up one in-memory sketch
//	emit/        — turns entities and constraints into residual equations
//	groupgen/    — allocates the parameters an entity or constraint owns
//	numeric/     — the Newton-Raphson kernel: substitution, rank testing,
//	               pivoted Gaussian elimination, damped iteration, DOF
//	solve/       — orchestrates one group's solve end to end
//	diagnostic/  — isolates a small offending constraint set on failure
//	slvs/        — the C-style wire surface external callers link against
//	examples/    — runnable seed scenarios exercising the whole pipeline
//	cmd/sketchsolve/ — an interactive console for driving a sketch by hand
//
// A typical caller builds a sketch.Store, adds entities via groupgen,
// constraints via groupgen.Constraint, and calls solve.Solve for the active
// group; solve.Result reports whether the system converged, how many
// degrees of freedom remain, and (when requested) which parameters are
// free.
package core
