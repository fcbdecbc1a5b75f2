// Package sketch holds the stable tables of Param, EntityBase and
// ConstraintBase that make up one in-memory sketch. Every cross-reference in
// the solver core is a 32-bit opaque handle into one of these tables; handle
// zero always means "none".
//
// The store is scoped to a single Sketch value (never process-global) and is
// not safe for concurrent use — the solver takes exclusive logical ownership
// of a Store for the duration of one solve, per the single-threaded
// cooperative model described for the core.
package sketch

import "fmt"

// ParamHandle addresses a single Param in a Store.
type ParamHandle uint32

// EntityHandle addresses a single EntityBase in a Store.
type EntityHandle uint32

// ConstraintHandle addresses a single ConstraintBase in a Store.
type ConstraintHandle uint32

// GroupHandle identifies a solving unit; entities/constraints tagged with a
// GroupHandle are solved together while earlier groups are held fixed.
type GroupHandle uint32

// EquationHandle addresses one generated Equation.
type EquationHandle uint32

// NoHandle is the reserved "none" value shared by every handle kind.
const NoHandle = 0

// FreeIn3D is the sentinel workplane handle meaning "not projected into any
// workplane" — a constraint or entity carrying it is expressed directly in
// 3-space. It is numerically identical to NoHandle; the distinct name exists
// because "no workplane" reads better than "zero handle" at call sites.
const FreeIn3D EntityHandle = 0

// Valid reports whether h refers to a real slot (i.e. is not NoHandle).
func (h ParamHandle) Valid() bool { return h != NoHandle }

// Valid reports whether h refers to a real slot.
func (h EntityHandle) Valid() bool { return h != NoHandle }

// Valid reports whether h refers to a real slot.
func (h ConstraintHandle) Valid() bool { return h != NoHandle }

// EquationHandleFor derives a stable equation handle from its owning
// constraint and an index, so equations emitted by the same constraint
// across re-solves keep their identity.
func EquationHandleFor(owner ConstraintHandle, index int) EquationHandle {
	if index < 0 || index > 0xffff {
		panic(fmt.Sprintf("sketch: equation index out of range: %d", index))
	}
	return EquationHandle(uint32(owner)<<16 | uint32(index))
}
