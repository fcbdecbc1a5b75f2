// Package sketch is the addressable data model shared by every other
// package in this module: Params, Entities and Constraints, all referenced
// by stable 32-bit handles rather than pointers, so the rest of the solver
// can hold a handle across a re-solve without worrying about reallocation.
//
//	store := sketch.NewStore()
//	p := store.NewEntity(&sketch.EntityBase{Kind: sketch.PointIn3D, ...})
//
// A Store is scoped to one document; it is never process-global and is not
// safe for concurrent use — see the package comment on Store.
package sketch
