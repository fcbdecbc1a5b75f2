// Package groupgen builds the Param/EntityBase/ConstraintBase records that
// make up one Group: it owns every allocation of a fresh Param, including
// the handful of auxiliary parameters a constraint needs before its
// equations can be emitted (a PT_ON_LINE's position-along-line fraction, a
// 3D PARALLEL's scale factor, and so on).
//
// Nothing here evaluates or differentiates an expression — that is emit's
// job once the entities and constraints this package builds are in the
// store.
package groupgen
