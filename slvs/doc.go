// Package slvs is the C-style wire surface: flat arrays of Param, Entity and
// Constraint records addressed by caller-assigned handles, the same shape
// the original solver's embedding API exposed to host applications that
// wanted to hand it a whole sketch in one call rather than build it up
// through incremental allocator calls.
//
// Solve bridges one System onto a sketch.Store and runs solve.Solve against
// it; MakeQuaternion, QuaternionU/V/N and MatrixToQuaternion are the pure
// numeric twins of the symbolic basis-vector formulas emit uses internally,
// exposed here for a caller that wants to build entity parameters from a
// rotation matrix or vice versa without touching the expression DAG at all.
package slvs
