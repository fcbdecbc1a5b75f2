package diagnostic

import "errors"

// ErrNoCulpritIsolated is returned when bisection exhausts a candidate set
// without finding a subset whose removal lets the rest solve — every
// remaining candidate is load-bearing, or the group fails for a reason
// unrelated to any single constraint (e.g. it was never solvable even
// empty, which solve.Solve would already have reported as
// TooManyUnknowns).
var ErrNoCulpritIsolated = errors.New("diagnostic: no offending constraint isolated")
