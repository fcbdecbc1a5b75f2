package expr

// Arena batches the *Expr nodes built for one solve so they can be dropped
// together at solve end, mirroring the bump-allocator lifetime described for
// the expression engine: nodes never outlive the solve that created them.
// Go's garbage collector reclaims the backing slices once the Arena itself
// is dropped, so Arena's only real job is bookkeeping — Reset lets a caller
// reuse the struct across repeated solves without re-allocating it.
type Arena struct {
	built []*Expr
}

// NewArena returns an empty Arena.
func NewArena() *Arena { return &Arena{} }

// Track records e as built in this arena and returns it unchanged, so
// construction call sites can wrap a builder call: a.Track(Plus(x, y)).
func (a *Arena) Track(e *Expr) *Expr {
	a.built = append(a.built, e)
	return e
}

// Len reports how many top-level nodes have been tracked.
func (a *Arena) Len() int { return len(a.built) }

// Reset empties the arena for reuse.
func (a *Arena) Reset() { a.built = a.built[:0] }
