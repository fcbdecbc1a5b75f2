package sketch

// Table is an insertion-ordered collection addressable by a comparable
// handle type H, holding values of type V. It implements the handful of
// operations the sketch store needs on every table it keeps (Param,
// EntityBase, ConstraintBase): Add, FindByID, FindByIDNoOops, Tag,
// RemoveTagged, Clear.
//
// Iteration order follows insertion order, not map order, so that equation
// ordering — entities then constraints, each in group-creation order — stays
// reproducible; this is load-bearing for the numeric kernel's band-aware
// solve path, which assumes a stable equation sequence.
type Table[H comparable, V any] struct {
	keyOf   func(V) H
	order   []H
	byID    map[H]V
	tagged  map[H]bool
}

// NewTable constructs an empty Table. keyOf extracts the handle from a
// stored value so callers never have to pass it redundantly.
func NewTable[H comparable, V any](keyOf func(V) H) *Table[H, V] {
	return &Table[H, V]{
		keyOf:  keyOf,
		byID:   make(map[H]V),
		tagged: make(map[H]bool),
	}
}

// Add inserts v, keyed by keyOf(v). Re-adding an existing handle overwrites
// the stored value in place but does not change its position in iteration
// order.
func (t *Table[H, V]) Add(v V) {
	h := t.keyOf(v)
	if _, exists := t.byID[h]; !exists {
		t.order = append(t.order, h)
	}
	t.byID[h] = v
}

// FindByID returns the value for h, or ErrNotFound if no such slot exists.
func (t *Table[H, V]) FindByID(h H) (V, error) {
	v, ok := t.byID[h]
	if !ok {
		var zero V
		return zero, ErrNotFound
	}
	return v, nil
}

// FindByIDNoOops is the non-error lookup variant: ok reports whether h was
// present.
func (t *Table[H, V]) FindByIDNoOops(h H) (v V, ok bool) {
	v, ok = t.byID[h]
	return v, ok
}

// Tag marks h for a later RemoveTagged call. Tagging a handle that is not
// present is a no-op.
func (t *Table[H, V]) Tag(h H) {
	if _, ok := t.byID[h]; ok {
		t.tagged[h] = true
	}
}

// Untag clears a previously set tag without removing the slot.
func (t *Table[H, V]) Untag(h H) {
	delete(t.tagged, h)
}

// IsTagged reports whether h currently carries a tag.
func (t *Table[H, V]) IsTagged(h H) bool {
	return t.tagged[h]
}

// RemoveTagged deletes every currently tagged slot and clears the tag set.
func (t *Table[H, V]) RemoveTagged() {
	if len(t.tagged) == 0 {
		return
	}
	kept := t.order[:0]
	for _, h := range t.order {
		if t.tagged[h] {
			delete(t.byID, h)
			continue
		}
		kept = append(kept, h)
	}
	t.order = kept
	t.tagged = make(map[H]bool)
}

// Clear empties the table entirely.
func (t *Table[H, V]) Clear() {
	t.order = nil
	t.byID = make(map[H]V)
	t.tagged = make(map[H]bool)
}

// Len returns the number of live slots.
func (t *Table[H, V]) Len() int {
	return len(t.order)
}

// Each calls fn for every live value in insertion order. fn must not add to
// or remove from the table.
func (t *Table[H, V]) Each(fn func(V)) {
	for _, h := range t.order {
		fn(t.byID[h])
	}
}

// Handles returns a copy of the live handles in insertion order.
func (t *Table[H, V]) Handles() []H {
	out := make([]H, len(t.order))
	copy(out, t.order)
	return out
}
