package sketch

import "fmt"

// Store is the full set of tables for one sketch: Params, Entities and
// Constraints, plus a monotonic handle allocator. A Store is created once
// per document and is never shared across documents or goroutines.
type Store struct {
	Params      *ParamTable
	Entities    *EntityTable
	Constraints *ConstraintTable

	nextParam      uint32
	nextEntity     uint32
	nextConstraint uint32
}

// NewStore constructs an empty Store.
func NewStore() *Store {
	return &Store{
		Params:      NewParamTable(),
		Entities:    NewEntityTable(),
		Constraints: NewConstraintTable(),
		nextParam:   1,
		nextEntity:  1,
		nextConstraint: 1,
	}
}

// NewParam allocates a fresh Param handle, adds it to the store and returns
// it. known is almost always false on creation; the numeric kernel flips it.
func (s *Store) NewParam(group GroupHandle, val float64) *Param {
	h := ParamHandle(s.nextParam)
	s.nextParam++
	p := &Param{H: h, Group: group, Val: val}
	s.Params.Add(p)
	return p
}

// NewEntity allocates a fresh entity handle and adds e to the store, first
// overwriting e.H.
func (s *Store) NewEntity(e *EntityBase) *EntityBase {
	e.H = EntityHandle(s.nextEntity)
	s.nextEntity++
	s.Entities.Add(e)
	return e
}

// NewConstraint allocates a fresh constraint handle and adds c to the store.
func (s *Store) NewConstraint(c *ConstraintBase) *ConstraintBase {
	c.H = ConstraintHandle(s.nextConstraint)
	s.nextConstraint++
	s.Constraints.Add(c)
	return c
}

// ReserveHandles bumps the store's handle allocators so the next NewParam/
// NewEntity/NewConstraint call is guaranteed not to collide with any handle
// at or below the given values. It exists for bridges like the slvs wire
// surface, which insert records bearing caller-assigned handles directly
// into the tables (bypassing New*) and then still need the allocator to
// hand out fresh, non-colliding handles for anything it creates afterward
// (auxiliary constraint parameters, for instance).
func (s *Store) ReserveHandles(maxParam ParamHandle, maxEntity EntityHandle, maxConstraint ConstraintHandle) {
	if next := uint32(maxParam) + 1; next > s.nextParam {
		s.nextParam = next
	}
	if next := uint32(maxEntity) + 1; next > s.nextEntity {
		s.nextEntity = next
	}
	if next := uint32(maxConstraint) + 1; next > s.nextConstraint {
		s.nextConstraint = next
	}
}

// Resolve follows a Param's Substd chain (set by Phase A substitution) to
// the live representative parameter and returns its current value. Params
// that were never substituted resolve to themselves.
func (s *Store) Resolve(h ParamHandle) (*Param, error) {
	seen := make(map[ParamHandle]bool)
	for {
		p, err := s.Params.FindByID(h)
		if err != nil {
			return nil, fmt.Errorf("sketch: resolve %d: %w", h, err)
		}
		if !p.Substd.Valid() {
			return p, nil
		}
		if seen[h] {
			panic(fmt.Sprintf("sketch: substitution cycle at param %d", h))
		}
		seen[h] = true
		h = p.Substd
	}
}

// Val is a convenience wrapper around Resolve that panics on a dangling
// handle — used from expression evaluation, where a missing param is always
// a programming error (the equation emitter never manufactures handles that
// are not in the store).
func (s *Store) Val(h ParamHandle) float64 {
	p, err := s.Resolve(h)
	if err != nil {
		panic(err)
	}
	return p.Val
}

// EntityFor returns the EntityBase for h or a dangling-reference error.
func (s *Store) EntityFor(h EntityHandle) (*EntityBase, error) {
	e, err := s.Entities.FindByID(h)
	if err != nil {
		return nil, fmt.Errorf("sketch: entity %d: %w", h, ErrDanglingReference)
	}
	return e, nil
}

// MustEntity is EntityFor with a panicking failure mode, for call sites in
// the emitter where a missing entity reference is a programming error
// rather than a user-correctable one.
func (s *Store) MustEntity(h EntityHandle) *EntityBase {
	e, err := s.EntityFor(h)
	if err != nil {
		panic(err)
	}
	return e
}

// ClearTags clears every tag on every table.
func (s *Store) ClearTags() {
	for _, h := range s.Constraints.Handles() {
		s.Constraints.Untag(h)
	}
	for _, h := range s.Entities.Handles() {
		s.Entities.Untag(h)
	}
	for _, h := range s.Params.Handles() {
		s.Params.Untag(h)
	}
}
