package sketch

import "errors"

// Sentinel errors for sketch store operations.
var (
	// ErrNotFound indicates a lookup referenced a handle with no live slot.
	ErrNotFound = errors.New("sketch: handle not found")

	// ErrDanglingReference indicates an entity or constraint still refers to
	// a handle whose slot has been removed.
	ErrDanglingReference = errors.New("sketch: dangling reference")

	// ErrWrongEntityKind indicates a constraint slot received an entity of a
	// kind it cannot operate on (e.g. a distance entity where a point was
	// expected). This is a programming error per the spec's error taxonomy
	// and is raised via panic, not returned — see MustEntity.
	ErrWrongEntityKind = errors.New("sketch: wrong entity kind for slot")
)
