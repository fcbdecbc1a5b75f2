package expr

import "errors"

// Sentinel errors returned by Parse, matching the spec's literal error
// messages for the dimension-entry grammar.
var (
	ErrUnexpectedEOF   = errors.New("unexpected end")
	ErrExpectedCloseParen = errors.New("expected )")
	ErrUnknownName     = errors.New("unknown name")
	ErrUnexpectedChars = errors.New("unexpected characters")
)
