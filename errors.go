package sgmlstream

import "errors"

// Allocate the sentinel errors once, matching the teacher's pattern of
// package-level err* vars rather than ad-hoc fmt.Errorf at call sites.
var (
	// ErrReentrantFeed is returned when Feed (or Close) is called while a
	// previous Feed/Close on the same Parser is still on the stack, e.g.
	// from inside a Sink callback.
	ErrReentrantFeed = errors.New("sgmlstream: recursive feed")

	// ErrParserClosed is returned by Feed/Close/Parse once the parser has
	// already been closed. The source leaves this case unspecified; this
	// implementation treats further feeding as an error.
	ErrParserClosed = errors.New("sgmlstream: feed after close")

	// ErrUnresolvableEntity is returned in strict mode when a named entity
	// reference cannot be resolved by the built-in table and no
	// entity-reference Sink capability is registered.
	ErrUnresolvableEntity = errors.New("sgmlstream: unresolvable entity reference")

	// ErrCharRefTooWide is returned in strict mode when a numeric character
	// reference decodes to a code point that doesn't fit the configured
	// code-unit width and no char-reference Sink capability is registered.
	ErrCharRefTooWide = errors.New("sgmlstream: character reference too large for code unit")

	// ErrMalformedName is returned by the default well-formedness checker
	// when a start or end tag name fails the name-syntax check.
	ErrMalformedName = errors.New("sgmlstream: malformed tag name")

	// ErrBufferOverrun signals the scanner reported a fully-committed
	// position past the end of the buffer. This indicates an internal bug,
	// not a malformed document.
	ErrBufferOverrun = errors.New("sgmlstream: internal error: buffer overrun")
)
