package sgmlstream

// Internal token alphabet (§4.2). These values drive scanPass's dispatch at
// token-emit time; they are never exposed to callers -- the Sink capability
// table in sink.go is the only public surface a token turns into.
const (
	tokNone = iota
	tokTagStart
	tokTagEnd
	tokTagEmpty
	tokDirective
	tokDoctype
	tokPI
	tokDTDStart
	tokDTDEnd
	tokDTDEntity
	tokCDATA
	tokEntityRef
	tokCharRef
	tokComment
)

// doctypeState tracks §3's doctype_state attribute: idle, tentative (just
// saw "<!D"), or committed (inside the internal DTD subset after '[').
type doctypeState int

const (
	doctypeIdle doctypeState = iota
	doctypeTentative
	doctypeCommitted
)
