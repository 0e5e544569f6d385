package sgmlstream

// Parser is the streaming tokenizer (§3, §4.2). Construct one with
// NewSGMLParser or NewXMLParser, Register a Sink, then call Feed zero or
// more times followed by an optional Close (or call Parse once for the
// feed+close convenience).
//
// A Parser is not safe for concurrent use; it is not even safe to call Feed
// from within a Sink callback invoked by that same Parser (§5's
// re-entrancy rule).
type Parser struct {
	xml    bool
	strict bool
	wide   bool
	alpha  alphabet

	feeding bool
	closed  bool

	shorttagArmed bool
	doctype       doctypeState
	passCounter   int

	buf     *incrementalBuffer
	sink    *boundSink
	checker Checker
}

// Option configures a Parser at construction time.
type Option func(*Parser)

// WithStrict makes unresolvable entity/character references fatal instead
// of silently dropped (§3's strict attribute).
func WithStrict() Option {
	return func(p *Parser) { p.strict = true }
}

// WithWideCodeUnits selects the wide (Unicode-aware) code-unit alphabet
// instead of the default narrow byte alphabet (§6's code-unit width
// configuration).
func WithWideCodeUnits() Option {
	return func(p *Parser) { p.wide = true; p.alpha = runeAlphabet{} }
}

// WithMaxBufferSize bounds how large the incremental buffer (§4.1) is
// allowed to grow while holding a single suspended token.
func WithMaxBufferSize(n int) Option {
	return func(p *Parser) { p.buf = newIncrementalBuffer(n) }
}

// WithChecker installs an optional well-formedness checker (§4.4).
func WithChecker(c Checker) Option {
	return func(p *Parser) { p.checker = c }
}

func newParser(xml bool, opts ...Option) *Parser {
	p := &Parser{
		xml:   xml,
		alpha: byteAlphabet{},
		buf:   newIncrementalBuffer(defaultMaxBufferSize),
		sink:  bind(nil),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewSGMLParser constructs a parser for the lenient SGML/HTML grammar.
func NewSGMLParser(opts ...Option) *Parser {
	return newParser(false, opts...)
}

// NewXMLParser constructs a parser for the stricter XML grammar.
func NewXMLParser(opts ...Option) *Parser {
	return newParser(true, opts...)
}

// Register binds sink by probing it for the Sink capability set (§6).
// Any prior bindings are replaced.
func (p *Parser) Register(sink interface{}) {
	p.sink = bind(sink)
}

// Capabilities reports which Sink capabilities the currently registered
// sink implements.
func (p *Parser) Capabilities() SinkCapabilities {
	return p.sink.capabilities()
}

// PassCount returns the number of completed scan passes (§3's pass_counter),
// exposed for diagnostics only.
func (p *Parser) PassCount() int {
	return p.passCounter
}

// Feed appends chunk to the internal buffer and runs one scan pass,
// returning the number of bytes left unconsumed (suspended) in the buffer.
func (p *Parser) Feed(chunk []byte) (int, error) {
	return p.feed(chunk, false)
}

// Close finalizes the parser: it is equivalent to Feed(nil) followed by a
// release of the internal buffer. Any bytes still unconsumed at Close are
// silently dropped (§9's documented FIXME; not flushed as a final DATA
// event).
func (p *Parser) Close() error {
	_, err := p.feed(nil, true)
	return err
}

// Parse is the feed+close convenience (§6).
func (p *Parser) Parse(chunk []byte) error {
	_, err := p.feed(chunk, true)
	return err
}

func (p *Parser) feed(chunk []byte, last bool) (int, error) {
	if p.closed {
		return 0, ErrParserClosed
	}
	if p.feeding {
		return 0, ErrReentrantFeed
	}
	if len(chunk) > 0 {
		if err := p.buf.append(chunk); err != nil {
			return 0, err
		}
	}

	p.feeding = true
	p.passCounter++
	consumed, err := p.scanPass(p.buf.span())
	p.feeding = false

	if err != nil {
		return len(p.buf.span()), err
	}
	if consumed > len(p.buf.span()) {
		return 0, ErrBufferOverrun
	}
	if consumeErr := p.buf.consume(consumed); consumeErr != nil {
		return 0, consumeErr
	}

	if last {
		p.buf.release()
		p.closed = true
	}

	return len(p.buf.span()), nil
}

// scanPass is the main scan loop (§4.2). It scans buf from the start,
// classifying and emitting tokens through p.sink, and returns the offset of
// the first byte that was not fully committed to an emitted token (the
// suspension point), or len(buf) if the entire buffer was consumed.
func (p *Parser) scanPass(buf []byte) (consumed int, err error) {
	end := len(buf)

	var (
		s, q, pos int
		b, t, e   int
		tok       int
	)

	s, q, pos = 0, 0, 0

mainloop:
	for pos < end {
		q = pos

		switch {
		case buf[pos] == '<':
			tok = tokTagStart
			pos++
			if pos >= end {
				goto eol
			}

			switch {
			case buf[pos] == '!':
				pos++
				if pos >= end {
					goto eol
				}
				tok = tokDirective
				b, t = pos, pos
				if buf[pos] == '-' {
					tok = tokComment
					b = pos + 2
					for {
						if pos+2 >= end {
							goto eol
						}
						if buf[pos+1] != '-' {
							pos += 2
						} else if buf[pos] != '-' || buf[pos+2] != '>' {
							pos++
						} else {
							break
						}
					}
					e = pos
					pos += 3
					goto eot
				} else if p.xml {
					if buf[pos] == 'D' {
						tok = tokDoctype
						p.doctype = doctypeTentative
					} else if buf[pos] == '[' {
						tok = tokCDATA
						b, t = pos+7, pos+7
						for {
							if pos+2 >= end {
								goto eol
							}
							if buf[pos+1] != ']' {
								pos += 2
							} else if buf[pos] != ']' || buf[pos+2] != '>' {
								pos++
							} else {
								break
							}
						}
						e = pos
						pos += 3
						goto eot
					}
				}
			case buf[pos] == '?':
				tok = tokPI
				pos++
				if pos >= end {
					goto eol
				}
			case buf[pos] == '/':
				tok = tokTagEnd
				pos++
				if pos >= end {
					goto eol
				}
			case p.alpha.isSpace(buf[pos]):
				continue mainloop
			}

			// Process the tag name (or directive/PI/end-tag body) that
			// follows. In SGML mode, names are folded to lower case in
			// place in the buffer.
			b = pos
			if !p.xml {
				for pos < end && (p.alpha.isAlnum(buf[pos]) || buf[pos] == '-' || buf[pos] == '.' || buf[pos] == ':' || buf[pos] == '?') {
					buf[pos] = p.alpha.toLower(buf[pos])
					pos++
					if pos >= end {
						goto eol
					}
				}
			} else {
				for pos < end && buf[pos] != '>' && !p.alpha.isSpace(buf[pos]) && buf[pos] != '/' && buf[pos] != '?' {
					pos++
					if pos >= end {
						goto eol
					}
				}
			}
			t = pos

			if buf[pos] == '/' && !p.xml {
				// <tag/data/ or <tag/>
				tok = tokTagStart
				e = pos
				pos++
				if pos >= end {
					goto eol
				}
				if buf[pos] == '>' {
					tok = tokTagEmpty
					pos++
					if pos >= end {
						goto eol
					}
				} else {
					p.shorttagArmed = true
				}
			} else {
				quote := byte(0)
				last := byte(0)
				for (buf[pos] != '>' && buf[pos] != '<') || quote != 0 {
					if quote != 0 {
						if buf[pos] == quote {
							quote = 0
						}
					} else if buf[pos] == '"' || buf[pos] == '\'' {
						quote = buf[pos]
					}
					if buf[pos] == '[' && quote == 0 && p.doctype != doctypeIdle {
						p.doctype = doctypeCommitted
						tok = tokDTDStart
						e = pos
						pos++
						goto eot
					}
					last = buf[pos]
					pos++
					if pos >= end {
						goto eol
					}
				}

				if buf[pos] == '<' {
					e = pos
				} else {
					e = pos
					pos++
				}

				if last == '/' {
					e--
					tok = tokTagEmpty
				} else if tok == tokPI && last == '?' {
					e--
				}

				if p.doctype == doctypeTentative {
					p.doctype = doctypeIdle
				}
			}

		case buf[pos] == '/' && p.shorttagArmed:
			// The shorttag close is a single byte whose meaning is already
			// fully known the instant it's seen (unlike every other case
			// here, it needs no further lookahead to confirm) -- it is not
			// held back waiting for the next chunk just because it happens
			// to land on the last byte of this one.
			tok = tokTagEnd
			p.shorttagArmed = false
			b, t, e = pos, pos, pos
			pos++

		case buf[pos] == ']' && p.doctype == doctypeCommitted:
			tok = tokDTDEnd
			b, t, e = pos, pos, pos
			pos++
			p.doctype = doctypeIdle

		case buf[pos] == '%' && p.doctype == doctypeCommitted:
			tok = tokDTDEntity
			pos++
			if pos >= end {
				goto eol
			}
			b = pos
			for buf[pos] != ';' && !p.alpha.isSpace(buf[pos]) {
				pos++
				if pos >= end {
					goto eol
				}
			}
			e = pos
			if buf[pos] == ';' {
				pos++
			}

		case buf[pos] == '&':
			tok = tokEntityRef
			pos++
			if pos >= end {
				goto eol
			}
			if buf[pos] == '#' {
				tok = tokCharRef
				pos++
				if pos >= end {
					goto eol
				}
			} else if p.alpha.isSpace(buf[pos]) {
				continue mainloop
			}
			b = pos
			for buf[pos] != ';' && buf[pos] != '<' && buf[pos] != '>' && !p.alpha.isSpace(buf[pos]) {
				pos++
				if pos >= end {
					goto eol
				}
			}
			e = pos
			if buf[pos] == ';' {
				pos++
			}

		default:
			pos++
			if pos >= end {
				q = pos
				goto eol
			}
			continue mainloop
		}

	eot:
		if q != s {
			if err = p.sink.fireData(buf[s:q]); err != nil {
				return q, err
			}
		}

		// CDATA recognition doesn't verify the literal "[CDATA[" prefix
		// (§9's documented FIXME); on malformed input that can leave e < b.
		// Clamp rather than let a later slice panic.
		if e < b {
			e = b
		}
		if t < b {
			t = b
		}

		if err = p.emit(buf, tok, b, t, e); err != nil {
			return q, err
		}

		q = pos
		s = pos
	}

eol:
	if q != s {
		if err = p.sink.fireData(buf[s:q]); err != nil {
			return q, err
		}
	}
	return q, nil
}

// emit dispatches a fully-scanned token to the Sink, given the token kind
// and its [b,t) / [b,e) byte ranges within buf (the exact meaning of t
// depends on tok, mirroring §4.2's token alphabet).
func (p *Parser) emit(buf []byte, tok int, b, t, e int) error {
	switch tok {
	case tokTagStart, tokTagEmpty:
		return p.emitStartTag(buf, tok, b, t, e)
	case tokTagEnd:
		name := buf[b:t]
		if p.checker != nil {
			if err := p.checker.EndTag(name); err != nil {
				return err
			}
		}
		if p.sink.endTag != nil {
			return p.sink.endTag.EndTag(name)
		}
		return nil
	case tokDirective, tokDoctype, tokDTDStart, tokDTDEntity, tokDTDEnd:
		if p.sink.special != nil {
			return p.sink.special.Special(buf[b:e])
		}
		return nil
	case tokPI:
		if p.sink.processingInstruction != nil {
			targetLen := t - b
			for t < e && p.alpha.isSpace(buf[t]) {
				t++
			}
			return p.sink.processingInstruction.ProcessingInstruction(buf[b:b+targetLen], buf[t:e])
		}
		return nil
	case tokEntityRef:
		return p.emitEntityRef(buf[b:e])
	case tokCharRef:
		return p.emitCharRef(buf[b:e])
	case tokCDATA:
		if p.sink.cdata != nil {
			return p.sink.cdata.CDATA(buf[b:e])
		}
		return p.sink.fireData(buf[b:e])
	case tokComment:
		if p.checker != nil {
			if err := p.checker.Comment(buf[b:e]); err != nil {
				return err
			}
		}
		if p.sink.comment == nil {
			return nil
		}
		return p.sink.comment.Comment(buf[b:e])
	}
	return nil
}

func (p *Parser) emitStartTag(buf []byte, tok int, b, t, e int) error {
	name := buf[b:t]
	if p.checker != nil {
		if err := p.checker.StartTag(name); err != nil {
			return err
		}
	}
	if p.sink.enterStartTag != nil {
		if err := p.sink.enterStartTag.EnterStartTag(name); err != nil {
			return err
		}
	}

	attrStart := t
	for attrStart < e && p.alpha.isSpace(buf[attrStart]) {
		attrStart++
	}
	if err := scanAttributes(buf, attrStart, e, p.alpha, p.xml, p.sink, p.checker); err != nil {
		return err
	}

	if p.sink.leaveStartTag != nil {
		if err := p.sink.leaveStartTag.LeaveStartTag(name); err != nil {
			return err
		}
	}

	if tok == tokTagEmpty {
		if p.checker != nil {
			if err := p.checker.EndTag(name); err != nil {
				return err
			}
		}
		if p.sink.endTag != nil {
			return p.sink.endTag.EndTag(name)
		}
	}
	return nil
}

// emitEntityRef implements §4.2's entity dispatch policy for &name;.
func (p *Parser) emitEntityRef(name []byte) error {
	if p.checker != nil {
		if err := p.checker.EntityReference(name); err != nil {
			return err
		}
	}
	if p.sink.entityRef != nil {
		return p.sink.entityRef.EntityReference(name)
	}
	ch, ok := resolveNamedEntity(name)
	if ok {
		return p.sink.fireData([]byte{byte(ch)})
	}
	if p.strict {
		return ErrUnresolvableEntity
	}
	return nil
}

// emitCharRef implements §4.2's entity dispatch policy for &#...;.
func (p *Parser) emitCharRef(body []byte) error {
	if p.checker != nil {
		if err := p.checker.CharacterReference(body); err != nil {
			return err
		}
	}
	if p.sink.charRef != nil {
		return p.sink.charRef.CharacterReference(body)
	}
	ch, ok := resolveNumericEntity(body)
	if !ok {
		return nil
	}
	if !fitsCodeUnit(ch, p.wide) {
		if p.strict {
			return ErrCharRefTooWide
		}
		return nil
	}
	return p.sink.fireData([]byte{byte(ch)})
}
