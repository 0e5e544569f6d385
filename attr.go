package sgmlstream

// scanAttributes implements §4.3: given the byte range [begin, end) covering
// a start tag's header (everything after the tag name, up to but excluding
// the tag terminator), emit attribute name/value events and inline entity
// events through sink. xmlMode disables the SGML-only "minimized attribute"
// DATA event (step 5 of §4.3).
//
// The sub-scanner operates in a single forward pass over data already
// present in full; it never suspends.
func scanAttributes(data []byte, begin, end int, alpha alphabet, xmlMode bool, sink *boundSink, checker Checker) error {
	p := begin
	for p < end {
		// 1. Skip whitespace.
		for p < end && alpha.isSpace(data[p]) {
			p++
		}
		if p >= end {
			break
		}

		// 2. Read the attribute name.
		nameStart := p
		for p < end && data[p] != '=' && !alpha.isSpace(data[p]) {
			p++
		}
		name := data[nameStart:p]

		if checker != nil {
			if err := checker.Attribute(name); err != nil {
				return err
			}
		}

		// 3. Enter attribute.
		if sink.enterAttribute != nil {
			if err := sink.enterAttribute.EnterAttribute(name); err != nil {
				return err
			}
		}

		for p < end && alpha.isSpace(data[p]) {
			p++
		}

		hadValue := false
		if p < end && data[p] == '=' {
			hadValue = true
			p++
			for p < end && alpha.isSpace(data[p]) {
				p++
			}

			var quote byte
			if p < end && (data[p] == '"' || data[p] == '\'') {
				quote = data[p]
				p++
			}

			valueStart := p
			for p < end {
				c := data[p]
				if quote != 0 {
					if c == quote {
						break
					}
				} else if alpha.isSpace(c) || c == '>' {
					break
				}
				if c == '&' {
					if err := flushAttrLiteral(data[valueStart:p], sink); err != nil {
						return err
					}
					p++
					entStart := p
					for p < end && data[p] != ';' {
						p++
					}
					if err := emitAttrEntity(data[entStart:p], sink, checker); err != nil {
						return err
					}
					if p < end {
						p++ // consume ';'
					}
					valueStart = p
					continue
				}
				p++
			}
			if err := flushAttrLiteral(data[valueStart:p], sink); err != nil {
				return err
			}
			if quote != 0 && p < end && data[p] == quote {
				p++
			}
		}

		// 5. SGML minimized attribute: the bare name is also data.
		if !hadValue && !xmlMode {
			if err := sink.fireData(name); err != nil {
				return err
			}
		}

		// 6. Leave attribute.
		if sink.leaveAttribute != nil {
			if err := sink.leaveAttribute.LeaveAttribute(name); err != nil {
				return err
			}
		}
	}
	return nil
}

func flushAttrLiteral(text []byte, sink *boundSink) error {
	return sink.fireData(text)
}

// emitAttrEntity handles an inline &name; or &#...; reference found while
// scanning an attribute value. Like the main tokenizer (§4.2) it forwards
// the reference to a registered entity/char-reference handler and otherwise
// resolves it against the built-in tables. Unlike the main tokenizer, an
// unresolvable reference is always dropped (strict mode does not apply
// here), and a numeric reference is emitted only if it fits in one byte,
// whatever the configured code-unit width.
func emitAttrEntity(body []byte, sink *boundSink, checker Checker) error {
	if len(body) > 0 && body[0] == '#' {
		if checker != nil {
			if err := checker.CharacterReference(body[1:]); err != nil {
				return err
			}
		}
		if sink.charRef != nil {
			return sink.charRef.CharacterReference(body[1:])
		}
		ch, ok := resolveNumericEntity(body[1:])
		if ok && fitsCodeUnit(ch, false) {
			return sink.fireData([]byte{byte(ch)})
		}
		return nil
	}
	if checker != nil {
		if err := checker.EntityReference(body); err != nil {
			return err
		}
	}
	if sink.entityRef != nil {
		return sink.entityRef.EntityReference(body)
	}
	ch, ok := resolveNamedEntity(body)
	if ok {
		return sink.fireData([]byte{byte(ch)})
	}
	return nil
}
