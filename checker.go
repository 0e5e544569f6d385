package sgmlstream

// Checker is the optional well-formedness hook (§4.4). Each method is
// invoked from the main tokenizer at token-emit time; returning an error
// aborts the current scan pass with that error. A nil Checker disables all
// checking.
type Checker interface {
	StartTag(name []byte) error
	EndTag(name []byte) error
	Attribute(name []byte) error
	EntityReference(name []byte) error
	CharacterReference(body []byte) error
	Comment(body []byte) error
}

// defaultChecker is the trivial default implementation described in §1 and
// §4.4: start/end tag names are checked against the name-syntax rule
// (begins with a letter, '_', or ':', continues with name-chars); every
// other hook accepts unconditionally.
type defaultChecker struct {
	alpha alphabet
}

func newDefaultChecker(alpha alphabet) *defaultChecker {
	return &defaultChecker{alpha: alpha}
}

func (c *defaultChecker) checkName(name []byte) error {
	if len(name) == 0 {
		return ErrMalformedName
	}
	first := name[0]
	if !c.alpha.isLetter(first) && first != '_' && first != ':' {
		return ErrMalformedName
	}
	for _, ch := range name[1:] {
		if !c.alpha.isNameChar(ch) {
			return ErrMalformedName
		}
	}
	return nil
}

func (c *defaultChecker) StartTag(name []byte) error { return c.checkName(name) }
func (c *defaultChecker) EndTag(name []byte) error   { return c.checkName(name) }

func (c *defaultChecker) Attribute([]byte) error          { return nil }
func (c *defaultChecker) EntityReference([]byte) error    { return nil }
func (c *defaultChecker) CharacterReference([]byte) error { return nil }
func (c *defaultChecker) Comment([]byte) error            { return nil }
