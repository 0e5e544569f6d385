// Package sgmlsax provides a minimal reference Sink implementation for
// sgmlstream.Parser: it records every event it receives as a single flat
// line of text, mirroring the shape of the "KIND(payload)" traces used in
// the tokenizer's own test fixtures. It exists mainly as an example of a
// sink that implements the full capability table, and as a building block
// for cmd/sgmldump.
package sgmlsax

import (
	"fmt"
	"strings"
)

// Event is one recorded callback, kept in the order it was observed.
type Event struct {
	Kind string
	Args []string
}

// String renders an Event as "Kind(arg1, arg2)", truncating long payloads so
// a dump of a large document stays readable.
func (e Event) String() string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = truncate(a)
	}
	return fmt.Sprintf("%s(%s)", e.Kind, strings.Join(args, ", "))
}

func truncate(s string) string {
	const limit = 64
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}

// Recorder implements every sgmlstream Sink capability by appending an
// Event to its Events slice. Register it with a Parser via Parser.Register
// to capture a complete, ordered trace of a parse.
type Recorder struct {
	Events []Event
}

func (r *Recorder) record(kind string, args ...[]byte) {
	// Copy rather than borrow: the Parser's incremental buffer shifts and
	// regrows the same backing array across Feed calls (§3's spans are
	// only valid for the callback's duration), so a Recorder accumulating
	// events across more than one Feed must not alias it.
	strArgs := make([]string, len(args))
	for i, a := range args {
		strArgs[i] = string(a)
	}
	r.Events = append(r.Events, Event{Kind: kind, Args: strArgs})
}

func (r *Recorder) EnterStartTag(name []byte) error {
	r.record("EnterStartTag", name)
	return nil
}

func (r *Recorder) EnterAttribute(name []byte) error {
	r.record("EnterAttribute", name)
	return nil
}

func (r *Recorder) LeaveAttribute(name []byte) error {
	r.record("LeaveAttribute", name)
	return nil
}

func (r *Recorder) LeaveStartTag(name []byte) error {
	r.record("LeaveStartTag", name)
	return nil
}

func (r *Recorder) EndTag(name []byte) error {
	r.record("EndTag", name)
	return nil
}

func (r *Recorder) ProcessingInstruction(target, body []byte) error {
	r.record("ProcessingInstruction", target, body)
	return nil
}

func (r *Recorder) Special(body []byte) error {
	r.record("Special", body)
	return nil
}

func (r *Recorder) CharacterReference(body []byte) error {
	r.record("CharacterReference", body)
	return nil
}

func (r *Recorder) EntityReference(name []byte) error {
	r.record("EntityReference", name)
	return nil
}

func (r *Recorder) Data(text []byte) error {
	r.record("Data", text)
	return nil
}

func (r *Recorder) CDATA(text []byte) error {
	r.record("CDATA", text)
	return nil
}

func (r *Recorder) Comment(text []byte) error {
	r.record("Comment", text)
	return nil
}

// Lines renders every recorded Event as a "KIND(payload)" string, one per
// line, in observed order.
func (r *Recorder) Lines() []string {
	lines := make([]string, len(r.Events))
	for i, e := range r.Events {
		lines[i] = e.String()
	}
	return lines
}

// Reset discards all recorded events so the Recorder can be reused across
// parses.
func (r *Recorder) Reset() {
	r.Events = nil
}
