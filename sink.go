package sgmlstream

// Sink is the external collaborator that receives the tokenizer's lexical
// event stream. Each capability below is its own small interface; a
// concrete sink implements whichever subset it cares about. Absent
// capabilities are simply not probed for and the corresponding event is
// dropped (data events are the exception: they are always coalesced and,
// per §3, silently swallowed only if no DataHandler is registered at all).
//
// All byte slices passed to a handler are borrowed views into the
// tokenizer's internal buffer. They are valid only for the duration of the
// call; a sink that needs to retain a slice must copy it.
type (
	// EnterStartTagHandler fires as soon as a start tag's name has been
	// scanned, before any attributes.
	EnterStartTagHandler interface {
		EnterStartTag(name []byte) error
	}

	// EnterAttributeHandler fires once per attribute, before its value (if
	// any) is scanned.
	EnterAttributeHandler interface {
		EnterAttribute(name []byte) error
	}

	// LeaveAttributeHandler fires once per attribute, after its value (if
	// any) has been scanned and reported.
	LeaveAttributeHandler interface {
		LeaveAttribute(name []byte) error
	}

	// LeaveStartTagHandler fires after all attributes of a start tag have
	// been reported.
	LeaveStartTagHandler interface {
		LeaveStartTag(name []byte) error
	}

	// EndTagHandler fires for </name>, for the synthetic end tag of an
	// SGML shorttag close (with an empty name), and for the synthetic end
	// tag of a TAG_EMPTY (<name/>) element.
	EndTagHandler interface {
		EndTag(name []byte) error
	}

	// ProcessingInstructionHandler fires for <?target body?>.
	ProcessingInstructionHandler interface {
		ProcessingInstruction(target, body []byte) error
	}

	// SpecialHandler fires for DIRECTIVE, DOCTYPE, DTD_START, DTD_ENTITY,
	// and DTD_END tokens.
	SpecialHandler interface {
		Special(body []byte) error
	}

	// CharacterReferenceHandler fires for &#...; references. If absent,
	// the tokenizer attempts built-in numeric decoding itself (§4.2).
	CharacterReferenceHandler interface {
		CharacterReference(body []byte) error
	}

	// EntityReferenceHandler fires for &name; references. If absent, the
	// tokenizer attempts built-in resolution itself (§4.2).
	EntityReferenceHandler interface {
		EntityReference(name []byte) error
	}

	// DataHandler fires for raw character data, coalesced per scan-pass
	// boundary, and for synthesized single-character data produced by
	// built-in entity/char-reference resolution.
	DataHandler interface {
		Data(text []byte) error
	}

	// CDATAHandler fires for <![CDATA[...]]> sections. If absent, CDATA
	// content is reported through DataHandler instead.
	CDATAHandler interface {
		CDATA(text []byte) error
	}

	// CommentHandler fires for <!--...-->.
	CommentHandler interface {
		Comment(text []byte) error
	}
)

// SinkCapabilities records which capabilities a registered Sink was found
// to implement, for introspection.
type SinkCapabilities struct {
	EnterStartTag          bool
	EnterAttribute         bool
	LeaveAttribute         bool
	LeaveStartTag          bool
	EndTag                 bool
	ProcessingInstruction  bool
	Special                bool
	CharacterReference     bool
	EntityReference        bool
	Data                   bool
	CDATA                  bool
	Comment                bool
}

// boundSink is the probed, null-checked view of a registered sink used
// internally by the tokenizer. Firing an event is a nil-check plus a call.
type boundSink struct {
	enterStartTag         EnterStartTagHandler
	enterAttribute        EnterAttributeHandler
	leaveAttribute        LeaveAttributeHandler
	leaveStartTag         LeaveStartTagHandler
	endTag                EndTagHandler
	processingInstruction ProcessingInstructionHandler
	special               SpecialHandler
	charRef               CharacterReferenceHandler
	entityRef             EntityReferenceHandler
	data                  DataHandler
	cdata                 CDATAHandler
	comment               CommentHandler
}

// bind probes sink for each capability via type assertion, replacing any
// prior bindings.
func bind(sink interface{}) *boundSink {
	bs := &boundSink{}
	if sink == nil {
		return bs
	}
	if h, ok := sink.(EnterStartTagHandler); ok {
		bs.enterStartTag = h
	}
	if h, ok := sink.(EnterAttributeHandler); ok {
		bs.enterAttribute = h
	}
	if h, ok := sink.(LeaveAttributeHandler); ok {
		bs.leaveAttribute = h
	}
	if h, ok := sink.(LeaveStartTagHandler); ok {
		bs.leaveStartTag = h
	}
	if h, ok := sink.(EndTagHandler); ok {
		bs.endTag = h
	}
	if h, ok := sink.(ProcessingInstructionHandler); ok {
		bs.processingInstruction = h
	}
	if h, ok := sink.(SpecialHandler); ok {
		bs.special = h
	}
	if h, ok := sink.(CharacterReferenceHandler); ok {
		bs.charRef = h
	}
	if h, ok := sink.(EntityReferenceHandler); ok {
		bs.entityRef = h
	}
	if h, ok := sink.(DataHandler); ok {
		bs.data = h
	}
	if h, ok := sink.(CDATAHandler); ok {
		bs.cdata = h
	}
	if h, ok := sink.(CommentHandler); ok {
		bs.comment = h
	}
	return bs
}

// capabilities reports which handlers were found during bind.
func (bs *boundSink) capabilities() SinkCapabilities {
	return SinkCapabilities{
		EnterStartTag:         bs.enterStartTag != nil,
		EnterAttribute:        bs.enterAttribute != nil,
		LeaveAttribute:        bs.leaveAttribute != nil,
		LeaveStartTag:         bs.leaveStartTag != nil,
		EndTag:                bs.endTag != nil,
		ProcessingInstruction: bs.processingInstruction != nil,
		Special:               bs.special != nil,
		CharacterReference:    bs.charRef != nil,
		EntityReference:       bs.entityRef != nil,
		Data:                  bs.data != nil,
		CDATA:                 bs.cdata != nil,
		Comment:               bs.comment != nil,
	}
}

func (bs *boundSink) fireData(text []byte) error {
	if bs.data == nil || len(text) == 0 {
		return nil
	}
	return bs.data.Data(text)
}
