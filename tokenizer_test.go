package sgmlstream

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xist-go/sgmlstream/sgmlsax"
)

func parseXMLOnce(t *testing.T, input string) []string {
	t.Helper()
	rec := &sgmlsax.Recorder{}
	p := NewXMLParser()
	p.Register(rec)
	require.NoError(t, p.Parse([]byte(input)))
	return rec.Lines()
}

func parseSGMLOnce(t *testing.T, input string) []string {
	t.Helper()
	rec := &sgmlsax.Recorder{}
	p := NewSGMLParser()
	p.Register(rec)
	require.NoError(t, p.Parse([]byte(input)))
	return rec.Lines()
}

// dataOnlySink implements only DataHandler, so that entity and character
// references are resolved by the tokenizer's built-in table (§4.2's "no
// entity-reference/char-reference capability registered" branch) instead of
// being forwarded verbatim -- sgmlsax.Recorder implements every capability,
// which makes it unsuitable for exercising that fallback path.
type dataOnlySink struct {
	data []string
}

func (s *dataOnlySink) Data(text []byte) error {
	s.data = append(s.data, string(text))
	return nil
}

func Test_Parse_startTagAndEndTag(t *testing.T) {
	testCases := []struct {
		Name     string
		Input    string
		Expected []string
	}{
		{
			Name:  "self-closing XML element",
			Input: `<br/>`,
			Expected: []string{
				"EnterStartTag(br)",
				"LeaveStartTag(br)",
				"EndTag(br)",
			},
		},
		{
			Name:  "element with one attribute",
			Input: `<a href="x">text</a>`,
			Expected: []string{
				"EnterStartTag(a)",
				"EnterAttribute(href)",
				"Data(x)",
				"LeaveAttribute(href)",
				"LeaveStartTag(a)",
				"Data(text)",
				"EndTag(a)",
			},
		},
		{
			Name:  "comment followed by empty element",
			Input: `<!-- c1 --><x/>`,
			Expected: []string{
				"Comment( c1 )",
				"EnterStartTag(x)",
				"LeaveStartTag(x)",
				"EndTag(x)",
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			assert.Equal(t, tc.Expected, parseXMLOnce(t, tc.Input))
		})
	}
}

func Test_Parse_entities_builtinResolution(t *testing.T) {
	testCases := []struct {
		Name     string
		Input    string
		Expected []string
	}{
		{
			Name:     "named builtin entity",
			Input:    `a &amp; b`,
			Expected: []string{"a ", "&", " b"},
		},
		{
			Name:     "decimal character reference",
			Input:    `&#65;`,
			Expected: []string{"A"},
		},
		{
			Name:     "hex character reference",
			Input:    `&#x41;`,
			Expected: []string{"A"},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			sink := &dataOnlySink{}
			p := NewXMLParser()
			p.Register(sink)
			require.NoError(t, p.Parse([]byte(tc.Input)))
			assert.Equal(t, tc.Expected, sink.data)
		})
	}
}

// Test_Parse_entities_forwardedWhenCapable covers scenario 2's other
// alternative: when the sink implements EntityReferenceHandler, the raw
// name is forwarded instead of being resolved internally.
func Test_Parse_entities_forwardedWhenCapable(t *testing.T) {
	want := []string{"EnterStartTag(a)", "EnterAttribute(href)", "Data(x)", "EntityReference(amp)", "Data(y)", "LeaveAttribute(href)", "LeaveStartTag(a)", "Data(hi)", "EndTag(a)"}
	assert.Equal(t, want, parseXMLOnce(t, `<a href="x&amp;y">hi</a>`))
}

func Test_Parse_sgmlShorttag(t *testing.T) {
	// <p/para/ in SGML mode: start tag with no attrs, raw data, then a
	// shorttag close with an empty end-tag name -- even though the closing
	// "/" is the very last byte of input (§9: a single-byte, already-fully-
	// determined token is emitted immediately rather than held back for
	// more lookahead it doesn't need).
	got := parseSGMLOnce(t, `<p/para/`)
	want := []string{
		"EnterStartTag(p)",
		"LeaveStartTag(p)",
		"Data(para)",
		"EndTag()",
	}
	assert.Equal(t, want, got)
}

func Test_Parse_processingInstruction(t *testing.T) {
	got := parseXMLOnce(t, `<?target inst?>`)
	want := []string{"ProcessingInstruction(target, inst)"}
	assert.Equal(t, want, got)
}

func Test_Parse_cdata(t *testing.T) {
	got := parseXMLOnce(t, `<![CDATA[raw <data>]]>`)
	want := []string{"CDATA(raw <data>)"}
	assert.Equal(t, want, got)
}

func Test_Parse_strictUnresolvableEntityErrors(t *testing.T) {
	sink := &dataOnlySink{}
	p := NewXMLParser(WithStrict())
	p.Register(sink)
	err := p.Parse([]byte(`&bogus;`))
	assert.ErrorIs(t, err, ErrUnresolvableEntity)
}

func Test_Parse_lenientUnresolvableEntityDropsSilently(t *testing.T) {
	sink := &dataOnlySink{}
	p := NewXMLParser()
	p.Register(sink)
	require.NoError(t, p.Parse([]byte(`&bogus;`)))
	assert.Empty(t, sink.data)
}

// Test_Parse_chunkInvariance checks that feeding the same document as one
// chunk or split byte-by-byte across many Feed calls produces an identical
// event stream (the incremental buffer's core contract). Pending data is
// flushed at the end of every scan pass, so each run of adjacent Data events
// is merged into one before the two streams are compared.
func Test_Parse_chunkInvariance(t *testing.T) {
	inputs := []string{
		`<a href="x y &amp; z"><b/>text &amp; more<!--c--></a>`,
		`<![CDATA[ a <b> c ]]>`,
		`<?pi target body?>`,
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			whole := &sgmlsax.Recorder{}
			pWhole := NewXMLParser()
			pWhole.Register(whole)
			require.NoError(t, pWhole.Parse([]byte(input)))

			piecewise := &sgmlsax.Recorder{}
			pPiece := NewXMLParser()
			pPiece.Register(piecewise)
			for i := 0; i < len(input); i++ {
				_, err := pPiece.Feed([]byte{input[i]})
				require.NoError(t, err)
			}
			require.NoError(t, pPiece.Close())

			if diff := cmp.Diff(coalesceData(whole), coalesceData(piecewise)); diff != "" {
				t.Fatalf("chunked parse diverged from whole parse (-whole +chunked):\n%s", diff)
			}
		})
	}
}

// coalesceData renders rec's events as lines after merging each run of
// adjacent Data events into a single Data event.
func coalesceData(rec *sgmlsax.Recorder) []string {
	var merged []sgmlsax.Event
	for _, e := range rec.Events {
		if n := len(merged); n > 0 && e.Kind == "Data" && merged[n-1].Kind == "Data" {
			merged[n-1].Args = []string{merged[n-1].Args[0] + e.Args[0]}
			continue
		}
		merged = append(merged, e)
	}
	lines := make([]string, len(merged))
	for i, e := range merged {
		lines[i] = e.String()
	}
	return lines
}

func Test_Parser_reentrantFeedRejected(t *testing.T) {
	p := NewXMLParser()
	p.Register(&reentrantSink{parser: p})
	err := p.Parse([]byte(`<a/>`))
	assert.ErrorIs(t, err, ErrReentrantFeed)
}

type reentrantSink struct {
	parser *Parser
}

func (s *reentrantSink) EnterStartTag(name []byte) error {
	_, err := s.parser.Feed([]byte(`<b/>`))
	return err
}

func Test_Parser_feedAfterCloseRejected(t *testing.T) {
	p := NewXMLParser()
	require.NoError(t, p.Close())
	_, err := p.Feed([]byte(`<a/>`))
	assert.ErrorIs(t, err, ErrParserClosed)
}
