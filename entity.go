package sgmlstream

import (
	"github.com/Goodwine/triemap"
)

// builtinEntities is the §4.5 built-in named-entity table: amp, apos, gt,
// lt, quot. It is backed by a triemap.RuneSliceMap, the same lookup
// structure the corpus's own XML decoder (Goodwine/go-xml) uses for its
// tag-name dictionary -- a trie is more structure than five entries need,
// but it is the idiom this codebase borrows it from, and it costs nothing
// to keep if the built-in table ever grows.
var builtinEntities triemap.RuneSliceMap

func init() {
	for name, value := range map[string]rune{
		"amp":  '&',
		"apos": '\'',
		"gt":   '>',
		"lt":   '<',
		"quot": '"',
	} {
		builtinEntities.Put([]rune(name), string(value))
	}
}

// resolveNamedEntity resolves a named entity reference body (the text
// between & and ;, e.g. "amp") against the built-in table. It reports
// false if the name is not one of the five built-ins.
func resolveNamedEntity(name []byte) (rune, bool) {
	runes := make([]rune, len(name))
	for i, c := range name {
		runes[i] = rune(c)
	}
	raw, ok := builtinEntities.Get(runes)
	if !ok {
		return 0, false
	}
	value, ok := raw.(string)
	if !ok || len(value) == 0 {
		return 0, false
	}
	return []rune(value)[0], true
}

// resolveNumericEntity decodes a numeric character reference body (the text
// between &# and ;). If body begins with 'x' it is parsed as hex, otherwise
// decimal -- the original source's entity() gates on lowercase 'x' only, and
// this does not widen that. Matching the original source's quirk exactly:
// decoding stops at the first non-digit (resp. non-hex-digit) byte and the
// partial value accumulated so far is returned rather than an error -- a
// malformed suffix is silently ignored for the purposes of producing a value.
func resolveNumericEntity(body []byte) (rune, bool) {
	if len(body) == 0 {
		return 0, false
	}
	if body[0] == 'x' {
		return decodeHex(body[1:])
	}
	return decodeDecimal(body)
}

func decodeDecimal(body []byte) (rune, bool) {
	var ch rune
	seen := false
	for _, c := range body {
		if c < '0' || c > '9' {
			break
		}
		ch = ch*10 + rune(c-'0')
		seen = true
	}
	return ch, seen
}

func decodeHex(body []byte) (rune, bool) {
	var ch rune
	seen := false
	for _, c := range body {
		var digit rune
		switch {
		case c >= '0' && c <= '9':
			digit = rune(c - '0')
		case c >= 'a' && c <= 'f':
			digit = rune(c-'a') + 10
		case c >= 'A' && c <= 'F':
			digit = rune(c-'A') + 10
		default:
			return ch, seen
		}
		ch = ch*16 + digit
		seen = true
	}
	return ch, seen
}

// fitsCodeUnit reports whether ch fits in the configured code-unit width.
// The narrow (byte) alphabet can only hold 0-255; the wide alphabet treats
// every code point as representable (this package doesn't transcode, so a
// "wide" code unit here is simply not bounded to a byte).
func fitsCodeUnit(ch rune, wide bool) bool {
	if wide {
		return true
	}
	return ch >= 0 && ch <= 0xFF
}
