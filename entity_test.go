package sgmlstream

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_resolveNamedEntity(t *testing.T) {
	testCases := []struct {
		Name     string
		Expected rune
		OK       bool
	}{
		{"amp", '&', true},
		{"lt", '<', true},
		{"gt", '>', true},
		{"quot", '"', true},
		{"apos", '\'', true},
		{"nbsp", 0, false},
	}
	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			got, ok := resolveNamedEntity([]byte(tc.Name))
			assert.Equal(t, tc.OK, ok)
			if tc.OK {
				assert.Equal(t, tc.Expected, got)
			}
		})
	}
}

func Test_resolveNumericEntity(t *testing.T) {
	testCases := []struct {
		Body     string
		Expected rune
		OK       bool
	}{
		{"65", 'A', true},
		{"x41", 'A', true},
		{"X41", 0, false},
		{"065", 'A', true},
		{"", 0, false},
		{"x", 0, false},
	}
	for _, tc := range testCases {
		t.Run(tc.Body, func(t *testing.T) {
			got, ok := resolveNumericEntity([]byte(tc.Body))
			assert.Equal(t, tc.OK, ok)
			if tc.OK {
				assert.Equal(t, tc.Expected, got)
			}
		})
	}
}

func Test_decodeDecimal_stopsAtFirstNonDigit(t *testing.T) {
	// Malformed suffix: the original source stops at the first bad byte and
	// returns the partial value rather than failing outright.
	got, ok := decodeDecimal([]byte("12x34"))
	assert.True(t, ok)
	assert.Equal(t, rune(12), got)
}

func Test_decodeHex_stopsAtFirstNonHexDigit(t *testing.T) {
	got, ok := decodeHex([]byte("41zz"))
	assert.True(t, ok)
	assert.Equal(t, rune(0x41), got)
}

func Test_fitsCodeUnit(t *testing.T) {
	assert.True(t, fitsCodeUnit(0x41, false))
	assert.False(t, fitsCodeUnit(0x141, false))
	assert.True(t, fitsCodeUnit(0x141, true))
}
