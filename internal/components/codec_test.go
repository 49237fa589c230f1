package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArgumentsRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		args []string
	}{
		{"empty list", []string{}},
		{"single value", []string{"retry"}},
		{"multiple values", []string{"user", "123456789"}},
		{"embedded commas", []string{"a,b", "c"}},
		{"embedded quotes", []string{`he said "hi"`, `""`}},
		{"embedded newline", []string{"line\nbreak"}},
		{"empty strings", []string{"", ""}},
		{"unicode", []string{"héads", "日本語"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			decoded := decodeArguments(encodeArguments(tc.args))
			assert.Equal(t, tc.args, decoded)
		})
	}
}

func TestEncodeArgumentsQuotesEveryField(t *testing.T) {
	assert.Equal(t, "\"a\",\"b\"\n", encodeArguments([]string{"a", "b"}))
	assert.Equal(t, "\"he said \"\"hi\"\"\"\n", encodeArguments([]string{`he said "hi"`}))
	assert.Equal(t, "", encodeArguments(nil))
}

func TestDecodeArgumentsTolerance(t *testing.T) {
	assert.Equal(t, []string{}, decodeArguments(""))
	assert.Equal(t, []string{}, decodeArguments("\n"))

	// Unquoted input decodes too; encode always quotes, but old rows may not.
	assert.Equal(t, []string{"a", "b"}, decodeArguments("a,b\n"))

	// Malformed input degrades to an empty list instead of failing the callback.
	assert.Equal(t, []string{}, decodeArguments("\"unterminated"))
}
