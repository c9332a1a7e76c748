package git

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeLossy(t *testing.T) {
	const r = "�"
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"valid ascii", "hello", "hello"},
		{"valid multibyte", "zażółć \U0001F600", "zażółć \U0001F600"},
		{"lone continuation", "a\x80b", "a" + r + "b"},
		{"run of invalid bytes", "\xFF\xFE", r + r},
		{"truncated three-byte", "a\xE2\x82b", "a" + r + "b"},
		{"truncated four-byte at end", "\xF0\x9F\x98", r},
		{"truncated then continuation", "\xE2\x82\x80\x80", "€" + r},
		{"overlong two-byte lead", "\xC0\xAF", r + r},
		{"surrogate", "\xED\xA0\x80", r + r + r},
		{"out of range four-byte", "\xF4\x90\x80\x80", r + r + r + r},
		{"bad second byte after E0", "\xE0\x80\x80", r + r + r},
		{"two truncated sequences", "\xE2\x82\xE2\x82", r + r},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, DecodeLossy([]byte(tt.in)))
		})
	}
}
