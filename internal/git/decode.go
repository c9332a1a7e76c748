package git

import (
	"strings"
	"unicode/utf8"
)

// DecodeLossy converts b to a string, replacing each maximal invalid UTF-8
// subpart with one U+FFFD. A truncated multi-byte sequence is one subpart; a
// byte that cannot start or continue a sequence is its own subpart.
func DecodeLossy(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}

	var sb strings.Builder
	sb.Grow(len(b) + 8)
	for i := 0; i < len(b); {
		if b[i] < utf8.RuneSelf {
			sb.WriteByte(b[i])
			i++
			continue
		}
		r, size := utf8.DecodeRune(b[i:])
		if r != utf8.RuneError || size > 1 {
			sb.Write(b[i : i+size])
			i += size
			continue
		}
		sb.WriteRune(utf8.RuneError)
		i += invalidPrefixLen(b[i:])
	}
	return sb.String()
}

// invalidPrefixLen returns how many bytes at the start of b form one invalid
// subpart: the lead byte plus any continuation bytes that were still
// acceptable before the sequence broke off.
func invalidPrefixLen(b []byte) int {
	lo, hi, need := byte(0x80), byte(0xBF), 0
	switch lead := b[0]; {
	case lead >= 0xC2 && lead <= 0xDF:
		need = 1
	case lead == 0xE0:
		lo, need = 0xA0, 2
	case lead >= 0xE1 && lead <= 0xEC, lead == 0xEE, lead == 0xEF:
		need = 2
	case lead == 0xED:
		hi, need = 0x9F, 2
	case lead == 0xF0:
		lo, need = 0x90, 3
	case lead >= 0xF1 && lead <= 0xF3:
		need = 3
	case lead == 0xF4:
		hi, need = 0x8F, 3
	default:
		return 1
	}

	n := 1
	for ; n <= need && n < len(b); n++ {
		c := b[n]
		if c < lo || c > hi {
			break
		}
		lo, hi = 0x80, 0xBF
	}
	return n
}
