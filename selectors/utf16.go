package selectors

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// utf16LE is the codec every UTF-16 code-unit accounting in this package
// routes through, rather than hand-rolling surrogate-pair arithmetic:
// the CharOffset position kind (§3.1) is explicitly a UTF-16 code-unit
// index, and golang.org/x/text/encoding/unicode already knows how to
// encode and decode that exactly.
var utf16LE = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// utf16UnitLen returns the number of UTF-16 code units s (valid UTF-8)
// encodes to.
func utf16UnitLen(s []byte) int64 {
	if len(s) == 0 {
		return 0
	}
	out, err := utf16LE.NewEncoder().Bytes(s)
	if err != nil {
		// A Document's buffer is always valid UTF-8 by construction; this
		// only guards against a caller handing selectors raw bytes that
		// never went through buffer.Table.
		return int64(utf8.RuneCountInString(string(s)))
	}
	return int64(len(out) / 2)
}

// byteOffsetForUTF16Units returns the byte offset into s that corresponds
// to the first `units` UTF-16 code units of s, found by round-tripping
// through a real encode-then-decode pass instead of counting surrogate
// pairs by hand. units <= 0 returns 0; units at or past the end of s
// returns len(s).
func byteOffsetForUTF16Units(s []byte, units int64) int64 {
	if units <= 0 {
		return 0
	}
	encoded, err := utf16LE.NewEncoder().Bytes(s)
	if err != nil {
		return runeCountByteOffset(s, units)
	}
	cut := units * 2
	if cut >= int64(len(encoded)) {
		return int64(len(s))
	}
	decoded, err := utf16LE.NewDecoder().Bytes(encoded[:cut])
	if err != nil {
		// units split a surrogate pair: widen by one unit rather than
		// return a byte offset inside an encoded code point.
		if decoded, err = utf16LE.NewDecoder().Bytes(encoded[:cut+2]); err != nil {
			return runeCountByteOffset(s, units)
		}
	}
	return int64(len(decoded))
}

// runeCountByteOffset is the defensive fallback used only when s isn't
// valid UTF-8 to begin with; it advances by whole runes, counting a rune
// above the BMP as two units, same as real UTF-16 would.
func runeCountByteOffset(s []byte, units int64) int64 {
	var n int64
	i := 0
	for i < len(s) && n < units {
		r, size := utf8.DecodeRune(s[i:])
		if r > 0xFFFF {
			n += 2
		} else {
			n++
		}
		i += size
	}
	return int64(i)
}
