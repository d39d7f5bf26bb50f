// Package position defines the numeric coordinate kinds used throughout
// textcore: byte offsets and lengths, UTF-16 character offsets, and
// line/column indices. Each kind is a distinct named type so the compiler
// rejects accidental mixing (a ByteOffset can never be passed where a
// Line is expected without an explicit conversion). All five are defined
// over golang.org/x/exp/constraints.Integer-constrained underlying types
// so the clamping logic they share lives in one generic helper instead of
// five copies (§3.1 "Mixing these is a type error").
package position

import "golang.org/x/exp/constraints"

// ByteOffset is a zero-based byte position within a document, in
// [0, totalLength].
type ByteOffset int64

// ByteLength is a non-negative count of bytes.
type ByteLength int64

// CharOffset is a zero-based UTF-16 code-unit position, used at the UI
// boundary (selectors) and never inside the piece table or line index.
type CharOffset int64

// Line is a zero-based line number.
type Line int32

// Column is a zero-based column, measured in UTF-16 code units.
type Column int32

// clamp restricts v to [lo, hi]; shared by every position kind below
// instead of duplicating the same three-way branch per named type.
func clamp[T constraints.Integer](v, lo, hi T) T {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	default:
		return v
	}
}

// Clamp restricts o to [lo, hi].
func (o ByteOffset) Clamp(lo, hi ByteOffset) ByteOffset { return clamp(o, lo, hi) }

// Add returns o+n.
func (o ByteOffset) Add(n ByteLength) ByteOffset { return o + ByteOffset(n) }

// Sub returns o-n, never going below 0.
func (o ByteOffset) Sub(n ByteLength) ByteOffset {
	r := o - ByteOffset(n)
	if r < 0 {
		return 0
	}
	return r
}

// IsValid reports whether o is a non-negative, finite offset.
func (o ByteOffset) IsValid() bool { return o >= 0 }

// Clamp restricts n to [lo, hi].
func (n ByteLength) Clamp(lo, hi ByteLength) ByteLength { return clamp(n, lo, hi) }

// IsValid reports whether n is a non-negative length.
func (n ByteLength) IsValid() bool { return n >= 0 }

// Clamp restricts l to [lo, hi].
func (l Line) Clamp(lo, hi Line) Line { return clamp(l, lo, hi) }

// Clamp restricts c to [lo, hi].
func (c CharOffset) Clamp(lo, hi CharOffset) CharOffset { return clamp(c, lo, hi) }

// Clamp restricts c to [lo, hi].
func (c Column) Clamp(lo, hi Column) Column { return clamp(c, lo, hi) }
