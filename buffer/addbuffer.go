package buffer

// minAddBufferCapacity is the smallest capacity an add buffer grows to on
// its first write (§4.1: "doubling from a minimum of 1024 bytes").
const minAddBufferCapacity = 1024

// AddBuffer is the append-only buffer new text is written into. Its bytes
// never change once written; only its length grows. Growth uses a
// geometric (doubling) policy so that repeated typing amortizes to O(1)
// per byte.
//
// AddBuffer is shared by reference across document snapshots that were
// produced before a growth that reallocated it; snapshots created after a
// growth point at the new, larger buffer, while older snapshots keep their
// own reference to the smaller one (§3.2).
type AddBuffer struct {
	data []byte
	// used is shared by every AddBuffer over the same backing array and
	// counts how many of its bytes have been written by any of them.
	used *int
}

// NewAddBuffer returns an empty add buffer.
func NewAddBuffer() *AddBuffer {
	return &AddBuffer{}
}

// Len reports the number of bytes written so far.
func (b *AddBuffer) Len() int64 {
	if b == nil {
		return 0
	}
	return int64(len(b.data))
}

// Slice returns the byte range [start, start+length) of the buffer.
// Callers must not mutate the returned slice.
func (b *AddBuffer) Slice(start, length int64) []byte {
	return b.data[start : start+length]
}

// Append writes text to the end of the buffer, growing capacity
// geometrically when needed, and returns a new AddBuffer plus the start
// offset the text was written at. The receiver is left untouched so that
// older snapshots referencing it keep seeing its prior length.
func (b *AddBuffer) Append(text []byte) (next *AddBuffer, start int64) {
	if b == nil {
		b = NewAddBuffer()
	}
	start = int64(len(b.data))
	if len(text) == 0 {
		return b, start
	}

	needed := len(b.data) + len(text)
	if needed <= cap(b.data) && b.used != nil && *b.used == len(b.data) {
		// Fast path: the reserved headroom covers this write and no other
		// AddBuffer over the same backing array has written past b's
		// length yet. Older snapshots holding b only ever read bytes
		// within their own recorded length, never into the unused tail.
		data := b.data[:needed]
		copy(data[len(b.data):], text)
		*b.used = needed
		return &AddBuffer{data: data, used: b.used}, start
	}

	newCap := cap(b.data)
	if newCap < minAddBufferCapacity {
		newCap = minAddBufferCapacity
	}
	for newCap < needed {
		newCap *= 2
	}
	grown := make([]byte, needed, newCap)
	copy(grown, b.data)
	copy(grown[len(b.data):], text)
	used := needed
	return &AddBuffer{data: grown, used: &used}, start
}
