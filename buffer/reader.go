package buffer

import (
	"io"
	"unicode/utf8"
)

// defaultChunkSize mirrors the default chunk size configured at the store
// boundary (§6.3 "chunkSize = 65536").
const defaultChunkSize = 65536

// StreamOptions configures GetValueStream.
type StreamOptions struct {
	StartOffset int64
	EndOffset   int64
	ChunkSize   int64
}

// GetValueStream returns a lazy, finite sequence of byte chunks covering
// [opts.StartOffset, opts.EndOffset). Consecutive chunks concatenate to
// exactly that slice of the document. Chunk boundaries never split a UTF-8
// code point: a chunk that would end mid-sequence is shortened and the
// remaining bytes carry over into the next chunk, so the final chunk may
// be shorter than opts.ChunkSize (§4.1). When opts.ChunkSize is smaller
// than a code point, that chunk is extended to end after the code point.
//
// This is a Go 1.23 range-over-func iterator (module floor go 1.23.1): a
// pull-based, forward-only chunk sequence, not a random-access
// io.ReaderAt/io.Seeker pair, since nothing downstream needs to seek.
func (t *Table) GetValueStream(opts StreamOptions) func(func([]byte) bool) {
	start := t.clampOffset(opts.StartOffset)
	end := t.clampOffset(opts.EndOffset)
	chunkSize := opts.ChunkSize
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}

	return func(yield func([]byte) bool) {
		if start >= end {
			return
		}

		var pending []byte

		// emit drains pending down to chunkSize-sized pieces, honoring
		// UTF-8 boundaries; atEnd additionally drains whatever remains
		// once no more source bytes are coming.
		emit := func(atEnd bool) bool {
			for len(pending) > 0 {
				if !atEnd && int64(len(pending)) < chunkSize {
					return true
				}
				n := int64(len(pending))
				if n > chunkSize {
					n = chunkSize
				}
				cut := int(n)
				if !atEnd || cut < len(pending) {
					safe := utf8SafeCut(pending[:cut])
					if safe == 0 {
						// chunkSize is shorter than the leading code point:
						// extend the chunk to the end of that code point,
						// waiting for more source bytes if it is not all here.
						safe = utf8LeadSize(pending[0])
						if safe > len(pending) {
							if !atEnd {
								return true
							}
							safe = len(pending)
						}
					}
					cut = safe
				}
				chunk := pending[:cut]
				pending = pending[cut:]
				if !yield(chunk) {
					return false
				}
			}
			return true
		}

		ok := forEachPiece(t.root, start, func(p Piece, pieceStart int64) bool {
			if pieceStart >= end {
				return false
			}
			lo := int64(0)
			if start > pieceStart {
				lo = start - pieceStart
			}
			hi := p.Length
			if pieceEnd := pieceStart + p.Length; pieceEnd > end {
				hi = p.Length - (pieceEnd - end)
			}
			if lo < hi {
				pending = append(pending, t.pieceBytes(p)[lo:hi]...)
			}
			return emit(false)
		})
		if ok {
			emit(true)
		}
	}
}

// utf8SafeCut returns the longest prefix length of b that does not end in
// the middle of a UTF-8 code point, assuming more bytes may still follow
// b. It returns 0 when all of b is the start of one incomplete sequence;
// the caller then extends the cut to the end of that sequence.
func utf8SafeCut(b []byte) int {
	n := len(b)
	if n == 0 {
		return 0
	}
	limit := utf8.UTFMax
	if limit > n {
		limit = n
	}
	for i := 1; i <= limit; i++ {
		c := b[n-i]
		if c&0xC0 == 0x80 {
			// continuation byte; keep scanning backward for the lead byte
			continue
		}
		size := utf8LeadSize(c)
		if size == 0 {
			// Not a valid lead byte either; don't try to be clever about
			// malformed input, treat the whole prefix as safe.
			return n
		}
		if i < size {
			// The lead byte's sequence extends past the end of b.
			return n - i
		}
		return n
	}
	// limit bytes of pure continuation bytes with no lead byte found: an
	// unusually long invalid run. Treat as safe rather than stalling
	// forever.
	return n
}

func utf8LeadSize(c byte) int {
	switch {
	case c < 0x80:
		return 1
	case c&0xE0 == 0xC0:
		return 2
	case c&0xF0 == 0xE0:
		return 3
	case c&0xF8 == 0xF0:
		return 4
	default:
		return 0
	}
}

// Reader adapts a Table to io.Reader, io.ReaderAt and io.Seeker, reading
// from an immutable Table snapshot rather than a mutable piece chain —
// the random-access counterpart to GetValueStream's forward-only
// iterator, for callers that need io.Reader/io.Seeker compatibility.
type Reader struct {
	table  *Table
	cursor int64
}

// NewReader returns a Reader over table's full content.
func NewReader(table *Table) *Reader {
	return &Reader{table: table}
}

// ReadAt implements io.ReaderAt.
func (r *Reader) ReadAt(p []byte, offset int64) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	total := r.table.GetLength()
	if offset >= total {
		return 0, io.EOF
	}
	end := offset + int64(len(p))
	if end > total {
		end = total
	}
	data := r.table.GetText(offset, end)
	n := copy(p, data)
	var err error
	if int64(n) < int64(len(p)) {
		err = io.EOF
	}
	return n, err
}

// Seek implements io.Seeker.
func (r *Reader) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		r.cursor = offset
	case io.SeekCurrent:
		r.cursor += offset
	case io.SeekEnd:
		r.cursor = r.table.GetLength() + offset
	}
	return r.cursor, nil
}

// Read implements io.Reader.
func (r *Reader) Read(p []byte) (int, error) {
	n, err := r.ReadAt(p, r.cursor)
	r.cursor += int64(n)
	return n, err
}
