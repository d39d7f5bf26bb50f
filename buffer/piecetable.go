// Package buffer implements the persistent piece-table engine: an
// immutable original buffer, an append-only add buffer, and a
// path-copying order-statistic red-black tree of pieces referencing them
// (§4.1). Mutation produces a new Table value sharing untouched subtrees
// with the old one (§3.2) rather than mutating a doubly-linked list of
// pieces in place — add-buffer append-and-splice, boundary vs. middle
// insertion, and delete-then-insert for replace are re-expressed over
// split/join instead of linked-list splicing so that sharing falls out
// naturally. Undo/redo lives a layer up, in state.History and reducer,
// since §4.4 coalesces and bounds it alongside selection and line-index
// changes this package knows nothing about.
package buffer

// Table is an immutable snapshot of a document's byte content as a piece
// table. The zero value is not useful; use NewTable or Empty.
type Table struct {
	root        *node
	original    []byte
	add         *AddBuffer
	totalLength int64
}

// Empty returns the piece table for a zero-length document.
func Empty() *Table {
	return &Table{add: NewAddBuffer()}
}

// NewTable returns the piece table for a document whose initial content is
// original. original is never mutated or appended to after this call
// (§3.1: "Original buffer is immutable for the lifetime of the
// document").
func NewTable(original []byte) *Table {
	t := &Table{original: original, add: NewAddBuffer()}
	if len(original) == 0 {
		return t
	}
	t.root = &node{
		clr:        black,
		piece:      Piece{Source: Original, Start: 0, Length: int64(len(original))},
		subtreeLen: int64(len(original)),
	}
	t.totalLength = int64(len(original))
	return t
}

// GetLength returns the total byte length of the document.
func (t *Table) GetLength() int64 {
	if t == nil {
		return 0
	}
	return t.totalLength
}

func (t *Table) clampOffset(pos int64) int64 {
	if pos < 0 {
		return 0
	}
	if pos > t.totalLength {
		return t.totalLength
	}
	return pos
}

// FindPieceAtPosition returns the piece covering byte offset pos and pos's
// local offset within that piece (§4.1).
func (t *Table) FindPieceAtPosition(pos int64) (piece Piece, localOffset int64, ok bool) {
	pos = t.clampOffset(pos)
	return findPiece(t.root, pos)
}

func (t *Table) bufferBytes(src BufferSource) []byte {
	if src == Original {
		return t.original
	}
	return t.add.Slice(0, t.add.Len())
}

func (t *Table) pieceBytes(p Piece) []byte {
	buf := t.bufferBytes(p.Source)
	return buf[p.Start : p.Start+p.Length]
}

// GetText returns the document's byte content in [start, end).
func (t *Table) GetText(start, end int64) []byte {
	start = t.clampOffset(start)
	end = t.clampOffset(end)
	if start >= end {
		return nil
	}
	out := make([]byte, 0, end-start)
	forEachPiece(t.root, start, func(p Piece, pieceStart int64) bool {
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
			out = append(out, t.pieceBytes(p)[lo:hi]...)
		}
		return true
	})
	return out
}

// GetValue returns the full document content.
func (t *Table) GetValue() []byte {
	return t.GetText(0, t.totalLength)
}

// Insert returns a new Table with text spliced in at byte offset bytePos.
// Empty text is a no-op returning t unchanged, per §4.1.
func (t *Table) Insert(bytePos int64, text []byte) *Table {
	if len(text) == 0 {
		return t
	}
	bytePos = t.clampOffset(bytePos)

	newAdd, start := t.add.Append(text)
	piece := Piece{Source: Added, Start: start, Length: int64(len(text))}

	return &Table{
		root:        insertAt(t.root, bytePos, piece),
		original:    t.original,
		add:         newAdd,
		totalLength: t.totalLength + int64(len(text)),
	}
}

// Delete returns a new Table with the byte range [start, end) removed.
// start >= end is a no-op returning t unchanged, per §4.1.
func (t *Table) Delete(start, end int64) *Table {
	if start >= end {
		return t
	}
	start = t.clampOffset(start)
	end = t.clampOffset(end)
	if start >= end {
		return t
	}

	return &Table{
		root:        deleteRange(t.root, start, end),
		original:    t.original,
		add:         t.add,
		totalLength: t.totalLength - (end - start),
	}
}

// Replace deletes [start, end) and inserts text at start. Spec §4.1
// defines replace as delete then insert; the reducer records this pair as
// a single history entry even though it is two Table operations here.
func (t *Table) Replace(start, end int64, text []byte) *Table {
	return t.Delete(start, end).Insert(start, text)
}
