package lineindex

// LineRange describes one line's position in the document.
type LineRange struct {
	Start  int64 // byte offset of the line's first byte
	Length int64 // byte length, including any trailing newline
}

// TextAccessor is the narrow read surface reconciliation needs into the
// document's current byte content; buffer.Table satisfies it without any
// import cycle between buffer and lineindex.
type TextAccessor interface {
	GetText(start, end int64) []byte
	GetLength() int64
}

// Strategy selects which line-index maintenance strategy the reducer
// uses (§4.2: "The reducer holds a strategy reference as
// configuration").
type Strategy uint8

const (
	// Eager updates the tree synchronously and exactly on every edit.
	Eager Strategy = iota
	// Lazy updates only the locally-affected line cheaply and defers the
	// rest behind a dirty range.
	Lazy
)

// Index is the immutable snapshot of a document's line index.
//
// Lazy's dirty region is always a single open-ended tail
// [dirtyFromRank, EOF): once one line's exact position is unknown, every
// line after it is unknown too, since line N's byte offset is the sum of
// every earlier line's length. dirtyAnchorByte is the one position in
// that tail that IS known exactly — the byte offset dirtyFromRank had at
// the moment the region was (re)opened, which nothing inside the tail
// can have changed. Reconciling the tail means rereading from
// dirtyAnchorByte to the document's current end and rebuilding that
// whole span; there is no way to reconcile a subrange of it without
// already knowing the line lengths reconciliation itself recovers.
type Index struct {
	strategy              Strategy
	root                  *lnode
	dirtyFromRank         int64
	dirtyAnchorByte       int64
	dirtyOpenedAtVersion  int64
	lastReconciledVersion int64
	rebuildPending        bool

	// cachedLineCount is the authoritative line count. Eager keeps it in
	// lockstep with root on every edit; Lazy updates it immediately and
	// cheaply even while root itself is left stale behind the dirty tail
	// (§4.2: "the cached lineCount is updated immediately").
	cachedLineCount int64
}

// New returns the line index for an empty document: lineCount=1, no root
// (§4.2 "State").
func New(strategy Strategy) *Index {
	return &Index{strategy: strategy, cachedLineCount: 1}
}

// LineCount returns the number of lines, always ≥ 1 (§3.1).
func (ix *Index) LineCount() int64 {
	if ix.cachedLineCount == 0 {
		return 1
	}
	return ix.cachedLineCount
}

// Strategy reports which maintenance strategy produced this index.
func (ix *Index) Strategy() Strategy { return ix.strategy }

// RebuildPending reports whether a dirty tail is outstanding.
func (ix *Index) RebuildPending() bool { return ix.rebuildPending }

// DirtyRanges returns the current dirty region as a one-element slice
// (empty when nothing is pending), for introspection and tests.
func (ix *Index) DirtyRanges() []DirtyRange {
	if !ix.rebuildPending {
		return nil
	}
	return []DirtyRange{{
		StartLine:        ix.dirtyFromRank,
		EndLine:          -1,
		CreatedAtVersion: ix.dirtyOpenedAtVersion,
	}}
}

// LastReconciledVersion returns the document version this index was last
// fully brought in sync with.
func (ix *Index) LastReconciledVersion() int64 { return ix.lastReconciledVersion }

func (ix *Index) clone() *Index {
	cp := *ix
	return &cp
}

// findLineAtPosition returns the rank, byte start and length of the line
// containing byte offset pos, treating a nil root (empty document) as a
// single implicit empty line. Only valid for pos strictly within the
// clean (non-dirty) region of the tree; callers check that first.
func (ix *Index) findLineAtPosition(pos int64) (rank, start, length int64) {
	if ix.root == nil {
		return 0, 0, 0
	}
	return findByByteOffsetOrEnd(ix.root, pos)
}

// FindLineAtPosition returns the line containing byte offset pos. For a
// pos at or beyond the dirty tail's anchor, the result reflects the
// document as of the last reconciliation, not the live content; check
// IsLineDirty(rank) or call a Reconcile* method first if precision is
// required (§4.2).
func (ix *Index) FindLineAtPosition(pos int64) (rank int64, lineRange LineRange) {
	rank, start, length := ix.findLineAtPosition(pos)
	return rank, LineRange{Start: start, Length: length}
}

// FindLineByNumber returns the line at the given 0-based rank. Same
// staleness caveat as FindLineAtPosition applies to dirty ranks.
func (ix *Index) FindLineByNumber(line int64) (LineRange, bool) {
	if line < 0 || line >= ix.LineCount() {
		return LineRange{}, false
	}
	if ix.root == nil {
		return LineRange{}, true
	}
	start, length, ok := findByRank(ix.root, line)
	if !ok {
		return LineRange{}, false
	}
	return LineRange{Start: start, Length: length}, true
}

// GetLineStartOffset returns the byte offset of the first byte of line.
func (ix *Index) GetLineStartOffset(line int64) (int64, bool) {
	r, ok := ix.FindLineByNumber(line)
	return r.Start, ok
}

// IsLineDirty reports whether line's cached position may be stale.
func (ix *Index) IsLineDirty(line int64) bool {
	return ix.rebuildPending && line >= ix.dirtyFromRank
}

func countNewlines(b []byte) int64 {
	var n int64
	for _, c := range b {
		if c == '\n' {
			n++
		}
	}
	return n
}

// splitLines splits text into line lengths (in bytes, each including its
// trailing '\n' where present); the final entry is the trailing
// unterminated remainder, possibly zero length.
func splitLines(text []byte) []int64 {
	var lens []int64
	start := 0
	for i, c := range text {
		if c == '\n' {
			lens = append(lens, int64(i-start+1))
			start = i + 1
		}
	}
	lens = append(lens, int64(len(text)-start))
	return lens
}

// spliceLines replaces the rank range [fromRank, fromRank+oldCount) with
// newLens and returns the updated root.
func spliceLines(root *lnode, fromRank, oldCount int64, newLens []int64) *lnode {
	return spliceRank(root, fromRank, fromRank+oldCount, newLens)
}
