// Package lineindex implements the line-index engine: a second persistent
// order-statistic red-black tree, one layer above buffer's, indexing
// lines instead of byte pieces (§4.2). Eager and lazy maintenance
// strategies share this tree and its dirty-range algebra; they differ
// only in when they pay the cost of making it exactly reflect the
// document (§4.2 "Strategies").
package lineindex

import "math/bits"

// Each node aggregates two dimensions at once: subCount (how many lines
// live in this subtree, for rank/select by line number) and subBytes (how
// many bytes they span, for descent by byte offset) — the same join-based
// split/join construction buffer.rbtree.go uses for pieces, generalized
// to carry a second aggregate. A line's documentOffset is never stored;
// it is always the sum of byte lengths to its left along a search path,
// the same trick that lets buffer avoid storing absolute piece offsets
// (see SPEC_FULL.md's lineindex module note).
type color uint8

const (
	black color = iota
	red
)

type lnode struct {
	left, right *lnode
	clr         color
	lineLength  int64
	subCount    int64
	subBytes    int64
}

func count(n *lnode) int64 {
	if n == nil {
		return 0
	}
	return n.subCount
}

func bytesOf(n *lnode) int64 {
	if n == nil {
		return 0
	}
	return n.subBytes
}

func isRed(n *lnode) bool { return n != nil && n.clr == red }

func mk(clr color, l *lnode, lineLength int64, r *lnode) *lnode {
	return &lnode{
		left:       l,
		right:      r,
		clr:        clr,
		lineLength: lineLength,
		subCount:   count(l) + 1 + count(r),
		subBytes:   bytesOf(l) + lineLength + bytesOf(r),
	}
}

func blackHeight(n *lnode) int {
	h := 0
	for n != nil {
		if n.clr == black {
			h++
		}
		n = n.left
	}
	return h
}

func blacken(n *lnode) *lnode {
	if isRed(n) {
		return mk(black, n.left, n.lineLength, n.right)
	}
	return n
}

// join3 is buffer.join3's twin, specialized to lnode. See buffer/rbtree.go
// for the algorithm note (Blelloch/Ferizovic/Sun join-based trees).
func join3(l *lnode, mid int64, r *lnode) *lnode {
	lh, rh := blackHeight(l), blackHeight(r)
	switch {
	case lh > rh:
		return joinRight(l, mid, r, rh)
	case rh > lh:
		return joinLeft(l, mid, r, lh)
	default:
		if !isRed(l) && !isRed(r) {
			return mk(red, l, mid, r)
		}
		return mk(black, l, mid, r)
	}
}

func joinRight(l *lnode, mid int64, r *lnode, rh int) *lnode {
	if l == nil {
		return mk(red, nil, mid, r)
	}
	if blackHeight(l) == rh {
		return mk(red, l, mid, r)
	}
	newRight := joinRight(l.right, mid, r, rh)
	if l.clr == black && isRed(newRight) && isRed(newRight.right) {
		fixed := mk(black, newRight.left, newRight.lineLength, newRight.right)
		return rotateLeft(mk(black, l.left, l.lineLength, fixed))
	}
	return mk(l.clr, l.left, l.lineLength, newRight)
}

func joinLeft(l *lnode, mid int64, r *lnode, lh int) *lnode {
	if r == nil {
		return mk(red, l, mid, nil)
	}
	if blackHeight(r) == lh {
		return mk(red, l, mid, r)
	}
	newLeft := joinLeft(l, mid, r.left, lh)
	if r.clr == black && isRed(newLeft) && isRed(newLeft.left) {
		fixed := mk(black, newLeft.left, newLeft.lineLength, newLeft.right)
		return rotateRight(mk(black, fixed, r.lineLength, r.right))
	}
	return mk(r.clr, newLeft, r.lineLength, r.right)
}

func rotateLeft(t *lnode) *lnode {
	r := t.right
	newLeft := mk(t.clr, t.left, t.lineLength, r.left)
	return mk(r.clr, newLeft, r.lineLength, r.right)
}

func rotateRight(t *lnode) *lnode {
	l := t.left
	newRight := mk(t.clr, l.right, t.lineLength, t.right)
	return mk(l.clr, l.left, l.lineLength, newRight)
}

// splitByRank partitions n into (left, right) such that left holds the
// first rank lines and right holds the rest.
func splitByRank(n *lnode, rank int64) (*lnode, *lnode) {
	if n == nil {
		return nil, nil
	}
	lc := count(n.left)
	if rank <= lc {
		l, r := splitByRank(n.left, rank)
		return l, join3(r, n.lineLength, n.right)
	}
	l, r := splitByRank(n.right, rank-lc-1)
	return join3(n.left, n.lineLength, l), r
}

// splitByByteOffset partitions n at byte offset pos, analogous to
// buffer.split but over whole lines: a line is never cut in two by this
// split (lines are the atomic unit here), so pos lands on the nearest
// line boundary at or before it.
func splitByByteOffset(n *lnode, pos int64) (*lnode, *lnode) {
	if n == nil {
		return nil, nil
	}
	lb := bytesOf(n.left)
	if pos <= lb {
		l, r := splitByByteOffset(n.left, pos)
		return l, join3(r, n.lineLength, n.right)
	}
	if pos < lb+n.lineLength {
		// pos lands inside this line; keep the whole line on the right.
		return n.left, join3(nil, n.lineLength, n.right)
	}
	l, r := splitByByteOffset(n.right, pos-lb-n.lineLength)
	return join3(n.left, n.lineLength, l), r
}

func popLeftmost(n *lnode) (int64, *lnode) {
	if n.left == nil {
		return n.lineLength, n.right
	}
	ll, newLeft := popLeftmost(n.left)
	return ll, join3(newLeft, n.lineLength, n.right)
}

func concat(l, r *lnode) *lnode {
	if l == nil {
		return r
	}
	if r == nil {
		return l
	}
	ll, r2 := popLeftmost(r)
	return join3(l, ll, r2)
}

// buildBalanced builds a balanced tree from a slice of line lengths in
// order, used to splice freshly parsed lines back into the index.
func buildBalanced(lens []int64) *lnode {
	// Halving fills every level above depth floor(log2 n) and leaves the
	// nodes at that depth childless, so coloring exactly those nodes red
	// (and every other node black) gives every root-to-nil path the same
	// black count with no red-red adjacency.
	return buildLevel(lens, 0, bits.Len(uint(len(lens)))-1)
}

func buildLevel(lens []int64, depth, redDepth int) *lnode {
	if len(lens) == 0 {
		return nil
	}
	mid := len(lens) / 2
	left := buildLevel(lens[:mid], depth+1, redDepth)
	right := buildLevel(lens[mid+1:], depth+1, redDepth)
	clr := black
	if depth == redDepth && depth > 0 {
		clr = red
	}
	return mk(clr, left, lens[mid], right)
}

// spliceRank replaces the rank range [fromRank, toRank) with newLens.
func spliceRank(root *lnode, fromRank, toRank int64, newLens []int64) *lnode {
	l, mid := splitByRank(root, fromRank)
	_, r := splitByRank(mid, toRank-fromRank)
	return concat(concat(l, buildBalanced(newLens)), r)
}

// findByRank returns the byte start offset and length of the line at the
// given 0-based rank.
func findByRank(n *lnode, rank int64) (start int64, length int64, ok bool) {
	acc := int64(0)
	for n != nil {
		lc := count(n.left)
		switch {
		case rank < lc:
			n = n.left
		case rank == lc:
			return acc + bytesOf(n.left), n.lineLength, true
		default:
			acc += bytesOf(n.left) + n.lineLength
			rank -= lc + 1
			n = n.right
		}
	}
	return 0, 0, false
}

// findByByteOffset returns the rank, byte start offset and length of the
// line containing byte offset pos.
func findByByteOffset(n *lnode, pos int64) (rank int64, start int64, length int64, ok bool) {
	accRank := int64(0)
	accBytes := int64(0)
	for n != nil {
		lb := bytesOf(n.left)
		if pos < accBytes+lb {
			n = n.left
			continue
		}
		lineStart := accBytes + lb
		if pos < lineStart+n.lineLength {
			return accRank + count(n.left), lineStart, n.lineLength, true
		}
		accBytes = lineStart + n.lineLength
		accRank += count(n.left) + 1
		n = n.right
	}
	return 0, 0, 0, false
}
