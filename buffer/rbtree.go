package buffer

// This file implements the persistent, order-statistic red-black tree the
// piece table is built on (§3.1/§4.1/§9). Nodes are ordered by
// in-order *position*, not by a comparable key: each node's subtreeLen
// aggregate lets every operation descend by "remaining offset" instead of
// by key comparison, exactly as §4.1's Algorithm paragraph describes.
//
// Rather than the classic insert-then-fixup recursion (which is a key-
// ordered BST idiom that doesn't fit "insert a run of bytes at an
// arbitrary offset"), the tree is built from two primitives, split and
// join, in the style of join-based balanced trees (Blelloch, Ferizovic &
// Sun, "Just Join for Parallel Ordered Sets"): Insert is split-then-join,
// Delete is split-split-then-concat, and every rebalancing rotation lives
// in join alone. This keeps the path-copying story §9 asks for
// (rotations allocate new nodes along the spine; untouched subtrees are
// reused by pointer) concentrated in one place instead of duplicated
// across every mutating operation.

type color uint8

const (
	black color = iota
	red
)

type node struct {
	left, right *node
	clr         color
	piece       Piece
	subtreeLen  int64
}

func length(n *node) int64 {
	if n == nil {
		return 0
	}
	return n.subtreeLen
}

func isRed(n *node) bool {
	return n != nil && n.clr == red
}

func mkNode(clr color, l *node, p Piece, r *node) *node {
	return &node{
		left:       l,
		right:      r,
		clr:        clr,
		piece:      p,
		subtreeLen: length(l) + p.Length + length(r),
	}
}

// blackHeight counts black nodes from n down to nil along the left
// spine; every root-to-nil path in a valid red-black tree carries the
// same count, so any spine gives the answer.
func blackHeight(n *node) int {
	h := 0
	for n != nil {
		if n.clr == black {
			h++
		}
		n = n.left
	}
	return h
}

func blacken(n *node) *node {
	if isRed(n) {
		return mkNode(black, n.left, n.piece, n.right)
	}
	return n
}

// join3 concatenates l, the single piece mid, and r, in that order,
// rebalancing so the result is a valid red-black tree whose root may be
// red (callers that are producing a final, externally-visible root must
// call blacken on the result).
func join3(l *node, mid Piece, r *node) *node {
	lh, rh := blackHeight(l), blackHeight(r)
	switch {
	case lh > rh:
		return joinRight(l, mid, r, rh)
	case rh > lh:
		return joinLeft(l, mid, r, lh)
	default:
		if !isRed(l) && !isRed(r) {
			return mkNode(red, l, mid, r)
		}
		return mkNode(black, l, mid, r)
	}
}

// joinRight handles l taller (by black height) than r: it walks down l's
// right spine until it finds the node at black height rh, attaches
// (mid, r) there, and repairs any red-red violation introduced on the
// way back up. rh is the precomputed black height of r.
func joinRight(l *node, mid Piece, r *node, rh int) *node {
	if l == nil {
		// lh == 0 == rh by the precondition lh > rh at every call site
		// except the very first, where lh>rh already guarantees l != nil
		// unless rh < 0, which cannot happen.
		return mkNode(red, nil, mid, r)
	}
	if blackHeight(l) == rh {
		return mkNode(red, l, mid, r)
	}

	newRight := joinRight(l.right, mid, r, rh)
	if l.clr == black && isRed(newRight) && isRed(newRight.right) {
		fixed := mkNode(black, newRight.left, newRight.piece, newRight.right)
		return rotateLeft(mkNode(black, l.left, l.piece, fixed))
	}
	return mkNode(l.clr, l.left, l.piece, newRight)
}

// joinLeft is the mirror of joinRight for r taller than l.
func joinLeft(l *node, mid Piece, r *node, lh int) *node {
	if r == nil {
		return mkNode(red, l, mid, nil)
	}
	if blackHeight(r) == lh {
		return mkNode(red, l, mid, r)
	}

	newLeft := joinLeft(l, mid, r.left, lh)
	if r.clr == black && isRed(newLeft) && isRed(newLeft.left) {
		fixed := mkNode(black, newLeft.left, newLeft.piece, newLeft.right)
		return rotateRight(mkNode(black, fixed, r.piece, r.right))
	}
	return mkNode(r.clr, newLeft, r.piece, r.right)
}

func rotateLeft(t *node) *node {
	r := t.right
	newLeft := mkNode(t.clr, t.left, t.piece, r.left)
	return mkNode(r.clr, newLeft, r.piece, r.right)
}

func rotateRight(t *node) *node {
	l := t.left
	newRight := mkNode(t.clr, l.right, t.piece, t.right)
	return mkNode(l.clr, l.left, l.piece, newRight)
}

// appendPiece returns a tree whose in-order sequence is inorder(t), p.
func appendPiece(t *node, p Piece) *node {
	if p.isZero() {
		return t
	}
	return join3(t, p, nil)
}

// prependPiece returns a tree whose in-order sequence is p, inorder(t).
func prependPiece(p Piece, t *node) *node {
	if p.isZero() {
		return t
	}
	return join3(nil, p, t)
}

// split partitions n at byte offset pos into (left, right) such that
// length(left) == pos and the in-order concatenation of left and right
// equals the in-order sequence of n. If pos falls inside a piece, that
// piece is cut into two residual pieces (§4.1: "shortens the
// partially-covered boundary pieces").
func split(n *node, pos int64) (*node, *node) {
	if n == nil {
		return nil, nil
	}

	ll := length(n.left)
	switch {
	case pos <= ll:
		l, r := split(n.left, pos)
		return l, join3(r, n.piece, n.right)
	case pos >= ll+n.piece.Length:
		l, r := split(n.right, pos-ll-n.piece.Length)
		return join3(n.left, n.piece, l), r
	default:
		off := pos - ll
		leftPiece := Piece{Source: n.piece.Source, Start: n.piece.Start, Length: off}
		rightPiece := Piece{Source: n.piece.Source, Start: n.piece.Start + off, Length: n.piece.Length - off}
		return appendPiece(n.left, leftPiece), prependPiece(rightPiece, n.right)
	}
}

// popLeftmost removes and returns the leftmost piece of n along with the
// remainder of the tree.
func popLeftmost(n *node) (Piece, *node) {
	if n.left == nil {
		return n.piece, n.right
	}
	p, newLeft := popLeftmost(n.left)
	return p, join3(newLeft, n.piece, n.right)
}

// concat returns a tree whose in-order sequence is inorder(l), inorder(r),
// with no piece inserted between them (used by Delete, which discards the
// removed range entirely).
func concat(l, r *node) *node {
	if l == nil {
		return r
	}
	if r == nil {
		return l
	}
	p, r2 := popLeftmost(r)
	return join3(l, p, r2)
}

// insertAt returns a tree with piece spliced in at byte offset pos.
func insertAt(root *node, pos int64, p Piece) *node {
	if p.isZero() {
		return root
	}
	l, r := split(root, pos)
	return blacken(join3(l, p, r))
}

// deleteRange returns a tree with the byte range [start, end) removed.
func deleteRange(root *node, start, end int64) *node {
	if start >= end {
		return root
	}
	l, mid := split(root, start)
	_, r := split(mid, end-start)
	return blacken(concat(l, r))
}

// findPiece returns the piece covering byte offset pos and pos's local
// offset within that piece. It is a pure read: one descent, no
// allocation.
func findPiece(n *node, pos int64) (Piece, int64, bool) {
	for n != nil {
		ll := length(n.left)
		switch {
		case pos < ll:
			n = n.left
		case pos < ll+n.piece.Length:
			return n.piece, pos - ll, true
		default:
			pos -= ll + n.piece.Length
			n = n.right
		}
	}
	return Piece{}, 0, false
}

// forEachPiece visits every piece in order whose range intersects
// [startOffset, +inf), stopping once visit returns false. pieceStart is
// each piece's absolute byte offset, derived from subtreeLen aggregates
// rather than stored (§9: "no parent pointers"; offsets are
// recomputed by descent, not cached on nodes).
func forEachPiece(root *node, startOffset int64, visit func(p Piece, pieceStart int64) bool) bool {
	return forEachPieceAbs(root, 0, startOffset, visit)
}

// forEachPieceAbs is forEachPiece with an explicit base offset for the
// subtree rooted at n, so the recursion never needs to store an absolute
// offset on any node.
func forEachPieceAbs(n *node, base int64, startOffset int64, visit func(p Piece, pieceStart int64) bool) bool {
	if n == nil {
		return true
	}
	leftEnd := base + length(n.left)
	if startOffset < leftEnd {
		if !forEachPieceAbs(n.left, base, startOffset, visit) {
			return false
		}
	}
	pieceEnd := leftEnd + n.piece.Length
	if startOffset < pieceEnd {
		if !visit(n.piece, leftEnd) {
			return false
		}
	}
	return forEachPieceAbs(n.right, pieceEnd, startOffset, visit)
}
