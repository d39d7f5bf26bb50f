package lineindex

// Insert folds a text insertion at byte offset atByte into the index,
// returning a new, structurally-shared Index snapshot. version is the
// document version the edit produces, recorded so reconciliation can
// tell which edits it has already subsumed (§4.2, §3.1 "version").
func (ix *Index) Insert(atByte int64, text []byte, version int64) *Index {
	if len(text) == 0 {
		return ix
	}
	if ix.strategy == Eager {
		return ix.insertEager(atByte, text, version)
	}
	return ix.insertLazy(atByte, text, version)
}

// Delete folds a deletion of byte range [start, end) into the index.
// removed is the text being removed: the number of lines a deletion
// merges is the number of newlines it removes, which isn't recoverable
// from start/end alone (a deletion landing entirely inside one line
// removes zero, regardless of its byte length), so both strategies need
// the actual bytes, not just the range.
func (ix *Index) Delete(start, end int64, removed []byte, version int64) *Index {
	if end <= start {
		return ix
	}
	if ix.strategy == Eager {
		return ix.deleteEager(start, end, removed, version)
	}
	return ix.deleteLazy(start, end, removed, version)
}

// splitForInsert computes the line-length list that results from
// inserting text inside the single line [lineStart, lineStart+lineLen),
// at absolute offset atByte. No external content is needed: inserted
// newlines are the only thing that can create new lines, and a
// pre-existing line never contains an internal newline (only, at most,
// one trailing one), so the split is fully determined by lengths alone.
func splitForInsert(lineStart, lineLen, atByte int64, text []byte) []int64 {
	prefixLen := atByte - lineStart
	suffixLen := lineLen - prefixLen
	inserted := splitLines(text)
	if len(inserted) == 1 {
		return []int64{prefixLen + inserted[0] + suffixLen}
	}
	newLens := make([]int64, 0, len(inserted))
	newLens = append(newLens, prefixLen+inserted[0])
	newLens = append(newLens, inserted[1:len(inserted)-1]...)
	newLens = append(newLens, inserted[len(inserted)-1]+suffixLen)
	return newLens
}

func (ix *Index) insertEager(atByte int64, text []byte, version int64) *Index {
	rank, lineStart, lineLen := ix.findLineAtPosition(atByte)
	newLens := splitForInsert(lineStart, lineLen, atByte, text)

	out := ix.clone()
	out.root = spliceLines(ix.root, rank, 1, newLens)
	out.cachedLineCount += int64(len(newLens)) - 1
	out.lastReconciledVersion = version
	return out
}

// insertLazy keeps the tree exact for any edit in the clean prefix —
// that splice costs the same O(log n) Eager always pays — and only ever
// defers when an edit introduces new lines, at which point reshaping the
// tree would also require the O(len(text)) newline scan split off into
// the idle reconciliation pass (§4.2 "Strategies" — Lazy).
func (ix *Index) insertLazy(atByte int64, text []byte, version int64) *Index {
	newlines := countNewlines(text)

	if ix.rebuildPending && atByte >= ix.dirtyAnchorByte {
		// Entirely inside the existing dirty tail: the whole tail gets
		// rescanned from dirtyAnchorByte on reconciliation regardless of
		// what happened inside it, so only the cheap line count moves.
		out := ix.clone()
		out.cachedLineCount += newlines
		return out
	}

	rank, lineStart, lineLen := ix.findLineAtPosition(atByte)

	if newlines == 0 {
		newLens := splitForInsert(lineStart, lineLen, atByte, text)
		out := ix.clone()
		out.root = spliceLines(ix.root, rank, 1, newLens)
		if ix.rebuildPending {
			out.dirtyAnchorByte += int64(len(text))
		}
		out.lastReconciledVersion = version
		return out
	}

	// Newlines land in the clean prefix: open (or widen, if a tail
	// already existed further right — its old boundary is superseded,
	// since reconciling from this earlier point subsumes it) a dirty
	// tail starting at this edit instead of splitting it now.
	out := ix.clone()
	out.cachedLineCount += newlines
	out.rebuildPending = true
	out.dirtyFromRank = rank
	out.dirtyAnchorByte = lineStart
	out.dirtyOpenedAtVersion = version
	out.lastReconciledVersion = version
	return out
}

// spanForDelete returns the rank range [startRank, startRank+linesRemoved]
// (inclusive end rank) that a deletion of removed bytes starting at
// byte start collapses into a single merged line, along with that
// line's new length. Deriving the affected span from the newline count
// in removed — rather than from which line byte position end-1 falls
// in — matters at the edge case where the deleted range's last byte is
// itself the final newline of its line: end-1 still resolves to that
// same line, yet the boundary it carried is gone and the following line
// must be folded in too.
func spanForDelete(root *lnode, start, end int64, removed []byte) (startRank, endRank, newLineLen int64) {
	startRank, startLineStart, _ := findByByteOffsetOrEnd(root, start)
	linesRemoved := countNewlines(removed)
	endRank = startRank + linesRemoved
	endLineStart, endLineLen, _ := findByRank(root, endRank)
	prefixLen := start - startLineStart
	suffixLen := (endLineStart + endLineLen) - end
	return startRank, endRank, prefixLen + suffixLen
}

func findByByteOffsetOrEnd(root *lnode, pos int64) (rank, start, length int64) {
	rank, start, length, ok := findByByteOffset(root, pos)
	if ok {
		return rank, start, length
	}
	last := count(root) - 1
	ls, ll, _ := findByRank(root, last)
	return last, ls, ll
}

func (ix *Index) deleteEager(start, end int64, removed []byte, version int64) *Index {
	startRank, endRank, newLineLen := spanForDelete(ix.root, start, end, removed)

	out := ix.clone()
	out.root = spliceLines(ix.root, startRank, endRank-startRank+1, []int64{newLineLen})
	out.cachedLineCount -= endRank - startRank
	out.lastReconciledVersion = version
	return out
}

// deleteLazy mirrors insertLazy's clean/dirty split, plus a third case
// unique to ranged edits: a delete can straddle the boundary between the
// clean prefix and the dirty tail. That case is folded into "widen the
// tail to start at this edit" rather than attempted exactly, since the
// exact line structure on the dirty side of the boundary is, by
// definition, not known until reconciliation rereads it.
func (ix *Index) deleteLazy(start, end int64, removed []byte, version int64) *Index {
	hasTail := ix.rebuildPending
	if hasTail && start >= ix.dirtyAnchorByte {
		out := ix.clone()
		out.cachedLineCount -= countNewlines(removed)
		return out
	}

	if !hasTail || end <= ix.dirtyAnchorByte {
		startRank, endRank, newLineLen := spanForDelete(ix.root, start, end, removed)

		out := ix.clone()
		out.root = spliceLines(ix.root, startRank, endRank-startRank+1, []int64{newLineLen})
		lineDelta := endRank - startRank
		out.cachedLineCount -= lineDelta
		if hasTail {
			out.dirtyFromRank -= lineDelta
			out.dirtyAnchorByte -= end - start
		}
		out.lastReconciledVersion = version
		return out
	}

	startRank, startLineStart, _ := ix.findLineAtPosition(start)
	out := ix.clone()
	out.cachedLineCount -= countNewlines(removed)
	out.rebuildPending = true
	out.dirtyFromRank = startRank
	out.dirtyAnchorByte = startLineStart
	out.dirtyOpenedAtVersion = version
	out.lastReconciledVersion = version
	return out
}
