package lineindex

// ReconcileFull rebuilds the entire tree from scratch by rescanning the
// whole document through acc. The simplest and least surgical
// reconciliation; acceptable because the store runs it only from its
// idle scheduler and from an explicit ReconcileNow call, never while
// applying an edit (§4.6 "reconcileNow").
func (ix *Index) ReconcileFull(acc TextAccessor, version int64) *Index {
	content := acc.GetText(0, acc.GetLength())
	lens := splitLines(content)

	out := ix.clone()
	out.root = buildBalanced(lens)
	out.cachedLineCount = int64(len(lens))
	out.rebuildPending = false
	out.lastReconciledVersion = version
	return out
}

// ReconcileTail rebuilds just the dirty tail — from its exact byte
// anchor through the document's current end — leaving the clean prefix
// untouched. This is the routine reconciliation path: cheaper than
// ReconcileFull whenever a meaningful prefix of the document has stayed
// clean, and a no-op when nothing is pending (§4.2, §4.6).
func (ix *Index) ReconcileTail(acc TextAccessor, version int64) *Index {
	if !ix.rebuildPending {
		out := ix.clone()
		out.lastReconciledVersion = version
		return out
	}

	content := acc.GetText(ix.dirtyAnchorByte, acc.GetLength())
	lens := splitLines(content)

	out := ix.clone()
	out.root = spliceLines(ix.root, ix.dirtyFromRank, count(ix.root)-ix.dirtyFromRank, lens)
	out.cachedLineCount = ix.dirtyFromRank + int64(len(lens))
	out.rebuildPending = false
	out.lastReconciledVersion = version
	return out
}

// ReconcileRange reconciles [fromLine, toLine). It is exact when the
// requested range falls entirely within the clean prefix (a no-op, since
// the tree is already correct there) and otherwise degrades to
// ReconcileTail: a sub-range of the dirty tail can't be rebuilt in
// isolation, since its own line boundaries are exactly what's unknown
// until the tail is rescanned from its anchor. toLine may be -1 to mean
// "through the end of the document".
func (ix *Index) ReconcileRange(acc TextAccessor, fromLine, toLine int64, version int64) *Index {
	if !ix.rebuildPending || (toLine != -1 && toLine <= ix.dirtyFromRank) {
		out := ix.clone()
		out.lastReconciledVersion = version
		return out
	}
	if fromLine >= ix.LineCount() {
		out := ix.clone()
		out.lastReconciledVersion = version
		return out
	}
	return ix.ReconcileTail(acc, version)
}

// ReconcileViewport reconciles the lines currently on screen, the
// cheapest useful unit of work for a scheduler woken by scroll (§4.6
// "setViewport"). firstVisible/lastVisible are inclusive line
// ranks; like ReconcileRange, a viewport that overlaps the dirty tail at
// all pulls the whole tail current.
func (ix *Index) ReconcileViewport(acc TextAccessor, firstVisible, lastVisible int64, version int64) *Index {
	return ix.ReconcileRange(acc, firstVisible, lastVisible+1, version)
}

// GetLineRangePrecise materializes line's exact LineRange, reconciling
// the dirty tail on demand if line currently falls inside it (§4.2
// "getLineRangePrecise ... materializes a range after applying pending
// deltas"). Unlike FindLineByNumber, the result is never stale: when
// line is clean, next is ix itself (no new allocation); when line is
// dirty, next is the tail-reconciled index the caller should keep in
// place of ix. ok is false when line is out of range.
func (ix *Index) GetLineRangePrecise(acc TextAccessor, line, version int64) (lr LineRange, next *Index, ok bool) {
	if !ix.IsLineDirty(line) {
		lr, ok = ix.FindLineByNumber(line)
		return lr, ix, ok
	}
	next = ix.ReconcileTail(acc, version)
	lr, ok = next.FindLineByNumber(line)
	return lr, next, ok
}
