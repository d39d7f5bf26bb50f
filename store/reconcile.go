package store

import (
	"github.com/oligo/textcore/lineindex"
	"github.com/oligo/textcore/state"
)

// scheduleReconciliation submits a background reconciliation pass via
// the configured Scheduler (§4.6 "schedule reconciliation via the
// platform's idle/yield mechanism"). A call made while a submitted
// callback is still pending does nothing. Otherwise the call bumps a
// generation counter and the submitted callback closes over the
// generation it was scheduled at; ReconcileNow also bumps the counter,
// so a callback that fires after a synchronous ReconcileNow call
// recognizes it is stale and no-ops instead of redoing stale work.
func (s *Store) scheduleReconciliation() {
	if s.isReconciling {
		return
	}
	s.isReconciling = true
	s.scheduleGen++
	gen := s.scheduleGen
	s.scheduler.Submit(func() { s.runScheduledReconcile(gen) })
}

func (s *Store) runScheduledReconcile(gen int) {
	if gen != s.scheduleGen {
		return // superseded by a newer schedule or a synchronous ReconcileNow
	}
	s.isReconciling = false

	if s.scheduler.TimeRemainingMs() < 5 {
		s.scheduleReconciliation()
		return
	}

	if s.hasViewport && s.doc.LineIndex.RebuildPending() {
		s.swapLineIndex(s.doc.LineIndex.ReconcileViewport(s.doc.Buffer, s.viewportFirst, s.viewportLast, s.doc.Version))
	}
	if s.doc.LineIndex.RebuildPending() {
		s.swapLineIndex(s.doc.LineIndex.ReconcileFull(s.doc.Buffer, s.doc.Version))
	}
}

// ReconcileNow forces an immediate, synchronous full reconciliation of
// any dirty line-index state, bypassing the scheduler (§4.6 "the
// host may also force reconciliation synchronously"). It invalidates any
// pending scheduled reconciliation.
func (s *Store) ReconcileNow() *state.Document {
	s.scheduleGen++
	s.isReconciling = false
	s.swapLineIndex(s.doc.LineIndex.ReconcileFull(s.doc.Buffer, s.doc.Version))
	return s.doc
}

// GetLineRangePrecise returns line's exact LineRange, reconciling just
// that line's dirty tail on demand if needed (§4.2
// "getLineRangePrecise"), rather than waiting on the idle scheduler or
// forcing a full ReconcileNow. Any reconciliation performed is swapped
// in the same non-observable way as the scheduled and forced paths.
func (s *Store) GetLineRangePrecise(line int64) (lineindex.LineRange, bool) {
	lr, next, ok := s.doc.LineIndex.GetLineRangePrecise(s.doc.Buffer, line, s.doc.Version)
	s.swapLineIndex(next)
	return lr, ok
}

// swapLineIndex replaces the document's line index in place without
// notifying listeners or emitting events: reconciliation only catches up
// internal bookkeeping that selectors read lazily, it never changes what
// the document contains or how it's selected, so it is not an
// observable state change under §5's definition of one.
func (s *Store) swapLineIndex(li *lineindex.Index) {
	if li == s.doc.LineIndex {
		return
	}
	next := *s.doc
	next.LineIndex = li
	s.doc = &next
}
