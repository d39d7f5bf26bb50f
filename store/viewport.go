package store

import "github.com/oligo/textcore/state"

// SetViewport records the visible line range and immediately reconciles
// it (§4.6 "setViewport(startLine, endLine): ... triggers immediate
// reconciliation of the viewport range, then schedules background
// reconciliation for the remaining dirty range, if any"). Scrolling a
// lazy-strategy document through unreconciled lines is the one path
// that must never show stale line metrics, so the viewport itself is
// reconciled synchronously; whatever dirty tail remains outside it is
// left to the scheduler.
func (s *Store) SetViewport(startLine, endLine int64) *state.Document {
	s.hasViewport = true
	s.viewportFirst, s.viewportLast = startLine, endLine

	if s.doc.LineIndex.RebuildPending() {
		s.swapLineIndex(s.doc.LineIndex.ReconcileViewport(s.doc.Buffer, startLine, endLine, s.doc.Version))
	}
	if s.doc.LineIndex.RebuildPending() {
		s.scheduleReconciliation()
	}
	return s.doc
}
