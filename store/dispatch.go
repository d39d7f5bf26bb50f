package store

import (
	"github.com/oligo/textcore/action"
	"github.com/oligo/textcore/state"
)

// Dispatch runs the four-step dispatch protocol of §4.6:
//
//  1. TRANSACTION_START opens a new nesting level.
//  2. TRANSACTION_COMMIT closes one level; at the outermost level it
//     notifies listeners and emits events for every action tracked
//     during the transaction.
//  3. TRANSACTION_ROLLBACK closes one level, restoring the pushed
//     snapshot, and notifies listeners once at every nesting level.
//  4. Every other action runs through the pure reducer; if it actually
//     changed the document, the new state is tracked (transaction
//     active) or published (not active) — publishing means notifying
//     listeners, emitting an event, and scheduling reconciliation if the
//     edit left the line index dirty.
//
// Dispatch never returns an error: the reducer is total and side-effect
// free: a malformed action is clamped or ignored by the reducer, and
// protocol misuse is logged through internal/diag by the transaction
// manager, rather than either being reported by a returned error.
func (s *Store) Dispatch(a action.Action) *state.Document {
	if a.IssuedAtMillis == 0 {
		a.IssuedAtMillis = nowMillis()
	}

	switch a.Type {
	case action.TransactionStart:
		s.tx.Begin(s.doc)
		return s.doc

	case action.TransactionCommit:
		bottom := s.tx.BottomSnapshot()
		result := s.tx.Commit()
		if result.IsOutermost {
			s.notifyListeners()
			s.emitReplayed(bottom, result.PendingActions)
		}
		return s.doc

	case action.TransactionRollbck:
		result := s.tx.Rollback()
		if result.Snapshot != nil {
			s.doc = result.Snapshot
		}
		s.notifyListeners()
		return s.doc

	default:
		return s.applyAction(a)
	}
}

// applyAction runs a through the reducer and, if it changed the
// document, either tracks it (transaction open) or publishes it
// (transaction closed).
func (s *Store) applyAction(a action.Action) *state.Document {
	prev := s.doc
	next := s.reducer.Reduce(prev, a)
	if next == prev {
		return s.doc
	}
	s.doc = next

	if s.tx.IsActive() {
		s.tx.TrackAction(a)
		return s.doc
	}

	s.notifyListeners()
	s.emitFor(a, prev, next)
	if next.LineIndex.RebuildPending() {
		s.scheduleReconciliation()
	}
	return s.doc
}

// emitReplayed re-runs pendingActions through the pure reducer starting
// from bottom (the state as of TRANSACTION_START) purely to recover,
// for each action, the "before" and "after" document needed to pick an
// event.Kind — the actual s.doc was already advanced live during the
// transaction (§4.6 dispatch step 4 applies even while a
// transaction is open), so this replay never touches s.doc, only the
// emitter.
func (s *Store) emitReplayed(bottom *state.Document, pending []action.Action) {
	if s.emitter == nil || bottom == nil {
		return
	}
	cur := bottom
	for _, a := range pending {
		next := s.reducer.Reduce(cur, a)
		if next != cur {
			s.emitFor(a, cur, next)
		}
		cur = next
	}
}
