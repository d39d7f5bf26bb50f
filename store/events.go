package store

import (
	"github.com/oligo/textcore/action"
	"github.com/oligo/textcore/event"
	"github.com/oligo/textcore/state"
)

// emitFor maps an applied action to the event.Kind values it implies
// (§4.6 "emits content-change | selection-change | history-change |
// dirty-change as appropriate") and emits each through the configured
// emitter. No-op when the store was built without one.
//
// ContentChange additionally requires that the buffer itself actually
// changed (§9's open-question resolution: "emit iff the action causes a
// byte-level change; otherwise do not emit"). A reducer call can return
// a new *state.Document (new version, new selection, new dirty flag)
// without a single byte moving — APPLY_REMOTE with every change a
// no-op (start==end deletes, empty inserts) is the case that actually
// reaches this path, since INSERT/DELETE/REPLACE already return the
// identical document unchanged on their own no-op inputs and never get
// here at all. LoadChunk/EvictChunk are listed here for the interface
// they will eventually carry (§4.4 "no state change in core"), but the
// reducer never advances the document for them today, so this branch is
// presently unreachable for those two types.
func (s *Store) emitFor(a action.Action, prev, next *state.Document) {
	if s.emitter == nil {
		return
	}

	wasDirty := s.docBeforeDirty
	s.docBeforeDirty = next.Metadata.IsDirty

	switch a.Type {
	case action.Insert, action.Delete, action.Replace, action.ApplyRemote,
		action.LoadChunk, action.EvictChunk:
		if next.Buffer != prev.Buffer {
			s.emitter.Emit(event.ContentChange)
		}
	case action.SetSelection:
		s.emitter.Emit(event.SelectionChange)
	case action.Undo, action.Redo, action.HistoryClear:
		s.emitter.Emit(event.HistoryChange)
	}

	if next.Metadata.IsDirty != wasDirty {
		s.emitter.Emit(event.DirtyChange)
	}
}
