package reducer

import "github.com/oligo/textcore/state"

// reduceUndo pops the last history entry, inverts its changes, restores
// the selection as it was before that entry was recorded, and pushes the
// original (non-inverted) entry onto the redo stack (§4.4 "UNDO").
// An empty undo stack is a no-op (§4.4 no-op rule).
func reduceUndo(doc *state.Document) *state.Document {
	if !doc.History.CanUndo() {
		return doc
	}
	undo := doc.History.UndoStack
	top := undo[len(undo)-1]
	inverted := top.Invert()

	version := doc.Version + 1
	buf, li := doc.Buffer, doc.LineIndex
	for _, c := range inverted.Changes {
		buf, li = applyChange(buf, li, version, c)
	}

	redo := append(append([]state.Entry{}, doc.History.RedoStack...), top)
	history := state.History{
		UndoStack: undo[:len(undo)-1],
		RedoStack: redo,
		Limit:     doc.History.Limit,
	}

	meta := doc.Metadata
	meta.IsDirty = isDirtyAfterHistoryMove(history)

	return &state.Document{
		Version:   version,
		Buffer:    buf,
		LineIndex: li,
		Selection: inverted.SelectionAfter,
		History:   history,
		Metadata:  meta,
	}
}

// reduceRedo re-applies the last undone entry's original changes,
// restores its selectionAfter, and pushes it back onto the undo stack
// (§4.4 "REDO: symmetric"). An empty redo stack is a no-op.
func reduceRedo(doc *state.Document) *state.Document {
	if !doc.History.CanRedo() {
		return doc
	}
	redo := doc.History.RedoStack
	top := redo[len(redo)-1]

	version := doc.Version + 1
	buf, li := doc.Buffer, doc.LineIndex
	for _, c := range top.Changes {
		buf, li = applyChange(buf, li, version, c)
	}

	undo := append(append([]state.Entry{}, doc.History.UndoStack...), top)
	history := state.History{
		UndoStack: undo,
		RedoStack: redo[:len(redo)-1],
		Limit:     doc.History.Limit,
	}

	meta := doc.Metadata
	meta.IsDirty = isDirtyAfterHistoryMove(history)

	return &state.Document{
		Version:   version,
		Buffer:    buf,
		LineIndex: li,
		Selection: top.SelectionAfter,
		History:   history,
		Metadata:  meta,
	}
}

// reduceHistoryClear empties both stacks. Per §4.4's action table
// this leaves dirty and version unchanged, unlike every other history
// action.
func reduceHistoryClear(doc *state.Document) *state.Document {
	if !doc.History.CanUndo() && !doc.History.CanRedo() {
		return doc
	}
	meta := doc.Metadata
	return &state.Document{
		Version:   doc.Version,
		Buffer:    doc.Buffer,
		LineIndex: doc.LineIndex,
		Selection: doc.Selection,
		History:   state.History{Limit: doc.History.Limit},
		Metadata:  meta,
	}
}

// isDirtyAfterHistoryMove resolves §4.4's "isDirty = undoStack
// non-empty OR metadata.lastSaved < top" to a concrete rule: dirty
// whenever there is anything left to undo. The lastSaved-timestamp half
// of that OR only matters once a save action (outside this core's
// scope, per §1 "OUT OF SCOPE: disk and network I/O") starts recording
// lastSaved; until then every reachable state already satisfies this
// simpler rule, recorded as a DESIGN.md open-question resolution.
func isDirtyAfterHistoryMove(h state.History) bool {
	return h.CanUndo()
}
