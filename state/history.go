package state

// ChangeKind tags one HistoryChange variant (§3.1 "History change").
type ChangeKind uint8

const (
	ChangeInsert ChangeKind = iota
	ChangeDelete
	ChangeReplace
)

// HistoryChange is one of insert(position, text) | delete(position, text)
// | replace(position, newText, oldText). A single struct carries all
// three shapes via a discriminant rather than an interface, matching the
// action package's rationale for the action envelope: one wire/memory
// shape instead of per-variant boxing.
type HistoryChange struct {
	Kind    ChangeKind
	Pos     int64
	Text    string // inserted text (Insert), removed text (Delete), new text (Replace)
	OldText string // prior text at Pos, only meaningful for Replace
}

// Invert returns the change that undoes c: an insert undoes a delete,
// a delete undoes an insert, and a replace undoes into the reverse
// replace.
func (c HistoryChange) Invert() HistoryChange {
	switch c.Kind {
	case ChangeInsert:
		return HistoryChange{Kind: ChangeDelete, Pos: c.Pos, Text: c.Text}
	case ChangeDelete:
		return HistoryChange{Kind: ChangeInsert, Pos: c.Pos, Text: c.Text}
	default: // ChangeReplace
		return HistoryChange{Kind: ChangeReplace, Pos: c.Pos, Text: c.OldText, OldText: c.Text}
	}
}

// Entry is one undo/redo-stack entry: a non-empty list of changes applied
// atomically, the selection immediately before and after, and a
// wall-clock timestamp used only for coalescing (§3.1 "History
// entry").
type Entry struct {
	Changes         []HistoryChange
	SelectionBefore Selection
	SelectionAfter  Selection
	Timestamp       int64 // unix millis
}

// Invert returns the entry that undoes e: changes reversed and
// inverted, selections swapped.
func (e Entry) Invert() Entry {
	inverted := make([]HistoryChange, len(e.Changes))
	for i, c := range e.Changes {
		inverted[len(e.Changes)-1-i] = c.Invert()
	}
	return Entry{
		Changes:         inverted,
		SelectionBefore: e.SelectionAfter,
		SelectionAfter:  e.SelectionBefore,
	}
}

// History is the undo/redo stack pair, both bounded by Limit (§3.1
// "History state"). Limit is always >= 1.
type History struct {
	UndoStack []Entry
	RedoStack []Entry
	Limit     int
}

// NewHistory returns an empty history bounded to limit entries.
func NewHistory(limit int) History {
	if limit < 1 {
		limit = 1
	}
	return History{Limit: limit}
}

// CanUndo reports whether UndoStack is non-empty.
func (h History) CanUndo() bool { return len(h.UndoStack) > 0 }

// CanRedo reports whether RedoStack is non-empty.
func (h History) CanRedo() bool { return len(h.RedoStack) > 0 }
