package reducer

import (
	"strings"

	"github.com/oligo/textcore/state"
)

// pushEntry pushes newEntry onto history's undo stack, first trying to
// coalesce it into the current top entry (a nil coalesce disables
// coalescing entirely, as REPLACE requires — §4.4 "REPLACE never
// coalesces"). Any push clears the redo stack (§3.1 "whenever a
// non-history mutating entry is pushed, redoStack is emptied") and, if
// the result exceeds the configured limit, drops from the oldest end
// (§4.4 "History limit").
func pushEntry(h state.History, newEntry state.Entry, windowMillis int64, coalesce func(top state.Entry) (state.HistoryChange, bool)) state.History {
	if coalesce != nil && len(h.UndoStack) > 0 {
		top := h.UndoStack[len(h.UndoStack)-1]
		if merged, ok := coalesce(top); ok {
			// Coalesced entries keep the earliest selectionBefore and
			// newest selectionAfter (§4.4).
			entry := state.Entry{
				Changes:         []state.HistoryChange{merged},
				SelectionBefore: top.SelectionBefore,
				SelectionAfter:  newEntry.SelectionAfter,
				Timestamp:       newEntry.Timestamp,
			}
			stack := append(append([]state.Entry{}, h.UndoStack[:len(h.UndoStack)-1]...), entry)
			return state.History{UndoStack: stack, Limit: h.Limit}
		}
	}

	stack := append(append([]state.Entry{}, h.UndoStack...), newEntry)
	if len(stack) > h.Limit {
		stack = stack[len(stack)-h.Limit:]
	}
	return state.History{UndoStack: stack, Limit: h.Limit}
}

// withinWindow reports whether issuedAt is within windowMillis of the
// top entry's timestamp, going forward in time (a clock that appears to
// run backward never coalesces).
func withinWindow(top, issuedAt, windowMillis int64) bool {
	return issuedAt >= top && issuedAt-top < windowMillis
}

// tryCoalesceInsert returns a coalescing function for an INSERT at
// start/text issued at issuedAt, implementing §4.4's INSERT
// coalescing rule: the top entry must itself be a single INSERT whose
// text ends exactly where this one begins, neither text may contain a
// newline, and the gap must be under the configured window.
func tryCoalesceInsert(start int64, text string, issuedAt, windowMillis int64) func(state.Entry) (state.HistoryChange, bool) {
	return func(top state.Entry) (state.HistoryChange, bool) {
		if len(top.Changes) != 1 || top.Changes[0].Kind != state.ChangeInsert {
			return state.HistoryChange{}, false
		}
		prior := top.Changes[0]
		if prior.Pos+int64(len(prior.Text)) != start {
			return state.HistoryChange{}, false
		}
		if strings.Contains(prior.Text, "\n") || strings.Contains(text, "\n") {
			return state.HistoryChange{}, false
		}
		if !withinWindow(top.Timestamp, issuedAt, windowMillis) {
			return state.HistoryChange{}, false
		}
		return state.HistoryChange{Kind: state.ChangeInsert, Pos: prior.Pos, Text: prior.Text + text}, true
	}
}

// tryCoalesceDelete returns a coalescing function for a DELETE over
// [start,end) with the just-removed text, implementing §4.4's
// symmetric DELETE coalescing rule: backward (backspace) when the new
// delete's end equals the prior delete's start, forward when the new
// delete's start equals the prior delete's end.
func tryCoalesceDelete(start, end int64, removed string, issuedAt, windowMillis int64) func(state.Entry) (state.HistoryChange, bool) {
	return func(top state.Entry) (state.HistoryChange, bool) {
		if len(top.Changes) != 1 || top.Changes[0].Kind != state.ChangeDelete {
			return state.HistoryChange{}, false
		}
		if !withinWindow(top.Timestamp, issuedAt, windowMillis) {
			return state.HistoryChange{}, false
		}
		prior := top.Changes[0]

		switch {
		case end == prior.Pos: // backward: backspacing leftward
			return state.HistoryChange{Kind: state.ChangeDelete, Pos: start, Text: removed + prior.Text}, true
		case start == prior.Pos+int64(len(prior.Text)): // forward: deleting rightward
			return state.HistoryChange{Kind: state.ChangeDelete, Pos: prior.Pos, Text: prior.Text + removed}, true
		default:
			return state.HistoryChange{}, false
		}
	}
}
