package reducer

import (
	"testing"

	"github.com/oligo/textcore/action"
	"github.com/oligo/textcore/state"
)

func newDoc(content string) *state.Document {
	cfg := state.DefaultConfig()
	cfg.Content = content
	return state.New(cfg)
}

func TestInsertAppendsAndBumpsVersion(t *testing.T) {
	doc := newDoc("hello")
	next := Reduce(doc, action.NewInsert(5, " world"))
	if next == doc {
		t.Fatalf("Reduce returned same reference for a real insert")
	}
	if got := string(next.Buffer.GetValue()); got != "hello world" {
		t.Fatalf("content = %q, want %q", got, "hello world")
	}
	if next.Version != doc.Version+1 {
		t.Fatalf("Version = %d, want %d", next.Version, doc.Version+1)
	}
	if !next.Metadata.IsDirty {
		t.Fatalf("IsDirty = false after insert")
	}
}

func TestInsertEmptyTextIsNoOp(t *testing.T) {
	doc := newDoc("hello")
	next := Reduce(doc, action.NewInsert(2, ""))
	if next != doc {
		t.Fatalf("Reduce should return the same reference for an empty insert")
	}
}

func TestDeleteInvertedRangeIsNoOp(t *testing.T) {
	doc := newDoc("hello")
	next := Reduce(doc, action.NewDelete(4, 1))
	if next != doc {
		t.Fatalf("Reduce should return the same reference for an inverted delete")
	}
}

func TestDeleteRemovesRange(t *testing.T) {
	doc := newDoc("hello world")
	next := Reduce(doc, action.NewDelete(5, 11))
	if got := string(next.Buffer.GetValue()); got != "hello" {
		t.Fatalf("content = %q, want %q", got, "hello")
	}
}

func TestReplaceDeletesThenInserts(t *testing.T) {
	doc := newDoc("hello world")
	next := Reduce(doc, action.NewReplace(6, 11, "there"))
	if got := string(next.Buffer.GetValue()); got != "hello there" {
		t.Fatalf("content = %q, want %q", got, "hello there")
	}
	if len(next.History.UndoStack) != 1 {
		t.Fatalf("UndoStack has %d entries, want 1 (single entry for replace)", len(next.History.UndoStack))
	}
}

func TestUndoRestoresPriorContentAndSelection(t *testing.T) {
	doc := newDoc("hello")
	a1 := action.NewInsert(5, "!")
	a1.IssuedAtMillis = 0
	inserted := Reduce(doc, a1)

	undone := Reduce(inserted, action.NewUndo())
	if got := string(undone.Buffer.GetValue()); got != "hello" {
		t.Fatalf("content after undo = %q, want %q", got, "hello")
	}
	if len(undone.History.RedoStack) != 1 {
		t.Fatalf("RedoStack has %d entries, want 1", len(undone.History.RedoStack))
	}
}

func TestRedoReappliesChange(t *testing.T) {
	doc := newDoc("hello")
	inserted := Reduce(doc, action.NewInsert(5, "!"))
	undone := Reduce(inserted, action.NewUndo())
	redone := Reduce(undone, action.NewRedo())
	if got := string(redone.Buffer.GetValue()); got != "hello!" {
		t.Fatalf("content after redo = %q, want %q", got, "hello!")
	}
}

func TestUndoOnEmptyStackIsNoOp(t *testing.T) {
	doc := newDoc("hello")
	next := Reduce(doc, action.NewUndo())
	if next != doc {
		t.Fatalf("Reduce should return the same reference when undo stack is empty")
	}
}

func TestInsertCoalescesContiguousTyping(t *testing.T) {
	doc := newDoc("")
	a1 := action.NewInsert(0, "h")
	a1.IssuedAtMillis = 0
	s1 := Reduce(doc, a1)

	a2 := action.NewInsert(1, "i")
	a2.IssuedAtMillis = 50
	s2 := Reduce(s1, a2)

	if len(s2.History.UndoStack) != 1 {
		t.Fatalf("UndoStack has %d entries, want 1 (coalesced)", len(s2.History.UndoStack))
	}
	if s2.History.UndoStack[0].Changes[0].Text != "hi" {
		t.Fatalf("coalesced text = %q, want %q", s2.History.UndoStack[0].Changes[0].Text, "hi")
	}
}

func TestInsertDoesNotCoalesceAcrossWindow(t *testing.T) {
	doc := newDoc("")
	a1 := action.NewInsert(0, "h")
	a1.IssuedAtMillis = 0
	s1 := Reduce(doc, a1)

	a2 := action.NewInsert(1, "i")
	a2.IssuedAtMillis = 600
	s2 := Reduce(s1, a2)

	if len(s2.History.UndoStack) != 2 {
		t.Fatalf("UndoStack has %d entries, want 2 (window elapsed)", len(s2.History.UndoStack))
	}
}

func TestReplaceNeverCoalesces(t *testing.T) {
	doc := newDoc("hello world")
	a1 := action.NewReplace(0, 5, "howdy")
	a1.IssuedAtMillis = 0
	s1 := Reduce(doc, a1)

	a2 := action.NewReplace(0, 5, "hiya!")
	a2.IssuedAtMillis = 10
	s2 := Reduce(s1, a2)

	if len(s2.History.UndoStack) != 2 {
		t.Fatalf("UndoStack has %d entries, want 2 (replace never coalesces)", len(s2.History.UndoStack))
	}
}

func TestHistoryLimitDropsOldestEntries(t *testing.T) {
	cfg := state.DefaultConfig()
	cfg.HistoryLimit = 2
	doc := state.New(cfg)

	s := doc
	for i, text := range []string{"a", "b", "c"} {
		a := action.NewInsert(int64(i), text)
		a.IssuedAtMillis = int64(i * 1000) // force no coalescing
		s = Reduce(s, a)
	}
	if len(s.History.UndoStack) != 2 {
		t.Fatalf("UndoStack has %d entries, want 2 (limit=2)", len(s.History.UndoStack))
	}
}

func TestSetSelectionEqualToCurrentIsNoOp(t *testing.T) {
	doc := newDoc("hello")
	next := Reduce(doc, action.NewSetSelection([]action.SelectionRange{{Anchor: 0, Head: 0}}))
	if next != doc {
		t.Fatalf("Reduce should return the same reference for an unchanged selection")
	}
}

func TestApplyRemoteDoesNotPushHistory(t *testing.T) {
	doc := newDoc("hello")
	next := Reduce(doc, action.NewApplyRemote([]action.RemoteChange{{Kind: action.RemoteInsert, Start: 5, Text: "!"}}))
	if len(next.History.UndoStack) != 0 {
		t.Fatalf("UndoStack has %d entries, want 0 (APPLY_REMOTE never pushes history)", len(next.History.UndoStack))
	}
	if got := string(next.Buffer.GetValue()); got != "hello!" {
		t.Fatalf("content = %q, want %q", got, "hello!")
	}
}

func TestTransactionControlActionsAreIdentity(t *testing.T) {
	doc := newDoc("hello")
	for _, a := range []action.Action{action.NewTransactionStart(), action.NewTransactionCommit(), action.NewTransactionRollback()} {
		if next := Reduce(doc, a); next != doc {
			t.Fatalf("Reduce(%v) should be identity", a.Type)
		}
	}
}
