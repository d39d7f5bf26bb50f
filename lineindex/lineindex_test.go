package lineindex

import (
	"testing"
)

// byteAccessor is a trivial TextAccessor backed by a plain slice, enough
// to exercise reconciliation without pulling in the buffer package.
type byteAccessor struct{ data []byte }

func (a byteAccessor) GetText(start, end int64) []byte { return a.data[start:end] }
func (a byteAccessor) GetLength() int64                { return int64(len(a.data)) }

func lineStrings(t *testing.T, ix *Index, acc byteAccessor) []string {
	t.Helper()
	var out []string
	for i := int64(0); i < ix.LineCount(); i++ {
		r, ok := ix.FindLineByNumber(i)
		if !ok {
			t.Fatalf("FindLineByNumber(%d) not ok with LineCount=%d", i, ix.LineCount())
		}
		out = append(out, string(acc.GetText(r.Start, r.Start+r.Length)))
	}
	return out
}

func TestEagerInsertSplitsLines(t *testing.T) {
	ix := New(Eager)
	content := []byte("a\nbb\nccc")
	ix = ix.Insert(0, content, 1)

	if got := ix.LineCount(); got != 3 {
		t.Fatalf("LineCount() = %d, want 3", got)
	}
	want := []string{"a\n", "bb\n", "ccc"}
	got := lineStrings(t, ix, byteAccessor{content})
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestEagerInsertMidLineNoNewline(t *testing.T) {
	ix := New(Eager).Insert(0, []byte("ac\n"), 1)
	ix = ix.Insert(1, []byte("b"), 2)
	acc := byteAccessor{[]byte("abc\n")}

	if ix.LineCount() != 2 {
		t.Fatalf("LineCount() = %d, want 2", ix.LineCount())
	}
	got := lineStrings(t, ix, acc)
	if got[0] != "abc\n" || got[1] != "" {
		t.Fatalf("lines = %q", got)
	}
}

func TestEagerDeleteMergesLines(t *testing.T) {
	content := []byte("one\ntwo\nthree\n")
	ix := New(Eager).Insert(0, content, 1)

	// Delete "wo\nthree" (bytes [5,13)), leaving "one\nt\n".
	ix = ix.Delete(5, 13, content[5:13], 2)
	if ix.LineCount() != 3 {
		t.Fatalf("LineCount() = %d, want 3", ix.LineCount())
	}
	acc := byteAccessor{[]byte("one\nt\n")}
	got := lineStrings(t, ix, acc)
	if got[0] != "one\n" || got[1] != "t\n" {
		t.Fatalf("lines = %q", got)
	}
}

func TestEagerDeleteConsumesTrailingNewlineMergesNextLine(t *testing.T) {
	content := []byte("one\ntwo\n")
	ix := New(Eager).Insert(0, content, 1)

	// Delete just the newline ending the first line: the two lines must
	// merge into one, even though end-1 still falls inside line 0.
	ix = ix.Delete(3, 4, content[3:4], 2)
	if ix.LineCount() != 2 {
		t.Fatalf("LineCount() = %d, want 2", ix.LineCount())
	}
	acc := byteAccessor{[]byte("onetwo\n")}
	got := lineStrings(t, ix, acc)
	if got[0] != "onetwo\n" {
		t.Fatalf("lines = %q", got)
	}
}

func TestLazyNoNewlineInsertNeverDefers(t *testing.T) {
	ix := New(Lazy).Insert(0, []byte("ac"), 1)
	ix = ix.Insert(1, []byte("b"), 2)

	if ix.RebuildPending() {
		t.Fatalf("RebuildPending() = true for a no-newline insert")
	}
	if ix.LineCount() != 1 {
		t.Fatalf("LineCount() = %d, want 1", ix.LineCount())
	}
	r, ok := ix.FindLineByNumber(0)
	if !ok || r.Start != 0 || r.Length != 3 {
		t.Fatalf("FindLineByNumber(0) = %+v, %v", r, ok)
	}
}

func TestLazyNewlineInsertDefersThenReconciles(t *testing.T) {
	content := []byte("abc")
	ix := New(Lazy).Insert(0, content, 1)

	inserted := []byte("X\nY\nZ")
	ix = ix.Insert(1, inserted, 2)
	acc := byteAccessor{[]byte("aX\nY\nZbc")}

	if !ix.RebuildPending() {
		t.Fatalf("RebuildPending() = false, want true after a newline-carrying insert")
	}
	if !ix.IsLineDirty(0) {
		t.Fatalf("IsLineDirty(0) = false, want true")
	}
	if got, want := ix.LineCount(), int64(3); got != want {
		t.Fatalf("LineCount() = %d, want %d", got, want)
	}

	ix = ix.ReconcileTail(acc, 2)
	if ix.RebuildPending() {
		t.Fatalf("RebuildPending() = true after ReconcileTail")
	}
	want := []string{"aX\n", "Y\n", "Zbc"}
	got := lineStrings(t, ix, acc)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLazyEditBeforeDirtyTailWidensBoundary(t *testing.T) {
	content := []byte("one\ntwo\nthree\n")
	ix := New(Lazy).Insert(0, content, 1)
	// Loading content with newlines always defers in Lazy; reconcile once
	// up front so the tree starts out clean, the way an editor would on
	// open, before exercising incremental edits against it.
	ix = ix.ReconcileTail(byteAccessor{content}, 1)

	// Open a tail by inserting a newline into the third line.
	ix = ix.Insert(int64(len("one\ntwo\nthr")), []byte("EE\n"), 2)

	// Now edit earlier, in the clean prefix, also introducing a newline.
	// Lazy always defers a newline-carrying edit rather than splicing it
	// in, so this widens the tail's start leftward to this edit instead
	// of leaving two disjoint dirty spans.
	ix = ix.Insert(1, []byte("NN\n"), 3)

	finalContent := []byte("oNN\nne\ntwo\nthrEE\nee\n")
	acc := byteAccessor{finalContent}

	ix = ix.ReconcileTail(acc, 3)
	if ix.RebuildPending() {
		t.Fatalf("RebuildPending() = true after ReconcileTail")
	}

	full := New(Eager).Insert(0, finalContent, 1)
	if ix.LineCount() != full.LineCount() {
		t.Fatalf("LineCount() = %d, want %d", ix.LineCount(), full.LineCount())
	}
	gotLines := lineStrings(t, ix, acc)
	wantLines := lineStrings(t, full, acc)
	for i := range wantLines {
		if gotLines[i] != wantLines[i] {
			t.Fatalf("line %d = %q, want %q", i, gotLines[i], wantLines[i])
		}
	}
}

func TestLazyDeleteStraddlingBoundaryReconciles(t *testing.T) {
	content := []byte("aaa\nbbb\nccc\nddd\n")
	ix := New(Lazy).Insert(0, content, 1)
	ix = ix.ReconcileTail(byteAccessor{content}, 1)

	// Open a tail starting partway through line 2 ("ccc\n").
	ix = ix.Insert(int64(len("aaa\nbbb\nc")), []byte("X\nY"), 2)
	// content is now: aaa\nbbb\ncX\nYcc\nddd\n
	afterInsert := []byte("aaa\nbbb\ncX\nYcc\nddd\n")

	// Delete a range starting in the clean prefix (inside "bbb\n") and
	// extending into the dirty tail.
	removed := afterInsert[5:12] // "bb\ncX\nY"
	ix = ix.Delete(5, 12, removed, 3)
	afterDelete := append(append([]byte{}, afterInsert[:5]...), afterInsert[12:]...)

	acc := byteAccessor{afterDelete}
	ix = ix.ReconcileTail(acc, 3)

	full := New(Eager).Insert(0, afterDelete, 1)
	if ix.LineCount() != full.LineCount() {
		t.Fatalf("LineCount() = %d, want %d (content %q)", ix.LineCount(), full.LineCount(), afterDelete)
	}
	gotLines := lineStrings(t, ix, acc)
	wantLines := lineStrings(t, full, acc)
	for i := range wantLines {
		if gotLines[i] != wantLines[i] {
			t.Fatalf("line %d = %q, want %q", i, gotLines[i], wantLines[i])
		}
	}
}

func TestReconcileFullRebuildsFromScratch(t *testing.T) {
	content := []byte("x\ny\nz")
	ix := New(Lazy)
	acc := byteAccessor{content}
	ix = ix.ReconcileFull(acc, 1)

	if ix.LineCount() != 3 {
		t.Fatalf("LineCount() = %d, want 3", ix.LineCount())
	}
	got := lineStrings(t, ix, acc)
	want := []string{"x\n", "y\n", "z"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestGetLineRangePreciseReconcilesOnlyWhenDirty(t *testing.T) {
	content := []byte("one\ntwo\nthree\n")
	ix := New(Lazy).Insert(0, content, 1)
	ix = ix.ReconcileTail(byteAccessor{content}, 1)

	// Insert "X\n" between 't' and 'w' of the second line ("two\n" at byte
	// 4), splitting it into "tX\n" + "wo\n" and opening a dirty tail at
	// rank 1. Line 0 ("one\n") is untouched and stays clean.
	afterInsert := []byte("one\ntX\nwo\nthree\n")
	ix = ix.Insert(5, []byte("X\n"), 2)
	acc := byteAccessor{afterInsert}

	if ix.IsLineDirty(0) {
		t.Fatalf("IsLineDirty(0) = true, want false")
	}
	if !ix.IsLineDirty(1) {
		t.Fatalf("IsLineDirty(1) = false, want true")
	}

	// Line 0 is clean: no reconciliation should happen, and the returned
	// index should be the same pointer.
	lr, next, ok := ix.GetLineRangePrecise(acc, 0, 2)
	if !ok || lr.Start != 0 || lr.Length != 4 {
		t.Fatalf("GetLineRangePrecise(0) = %+v, %v", lr, ok)
	}
	if next != ix {
		t.Fatalf("GetLineRangePrecise(0) reconciled a clean line")
	}

	// Line 1 falls inside the dirty tail: this must reconcile and hand
	// back an updated index with the tail cleared.
	lr, next, ok = ix.GetLineRangePrecise(acc, 1, 2)
	if !ok || lr.Start != 4 || lr.Length != 3 {
		t.Fatalf("GetLineRangePrecise(1) = %+v, %v", lr, ok)
	}
	if next == ix {
		t.Fatalf("GetLineRangePrecise(1) did not reconcile a dirty line")
	}
	if next.RebuildPending() {
		t.Fatalf("RebuildPending() = true on the index GetLineRangePrecise returned")
	}
}
