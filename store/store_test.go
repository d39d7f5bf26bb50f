package store

import (
	"testing"

	"github.com/oligo/textcore/action"
	"github.com/oligo/textcore/event"
	"github.com/oligo/textcore/lineindex"
	"github.com/oligo/textcore/state"
)

// fakeScheduler runs submitted work synchronously on the next call to
// run(), so reconciliation tests don't depend on real time.
type fakeScheduler struct {
	pending  []func()
	budgetMs int
}

func newFakeScheduler() *fakeScheduler { return &fakeScheduler{budgetMs: 16} }

func (f *fakeScheduler) TimeRemainingMs() int { return f.budgetMs }
func (f *fakeScheduler) Submit(fn func())     { f.pending = append(f.pending, fn) }
func (f *fakeScheduler) run() {
	work := f.pending
	f.pending = nil
	for _, fn := range work {
		fn()
	}
}

func newTestStore(content string) (*Store, *fakeScheduler) {
	doc := state.New(state.Config{Content: content, Strategy: lineindex.Eager})
	sched := newFakeScheduler()
	return New(doc, Options{Scheduler: sched}), sched
}

func TestDispatchInsertNotifiesListenerAndBumpsVersion(t *testing.T) {
	s, _ := newTestStore("hello")
	calls := 0
	s.Subscribe(func() { calls++ })

	before := s.GetSnapshot().Version
	s.Dispatch(action.NewInsert(5, " world"))

	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
	if s.GetSnapshot().Version != before+1 {
		t.Fatalf("version = %d, want %d", s.GetSnapshot().Version, before+1)
	}
	if got := string(s.GetSnapshot().Buffer.GetValue()); got != "hello world" {
		t.Fatalf("content = %q", got)
	}
}

func TestDispatchNoOpActionDoesNotNotify(t *testing.T) {
	s, _ := newTestStore("hello")
	calls := 0
	s.Subscribe(func() { calls++ })

	s.Dispatch(action.NewInsert(0, ""))

	if calls != 0 {
		t.Fatalf("calls = %d, want 0 for a no-op insert", calls)
	}
}

func TestTransactionDefersNotifyUntilOutermostCommit(t *testing.T) {
	s, _ := newTestStore("abc")
	calls := 0
	s.Subscribe(func() { calls++ })

	s.Dispatch(action.NewTransactionStart())
	s.Dispatch(action.NewInsert(3, "d"))
	s.Dispatch(action.NewInsert(4, "e"))
	if calls != 0 {
		t.Fatalf("calls = %d, want 0 while transaction is open", calls)
	}
	s.Dispatch(action.NewTransactionCommit())

	if calls != 1 {
		t.Fatalf("calls = %d, want exactly 1 on outermost commit", calls)
	}
	if got := string(s.GetSnapshot().Buffer.GetValue()); got != "abcde" {
		t.Fatalf("content = %q", got)
	}
}

func TestTransactionRollbackRestoresSnapshot(t *testing.T) {
	s, _ := newTestStore("abc")
	s.Dispatch(action.NewTransactionStart())
	s.Dispatch(action.NewInsert(3, "xyz"))
	s.Dispatch(action.NewTransactionRollback())

	if got := string(s.GetSnapshot().Buffer.GetValue()); got != "abc" {
		t.Fatalf("content = %q, want rollback to restore %q", got, "abc")
	}
}

func TestUnsubscribeStopsFutureNotifications(t *testing.T) {
	s, _ := newTestStore("abc")
	calls := 0
	unsub := s.Subscribe(func() { calls++ })
	s.Dispatch(action.NewInsert(3, "d"))
	unsub()
	s.Dispatch(action.NewInsert(4, "e"))

	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestBatchCommitsAllActionsAsOneTransaction(t *testing.T) {
	s, _ := newTestStore("abc")
	calls := 0
	s.Subscribe(func() { calls++ })

	doc, err := s.Batch([]action.Action{
		action.NewInsert(3, "d"),
		action.NewInsert(4, "e"),
		action.NewDelete(0, 1),
	})
	if err != nil {
		t.Fatalf("Batch returned error: %v", err)
	}
	if got := string(doc.Buffer.GetValue()); got != "bcde" {
		t.Fatalf("content = %q, want %q", got, "bcde")
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want exactly 1 for the whole batch", calls)
	}
}

func TestEmitterReceivesContentChangeOnInsert(t *testing.T) {
	doc := state.New(state.Config{Content: "abc", Strategy: lineindex.Eager})
	em := event.NewEmitter()
	s := New(doc, Options{Scheduler: newFakeScheduler(), Emitter: em})

	var got event.Kind = 255
	em.AddListener(event.ContentChange, func(k event.Kind) { got = k })
	s.Dispatch(action.NewInsert(3, "d"))

	if got != event.ContentChange {
		t.Fatalf("got %v, want ContentChange", got)
	}
}

func TestEmitterReceivesDirtyChangeOnFirstEdit(t *testing.T) {
	doc := state.New(state.Config{Content: "abc", Strategy: lineindex.Eager})
	em := event.NewEmitter()
	s := New(doc, Options{Scheduler: newFakeScheduler(), Emitter: em})

	dirtyCalls := 0
	em.AddListener(event.DirtyChange, func(event.Kind) { dirtyCalls++ })
	s.Dispatch(action.NewInsert(3, "d"))
	s.Dispatch(action.NewInsert(4, "e"))

	if dirtyCalls != 1 {
		t.Fatalf("dirtyCalls = %d, want 1 (only the clean->dirty transition)", dirtyCalls)
	}
}

func TestSetViewportReconcilesLazyStrategyDirtyRange(t *testing.T) {
	doc := state.New(state.Config{Content: "line1\nline2\nline3\n", Strategy: lineindex.Lazy})
	s := New(doc, Options{Scheduler: newFakeScheduler()})

	s.Dispatch(action.NewInsert(5, "x\ny"))
	if !s.GetSnapshot().LineIndex.RebuildPending() {
		t.Fatalf("expected a lazy insert carrying a newline to leave the index dirty")
	}

	s.SetViewport(0, 2)
	if s.GetSnapshot().LineIndex.RebuildPending() {
		t.Fatalf("expected SetViewport to reconcile a viewport covering the whole dirty tail")
	}
}

func TestReconcileNowClearsRebuildPending(t *testing.T) {
	doc := state.New(state.Config{Content: "a\nb\nc\n", Strategy: lineindex.Lazy})
	s := New(doc, Options{Scheduler: newFakeScheduler()})
	s.Dispatch(action.NewInsert(1, "x\ny"))
	if !s.GetSnapshot().LineIndex.RebuildPending() {
		t.Fatalf("expected a lazy insert carrying a newline to leave the index dirty")
	}

	s.ReconcileNow()

	if s.GetSnapshot().LineIndex.RebuildPending() {
		t.Fatalf("expected ReconcileNow to clear rebuildPending")
	}
}

func TestGetLineRangePreciseReconcilesOnDemand(t *testing.T) {
	doc := state.New(state.Config{Content: "line1\nline2\nline3\n", Strategy: lineindex.Lazy})
	s := New(doc, Options{Scheduler: newFakeScheduler()})

	s.Dispatch(action.NewInsert(5, "x\ny"))
	if !s.GetSnapshot().LineIndex.RebuildPending() {
		t.Fatalf("expected a lazy insert carrying a newline to leave the index dirty")
	}

	lr, ok := s.GetLineRangePrecise(1)
	if !ok {
		t.Fatalf("GetLineRangePrecise(1) ok = false")
	}
	want := string(s.GetSnapshot().Buffer.GetText(lr.Start, lr.Start+lr.Length))
	if want != "y\n" {
		t.Fatalf("GetLineRangePrecise(1) = %q, want %q", want, "y\n")
	}
	if s.GetSnapshot().LineIndex.RebuildPending() {
		t.Fatalf("expected GetLineRangePrecise to clear rebuildPending by reconciling the tail")
	}
}

func TestEmitterSuppressesContentChangeForByteLessRemoteApply(t *testing.T) {
	doc := state.New(state.Config{Content: "abc", Strategy: lineindex.Eager})
	em := event.NewEmitter()
	s := New(doc, Options{Scheduler: newFakeScheduler(), Emitter: em})

	contentCalls := 0
	em.AddListener(event.ContentChange, func(event.Kind) { contentCalls++ })

	// start == end and an empty insert are both no-op remote changes; the
	// reducer still advances version/dirty, but no byte moves.
	s.Dispatch(action.NewApplyRemote([]action.RemoteChange{
		{Kind: action.RemoteDelete, Start: 1, Length: 0},
		{Kind: action.RemoteInsert, Start: 1, Text: ""},
	}))

	if contentCalls != 0 {
		t.Fatalf("contentCalls = %d, want 0 for a byte-less APPLY_REMOTE", contentCalls)
	}
}
