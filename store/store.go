// Package store implements the mutable holder of "current state" (§4.6):
// dispatch pipeline, listener set, transaction wiring, optional event
// emitter, viewport tracking, and idle-time line-index reconciliation.
// Store is the only mutable slot in the whole system — every
// state.Document it ever points to is immutable and shared (§3.2) —
// and the single owner of the current Document reference; nothing else
// in textcore holds mutable state.
package store

import (
	"time"

	"golang.org/x/exp/maps"

	"github.com/oligo/textcore/event"
	"github.com/oligo/textcore/internal/diag"
	"github.com/oligo/textcore/reducer"
	"github.com/oligo/textcore/state"
	"github.com/oligo/textcore/transaction"
)

// Options configures a Store (§6.3-adjacent construction tunables), as a
// struct of tunables rather than functional options.
type Options struct {
	Reducer   *reducer.Reducer // nil uses reducer.New(reducer.Options{})
	Scheduler Scheduler        // nil uses NewTimerScheduler(16)
	Emitter   *event.Emitter   // nil disables the event-emitter variant
}

// Store owns the current Document, the listener set, the transaction
// manager, reconciliation scheduler state, and an optional event
// emitter (§4.6 "Owns:").
type Store struct {
	doc *state.Document

	reducer *reducer.Reducer
	tx      *transaction.Manager

	listeners  map[int]func()
	nextListen int

	scheduler     Scheduler
	scheduleGen   int
	isReconciling bool

	emitter *event.Emitter

	hasViewport   bool
	viewportFirst int64
	viewportLast  int64

	// docBeforeDirty mirrors the dirty flag as of the last emitted event,
	// so emitFor can tell a dirty-change apart from a same-dirtiness
	// content-change.
	docBeforeDirty bool
}

// New returns a Store seeded with doc.
func New(doc *state.Document, opts Options) *Store {
	red := opts.Reducer
	if red == nil {
		red = reducer.New(reducer.Options{})
	}
	sched := opts.Scheduler
	if sched == nil {
		sched = NewTimerScheduler(16)
	}
	return &Store{
		doc:            doc,
		reducer:        red,
		tx:             transaction.New(),
		listeners:      make(map[int]func()),
		scheduler:      sched,
		emitter:        opts.Emitter,
		docBeforeDirty: doc.Metadata.IsDirty,
	}
}

// GetSnapshot returns the current state (§6.2 "getSnapshot() ->
// current state (same reference between mutations)").
func (s *Store) GetSnapshot() *state.Document { return s.doc }

// Subscribe registers fn to be called (with no arguments) after every
// observable state change, and returns an unsubscribe function (§6.2
// "subscribe(listener) -> unsubscribe").
func (s *Store) Subscribe(fn func()) (unsubscribe func()) {
	id := s.nextListen
	s.nextListen++
	s.listeners[id] = fn
	return func() { delete(s.listeners, id) }
}

// notifyListeners iterates a captured snapshot of the listener set so
// that a listener which subscribes or unsubscribes mid-iteration never
// perturbs the current round (§5 "Listener iteration uses a captured
// list"); a re-entrant Dispatch from inside a listener runs to
// completion before this loop resumes, since Go's call stack naturally
// gives re-entry the same nesting §5 asks for ("If a listener
// re-dispatches, the new dispatch runs to completion within the current
// listener call").
func (s *Store) notifyListeners() {
	captured := maps.Values(s.listeners)
	for _, fn := range captured {
		s.callListenerSafely(fn)
	}
}

func (s *Store) callListenerSafely(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			diag.ListenerFault(r)
		}
	}()
	fn()
}

// AddEventListener (whose returned function removes that one listener)
// and RemoveAllListeners delegate to the configured event.Emitter (§6.2,
// event-emitter variant only); they are no-ops when no emitter was
// configured.
func (s *Store) AddEventListener(kind event.Kind, h event.Handler) (unsubscribe func()) {
	if s.emitter == nil {
		return func() {}
	}
	return s.emitter.AddListener(kind, h)
}

func (s *Store) RemoveAllListeners() {
	if s.emitter != nil {
		s.emitter.RemoveAll()
	}
}

func nowMillis() int64 { return time.Now().UnixMilli() }
