// Package reducer implements the pure state-transition function over a
// state.Document (§4.4): (state, action) -> state, never mutating
// its argument and returning the identical input reference on any no-op,
// the same pattern buffer.Table.Delete already uses for a no-op delete
// (buffer/piecetable.go). Reduce never returns an error: malformed-but-
// well-typed input is clamped or turned into a no-op (§7 "the reducer
// never throws for malformed but well-typed input"); only
// action.UnmarshalJSON and the transaction manager's protocol boundary
// surface errors.
package reducer

import (
	"github.com/oligo/textcore/action"
	"github.com/oligo/textcore/state"
)

// coalesceWindowMillis is the 500 ms default coalescing window (§4.4
// "Δtime < 500 ms"), configurable per the §9 open-question resolution
// recorded in DESIGN.md.
const coalesceWindowMillis = 500

// Options configures a Reducer's tunables beyond the action table
// itself. The zero value uses the §4.4 defaults.
type Options struct {
	CoalesceWindowMillis int64
}

// Reducer holds reducer configuration; the reducer itself stays a pure
// function of (Document, Action) otherwise (§4.2 "the reducer holds
// a strategy reference as configuration" generalizes to every reducer
// tunable, not just the line-index strategy).
type Reducer struct {
	coalesceWindowMillis int64
}

// New returns a Reducer configured by opts.
func New(opts Options) *Reducer {
	window := opts.CoalesceWindowMillis
	if window <= 0 {
		window = coalesceWindowMillis
	}
	return &Reducer{coalesceWindowMillis: window}
}

// defaultReducer is used by the package-level Reduce convenience
// function for callers that don't need a custom coalescing window.
var defaultReducer = New(Options{})

// Reduce applies a to doc using the default 500 ms coalescing window.
func Reduce(doc *state.Document, a action.Action) *state.Document {
	return defaultReducer.Reduce(doc, a)
}

// Reduce applies a to doc and returns the resulting snapshot, or doc
// itself (same pointer) on any no-op (§4.4 "returns the identical
// input reference on no-op").
func (r *Reducer) Reduce(doc *state.Document, a action.Action) *state.Document {
	switch a.Type {
	case action.Insert:
		return r.reduceInsert(doc, derefOr(a.Start, 0), derefOr(a.Text, ""), a.IssuedAtMillis)
	case action.Delete:
		return r.reduceDelete(doc, derefOr(a.Start, 0), derefOr(a.End, 0), a.IssuedAtMillis)
	case action.Replace:
		return r.reduceReplace(doc, derefOr(a.Start, 0), derefOr(a.End, 0), derefOr(a.Text, ""), a.IssuedAtMillis)
	case action.SetSelection:
		return reduceSetSelection(doc, a.Ranges)
	case action.Undo:
		return reduceUndo(doc)
	case action.Redo:
		return reduceRedo(doc)
	case action.HistoryClear:
		return reduceHistoryClear(doc)
	case action.ApplyRemote:
		return r.reduceApplyRemote(doc, a.Changes)
	case action.TransactionStart, action.TransactionCommit, action.TransactionRollbck:
		// Identity in the reducer; the store intercepts these before
		// Reduce is ever called (§4.6 dispatch steps 1-3).
		return doc
	case action.LoadChunk, action.EvictChunk:
		// Interface stubs; no state change in core (§4.4).
		return doc
	default:
		return doc
	}
}

func derefOr[T any](p *T, zero T) T {
	if p == nil {
		return zero
	}
	return *p
}

func clampRange(start, end, total int64) (int64, int64) {
	if start > end {
		start, end = end, start
	}
	return clampInt64(start, 0, total), clampInt64(end, 0, total)
}

func clampInt64(v, lo, hi int64) int64 {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	default:
		return v
	}
}

func withDirty(m state.Metadata) state.Metadata {
	m.IsDirty = true
	return m
}
