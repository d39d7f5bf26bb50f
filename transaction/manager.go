// Package transaction implements the nested-transaction manager (§4.5):
// a snapshot stack the Store pushes onto at TRANSACTION_START and pops
// from at TRANSACTION_ROLLBACK, plus a pending-action log the Store
// drains at the outermost TRANSACTION_COMMIT. Manager owns no document
// logic itself — it is a plain stack machine, kept separate from content
// editing the same way buffer.Table leaves undo/redo to state.History
// and the reducer, here applied to transaction snapshots instead of
// content edits.
package transaction

import (
	"github.com/oligo/textcore/action"
	"github.com/oligo/textcore/internal/diag"
	"github.com/oligo/textcore/state"
)

// CommitResult is what Commit reports back to the caller (§4.5
// "commit(): returns {isOutermost, snapshot: null, pendingActions}").
type CommitResult struct {
	IsOutermost    bool
	PendingActions []action.Action
}

// RollbackResult is what Rollback reports back to the caller: the
// snapshot to restore state to, and whether this rollback closed the
// outermost transaction.
type RollbackResult struct {
	Snapshot    *state.Document
	IsOutermost bool
}

// Manager owns {depth, snapshotStack, pendingActions} exactly per §4.5
// — nothing else. depth == len(snapshotStack) holds at all times
// outside a single Begin/Commit call.
type Manager struct {
	depth          int
	snapshotStack  []*state.Document
	pendingActions []action.Action
}

// New returns an idle transaction manager (depth 0).
func New() *Manager {
	return &Manager{}
}

// IsActive reports whether a transaction is currently open.
func (m *Manager) IsActive() bool { return m.depth > 0 }

// Depth returns the current nesting depth.
func (m *Manager) Depth() int { return m.depth }

// Begin pushes currentState onto the snapshot stack; entering at depth 0
// clears any stale pending-action log from a prior, already-closed
// transaction (§4.5 "begin").
func (m *Manager) Begin(currentState *state.Document) {
	if m.depth == 0 {
		m.pendingActions = nil
	}
	m.snapshotStack = append(m.snapshotStack, currentState)
	m.depth++
}

// Commit closes one nesting level. At depth 1 on entry it returns the
// accumulated pending actions and clears the log (§4.5 "At depth=1
// on entry, returns pending and clears them; otherwise returns empty").
// Committing at depth 0 is a protocol violation, logged and treated as a
// no-op outermost commit (§7 TransactionProtocolViolation).
func (m *Manager) Commit() CommitResult {
	if m.depth == 0 {
		diag.ProtocolViolation(errProtocolViolation("commit"))
		return CommitResult{IsOutermost: true}
	}

	isOutermost := m.depth == 1
	m.snapshotStack = m.snapshotStack[:len(m.snapshotStack)-1]
	m.depth--

	if !isOutermost {
		return CommitResult{}
	}
	pending := m.pendingActions
	m.pendingActions = nil
	return CommitResult{IsOutermost: true, PendingActions: pending}
}

// Rollback pops and returns the snapshot at the current level. At depth 1
// on entry it also clears pendingActions (§4.5 "rollback").
func (m *Manager) Rollback() RollbackResult {
	if m.depth == 0 {
		diag.ProtocolViolation(errProtocolViolation("rollback"))
		return RollbackResult{IsOutermost: true}
	}

	isOutermost := m.depth == 1
	snapshot := m.snapshotStack[len(m.snapshotStack)-1]
	m.snapshotStack = m.snapshotStack[:len(m.snapshotStack)-1]
	m.depth--
	if isOutermost {
		m.pendingActions = nil
	}
	return RollbackResult{Snapshot: snapshot, IsOutermost: isOutermost}
}

// BottomSnapshot peeks the outermost (first-pushed) snapshot without
// popping it, letting the store replay pendingActions against the
// pre-transaction state for per-action event emission once the
// outermost commit lands (§4.6 event-emitter variant). Returns nil
// when no transaction is open.
func (m *Manager) BottomSnapshot() *state.Document {
	if len(m.snapshotStack) == 0 {
		return nil
	}
	return m.snapshotStack[0]
}

// TrackAction appends a to the pending-action log; the store calls this
// for every dispatch that lands while a transaction is active (§4.6
// dispatch step 4).
func (m *Manager) TrackAction(a action.Action) {
	m.pendingActions = append(m.pendingActions, a)
}

// EmergencyReset clears all manager state and returns the bottommost
// snapshot (nil if none was ever pushed), used by the store when a
// rollback itself fails mid-batch (§4.5 "emergencyReset", §7
// TransactionRollbackFault).
func (m *Manager) EmergencyReset() *state.Document {
	var bottom *state.Document
	if len(m.snapshotStack) > 0 {
		bottom = m.snapshotStack[0]
	}
	m.depth = 0
	m.snapshotStack = nil
	m.pendingActions = nil
	return bottom
}
