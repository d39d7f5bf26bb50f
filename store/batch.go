package store

import (
	"fmt"

	"github.com/oligo/textcore/action"
	"github.com/oligo/textcore/internal/diag"
	"github.com/oligo/textcore/state"
)

// Batch wraps actions in a single transaction: TRANSACTION_START,
// dispatch each action in order, TRANSACTION_COMMIT (§4.6 "batch").
// If applying an action panics — a corrupted Action value indexing past
// a slice bound is the realistic trigger here, since the
// JSON boundary already rejects structurally invalid actions before
// they ever reach Dispatch — Batch attempts a rollback and re-raises the
// failure as an error; if the rollback attempt itself also fails, it
// falls back to transaction.Manager.EmergencyReset and notifies
// listeners once more so observers never see a half-applied batch (§7
// TransactionRollbackFault).
func (s *Store) Batch(actions []action.Action) (doc *state.Document, err error) {
	s.Dispatch(action.NewTransactionStart())

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		err = fmt.Errorf("store: batch action failed: %v", r)
		if rbErr := s.safeRollback(); rbErr != nil {
			diag.TransactionRollbackFault(rbErr)
			if bottom := s.tx.EmergencyReset(); bottom != nil {
				s.doc = bottom
			}
			s.notifyListeners()
		}
	}()

	for _, a := range actions {
		s.Dispatch(a)
	}
	s.Dispatch(action.NewTransactionCommit())
	return s.doc, nil
}

// safeRollback calls Dispatch(TRANSACTION_ROLLBACK), converting a panic
// from within that call into an error instead of letting it escape
// Batch's own recover.
func (s *Store) safeRollback() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("store: rollback failed: %v", r)
		}
	}()
	s.Dispatch(action.NewTransactionRollback())
	return nil
}
