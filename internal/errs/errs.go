// Package errs collects the sentinel error values for textcore's error
// kinds (§7). They are compared with errors.Is, not type-switched:
// the reducer and pure tree operators never return them at all (§4.4 —
// the reducer clamps or no-ops instead of failing), only the
// serialization and transaction-protocol boundaries do.
package errs

import "errors"

var (
	// ErrInvalidInput marks a deserialized action with an unknown type
	// tag, a missing required field, or a mistyped field.
	ErrInvalidInput = errors.New("textcore: invalid input")

	// ErrTransactionProtocolViolation marks a commit or rollback issued
	// at depth 0. The store treats it as a no-op result, not a panic.
	ErrTransactionProtocolViolation = errors.New("textcore: transaction protocol violation")

	// ErrTransactionRollbackFault marks a rollback that itself failed
	// during a batch; the caller responds with an emergency reset.
	ErrTransactionRollbackFault = errors.New("textcore: transaction rollback fault")
)
