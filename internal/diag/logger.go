// Package diag holds the package-level diagnostic logger shared by the
// store, the event emitter and the transaction manager: a package-level *slog.Logger,
// constructed with slog.NewTextHandler by default, overridable via
// SetLogger. The reducer and the pure tree operators never import this
// package — they stay pure and silent (§7's fail-soft/fail-strict
// split), and only the store's listener dispatch and batch-rollback
// fault path, the event emitter's handler guard, and the transaction
// manager's protocol-violation checks log through it.
package diag

import (
	"log/slog"
	"os"
)

const logGroup = "textcore"

var logger *slog.Logger

func init() {
	handlerOptions := &slog.HandlerOptions{Level: slog.LevelWarn}
	logger = slog.New(slog.NewTextHandler(os.Stderr, handlerOptions)).WithGroup(logGroup)
}

// SetLogger overrides the package-level logger, e.g. to route
// diagnostics through a host application's own structured logger.
func SetLogger(log *slog.Logger) {
	logger = log.WithGroup(logGroup)
}

// ListenerFault logs a panic/error recovered from a subscriber callback
// (§7 ListenerFault): iteration continues with the remaining
// listeners.
func ListenerFault(err any) {
	logger.Warn("listener fault", "error", err)
}

// EventHandlerFault logs a panic/error recovered from an event handler
// (§7 EventHandlerFault).
func EventHandlerFault(kind string, err any) {
	logger.Warn("event handler fault", "kind", kind, "error", err)
}

// TransactionRollbackFault logs a rollback failure during batch before
// the caller falls back to an emergency reset (§7
// TransactionRollbackFault).
func TransactionRollbackFault(err error) {
	logger.Error("transaction rollback fault", "error", err)
}

// ProtocolViolation logs a commit/rollback issued at depth 0 (§7
// TransactionProtocolViolation); the caller treats it as a no-op.
func ProtocolViolation(err error) {
	logger.Warn("transaction protocol violation", "error", err)
}
