package transaction

import (
	"fmt"

	"github.com/oligo/textcore/internal/errs"
)

func errProtocolViolation(op string) error {
	return fmt.Errorf("transaction: %w: %s at depth 0", errs.ErrTransactionProtocolViolation, op)
}
