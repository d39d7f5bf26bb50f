package action

import (
	"encoding/json"
	"fmt"

	"github.com/oligo/textcore/internal/errs"
)

// alias avoids infinite recursion through Action's own (un)marshaler while
// still getting []byte's built-in base64 encoding for Data for free — the
// "one exception" §4.8 calls out is exactly encoding/json's default
// behavior for a []byte field, so no custom base64 plumbing is needed,
// only the structural validation around it.
type alias Action

// MarshalJSON emits the action envelope (§6.1). IssuedAtMillis is
// intentionally excluded (json:"-" on the field).
func (a Action) MarshalJSON() ([]byte, error) {
	return json.Marshal(alias(a))
}

// UnmarshalJSON decodes the action envelope and rejects unknown type
// tags, missing required fields, or mistyped fields (§4.8
// "Structural validation on deserialize").
func (a *Action) UnmarshalJSON(data []byte) error {
	var raw alias
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("action: %w: %w", errs.ErrInvalidInput, err)
	}
	if err := raw.validate(); err != nil {
		return err
	}
	*a = Action(raw)
	return nil
}

func (a alias) validate() error {
	switch a.Type {
	case Insert:
		if a.Start == nil || a.Text == nil {
			return missingField(a.Type, "start/text")
		}
	case Delete:
		if a.Start == nil || a.End == nil {
			return missingField(a.Type, "start/end")
		}
	case Replace:
		if a.Start == nil || a.End == nil || a.Text == nil {
			return missingField(a.Type, "start/end/text")
		}
	case SetSelection:
		if len(a.Ranges) == 0 {
			return missingField(a.Type, "ranges")
		}
	case Undo, Redo, HistoryClear, TransactionStart, TransactionCommit, TransactionRollbck:
		// no required fields
	case ApplyRemote:
		if a.Changes == nil {
			return missingField(a.Type, "changes")
		}
		for _, c := range a.Changes {
			switch c.Kind {
			case RemoteInsert, RemoteDelete:
			default:
				return fmt.Errorf("action: %w: unknown remote change type %q", errs.ErrInvalidInput, c.Kind)
			}
		}
	case LoadChunk:
		if a.ChunkIndex == nil {
			return missingField(a.Type, "chunkIndex")
		}
	case EvictChunk:
		if a.ChunkIndex == nil {
			return missingField(a.Type, "chunkIndex")
		}
	default:
		return fmt.Errorf("action: %w: unknown type %q", errs.ErrInvalidInput, a.Type)
	}
	return nil
}

func missingField(t Type, field string) error {
	return fmt.Errorf("action: %w: %s action missing required field(s) %s", errs.ErrInvalidInput, t, field)
}
