package diff

import "github.com/oligo/textcore/action"

// ComputeSetValueActions lifts the full edit script between oldText and
// newText to a sequence of INSERT/DELETE actions at correctly adjusted
// byte offsets (§4.3 "Lifting to actions"). Offsets are tracked
// against the document as it is progressively mutated by the returned
// actions, not against oldText's original offsets: a cursor advances
// through Equal and Insert edits and holds still across a Delete (since
// removing bytes doesn't change what follows the deletion point in the
// document being built).
func ComputeSetValueActions(oldText, newText string) []action.Action {
	result := Diff(oldText, newText)
	var actions []action.Action
	var cursor int64
	for _, e := range result.Edits {
		switch e.Kind {
		case Equal:
			cursor += int64(len(e.Text))
		case Delete:
			actions = append(actions, action.NewDelete(cursor, cursor+int64(len(e.Text))))
		case Insert:
			actions = append(actions, action.NewInsert(cursor, e.Text))
			cursor += int64(len(e.Text))
		}
	}
	return actions
}

// ComputeSetValueActionsOptimized collapses oldText -> newText into the
// single changed byte range: one REPLACE, or a pure INSERT/DELETE when
// only one side has a non-empty interior, or no action at all for
// identical inputs (§4.3 "computeSetValueActionsOptimized collapses
// the single changed byte range into one REPLACE"). It only needs the
// common-affix trim, not the full Myers comparison, since it never
// reports the interior's internal structure.
func ComputeSetValueActionsOptimized(oldText, newText string) []action.Action {
	if oldText == newText {
		return nil
	}

	prefixLen, suffixLen := trimCommonAffixes(oldText, newText)
	oldMiddle := oldText[prefixLen : len(oldText)-suffixLen]
	newMiddle := newText[prefixLen : len(newText)-suffixLen]

	start := int64(prefixLen)
	switch {
	case oldMiddle == "" && newMiddle == "":
		return nil
	case oldMiddle == "":
		return []action.Action{action.NewInsert(start, newMiddle)}
	case newMiddle == "":
		return []action.Action{action.NewDelete(start, start+int64(len(oldMiddle)))}
	default:
		return []action.Action{action.NewReplace(start, start+int64(len(oldMiddle)), newMiddle)}
	}
}
