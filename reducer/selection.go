package reducer

import (
	"github.com/oligo/textcore/action"
	"github.com/oligo/textcore/state"
)

// reduceSetSelection clamps every anchor/head to [0, totalLength] and
// normalizes primaryIndex, returning doc unchanged if the result equals
// the current selection (§4.4 no-op rule: "selection equal to
// current").
func reduceSetSelection(doc *state.Document, ranges []action.SelectionRange) *state.Document {
	out := make([]state.Range, len(ranges))
	for i, r := range ranges {
		out[i] = state.Range{Anchor: r.Anchor, Head: r.Head}
	}
	newSelection := state.Selection{Ranges: out}.Clamp(doc.TotalLength())

	if newSelection.Equal(doc.Selection) {
		return doc
	}

	return &state.Document{
		Version:   doc.Version + 1,
		Buffer:    doc.Buffer,
		LineIndex: doc.LineIndex,
		Selection: newSelection,
		History:   doc.History,
		Metadata:  doc.Metadata,
	}
}
