package reducer

import (
	"github.com/oligo/textcore/action"
	"github.com/oligo/textcore/state"
)

// reduceApplyRemote applies each remote change in order without pushing
// history (§4.4 "APPLY_REMOTE(changes) ... does NOT push to
// history"), transforming local selection ranges by each remote op as it
// goes, transforming local ranges by each remote op as it is applied.
func (r *Reducer) reduceApplyRemote(doc *state.Document, changes []action.RemoteChange) *state.Document {
	if len(changes) == 0 {
		return doc
	}

	version := doc.Version + 1
	buf, li := doc.Buffer, doc.LineIndex
	sel := doc.Selection

	for _, c := range changes {
		switch c.Kind {
		case action.RemoteInsert:
			start := clampInt64(c.Start, 0, buf.GetLength())
			buf = buf.Insert(start, []byte(c.Text))
			li = li.Insert(start, []byte(c.Text), version)
			sel = sel.ShiftFrom(start, int64(len(c.Text)))
		case action.RemoteDelete:
			start := clampInt64(c.Start, 0, buf.GetLength())
			end := clampInt64(c.Start+c.Length, 0, buf.GetLength())
			if start >= end {
				continue
			}
			removed := buf.GetText(start, end)
			buf = buf.Delete(start, end)
			li = li.Delete(start, end, removed, version)
			sel = sel.CollapseDeleted(start, end)
		}
	}

	meta := doc.Metadata
	meta.IsDirty = true

	return &state.Document{
		Version:   version,
		Buffer:    buf,
		LineIndex: li,
		Selection: sel,
		History:   doc.History,
		Metadata:  meta,
	}
}
