package reducer

import "github.com/oligo/textcore/state"

func (r *Reducer) reduceInsert(doc *state.Document, start int64, text string, issuedAt int64) *state.Document {
	if text == "" {
		return doc // no-op rule: empty insert (§4.4)
	}
	total := doc.TotalLength()
	start = clampInt64(start, 0, total)

	newBuffer := doc.Buffer.Insert(start, []byte(text))
	version := doc.Version + 1
	newLineIndex := doc.LineIndex.Insert(start, []byte(text), version)
	newSelection := doc.Selection.ShiftFrom(start, int64(len(text)))

	change := state.HistoryChange{Kind: state.ChangeInsert, Pos: start, Text: text}
	entry := state.Entry{
		Changes:         []state.HistoryChange{change},
		SelectionBefore: doc.Selection,
		SelectionAfter:  newSelection,
		Timestamp:       issuedAt,
	}
	history := pushEntry(doc.History, entry, r.coalesceWindowMillis, tryCoalesceInsert(start, text, issuedAt, r.coalesceWindowMillis))

	return &state.Document{
		Version:   version,
		Buffer:    newBuffer,
		LineIndex: newLineIndex,
		Selection: newSelection,
		History:   history,
		Metadata:  withDirty(doc.Metadata),
	}
}

func (r *Reducer) reduceDelete(doc *state.Document, start, end, issuedAt int64) *state.Document {
	if start > end {
		return doc // no-op rule: inverted delete
	}
	total := doc.TotalLength()
	start, end = clampRange(start, end, total)
	if start >= end {
		return doc // no-op rule: zero-length delete
	}

	removed := doc.Buffer.GetText(start, end)
	version := doc.Version + 1
	newBuffer := doc.Buffer.Delete(start, end)
	newLineIndex := doc.LineIndex.Delete(start, end, removed, version)
	newSelection := doc.Selection.CollapseDeleted(start, end)

	change := state.HistoryChange{Kind: state.ChangeDelete, Pos: start, Text: string(removed)}
	entry := state.Entry{
		Changes:         []state.HistoryChange{change},
		SelectionBefore: doc.Selection,
		SelectionAfter:  newSelection,
		Timestamp:       issuedAt,
	}
	history := pushEntry(doc.History, entry, r.coalesceWindowMillis, tryCoalesceDelete(start, end, string(removed), issuedAt, r.coalesceWindowMillis))

	meta := doc.Metadata
	meta.IsDirty = true

	return &state.Document{
		Version:   version,
		Buffer:    newBuffer,
		LineIndex: newLineIndex,
		Selection: newSelection,
		History:   history,
		Metadata:  meta,
	}
}

// reduceReplace implements REPLACE as delete then insert, recording a
// single history entry holding one ChangeReplace change (§4.1 "replace is defined
// as delete then insert; the reducer emits both subchanges atomically
// and records one history entry", §4.4 "single entry"). REPLACE never
// coalesces (§4.4).
func (r *Reducer) reduceReplace(doc *state.Document, start, end int64, text string, issuedAt int64) *state.Document {
	total := doc.TotalLength()
	start, end = clampRange(start, end, total)
	if start >= end && text == "" {
		return doc
	}

	removed := doc.Buffer.GetText(start, end)
	version := doc.Version + 1

	newBuffer := doc.Buffer.Delete(start, end).Insert(start, []byte(text))
	li := doc.LineIndex
	if end > start {
		li = li.Delete(start, end, removed, version)
	}
	if text != "" {
		li = li.Insert(start, []byte(text), version)
	}

	selAfterDelete := doc.Selection.CollapseDeleted(start, end)
	newSelection := selAfterDelete.ShiftFrom(start, int64(len(text)))

	change := state.HistoryChange{Kind: state.ChangeReplace, Pos: start, Text: text, OldText: string(removed)}
	entry := state.Entry{
		Changes:         []state.HistoryChange{change},
		SelectionBefore: doc.Selection,
		SelectionAfter:  newSelection,
		Timestamp:       issuedAt,
	}
	history := pushEntry(doc.History, entry, r.coalesceWindowMillis, nil)

	return &state.Document{
		Version:   version,
		Buffer:    newBuffer,
		LineIndex: li,
		Selection: newSelection,
		History:   history,
		Metadata:  withDirty(doc.Metadata),
	}
}
