package reducer

import (
	"github.com/oligo/textcore/buffer"
	"github.com/oligo/textcore/lineindex"
	"github.com/oligo/textcore/state"
)

// applyChange folds one HistoryChange into buf/li, used by undo/redo
// (applying an Entry's inverted or original Changes) and by
// APPLY_REMOTE (applying each remote change in document order). version
// is the resulting document version, passed through to the line index's
// edit call (§4.2 "version").
func applyChange(buf *buffer.Table, li *lineindex.Index, version int64, c state.HistoryChange) (*buffer.Table, *lineindex.Index) {
	switch c.Kind {
	case state.ChangeInsert:
		return buf.Insert(c.Pos, []byte(c.Text)), li.Insert(c.Pos, []byte(c.Text), version)
	case state.ChangeDelete:
		end := c.Pos + int64(len(c.Text))
		return buf.Delete(c.Pos, end), li.Delete(c.Pos, end, []byte(c.Text), version)
	default: // ChangeReplace: OldText currently at Pos is replaced by Text
		end := c.Pos + int64(len(c.OldText))
		newBuf := buf.Delete(c.Pos, end).Insert(c.Pos, []byte(c.Text))
		newLi := li.Delete(c.Pos, end, []byte(c.OldText), version).Insert(c.Pos, []byte(c.Text), version)
		return newBuf, newLi
	}
}
