package selectors

import "github.com/oligo/textcore/state"

// PositionToLineColumn converts a byte offset to a (line, column) pair,
// column measured in UTF-16 code units from the start of the line (§4.7
// "positionToLineColumn"). bytePos is clamped to [0, totalLength].
func PositionToLineColumn(doc *state.Document, bytePos int64) (line, column int64) {
	total := doc.TotalLength()
	if bytePos < 0 {
		bytePos = 0
	} else if bytePos > total {
		bytePos = total
	}

	rank, lr := doc.LineIndex.FindLineAtPosition(bytePos)
	prefix := doc.Buffer.GetText(lr.Start, bytePos)
	return rank, utf16UnitLen(prefix)
}

// LineColumnToPosition converts a (line, column) pair back to a byte
// offset, the inverse of PositionToLineColumn (§4.7
// "lineColumnToPosition"). An out-of-range line clamps to the nearest
// valid line; a column past the end of the line clamps to the line's
// length.
func LineColumnToPosition(doc *state.Document, line, column int64) int64 {
	lastLine := doc.LineIndex.LineCount() - 1
	if line < 0 {
		line = 0
	} else if line > lastLine {
		line = lastLine
	}
	lr, ok := doc.LineIndex.FindLineByNumber(line)
	if !ok {
		return doc.TotalLength()
	}

	content := doc.Buffer.GetText(lr.Start, lr.Start+lr.Length)
	return lr.Start + byteOffsetForUTF16Units(content, column)
}
