package selectors

import "github.com/oligo/textcore/state"

// CharRange is one selection range expressed in UTF-16 code-unit offsets
// rather than bytes — the coordinate system a JS/DOM host's Selection
// API actually speaks (§4.7 "for UI consumption").
type CharRange struct {
	Anchor int64
	Head   int64
}

// CharSelection mirrors state.Selection, but every range is in UTF-16
// code units.
type CharSelection struct {
	Ranges       []CharRange
	PrimaryIndex int
}

// SelectionToCharOffsets converts doc's byte-offset selection to UTF-16
// code-unit offsets (§4.7 "selectionToCharOffsets"). Each boundary
// is converted independently by counting UTF-16 units in
// doc.Buffer[0:bytePos]; for a large document a caller converting many
// boundaries at once should prefer computing offsets relative to known
// line starts instead, but this count-from-zero form is the direct,
// always-correct translation §4.7 asks for.
func SelectionToCharOffsets(doc *state.Document) CharSelection {
	out := CharSelection{
		Ranges:       make([]CharRange, len(doc.Selection.Ranges)),
		PrimaryIndex: doc.Selection.PrimaryIndex,
	}
	for i, r := range doc.Selection.Ranges {
		out.Ranges[i] = CharRange{
			Anchor: byteOffsetToCharOffset(doc, r.Anchor),
			Head:   byteOffsetToCharOffset(doc, r.Head),
		}
	}
	return out
}

// CharOffsetsToSelection is the inverse of SelectionToCharOffsets: it
// converts a UI-supplied UTF-16 selection back into doc's native
// byte-offset state.Selection (§4.7 "charOffsetsToSelection"),
// clamped to the document's current length.
func CharOffsetsToSelection(doc *state.Document, sel CharSelection) state.Selection {
	total := doc.TotalLength()
	out := state.Selection{
		Ranges:       make([]state.Range, len(sel.Ranges)),
		PrimaryIndex: sel.PrimaryIndex,
	}
	for i, r := range sel.Ranges {
		out.Ranges[i] = state.Range{
			Anchor: charOffsetToByteOffset(doc, r.Anchor),
			Head:   charOffsetToByteOffset(doc, r.Head),
		}
	}
	return out.Clamp(total)
}

func byteOffsetToCharOffset(doc *state.Document, bytePos int64) int64 {
	total := doc.TotalLength()
	if bytePos < 0 {
		bytePos = 0
	} else if bytePos > total {
		bytePos = total
	}
	return utf16UnitLen(doc.Buffer.GetText(0, bytePos))
}

func charOffsetToByteOffset(doc *state.Document, charPos int64) int64 {
	if charPos < 0 {
		charPos = 0
	}
	whole := doc.Buffer.GetText(0, doc.TotalLength())
	return byteOffsetForUTF16Units(whole, charPos)
}
