// Package diff computes an edit script between two text snapshots
// (§4.3), wired to github.com/pmezard/go-difflib the way the domain
// stack table grounds it: Diff trims the common prefix/suffix down to a
// genuinely-changed interior, hands that interior to
// difflib.SequenceMatcher, and re-expresses its opcodes as the
// {Insert,Delete,Equal} edit script of §4.3. SequenceMatcher matches
// longest common blocks recursively (Ratcliff/Obershelp); there is no
// Myers pass and no LCS matrix here, so the script is correct but not
// guaranteed to be minimal.
package diff

import (
	"unicode/utf8"

	"github.com/pmezard/go-difflib/difflib"
)

// Kind discriminates one Edit.
type Kind uint8

const (
	Equal Kind = iota
	Insert
	Delete
)

func (k Kind) String() string {
	switch k {
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	default:
		return "equal"
	}
}

// Edit is one segment of the edit script: Text at OldPos in oldText
// (meaningful for Equal/Delete) and/or NewPos in newText (meaningful for
// Equal/Insert).
type Edit struct {
	Kind   Kind
	Text   string
	OldPos int64
	NewPos int64
}

// Result is the diff contract's return value (§4.3): Distance is the
// sum of byte lengths of every non-Equal edit.
type Result struct {
	Edits    []Edit
	Distance int64
}

// Diff computes an edit script from oldText to newText (not guaranteed
// minimal; see the package comment).
// Applying Edits in order to oldText yields newText; identical inputs
// produce a single Equal edit spanning the whole text, or no edits at all
// if both are empty (§4.3 contract).
func Diff(oldText, newText string) Result {
	if oldText == newText {
		if oldText == "" {
			return Result{}
		}
		return Result{Edits: []Edit{{Kind: Equal, Text: oldText, OldPos: 0, NewPos: 0}}}
	}

	prefixLen, suffixLen := trimCommonAffixes(oldText, newText)

	var edits []Edit
	if prefixLen > 0 {
		edits = append(edits, Edit{Kind: Equal, Text: oldText[:prefixLen], OldPos: 0, NewPos: 0})
	}

	oldInterior := oldText[prefixLen : len(oldText)-suffixLen]
	newInterior := newText[prefixLen : len(newText)-suffixLen]
	edits = append(edits, diffInterior(oldInterior, newInterior, int64(prefixLen))...)

	if suffixLen > 0 {
		edits = append(edits, Edit{
			Kind:   Equal,
			Text:   oldText[len(oldText)-suffixLen:],
			OldPos: int64(len(oldText) - suffixLen),
			NewPos: int64(len(newText) - suffixLen),
		})
	}

	edits = coalesce(edits)

	var distance int64
	for _, e := range edits {
		if e.Kind != Equal {
			distance += int64(len(e.Text))
		}
	}
	return Result{Edits: edits, Distance: distance}
}

// diffInterior runs difflib's SequenceMatcher over oldInterior/newInterior
// tokenized rune-by-rune, and re-expresses its opcodes as Edits with
// positions offset by baseOffset bytes. A 'replace' opcode is split into
// a Delete immediately followed by an Insert, since the edit kinds here
// are only {insert, delete, equal}.
func diffInterior(oldInterior, newInterior string, baseOffset int64) []Edit {
	if oldInterior == "" && newInterior == "" {
		return nil
	}

	oldTokens, oldOffsets := tokenizeRunes(oldInterior)
	newTokens, newOffsets := tokenizeRunes(newInterior)

	matcher := difflib.NewMatcher(oldTokens, newTokens)
	opcodes := matcher.GetOpCodes()

	var edits []Edit
	for _, op := range opcodes {
		oldStart, oldEnd := oldOffsets[op.I1], oldOffsets[op.I2]
		newStart, newEnd := newOffsets[op.J1], newOffsets[op.J2]

		switch op.Tag {
		case 'e':
			edits = append(edits, Edit{
				Kind: Equal, Text: oldInterior[oldStart:oldEnd],
				OldPos: baseOffset + int64(oldStart), NewPos: baseOffset + int64(newStart),
			})
		case 'd':
			edits = append(edits, Edit{
				Kind: Delete, Text: oldInterior[oldStart:oldEnd],
				OldPos: baseOffset + int64(oldStart), NewPos: baseOffset + int64(newStart),
			})
		case 'i':
			edits = append(edits, Edit{
				Kind: Insert, Text: newInterior[newStart:newEnd],
				OldPos: baseOffset + int64(oldStart), NewPos: baseOffset + int64(newStart),
			})
		case 'r':
			edits = append(edits, Edit{
				Kind: Delete, Text: oldInterior[oldStart:oldEnd],
				OldPos: baseOffset + int64(oldStart), NewPos: baseOffset + int64(newStart),
			})
			edits = append(edits, Edit{
				Kind: Insert, Text: newInterior[newStart:newEnd],
				OldPos: baseOffset + int64(oldEnd), NewPos: baseOffset + int64(newStart),
			})
		}
	}
	return edits
}

// coalesce merges consecutive edits of identical kind, the §4.3
// post-processing step.
func coalesce(edits []Edit) []Edit {
	if len(edits) == 0 {
		return edits
	}
	out := edits[:1]
	for _, e := range edits[1:] {
		last := &out[len(out)-1]
		if last.Kind == e.Kind {
			last.Text += e.Text
			continue
		}
		out = append(out, e)
	}
	return out
}

// tokenizeRunes splits s into one token per rune and returns, alongside
// the tokens, the byte offset of each token boundary (length
// len(tokens)+1, offsets[len(tokens)] == len(s)) so difflib's
// token-index opcodes can be translated back to byte offsets.
func tokenizeRunes(s string) (tokens []string, offsets []int) {
	offsets = make([]int, 0, len(s)+1)
	offsets = append(offsets, 0)
	pos := 0
	for _, r := range s {
		sz := utf8.RuneLen(r)
		tokens = append(tokens, s[pos:pos+sz])
		pos += sz
		offsets = append(offsets, pos)
	}
	return tokens, offsets
}

// trimCommonAffixes returns the byte lengths of the common prefix and
// (non-overlapping) common suffix of a and b, walking whole runes at a
// time in both directions. Because a surrogate pair is the UTF-16
// encoding of exactly one Go rune, a boundary that never splits a rune
// can never land between a high and low surrogate either — the §4.3
// "respect UTF-16 surrogate pairs at the trim boundaries" rule is
// satisfied by construction, not by a separate check.
func trimCommonAffixes(a, b string) (prefixLen, suffixLen int) {
	prefixLen = commonPrefixLen(a, b)
	suffixLen = commonSuffixLen(a[prefixLen:], b[prefixLen:])
	return prefixLen, suffixLen
}

func commonPrefixLen(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) {
		ra, sa := utf8.DecodeRuneInString(a[n:])
		rb, sb := utf8.DecodeRuneInString(b[n:])
		if ra != rb || ra == utf8.RuneError {
			break
		}
		n += sa
		_ = sb
	}
	return n
}

func commonSuffixLen(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) {
		ra, sa := utf8.DecodeLastRuneInString(a[:len(a)-n])
		rb, _ := utf8.DecodeLastRuneInString(b[:len(b)-n])
		if ra != rb || ra == utf8.RuneError {
			break
		}
		n += sa
	}
	return n
}
