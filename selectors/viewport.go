// Package selectors implements the pure rendering queries of §4.7:
// functions of a state.Document snapshot plus a few view parameters,
// with no side effects and no state of their own — the read half of the
// store/reducer split.
package selectors

import (
	"math"

	"github.com/oligo/textcore/state"
)

// LineHeightConfig is the host's line-metrics input to
// GetVisibleLineRange: a fixed line height in device pixels plus how
// many extra lines to overscan on each side of the exact visible range.
type LineHeightConfig struct {
	LineHeightPx  float64
	OverscanLines int64
}

// VisibleLineRange is §4.7's "{firstVisible, lastVisible, overscanBefore,
// overscanAfter}": firstVisible/lastVisible (inclusive, 0-based) are the
// lines actually on screen; overscanBefore/overscanAfter are additional
// line counts the host should also keep mounted just outside that range.
type VisibleLineRange struct {
	FirstVisible   int64
	LastVisible    int64
	OverscanBefore int64
	OverscanAfter  int64
}

// GetVisibleLineRange computes which lines are on screen for a scroll
// position and viewport height, given a fixed per-line height (§4.7
// "getVisibleLineRange"). totalLines must be >= 1 (state.Document's
// LineIndex.LineCount() always is).
func GetVisibleLineRange(totalLines int64, scrollTop, viewportHeight float64, cfg LineHeightConfig) VisibleLineRange {
	lineHeight := cfg.LineHeightPx
	if lineHeight <= 0 {
		lineHeight = 1
	}
	if totalLines < 1 {
		totalLines = 1
	}

	first := int64(scrollTop / lineHeight)
	visibleCount := int64(math.Ceil(viewportHeight / lineHeight))
	if visibleCount < 1 {
		visibleCount = 1
	}
	last := first + visibleCount - 1

	first = clampLine(first, 0, totalLines-1)
	last = clampLine(last, first, totalLines-1)

	overscan := cfg.OverscanLines
	if overscan < 0 {
		overscan = 0
	}
	overscanBefore := overscan
	if overscanBefore > first {
		overscanBefore = first
	}
	overscanAfter := overscan
	if remaining := totalLines - 1 - last; overscanAfter > remaining {
		overscanAfter = remaining
	}

	return VisibleLineRange{
		FirstVisible:   first,
		LastVisible:    last,
		OverscanBefore: overscanBefore,
		OverscanAfter:  overscanAfter,
	}
}

func clampLine(v, lo, hi int64) int64 {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	default:
		return v
	}
}

// GetVisibleLines materializes the text content of every line in vr,
// including its overscan margins, by precise per-line lookups through
// doc's line index (a dirty lazy tail is rescanned once, on a local
// copy of the index that doc does not keep) rather than scanning the whole buffer (§4.7
// "getVisibleLines ... materializing via line-index precise range").
func GetVisibleLines(doc *state.Document, vr VisibleLineRange) []string {
	from := vr.FirstVisible - vr.OverscanBefore
	to := vr.LastVisible + vr.OverscanAfter
	if from < 0 {
		from = 0
	}

	lines := make([]string, 0, to-from+1)
	li := doc.LineIndex
	for line := from; line <= to; line++ {
		lr, next, ok := li.GetLineRangePrecise(doc.Buffer, line, doc.Version)
		if !ok {
			break
		}
		li = next
		lines = append(lines, string(doc.Buffer.GetText(lr.Start, lr.Start+lr.Length)))
	}
	return lines
}
