package lineindex

// DirtyRange describes a span of lines whose cached positions may be
// stale, reported to callers via Index.DirtyRanges for introspection and
// UI staleness indicators (§3.1, §4.2). EndLine of -1 means "to the
// end of the document" — the only shape Lazy ever produces, since once
// one line's position is unknown every line after it is too.
type DirtyRange struct {
	StartLine        int64
	EndLine          int64 // -1 = open-ended
	CreatedAtVersion int64
}
