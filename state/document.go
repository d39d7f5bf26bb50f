package state

import (
	"github.com/oligo/textcore/buffer"
	"github.com/oligo/textcore/lineindex"
)

// Config mirrors §6.3: the construction-time tunables for a new
// Document, as a plain struct of tunables rather than functional
// options — this is a library, not a CLI that needs cobra/viper.
type Config struct {
	Content      string
	HistoryLimit int
	ChunkSize    int64
	Encoding     string
	LineEnding   LineEnding
	Strategy     lineindex.Strategy
}

// DefaultConfig returns the §6.3 defaults: historyLimit=1000,
// chunkSize=65536, encoding="utf-8", lineEnding=lf.
func DefaultConfig() Config {
	return Config{
		HistoryLimit: 1000,
		ChunkSize:    65536,
		Encoding:     "utf-8",
		LineEnding:   LF,
		Strategy:     lineindex.Eager,
	}
}

// Document is the top-level immutable document snapshot (§3.1
// "Document state"). It is created once by a Config and thereafter only
// ever replaced wholesale by the reducer, which path-copies the pieceTable
// and lineIndex trees and structurally shares everything unchanged (§3.2).
type Document struct {
	Version   int64
	Buffer    *buffer.Table
	LineIndex *lineindex.Index
	Selection Selection
	History   History
	Metadata  Metadata
}

// New returns the initial Document for cfg.
func New(cfg Config) *Document {
	historyLimit := cfg.HistoryLimit
	if historyLimit < 1 {
		historyLimit = 1000
	}
	encoding := cfg.Encoding
	if encoding == "" {
		encoding = "utf-8"
	}

	tbl := buffer.NewTable([]byte(cfg.Content))
	li := lineindex.New(cfg.Strategy)
	if cfg.Content != "" {
		li = li.Insert(0, []byte(cfg.Content), 0)
	}

	meta := NewMetadata()
	meta.Encoding = encoding
	meta.LineEnding = cfg.LineEnding

	return &Document{
		Buffer:    tbl,
		LineIndex: li,
		Selection: NewSelection(),
		History:   NewHistory(historyLimit),
		Metadata:  meta,
	}
}

// TotalLength returns the document's byte length.
func (d *Document) TotalLength() int64 { return d.Buffer.GetLength() }
