package isasplit

import (
	"iter"
	"strings"
)

// Split partitions normalized interchange text into envelopes. Every
// envelope after the first begins at its `~ISA*` marker (using the given
// delimiters), so joining the returned spans in order gives back text.
// The first envelope always starts at offset 0. If no further marker is
// found, the whole text is a single envelope, and empty text yields none.
//
// The returned sequence is evaluated lazily; ranging over it again
// re-scans text from the start.
func Split(text string, d Delimiters) iter.Seq[string] {
	marker := d.envelopeMarker()
	return func(yield func(string) bool) {
		start := 0
		for start < len(text) {
			searchFrom := start + len(marker)
			if searchFrom >= len(text) {
				yield(text[start:])
				return
			}
			next := strings.Index(text[searchFrom:], marker)
			if next == -1 {
				yield(text[start:])
				return
			}
			end := searchFrom + next
			if !yield(text[start:end]) {
				return
			}
			start = end
		}
	}
}

// Envelope is a single ISA interchange from a Document, along with the
// client it was resolved to, if any
type Envelope struct {
	// Index is the position of the envelope in its source file,
	// starting at 0
	Index int
	// Text is the raw span of normalized text, as returned by Split
	Text           string
	TransactionSet TransactionSet
	Client         Client
	// HasClient is false when no client could be resolved, which is
	// normal for most transaction sets
	HasClient  bool
	delimiters Delimiters
}

func newEnvelope(index int, text string, d Delimiters) Envelope {
	e := Envelope{
		Index:      index,
		Text:       text,
		delimiters: d,
	}
	e.TransactionSet = transactionSetOf(text, d)
	e.Client, e.HasClient = e.TransactionSet.client(text, d)
	return e
}

// Data returns the envelope text starting at its ISA segment, without
// the segment terminator that ended the previous envelope
func (e Envelope) Data() string {
	return strings.TrimPrefix(e.Text, string([]byte{e.delimiters.SegmentTerminator}))
}

// Delimiters returns the delimiters of the file the envelope came from
func (e Envelope) Delimiters() Delimiters {
	return e.delimiters
}

// Segment returns the first segment of the envelope starting with prefix,
// see Locate
func (e Envelope) Segment(prefix string) RawSegment {
	return Locate(e.Text, prefix, e.delimiters)
}
