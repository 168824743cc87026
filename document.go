package isasplit

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
)

// Document is a single source file, normalized and ready to be split
// into envelopes
type Document struct {
	Name       string
	Delimiters Delimiters
	// Text is the file content with control characters removed,
	// see Filter
	Text string
}

// ReadFile opens and parses the file at path
func ReadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(path, f)
}

// Parse reads the delimiters from the header of r, then rewinds and
// normalizes all of it. name is used to identify the source in errors.
// If the header is invalid, the error is a *FormatError.
func Parse(name string, r io.ReadSeeker) (*Document, error) {
	header, err := ReadHeader(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	d, err := ResolveDelimiters(header)
	if err != nil {
		var formatErr *FormatError
		if errors.As(err, &formatErr) {
			formatErr.File = name
		}
		return nil, err
	}

	if _, err = r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	text, err := Filter(r, d.SegmentTerminator)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &Document{Name: name, Delimiters: d, Text: text}, nil
}

// Envelopes returns the document's envelopes, in order. Each Envelope
// is fully resolved as it's yielded.
func (doc *Document) Envelopes() iter.Seq[Envelope] {
	return func(yield func(Envelope) bool) {
		index := 0
		for text := range Split(doc.Text, doc.Delimiters) {
			if !yield(newEnvelope(index, text, doc.Delimiters)) {
				return
			}
			index++
		}
	}
}

// Clients returns the envelopes which could be resolved to a client
func (doc *Document) Clients() iter.Seq[Envelope] {
	return func(yield func(Envelope) bool) {
		for e := range doc.Envelopes() {
			if !e.HasClient {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}
