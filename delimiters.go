package isasplit

import (
	"errors"
	"fmt"
	"io"
)

// Delimiters holds the separator characters declared by an interchange's
// ISA header. Each is a single byte; files are read one byte per character
// (ISO-8859-1), so values above 0x7f are kept as-is.
type Delimiters struct {
	SegmentTerminator  byte
	ElementSeparator   byte
	ComponentSeparator byte
}

// DefaultDelimiters are the separators most trading partners use
var DefaultDelimiters = Delimiters{
	SegmentTerminator:  '~',
	ElementSeparator:   '*',
	ComponentSeparator: ':',
}

func (d Delimiters) String() string {
	return fmt.Sprintf(
		"terminator=%q element=%q component=%q",
		d.SegmentTerminator,
		d.ElementSeparator,
		d.ComponentSeparator,
	)
}

// envelopeMarker is the text that starts every interchange after
// the first one
func (d Delimiters) envelopeMarker() string {
	return string([]byte{d.SegmentTerminator}) + isaSegmentId + string([]byte{d.ElementSeparator})
}

// ReadHeader reads up to the first 1024 bytes of r. Reaching EOF early is
// not an error; ResolveDelimiters reports headers that are too short.
func ReadHeader(r io.Reader) ([]byte, error) {
	buf := make([]byte, headerMaxBytes)
	n, err := io.ReadFull(r, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	return buf[:n], nil
}

// ResolveDelimiters derives the delimiters from the start of an
// interchange. Bytes below 0x20 are removed before the fixed ISA
// offsets are applied, so hard-wrapped files resolve the same as
// unwrapped ones. The returned error, if any, is a *FormatError.
func ResolveDelimiters(header []byte) (Delimiters, error) {
	if len(header) > headerMaxBytes {
		header = header[:headerMaxBytes]
	}
	printable := make([]byte, 0, len(header))
	for _, c := range header {
		if c >= printableMin {
			printable = append(printable, c)
		}
	}

	if len(printable) < len(isaSegmentId) || string(printable[:len(isaSegmentId)]) != isaSegmentId {
		return Delimiters{}, newFormatError(ReasonMissingPrefix)
	}
	if len(printable) < isaByteCount {
		return Delimiters{}, newFormatError(ReasonHeaderTooShort)
	}

	d := Delimiters{
		SegmentTerminator:  printable[isaIndexSegmentTerminator],
		ElementSeparator:   printable[isaIndexLastElementSep],
		ComponentSeparator: printable[isaIndexComponentSeparator],
	}
	if printable[isaIndexElementSeparator] != d.ElementSeparator {
		return Delimiters{}, newFormatError(ReasonInconsistentSeparator)
	}
	return d, nil
}
