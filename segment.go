package isasplit

import (
	"strings"
)

// RawSegment is a segment split into its elements. The first element
// is the segment ID.
type RawSegment []string

func (s RawSegment) ID() string {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}

// Element returns the element at the given index, and whether it was
// present at all. An element can be present and empty (ex: `NM1*85*2**`
// has an empty NM104 but no NM105).
func (s RawSegment) Element(index int) (string, bool) {
	if index < 0 || index >= len(s) {
		return "", false
	}
	return s[index], true
}

// Value returns the element at the given index, or an empty string
// if it's missing
func (s RawSegment) Value(index int) string {
	v, _ := s.Element(index)
	return v
}

// Locate returns the elements of the first segment in the envelope
// starting with prefix. The prefix is spelled with `*` as the element
// separator (ex: `NM1*85*`), which is swapped for d.ElementSeparator
// before matching. If no segment matches, the result is empty.
func Locate(envelope string, prefix string, d Delimiters) RawSegment {
	sep := string([]byte{d.ElementSeparator})
	prefix = strings.ReplaceAll(prefix, string(prefixPlaceholder), sep)
	terminator := string([]byte{d.SegmentTerminator})

	for len(envelope) > 0 {
		line, rest, _ := strings.Cut(envelope, terminator)
		if strings.HasPrefix(line, prefix) {
			return strings.Split(line, sep)
		}
		envelope = rest
	}
	return RawSegment{}
}
