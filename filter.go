package isasplit

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Filter reads r to the end and returns its text with control characters
// removed. Any run of spaces or control characters immediately after
// a segment terminator is dropped entirely, which undoes the line
// wrapping many systems apply to X12 files: "A~\n\n  B" becomes "A~B".
// Spaces anywhere else are content and are kept.
func Filter(r io.Reader, terminator byte) (string, error) {
	var b strings.Builder
	br := bufio.NewReaderSize(r, filterBufferSize)
	var trailing bool
	for {
		c, err := br.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return b.String(), fmt.Errorf("reading interchange: %w", err)
		}
		if trailing {
			if c <= printableMin {
				continue
			}
			trailing = false
		} else if c < printableMin {
			continue
		}
		b.WriteByte(c)
		if c == terminator {
			trailing = true
		}
	}
	return b.String(), nil
}

// FilterString is Filter over an in-memory string
func FilterString(s string, terminator byte) string {
	text, _ := Filter(strings.NewReader(s), terminator)
	return text
}
