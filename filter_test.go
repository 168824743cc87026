package isasplit

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"
)

func TestFilter(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		terminator byte
		expected   string
	}{
		{name: "empty", input: "", terminator: '~', expected: ""},
		{name: "collapse after terminator", input: "A~\n\n  B", terminator: '~', expected: "A~B"},
		{name: "crlf wrapped segments", input: "ST*835*1~\r\nN1*PE*X~\r\n", terminator: '~', expected: "ST*835*1~N1*PE*X~"},
		{name: "spaces kept inside segments", input: "N1*PE*ACME  CORP~", terminator: '~', expected: "N1*PE*ACME  CORP~"},
		{name: "control characters dropped mid segment", input: "N1*P\nE*AC\x00ME~", terminator: '~', expected: "N1*PE*ACME~"},
		{name: "consecutive terminators", input: "A~~ ~B", terminator: '~', expected: "A~~~B"},
		{name: "custom terminator", input: "A'\n B~ C", terminator: '\'', expected: "A'B~ C"},
		{name: "latin-1 bytes", input: "N1*PE*CAF\xc9\xa7\n\xa7", terminator: '\xa7', expected: "N1*PE*CAF\xc9\xa7\xa7"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := Filter(strings.NewReader(tc.input), tc.terminator)
			assertNoError(t, err)
			assertEqual(t, result, tc.expected)
		})
	}
}

func TestFilterIdentity(t *testing.T) {
	// Text that has no control characters, and no whitespace after a
	// terminator, passes through unchanged
	text := x835Envelope(t, "N1*PE*AcmeCorp*XX*99999")
	assertEqual(t, FilterString(text, '~'), text)
	assertEqual(t, FilterString("no terminators at all  here", '~'), "no terminators at all  here")
}

func TestFilterNoControlCharacters(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 512; i++ {
		b.WriteByte(byte(i % 256))
	}
	result := FilterString(b.String(), '~')
	for i := 0; i < len(result); i++ {
		if result[i] < printableMin {
			t.Fatalf("control character %q at %d", result[i], i)
		}
	}
}

func TestFilterOneByteReader(t *testing.T) {
	text := replaceNewlines(t, "ST*835*1~\nN1*PE*X~\n")
	result, err := Filter(iotest.OneByteReader(strings.NewReader("ST*835*1~\n  N1*PE*X~\n")), '~')
	assertNoError(t, err)
	assertEqual(t, result, text)
}

func TestFilterReadError(t *testing.T) {
	readErr := errors.New("disk on fire")
	r := io.MultiReader(strings.NewReader("ISA*"), iotest.ErrReader(readErr))
	result, err := Filter(r, '~')
	if !errors.Is(err, readErr) {
		t.Fatalf("expected %v, got %v", readErr, err)
	}
	assertEqual(t, result, "ISA*")
}
