package isasplit

import (
	"slices"
	"strings"
	"testing"
)

func TestSplitTwoMarkers(t *testing.T) {
	text := "~ISA*first~ISA*second"
	spans := slices.Collect(Split(text, DefaultDelimiters))
	assertEqual(t, len(spans), 2)
	assertEqual(t, spans[0], "~ISA*first")
	assertEqual(t, spans[1], "~ISA*second")
}

func TestSplit(t *testing.T) {
	first := x835Envelope(t, "N1*PE*AcmeCorp*XX*99999")
	second := x837Envelope(t, "NM1*85*2*ClinicName*****XX*1234567890")
	third := envelope(t, "ST*820*0001", "SE*1*0001", "IEA*1*000000905")

	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{name: "empty", text: "", expected: nil},
		{name: "single", text: first, expected: []string{first}},
		{
			// Each envelope ends with `~`, so the marker starts at the
			// terminator of the previous envelope's IEA segment
			name: "three",
			text: first + second + third,
			expected: []string{
				strings.TrimSuffix(first, "~"),
				"~" + strings.TrimSuffix(second, "~"),
				"~" + third,
			},
		},
		{name: "no marker", text: "GS*HP~ST*835~", expected: []string{"GS*HP~ST*835~"}},
		{name: "shorter than marker", text: "ISA", expected: []string{"ISA"}},
		{name: "marker at end", text: "ISA*a~ISA*", expected: []string{"ISA*a", "~ISA*"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			spans := slices.Collect(Split(tc.text, DefaultDelimiters))
			if !slices.Equal(spans, tc.expected) {
				t.Fatalf("expected:\n%q\n\ngot:\n%q", tc.expected, spans)
			}
			assertEqual(t, strings.Join(spans, ""), tc.text)
		})
	}
}

func TestSplitCustomDelimiters(t *testing.T) {
	d := Delimiters{SegmentTerminator: '\'', ElementSeparator: '|', ComponentSeparator: '>'}
	// The default marker is not an envelope boundary here
	text := "ISA|a'GS|b'~ISA*c'ISA|d'"
	spans := slices.Collect(Split(text, d))
	assertEqual(t, len(spans), 2)
	assertEqual(t, spans[0], "ISA|a'GS|b'~ISA*c")
	assertEqual(t, spans[1], "'ISA|d'")
}

func TestSplitStopsEarly(t *testing.T) {
	text := "~ISA*1~ISA*2~ISA*3"
	var seen []string
	for span := range Split(text, DefaultDelimiters) {
		seen = append(seen, span)
		if len(seen) == 2 {
			break
		}
	}
	assertEqual(t, len(seen), 2)
	assertEqual(t, seen[1], "~ISA*2")
}

func TestEnvelopeData(t *testing.T) {
	text := x835Envelope(t, "N1*PE*AcmeCorp*XX*99999")
	e := newEnvelope(1, "~"+text, DefaultDelimiters)
	assertEqual(t, e.Data(), text)
	assertEqual(t, e.Index, 1)
	assertEqual(t, e.TransactionSet, Remittance835)
	assertEqual(t, e.HasClient, true)
	assertEqual(t, e.Client, Client{ID: "99999", Name: "AcmeCorp"})
	assertEqual(t, e.Segment("ST*").Value(2), "0001")
	assertEqual(t, e.Delimiters(), DefaultDelimiters)
}
