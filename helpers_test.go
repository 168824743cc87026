package isasplit

import (
	"fmt"
	"strings"
	"testing"
)

// replaceNewlines replaces `\r` and `\n` in the given text, so test assets
// can remain somewhat human-readable (one segment per line) without having
// the actual segment terminator set as a newline
func replaceNewlines(t *testing.T, text string) string {
	t.Helper()
	var replacer = strings.NewReplacer(
		"\r\n", "",
		"\r", "",
		"\n", "",
	)
	return replacer.Replace(text)
}

func assertEqual[V comparable](t *testing.T, val V, expected V) {
	t.Helper()
	if val != expected {
		t.Errorf("expected:\n%#v\n\ngot:\n%#v", expected, val)
	}
}

func assertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func assertErrorNotNil(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
}

// isaHeader builds a 106 character ISA segment using the given
// element separator, component separator and segment terminator
func isaHeader(t *testing.T, elementSep, componentSep, terminator byte) string {
	t.Helper()
	elements := []string{
		"ISA",
		"00",
		strings.Repeat(" ", 10),
		"00",
		strings.Repeat(" ", 10),
		"ZZ",
		fmt.Sprintf("%-15s", "SUBMITTERID"),
		"ZZ",
		fmt.Sprintf("%-15s", "RECEIVERID"),
		"030101",
		"1253",
		"U",
		"00401",
		"000000905",
		"1",
		"T",
		string([]byte{componentSep}),
	}
	header := strings.Join(elements, string([]byte{elementSep})) + string([]byte{terminator})
	if len(header) != isaByteCount {
		t.Fatalf("expected ISA header of %d bytes, got %d", isaByteCount, len(header))
	}
	return header
}

// envelope builds an interchange from an ISA header and the given
// segments, each of which is terminated with `~`. Segments are spelled
// with the default delimiters.
func envelope(t *testing.T, segments ...string) string {
	t.Helper()
	var b strings.Builder
	b.WriteString(isaHeader(t, '*', ':', '~'))
	for _, s := range segments {
		b.WriteString(s)
		b.WriteByte('~')
	}
	return b.String()
}

// x835Envelope is a minimal remittance advice with a payee
func x835Envelope(t *testing.T, payee string) string {
	t.Helper()
	return envelope(
		t,
		"GS*HP*SENDER*RECEIVER*20190101*1200*1*X*005010X221A1",
		"ST*835*0001",
		"BPR*I*100*C*ACH",
		"N1*PR*PAYER NAME",
		payee,
		"SE*5*0001",
		"GE*1*1",
		"IEA*1*000000905",
	)
}

// x837Envelope is a minimal claim with a billing provider
func x837Envelope(t *testing.T, billingProvider string) string {
	t.Helper()
	return envelope(
		t,
		"GS*HC*SENDER*RECEIVER*20190101*1200*1*X*005010X222A1",
		"ST*837*0001*005010X222A1",
		"BHT*0019*00*244579*20061015*1023*CH",
		"NM1*41*2*PREMIER BILLING SERVICE*****46*TGJ23",
		"HL*1**20*1",
		billingProvider,
		"SE*6*0001",
		"GE*1*1",
		"IEA*1*000000905",
	)
}
