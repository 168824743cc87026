package isasplit

import "fmt"

// Client is the originating party of an envelope
type Client struct {
	// ID is the identifying code of the party, typically an NPI
	ID string `json:"id" yaml:"id"`
	// Name may be empty if the source segment doesn't include one
	Name string `json:"name" yaml:"name"`
}

func (c Client) String() string {
	return fmt.Sprintf("%s (%s)", c.Name, c.ID)
}

// TransactionSet identifies the kinds of transaction sets a client can
// be resolved from
type TransactionSet uint

const (
	Unsupported   TransactionSet = iota
	Remittance835                // Health care claim payment/advice
	Claim837                     // Health care claim
)

func (t TransactionSet) String() string {
	return [...]string{
		"Unsupported",
		"Remittance835",
		"Claim837",
	}[t]
}

func (t TransactionSet) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// TransactionSetOf maps an ST01 transaction set code to a TransactionSet
func TransactionSetOf(code string) TransactionSet {
	switch code {
	case "835":
		return Remittance835
	case "837":
		return Claim837
	default:
		return Unsupported
	}
}

// transactionSetOf returns the TransactionSet of the first ST segment in
// envelope. A missing ST segment or ST01 is Unsupported.
func transactionSetOf(envelope string, d Delimiters) TransactionSet {
	st := Locate(envelope, stSegmentPrefix, d)
	return TransactionSetOf(st.Value(stIndexTransactionSetCode))
}

// client applies the extraction rule for the transaction set
func (t TransactionSet) client(envelope string, d Delimiters) (Client, bool) {
	switch t {
	case Remittance835:
		return payeeClient(Locate(envelope, n1PayeeSegmentPrefix, d))
	case Claim837:
		return billingProviderClient(Locate(envelope, nm1BillingProviderPrefix, d))
	default:
		return Client{}, false
	}
}

// payeeClient resolves the client from an 835 payee segment
// (`N1*PE*<name>*<qualifier>*<id>`). N104 is required, N102 is not.
func payeeClient(n1 RawSegment) (Client, bool) {
	id, ok := n1.Element(n1IndexIdentificationCode)
	if !ok {
		return Client{}, false
	}
	return Client{ID: id, Name: n1.Value(n1IndexName)}, true
}

// billingProviderClient resolves the client from an 837 billing provider
// segment. Only an NPI (NM108 == "XX") with an NM109 identifies a client.
func billingProviderClient(nm1 RawSegment) (Client, bool) {
	qualifier, _ := nm1.Element(nm1IndexIdentificationQualifier)
	id, ok := nm1.Element(nm1IndexIdentificationCode)
	if qualifier != npiQualifier || !ok {
		return Client{}, false
	}
	return Client{ID: id, Name: nm1.Value(nm1IndexLastOrOrganizationName)}, true
}

// ResolveClient resolves the client of a single envelope. The second
// return value is false if the envelope has no identifiable client,
// which is not an error.
func ResolveClient(envelope string, d Delimiters) (Client, bool) {
	return transactionSetOf(envelope, d).client(envelope, d)
}
