package isasplit

const (
	isaSegmentId = "ISA"
	// headerMaxBytes is the most that is ever read to locate delimiters
	headerMaxBytes = 1024
	// isaByteCount is the number of printable characters in a complete
	// ISA segment, including its terminator
	isaByteCount = 106
	// prefixPlaceholder is the element separator used when spelling
	// segment prefixes, replaced by the file's own separator on lookup
	prefixPlaceholder = '*'
	// printableMin is the lowest code point kept by the filters
	printableMin     = 0x20
	filterBufferSize = 4096
)

// ISA header offsets, relative to the header with control characters
// removed
const (
	isaIndexElementSeparator   = 3
	isaIndexLastElementSep     = 103
	isaIndexComponentSeparator = 104
	isaIndexSegmentTerminator  = 105
)

const (
	stSegmentPrefix          = "ST*"
	n1PayeeSegmentPrefix     = "N1*PE*"
	nm1BillingProviderPrefix = "NM1*85*"
	npiQualifier             = "XX"
)

const (
	stIndexTransactionSetCode = 1
)

const (
	n1IndexName               = 2
	n1IndexIdentificationCode = 4
)

const (
	nm1IndexLastOrOrganizationName  = 3
	nm1IndexIdentificationQualifier = 8
	nm1IndexIdentificationCode      = 9
)
