package isasplit

import (
	"errors"
	"fmt"
)

var ErrInvalidISA = errors.New("invalid ISA segment")

// Reasons reported by FormatError
const (
	ReasonMissingPrefix         = "missing ISA prefix"
	ReasonHeaderTooShort        = "header too short"
	ReasonInconsistentSeparator = "inconsistent element separator"
)

// FormatError is returned when a file's ISA header cannot establish a
// consistent set of delimiters. It is fatal for the file it refers to,
// but callers processing a batch of files can skip it and continue.
type FormatError struct {
	// File identifies the source, if known
	File   string
	Reason string
}

func (e *FormatError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("%s: %s", ErrInvalidISA, e.Reason)
	}
	return fmt.Sprintf("invalid file %s: %s: %s", e.File, ErrInvalidISA, e.Reason)
}

func (e *FormatError) Unwrap() error {
	return ErrInvalidISA
}

func newFormatError(reason string) *FormatError {
	return &FormatError{Reason: reason}
}
