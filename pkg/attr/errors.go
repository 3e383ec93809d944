package attr

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	// ErrMalformed indicates input that does not follow the wire format.
	ErrMalformed = errors.New("attr: malformed input")

	// ErrTooLarge indicates a record exceeds the decoder's maximum size.
	ErrTooLarge = errors.New("attr: record exceeds maximum size")

	// ErrOddPairs is returned by Pairs when the name/value list has odd length.
	ErrOddPairs = errors.New("attr: odd number of name/value strings")
)

// MalformedError describes the first problem found while decoding.
type MalformedError struct {
	Codec   string // Name of the codec that was decoding
	Section int    // Zero-based index of the record
	Offset  int    // Byte offset in the input
	Reason  string // Human-readable explanation
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("attr: malformed %q input in record %d at offset %d: %s",
		e.Codec, e.Section, e.Offset, e.Reason)
}

func (e *MalformedError) Unwrap() error {
	return ErrMalformed
}
