package profile

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoHeader       = errors.New("missing header")
	ErrEmptyField     = errors.New("empty field name")
	ErrDuplicateField = errors.New("duplicate field name")
)

// InputError is returned when the input cannot be summarized at all: the
// header is missing or invalid, or the stream cannot be read.
type InputError struct {
	// Path of the input, if known.
	Path string
	Err  error
}

func (e *InputError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("input error: %s", e.Err)
	}
	return fmt.Sprintf("input error: %s: %s", e.Path, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// MalformedRowError is returned when a record does not line up with the
// header. Record is the 1-based data record number.
type MalformedRowError struct {
	Record int64

	// Missing and Extra list the field names the row lacks or has in
	// addition to the header. Either may be empty when the reader only
	// knows the width is wrong.
	Missing []string
	Extra   []string

	Err error
}

func (e *MalformedRowError) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "malformed record %d", e.Record)

	if len(e.Missing) > 0 {
		fmt.Fprintf(&b, ": missing fields %s", strings.Join(e.Missing, ", "))
	}

	if len(e.Extra) > 0 {
		fmt.Fprintf(&b, ": unexpected fields %s", strings.Join(e.Extra, ", "))
	}

	if e.Err != nil {
		fmt.Fprintf(&b, ": %s", e.Err)
	}

	return b.String()
}

func (e *MalformedRowError) Unwrap() error {
	return e.Err
}

// validateHeader checks that every field name is non-empty and unique.
func validateHeader(header []string) error {
	seen := make(map[string]struct{}, len(header))

	for i, n := range header {
		if n == "" {
			return &InputError{Err: fmt.Errorf("%w at column %d", ErrEmptyField, i+1)}
		}

		if _, ok := seen[n]; ok {
			return &InputError{Err: fmt.Errorf("%w %q", ErrDuplicateField, n)}
		}

		seen[n] = struct{}{}
	}

	return nil
}
