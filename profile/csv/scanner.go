package csv

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// Maximum length of a single line. Lines longer than this fail the scan.
const maxLineSize = 4 * 1024 * 1024

var (
	ErrUnquotedField     = errors.New("quote in unquoted field")
	ErrBareQuote         = errors.New("bare quote")
	ErrUnterminatedField = errors.New("unterminated quoted field")
	ErrExtraColumns      = errors.New("extra columns")
	ErrMissingColumns    = errors.New("missing columns")
)

// ParseError locates a field level error.
type ParseError struct {
	Line   int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Scanner steps through the fields of delimited text (RFC 4180 with a
// configurable single byte separator). Each call to Scan advances one
// field; EndOfRecord reports whether that field closed its record. Blank
// lines between records are skipped. Quoted fields may span lines and keep
// the line breaks as newlines.
type Scanner struct {
	sc  *bufio.Scanner
	sep byte

	// eor is true when the last field was terminated by a newline.
	eor    bool
	eof    bool
	lineno int
	column int

	err error

	line  string
	token []byte

	// Unconsumed part of the current line.
	data []byte

	// A separator ended the line, so one empty field is still owed.
	trail bool
}

// NewScanner returns a scanner reading from r that splits fields on sep.
func NewScanner(r io.Reader, sep byte) *Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	return &Scanner{
		sc:  sc,
		sep: sep,
		eor: true,
	}
}

// DefaultScanner returns a comma separated scanner.
func DefaultScanner(r io.Reader) *Scanner {
	return NewScanner(r, ',')
}

// Line returns the current line as a string, including the continuation
// lines of a quoted field.
func (s *Scanner) Line() string {
	return s.line
}

// Text returns the text of the current field.
func (s *Scanner) Text() string {
	return string(s.token)
}

// LineNumber returns the current line number. Blank lines between records
// are not counted.
func (s *Scanner) LineNumber() int {
	return s.lineno
}

// ColumnNumber returns the 1-based column of the current field.
func (s *Scanner) ColumnNumber() int {
	return s.column
}

// EndOfRecord returns true when the most recent field has been terminated by a newline (not a separator).
func (s *Scanner) EndOfRecord() bool {
	return s.eor
}

// Err returns the read or field error of the last Scan, or io.EOF once the
// input is exhausted.
func (s *Scanner) Err() error {
	if err := s.sc.Err(); err != nil {
		return err
	}

	if s.err != nil {
		return &ParseError{Line: s.lineno, Column: s.column, Err: s.err}
	}

	if s.eof {
		return io.EOF
	}

	return nil
}

// Read scans all fields of the next record into a new slice.
func (s *Scanner) Read() ([]string, error) {
	var r []string

	for s.Scan() {
		if err := s.Err(); err != nil {
			return nil, err
		}

		r = append(r, s.Text())

		if s.EndOfRecord() {
			break
		}
	}

	if r != nil {
		return r, nil
	}

	return nil, s.Err()
}

// ScanRecord scans the fields of the next record into r, which must be
// as wide as the expected record. Records wider or narrower than r fail
// with ErrExtraColumns or ErrMissingColumns. io.EOF is returned when no
// records are left.
func (s *Scanner) ScanRecord(r []string) error {
	n := 0

	for s.Scan() {
		if err := s.Err(); err != nil {
			return err
		}

		if n == len(r) {
			return &ParseError{Line: s.lineno, Column: s.column, Err: ErrExtraColumns}
		}

		r[n] = s.Text()
		n++

		if s.EndOfRecord() {
			break
		}
	}

	if n == 0 {
		if err := s.Err(); err != nil {
			return err
		}
		return io.EOF
	}

	if n < len(r) {
		return &ParseError{Line: s.lineno, Column: s.column, Err: ErrMissingColumns}
	}

	return nil
}

// Scan advances to the next field.
func (s *Scanner) Scan() bool {
	if s.err != nil {
		return false
	}

	if s.eof && len(s.data) == 0 {
		return false
	}

	// Previous record is done, load the next non-blank line.
	if s.eor {
		s.line = ""
		s.data = nil
		s.token = nil

		for {
			if !s.sc.Scan() {
				if s.sc.Err() != nil {
					return false
				}

				s.eof = true
				break
			}

			s.line = s.sc.Text()

			if s.line != "" {
				s.data = s.sc.Bytes()
				break
			}
		}
	}

	adv, token, trail, err := s.scanField(s.data)

	s.data = s.data[adv:]

	if err != nil {
		s.err = err
		s.token = nil
		s.eor = true
		return true
	}

	if trail && len(s.data) == 0 {
		s.trail = true
	}

	s.token = token

	if !s.trail && s.eof && len(s.data) == 0 {
		return false
	}

	return true
}

// scanField splits the next field off data. It returns the bytes consumed,
// the unescaped field, and whether the field ended on a separator.
func (s *Scanner) scanField(data []byte) (int, []byte, bool, error) {
	// Empty field after a trailing separator.
	if s.trail {
		s.column++
		s.eor = true
		s.trail = false
		return 0, data, false, nil
	}

	if len(data) == 0 {
		return 0, nil, false, nil
	}

	// First field of a new record.
	if s.eor {
		s.column = 0
		s.lineno++
	}

	s.column++
	s.eor = false

	if data[0] == '"' {
		return s.scanQuoted(data)
	}

	for i, c := range data {
		if c == s.sep {
			return i + 1, data[0:i], true, nil
		}

		if c == '"' {
			return 0, nil, false, ErrUnquotedField
		}
	}

	s.eor = true

	return len(data), data, false, nil
}

func (s *Scanner) scanQuoted(data []byte) (int, []byte, bool, error) {
	var (
		escaped int

		// The previous byte was a quote that may close the field.
		closing bool
	)

	for i := 1; ; i++ {
		if i == len(data) {
			if closing {
				s.eor = true
				return len(data), unescapeQuotes(data[1:i-1], escaped), false, nil
			}

			// The quoted field continues on the next line.
			if !s.sc.Scan() {
				return 0, nil, false, ErrUnterminatedField
			}

			data = s.joinLine(data, s.sc.Bytes())
		}

		c := data[i]

		switch {
		case c == '"' && closing:
			closing = false
			escaped++
		case c == '"':
			closing = true
		case closing && c == s.sep:
			return i + 1, unescapeQuotes(data[1:i-1], escaped), true, nil
		case closing:
			return 0, nil, false, ErrBareQuote
		}
	}
}

// joinLine appends next to the unconsumed data of the current line. The
// result is owned by the scanner since the bufio buffer is reused by the
// following read.
func (s *Scanner) joinLine(data, next []byte) []byte {
	buf := make([]byte, 0, len(data)+len(next)+1)
	buf = append(buf, data...)
	buf = append(buf, '\n')
	buf = append(buf, next...)

	s.data = buf
	s.line += "\n" + string(next)
	s.lineno++

	return buf
}

// unescapeQuotes collapses count doubled quotes in place.
func unescapeQuotes(b []byte, count int) []byte {
	if count == 0 {
		return b
	}

	for i, j := 0, 0; i < len(b); i, j = i+1, j+1 {
		b[j] = b[i]

		if b[i] == '"' && (i < len(b)-1 && b[i+1] == '"') {
			i++
		}
	}

	return b[:len(b)-count]
}
