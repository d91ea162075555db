// Package csv summarizes delimited text with a header line.
package csv

import (
	"errors"
	"io"
	"strings"

	"github.com/chop-dbhi/csv-summary/profile"
)

// Profiler reads a header line followed by data records and feeds them to a
// profile.Profiler.
type Profiler struct {
	Delimiter byte

	// TrimHeader strips surrounding whitespace from the header names.
	TrimHeader bool

	in io.Reader
}

// Profile consumes the input and returns its summary, labelled with path.
func (x *Profiler) Profile(path string) (*profile.CsvSummary, error) {
	cr := NewScanner(x.in, x.Delimiter)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &profile.InputError{Path: path, Err: profile.ErrNoHeader}
	}
	if err != nil {
		return nil, classifyError(path, 0, err)
	}

	if x.TrimHeader {
		for i, n := range header {
			header[i] = strings.TrimSpace(n)
		}
	}

	p, err := profile.NewProfiler(header)
	if err != nil {
		var ie *profile.InputError
		if errors.As(err, &ie) {
			ie.Path = path
		}
		return nil, err
	}

	record := make([]string, len(header))

	for {
		err := cr.ScanRecord(record)
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, classifyError(path, p.Count()+1, err)
		}

		if err := p.Record(record); err != nil {
			return nil, err
		}
	}

	return p.Profile(path), nil
}

// classifyError separates record level problems from failures of the
// underlying stream.
func classifyError(path string, record int64, err error) error {
	var pe *ParseError
	if errors.As(err, &pe) {
		if record == 0 {
			return &profile.InputError{Path: path, Err: err}
		}
		return &profile.MalformedRowError{Record: record, Err: err}
	}

	return &profile.InputError{Path: path, Err: err}
}

// NewProfiler returns a comma delimited profiler reading from r.
func NewProfiler(r io.Reader) *Profiler {
	return &Profiler{
		Delimiter: ',',
		in:        r,
	}
}
