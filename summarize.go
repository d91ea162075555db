package csvsummary

import (
	"fmt"
	"path"
	"strings"

	"github.com/chop-dbhi/csv-summary/profile"
	"github.com/chop-dbhi/csv-summary/profile/csv"
	"github.com/chop-dbhi/csv-summary/reader"
)

// StdinLabel is the path label used when the input is read from stdin.
const StdinLabel = "<stdin>"

type Request struct {
	// Input path. Empty or "-" reads stdin.
	Path string

	// Label shown in the summary. Defaults to the path.
	Label string

	// File specifics.
	Compression string

	// CSV
	Delimiter  string
	TrimHeader bool
}

func (r *Request) label() string {
	if r.Label != "" {
		return r.Label
	}

	if r.Path == "" || r.Path == "-" {
		return StdinLabel
	}

	return r.Path
}

// Summarize opens the requested input, profiles every record and closes the
// input again before returning, also when profiling fails.
func Summarize(r *Request) (*profile.CsvSummary, error) {
	label := r.label()

	fileType, _ := reader.DetectType(r.Path)

	switch fileType {
	case "", "csv":
	default:
		return nil, &profile.InputError{
			Path: label,
			Err:  fmt.Errorf("file type not supported: %s", fileType),
		}
	}

	delim := byte(',')
	if r.Delimiter != "" {
		if len(r.Delimiter) != 1 {
			return nil, &profile.InputError{
				Path: label,
				Err:  fmt.Errorf("delimiter must be a single byte: %q", r.Delimiter),
			}
		}
		delim = r.Delimiter[0]
	}

	input, err := reader.Open(r.Path, r.Compression)
	if err != nil {
		return nil, &profile.InputError{Path: label, Err: fmt.Errorf("cannot open input: %w", err)}
	}
	defer input.Close()

	cp := csv.NewProfiler(input)
	cp.Delimiter = delim
	cp.TrimHeader = r.TrimHeader

	s, err := cp.Profile(label)
	if err != nil {
		return nil, fmt.Errorf("profile error: %w", err)
	}

	return s, nil
}

// TableName derives a table name from a path label: the base name up to
// the first dot.
func TableName(label string) string {
	_, base := path.Split(strings.ReplaceAll(label, "\\", "/"))
	return strings.Split(base, ".")[0]
}
