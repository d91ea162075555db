package profile

import (
	"fmt"
	"sort"
)

// Row is one data record keyed by header field name. Empty cells are
// present with an empty string value.
type Row map[string]string

// Profiler accumulates records of a single table and produces its summary.
// A Profiler is not safe for concurrent use; summarize separate inputs with
// separate profilers.
type Profiler interface {
	// Header returns the field names in column order.
	Header() []string

	// Record adds a record given as values in header order.
	Record(values []string) error

	// RecordRow adds a record keyed by field name.
	RecordRow(row Row) error

	// Count returns the number of records added so far.
	Count() int64

	// Profile summarizes the records added so far.
	Profile(path string) *CsvSummary
}

type profiler struct {
	header []string
	index  map[string]int

	// Raw values per column, in record order.
	values [][]string
	count  int64
}

// NewProfiler returns a profiler for a table with the given header. The
// field names must be non-empty and unique.
func NewProfiler(header []string) (Profiler, error) {
	if err := validateHeader(header); err != nil {
		return nil, err
	}

	p := &profiler{
		header: make([]string, len(header)),
		index:  make(map[string]int, len(header)),
		values: make([][]string, len(header)),
	}

	copy(p.header, header)

	for i, n := range header {
		p.index[n] = i
	}

	return p, nil
}

func (p *profiler) Header() []string {
	out := make([]string, len(p.header))
	copy(out, p.header)
	return out
}

func (p *profiler) Count() int64 {
	return p.count
}

func (p *profiler) Record(values []string) error {
	if len(values) != len(p.header) {
		e := &MalformedRowError{
			Record: p.count + 1,
			Err:    fmt.Errorf("expected %d fields, got %d", len(p.header), len(values)),
		}

		if len(values) < len(p.header) {
			e.Missing = p.Header()[len(values):]
		}

		return e
	}

	for i, v := range values {
		p.values[i] = append(p.values[i], v)
	}

	p.count++

	return nil
}

func (p *profiler) RecordRow(row Row) error {
	var missing, extra []string

	for _, n := range p.header {
		if _, ok := row[n]; !ok {
			missing = append(missing, n)
		}
	}

	for k := range row {
		if _, ok := p.index[k]; !ok {
			extra = append(extra, k)
		}
	}

	if len(missing) > 0 || len(extra) > 0 {
		sort.Strings(extra)

		return &MalformedRowError{
			Record:  p.count + 1,
			Missing: missing,
			Extra:   extra,
		}
	}

	for i, n := range p.header {
		p.values[i] = append(p.values[i], row[n])
	}

	p.count++

	return nil
}

func (p *profiler) Profile(path string) *CsvSummary {
	columns := make([]ColumnSummary, len(p.header))

	for i, n := range p.header {
		columns[i] = SummarizeColumn(n, p.values[i])
	}

	return &CsvSummary{
		path:        path,
		columns:     columns,
		recordCount: p.count,
	}
}

// Build summarizes a fully materialized table. The header fixes the column
// order; every row must carry exactly the header's field names.
func Build(path string, header []string, rows []Row) (*CsvSummary, error) {
	p, err := NewProfiler(header)
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		if err := p.RecordRow(row); err != nil {
			return nil, err
		}
	}

	return p.Profile(path), nil
}
