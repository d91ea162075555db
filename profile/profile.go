package profile

import "sort"

// ColumnSummary describes a single column of a table. Values are built once
// by SummarizeColumn and are read-only afterwards.
type ColumnSummary struct {
	fieldName string
	choices   []string
	typ       ColumnType
	optional  bool
	boolean   bool
	enum      bool
}

// NewColumnSummary assembles a summary from already computed parts. It is
// meant for decoders that restore a summary from its serialized form; use
// SummarizeColumn to compute one from data.
func NewColumnSummary(fieldName string, typ ColumnType, choices []string, optional, boolean, enum bool) ColumnSummary {
	return ColumnSummary{
		fieldName: fieldName,
		choices:   sortedCopy(choices),
		typ:       typ,
		optional:  optional,
		boolean:   boolean,
		enum:      enum,
	}
}

// FieldName is the header name of the column.
func (c ColumnSummary) FieldName() string { return c.fieldName }

// Type is the most general type of the non-empty values.
func (c ColumnSummary) Type() ColumnType { return c.typ }

// Optional is true if at least one record left the column empty.
func (c ColumnSummary) Optional() bool { return c.optional }

// Boolean is true if the column holds exactly two distinct values.
func (c ColumnSummary) Boolean() bool { return c.boolean }

// Enum is reserved and always false.
func (c ColumnSummary) Enum() bool { return c.enum }

// Choices returns the distinct non-empty values in sorted order. The
// returned slice is a copy.
func (c ColumnSummary) Choices() []string {
	out := make([]string, len(c.choices))
	copy(out, c.choices)
	return out
}

// NumChoices returns the number of distinct non-empty values.
func (c ColumnSummary) NumChoices() int { return len(c.choices) }

// CsvSummary describes a whole table.
type CsvSummary struct {
	path        string
	columns     []ColumnSummary
	recordCount int64
}

// NewCsvSummary assembles a table summary. The columns slice is copied.
func NewCsvSummary(path string, columns []ColumnSummary, recordCount int64) *CsvSummary {
	cols := make([]ColumnSummary, len(columns))
	copy(cols, columns)

	return &CsvSummary{
		path:        path,
		columns:     cols,
		recordCount: recordCount,
	}
}

// Path is the label of the summarized input. It is informational only.
func (s *CsvSummary) Path() string { return s.path }

// RecordCount is the number of data records, not counting the header.
func (s *CsvSummary) RecordCount() int64 { return s.recordCount }

// Columns returns the column summaries in header order. The returned slice
// is a copy.
func (s *CsvSummary) Columns() []ColumnSummary {
	out := make([]ColumnSummary, len(s.columns))
	copy(out, s.columns)
	return out
}

// Column returns the summary of the named column.
func (s *CsvSummary) Column(name string) (ColumnSummary, bool) {
	for _, c := range s.columns {
		if c.fieldName == name {
			return c, true
		}
	}
	return ColumnSummary{}, false
}

func sortedCopy(ss []string) []string {
	out := make([]string, len(ss))
	copy(out, ss)
	sort.Strings(out)
	return out
}
