// Package json encodes summaries in the JSON layout consumed by existing
// tooling and decodes them back.
package json

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/chop-dbhi/csv-summary/profile"
)

// Column is the serialized form of a column summary.
type Column struct {
	FieldName string             `json:"field_name"`
	Type      profile.ColumnType `json:"type"`
	Choices   []string           `json:"choices"`
	Optional  bool               `json:"optional"`
	Boolean   bool               `json:"boolean"`
	Enum      bool               `json:"enum"`
}

// Document is the serialized form of a table summary. The path label is
// not part of the document.
type Document struct {
	Columns     []Column `json:"columns"`
	RecordCount int64    `json:"record_count"`
}

// NewDocument converts a summary to its serialized form.
func NewDocument(s *profile.CsvSummary) *Document {
	cols := s.Columns()

	d := &Document{
		Columns:     make([]Column, len(cols)),
		RecordCount: s.RecordCount(),
	}

	for i, c := range cols {
		d.Columns[i] = Column{
			FieldName: c.FieldName(),
			Type:      c.Type(),
			Choices:   c.Choices(),
			Optional:  c.Optional(),
			Boolean:   c.Boolean(),
			Enum:      c.Enum(),
		}
	}

	return d
}

// Summary converts the document back to a summary labelled with path.
func (d *Document) Summary(path string) *profile.CsvSummary {
	cols := make([]profile.ColumnSummary, len(d.Columns))

	for i, c := range d.Columns {
		cols[i] = profile.NewColumnSummary(c.FieldName, c.Type, c.Choices, c.Optional, c.Boolean, c.Enum)
	}

	return profile.NewCsvSummary(path, cols, d.RecordCount)
}

// Encode writes the summary as a single line of JSON, or indented by two
// spaces if pretty is set.
func Encode(w io.Writer, s *profile.CsvSummary, pretty bool) error {
	enc := json.NewEncoder(w)

	if pretty {
		enc.SetIndent("", "  ")
	}

	if err := enc.Encode(NewDocument(s)); err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}

	return nil
}

// Decode reads one summary document.
func Decode(r io.Reader) (*Document, error) {
	var d Document

	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("decode summary: %w", err)
	}

	for i, c := range d.Columns {
		if c.Choices == nil {
			d.Columns[i].Choices = []string{}
		}
	}

	return &d, nil
}
