package csvsummary

import (
	"fmt"
	"io"
	"strings"

	"github.com/chop-dbhi/csv-summary/profile"
	"github.com/chop-dbhi/csv-summary/profile/json"
	"github.com/chop-dbhi/csv-summary/profile/text"
)

// Format selects how a summary is written.
type Format string

const (
	// FormatDefault lists each column, showing flags only when set.
	FormatDefault Format = "default"

	// FormatVerbose is FormatDefault with every flag and the choices.
	FormatVerbose Format = "verbose"

	FormatJSON       Format = "json"
	FormatJSONPretty Format = "json-pretty"

	// FormatSQL writes a Postgres table definition.
	FormatSQL Format = "sql"
)

var formats = []Format{FormatDefault, FormatVerbose, FormatJSON, FormatJSONPretty, FormatSQL}

// ParseFormat validates a format name. The empty string is FormatDefault.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return FormatDefault, nil
	}

	f := Format(strings.ToLower(s))

	for _, x := range formats {
		if f == x {
			return f, nil
		}
	}

	return "", fmt.Errorf("unsupported summary format: %s", s)
}

// WriteOptions configures Write.
type WriteOptions struct {
	Format Format

	// Target Postgres schema for FormatSQL. Defaults to "public".
	Schema string

	// Table name for FormatSQL. Defaults to the name derived from the
	// summary path.
	Table string
}

// Write renders the summary to w.
func Write(w io.Writer, s *profile.CsvSummary, opts WriteOptions) error {
	switch opts.Format {
	case FormatDefault, "":
		return text.Write(w, s, false)

	case FormatVerbose:
		return text.Write(w, s, true)

	case FormatJSON:
		return json.Encode(w, s, false)

	case FormatJSONPretty:
		return json.Encode(w, s, true)

	case FormatSQL:
		schema := opts.Schema
		if schema == "" {
			schema = "public"
		}

		table := opts.Table
		if table == "" {
			table = TableName(s.Path())
		}
		if table == "" || table == StdinLabel {
			table = "data"
		}

		stmt, err := CreateTableSQL(schema, table, NewSchema(s))
		if err != nil {
			return err
		}

		_, err = io.WriteString(w, stmt)
		return err
	}

	return fmt.Errorf("unsupported summary format: %s", opts.Format)
}
