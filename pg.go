package csvsummary

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"text/template"

	"github.com/lib/pq"

	"github.com/chop-dbhi/csv-summary/profile"
)

var (
	badChars = regexp.MustCompile(`[^a-z0-9_\-\.\+]+`)
	sepChars = regexp.MustCompile(`[_\-\.\+]+`)

	sqlTmpl = template.New("sql")

	queryTmpls = map[string]string{
		"createSchema": `create schema if not exists {{.Schema}};`,
		"createTable":  `create table if not exists {{.Schema}}.{{.Table}} ( {{.Columns}} );`,
	}
)

func init() {
	// Initialize SQL statement templates.
	for name, tmpl := range queryTmpls {
		template.Must(sqlTmpl.New(name).Parse(tmpl))
	}
}

// Map of column types to Postgres types. Columns without any values fall
// back to text.
var sqlTypeMap = map[profile.ColumnType]string{
	profile.UnknownType:  "text",
	profile.IntType:      "bigint",
	profile.FloatType:    "double precision",
	profile.DateTimeType: "timestamp",
	profile.StringType:   "text",
}

// Field is a column definition derived from a column summary.
type Field struct {
	// Name is the cleaned column name.
	Name string `json:"name"`

	// Type is the Postgres data type.
	Type string `json:"type"`

	// If true, every record has a distinct value.
	Unique bool `json:"unique"`

	// If true, at least one record has no value.
	Nullable bool `json:"nullable"`
}

// Schema is the table definition suggested by a summary.
type Schema struct {
	Fields []*Field `json:"fields"`
}

// NewSchema maps each summarized column to a field, in header order.
// Headers that clean to the same name get a numeric suffix.
func NewSchema(s *profile.CsvSummary) *Schema {
	cols := s.Columns()
	fields := make([]*Field, len(cols))
	names := make(map[string]struct{}, len(cols))

	for i, c := range cols {
		fields[i] = &Field{
			Name:     uniqueFieldName(names, cleanFieldName(c.FieldName())),
			Type:     sqlTypeMap[c.Type()],
			Unique:   !c.Optional() && s.RecordCount() > 1 && int64(c.NumChoices()) == s.RecordCount(),
			Nullable: c.Optional() || s.RecordCount() == 0,
		}
	}

	return &Schema{
		Fields: fields,
	}
}

type tableData struct {
	Schema  string
	Table   string
	Columns string
}

// cleanFieldName lowercases n and collapses runs of unsupported characters
// and separators into single underscores.
func cleanFieldName(n string) string {
	n = strings.ToLower(n)
	n = badChars.ReplaceAllString(n, "_")
	return sepChars.ReplaceAllString(n, "_")
}

// uniqueFieldName returns n, or n with the first free "_<i>" suffix, and
// records the result in seen.
func uniqueFieldName(seen map[string]struct{}, n string) string {
	name := n

	for i := 2; ; i++ {
		if _, ok := seen[name]; !ok {
			break
		}
		name = fmt.Sprintf("%s_%d", n, i)
	}

	seen[name] = struct{}{}

	return name
}

// CreateTableSQL renders the statements creating the schema and a table for
// the summarized data.
func CreateTableSQL(schemaName, tableName string, tableSchema *Schema) (string, error) {
	var columns []string

	for _, f := range tableSchema.Fields {
		var col string

		if f.Unique {
			col = "%s %s unique"
		} else if !f.Nullable {
			col = "%s %s not null"
		} else {
			col = "%s %s"
		}

		columns = append(columns, fmt.Sprintf(col, pq.QuoteIdentifier(f.Name), f.Type))
	}

	data := &tableData{
		Schema:  pq.QuoteIdentifier(schemaName),
		Table:   pq.QuoteIdentifier(cleanFieldName(tableName)),
		Columns: strings.Join(columns, ", "),
	}

	var b bytes.Buffer

	for _, name := range []string{"createSchema", "createTable"} {
		if err := sqlTmpl.ExecuteTemplate(&b, name, data); err != nil {
			return "", err
		}
		b.WriteByte('\n')
	}

	return b.String(), nil
}
