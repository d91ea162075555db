package csvsummary

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chop-dbhi/csv-summary/profile"
)

func TestNewSchema(t *testing.T) {
	s, err := profile.Build("people.csv", []string{"ID", "Full Name", "score", "born", "notes"}, []profile.Row{
		{"ID": "1", "Full Name": "Joe", "score": "1.5", "born": "2001-02-03", "notes": ""},
		{"ID": "2", "Full Name": "Joe", "score": "", "born": "2001-02-04", "notes": ""},
	})
	require.NoError(t, err)

	schema := NewSchema(s)
	require.Len(t, schema.Fields, 5)

	assert.Equal(t, Field{Name: "id", Type: "bigint", Unique: true}, *schema.Fields[0])
	assert.Equal(t, Field{Name: "full_name", Type: "text"}, *schema.Fields[1])
	assert.Equal(t, Field{Name: "score", Type: "double precision", Nullable: true}, *schema.Fields[2])
	assert.Equal(t, Field{Name: "born", Type: "timestamp", Unique: true}, *schema.Fields[3])
	assert.Equal(t, Field{Name: "notes", Type: "text", Nullable: true}, *schema.Fields[4])
}

func TestNewSchemaNameCollisions(t *testing.T) {
	header := []string{"A", "a", "x-y", "x_y", "x_y_2"}

	s, err := profile.Build("dupes.csv", header, []profile.Row{
		{"A": "1", "a": "2", "x-y": "3", "x_y": "4", "x_y_2": "5"},
	})
	require.NoError(t, err)

	var names []string
	for _, f := range NewSchema(s).Fields {
		names = append(names, f.Name)
	}

	assert.Equal(t, []string{"a", "a_2", "x_y", "x_y_2", "x_y_2_2"}, names)

	stmt, err := CreateTableSQL("public", "dupes", NewSchema(s))
	require.NoError(t, err)
	assert.Contains(t, stmt, `"a" bigint not null, "a_2" bigint not null`)
}

func TestCreateTableSQL(t *testing.T) {
	schema := &Schema{
		Fields: []*Field{
			{Name: "id", Type: "bigint", Unique: true},
			{Name: "name", Type: "text"},
			{Name: "age", Type: "bigint", Nullable: true},
		},
	}

	stmt, err := CreateTableSQL("public", "People.2024", schema)
	require.NoError(t, err)

	expected := `create schema if not exists "public";
create table if not exists "public"."people_2024" ( "id" bigint unique, "name" text not null, "age" bigint );
`
	assert.Equal(t, expected, stmt)
}

func TestCleanFieldName(t *testing.T) {
	tests := map[string]string{
		"Name":        "name",
		"first name":  "first_name",
		"a--b":        "a_b",
		"Total ($)":   "total_",
		"plain_field": "plain_field",
	}

	for in, exp := range tests {
		assert.Equal(t, exp, cleanFieldName(in), in)
	}
}

var cleanName = regexp.MustCompile(`^[a-z0-9_]*$`)

func FuzzCleanFieldName(f *testing.F) {
	for _, s := range []string{"Name", "first name", "a.b+c", "ÄÖÜ", ""} {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, s string) {
		n := cleanFieldName(s)

		if !cleanName.MatchString(n) {
			t.Errorf("%q cleaned to %q", s, n)
		}

		if n != cleanFieldName(n) {
			t.Errorf("cleaning %q is not stable: %q", s, n)
		}
	})
}
