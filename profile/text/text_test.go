package text

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chop-dbhi/csv-summary/profile"
)

func summary(t *testing.T) *profile.CsvSummary {
	s, err := profile.Build("users.csv", []string{"id", "active"}, []profile.Row{
		{"id": "1", "active": "y"},
		{"id": "2", "active": "n"},
		{"id": "3", "active": ""},
	})
	require.NoError(t, err)
	return s
}

func TestWriteDefault(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, summary(t), false))

	expected := `=== users.csv ====
Record Count: 3

Field Name: id
Type: integer

Field Name: active
Type: string
Optional: true
Boolean: true

`
	assert.Equal(t, expected, buf.String())
}

func TestWriteVerbose(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, summary(t), true))

	expected := `=== users.csv ====
Record Count: 3

Field Name: id
Type: integer
Optional: false
Boolean: false
Enum: false [1, 2, 3]

Field Name: active
Type: string
Optional: true
Boolean: true
Enum: false [n, y]

`
	assert.Equal(t, expected, buf.String())
}

func TestWriteNoColumns(t *testing.T) {
	s, err := profile.Build("empty.csv", nil, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, s, true))
	assert.Equal(t, "=== empty.csv ====\nRecord Count: 0\n\n", buf.String())
}
