package csv

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chop-dbhi/csv-summary/profile"
)

func TestProfiler(t *testing.T) {
	b := bytes.NewBufferString(`name,color,dob
John,Blue,03/11/2013
Jane,Red,2008-02-24
Joe,,2010-02-11
`)

	p, err := NewProfiler(b).Profile("people.csv")
	require.NoError(t, err)

	assert.Equal(t, "people.csv", p.Path())
	assert.Equal(t, int64(3), p.RecordCount())
	require.Len(t, p.Columns(), 3)

	dob, ok := p.Column("dob")
	require.True(t, ok)
	assert.Equal(t, profile.DateTimeType, dob.Type())

	color, ok := p.Column("color")
	require.True(t, ok)
	assert.Equal(t, profile.StringType, color.Type())
	assert.True(t, color.Optional())
	assert.True(t, color.Boolean())
}

func TestProfilerMultilineField(t *testing.T) {
	b := strings.NewReader("id,note\n1,\"line one\nline two\"\n2,ok\n")

	p, err := NewProfiler(b).Profile("notes.csv")
	require.NoError(t, err)

	assert.Equal(t, int64(2), p.RecordCount())

	note, ok := p.Column("note")
	require.True(t, ok)
	assert.Equal(t, []string{"line one\nline two", "ok"}, note.Choices())
}

func TestProfilerFixture(t *testing.T) {
	b := strings.NewReader("id,active,joined\n" +
		"1,true,2024-01-01\n" +
		"2,false,2024-02-01\n" +
		"3,,2024-03-01\n")

	p, err := NewProfiler(b).Profile("fixture.csv")
	require.NoError(t, err)

	assert.Equal(t, int64(3), p.RecordCount())

	cols := p.Columns()
	require.Len(t, cols, 3)

	assert.Equal(t, profile.IntType, cols[0].Type())
	assert.False(t, cols[0].Optional())
	assert.False(t, cols[0].Boolean())

	assert.Equal(t, profile.StringType, cols[1].Type())
	assert.True(t, cols[1].Boolean())
	assert.True(t, cols[1].Optional())

	assert.Equal(t, profile.DateTimeType, cols[2].Type())
	assert.False(t, cols[2].Optional())
	assert.False(t, cols[2].Boolean())
}

func TestProfilerHeaderOnly(t *testing.T) {
	p, err := NewProfiler(strings.NewReader("a,b,c\n")).Profile("")
	require.NoError(t, err)

	assert.Equal(t, int64(0), p.RecordCount())
	for _, c := range p.Columns() {
		assert.Equal(t, profile.UnknownType, c.Type())
		assert.False(t, c.Optional())
	}
}

func TestProfilerNoHeader(t *testing.T) {
	_, err := NewProfiler(strings.NewReader("\n\n")).Profile("blank.csv")

	var ie *profile.InputError
	require.True(t, errors.As(err, &ie))
	assert.ErrorIs(t, err, profile.ErrNoHeader)
	assert.Equal(t, "blank.csv", ie.Path)
}

func TestProfilerDuplicateHeader(t *testing.T) {
	_, err := NewProfiler(strings.NewReader("a,b,a\n1,2,3\n")).Profile("dup.csv")

	var ie *profile.InputError
	require.True(t, errors.As(err, &ie))
	assert.ErrorIs(t, err, profile.ErrDuplicateField)
	assert.Equal(t, "dup.csv", ie.Path)
}

func TestProfilerMalformedRow(t *testing.T) {
	tests := map[string]struct {
		Input string
		Err   error
	}{
		"short": {"a,b,c\n1,2,3\n4,5\n", ErrMissingColumns},
		"long":  {"a,b,c\n1,2,3\n4,5,6,7\n", ErrExtraColumns},
		"quote": {"a,b,c\n1,2,3\n4,5,6\"\n", ErrUnquotedField},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewProfiler(strings.NewReader(test.Input)).Profile("")

			var me *profile.MalformedRowError
			require.True(t, errors.As(err, &me), "got %v", err)
			assert.Equal(t, int64(2), me.Record)
			assert.ErrorIs(t, err, test.Err)
		})
	}
}

func TestProfilerTrimHeader(t *testing.T) {
	pr := NewProfiler(strings.NewReader(" a , b\n1,2\n"))
	pr.TrimHeader = true

	p, err := pr.Profile("")
	require.NoError(t, err)

	_, ok := p.Column("a")
	assert.True(t, ok)
}
