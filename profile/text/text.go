// Package text renders summaries for people to read.
package text

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chop-dbhi/csv-summary/profile"
)

// Write renders the summary. Unless verbose is set, the optional, boolean
// and enum lines are only written for columns where they are true.
func Write(w io.Writer, s *profile.CsvSummary, verbose bool) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "=== %s ====\n", s.Path())
	fmt.Fprintf(bw, "Record Count: %d\n\n", s.RecordCount())

	for _, c := range s.Columns() {
		fmt.Fprintf(bw, "Field Name: %s\n", c.FieldName())
		fmt.Fprintf(bw, "Type: %s\n", c.Type())

		if verbose || c.Optional() {
			fmt.Fprintf(bw, "Optional: %t\n", c.Optional())
		}

		if verbose || c.Boolean() {
			fmt.Fprintf(bw, "Boolean: %t\n", c.Boolean())
		}

		if verbose || c.Enum() {
			fmt.Fprintf(bw, "Enum: %t [%s]\n", c.Enum(), strings.Join(c.Choices(), ", "))
		}

		bw.WriteByte('\n')
	}

	return bw.Flush()
}
