package profile

// SummarizeColumn builds the summary of one column from the raw value of
// every record, empty strings included. Empty values mark the column as
// optional and take no part in type inference or the choice set.
func SummarizeColumn(fieldName string, values []string) ColumnSummary {
	var optional bool

	set := make(map[string]struct{})
	choices := make([]string, 0)

	for _, v := range values {
		if v == "" {
			optional = true
			continue
		}

		if _, ok := set[v]; ok {
			continue
		}

		set[v] = struct{}{}
		choices = append(choices, v)
	}

	return ColumnSummary{
		fieldName: fieldName,
		choices:   sortedCopy(choices),
		typ:       inferType(choices),
		optional:  optional,
		boolean:   len(choices) == 2,
	}
}

// inferType returns the most general type of the values. A column with no
// values is UnknownType.
func inferType(values []string) ColumnType {
	var t ColumnType

	for _, v := range values {
		t = GeneralizeType(t, Classify(v))

		// Short circuit. Already most general type.
		if t == StringType {
			break
		}
	}

	return t
}
