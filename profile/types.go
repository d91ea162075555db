package profile

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Column types in order of generality. A column takes the most general type
// of all its values, so declaration order is the precedence order.
const (
	UnknownType ColumnType = iota
	IntType
	FloatType
	DateTimeType
	StringType
)

// ColumnType is the inferred data type of a column.
type ColumnType uint8

// Wire codes used by the JSON output. Existing consumers of the JSON
// summaries expect these exact numbers.
var typeCodes = [...]int{
	UnknownType:  0,
	IntType:      3,
	FloatType:    5,
	DateTimeType: 7,
	StringType:   9,
}

func (t ColumnType) String() string {
	switch t {
	case UnknownType:
		return "unknown"
	case IntType:
		return "integer"
	case FloatType:
		return "float"
	case DateTimeType:
		return "datetime"
	case StringType:
		return "string"
	}

	return ""
}

// Code returns the JSON wire code of the type.
func (t ColumnType) Code() int {
	if int(t) < len(typeCodes) {
		return typeCodes[t]
	}
	return 0
}

// TypeFromCode maps a wire code back to a type.
func TypeFromCode(code int) (ColumnType, bool) {
	for t, c := range typeCodes {
		if c == code {
			return ColumnType(t), true
		}
	}

	return UnknownType, false
}

// ParseColumnType maps a type name, as returned by String, to a type.
func ParseColumnType(s string) (ColumnType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "unknown":
		return UnknownType, true
	case "integer", "int":
		return IntType, true
	case "float":
		return FloatType, true
	case "datetime":
		return DateTimeType, true
	case "string":
		return StringType, true
	}

	return UnknownType, false
}

func (t ColumnType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Code())
}

func (t *ColumnType) UnmarshalJSON(b []byte) error {
	var code int
	if err := json.Unmarshal(b, &code); err != nil {
		return err
	}

	v, ok := TypeFromCode(code)
	if !ok {
		return fmt.Errorf("unknown column type code %d", code)
	}

	*t = v

	return nil
}

// GeneralizeType returns the more general of the two types.
func GeneralizeType(t1, t2 ColumnType) ColumnType {
	if t1 > t2 {
		return t1
	}
	return t2
}
