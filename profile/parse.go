package profile

import (
	"errors"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/araddon/dateparse"
)

var (
	dateFormats = []string{
		"2006-01-02",
		"2006-01",
		"01-02-2006",
		"1-2-06",
		"1/2/2006",
		"1/2/06",
		"2006/01/02",
		"02.01.2006",
		"20060102",
		"2006",
		"January 2, 2006",
		"January 2 2006",
		"Jan 2, 2006",
		"Jan 2 2006",
		"2 January 2006",
		"2 Jan 2006",
		"January 2006",
		"Jan 2006",
		"Monday, January 2, 2006",
		"Mon, Jan 2, 2006",
	}

	dateTimeFormats = []string{
		"2006-01-02 15:04",
		"2006-01-02 15:04:05",
		"2006-01-02 15:04:05Z07:00",
		"2006-01-02T15:04",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04:05Z",
		"2006-01-02T15:04:05Z07:00",
		"1/2/2006 15:04",
		"1/2/2006 15:04:05",
		"1/2/2006 3:04 PM",
		"02.01.2006 15:04:05",
		time.RFC1123,
		time.RFC1123Z,
		time.RFC822,
		time.RFC822Z,
		time.ANSIC,
		time.UnixDate,
	}

	timeFormats = []string{
		"15:04",
		"15:04:05",
		"3:04 PM",
		"3:04PM",
		"3:04:05 PM",
	}
)

// ParseDate parses s against the known calendar date layouts.
func ParseDate(s string) (time.Time, bool) {
	return parseLayouts(dateFormats, s)
}

// ParseDateTime parses s as a date, a date with a time of day, or a bare
// time of day. Layouts are tried first. Anything else that contains a digit
// and is not a plain number is given to a fuzzy parser, so human written
// dates like "July 4th, 2024 at 5pm" are still recognized.
//
// Plain numbers only become dates through the explicit layouts, which means
// a four digit token such as "2024" is a date (a year) and "42" is not.
func ParseDateTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	if v, ok := ParseDate(s); ok {
		return v, true
	}

	if v, ok := parseLayouts(dateTimeFormats, s); ok {
		return v, true
	}

	if v, ok := parseLayouts(timeFormats, s); ok {
		return v, true
	}

	if !hasDigit(s) {
		return time.Time{}, false
	}

	if _, ok := ParseFloat(s); ok {
		return time.Time{}, false
	}

	v, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}

	return v, true
}

// ParseFloat parses s as a float. Values too large for a float64 are still
// floats and come back as +Inf or -Inf.
func ParseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil && !isRangeError(err) {
		return 0, false
	}
	return f, true
}

// ParseInt parses s as a base 10 integer. Integers outside the int64 range
// are still integers and come back clamped to the nearest bound.
func ParseInt(s string) (int64, bool) {
	i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil && !isRangeError(err) {
		return 0, false
	}
	return i, true
}

func isRangeError(err error) bool {
	return errors.Is(err, strconv.ErrRange)
}

// Classify returns the most specific type the value can be parsed as.
// Dates are tried first, then numbers, and everything else is a string.
// Callers filter out empty values; an empty value is UnknownType.
func Classify(s string) ColumnType {
	if s == "" {
		return UnknownType
	}

	if _, ok := ParseDateTime(s); ok {
		return DateTimeType
	}

	// An integer token is also a valid float, so the integer form is
	// checked first to keep the two apart.
	if _, ok := ParseInt(s); ok {
		return IntType
	}

	if _, ok := ParseFloat(s); ok {
		return FloatType
	}

	return StringType
}

func parseLayouts(layouts []string, s string) (time.Time, bool) {
	s = strings.TrimSpace(s)

	for _, layout := range layouts {
		if v, err := time.Parse(layout, s); err == nil {
			return v, true
		}
	}

	return time.Time{}, false
}

func hasDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
