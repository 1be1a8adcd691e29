// Package dateutil formats page date stamps and reads years from free-text
// date ranges.
package dateutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an invalid date format string.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxDateFormatLength limits format string length.
const MaxDateFormatLength = 50

// DefaultDateFormat is the stamp format used when none is configured.
const DefaultDateFormat = "YYYY-MM-DD"

// dateTokens maps format tokens to Go layout components, longest first.
var dateTokens = []struct {
	token string
	goFmt string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"M", "1"},
	{"D", "2"},
}

// DatePresets are named shortcuts accepted wherever a format is.
var DatePresets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
}

// rangeSeparators end the start date of a "Dates" value: a semicolon or an
// en dash.
const rangeSeparators = ";–"

// ParseDateFormat converts a token format (YYYY, YY, MMMM, MMM, MM, M, DD, D)
// to a Go time layout. Text inside brackets is copied literally, as is any
// other character outside a token.
func ParseDateFormat(format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxDateFormatLength {
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	var layout strings.Builder
	layout.Grow(len(format) + 8)

	for i := 0; i < len(format); {
		if format[i] == '[' {
			end := strings.IndexByte(format[i+1:], ']')
			if end == -1 {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, i)
			}
			layout.WriteString(format[i+1 : i+1+end])
			i += end + 2
			continue
		}
		n := writeToken(&layout, format[i:])
		if n == 0 {
			layout.WriteByte(format[i])
			n = 1
		}
		i += n
	}
	return layout.String(), nil
}

// writeToken writes the layout of the token s starts with and returns the
// token length, or 0 when s does not start with a token.
func writeToken(b *strings.Builder, s string) int {
	for _, t := range dateTokens {
		if strings.HasPrefix(s, t.token) {
			b.WriteString(t.goFmt)
			return len(t.token)
		}
	}
	return 0
}

// Format renders t with a token format or a preset name (case-insensitive).
// An empty format means DefaultDateFormat.
func Format(t time.Time, format string) (string, error) {
	if format == "" {
		format = DefaultDateFormat
	}
	if preset, ok := DatePresets[strings.ToLower(format)]; ok {
		format = preset
	}
	layout, err := ParseDateFormat(format)
	if err != nil {
		return "", err
	}
	return t.Format(layout), nil
}

// StartYear reads the year of the first date in a free-text range such as
// "2023-04-10; 2023-04-12" or "2023-04-10 – 2023-04-12". The start date is the
// text before the first separator, trimmed; its first four characters must
// form an integer.
func StartYear(dates string) (int, bool) {
	start := dates
	if i := strings.IndexAny(dates, rangeSeparators); i >= 0 {
		start = dates[:i]
	}
	start = strings.TrimSpace(start)

	// First four characters, not bytes.
	runes := []rune(start)
	if len(runes) > 4 {
		runes = runes[:4]
	}
	year, err := strconv.Atoi(string(runes))
	if err != nil {
		return 0, false
	}
	return year, true
}
