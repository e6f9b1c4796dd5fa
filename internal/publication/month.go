package publication

import (
	"fmt"
	"strconv"
	"strings"
)

// monthAbbrevs maps the month abbreviations BibTeX accepts without quotes to
// two-digit month numbers.
var monthAbbrevs = map[string]string{
	"jan": "01",
	"feb": "02",
	"mar": "03",
	"apr": "04",
	"may": "05",
	"jun": "06",
	"jul": "07",
	"aug": "08",
	"sep": "09",
	"oct": "10",
	"nov": "11",
	"dec": "12",
}

// ResolveMonth converts a month field (abbreviation or number) to a two-digit
// string. It returns false when raw does not name a month.
func ResolveMonth(raw string) (string, bool) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if m, ok := monthAbbrevs[raw]; ok {
		return m, true
	}
	if !isDigits(raw) {
		return "", false
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > 12 {
		return "", false
	}
	return fmt.Sprintf("%02d", n), true
}

// FormatDate joins a year and an optional month field into YYYY or YYYY-MM.
func FormatDate(year, month string) string {
	year = strings.TrimSpace(year)
	if m, ok := ResolveMonth(month); ok {
		return year + "-" + m
	}
	return year
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
