package models

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

// Layouts accepted for free-form date cells, tried in order.
var dateLayouts = []string{
	DateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"02-Jan-2006",
	"2-Jan-2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
}

// excelSerialToDate converts an Excel 1900-system serial to a calendar date.
// The 1900 system pretends Feb 29 1900 existed (serial 60), so serials from
// 60 onward are pulled back one extra day; serial 1 is 1900-01-01.
func excelSerialToDate(serial float64) (time.Time, bool) {
	if serial <= 0 {
		return time.Time{}, false
	}
	days := int(math.Floor(serial))
	if days < 60 {
		days--
	} else {
		days -= 2
	}
	return time.Date(1900, time.January, 1, 0, 0, 0, 0, time.Local).AddDate(0, 0, days), true
}

// ParseDateValue parses a stored or imported date string into a local
// calendar date. Returns false for empty or unparseable values.
func ParseDateValue(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// NormalizeDateCell canonicalizes one spreadsheet date cell:
// numeric cells are 1900-system serials, strings go through general date
// parsing to YYYY-MM-DD, and unparseable text passes through trimmed so a
// re-export reproduces the operator's original entry.
func NormalizeDateCell(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if serial, err := strconv.ParseFloat(trimmed, 64); err == nil {
		if t, ok := excelSerialToDate(serial); ok {
			return t.Format(DateLayout)
		}
		return trimmed
	}
	if t, ok := ParseDateValue(trimmed); ok {
		return t.Format(DateLayout)
	}
	return trimmed
}

var currencyCleaner = strings.NewReplacer("₹", "", ",", "")

// ParseCurrencyCell reads a currency cell; display symbols and thousands
// separators are stripped, anything unparseable collapses to zero.
func ParseCurrencyCell(raw string) decimal.Decimal {
	cleaned := strings.TrimSpace(currencyCleaner.Replace(raw))
	if cleaned == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// FormatCurrency renders a balance as ₹ with Indian-system digit grouping.
// Display-only; stored values are never mutated by formatting.
func FormatCurrency(value decimal.Decimal) string {
	s := value.Abs().String()
	intPart, fracPart, _ := strings.Cut(s, ".")

	grouped := groupIndianDigits(intPart)
	var b strings.Builder
	b.WriteString("₹")
	if value.IsNegative() {
		b.WriteString("-")
	}
	b.WriteString(grouped)
	if fracPart != "" {
		b.WriteString(".")
		b.WriteString(fracPart)
	}
	return b.String()
}

// Indian grouping: the last three digits, then groups of two (12,50,000).
func groupIndianDigits(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	head := digits[:n-3]
	tail := digits[n-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	groups = append(groups, tail)
	return strings.Join(groups, ",")
}
