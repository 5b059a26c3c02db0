package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNormalizeDateCell(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"already canonical", "2025-01-15", "2025-01-15"},
		{"canonical with padding", " 2025-01-15 ", "2025-01-15"},
		{"serial first day", "1", "1900-01-01"},
		{"serial before leap bug", "59", "1900-02-28"},
		{"serial fictitious leap day", "60", "1900-02-28"},
		{"serial after leap bug", "61", "1900-03-01"},
		{"serial modern date", "45658", "2025-01-01"},
		{"serial with time fraction", "45658.5", "2025-01-01"},
		{"us style", "01/15/2025", "2025-01-15"},
		{"day month name", "15-Jan-2025", "2025-01-15"},
		{"iso timestamp", "2025-01-15T10:30:00", "2025-01-15"},
		{"unparseable passthrough", "pending confirmation", "pending confirmation"},
		{"unparseable trimmed", "  pending  ", "pending"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeDateCell(tt.raw); got != tt.want {
				t.Errorf("NormalizeDateCell(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeDateCellIdempotent(t *testing.T) {
	inputs := []string{"45658", "2025-01-15", "01/15/2025", "not a date", ""}
	for _, raw := range inputs {
		once := NormalizeDateCell(raw)
		twice := NormalizeDateCell(once)
		if once != twice {
			t.Errorf("NormalizeDateCell not idempotent for %q: first %q, second %q", raw, once, twice)
		}
	}
}

func TestParseCurrencyCell(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int64
	}{
		{"plain integer", "1250000", 1250000},
		{"rupee with grouping", "₹12,50,000", 1250000},
		{"western grouping", "1,250,000", 1250000},
		{"negative", "-₹5,000", -5000},
		{"empty", "", 0},
		{"junk", "n/a", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseCurrencyCell(tt.raw)
			if !got.Equal(decimal.NewFromInt(tt.want)) {
				t.Errorf("ParseCurrencyCell(%q) = %s, want %d", tt.raw, got, tt.want)
			}
		})
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name  string
		value decimal.Decimal
		want  string
	}{
		{"zero", decimal.Zero, "₹0"},
		{"three digits", decimal.NewFromInt(500), "₹500"},
		{"four digits", decimal.NewFromInt(1000), "₹1,000"},
		{"lakh", decimal.NewFromInt(125000), "₹1,25,000"},
		{"ten lakh", decimal.NewFromInt(1250000), "₹12,50,000"},
		{"crores", decimal.NewFromInt(123456789), "₹12,34,56,789"},
		{"negative", decimal.NewFromInt(-1000), "₹-1,000"},
		{"fractional", decimal.RequireFromString("1234.5"), "₹1,234.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatCurrency(tt.value); got != tt.want {
				t.Errorf("FormatCurrency(%s) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestCurrencyRoundTrip(t *testing.T) {
	values := []string{"0", "500", "125000", "1250000", "-82000", "1234.56"}
	for _, s := range values {
		value := decimal.RequireFromString(s)
		back := ParseCurrencyCell(FormatCurrency(value))
		if !back.Equal(value) {
			t.Errorf("round trip of %s via %q gave %s", value, FormatCurrency(value), back)
		}
	}
}
