package format

import "testing"

func TestCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{"Zero", 0, "$0.00"},
		{"Small", 12.5, "$12.50"},
		{"Thousands", 1234.56, "$1,234.56"},
		{"Millions", 4200000, "$4,200,000.00"},
		{"Negative", -1234.56, "-$1,234.56"},
		{"Rounds half cent", 0.005, "$0.01"},
		{"Negative rounding to zero", -0.001, "$0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Currency(tt.amount); got != tt.expected {
				t.Errorf("Currency(%v) = %q, expected %q", tt.amount, got, tt.expected)
			}
		})
	}
}

func TestNumericCurrency(t *testing.T) {
	if got := NumericCurrency(-9876543.219); got != "-9,876,543.22" {
		t.Errorf("NumericCurrency() = %q", got)
	}
	if got := NumericCurrency(100); got != "100.00" {
		t.Errorf("NumericCurrency() = %q", got)
	}
}

func TestCompact(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{"Millions", 4_200_000, "$4.2M"},
		{"Thousands", 847_300, "$847.3K"},
		{"Billions", 1_500_000_000, "$1.5B"},
		{"Under a thousand", 950.4, "$950"},
		{"Zero", 0, "$0"},
		{"Negative millions", -2_150_000, "-$2.2M"},
		{"Promotes rounded thousands", 999_960, "$1.0M"},
		{"Exact million", 1_000_000, "$1.0M"},
		{"Rounds up to a thousand", 999.6, "$1.0K"},
		{"Negative rounds up to a thousand", -999.6, "-$1.0K"},
		{"Stays under a thousand", 999.4, "$999"},
		{"Rounds up to a million", 999_999.6, "$1.0M"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compact(tt.amount); got != tt.expected {
				t.Errorf("Compact(%v) = %q, expected %q", tt.amount, got, tt.expected)
			}
		})
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		fraction float64
		expected string
	}{
		{0.125, "12.5%"},
		{0, "0.0%"},
		{0.0004, "0.0%"},
		{-0.031, "-3.1%"},
		{0.6, "60.0%"},
	}

	for _, tt := range tests {
		if got := Percent(tt.fraction); got != tt.expected {
			t.Errorf("Percent(%v) = %q, expected %q", tt.fraction, got, tt.expected)
		}
	}
}

func TestCents(t *testing.T) {
	tests := []struct {
		amount   float64
		expected string
	}{
		{1200000, "1200000.00"},
		{1234.567, "1234.57"},
		{-750000, "-750000.00"},
		{-0.001, "0.00"},
		{0, "0.00"},
	}

	for _, tt := range tests {
		if got := Cents(tt.amount); got != tt.expected {
			t.Errorf("Cents(%v) = %q, expected %q", tt.amount, got, tt.expected)
		}
	}
}
