package view

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestMoney(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"0", "$0.00"},
		{"9.99", "$9.99"},
		{"19.98", "$19.98"},
		{"1250.5", "$1250.50"},
		{"-3.2", "$-3.20"},
	}

	for _, tt := range tests {
		d := decimal.RequireFromString(tt.in)
		if got := Money(d); got != tt.expected {
			t.Errorf("Money(%s) = %q, want %q", tt.in, got, tt.expected)
		}
	}
}

func TestLineSubtotal(t *testing.T) {
	tests := []struct {
		qty      int
		price    string
		expected string
	}{
		{2, "9.99", "$19.98"},
		{1, "0.10", "$0.10"},
		{3, "0.10", "$0.30"}, // exact under decimal arithmetic
		{0, "49.90", "$0.00"},
	}

	for _, tt := range tests {
		got := Money(LineSubtotal(tt.qty, decimal.RequireFromString(tt.price)))
		if got != tt.expected {
			t.Errorf("LineSubtotal(%d, %s) = %q, want %q", tt.qty, tt.price, got, tt.expected)
		}
	}
}
