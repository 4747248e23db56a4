package services

import "testing"

func TestFormatNPR(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		expect string
	}{
		{"zero", 0, "Rs. 0.00"},
		{"small amount", 123.45, "Rs. 123.45"},
		{"thousands", 1234.5, "Rs. 1,234.50"},
		{"lakhs", 123456.78, "Rs. 1,23,456.78"},
		{"crores", 12345678.9, "Rs. 1,23,45,678.90"},
		{"negative", -1234.5, "-Rs. 1,234.50"},
		{"exact thousand", 1000, "Rs. 1,000.00"},
		{"rounding", 99.999, "Rs. 100.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatNPR(tt.amount); got != tt.expect {
				t.Errorf("FormatNPR(%v) = %q, want %q", tt.amount, got, tt.expect)
			}
		})
	}
}

func TestFormatQty(t *testing.T) {
	tests := []struct {
		name   string
		val    float64
		expect string
	}{
		{"whole number", 10, "10"},
		{"zero", 0, "0"},
		{"three decimals", 6.655, "6.655"},
		{"trailing decimals", 2.5, "2.500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatQty(tt.val); got != tt.expect {
				t.Errorf("FormatQty(%v) = %q, want %q", tt.val, got, tt.expect)
			}
		})
	}
}
