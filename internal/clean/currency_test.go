package clean

import (
	"testing"
)

// TestNormalizePrice tests currency marker conversion
func TestNormalizePrice(t *testing.T) {
	rates := DefaultRates()

	tests := []struct {
		name      string
		input     string
		expected  string
		converted bool
		ok        bool
	}{
		{"pounds", "£10.00", "12.7", true, true},
		{"pounds with spaces", "  £51.77 ", "65.75", true, true},
		{"euros", "€10", "11", true, true},
		{"dollars", "$5.50", "5.5", true, true},
		{"unmarked passes through", "51.77", "51.77", false, true},
		{"unmarked integer", "20", "20", false, true},
		{"marked garbage", "£abc", "£abc", false, false},
		{"plain garbage", "not a price", "not a price", false, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, converted, ok := NormalizePrice(test.input, rates)
			if got != test.expected {
				t.Errorf("NormalizePrice(%q) = %q, want %q", test.input, got, test.expected)
			}
			if converted != test.converted {
				t.Errorf("NormalizePrice(%q) converted = %v, want %v", test.input, converted, test.converted)
			}
			if ok != test.ok {
				t.Errorf("NormalizePrice(%q) ok = %v, want %v", test.input, ok, test.ok)
			}
		})
	}
}

// TestNormalizePriceCustomRates tests that a caller-supplied table wins
func TestNormalizePriceCustomRates(t *testing.T) {
	rates := Rates{"¥": 0.007}
	got, converted, ok := NormalizePrice("¥1000", rates)
	if !ok || !converted {
		t.Fatalf("Expected conversion, got ok=%v converted=%v", ok, converted)
	}
	if got != "7" {
		t.Errorf("NormalizePrice(¥1000) = %q, want 7", got)
	}
}

// TestRatesMarkersOrder tests longest-first marker matching order
func TestRatesMarkersOrder(t *testing.T) {
	rates := Rates{"$": 1.0, "US$": 0.5}
	markers := rates.markers()
	if markers[0] != "US$" {
		t.Errorf("Expected compound marker first, got %v", markers)
	}

	got, _, ok := NormalizePrice("US$10", rates)
	if !ok {
		t.Fatal("Expected US$10 to parse")
	}
	if got != "5" {
		t.Errorf("Expected compound marker rate to apply, got %q", got)
	}
}
