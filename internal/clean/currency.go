package clean

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Rates maps a leading currency marker to its USD conversion multiplier.
type Rates map[string]float64

// DefaultRates returns the built-in conversion table.
func DefaultRates() Rates {
	return Rates{
		"£": 1.27,
		"€": 1.10,
		"$": 1.0,
	}
}

// markers returns the known markers longest-first so a compound marker
// wins over any shorter marker it starts with.
func (r Rates) markers() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}

// NormalizePrice converts a marked price string such as "£10.00" to a
// plain USD amount rounded to cents. Unmarked numeric strings pass
// through untouched on the assumption they are already USD. Anything
// unparsable comes back unchanged with ok=false.
func NormalizePrice(raw string, rates Rates) (normalized string, converted bool, ok bool) {
	s := strings.TrimSpace(raw)
	for _, marker := range rates.markers() {
		if !strings.HasPrefix(s, marker) {
			continue
		}
		rest := strings.TrimSpace(strings.TrimPrefix(s, marker))
		v, err := strconv.ParseFloat(rest, 64)
		if err != nil {
			return raw, false, false
		}
		return formatAmount(round2(v * rates[marker])), true, true
	}
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return raw, false, false
	}
	return s, false, true
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
