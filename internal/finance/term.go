package finance

import "fmt"

// StandardTerms are the industry-standard auto loan terms in months.
// Lenders quote rates against these; scraped terms get normalized onto
// the grid before rate matching.
var StandardTerms = []int{36, 48, 60, 72, 84}

// NormalizeTerm maps a loan term to the nearest industry standard.
// Ties prefer the shorter term. Zero maps to the shortest standard;
// negative terms are invalid.
func NormalizeTerm(months int) (int, error) {
	if months == 0 {
		return StandardTerms[0], nil
	}
	if months < 0 {
		return 0, fmt.Errorf("invalid term %d: must be non-negative", months)
	}
	nearest := StandardTerms[0]
	best := abs(months - nearest)
	for _, std := range StandardTerms {
		d := abs(months - std)
		if d < best || (d == best && std < nearest) {
			best = d
			nearest = std
		}
	}
	return nearest, nil
}

// NormalizeTermRange maps both ends of a term range onto the standard
// grid.
func NormalizeTermRange(min, max int) (int, int, error) {
	if min > max {
		return 0, 0, fmt.Errorf("invalid term range: min %d > max %d", min, max)
	}
	lo, err := NormalizeTerm(min)
	if err != nil {
		return 0, 0, err
	}
	hi, err := NormalizeTerm(max)
	if err != nil {
		return 0, 0, err
	}
	return lo, hi, nil
}

// IsStandardTerm reports whether months is already on the grid.
func IsStandardTerm(months int) bool {
	for _, std := range StandardTerms {
		if months == std {
			return true
		}
	}
	return false
}

// TermLabel renders a normalized range for display: "60 Months" for a
// point, "36-60 Months" for a span.
func TermLabel(min, max int) string {
	if min == max {
		return fmt.Sprintf("%d Months", min)
	}
	return fmt.Sprintf("%d-%d Months", min, max)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
