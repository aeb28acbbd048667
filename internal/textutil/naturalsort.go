package textutil

import (
	"sort"
	"strings"
)

// NaturalLess reports whether a sorts before b under numeric-aware ordering.
// Both strings are split into alternating digit and non-digit runs; digit
// runs compare by numeric value, other runs compare case-insensitively.
func NaturalLess(a, b string) bool {
	return naturalCompare(a, b) < 0
}

// SortNatural sorts the slice in place using NaturalLess.
func SortNatural(values []string) {
	sort.Slice(values, func(i, j int) bool {
		return NaturalLess(values[i], values[j])
	})
}

func naturalCompare(a, b string) int {
	runsA := splitRuns(a)
	runsB := splitRuns(b)
	for i := 0; i < len(runsA) && i < len(runsB); i++ {
		ra, rb := runsA[i], runsB[i]
		if ra.numeric && rb.numeric {
			if cmp := compareNumericRuns(ra.text, rb.text); cmp != 0 {
				return cmp
			}
			continue
		}
		la := strings.ToLower(ra.text)
		lb := strings.ToLower(rb.text)
		if la != lb {
			if la < lb {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(runsA) < len(runsB):
		return -1
	case len(runsA) > len(runsB):
		return 1
	}
	return 0
}

type run struct {
	text    string
	numeric bool
}

func splitRuns(value string) []run {
	var runs []run
	start := 0
	var inDigits bool
	for i, r := range value {
		digit := r >= '0' && r <= '9'
		if i == 0 {
			inDigits = digit
			continue
		}
		if digit != inDigits {
			runs = append(runs, run{text: value[start:i], numeric: inDigits})
			start = i
			inDigits = digit
		}
	}
	if start < len(value) {
		runs = append(runs, run{text: value[start:], numeric: inDigits})
	}
	return runs
}

// compareNumericRuns compares two digit runs by value without converting to
// an integer type, so arbitrarily long runs never overflow.
func compareNumericRuns(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	if a != b {
		if a < b {
			return -1
		}
		return 1
	}
	return 0
}
