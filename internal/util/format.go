package util

import (
	"fmt"
	"math"
	"strings"
)

// FormatCount formats a count with thousands separators: 100000 -> "100,000"
func FormatCount(n int64) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}

	s := fmt.Sprintf("%d", n)
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	return sign + strings.Join(parts, ",")
}

// FormatDollars formats a dollar amount with separators and two decimals:
// 1234.5 -> "$1,234.50", -20 -> "-$20.00"
func FormatDollars(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	whole := int64(math.Floor(v))
	cents := int64(math.Round((v - float64(whole)) * 100))
	if cents == 100 {
		whole++
		cents = 0
	}
	return fmt.Sprintf("%s$%s.%02d", sign, FormatCount(whole), cents)
}

// FormatPercent renders a rate in [0,1] as a percentage with two decimals
func FormatPercent(rate float64) string {
	return fmt.Sprintf("%.2f%%", rate*100)
}
