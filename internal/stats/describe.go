package stats

import (
	"math"
	"sort"
)

// LengthSummary summarizes the distribution of one text-length column
type LengthSummary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
}

// Summarize computes count, mean, median, and sample standard deviation
// over a set of character counts. An empty input yields a zero summary.
func Summarize(values []int) LengthSummary {
	n := len(values)
	if n == 0 {
		return LengthSummary{}
	}

	sum := 0
	for _, v := range values {
		sum += v
	}
	mean := float64(sum) / float64(n)

	sorted := make([]int, n)
	copy(sorted, values)
	sort.Ints(sorted)
	var median float64
	if n%2 == 1 {
		median = float64(sorted[n/2])
	} else {
		median = float64(sorted[n/2-1]+sorted[n/2]) / 2
	}

	var std float64
	if n > 1 {
		var ss float64
		for _, v := range values {
			d := float64(v) - mean
			ss += d * d
		}
		std = math.Sqrt(ss / float64(n-1))
	}

	return LengthSummary{Count: n, Mean: mean, Median: median, StdDev: std}
}

// Rate returns the fraction of true values in a boolean sample (0 for empty)
func Rate(sample []bool) float64 {
	if len(sample) == 0 {
		return 0
	}
	return float64(countTrue(sample)) / float64(len(sample))
}
