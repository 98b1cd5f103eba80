// Package stats implements the statistical machinery of the experiment:
// a two-sample proportion test backed by a chi-square independence test,
// the two-proportion sample-size formula, and descriptive summaries.
package stats

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/ppiankov/grantab/internal/model"
)

var (
	// ErrInsufficientSample is returned when a group has no observations
	ErrInsufficientSample = errors.New("insufficient sample")

	// ErrInvalidProportion is returned for rates outside [0, 1]
	ErrInvalidProportion = errors.New("proportion outside [0,1]")

	// ErrZeroEffect is returned when baseline and target rates coincide
	ErrZeroEffect = errors.New("baseline and target rates are equal")
)

// chiSquared1 is the reference distribution for a 2x2 contingency test
var chiSquared1 = distuv.ChiSquared{K: 1}

// ProportionTest decides whether the success rates of two independent boolean
// samples are statistically distinguishable. It builds a 2x2 contingency
// table, runs a chi-square independence test with Yates continuity correction
// (matching scipy's chi2_contingency defaults), and attaches a 95% confidence
// interval for the rate difference using the pooled standard error.
//
// Either sample being empty is an error, never a NaN result.
func ProportionTest(control, treatment []bool, alpha float64) (*model.TestResult, error) {
	n1, n2 := len(control), len(treatment)
	if n1 == 0 || n2 == 0 {
		return nil, fmt.Errorf("control n=%d, treatment n=%d: %w", n1, n2, ErrInsufficientSample)
	}
	if alpha <= 0 || alpha >= 1 {
		return nil, fmt.Errorf("alpha=%g: must be in (0,1)", alpha)
	}

	k1 := countTrue(control)
	k2 := countTrue(treatment)
	p1 := float64(k1) / float64(n1)
	p2 := float64(k2) / float64(n2)

	chi2, lowCounts := chiSquare2x2(k1, n1-k1, k2, n2-k2)
	pValue := chiSquared1.Survival(chi2)

	effect := p2 - p1
	se := math.Sqrt(p1*(1-p1)/float64(n1) + p2*(1-p2)/float64(n2))
	margin := 1.96 * se

	return &model.TestResult{
		ControlN:          n1,
		TreatmentN:        n2,
		ControlRate:       p1,
		TreatmentRate:     p2,
		EffectSize:        effect,
		ChiSquare:         chi2,
		PValue:            pValue,
		Significant:       pValue < alpha,
		CILower:           effect - margin,
		CIUpper:           effect + margin,
		LowExpectedCounts: lowCounts,
	}, nil
}

// chiSquare2x2 computes the Yates-corrected chi-square statistic for the table
//
//	[a b]   (control:   successes, failures)
//	[c d]   (treatment: successes, failures)
//
// The second return value reports whether any expected cell count is below 5,
// where the chi-square approximation is unreliable.
func chiSquare2x2(a, b, c, d int) (float64, bool) {
	af, bf, cf, df := float64(a), float64(b), float64(c), float64(d)
	n := af + bf + cf + df
	r1, r2 := af+bf, cf+df
	c1, c2 := af+cf, bf+df

	// A zero marginal means one category never occurs; no association is
	// measurable and the statistic is defined as zero.
	if c1 == 0 || c2 == 0 {
		return 0, true
	}

	minExpected := math.Min(
		math.Min(r1*c1, r1*c2),
		math.Min(r2*c1, r2*c2),
	) / n

	diff := math.Abs(af*df-bf*cf) - n/2 // Yates continuity correction
	if diff < 0 {
		diff = 0
	}

	chi2 := n * diff * diff / (r1 * r2 * c1 * c2)
	return chi2, minExpected < 5
}

func countTrue(sample []bool) int {
	k := 0
	for _, v := range sample {
		if v {
			k++
		}
	}
	return k
}
