package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// SampleSize returns the minimum per-group sample size for a two-proportion
// z-test to detect the change from baseline rate p1 to target rate p2 at the
// given two-tailed significance level and power.
func SampleSize(p1, p2, alpha, power float64) (int, error) {
	if p1 < 0 || p1 > 1 {
		return 0, fmt.Errorf("baseline rate %g: %w", p1, ErrInvalidProportion)
	}
	if p2 < 0 || p2 > 1 {
		return 0, fmt.Errorf("target rate %g: %w", p2, ErrInvalidProportion)
	}
	if p1 == p2 {
		return 0, fmt.Errorf("baseline %g, target %g: %w", p1, p2, ErrZeroEffect)
	}
	if alpha <= 0 || alpha >= 1 {
		return 0, fmt.Errorf("alpha=%g: must be in (0,1)", alpha)
	}
	if power <= 0 || power >= 1 {
		return 0, fmt.Errorf("power=%g: must be in (0,1)", power)
	}

	zAlpha := stdNormal.Quantile(1 - alpha/2)
	zBeta := stdNormal.Quantile(power)
	pAvg := (p1 + p2) / 2

	num := zAlpha*math.Sqrt(2*pAvg*(1-pAvg)) + zBeta*math.Sqrt(p1*(1-p1)+p2*(1-p2))
	n := 2 * math.Pow(num/(p2-p1), 2)

	return int(math.Ceil(n)), nil
}
