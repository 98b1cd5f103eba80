// Package simulate perturbs recorded approval labels to model the effect of
// minimum essay-length requirements. The effect is entirely synthetic: a
// researcher-chosen probability of demoting too-short approvals, not a
// data-driven causal mechanism.
package simulate

import (
	"math/rand"

	"github.com/ppiankov/grantab/internal/model"
)

// Simulator applies each cohort's length requirement to the approval label.
// An approval whose essay falls short of its cohort's minimum is demoted with
// the configured probability. Rejections are never promoted, and the control
// arm (threshold 0) passes through untouched.
type Simulator struct {
	rng        *rand.Rand
	thresholds map[model.Cohort]int
	demoteProb float64
}

// New creates a simulator with an injected pseudo-random source
func New(rng *rand.Rand, thresholds map[model.Cohort]int, demoteProb float64) *Simulator {
	return &Simulator{
		rng:        rng,
		thresholds: thresholds,
		demoteProb: demoteProb,
	}
}

// Apply fills Record.Simulated for every record in place
func (s *Simulator) Apply(records []model.Record) {
	for i := range records {
		r := &records[i]
		r.Simulated = r.Approved

		minLength := s.thresholds[r.Cohort]
		if minLength == 0 || !r.Approved {
			continue
		}
		if r.EssayLength < minLength && s.rng.Float64() < s.demoteProb {
			r.Simulated = false
		}
	}
}

// Outcomes groups simulated outcomes by cohort
func Outcomes(records []model.Record) map[model.Cohort][]bool {
	outcomes := make(map[model.Cohort][]bool, len(model.Cohorts))
	for _, r := range records {
		outcomes[r.Cohort] = append(outcomes[r.Cohort], r.Simulated)
	}
	return outcomes
}
