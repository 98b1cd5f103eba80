// Package assign partitions dataset records into the experiment's cohorts.
package assign

import (
	"math/rand"

	"github.com/ppiankov/grantab/internal/model"
)

// Assigner randomly partitions records into cohorts. The pseudo-random source
// is injected so runs are reproducible from an explicit seed.
type Assigner struct {
	rng     *rand.Rand
	cohorts []model.Cohort
}

// New creates an assigner over the standard cohorts
func New(rng *rand.Rand) *Assigner {
	return &Assigner{
		rng:     rng,
		cohorts: model.Cohorts,
	}
}

// Apply assigns every record to exactly one cohort, uniformly at random
func (a *Assigner) Apply(records []model.Record) {
	for i := range records {
		records[i].Cohort = a.cohorts[a.rng.Intn(len(a.cohorts))]
	}
}

// Counts returns the number of records per cohort
func Counts(records []model.Record) map[model.Cohort]int {
	counts := make(map[model.Cohort]int, len(model.Cohorts))
	for _, r := range records {
		counts[r.Cohort]++
	}
	return counts
}
