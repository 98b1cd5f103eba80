package assign

import (
	"math/rand"
	"testing"

	"github.com/ppiankov/grantab/internal/model"
)

func TestApply_PartitionsEveryRecordOnce(t *testing.T) {
	records := make([]model.Record, 200)
	assigner := New(rand.New(rand.NewSource(42)))
	assigner.Apply(records)

	valid := map[model.Cohort]bool{}
	for _, c := range model.Cohorts {
		valid[c] = true
	}

	for i, r := range records {
		if !valid[r.Cohort] {
			t.Fatalf("Record %d has invalid cohort %q", i, r.Cohort)
		}
	}

	counts := Counts(records)
	total := 0
	for _, n := range counts {
		total += n
	}
	if total != len(records) {
		t.Errorf("Cohort counts sum to %d, expected %d", total, len(records))
	}
}

func TestApply_RoughlyUniform(t *testing.T) {
	records := make([]model.Record, 10000)
	assigner := New(rand.New(rand.NewSource(42)))
	assigner.Apply(records)

	counts := Counts(records)
	for _, c := range model.Cohorts {
		n := counts[c]
		// Expect ~2500 per arm; allow generous slack
		if n < 2200 || n > 2800 {
			t.Errorf("Cohort %s has %d records, expected near 2500", c, n)
		}
	}
}

func TestApply_Deterministic(t *testing.T) {
	a := make([]model.Record, 50)
	b := make([]model.Record, 50)

	New(rand.New(rand.NewSource(7))).Apply(a)
	New(rand.New(rand.NewSource(7))).Apply(b)

	for i := range a {
		if a[i].Cohort != b[i].Cohort {
			t.Fatalf("Record %d differs across identical seeds: %s vs %s", i, a[i].Cohort, b[i].Cohort)
		}
	}
}
