// Package report turns an experiment run into recommendations and rendered
// console, JSON, and Markdown output.
package report

import (
	"fmt"

	"github.com/ppiankov/grantab/internal/model"
)

// BuildRecommendation ranks the treatment arms by simulated approval rate and
// states whether the best one cleared the significance bar.
func BuildRecommendation(tests []model.TestResult, thresholds map[model.Cohort]int) model.Recommendation {
	if len(tests) == 0 {
		return model.Recommendation{}
	}

	best, worst := tests[0], tests[0]
	for _, tr := range tests[1:] {
		if tr.TreatmentRate > best.TreatmentRate {
			best = tr
		}
		if tr.TreatmentRate < worst.TreatmentRate {
			worst = tr
		}
	}

	rec := model.Recommendation{
		Best:        best.Cohort,
		Worst:       worst.Cohort,
		Significant: best.Significant,
	}

	if best.Significant {
		rec.Notes = append(rec.Notes, fmt.Sprintf(
			"Adopt the %s arm (%d char minimum): %+.2f%% approval rate vs control (p=%.4f)",
			best.Cohort.Name(), thresholds[best.Cohort], best.EffectSize*100, best.PValue))
	} else {
		rec.Notes = append(rec.Notes,
			"No treatment arm shows a statistically significant improvement; consider a longer test or larger samples")
	}

	for _, tr := range tests {
		if tr.LowExpectedCounts {
			rec.Notes = append(rec.Notes, fmt.Sprintf(
				"The %s arm has expected cell counts below 5; its chi-square approximation is unreliable",
				tr.Cohort.Name()))
		}
	}

	rec.Notes = append(rec.Notes,
		"The measured effect is synthetic: labels were perturbed with a researcher-chosen demotion probability, not observed under a real policy change")

	return rec
}
