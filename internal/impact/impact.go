// Package impact projects observed rate differences onto a hypothetical
// annual application volume in dollar terms.
package impact

import "github.com/ppiankov/grantab/internal/model"

// Estimate scales an arm's approval-rate difference against control to the
// configured annual proposal volume. A negative effect shows up both as lost
// approvals and as proposals rejected for length, mirroring the published
// analysis's accounting.
func Estimate(test model.TestResult, cfg model.ImpactConfig) model.ImpactEstimate {
	annual := float64(cfg.AnnualProposals)

	additional := test.EffectSize * annual
	funding := additional * cfg.AvgProjectCost

	var rejected float64
	if test.TreatmentRate < test.ControlRate {
		rejected = (test.ControlRate - test.TreatmentRate) * annual
	}

	return model.ImpactEstimate{
		Cohort:             test.Cohort,
		AdditionalApproved: additional,
		AdditionalFunding:  funding,
		ProjectsRejected:   rejected,
		NetImpact:          funding - rejected*cfg.AvgProjectCost,
	}
}
