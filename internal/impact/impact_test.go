package impact

import (
	"math"
	"testing"

	"github.com/ppiankov/grantab/internal/model"
)

var testConfig = model.ImpactConfig{
	AnnualProposals: 100_000,
	AvgProjectCost:  298.12,
}

func TestEstimate_PositiveEffect(t *testing.T) {
	test := model.TestResult{
		Cohort:        model.CohortTreatment1,
		ControlRate:   0.85,
		TreatmentRate: 0.88,
		EffectSize:    0.03,
	}

	est := Estimate(test, testConfig)

	if math.Abs(est.AdditionalApproved-3000) > 1e-6 {
		t.Errorf("Expected 3000 additional approvals, got %.2f", est.AdditionalApproved)
	}
	if math.Abs(est.AdditionalFunding-3000*298.12) > 1e-6 {
		t.Errorf("Expected funding %.2f, got %.2f", 3000*298.12, est.AdditionalFunding)
	}
	if est.ProjectsRejected != 0 {
		t.Errorf("Expected no rejections for a positive effect, got %.2f", est.ProjectsRejected)
	}
	if est.NetImpact != est.AdditionalFunding {
		t.Errorf("Net impact %.2f should equal funding %.2f", est.NetImpact, est.AdditionalFunding)
	}
}

func TestEstimate_NegativeEffect(t *testing.T) {
	test := model.TestResult{
		Cohort:        model.CohortTreatment3,
		ControlRate:   0.85,
		TreatmentRate: 0.83,
		EffectSize:    -0.02,
	}

	est := Estimate(test, testConfig)

	if math.Abs(est.AdditionalApproved+2000) > 1e-6 {
		t.Errorf("Expected -2000 additional approvals, got %.2f", est.AdditionalApproved)
	}
	if math.Abs(est.ProjectsRejected-2000) > 1e-6 {
		t.Errorf("Expected 2000 rejections, got %.2f", est.ProjectsRejected)
	}
	wantNet := est.AdditionalFunding - 2000*298.12
	if math.Abs(est.NetImpact-wantNet) > 1e-6 {
		t.Errorf("Expected net impact %.2f, got %.2f", wantNet, est.NetImpact)
	}
	if est.NetImpact >= 0 {
		t.Errorf("Expected negative net impact, got %.2f", est.NetImpact)
	}
}

func TestEstimate_ZeroEffect(t *testing.T) {
	test := model.TestResult{ControlRate: 0.85, TreatmentRate: 0.85}
	est := Estimate(test, testConfig)
	if est.AdditionalApproved != 0 || est.AdditionalFunding != 0 || est.NetImpact != 0 {
		t.Errorf("Expected zero impact, got %+v", est)
	}
}
