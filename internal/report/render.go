package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/ppiankov/grantab/internal/model"
	"github.com/ppiankov/grantab/internal/util"
)

const divider = "═══════════════════════════════════════════════════════════"

// Renderer writes experiment reports to the console and to artifact files
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderSummary prints the full console report
func (r *Renderer) RenderSummary(w io.Writer, report *model.Report) {
	fmt.Fprintf(w, "\n%s\n", divider)
	fmt.Fprintf(w, "  Text Length A/B Test: %s\n", report.SourcePath)
	fmt.Fprintf(w, "%s\n\n", divider)

	fmt.Fprintf(w, "  Proposals:          %s\n", util.FormatCount(int64(report.Dataset.Rows)))
	fmt.Fprintf(w, "  Approval rate:      %s (recorded label)\n", util.FormatPercent(report.Dataset.ApprovalRate))
	fmt.Fprintf(w, "  Mean essay length:  %.0f chars\n", report.Dataset.MeanEssayLength)
	fmt.Fprintf(w, "  Seed:               %d\n\n", report.Seed)

	r.renderArms(w, report.Arms)
	r.renderTests(w, report.Tests)
	r.renderImpact(w, report.Impact)
	r.renderRecommendation(w, report.Recommendation)

	if report.LLM != nil && report.LLM.Enabled {
		fmt.Fprintf(w, "  Narrative (%s/%s):\n\n%s\n\n", report.LLM.Provider, report.LLM.Model, report.LLM.SummaryMD)
		for _, warn := range report.LLM.Warnings {
			fmt.Fprintf(w, "  ⚠ %s\n", warn)
		}
	}

	if r.includeFooter {
		fmt.Fprintf(w, "%s\n", divider)
		fmt.Fprintf(w, "  grantab: simulated experiment, not a causal estimate\n")
		fmt.Fprintf(w, "%s\n\n", divider)
	}
}

func (r *Renderer) renderArms(w io.Writer, arms []model.ArmSummary) {
	fmt.Fprintf(w, "  Test Groups\n")
	fmt.Fprintf(w, "  -----------\n")

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  GROUP\tMIN LENGTH\tPROJECTS\tAPPROVAL\tBELOW MIN\t\n")
	for _, arm := range arms {
		fmt.Fprintf(tw, "  %s (%s)\t%d\t%s\t%s\t%s\t\n",
			arm.Cohort, arm.Name, arm.MinEssayLength,
			util.FormatCount(int64(arm.Count)),
			util.FormatPercent(arm.ApprovalRate),
			util.FormatCount(int64(arm.BelowThreshold)))
	}
	_ = tw.Flush()
	fmt.Fprintln(w)
}

func (r *Renderer) renderTests(w io.Writer, tests []model.TestResult) {
	fmt.Fprintf(w, "  Significance Tests (vs control)\n")
	fmt.Fprintf(w, "  -------------------------------\n")

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  GROUP\tRATE\tEFFECT\tP-VALUE\t95%% CI\tSIGNIFICANT\t\n")
	for _, tr := range tests {
		sig := "no"
		if tr.Significant {
			sig = "yes"
		}
		if tr.LowExpectedCounts {
			sig += " *"
		}
		fmt.Fprintf(tw, "  %s\t%.4f\t%+.4f\t%.6f\t[%+.4f, %+.4f]\t%s\t\n",
			tr.Cohort, tr.TreatmentRate, tr.EffectSize, tr.PValue, tr.CILower, tr.CIUpper, sig)
	}
	_ = tw.Flush()

	for _, tr := range tests {
		if tr.LowExpectedCounts {
			fmt.Fprintf(w, "  * expected cell count < 5, chi-square approximation unreliable\n")
			break
		}
	}
	fmt.Fprintln(w)
}

func (r *Renderer) renderImpact(w io.Writer, impacts []model.ImpactEstimate) {
	fmt.Fprintf(w, "  Business Impact (annualized)\n")
	fmt.Fprintf(w, "  ----------------------------\n")

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  GROUP\tADDITIONAL APPROVED\tFUNDING\tREJECTED\tNET IMPACT\t\n")
	for _, est := range impacts {
		fmt.Fprintf(tw, "  %s\t%.0f\t%s\t%.0f\t%s\t\n",
			est.Cohort, est.AdditionalApproved,
			util.FormatDollars(est.AdditionalFunding),
			est.ProjectsRejected,
			util.FormatDollars(est.NetImpact))
	}
	_ = tw.Flush()
	fmt.Fprintln(w)
}

func (r *Renderer) renderRecommendation(w io.Writer, rec model.Recommendation) {
	fmt.Fprintf(w, "  Recommendation\n")
	fmt.Fprintf(w, "  --------------\n")
	fmt.Fprintf(w, "  Best arm:   %s\n", rec.Best.Name())
	fmt.Fprintf(w, "  Worst arm:  %s\n", rec.Worst.Name())
	for _, note := range rec.Notes {
		fmt.Fprintf(w, "  • %s\n", note)
	}
	fmt.Fprintln(w)
}
