package report

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/grantab/internal/model"
	"github.com/ppiankov/grantab/internal/util"
)

// RenderJSON writes the report as indented JSON
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write JSON report: %w", err)
	}
	return nil
}

// RenderLLMMarkdown writes a pre-rendered LLM narrative to its own file
func (r *Renderer) RenderLLMMarkdown(markdown, path string) error {
	if err := os.WriteFile(path, []byte(markdown), 0644); err != nil {
		return fmt.Errorf("write LLM summary: %w", err)
	}
	return nil
}

// RenderMarkdown writes the report as a Markdown document
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Text Length A/B Test\n\n")
	fmt.Fprintf(&b, "- Source: `%s`\n", report.SourcePath)
	fmt.Fprintf(&b, "- Generated: %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&b, "- Seed: %d\n", report.Seed)
	fmt.Fprintf(&b, "- Proposals: %s, approval rate %s\n\n",
		util.FormatCount(int64(report.Dataset.Rows)), util.FormatPercent(report.Dataset.ApprovalRate))

	fmt.Fprintf(&b, "## Test Groups\n\n")
	fmt.Fprintf(&b, "| Group | Min Length | Projects | Approval | Below Min |\n")
	fmt.Fprintf(&b, "|-------|-----------:|---------:|---------:|----------:|\n")
	for _, arm := range report.Arms {
		fmt.Fprintf(&b, "| %s (%s) | %d | %s | %s | %s |\n",
			arm.Cohort, arm.Name, arm.MinEssayLength,
			util.FormatCount(int64(arm.Count)),
			util.FormatPercent(arm.ApprovalRate),
			util.FormatCount(int64(arm.BelowThreshold)))
	}

	fmt.Fprintf(&b, "\n## Significance Tests\n\n")
	fmt.Fprintf(&b, "| Group | Rate | Effect | P-Value | 95%% CI | Significant |\n")
	fmt.Fprintf(&b, "|-------|-----:|-------:|--------:|--------|:-----------:|\n")
	for _, tr := range report.Tests {
		sig := "no"
		if tr.Significant {
			sig = "**yes**"
		}
		fmt.Fprintf(&b, "| %s | %.4f | %+.4f | %.6f | [%+.4f, %+.4f] | %s |\n",
			tr.Cohort, tr.TreatmentRate, tr.EffectSize, tr.PValue, tr.CILower, tr.CIUpper, sig)
	}

	fmt.Fprintf(&b, "\n## Business Impact\n\n")
	fmt.Fprintf(&b, "| Group | Additional Approved | Funding | Rejected | Net Impact |\n")
	fmt.Fprintf(&b, "|-------|--------------------:|--------:|---------:|-----------:|\n")
	for _, est := range report.Impact {
		fmt.Fprintf(&b, "| %s | %.0f | %s | %.0f | %s |\n",
			est.Cohort, est.AdditionalApproved,
			util.FormatDollars(est.AdditionalFunding),
			est.ProjectsRejected,
			util.FormatDollars(est.NetImpact))
	}

	fmt.Fprintf(&b, "\n## Recommendation\n\n")
	for _, note := range report.Recommendation.Notes {
		fmt.Fprintf(&b, "- %s\n", note)
	}

	if report.LLM != nil && report.LLM.Enabled {
		fmt.Fprintf(&b, "\n## Narrative (%s/%s)\n\n%s\n", report.LLM.Provider, report.LLM.Model, report.LLM.SummaryMD)
	}

	if r.includeFooter {
		fmt.Fprintf(&b, "\n---\n*Generated by grantab. The treatment effect is simulated, not causal.*\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write Markdown report: %w", err)
	}
	return nil
}
