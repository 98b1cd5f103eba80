package pipeline

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/ppiankov/grantab/internal/assign"
	"github.com/ppiankov/grantab/internal/dataset"
	"github.com/ppiankov/grantab/internal/impact"
	"github.com/ppiankov/grantab/internal/llm"
	"github.com/ppiankov/grantab/internal/model"
	"github.com/ppiankov/grantab/internal/report"
	"github.com/ppiankov/grantab/internal/simulate"
	"github.com/ppiankov/grantab/internal/stats"
)

// Pipeline orchestrates a complete experiment run: load the dataset, assign
// cohorts, simulate outcomes, test each treatment arm against control, and
// build the report.
type Pipeline struct {
	renderer   *report.Renderer
	summarizer *llm.Summarizer // Optional LLM summarizer (nil if disabled)
	config     *model.Config
}

// NewPipeline creates a new pipeline with the given configuration
func NewPipeline(cfg *model.Config) *Pipeline {
	// Create LLM summarizer if configured
	var summarizer *llm.Summarizer
	if cfg.LLM.Provider != "" {
		s, err := llm.NewSummarizer(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to initialize LLM provider: %v\n", err)
		} else {
			summarizer = s
		}
	}

	return &Pipeline{
		renderer:   report.NewRenderer(cfg.Output.IncludeFooter),
		summarizer: summarizer,
		config:     cfg,
	}
}

// Run executes the experiment over one CSV dataset and returns the report.
// Each run seeds its own PRNG, so repeated runs over the same file are
// identical and batch runs do not interfere with each other.
func (p *Pipeline) Run(ctx context.Context, path string) (*model.Report, error) {
	records, err := dataset.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	exp := p.config.Experiment
	rng := rand.New(rand.NewSource(exp.Seed))

	assign.New(rng).Apply(records)
	simulate.New(rng, exp.Thresholds, exp.DemotionProbability).Apply(records)

	outcomes := simulate.Outcomes(records)
	control := outcomes[model.CohortControl]

	tests := make([]model.TestResult, 0, len(model.TreatmentCohorts))
	impacts := make([]model.ImpactEstimate, 0, len(model.TreatmentCohorts))
	for _, cohort := range model.TreatmentCohorts {
		test, err := stats.ProportionTest(control, outcomes[cohort], exp.Alpha)
		if err != nil {
			return nil, fmt.Errorf("test arm %s: %w", cohort, err)
		}
		test.Cohort = cohort
		tests = append(tests, *test)

		impacts = append(impacts, impact.Estimate(*test, p.config.Impact))
	}

	result := &model.Report{
		SourcePath:     path,
		GeneratedAt:    time.Now().UTC(),
		Seed:           exp.Seed,
		Dataset:        dataset.Summary(records),
		Arms:           p.buildArms(records),
		Tests:          tests,
		Impact:         impacts,
		Recommendation: report.BuildRecommendation(tests, exp.Thresholds),
	}

	// Generate LLM narrative if enabled (after all statistics are final)
	if p.summarizer != nil && p.summarizer.IsEnabled() {
		summary, err := p.summarizer.GenerateSummary(ctx, *result)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: LLM summary generation failed: %v\n", err)
		} else if summary != nil {
			result.LLM = summary
		}
	}

	return result, nil
}

// buildArms summarizes each cohort after assignment and simulation
func (p *Pipeline) buildArms(records []model.Record) []model.ArmSummary {
	byCohort := make(map[model.Cohort]*model.ArmSummary, len(model.Cohorts))
	arms := make([]model.ArmSummary, 0, len(model.Cohorts))
	for _, cohort := range model.Cohorts {
		arms = append(arms, model.ArmSummary{
			Cohort:         cohort,
			Name:           cohort.Name(),
			MinEssayLength: p.config.Experiment.Threshold(cohort),
		})
		byCohort[cohort] = &arms[len(arms)-1]
	}

	for _, rec := range records {
		arm, ok := byCohort[rec.Cohort]
		if !ok {
			continue
		}
		arm.Count++
		if rec.Simulated {
			arm.Approved++
		}
		if rec.EssayLength < arm.MinEssayLength {
			arm.BelowThreshold++
		}
	}

	for i := range arms {
		if arms[i].Count > 0 {
			arms[i].ApprovalRate = float64(arms[i].Approved) / float64(arms[i].Count)
		}
	}
	return arms
}

// RenderReport renders the report to the configured outputs
func (p *Pipeline) RenderReport(rep *model.Report, jsonPath, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(rep, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(rep, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	// Write LLM narrative to its own file alongside the Markdown report
	if rep.LLM != nil && rep.LLM.Enabled && mdPath != "" {
		llmPath := strings.TrimSuffix(mdPath, ".md") + ".llm.md"
		if err := p.renderer.RenderLLMMarkdown(llm.RenderSeparateMarkdown(rep.LLM), llmPath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to write LLM summary: %v\n", err)
		} else if verbose {
			fmt.Printf("✓ Wrote LLM Summary: %s\n", llmPath)
		}
	}

	p.renderer.RenderSummary(os.Stdout, rep)

	return nil
}
