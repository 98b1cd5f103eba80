package llm

import (
	"context"
	"fmt"

	"github.com/ppiankov/grantab/internal/model"
)

// Summarizer generates optional LLM narratives for experiment reports.
// It runs after all statistics are final and degrades gracefully: a missing
// or failing provider produces warnings, never a failed run.
type Summarizer struct {
	provider Provider
	config   Config
}

// NewSummarizer creates a summarizer from configuration. An empty provider
// name yields a disabled summarizer, not an error.
func NewSummarizer(config Config) (*Summarizer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, fmt.Errorf("create LLM provider: %w", err)
	}

	return &Summarizer{
		provider: provider,
		config:   config,
	}, nil
}

// IsEnabled reports whether a provider is configured
func (s *Summarizer) IsEnabled() bool {
	return s.provider != nil
}

// ProviderName returns the configured provider's name, or "" when disabled
func (s *Summarizer) ProviderName() string {
	if s.provider == nil {
		return ""
	}
	return s.provider.Name()
}

// GenerateSummary produces a narrative for the report. Errors from the
// provider are recorded as warnings on the summary rather than returned,
// so a flaky LLM never sinks an otherwise complete run.
func (s *Summarizer) GenerateSummary(ctx context.Context, report model.Report) (*model.LLMSummary, error) {
	if s.provider == nil {
		return nil, nil
	}

	if !s.provider.IsAvailable(ctx) {
		return &model.LLMSummary{
			Enabled:  false,
			Provider: s.provider.Name(),
			Warnings: []string{fmt.Sprintf("LLM provider %s is not available", s.provider.Name())},
		}, nil
	}

	resp, err := s.provider.Summarize(ctx, SummarizeRequest{
		Report:    report,
		Model:     s.config.Model,
		MaxTokens: s.config.MaxTokens,
	})
	if err != nil {
		return &model.LLMSummary{
			Enabled:  true,
			Provider: s.provider.Name(),
			Model:    s.config.Model,
			Warnings: []string{fmt.Sprintf("summary generation failed: %v", err)},
		}, nil
	}

	return &model.LLMSummary{
		Enabled:   true,
		Provider:  s.provider.Name(),
		Model:     resp.Model,
		SummaryMD: resp.Summary,
		Warnings:  []string{fmt.Sprintf("Tokens used: %d", resp.TokensUsed)},
	}, nil
}

// RenderSeparateMarkdown renders an LLM summary as a standalone Markdown
// document, clearly labeled as generated content.
func RenderSeparateMarkdown(summary *model.LLMSummary) string {
	if summary == nil || !summary.Enabled {
		return ""
	}

	md := "# LLM Summary\n\n"
	md += "> **GENERATED CONTENT** - this narrative was produced by a language model.\n"
	md += "> All statistics in the main report were determined independently of it.\n\n"
	md += fmt.Sprintf("- **Provider**: %s\n", summary.Provider)
	md += fmt.Sprintf("- **Model**: %s\n\n", summary.Model)

	if summary.SummaryMD == "" {
		md += "No summary generated.\n"
	} else {
		md += summary.SummaryMD + "\n"
	}

	if len(summary.Warnings) > 0 {
		md += "\n## Notes\n\n"
		for _, warning := range summary.Warnings {
			md += fmt.Sprintf("- %s\n", warning)
		}
	}

	return md
}
