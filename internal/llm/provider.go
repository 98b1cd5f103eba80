package llm

import (
	"context"
	"fmt"

	"github.com/ppiankov/grantab/internal/model"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Summarize generates a narrative summary of an experiment report
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest contains the input for LLM summarization
type SummarizeRequest struct {
	// Report is the finished experiment report to narrate. All statistics
	// are final before the LLM sees them; the narrative never feeds back.
	Report model.Report

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// SummarizeResponse contains the LLM's summary output
type SummarizeResponse struct {
	// Summary is the generated narrative text
	Summary string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Model:     "",
		Timeout:   30,
		MaxTokens: 1000,
	}
}

// BuildPrompt constructs the default prompt for narrating an experiment
// report. Every number the narrative may use is baked into the prompt, so
// the model has nothing to invent.
func BuildPrompt(report model.Report) string {
	prompt := fmt.Sprintf(`You are summarizing a simulated A/B test over grant proposal data. The outcomes below come from a synthetic demotion model, NOT from a real experiment, and the summary must say so.

RULES:
1. Use ONLY the numbers listed below. Do not invent or recompute any figure.
2. Describe effects as "simulated" or "synthetic" - never as measured causal effects.
3. If a comparison is not statistically significant, say so plainly.

Experiment:
- Dataset: %d proposals, %.1f%% baseline approval rate
- Seed: %d (deterministic run)

Arms:
`, report.Dataset.Rows, report.Dataset.ApprovalRate*100, report.Seed)

	for _, arm := range report.Arms {
		prompt += fmt.Sprintf("- %s: %d proposals, %.1f%% approval (minimum essay length %d)\n",
			arm.Name, arm.Count, arm.ApprovalRate*100, arm.MinEssayLength)
	}

	prompt += "\nComparisons vs control:\n"
	for _, test := range report.Tests {
		verdict := "not significant"
		if test.Significant {
			verdict = "significant"
		}
		prompt += fmt.Sprintf("- %s: effect %+.3f, p=%.4f (%s)\n",
			test.Cohort.Name(), test.EffectSize, test.PValue, verdict)
	}

	prompt += "\nProvide a 3-4 sentence summary of what the simulation shows and what it does not."

	return prompt
}
