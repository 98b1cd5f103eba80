package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ppiankov/grantab/internal/model"
	"github.com/ppiankov/grantab/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	outJSON     string
	outMD       string
	runTimeout  time.Duration
	seed        int64
	alpha       float64
	demoteProb  float64
	noFooter    bool
	llmEnabled  bool
	llmProvider string
	llmModel    string
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <dataset.csv>",
	Short: "Run the text-length experiment over a proposals dataset",
	Long: `Run loads a proposals CSV, assigns each row to one of four cohorts,
simulates approval outcomes under the arm's minimum essay length,
and tests every treatment arm against control:
- Chi-square two-proportion test with Yates continuity correction
- 95% confidence interval for the approval rate difference
- Projected annual funding impact
- A recommendation on which arm, if any, to adopt

Example:
  grantab run train.csv
  grantab run train.csv --json report.json --md report.md
  grantab run train.csv --seed 7 --alpha 0.01
  grantab run train.csv --llm openai --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Output flags
	runCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	runCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	runCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// Experiment flags
	runCmd.Flags().Int64Var(&seed, "seed", 42, "PRNG seed for assignment and simulation")
	runCmd.Flags().Float64Var(&alpha, "alpha", 0.05, "significance level")
	runCmd.Flags().Float64Var(&demoteProb, "demote-prob", 0.3, "probability a too-short approval is demoted")
	runCmd.Flags().DurationVar(&runTimeout, "timeout", 2*time.Minute, "overall run timeout")

	// LLM flags
	runCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM narrative generation")
	runCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	runCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runRun(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Dataset: %s\n", path)
		fmt.Fprintf(os.Stderr, "Seed: %d\n", seed)
		fmt.Fprintf(os.Stderr, "Alpha: %g\n", alpha)
		fmt.Fprintln(os.Stderr)
	}

	// Build configuration from flags
	cfg := model.DefaultConfig()
	cfg.Experiment.Seed = seed
	cfg.Experiment.Alpha = alpha
	cfg.Experiment.DemotionProbability = demoteProb
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	if llmEnabled {
		if err := configureLLM(cfg); err != nil {
			return err
		}
	}

	p := pipeline.NewPipeline(cfg)

	report, err := p.Run(ctx, path)
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Loaded %d proposals\n", report.Dataset.Rows)
		for _, test := range report.Tests {
			fmt.Fprintf(os.Stderr, "✓ Tested arm %s: p=%.4f\n", test.Cohort, test.PValue)
		}
		if report.LLM != nil && report.LLM.Enabled {
			fmt.Fprintf(os.Stderr, "✓ Generated LLM narrative using %s/%s\n", report.LLM.Provider, report.LLM.Model)
		}
		fmt.Fprintln(os.Stderr)
	}

	if err := p.RenderReport(report, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}

// configureLLM fills cfg.LLM from the flags and environment. API keys come
// from the environment only; they are never written to disk.
func configureLLM(cfg *model.Config) error {
	cfg.LLM.Provider = llmProvider
	cfg.LLM.Model = llmModel

	switch llmProvider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	default:
		return fmt.Errorf("unknown LLM provider: %s (supported: openai, ollama)", llmProvider)
	}

	return nil
}
