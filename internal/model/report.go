package model

import "time"

// Report represents one complete experiment run over a dataset
type Report struct {
	SourcePath  string    `json:"source_path"`
	GeneratedAt time.Time `json:"generated_at"`
	Seed        int64     `json:"seed"` // PRNG seed used for assignment and simulation

	Dataset DatasetSummary `json:"dataset"`

	Arms   []ArmSummary     `json:"arms"`
	Tests  []TestResult     `json:"tests"`  // one per treatment arm, vs control
	Impact []ImpactEstimate `json:"impact"` // annualized funding estimates

	Recommendation Recommendation `json:"recommendation"`

	// Optional LLM narrative (separate, never affects the statistics)
	LLM *LLMSummary `json:"llm,omitempty"`
}

// DatasetSummary holds descriptive statistics of the loaded dataset
type DatasetSummary struct {
	Rows            int     `json:"rows"`
	ApprovalRate    float64 `json:"approval_rate"` // observed label, before simulation
	MeanEssayLength float64 `json:"mean_essay_length"`
}

// LLMSummary contains an optional LLM-generated narrative of the report.
// It is generated after all statistics are final and never feeds back into them.
type LLMSummary struct {
	Enabled   bool     `json:"enabled"`
	Provider  string   `json:"provider,omitempty"` // openai, ollama
	Model     string   `json:"model,omitempty"`
	SummaryMD string   `json:"summary_md,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
}
