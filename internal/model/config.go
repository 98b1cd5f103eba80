package model

import "time"

// Config holds the complete grantab configuration
type Config struct {
	HTTP         HTTPConfig         `yaml:"http"`
	Cache        CacheConfig        `yaml:"cache"`
	RateLimiting RateLimitingConfig `yaml:"rate_limiting"`
	Experiment   ExperimentConfig   `yaml:"experiment"`
	Impact       ImpactConfig       `yaml:"impact"`
	Concurrency  ConcurrencyConfig  `yaml:"concurrency"`
	Output       OutputConfig       `yaml:"output"`
	LLM          LLMConfig          `yaml:"llm"`
}

// HTTPConfig controls dataset downloads
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout"`
	UserAgent     string        `yaml:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes"`
	InsecureTLS   bool          `yaml:"insecure_tls"`
	RespectRobots bool          `yaml:"respect_robots"`
	HTTPProxy     string        `yaml:"http_proxy,omitempty"`
	HTTPSProxy    string        `yaml:"https_proxy,omitempty"`
	NoProxy       string        `yaml:"no_proxy,omitempty"`
}

// CacheConfig controls the download cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// RateLimitingConfig controls per-host request pacing
type RateLimitingConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size"`
}

// ExperimentConfig controls cohort assignment, simulation, and testing
type ExperimentConfig struct {
	Seed                int64   `yaml:"seed"`
	DemotionProbability float64 `yaml:"demotion_probability"` // chance a too-short approval is demoted
	Alpha               float64 `yaml:"alpha"`
	Power               float64 `yaml:"power"`

	// Minimum essay length per cohort; 0 marks the control arm
	Thresholds map[Cohort]int `yaml:"thresholds"`
}

// Threshold returns the minimum essay length for a cohort (0 if unknown)
func (c ExperimentConfig) Threshold(cohort Cohort) int {
	return c.Thresholds[cohort]
}

// ImpactConfig controls the business impact projection
type ImpactConfig struct {
	AnnualProposals int64   `yaml:"annual_proposals"`
	AvgProjectCost  float64 `yaml:"avg_project_cost"`
}

// ConcurrencyConfig controls batch processing
type ConcurrencyConfig struct {
	Workers int `yaml:"workers"`
}

// OutputConfig controls rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose"`
	IncludeFooter bool `yaml:"include_footer"`
}

// LLMConfig controls the optional narrative summary
type LLMConfig struct {
	Provider  string `yaml:"provider"` // openai, ollama, "" to disable
	Model     string `yaml:"model"`
	APIKey    string `yaml:"-"` // from environment only, never persisted
	BaseURL   string `yaml:"base_url,omitempty"`
	Timeout   int    `yaml:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens"`
}

// DefaultConfig returns the built-in defaults, mirroring the published analysis:
// cohorts A/B/C/D with 0/800/1000/1200 character minimums, 30% demotion
// probability for too-short approvals, and seed 42 for reproducibility.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:       2 * time.Minute,
			UserAgent:     "Grantab/0.1 (+https://github.com/ppiankov/grantab)",
			MaxBodyBytes:  500_000_000,
			RespectRobots: true,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "", // resolved to ~/.grantab/cache at runtime
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		RateLimiting: RateLimitingConfig{
			RequestsPerSecond: 1,
			BurstSize:         2,
		},
		Experiment: ExperimentConfig{
			Seed:                42,
			DemotionProbability: 0.3,
			Alpha:               0.05,
			Power:               0.8,
			Thresholds: map[Cohort]int{
				CohortControl:    0,
				CohortTreatment1: 800,
				CohortTreatment2: 1000,
				CohortTreatment3: 1200,
			},
		},
		Impact: ImpactConfig{
			AnnualProposals: 100_000,
			AvgProjectCost:  298.12,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
		},
		LLM: LLMConfig{
			Provider:  "", // disabled by default
			Timeout:   30,
			MaxTokens: 1000,
		},
	}
}
