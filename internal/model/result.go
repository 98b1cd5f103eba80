package model

// TestResult compares one treatment arm's simulated outcomes against control
type TestResult struct {
	Cohort        Cohort  `json:"cohort,omitempty"`
	ControlN      int     `json:"control_n"`
	TreatmentN    int     `json:"treatment_n"`
	ControlRate   float64 `json:"control_rate"`
	TreatmentRate float64 `json:"treatment_rate"`
	EffectSize    float64 `json:"effect_size"` // treatment rate minus control rate
	ChiSquare     float64 `json:"chi_square"`
	PValue        float64 `json:"p_value"`
	Significant   bool    `json:"significant"`
	CILower       float64 `json:"ci_lower"` // 95% interval for the effect size
	CIUpper       float64 `json:"ci_upper"`

	// LowExpectedCounts warns that an expected cell count fell below 5,
	// where the chi-square approximation becomes unreliable
	LowExpectedCounts bool `json:"low_expected_counts,omitempty"`
}

// ArmSummary describes one cohort after assignment and simulation
type ArmSummary struct {
	Cohort         Cohort  `json:"cohort"`
	Name           string  `json:"name"`
	MinEssayLength int     `json:"min_essay_length"`
	Count          int     `json:"count"`
	Approved       int     `json:"approved"`
	ApprovalRate   float64 `json:"approval_rate"`
	BelowThreshold int     `json:"below_threshold"` // essays shorter than the arm's minimum
}

// ImpactEstimate scales an arm's rate difference to a hypothetical annual volume
type ImpactEstimate struct {
	Cohort             Cohort  `json:"cohort"`
	AdditionalApproved float64 `json:"additional_approved"`
	AdditionalFunding  float64 `json:"additional_funding"`
	ProjectsRejected   float64 `json:"projects_rejected"`
	NetImpact          float64 `json:"net_impact"`
}

// Recommendation summarizes which arm (if any) to adopt
type Recommendation struct {
	Best        Cohort   `json:"best"`
	Worst       Cohort   `json:"worst"`
	Significant bool     `json:"significant"` // whether the best arm cleared the significance bar
	Notes       []string `json:"notes,omitempty"`
}
