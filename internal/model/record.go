package model

// Cohort identifies one arm of the text-length experiment
type Cohort string

const (
	CohortControl    Cohort = "A" // no minimum essay length
	CohortTreatment1 Cohort = "B" // minimum 800 characters
	CohortTreatment2 Cohort = "C" // minimum 1000 characters
	CohortTreatment3 Cohort = "D" // minimum 1200 characters
)

// Cohorts lists all arms in assignment order
var Cohorts = []Cohort{CohortControl, CohortTreatment1, CohortTreatment2, CohortTreatment3}

// TreatmentCohorts lists the arms that carry a length requirement
var TreatmentCohorts = []Cohort{CohortTreatment1, CohortTreatment2, CohortTreatment3}

// Name returns the human-readable arm name
func (c Cohort) Name() string {
	switch c {
	case CohortControl:
		return "Control"
	case CohortTreatment1:
		return "Treatment 1"
	case CohortTreatment2:
		return "Treatment 2"
	case CohortTreatment3:
		return "Treatment 3"
	default:
		return string(c)
	}
}

// Record represents a single grant proposal drawn from the dataset
type Record struct {
	Title   string `json:"-"`
	Essay   string `json:"-"`
	Summary string `json:"-"`

	// Derived character counts (runes, matching how the dataset was cleaned)
	TitleLength   int `json:"title_length"`
	EssayLength   int `json:"essay_length"`
	SummaryLength int `json:"summary_length"`
	TotalLength   int `json:"total_length"`

	Approved bool `json:"approved"` // label as recorded in the dataset

	Cohort    Cohort `json:"cohort,omitempty"` // assigned arm
	Simulated bool   `json:"simulated"`        // outcome after applying the arm's length requirement
}
