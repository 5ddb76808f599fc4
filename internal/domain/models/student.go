// internal/domain/models/student.go
package models

// StudentRecord is one row of the prediction response. The upstream service
// computes the risk score; RiskWatch only categorizes and displays it.
//
// StudentID is the canonical identity key. Upstream producers disagree on the
// field name (student_id, id, ID); the predict client folds them into this one
// field at the ingestion boundary, so everything past that point can compare
// records by StudentID alone.
type StudentRecord struct {
	StudentID  string  `bson:"student_id" json:"student_id"`
	Name       string  `bson:"name" json:"name"`
	RiskScore  float64 `bson:"risk_score" json:"risk_score"` // always in [0,1]
	Grade      string  `bson:"grade,omitempty" json:"grade,omitempty"`
	Attendance float64 `bson:"attendance,omitempty" json:"attendance,omitempty"`

	// Extras carries any upstream columns the dashboard does not interpret
	// (GPA, assignment counts, model features). Displayed verbatim.
	Extras map[string]any `bson:"extras,omitempty" json:"extras,omitempty"`
}

// RiskCategory is the three-bucket classification derived from RiskScore.
type RiskCategory string

const (
	RiskLow      RiskCategory = "low"
	RiskModerate RiskCategory = "moderate"
	RiskHigh     RiskCategory = "high"
)

// Risk-category cutoffs. Scores below ModerateCutoff are low risk, scores
// at or above HighCutoff are high risk, everything between is moderate.
const (
	ModerateCutoff = 0.4
	HighCutoff     = 0.7
)

// Categorize maps a risk score onto its category.
func Categorize(score float64) RiskCategory {
	switch {
	case score >= HighCutoff:
		return RiskHigh
	case score >= ModerateCutoff:
		return RiskModerate
	default:
		return RiskLow
	}
}

// Category returns the record's risk category.
func (s StudentRecord) Category() RiskCategory {
	return Categorize(s.RiskScore)
}

// CategoryCounts summarizes a batch of students by risk category.
type CategoryCounts struct {
	Low      int `json:"low"`
	Moderate int `json:"moderate"`
	High     int `json:"high"`
}

// Total returns the number of students counted.
func (c CategoryCounts) Total() int {
	return c.Low + c.Moderate + c.High
}

// Summarize counts students per risk category.
func Summarize(students []StudentRecord) CategoryCounts {
	var counts CategoryCounts
	for _, s := range students {
		switch s.Category() {
		case RiskHigh:
			counts.High++
		case RiskModerate:
			counts.Moderate++
		default:
			counts.Low++
		}
	}
	return counts
}
