// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// PriorityLevel classifies a propensity score into an outreach tier.
type PriorityLevel string

const (
	PriorityHigh   PriorityLevel = "High"
	PriorityMedium PriorityLevel = "Medium"
	PriorityLow    PriorityLevel = "Low"
)

// Rule maximums for the five scoring criteria. The theoretical sum is
// 115; the total propensity score is capped at 100.
const (
	MaxRoleFit          = 30
	MaxScientificIntent = 40
	MaxCompanyIntent    = 20
	MaxTechnographic    = 15
	MaxLocation         = 10

	MaxPropensityScore = 100
)

// ScoreBreakdown holds the per-rule sub-scores that sum to the
// propensity score. Each sub-score is bounded by its rule maximum.
type ScoreBreakdown struct {
	RoleFit          int `json:"role_fit" yaml:"role_fit"`
	ScientificIntent int `json:"scientific_intent" yaml:"scientific_intent"`
	CompanyIntent    int `json:"company_intent" yaml:"company_intent"`
	Technographic    int `json:"technographic" yaml:"technographic"`
	Location         int `json:"location" yaml:"location"`
}

// Sum returns the uncapped total of the five sub-scores.
func (b ScoreBreakdown) Sum() int {
	return b.RoleFit + b.ScientificIntent + b.CompanyIntent + b.Technographic + b.Location
}

// ScoreResult is the full output of scoring one lead.
type ScoreResult struct {
	PropensityScore int            `json:"propensity_score" yaml:"propensity_score"`
	Breakdown       ScoreBreakdown `json:"score_breakdown" yaml:"score_breakdown"`
	PriorityLevel   PriorityLevel  `json:"priority_level" yaml:"priority_level"`
}
