package model

import (
	"math"

	"github.com/m-mizutani/goerr/v2"
)

// Valid ranges of scoring inputs
const (
	MinImpact     = 1
	MaxImpact     = 5
	MinLikelihood = 0
	MaxLikelihood = 100
	MinEffort     = 1
	MaxEffort     = 5
)

// LikelihoodOptions are the canonical likelihood percentages
var LikelihoodOptions = []int{0, 25, 50, 75, 100}

// RiskScoringInput holds the assessment of a single risk. It is not persisted.
type RiskScoringInput struct {
	AcquisitionImpact int `json:"customer_acquisition_impact"`
	RetentionImpact   int `json:"customer_retention_impact"`
	OtherCostsImpact  int `json:"other_costs_impact"`
	Likelihood        int `json:"likelihood"`
	Effort            int `json:"effort"`
}

// Validate rejects out of range inputs, including a zero effort
func (x RiskScoringInput) Validate() error {
	impacts := []struct {
		name  string
		value int
	}{
		{"customer_acquisition_impact", x.AcquisitionImpact},
		{"customer_retention_impact", x.RetentionImpact},
		{"other_costs_impact", x.OtherCostsImpact},
	}
	for _, imp := range impacts {
		if imp.value < MinImpact || imp.value > MaxImpact {
			return NewValidationError("impact must be between 1 and 5",
				goerr.V("field", imp.name), goerr.V("value", imp.value))
		}
	}

	if x.Likelihood < MinLikelihood || x.Likelihood > MaxLikelihood {
		return NewValidationError("likelihood must be between 0 and 100", goerr.V("value", x.Likelihood))
	}

	if x.Effort < MinEffort || x.Effort > MaxEffort {
		return NewValidationError("effort must be between 1 and 5", goerr.V("value", x.Effort))
	}

	return nil
}

// TotalImpact is the sum of the three impact dimensions
func (x RiskScoringInput) TotalImpact() int {
	return x.AcquisitionImpact + x.RetentionImpact + x.OtherCostsImpact
}

// ExpectedImpact weights the total impact by likelihood
func (x RiskScoringInput) ExpectedImpact() float64 {
	return ExpectedImpact(x.TotalImpact(), x.Likelihood)
}

// PriorityBand is the display classification of a priority
type PriorityBand string

const (
	PriorityHigh   PriorityBand = "high"
	PriorityMedium PriorityBand = "medium"
	PriorityLow    PriorityBand = "low"
)

// BandOf classifies priority: > 2 high, > 1 medium, otherwise low
func BandOf(priority float64) PriorityBand {
	switch {
	case priority > 2:
		return PriorityHigh
	case priority > 1:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// PriorityScore is the outcome of CalculatePriority
type PriorityScore struct {
	TotalImpact    int          `json:"total_impact"`
	ExpectedImpact float64      `json:"expected_impact"`
	Priority       float64      `json:"priority"`
	Band           PriorityBand `json:"band"`
}

// ExpectedImpact returns totalImpact * likelihood / 100
func ExpectedImpact(totalImpact, likelihood int) float64 {
	return float64(totalImpact) * (float64(likelihood) / 100)
}

// Priority divides expected impact by effort and rounds to two decimals.
// effort must be positive; callers validate before calling.
func Priority(totalImpact, likelihood, effort int) float64 {
	return roundTo(ExpectedImpact(totalImpact, likelihood)/float64(effort), 2)
}

// CalculatePriority validates x and computes its score
func CalculatePriority(x RiskScoringInput) (*PriorityScore, error) {
	if err := x.Validate(); err != nil {
		return nil, err
	}

	priority := Priority(x.TotalImpact(), x.Likelihood, x.Effort)
	return &PriorityScore{
		TotalImpact:    x.TotalImpact(),
		ExpectedImpact: x.ExpectedImpact(),
		Priority:       priority,
		Band:           BandOf(priority),
	}, nil
}

// AssessmentSummary aggregates a set of scored risks
type AssessmentSummary struct {
	TotalRisks          int     `json:"total_risks"`
	HighPriorityRisks   int     `json:"high_priority_risks"`
	TotalExpectedImpact float64 `json:"total_expected_impact"`
}

// Summarize counts high priority risks and sums expected impact rounded to one decimal.
// Inputs that fail validation are counted but not scored.
func Summarize(inputs []RiskScoringInput) AssessmentSummary {
	summary := AssessmentSummary{TotalRisks: len(inputs)}

	var expected float64
	for _, x := range inputs {
		if err := x.Validate(); err != nil {
			continue
		}
		if Priority(x.TotalImpact(), x.Likelihood, x.Effort) > 2 {
			summary.HighPriorityRisks++
		}
		expected += x.ExpectedImpact()
	}
	summary.TotalExpectedImpact = roundTo(expected, 1)

	return summary
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow10(decimals)
	return math.Round(v*p) / p
}
