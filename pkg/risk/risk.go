// Package risk scores the project risk catalog on a probability × impact
// matrix.
package risk

import (
	"errors"
	"fmt"
)

// ErrInvalidFactor is returned for an empty catalog or a factor whose
// probability or impact is not a defined level.
var ErrInvalidFactor = errors.New("invalid risk factor")

// Category groups related risk factors.
type Category string

const (
	Financial     Category = "financial"
	Technical     Category = "technical"
	Environmental Category = "environmental"
	Regulatory    Category = "regulatory"
)

// Categories lists every category in display order.
var Categories = []Category{Financial, Technical, Environmental, Regulatory}

// Level is a qualitative probability or impact grade.
type Level string

const (
	Low    Level = "low"
	Medium Level = "medium"
	High   Level = "high"
)

// Levels lists every level from lowest to highest.
var Levels = []Level{Low, Medium, High}

// Score maps low/medium/high to 1/2/3, and anything else to 0.
func (l Level) Score() int {
	switch l {
	case Low:
		return 1
	case Medium:
		return 2
	case High:
		return 3
	default:
		return 0
	}
}

// IsValid reports whether l is a defined level.
func (l Level) IsValid() bool { return l.Score() > 0 }

// HighRiskThreshold is the minimum score of a high-risk item.
const HighRiskThreshold = 6

// Factor is one entry of the risk catalog.
type Factor struct {
	ID          string   `json:"id"`
	Category    Category `json:"category"`
	Description string   `json:"description"`
	Probability Level    `json:"probability"`
	Impact      Level    `json:"impact"`
	Mitigation  string   `json:"mitigation"`
	Score       int      `json:"risk_score"`
}

// Assessment aggregates scored factors.
type Assessment struct {
	Factors       []Factor             `json:"factors"`
	OverallRisk   float64              `json:"overall_risk"`
	Rating        Level                `json:"rating"`
	HighRiskItems []Factor             `json:"high_risk_items"`
	Matrix        [3][3]int            `json:"matrix"` // [probability][impact], low..high
	ByCategory    map[Category]float64 `json:"by_category"`
}

// Assess scores each factor and aggregates the result. The input slice is
// not modified.
func Assess(factors []Factor) (Assessment, error) {
	if len(factors) == 0 {
		return Assessment{}, fmt.Errorf("%w: empty catalog", ErrInvalidFactor)
	}

	a := Assessment{
		Factors:       make([]Factor, 0, len(factors)),
		HighRiskItems: []Factor{},
		ByCategory:    make(map[Category]float64),
	}
	counts := make(map[Category]int)
	sum := 0

	for _, f := range factors {
		if !f.Probability.IsValid() || !f.Impact.IsValid() {
			return Assessment{}, fmt.Errorf("%w: %s has probability %q impact %q", ErrInvalidFactor, f.ID, f.Probability, f.Impact)
		}
		f.Score = f.Probability.Score() * f.Impact.Score()
		sum += f.Score

		a.Factors = append(a.Factors, f)
		if f.Score >= HighRiskThreshold {
			a.HighRiskItems = append(a.HighRiskItems, f)
		}
		a.Matrix[f.Probability.Score()-1][f.Impact.Score()-1]++
		a.ByCategory[f.Category] += float64(f.Score)
		counts[f.Category]++
	}

	for c, n := range counts {
		a.ByCategory[c] /= float64(n)
	}
	a.OverallRisk = float64(sum) / float64(len(factors))
	a.Rating = RateOverall(a.OverallRisk)
	return a, nil
}

// RateOverall bands a mean score: low up to 2, medium up to 4, else high.
func RateOverall(mean float64) Level {
	switch {
	case mean <= 2:
		return Low
	case mean <= 4:
		return Medium
	default:
		return High
	}
}
