// Package finance derives investment return metrics from a computed
// scenario and the user's revenue assumptions.
package finance

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/ChicagoDave/costplanner/pkg/project"
	"github.com/ChicagoDave/costplanner/pkg/scenario"
)

// ErrDegenerateInput is returned when the inputs make a metric undefined,
// such as a zero-year horizon or a non-positive investment.
var ErrDegenerateInput = errors.New("degenerate financial input")

// Rating bands for ROI percentage.
type Rating string

const (
	RatingExcellent Rating = "excellent"
	RatingGood      Rating = "good"
	RatingAverage   Rating = "average"
	RatingPoor      Rating = "poor"
)

// RateROI maps an ROI percentage to its band.
func RateROI(roiPct float64) Rating {
	switch {
	case roiPct >= 20:
		return RatingExcellent
	case roiPct >= 15:
		return RatingGood
	case roiPct >= 10:
		return RatingAverage
	default:
		return RatingPoor
	}
}

// Payback is the number of years to recover the investment from net annual
// rent. When rent never exceeds operating costs it is not recoverable.
type Payback struct {
	Years       float64
	Recoverable bool
}

// NotRecoverable is the payback reported when net annual rent is not positive.
var NotRecoverable = Payback{}

func (p Payback) String() string {
	if !p.Recoverable {
		return "not recoverable"
	}
	return strconv.FormatFloat(p.Years, 'f', 1, 64) + " years"
}

// MarshalJSON encodes a recoverable payback as a number and anything else as
// the string "not_recoverable".
func (p Payback) MarshalJSON() ([]byte, error) {
	if !p.Recoverable {
		return []byte(`"not_recoverable"`), nil
	}
	return json.Marshal(p.Years)
}

// UnmarshalJSON accepts either form written by MarshalJSON.
func (p *Payback) UnmarshalJSON(data []byte) error {
	if string(data) == `"not_recoverable"` || string(data) == "null" {
		*p = NotRecoverable
		return nil
	}
	var years float64
	if err := json.Unmarshal(data, &years); err != nil {
		return fmt.Errorf("payback: %w", err)
	}
	*p = Payback{Years: years, Recoverable: true}
	return nil
}

// Analysis holds investment return metrics. It is recomputed on demand and
// never stored.
type Analysis struct {
	TotalInvestment     float64 `json:"total_investment"`
	FinancingCosts      float64 `json:"financing_costs"`
	AnnualRental        float64 `json:"annual_rental"`
	TotalRentalIncome   float64 `json:"total_rental_income"`
	FutureValue         float64 `json:"future_value"`
	TotalOperatingCosts float64 `json:"total_operating_costs"`
	ExpectedRevenue     float64 `json:"expected_revenue"`
	NetProfit           float64 `json:"net_profit"`
	ROIPercentage       float64 `json:"roi_percentage"`
	PaybackPeriod       Payback `json:"payback_period"`
	IRR                 float64 `json:"irr"`
	NPV                 float64 `json:"npv"`
	Rating              Rating  `json:"rating"`
}

// ComputeROI derives return metrics for sc under the given assumptions.
//
// IRR is the geometric-mean approximation
// ((expectedRevenue/totalInvestment)^(1/years) - 1) × 100, not a cash-flow
// root solve. It is reported as -100 when expected revenue is not positive.
func ComputeROI(sc scenario.Scenario, in project.RevenueInputs) (Analysis, error) {
	if in.RentalYears < 1 {
		return Analysis{}, fmt.Errorf("%w: rental_years must be >= 1 (got %d)", ErrDegenerateInput, in.RentalYears)
	}
	if in.DiscountRate <= -100 || in.AppreciationRate <= -100 {
		return Analysis{}, fmt.Errorf("%w: rates must be > -100%%", ErrDegenerateInput)
	}

	financing, err := resolveFinancing(in)
	if err != nil {
		return Analysis{}, err
	}

	totalInvestment := sc.Costs.Total + financing
	if totalInvestment <= 0 || math.IsNaN(totalInvestment) || math.IsInf(totalInvestment, 0) {
		return Analysis{}, fmt.Errorf("%w: total investment must be > 0 (got %v)", ErrDegenerateInput, totalInvestment)
	}

	years := float64(in.RentalYears)
	annualRental := in.RentalIncome * 12
	totalRental := annualRental * years
	futureValue := in.SalePrice * math.Pow(1+in.AppreciationRate/100, years)
	totalOperating := in.OperatingCosts * years
	expectedRevenue := totalRental + futureValue
	netProfit := expectedRevenue - totalInvestment - totalOperating
	roiPct := netProfit / totalInvestment * 100

	netAnnual := annualRental - in.OperatingCosts
	payback := NotRecoverable
	if netAnnual > 0 {
		payback = Payback{Years: totalInvestment / netAnnual, Recoverable: true}
	}

	a := Analysis{
		TotalInvestment:     totalInvestment,
		FinancingCosts:      financing,
		AnnualRental:        annualRental,
		TotalRentalIncome:   totalRental,
		FutureValue:         futureValue,
		TotalOperatingCosts: totalOperating,
		ExpectedRevenue:     expectedRevenue,
		NetProfit:           netProfit,
		ROIPercentage:       roiPct,
		PaybackPeriod:       payback,
		IRR:                 approximateIRR(expectedRevenue, totalInvestment, years),
		NPV:                 npv(totalInvestment, netAnnual, futureValue, in.DiscountRate/100, in.RentalYears),
		Rating:              RateROI(roiPct),
	}
	if err := a.checkFinite(); err != nil {
		return Analysis{}, err
	}
	return a, nil
}

// checkFinite rejects results that overflowed; they cannot be encoded.
func (a Analysis) checkFinite() error {
	metrics := []struct {
		name  string
		value float64
	}{
		{"annual_rental", a.AnnualRental},
		{"total_rental_income", a.TotalRentalIncome},
		{"future_value", a.FutureValue},
		{"total_operating_costs", a.TotalOperatingCosts},
		{"expected_revenue", a.ExpectedRevenue},
		{"net_profit", a.NetProfit},
		{"roi_percentage", a.ROIPercentage},
		{"payback_period", a.PaybackPeriod.Years},
		{"irr", a.IRR},
		{"npv", a.NPV},
	}
	for _, m := range metrics {
		if math.IsNaN(m.value) || math.IsInf(m.value, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrDegenerateInput, m.name)
		}
	}
	return nil
}

func resolveFinancing(in project.RevenueInputs) (float64, error) {
	if in.FinancingCosts != 0 || in.Loan == nil {
		return in.FinancingCosts, nil
	}
	return FinancingCosts(*in.Loan)
}

// npv discounts yearly net rent for years 1..n plus the future sale value
// at year n, less the up-front investment.
func npv(investment, netAnnual, futureValue, rate float64, years int) float64 {
	v := -investment
	factor := 1.0
	for y := 1; y <= years; y++ {
		factor *= 1 + rate
		v += netAnnual / factor
	}
	return v + futureValue/factor
}

func approximateIRR(expectedRevenue, investment, years float64) float64 {
	if expectedRevenue <= 0 {
		return -100
	}
	return (math.Pow(expectedRevenue/investment, 1/years) - 1) * 100
}
