// Package trend synthesizes a monthly cost series around a scenario's
// current costs: twelve noisy historical months and six forecast months.
package trend

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/ChicagoDave/costplanner/pkg/cost"
)

const (
	HistoryMonths  = 12
	ForecastMonths = 6

	materialNoise = 0.10 // ±5%
	laborNoise    = 0.08 // ±4%

	materialDrift = 0.02  // per forecast month
	laborDrift    = 0.015 // per forecast month

	stableBand = 1.0 // percent
)

// ErrNoCosts is returned when projecting from an empty breakdown.
var ErrNoCosts = errors.New("trend: cost breakdown has no total")

// Source supplies uniform values in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// NewSource returns a seeded PCG source so a series can be reproduced.
func NewSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Point is one month of the series.
type Point struct {
	Period        string    `json:"period"`
	Date          time.Time `json:"date"`
	MaterialCosts float64   `json:"material_costs"`
	LaborCosts    float64   `json:"labor_costs"`
	TotalCosts    float64   `json:"total_costs"`
	InflationRate float64   `json:"inflation_rate"`
	Forecast      bool      `json:"forecast"`
}

// Project builds the 18-point series ending six months after now's month.
// Historical noise comes from src; forecast months drift linearly.
func Project(costs cost.Breakdown, now time.Time, src Source) ([]Point, error) {
	if !(costs.Total > 0) || math.IsInf(costs.Total, 0) {
		return nil, ErrNoCosts
	}
	if src == nil {
		return nil, fmt.Errorf("trend: nil source")
	}

	month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	points := make([]Point, 0, HistoryMonths+ForecastMonths)

	for i := HistoryMonths - 1; i >= 0; i-- {
		mf := 1 + (src.Float64()-0.5)*materialNoise
		lf := 1 + (src.Float64()-0.5)*laborNoise
		points = append(points, newPoint(costs, month.AddDate(0, -i, 0), mf, lf, false))
	}
	for m := 1; m <= ForecastMonths; m++ {
		mf := 1 + float64(m)*materialDrift
		lf := 1 + float64(m)*laborDrift
		points = append(points, newPoint(costs, month.AddDate(0, m, 0), mf, lf, true))
	}
	return points, nil
}

func newPoint(costs cost.Breakdown, date time.Time, materialFactor, laborFactor float64, forecast bool) Point {
	avg := (materialFactor + laborFactor) / 2
	return Point{
		Period:        date.Format("Jan 2006"),
		Date:          date,
		MaterialCosts: costs.Construction.Materials * materialFactor,
		LaborCosts:    costs.Construction.Labor * laborFactor,
		TotalCosts:    costs.Total * avg,
		InflationRate: (avg - 1) * 100,
		Forecast:      forecast,
	}
}
