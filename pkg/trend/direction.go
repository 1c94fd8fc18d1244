package trend

import "math"

// Direction is the month-over-month movement of total costs.
type Direction string

const (
	Increasing Direction = "increasing"
	Decreasing Direction = "decreasing"
	Stable     Direction = "stable"
)

// ChangePct is the percentage change in total costs from prev to next.
func ChangePct(prev, next Point) float64 {
	if prev.TotalCosts == 0 {
		return 0
	}
	return (next.TotalCosts - prev.TotalCosts) / prev.TotalCosts * 100
}

// Classify reports increasing above +1%, decreasing below -1%, else stable.
func Classify(prev, next Point) Direction {
	change := ChangePct(prev, next)
	switch {
	case change > stableBand:
		return Increasing
	case change < -stableBand:
		return Decreasing
	default:
		return Stable
	}
}

// Directions classifies each adjacent pair; the result has len(points)-1
// entries.
func Directions(points []Point) []Direction {
	if len(points) < 2 {
		return []Direction{}
	}
	out := make([]Direction, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		out = append(out, Classify(points[i-1], points[i]))
	}
	return out
}

// Summary condenses a series for display.
type Summary struct {
	AverageInflation float64   `json:"average_inflation"`
	PeakInflation    float64   `json:"peak_inflation"`
	TroughInflation  float64   `json:"trough_inflation"`
	CurrentTotal     float64   `json:"current_total"`
	ForecastTotal    float64   `json:"forecast_total"`
	Outlook          Direction `json:"outlook"`
}

// Summarize reports inflation extremes and the outlook from the last
// historical month to the last forecast month.
func Summarize(points []Point) Summary {
	if len(points) == 0 {
		return Summary{Outlook: Stable}
	}
	s := Summary{
		PeakInflation:   math.Inf(-1),
		TroughInflation: math.Inf(1),
	}
	current := points[0]
	for _, p := range points {
		s.AverageInflation += p.InflationRate
		s.PeakInflation = math.Max(s.PeakInflation, p.InflationRate)
		s.TroughInflation = math.Min(s.TroughInflation, p.InflationRate)
		if !p.Forecast {
			current = p
		}
	}
	s.AverageInflation /= float64(len(points))
	last := points[len(points)-1]
	s.CurrentTotal = current.TotalCosts
	s.ForecastTotal = last.TotalCosts
	s.Outlook = Classify(current, last)
	return s
}
