package scenario

// Entry is one row of a comparison, measured against the baseline.
type Entry struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Total        float64 `json:"total"`
	CostPerM2    float64 `json:"cost_per_m2"`
	DurationDays int     `json:"duration_days"`
	Delta        float64 `json:"delta"`
	DeltaPct     float64 `json:"delta_pct"`
}

// Comparison lines scenarios up against the first one.
type Comparison struct {
	BaselineID    string  `json:"baseline_id"`
	Entries       []Entry `json:"entries"`
	CheapestID    string  `json:"cheapest_id"`
	MostExpensive string  `json:"most_expensive_id"`
	Spread        float64 `json:"spread"`
}

// Compare builds a comparison with scenarios[0] as the baseline. An empty
// input yields an empty comparison.
func Compare(scenarios []Scenario) Comparison {
	if len(scenarios) == 0 {
		return Comparison{Entries: []Entry{}}
	}

	base := scenarios[0].Costs.Total
	cmp := Comparison{
		BaselineID: scenarios[0].ID,
		Entries:    make([]Entry, 0, len(scenarios)),
	}

	minTotal, maxTotal := scenarios[0].Costs.Total, scenarios[0].Costs.Total
	cmp.CheapestID, cmp.MostExpensive = scenarios[0].ID, scenarios[0].ID

	for _, sc := range scenarios {
		total := sc.Costs.Total
		e := Entry{
			ID:           sc.ID,
			Name:         sc.Name,
			Total:        total,
			CostPerM2:    sc.CostPerM2(),
			DurationDays: sc.Duration,
			Delta:        total - base,
		}
		if base != 0 {
			e.DeltaPct = (total - base) / base * 100
		}
		cmp.Entries = append(cmp.Entries, e)

		if total < minTotal {
			minTotal, cmp.CheapestID = total, sc.ID
		}
		if total > maxTotal {
			maxTotal, cmp.MostExpensive = total, sc.ID
		}
	}
	cmp.Spread = maxTotal - minTotal
	return cmp
}
