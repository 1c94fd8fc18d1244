// Package scenario wraps one computed estimate as an immutable aggregate and
// keeps independent copies for side-by-side comparison.
package scenario

import (
	"time"

	"github.com/ChicagoDave/costplanner/pkg/cost"
	"github.com/ChicagoDave/costplanner/pkg/pricing"
	"github.com/ChicagoDave/costplanner/pkg/project"
	"github.com/google/uuid"
)

// Scenario is one fully computed (basics, specs, costs) tuple. A scenario is
// never edited in place; changed inputs produce a new scenario via Rederive.
type Scenario struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	Basics    project.Basics         `json:"basics"`
	Specs     project.TechnicalSpecs `json:"specs"`
	Costs     cost.Breakdown         `json:"costs"`
	Duration  int                    `json:"duration_days"`
	CreatedAt time.Time              `json:"created_at"`
}

// New runs the cost engine once and wraps the result.
func New(t *pricing.Table, name string, b project.Basics, s project.TechnicalSpecs, now time.Time) (Scenario, error) {
	breakdown, err := cost.Estimate(t, b, s)
	if err != nil {
		return Scenario{}, err
	}
	days, err := cost.EstimateDuration(t, b.Area, b.BuildingType)
	if err != nil {
		return Scenario{}, err
	}
	return Scenario{
		ID:        newID(),
		Name:      name,
		Basics:    b,
		Specs:     s.Clone(),
		Costs:     *breakdown,
		Duration:  days,
		CreatedAt: now,
	}, nil
}

// FromProject builds a scenario named after the project.
func FromProject(t *pricing.Table, p *project.Project, now time.Time) (Scenario, error) {
	return New(t, p.Name, p.Basics, p.Specs, now)
}

// Rederive returns a new scenario computed from changed inputs. The receiver
// is left untouched and the result gets a fresh ID.
func (sc Scenario) Rederive(t *pricing.Table, b project.Basics, s project.TechnicalSpecs, now time.Time) (Scenario, error) {
	return New(t, sc.Name, b, s, now)
}

// Clone returns a deep copy that shares no memory with sc.
func (sc Scenario) Clone() Scenario {
	out := sc
	out.Specs = sc.Specs.Clone()
	return out
}

// CostPerM2 is the all-in total per m² of floor area.
func (sc Scenario) CostPerM2() float64 {
	return sc.Costs.CostPerM2(sc.Basics.Area)
}

func newID() string {
	return uuid.New().String()
}
