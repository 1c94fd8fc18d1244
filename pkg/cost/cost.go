package cost

import (
	"errors"
	"fmt"
	"math"

	"github.com/ChicagoDave/costplanner/pkg/pricing"
	"github.com/ChicagoDave/costplanner/pkg/project"
)

// ErrInvalidInput is returned when an input is outside its defined set or
// range. Callers are expected to validate before calling; this is the guard.
var ErrInvalidInput = errors.New("invalid input")

// Construction itemizes direct building costs.
type Construction struct {
	Materials float64 `json:"materials"`
	Labor     float64 `json:"labor"`
	Equipment float64 `json:"equipment"`
	Total     float64 `json:"total"`
}

// SoftCosts itemizes non-construction project costs.
type SoftCosts struct {
	Permits    float64 `json:"permits"`
	Design     float64 `json:"design"`
	Consulting float64 `json:"consulting"`
	Total      float64 `json:"total"`
}

// Rates records the factors that produced the adjusted unit rate.
type Rates struct {
	Base               float64 `json:"base"`
	Structural         float64 `json:"structural"`
	Height             float64 `json:"height"`
	Regional           float64 `json:"regional"`
	Adjusted           float64 `json:"adjusted"`
	LocationRecognized bool    `json:"location_recognized"`
}

// Breakdown is the complete cost output for one set of inputs.
type Breakdown struct {
	Construction Construction `json:"construction"`
	SoftCosts    SoftCosts    `json:"soft_costs"`
	SiteSpecific float64      `json:"site_specific"`
	Subtotal     float64      `json:"subtotal"`
	Contingency  float64      `json:"contingency"`
	Total        float64      `json:"total"`
	Rates        Rates        `json:"rates"`
}

// CalculateDetailedCosts computes a breakdown using the default pricing table.
func CalculateDetailedCosts(b project.Basics, s project.TechnicalSpecs) (*Breakdown, error) {
	return Estimate(pricing.Default(), b, s)
}

// Estimate computes the cost breakdown for the given inputs against t.
// It is deterministic and has no side effects.
func Estimate(t *pricing.Table, b project.Basics, s project.TechnicalSpecs) (*Breakdown, error) {
	rates, err := resolveRates(t, b, s)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(b.Area) || math.IsInf(b.Area, 0) || b.Area <= 0 {
		return nil, fmt.Errorf("%w: area must be > 0 (got %v)", ErrInvalidInput, b.Area)
	}

	constructionTotal := rates.Adjusted * b.Area

	materials := float64(constructionTotal * MaterialsShare)
	labor := float64(constructionTotal * LaborShare)
	// One rounding in materials+labor leaves equipment exact, so the split
	// adds back to constructionTotal.
	equipment := constructionTotal - (materials + labor)

	permits := constructionTotal * PermitsRate
	design := constructionTotal * DesignRate
	consulting := constructionTotal * ConsultingRate
	siteSpecific := constructionTotal * SiteRate

	subtotal := constructionTotal + permits + design + consulting + siteSpecific
	// Explicit conversion keeps total exactly subtotal + contingency.
	contingency := float64(subtotal * ContingencyRate)

	return &Breakdown{
		Construction: Construction{
			Materials: materials,
			Labor:     labor,
			Equipment: equipment,
			Total:     constructionTotal,
		},
		SoftCosts: SoftCosts{
			Permits:    permits,
			Design:     design,
			Consulting: consulting,
			Total:      permits + design + consulting,
		},
		SiteSpecific: siteSpecific,
		Subtotal:     subtotal,
		Contingency:  contingency,
		Total:        subtotal + contingency,
		Rates:        rates,
	}, nil
}

func resolveRates(t *pricing.Table, b project.Basics, s project.TechnicalSpecs) (Rates, error) {
	if !b.BuildingType.IsValid() {
		return Rates{}, fmt.Errorf("%w: unknown building type %q", ErrInvalidInput, b.BuildingType)
	}
	if !b.QualityLevel.IsValid() {
		return Rates{}, fmt.Errorf("%w: unknown quality level %q", ErrInvalidInput, b.QualityLevel)
	}
	if !s.StructuralSystem.IsValid() {
		return Rates{}, fmt.Errorf("%w: unknown structural system %q", ErrInvalidInput, s.StructuralSystem)
	}
	if s.Floors < 1 {
		return Rates{}, fmt.Errorf("%w: floors must be >= 1 (got %d)", ErrInvalidInput, s.Floors)
	}

	base, ok := t.BaseCost(b.BuildingType, b.QualityLevel)
	if !ok {
		return Rates{}, fmt.Errorf("%w: no base cost for %s/%s", ErrInvalidInput, b.BuildingType, b.QualityLevel)
	}
	structural, ok := t.StructuralFactor(s.StructuralSystem)
	if !ok {
		return Rates{}, fmt.Errorf("%w: no structural factor for %s", ErrInvalidInput, s.StructuralSystem)
	}
	regional, known := t.RegionalMultiplier(b.Location.City)
	height := HeightFactor(s.Floors)

	return Rates{
		Base:               base,
		Structural:         structural,
		Height:             height,
		Regional:           regional,
		Adjusted:           base * structural * height * regional,
		LocationRecognized: known,
	}, nil
}

// HeightFactor returns the unit-rate multiplier for a building of the given
// number of floors: 1 up to HeightPenaltyFloors, then +3% per extra floor.
func HeightFactor(floors int) float64 {
	if floors <= HeightPenaltyFloors {
		return 1
	}
	return 1 + float64(floors-HeightPenaltyFloors)*HeightPenaltyStep
}

// ProjectDuration estimates the duration in days using the default table.
func ProjectDuration(area float64, bt project.BuildingType) (int, error) {
	return EstimateDuration(pricing.Default(), area, bt)
}

// EstimateDuration returns ceil(area × days-per-m²) for the building type.
func EstimateDuration(t *pricing.Table, area float64, bt project.BuildingType) (int, error) {
	if !bt.IsValid() {
		return 0, fmt.Errorf("%w: unknown building type %q", ErrInvalidInput, bt)
	}
	if math.IsNaN(area) || math.IsInf(area, 0) || area <= 0 {
		return 0, fmt.Errorf("%w: area must be > 0 (got %v)", ErrInvalidInput, area)
	}
	rate, ok := t.DaysPerM2(bt)
	if !ok {
		return 0, fmt.Errorf("%w: no duration rate for %s", ErrInvalidInput, bt)
	}
	days := int(math.Ceil(area*rate - durationEpsilon))
	if days < 1 {
		days = 1
	}
	return days, nil
}

// CostPerM2 is the all-in total divided by floor area, or 0 for a
// non-positive area.
func (b *Breakdown) CostPerM2(area float64) float64 {
	if area <= 0 {
		return 0
	}
	return b.Total / area
}
