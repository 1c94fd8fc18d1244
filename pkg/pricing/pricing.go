// Package pricing holds the static reference tables the cost engine reads:
// base unit costs, structural and regional factors, quality multipliers,
// labor rates and duration rates.
package pricing

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/ChicagoDave/costplanner/pkg/project"
	"gopkg.in/yaml.v3"
)

//go:embed pricing.yaml
var defaultTable []byte

// DefaultRegionalMultiplier applies to any city not present in the table.
const DefaultRegionalMultiplier = 1.0

// Table is one complete set of pricing reference data.
type Table struct {
	BaseCosts           map[project.BuildingType]map[project.QualityLevel]float64 `yaml:"base_costs" json:"base_costs"`
	StructuralFactors   map[project.StructuralSystem]float64                      `yaml:"structural_factors" json:"structural_factors"`
	RegionalMultipliers map[string]float64                                        `yaml:"regional_multipliers" json:"regional_multipliers"`
	QualityMultipliers  map[project.QualityLevel]float64                          `yaml:"quality_multipliers" json:"quality_multipliers"`
	LaborRates          map[string]float64                                        `yaml:"labor_rates" json:"labor_rates"`
	DurationDaysPerM2   map[project.BuildingType]float64                          `yaml:"duration_days_per_m2" json:"duration_days_per_m2"`
}

var (
	defaultOnce   sync.Once
	defaultParsed *Table
)

// Default returns the embedded pricing table. It is parsed on first use and
// shared afterwards; callers must not modify it.
func Default() *Table {
	defaultOnce.Do(func() {
		t, err := Parse(defaultTable)
		if err != nil {
			panic(fmt.Sprintf("embedded pricing table: %v", err))
		}
		defaultParsed = t
	})
	return defaultParsed
}

// Load reads a pricing table from a YAML file.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading pricing file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a pricing YAML document.
func Parse(data []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing pricing YAML: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Validate checks that every entry the cost engine needs is present and
// positive.
func (t *Table) Validate() error {
	for _, bt := range project.BuildingTypes {
		row, ok := t.BaseCosts[bt]
		if !ok {
			return fmt.Errorf("pricing: base_costs missing building type %q", bt)
		}
		for _, ql := range project.QualityLevels {
			if v, ok := row[ql]; !ok || v <= 0 {
				return fmt.Errorf("pricing: base_costs.%s.%s must be > 0", bt, ql)
			}
		}
		if v, ok := t.DurationDaysPerM2[bt]; !ok || v <= 0 {
			return fmt.Errorf("pricing: duration_days_per_m2.%s must be > 0", bt)
		}
	}
	for _, ss := range project.StructuralSystems {
		if v, ok := t.StructuralFactors[ss]; !ok || v <= 0 {
			return fmt.Errorf("pricing: structural_factors.%s must be > 0", ss)
		}
	}
	for city, m := range t.RegionalMultipliers {
		if m <= 0 {
			return fmt.Errorf("pricing: regional_multipliers.%s must be > 0", city)
		}
	}
	return nil
}

// BaseCost returns the unit cost per m² for a building type and quality level.
func (t *Table) BaseCost(bt project.BuildingType, ql project.QualityLevel) (float64, bool) {
	row, ok := t.BaseCosts[bt]
	if !ok {
		return 0, false
	}
	v, ok := row[ql]
	return v, ok
}

// StructuralFactor returns the adjustment for a structural system.
func (t *Table) StructuralFactor(ss project.StructuralSystem) (float64, bool) {
	v, ok := t.StructuralFactors[ss]
	return v, ok
}

// RegionalMultiplier returns the multiplier for city. Unknown cities get
// DefaultRegionalMultiplier and ok=false; this is not an error.
func (t *Table) RegionalMultiplier(city string) (float64, bool) {
	v, ok := t.RegionalMultipliers[strings.TrimSpace(city)]
	if !ok {
		return DefaultRegionalMultiplier, false
	}
	return v, true
}

// DaysPerM2 returns the duration rate for a building type.
func (t *Table) DaysPerM2(bt project.BuildingType) (float64, bool) {
	v, ok := t.DurationDaysPerM2[bt]
	return v, ok
}

// BlendedLaborRate is the unweighted mean of all trade rates, or 0 when the
// table has none.
func (t *Table) BlendedLaborRate() float64 {
	if len(t.LaborRates) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range t.LaborRates {
		sum += r
	}
	return sum / float64(len(t.LaborRates))
}

// Cities returns the known city names in sorted order.
func (t *Table) Cities() []string {
	cities := make([]string, 0, len(t.RegionalMultipliers))
	for c := range t.RegionalMultipliers {
		cities = append(cities, c)
	}
	sort.Strings(cities)
	return cities
}
