package project

import "time"

// BuildingType is the use class of the building.
type BuildingType string

const (
	Residential BuildingType = "residential"
	Commercial  BuildingType = "commercial"
	Industrial  BuildingType = "industrial"
)

// BuildingTypes lists every supported building type in table order.
var BuildingTypes = []BuildingType{Residential, Commercial, Industrial}

func (b BuildingType) String() string { return string(b) }

// IsValid reports whether b is one of the defined building types.
func (b BuildingType) IsValid() bool {
	switch b {
	case Residential, Commercial, Industrial:
		return true
	default:
		return false
	}
}

// QualityLevel is the finish grade of the building.
type QualityLevel string

const (
	Economic QualityLevel = "economic"
	Standard QualityLevel = "standard"
	Luxury   QualityLevel = "luxury"
)

// QualityLevels lists every supported quality level in table order.
var QualityLevels = []QualityLevel{Economic, Standard, Luxury}

func (q QualityLevel) String() string { return string(q) }

// IsValid reports whether q is one of the defined quality levels.
func (q QualityLevel) IsValid() bool {
	switch q {
	case Economic, Standard, Luxury:
		return true
	default:
		return false
	}
}

// StructuralSystem is the load-bearing system of the building.
type StructuralSystem string

const (
	Concrete StructuralSystem = "concrete"
	Steel    StructuralSystem = "steel"
	Mixed    StructuralSystem = "mixed"
)

// StructuralSystems lists every supported structural system.
var StructuralSystems = []StructuralSystem{Concrete, Steel, Mixed}

func (s StructuralSystem) String() string { return string(s) }

// IsValid reports whether s is one of the defined structural systems.
func (s StructuralSystem) IsValid() bool {
	switch s {
	case Concrete, Steel, Mixed:
		return true
	default:
		return false
	}
}

// Project is the top-level input document for an estimate.
type Project struct {
	Name    string         `yaml:"name" json:"name"`
	Basics  Basics         `yaml:"basics" json:"basics"`
	Specs   TechnicalSpecs `yaml:"specs" json:"specs"`
	Revenue *RevenueInputs `yaml:"revenue,omitempty" json:"revenue,omitempty" validate:"omitempty"`
}

type Location struct {
	City     string `yaml:"city" json:"city" validate:"required"`
	District string `yaml:"district" json:"district"`
}

// Basics holds the project parameters entered on the first form step.
// SpecialRequirements is free text and does not affect the estimate.
type Basics struct {
	Location            Location     `yaml:"location" json:"location"`
	Area                float64      `yaml:"area" json:"area" validate:"gte=1"`
	BuildingType        BuildingType `yaml:"building_type" json:"building_type" validate:"required,oneof=residential commercial industrial"`
	QualityLevel        QualityLevel `yaml:"quality_level" json:"quality_level" validate:"required,oneof=economic standard luxury"`
	StartDate           time.Time    `yaml:"start_date,omitempty" json:"start_date,omitzero"`
	CompletionDate      time.Time    `yaml:"completion_date,omitempty" json:"completion_date,omitzero"`
	SpecialRequirements string       `yaml:"special_requirements,omitempty" json:"special_requirements,omitempty"`
}

// TechnicalSpecs holds the technical form step. Only Floors and
// StructuralSystem feed the cost formula.
type TechnicalSpecs struct {
	Floors               int              `yaml:"floors" json:"floors" validate:"min=1,max=50"`
	FoundationType       string           `yaml:"foundation_type,omitempty" json:"foundation_type,omitempty"`
	StructuralSystem     StructuralSystem `yaml:"structural_system" json:"structural_system" validate:"required,oneof=concrete steel mixed"`
	FacadeType           string           `yaml:"facade_type,omitempty" json:"facade_type,omitempty"`
	HVACSystem           string           `yaml:"hvac_system,omitempty" json:"hvac_system,omitempty"`
	SpecialInstallations []string         `yaml:"special_installations,omitempty" json:"special_installations,omitempty"`
}

// Clone returns a copy of s that shares no slices with s.
func (s TechnicalSpecs) Clone() TechnicalSpecs {
	out := s
	if s.SpecialInstallations != nil {
		out.SpecialInstallations = append([]string(nil), s.SpecialInstallations...)
	}
	return out
}

// RevenueInputs are the user's return assumptions for the ROI analysis.
// Rates are percentages (5 means 5%).
type RevenueInputs struct {
	SalePrice        float64    `yaml:"sale_price" json:"sale_price" validate:"gte=0"`
	RentalIncome     float64    `yaml:"rental_income" json:"rental_income" validate:"gte=0"` // monthly
	RentalYears      int        `yaml:"rental_years" json:"rental_years" validate:"min=1"`
	AppreciationRate float64    `yaml:"appreciation_rate" json:"appreciation_rate" validate:"gt=-100"`
	OperatingCosts   float64    `yaml:"operating_costs" json:"operating_costs" validate:"gte=0"` // annual
	FinancingCosts   float64    `yaml:"financing_costs" json:"financing_costs" validate:"gte=0"`
	DiscountRate     float64    `yaml:"discount_rate" json:"discount_rate" validate:"gt=-100"`
	Loan             *LoanTerms `yaml:"loan,omitempty" json:"loan,omitempty" validate:"omitempty"`
}

// LoanTerms describe construction financing. When present and FinancingCosts
// is zero, the financing cost is derived from the amortization schedule.
type LoanTerms struct {
	Principal    float64 `yaml:"principal" json:"principal" validate:"gte=0"`
	InterestRate float64 `yaml:"interest_rate" json:"interest_rate" validate:"gte=0,lt=100"`
	TermYears    int     `yaml:"term_years" json:"term_years" validate:"min=1"`
}
