package validation

import (
	"testing"
	"time"

	"github.com/ChicagoDave/costplanner/pkg/pricing"
	"github.com/ChicagoDave/costplanner/pkg/project"
)

func validProject() *project.Project {
	return &project.Project{
		Name: "Kadıköy Konut",
		Basics: project.Basics{
			Location:       project.Location{City: "İstanbul", District: "Kadıköy"},
			Area:           1000,
			BuildingType:   project.Residential,
			QualityLevel:   project.Standard,
			StartDate:      time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			CompletionDate: time.Date(2029, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		Specs: project.TechnicalSpecs{
			Floors:           3,
			StructuralSystem: project.Concrete,
		},
		Revenue: &project.RevenueInputs{
			SalePrice:        9_000_000,
			RentalIncome:     45_000,
			RentalYears:      10,
			AppreciationRate: 3,
			OperatingCosts:   60_000,
			DiscountRate:     8,
		},
	}
}

func TestValidateProjectValid(t *testing.T) {
	r := ValidateProject(validProject(), pricing.Default())
	if !r.Valid {
		t.Errorf("expected valid report, got %d errors: %v", len(r.Errors), r.Errors)
	}
	if len(r.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", r.Warnings)
	}
}

func TestValidateProjectArea(t *testing.T) {
	p := validProject()
	p.Basics.Area = 0.5
	r := ValidateProject(p, pricing.Default())
	if r.Valid {
		t.Error("expected invalid report for area < 1")
	}
	assertHasError(t, r, "basics.area")
}

func TestValidateProjectBuildingType(t *testing.T) {
	p := validProject()
	p.Basics.BuildingType = "villa"
	r := ValidateProject(p, pricing.Default())
	if r.Valid {
		t.Error("expected invalid report for unknown building type")
	}
	assertHasError(t, r, "basics.building_type")
	for _, e := range r.Errors {
		if e.Field == "basics.building_type" && e.Expected != "one of: residential, commercial, industrial" {
			t.Errorf("expected = %q", e.Expected)
		}
	}
}

func TestValidateProjectQualityLevel(t *testing.T) {
	p := validProject()
	p.Basics.QualityLevel = ""
	r := ValidateProject(p, pricing.Default())
	assertHasError(t, r, "basics.quality_level")
}

func TestValidateProjectFloorsRange(t *testing.T) {
	for _, floors := range []int{0, 51} {
		p := validProject()
		p.Specs.Floors = floors
		r := ValidateProject(p, pricing.Default())
		if r.Valid {
			t.Errorf("expected invalid report for floors=%d", floors)
		}
		assertHasError(t, r, "specs.floors")
	}
}

func TestValidateProjectStructuralSystem(t *testing.T) {
	p := validProject()
	p.Specs.StructuralSystem = "timber"
	r := ValidateProject(p, pricing.Default())
	assertHasError(t, r, "specs.structural_system")
}

func TestValidateProjectMissingCity(t *testing.T) {
	p := validProject()
	p.Basics.Location.City = ""
	r := ValidateProject(p, pricing.Default())
	assertHasError(t, r, "basics.location.city")
}

func TestValidateProjectUnknownCityWarns(t *testing.T) {
	p := validProject()
	p.Basics.Location.City = "Trabzon"
	r := ValidateProject(p, pricing.Default())
	if !r.Valid {
		t.Errorf("unknown city must not invalidate the report: %v", r.Errors)
	}
	if !r.HasPath("basics.location.city") {
		t.Error("expected a warning for the unknown city")
	}
}

func TestValidateProjectCompletionBeforeStart(t *testing.T) {
	p := validProject()
	p.Basics.CompletionDate = p.Basics.StartDate.AddDate(0, -1, 0)
	r := ValidateProject(p, pricing.Default())
	if r.Valid {
		t.Error("expected invalid report for completion before start")
	}
	assertHasError(t, r, "basics.completion_date")
}

func TestValidateProjectShortSchedule(t *testing.T) {
	p := validProject()
	p.Basics.CompletionDate = p.Basics.StartDate.AddDate(0, 6, 0)
	r := ValidateProject(p, pricing.Default())
	if !r.Valid {
		t.Error("a short schedule is a warning, not an error")
	}
	if !r.HasPath("basics.completion_date") {
		t.Error("expected schedule warning")
	}
}

func TestValidateProjectHeightInfo(t *testing.T) {
	p := validProject()
	p.Specs.Floors = 12
	r := ValidateProject(p, pricing.Default())
	if len(r.Info) != 1 || r.Info[0].Field != "specs.floors" {
		t.Errorf("expected height info, got %v", r.Info)
	}
}

func TestValidateProjectRevenue(t *testing.T) {
	p := validProject()
	p.Revenue.RentalYears = 0
	p.Revenue.OperatingCosts = -5
	r := ValidateProject(p, pricing.Default())
	if r.Valid {
		t.Error("expected invalid report for bad revenue inputs")
	}
	assertHasError(t, r, "revenue.rental_years")
	assertHasError(t, r, "revenue.operating_costs")
	for _, e := range r.Errors {
		if e.Level != LevelFinancial {
			t.Errorf("revenue error %s has level %s, want %s", e.Field, e.Level, LevelFinancial)
		}
	}
}

func TestValidateProjectUnrecoverableRentWarns(t *testing.T) {
	p := validProject()
	p.Revenue.RentalIncome = 1_000
	r := ValidateProject(p, pricing.Default())
	if !r.HasPath("revenue.rental_income") {
		t.Error("expected payback warning when rent does not cover operating costs")
	}
}

func TestValidateProjectNoRevenue(t *testing.T) {
	p := validProject()
	p.Revenue = nil
	r := ValidateProject(p, pricing.Default())
	if !r.Valid {
		t.Errorf("revenue block is optional: %v", r.Errors)
	}
}

func assertHasError(t *testing.T, r *Report, field string) {
	t.Helper()
	for _, e := range r.Errors {
		if e.Field == field {
			return
		}
	}
	t.Errorf("expected error with field %q, got errors: %v", field, r.Errors)
}
