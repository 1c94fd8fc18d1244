package project

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestLoadProject(t *testing.T) {
	p, err := LoadProject("../../examples/istanbul-residential")
	if err != nil {
		t.Fatalf("LoadProject failed: %v", err)
	}

	if p.Name != "Kadıköy Konut" {
		t.Errorf("name = %q, want %q", p.Name, "Kadıköy Konut")
	}
	if p.Basics.Location.City != "İstanbul" {
		t.Errorf("city = %q, want %q", p.Basics.Location.City, "İstanbul")
	}
	if p.Basics.Area != 1000 {
		t.Errorf("area = %v, want 1000", p.Basics.Area)
	}
	if p.Basics.BuildingType != Residential {
		t.Errorf("building_type = %q, want %q", p.Basics.BuildingType, Residential)
	}
	if p.Basics.QualityLevel != Standard {
		t.Errorf("quality_level = %q, want %q", p.Basics.QualityLevel, Standard)
	}
	wantStart := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	if !p.Basics.StartDate.Equal(wantStart) {
		t.Errorf("start_date = %v, want %v", p.Basics.StartDate, wantStart)
	}

	if p.Specs.Floors != 3 {
		t.Errorf("floors = %d, want 3", p.Specs.Floors)
	}
	if p.Specs.StructuralSystem != Concrete {
		t.Errorf("structural_system = %q, want %q", p.Specs.StructuralSystem, Concrete)
	}
	if len(p.Specs.SpecialInstallations) != 2 {
		t.Errorf("special_installations = %d, want 2", len(p.Specs.SpecialInstallations))
	}

	if p.Revenue == nil {
		t.Fatal("expected revenue block")
	}
	if p.Revenue.RentalYears != 10 {
		t.Errorf("rental_years = %d, want 10", p.Revenue.RentalYears)
	}
	if p.Revenue.Loan == nil || p.Revenue.Loan.TermYears != 10 {
		t.Errorf("loan = %+v, want term_years 10", p.Revenue.Loan)
	}
}

func TestLoadProjectFile(t *testing.T) {
	p, err := LoadProject("../../examples/ankara-office/project.yaml")
	if err != nil {
		t.Fatalf("LoadProject failed: %v", err)
	}
	if p.Specs.StructuralSystem != Steel {
		t.Errorf("structural_system = %q, want %q", p.Specs.StructuralSystem, Steel)
	}
	if p.Specs.Floors != 12 {
		t.Errorf("floors = %d, want 12", p.Specs.Floors)
	}
}

func TestLoadProjectMissing(t *testing.T) {
	_, err := LoadProject("/nonexistent/path")
	if err == nil {
		t.Error("expected error for missing project directory")
	}
}

func TestParseInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("basics: [unclosed"))
	if err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestEnumValidity(t *testing.T) {
	for _, b := range BuildingTypes {
		if !b.IsValid() {
			t.Errorf("%s should be valid", b)
		}
	}
	for _, q := range QualityLevels {
		if !q.IsValid() {
			t.Errorf("%s should be valid", q)
		}
	}
	for _, s := range StructuralSystems {
		if !s.IsValid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if BuildingType("villa").IsValid() {
		t.Error("villa should not be a valid building type")
	}
	if QualityLevel("").IsValid() {
		t.Error("empty quality level should be invalid")
	}
	if StructuralSystem("timber").IsValid() {
		t.Error("timber should not be a valid structural system")
	}
}

func TestTechnicalSpecsClone(t *testing.T) {
	orig := TechnicalSpecs{Floors: 4, StructuralSystem: Mixed, SpecialInstallations: []string{"elevator"}}
	c := orig.Clone()
	c.SpecialInstallations[0] = "sprinkler"
	if orig.SpecialInstallations[0] != "elevator" {
		t.Error("clone must not share special installations with the original")
	}
}

func TestBasicsJSONOmitsUnsetDates(t *testing.T) {
	b := Basics{Location: Location{City: "Bursa"}, Area: 500, BuildingType: Industrial, QualityLevel: Economic}
	data, err := json.Marshal(b)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "start_date") || strings.Contains(string(data), "completion_date") {
		t.Errorf("zero dates should be omitted, got %s", data)
	}

	b.StartDate = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	data, err = json.Marshal(b)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"start_date":"2026-03-01T00:00:00Z"`) {
		t.Errorf("start_date missing from %s", data)
	}
	if strings.Contains(string(data), "completion_date") {
		t.Errorf("unset completion_date should be omitted, got %s", data)
	}
}
