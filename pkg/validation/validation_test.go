package validation

import (
	"strings"
	"testing"

	"github.com/ChicagoDave/costplanner/pkg/pricing"
)

func TestNewReport(t *testing.T) {
	r := NewReport()
	if !r.Valid {
		t.Error("new report should be valid")
	}
	if len(r.Errors) != 0 || len(r.Warnings) != 0 || len(r.Info) != 0 {
		t.Error("new report should have empty slices")
	}
	if r.Summary != "estimable; 0 warnings, 0 notes" {
		t.Errorf("summary = %q", r.Summary)
	}
}

func TestAddError(t *testing.T) {
	r := NewReport()
	r.AddError(Result{Level: LevelSchema, Message: "bad value", Severity: SeverityInfo})
	if r.Valid {
		t.Error("report with error should be invalid")
	}
	if len(r.Errors) != 1 {
		t.Fatalf("expected 1 error, got %d", len(r.Errors))
	}
	if r.Errors[0].Severity != SeverityError {
		t.Error("AddError should override the severity")
	}
	if r.Summary != "blocked by 1 error; 0 warnings, 0 notes" {
		t.Errorf("summary = %q", r.Summary)
	}
}

func TestWarningsAndInfoKeepReportValid(t *testing.T) {
	r := NewReport()
	r.AddWarning(Result{Level: LevelAnalytical, Message: "heads up"})
	r.AddInfo(Result{Level: LevelAnalytical, Message: "fyi"})
	if !r.Valid {
		t.Error("warnings and info should not invalidate the report")
	}
	if r.Warnings[0].Severity != SeverityWarning || r.Info[0].Severity != SeverityInfo {
		t.Errorf("severities = %s, %s", r.Warnings[0].Severity, r.Info[0].Severity)
	}
	if r.Summary != "estimable; 1 warning, 1 note" {
		t.Errorf("summary = %q", r.Summary)
	}
}

func TestMerge(t *testing.T) {
	r1 := NewReport()
	r1.AddWarning(Result{Level: LevelSchema, Message: "warn1"})

	r2 := NewReport()
	r2.AddError(Result{Level: LevelPricing, Message: "err1"})
	r2.AddWarning(Result{Level: LevelAnalytical, Message: "warn2"})
	r2.AddInfo(Result{Level: LevelAnalytical, Message: "info1"})

	r1.Merge(r2)

	if r1.Valid {
		t.Error("merged report should be invalid when the stage has errors")
	}
	if len(r1.Errors) != 1 || len(r1.Warnings) != 2 || len(r1.Info) != 1 {
		t.Errorf("counts = %d/%d/%d, want 1/2/1", len(r1.Errors), len(r1.Warnings), len(r1.Info))
	}
	if r1.Summary != "blocked by 1 error; 2 warnings, 1 note" {
		t.Errorf("summary = %q", r1.Summary)
	}
}

func TestHasPath(t *testing.T) {
	r := NewReport()
	r.AddError(Result{Level: LevelSchema, Message: "bad area", Field: "basics.area"})
	r.AddWarning(Result{Level: LevelAnalytical, Message: "unknown city", Field: "basics.location.city"})
	r.AddInfo(Result{Level: LevelAnalytical, Message: "tall", Field: "specs.floors"})

	if !r.HasPath("basics.area") || !r.HasPath("basics.location.city") {
		t.Error("HasPath should find error and warning paths")
	}
	if r.HasPath("specs.floors") {
		t.Error("HasPath should ignore info results")
	}
}

func TestValidatePricing(t *testing.T) {
	if r := ValidatePricing(pricing.Default()); !r.Valid {
		t.Errorf("default table should be valid, got %v", r.Errors)
	}

	r := ValidatePricing(&pricing.Table{})
	if r.Valid {
		t.Fatal("empty table should be invalid")
	}
	if r.Errors[0].Level != LevelPricing || !strings.Contains(r.Errors[0].Message, "base_costs") {
		t.Errorf("error = %+v", r.Errors[0])
	}

	if r := ValidatePricing(nil); r.Valid {
		t.Error("nil table should be invalid")
	}
}

func TestValidateProjectStopsOnBrokenPricing(t *testing.T) {
	p := validProject()
	p.Basics.Area = 0
	r := ValidateProject(p, &pricing.Table{})
	if r.Valid {
		t.Fatal("expected invalid report")
	}
	if len(r.Errors) != 1 || r.Errors[0].Field != "pricing" {
		t.Errorf("errors = %v, want only the pricing error", r.Errors)
	}
}
