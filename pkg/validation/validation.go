// Package validation checks a project before it reaches the cost engine.
// Findings are grouped by the stage that raised them and by severity; only
// errors block an estimate.
package validation

import (
	"fmt"

	"github.com/ChicagoDave/costplanner/pkg/pricing"
)

// Level names the check stage that produced a finding.
type Level string

const (
	LevelPricing    Level = "pricing"
	LevelSchema     Level = "schema"
	LevelAnalytical Level = "analytical"
	LevelFinancial  Level = "financial"
)

// Severity decides whether a finding blocks the estimate.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Result is one finding, keyed by the YAML path of the offending field.
type Result struct {
	Level        Level    `json:"level"`
	Severity     Severity `json:"severity"`
	Message      string   `json:"message"`
	Field        string   `json:"field"`
	ActualValue  any      `json:"actual_value,omitempty"`
	Expected     string   `json:"expected,omitempty"`
	ConflictWith string   `json:"conflict_with,omitempty"`
	Suggestions  []string `json:"suggestions,omitempty"`
}

// Report collects findings for one project. Valid is false once any error
// is recorded.
type Report struct {
	Valid    bool     `json:"valid"`
	Errors   []Result `json:"errors"`
	Warnings []Result `json:"warnings"`
	Info     []Result `json:"info"`
	Summary  string   `json:"summary"`
}

func NewReport() *Report {
	r := &Report{Valid: true, Errors: []Result{}, Warnings: []Result{}, Info: []Result{}}
	r.summarize()
	return r
}

func (r *Report) AddError(res Result)   { r.record(SeverityError, res) }
func (r *Report) AddWarning(res Result) { r.record(SeverityWarning, res) }
func (r *Report) AddInfo(res Result)    { r.record(SeverityInfo, res) }

func (r *Report) record(sev Severity, res Result) {
	res.Severity = sev
	switch sev {
	case SeverityError:
		r.Errors = append(r.Errors, res)
		r.Valid = false
	case SeverityWarning:
		r.Warnings = append(r.Warnings, res)
	default:
		r.Info = append(r.Info, res)
	}
	r.summarize()
}

// Merge appends the findings of a stage report.
func (r *Report) Merge(stage *Report) {
	for _, group := range [][]Result{stage.Errors, stage.Warnings, stage.Info} {
		for _, res := range group {
			r.record(res.Severity, res)
		}
	}
}

// HasPath reports whether an error or warning points at field. Info
// findings never count.
func (r *Report) HasPath(field string) bool {
	for _, group := range [][]Result{r.Errors, r.Warnings} {
		for _, res := range group {
			if res.Field == field {
				return true
			}
		}
	}
	return false
}

// ValidatePricing checks that the reference table can price every building
// type, quality level and structural system.
func ValidatePricing(t *pricing.Table) *Report {
	r := NewReport()
	if t == nil {
		r.AddError(Result{Level: LevelPricing, Message: "no pricing table loaded", Field: "pricing"})
		return r
	}
	if err := t.Validate(); err != nil {
		r.AddError(Result{
			Level:       LevelPricing,
			Message:     err.Error(),
			Field:       "pricing",
			Suggestions: []string{"Fix the file named by pricing.file or unset it to use the built-in table"},
		})
	}
	return r
}

func (r *Report) summarize() {
	if r.Valid {
		r.Summary = fmt.Sprintf("estimable; %s, %s", plural(len(r.Warnings), "warning"), plural(len(r.Info), "note"))
		return
	}
	r.Summary = fmt.Sprintf("blocked by %s; %s, %s", plural(len(r.Errors), "error"),
		plural(len(r.Warnings), "warning"), plural(len(r.Info), "note"))
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
