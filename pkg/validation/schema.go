package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/ChicagoDave/costplanner/pkg/cost"
	"github.com/ChicagoDave/costplanner/pkg/pricing"
	"github.com/ChicagoDave/costplanner/pkg/project"
	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// structValidator returns a shared validator that reports fields by their
// YAML names, so paths match the project file.
func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	})
	return validate
}

// ValidateProject checks the pricing table, then the project's schema,
// analytical and financial rules. It runs before any cost computation.
// A broken table stops the pass since nothing can be priced against it.
func ValidateProject(p *project.Project, t *pricing.Table) *Report {
	r := NewReport()
	r.Merge(ValidatePricing(t))
	if !r.Valid {
		return r
	}

	validateStruct(p, r)
	validateLocation(p, t, r)
	validateSchedule(p, t, r)
	validateHeight(p, r)
	validateRevenue(p, r)

	return r
}

func validateStruct(p *project.Project, r *Report) {
	err := structValidator().Struct(p)
	if err == nil {
		return
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		r.AddError(Result{Level: LevelSchema, Message: err.Error()})
		return
	}
	for _, fe := range fieldErrs {
		path := fieldPath(fe.Namespace())
		level := LevelSchema
		if strings.HasPrefix(path, "revenue") {
			level = LevelFinancial
		}
		r.AddError(Result{
			Level:       level,
			Message:     fmt.Sprintf("%s must be %s", path, describeRule(fe.Tag(), fe.Param())),
			Field:       path,
			ActualValue: fe.Value(),
			Expected:    describeRule(fe.Tag(), fe.Param()),
		})
	}
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func describeRule(tag, param string) string {
	switch tag {
	case "required":
		return "set"
	case "oneof":
		return "one of: " + strings.ReplaceAll(param, " ", ", ")
	case "gte", "min":
		return ">= " + param
	case "lte", "max":
		return "<= " + param
	case "gt":
		return "> " + param
	case "lt":
		return "< " + param
	default:
		return tag + " " + param
	}
}

func validateLocation(p *project.Project, t *pricing.Table, r *Report) {
	city := p.Basics.Location.City
	if strings.TrimSpace(city) == "" {
		return
	}
	if _, ok := t.RegionalMultiplier(city); !ok {
		r.AddWarning(Result{
			Level:       LevelAnalytical,
			Message:     fmt.Sprintf("city %q has no regional multiplier; using %.2f", city, pricing.DefaultRegionalMultiplier),
			Field:       "basics.location.city",
			ActualValue: city,
			Suggestions: []string{"Known cities: " + strings.Join(t.Cities(), ", ")},
		})
	}
}

func validateSchedule(p *project.Project, t *pricing.Table, r *Report) {
	b := p.Basics
	if b.StartDate.IsZero() || b.CompletionDate.IsZero() {
		return
	}
	if !b.CompletionDate.After(b.StartDate) {
		r.AddError(Result{
			Level:        LevelSchema,
			Message:      "completion_date must be after start_date",
			Field:        "basics.completion_date",
			ActualValue:  b.CompletionDate.Format("2006-01-02"),
			ConflictWith: "basics.start_date",
		})
		return
	}

	days, err := cost.EstimateDuration(t, b.Area, b.BuildingType)
	if err != nil {
		// Area and building type errors are already reported by the schema pass.
		return
	}
	planned := int(b.CompletionDate.Sub(b.StartDate).Hours() / 24)
	if planned < days {
		r.AddWarning(Result{
			Level:       LevelAnalytical,
			Message:     fmt.Sprintf("planned schedule of %d days is shorter than the estimated %d days", planned, days),
			Field:       "basics.completion_date",
			ActualValue: planned,
			Expected:    fmt.Sprintf(">= %d days", days),
			Suggestions: []string{"Move completion_date later or reduce the floor area"},
		})
	}
}

func validateHeight(p *project.Project, r *Report) {
	floors := p.Specs.Floors
	if floors > cost.HeightPenaltyFloors && floors <= 50 {
		r.AddInfo(Result{
			Level:       LevelAnalytical,
			Message:     fmt.Sprintf("height penalty applies: unit rate ×%.2f for %d floors", cost.HeightFactor(floors), floors),
			Field:       "specs.floors",
			ActualValue: floors,
		})
	}
}

func validateRevenue(p *project.Project, r *Report) {
	rev := p.Revenue
	if rev == nil {
		return
	}
	if rev.RentalIncome*12 <= rev.OperatingCosts && rev.RentalYears > 0 {
		r.AddWarning(Result{
			Level:       LevelFinancial,
			Message:     "annual rental income does not cover operating costs; payback is not recoverable",
			Field:       "revenue.rental_income",
			ActualValue: rev.RentalIncome,
			Expected:    fmt.Sprintf("> %.2f per month", rev.OperatingCosts/12),
		})
	}
	if rev.FinancingCosts > 0 && rev.Loan != nil {
		r.AddInfo(Result{
			Level:   LevelFinancial,
			Message: "financing_costs is set; loan terms are ignored",
			Field:   "revenue.loan",
		})
	}
}
