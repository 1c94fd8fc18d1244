package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/ChicagoDave/costplanner/pkg/finance"
	"github.com/ChicagoDave/costplanner/pkg/pricing"
	"github.com/ChicagoDave/costplanner/pkg/project"
	"github.com/ChicagoDave/costplanner/pkg/report"
	"github.com/ChicagoDave/costplanner/pkg/risk"
	"github.com/ChicagoDave/costplanner/pkg/scenario"
	"github.com/ChicagoDave/costplanner/pkg/trend"
	"github.com/ChicagoDave/costplanner/pkg/validation"
	"golang.org/x/text/language"
)

func printValidationReport(w io.Writer, r *validation.Report) {
	if len(r.Errors) > 0 {
		fmt.Fprintf(w, "ERRORS (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			fmt.Fprintf(w, "  [%s] %s\n", e.Level, e.Message)
			if e.Field != "" {
				fmt.Fprintf(w, "    -> %s = %v\n", e.Field, e.ActualValue)
			}
			if e.Expected != "" {
				fmt.Fprintf(w, "    expected: %s\n", e.Expected)
			}
			if e.ConflictWith != "" {
				fmt.Fprintf(w, "    conflicts with: %s\n", e.ConflictWith)
			}
			for _, s := range e.Suggestions {
				fmt.Fprintf(w, "    * %s\n", s)
			}
		}
		fmt.Fprintln(w)
	}

	if len(r.Warnings) > 0 {
		fmt.Fprintf(w, "WARNINGS (%d):\n", len(r.Warnings))
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [%s] %s\n", warn.Level, warn.Message)
			if warn.Field != "" {
				fmt.Fprintf(w, "    -> %s = %v\n", warn.Field, warn.ActualValue)
			}
			if warn.Expected != "" {
				fmt.Fprintf(w, "    expected: %s\n", warn.Expected)
			}
			for _, s := range warn.Suggestions {
				fmt.Fprintf(w, "    * %s\n", s)
			}
		}
		fmt.Fprintln(w)
	}

	if len(r.Info) > 0 {
		fmt.Fprintf(w, "INFO (%d):\n", len(r.Info))
		for _, i := range r.Info {
			fmt.Fprintf(w, "  [%s] %s\n", i.Level, i.Message)
		}
		fmt.Fprintln(w)
	}

	if r.Valid {
		fmt.Fprintf(w, "Result: VALID (%s)\n", r.Summary)
	} else {
		fmt.Fprintf(w, "Result: INVALID (%s)\n", r.Summary)
	}
}

func printEstimate(w io.Writer, sc scenario.Scenario, tag language.Tag) {
	c := sc.Costs
	money := func(v float64) string { return report.FormatCurrency(v, tag) }

	fmt.Fprintf(w, "Cost Estimate: %s\n", sc.Name)
	fmt.Fprintln(w, "==============================")
	fmt.Fprintf(w, "  %s, %.0f m², %s/%s, %d floors, %s\n\n",
		sc.Basics.Location.City, sc.Basics.Area, sc.Basics.BuildingType, sc.Basics.QualityLevel,
		sc.Specs.Floors, sc.Specs.StructuralSystem)

	rows := []struct {
		label string
		value float64
	}{
		{"Materials", c.Construction.Materials},
		{"Labor", c.Construction.Labor},
		{"Equipment", c.Construction.Equipment},
		{"Construction", c.Construction.Total},
		{"Permits", c.SoftCosts.Permits},
		{"Design", c.SoftCosts.Design},
		{"Consulting", c.SoftCosts.Consulting},
		{"Soft costs", c.SoftCosts.Total},
		{"Site specific", c.SiteSpecific},
		{"Subtotal", c.Subtotal},
		{"Contingency", c.Contingency},
		{"TOTAL", c.Total},
	}
	for _, row := range rows {
		fmt.Fprintf(w, "  %-16s %20s\n", row.label, money(row.value))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Cost per m²:     %s\n", money(sc.CostPerM2()))
	fmt.Fprintf(w, "  Adjusted rate:   %s/m² (base %s %s %s %s)\n", money(c.Rates.Adjusted), money(c.Rates.Base),
		report.FormatFactor(c.Rates.Structural), report.FormatFactor(c.Rates.Height), report.FormatFactor(c.Rates.Regional))
	fmt.Fprintf(w, "  Duration:        %d days\n", sc.Duration)
	if !c.Rates.LocationRecognized {
		fmt.Fprintln(w, "  Note: city not in the regional table; multiplier 1.00 applied")
	}
}

func printROI(w io.Writer, a finance.Analysis, tag language.Tag) {
	money := func(v float64) string { return report.FormatCurrency(v, tag) }

	fmt.Fprintln(w, "Return on Investment")
	fmt.Fprintln(w, "====================")
	fmt.Fprintf(w, "  Total investment:    %20s\n", money(a.TotalInvestment))
	fmt.Fprintf(w, "  Financing costs:     %20s\n", money(a.FinancingCosts))
	fmt.Fprintf(w, "  Rental income:       %20s\n", money(a.TotalRentalIncome))
	fmt.Fprintf(w, "  Future value:        %20s\n", money(a.FutureValue))
	fmt.Fprintf(w, "  Operating costs:     %20s\n", money(a.TotalOperatingCosts))
	fmt.Fprintf(w, "  Net profit:          %20s\n", money(a.NetProfit))
	fmt.Fprintf(w, "  ROI:                 %20s\n", report.FormatPercent(a.ROIPercentage))
	fmt.Fprintf(w, "  IRR (approx.):       %20s\n", report.FormatPercent(a.IRR))
	fmt.Fprintf(w, "  NPV:                 %20s\n", money(a.NPV))
	fmt.Fprintf(w, "  Payback:             %20s\n", a.PaybackPeriod)
	fmt.Fprintf(w, "  Rating:              %20s\n", a.Rating)
}

func printRisk(w io.Writer, a risk.Assessment) {
	fmt.Fprintln(w, "Risk Assessment")
	fmt.Fprintln(w, "===============")
	fmt.Fprintf(w, "%-28s %-14s %-8s %-8s %5s\n", "Factor", "Category", "Prob.", "Impact", "Score")
	for _, f := range a.Factors {
		marker := ""
		if f.Score >= risk.HighRiskThreshold {
			marker = " !"
		}
		fmt.Fprintf(w, "%-28s %-14s %-8s %-8s %5d%s\n", f.ID, f.Category, f.Probability, f.Impact, f.Score, marker)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Overall: %.2f (%s), %d high-risk items\n", a.OverallRisk, a.Rating, len(a.HighRiskItems))
	for _, f := range a.HighRiskItems {
		fmt.Fprintf(w, "  * %s: %s\n", f.ID, f.Mitigation)
	}
}

func printTrend(w io.Writer, points []trend.Point, seed uint64, tag language.Tag) {
	fmt.Fprintf(w, "Cost Trend (seed %d)\n", seed)
	fmt.Fprintln(w, "====================")
	dirs := trend.Directions(points)
	for i, p := range points {
		label := p.Period
		if p.Forecast {
			label += "*"
		}
		dir := ""
		if i > 0 {
			dir = string(dirs[i-1])
		}
		fmt.Fprintf(w, "  %-10s %20s %7s  %s\n", label, report.FormatCurrency(p.TotalCosts, tag), report.FormatPercent(p.InflationRate), dir)
	}
	s := trend.Summarize(points)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  * forecast. Outlook %s, inflation %s to %s.\n", s.Outlook,
		report.FormatPercent(s.TroughInflation), report.FormatPercent(s.PeakInflation))
}

func printComparison(w io.Writer, c scenario.Comparison, tag language.Tag) {
	fmt.Fprintf(w, "%-28s %20s %16s %8s %10s\n", "Scenario", "Total", "Per m²", "Days", "vs. base")
	for _, e := range c.Entries {
		marker := ""
		if e.ID == c.CheapestID {
			marker = " (cheapest)"
		}
		fmt.Fprintf(w, "%-28s %20s %16s %8d %10s%s\n", e.Name,
			report.FormatCurrency(e.Total, tag), report.FormatCurrency(e.CostPerM2, tag),
			e.DurationDays, report.FormatPercent(e.DeltaPct), marker)
	}
	fmt.Fprintf(w, "\nSpread: %s\n", report.FormatCurrency(c.Spread, tag))
}

func printPricing(w io.Writer, t *pricing.Table, tag language.Tag) {
	fmt.Fprintln(w, "Base costs per m²")
	fmt.Fprintf(w, "  %-12s", "")
	for _, q := range project.QualityLevels {
		fmt.Fprintf(w, " %14s", q)
	}
	fmt.Fprintln(w)
	for _, bt := range project.BuildingTypes {
		fmt.Fprintf(w, "  %-12s", bt)
		for _, q := range project.QualityLevels {
			v, _ := t.BaseCost(bt, q)
			fmt.Fprintf(w, " %14s", report.FormatCurrency(v, tag))
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "\nStructural factors")
	for _, ss := range project.StructuralSystems {
		v, _ := t.StructuralFactor(ss)
		fmt.Fprintf(w, "  %-12s %s\n", ss, report.FormatFactor(v))
	}

	fmt.Fprintln(w, "\nRegional multipliers")
	for _, city := range t.Cities() {
		v, _ := t.RegionalMultiplier(city)
		fmt.Fprintf(w, "  %-12s %s\n", city, report.FormatFactor(v))
	}

	fmt.Fprintln(w, "\nLabor rates per hour")
	trades := make([]string, 0, len(t.LaborRates))
	for trade := range t.LaborRates {
		trades = append(trades, trade)
	}
	sort.Strings(trades)
	for _, trade := range trades {
		fmt.Fprintf(w, "  %-16s %s\n", trade, report.FormatCurrency(t.LaborRates[trade], tag))
	}
}
