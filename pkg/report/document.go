package report

import (
	"fmt"
	"time"

	"github.com/ChicagoDave/costplanner/pkg/finance"
	"github.com/ChicagoDave/costplanner/pkg/pricing"
	"github.com/ChicagoDave/costplanner/pkg/project"
	"github.com/ChicagoDave/costplanner/pkg/risk"
	"github.com/ChicagoDave/costplanner/pkg/scenario"
	"github.com/ChicagoDave/costplanner/pkg/trend"
	"golang.org/x/text/language"
)

// Document is everything one report shows. Only Scenario is required; the
// analyses are rendered when present.
type Document struct {
	Scenario    scenario.Scenario
	Table       *pricing.Table // labor hours are omitted when nil
	ROI         *finance.Analysis
	Risk        *risk.Assessment
	Trend       []trend.Point
	Language    language.Tag
	GeneratedAt time.Time
}

// Assemble runs every analysis for sc and returns the full document. ROI
// is included only when revenue is given.
func Assemble(sc scenario.Scenario, t *pricing.Table, revenue *project.RevenueInputs, src trend.Source, now time.Time, tag language.Tag) (Document, error) {
	doc := Document{
		Scenario:    sc,
		Table:       t,
		Language:    tag,
		GeneratedAt: now,
	}
	if revenue != nil {
		a, err := finance.ComputeROI(sc, *revenue)
		if err != nil {
			return Document{}, err
		}
		doc.ROI = &a
	}
	assessment := risk.AssessCatalog()
	doc.Risk = &assessment

	points, err := trend.Project(sc.Costs, now, src)
	if err != nil {
		return Document{}, err
	}
	doc.Trend = points
	return doc, nil
}

// section is a renderer-neutral block: a heading, some lines, an optional
// table. Markdown and PDF both walk the same sections.
type section struct {
	Title  string
	Lines  []string
	Header []string
	Rows   [][]string
}

// Title is the document heading.
func (d Document) Title() string {
	return "Cost estimate: " + d.Scenario.Name
}

func (d Document) money(v float64) string {
	return FormatCurrency(v, d.tag())
}

func (d Document) tag() language.Tag {
	if d.Language == language.Und {
		return language.Turkish
	}
	return d.Language
}

func (d Document) sections() []section {
	out := []section{d.projectSection(), d.breakdownSection(), d.durationSection()}
	if d.ROI != nil {
		out = append(out, d.roiSection())
	}
	if d.Risk != nil {
		out = append(out, d.riskSection())
	}
	if len(d.Trend) > 0 {
		out = append(out, d.trendSection())
	}
	return out
}

func (d Document) projectSection() section {
	sc := d.Scenario
	loc := sc.Basics.Location.City
	if sc.Basics.Location.District != "" {
		loc += " / " + sc.Basics.Location.District
	}
	return section{
		Title:  "Project",
		Header: []string{"Field", "Value"},
		Rows: [][]string{
			{"Location", loc},
			{"Building type", sc.Basics.BuildingType.String()},
			{"Quality", sc.Basics.QualityLevel.String()},
			{"Area", fmt.Sprintf("%.0f m²", sc.Basics.Area)},
			{"Floors", fmt.Sprintf("%d", sc.Specs.Floors)},
			{"Structural system", sc.Specs.StructuralSystem.String()},
		},
	}
}

func (d Document) breakdownSection() section {
	c := d.Scenario.Costs
	r := c.Rates
	lines := []string{
		fmt.Sprintf("Adjusted rate %s/m² = base %s %s structural %s height %s regional.",
			d.money(r.Adjusted), d.money(r.Base),
			FormatFactor(r.Structural), FormatFactor(r.Height), FormatFactor(r.Regional)),
	}
	if !r.LocationRecognized {
		lines = append(lines, "Location not in the regional table; a neutral multiplier was applied.")
	}
	return section{
		Title:  "Cost breakdown",
		Lines:  lines,
		Header: []string{"Item", "Amount"},
		Rows: [][]string{
			{"Materials", d.money(c.Construction.Materials)},
			{"Labor", d.money(c.Construction.Labor)},
			{"Equipment", d.money(c.Construction.Equipment)},
			{"Construction total", d.money(c.Construction.Total)},
			{"Permits", d.money(c.SoftCosts.Permits)},
			{"Design", d.money(c.SoftCosts.Design)},
			{"Consulting", d.money(c.SoftCosts.Consulting)},
			{"Soft costs total", d.money(c.SoftCosts.Total)},
			{"Site specific", d.money(c.SiteSpecific)},
			{"Subtotal", d.money(c.Subtotal)},
			{"Contingency", d.money(c.Contingency)},
			{"Total", d.money(c.Total)},
			{"Cost per m²", d.money(d.Scenario.CostPerM2())},
		},
	}
}

func (d Document) durationSection() section {
	lines := []string{fmt.Sprintf("Estimated duration: %d days.", d.Scenario.Duration)}
	if d.Table != nil {
		if rate := d.Table.BlendedLaborRate(); rate > 0 {
			hours := d.Scenario.Costs.Construction.Labor / rate
			lines = append(lines, fmt.Sprintf("Labor budget covers about %s hours at a blended %s/hour.",
				FormatNumber(hours, d.tag()), d.money(rate)))
		}
	}
	return section{Title: "Schedule", Lines: lines}
}

func (d Document) roiSection() section {
	a := d.ROI
	return section{
		Title:  "Return on investment",
		Lines:  []string{fmt.Sprintf("Rating: %s.", a.Rating)},
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Total investment", d.money(a.TotalInvestment)},
			{"Financing costs", d.money(a.FinancingCosts)},
			{"Rental income", d.money(a.TotalRentalIncome)},
			{"Future value", d.money(a.FutureValue)},
			{"Operating costs", d.money(a.TotalOperatingCosts)},
			{"Net profit", d.money(a.NetProfit)},
			{"ROI", FormatPercent(a.ROIPercentage)},
			{"IRR", FormatPercent(a.IRR)},
			{"NPV", d.money(a.NPV)},
			{"Payback", a.PaybackPeriod.String()},
		},
	}
}

func (d Document) riskSection() section {
	a := d.Risk
	rows := make([][]string, 0, len(a.Factors))
	for _, f := range a.Factors {
		rows = append(rows, []string{
			f.Description, string(f.Category), string(f.Probability), string(f.Impact), fmt.Sprintf("%d", f.Score),
		})
	}
	return section{
		Title: "Risk",
		Lines: []string{
			fmt.Sprintf("Overall risk %.2f (%s), %d high-risk items.", a.OverallRisk, a.Rating, len(a.HighRiskItems)),
		},
		Header: []string{"Factor", "Category", "Probability", "Impact", "Score"},
		Rows:   rows,
	}
}

func (d Document) trendSection() section {
	rows := make([][]string, 0, len(d.Trend))
	for _, p := range d.Trend {
		period := p.Period
		if p.Forecast {
			period += " (forecast)"
		}
		rows = append(rows, []string{period, d.money(p.TotalCosts), FormatPercent(p.InflationRate)})
	}
	s := trend.Summarize(d.Trend)
	return section{
		Title: "Cost trend",
		Lines: []string{
			fmt.Sprintf("Outlook %s; forecast total %s.", s.Outlook, d.money(s.ForecastTotal)),
		},
		Header: []string{"Period", "Total", "Inflation"},
		Rows:   rows,
	}
}
