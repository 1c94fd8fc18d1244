package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ChicagoDave/costplanner/pkg/finance"
	"github.com/ChicagoDave/costplanner/pkg/project"
	"github.com/ChicagoDave/costplanner/pkg/report"
	"github.com/ChicagoDave/costplanner/pkg/risk"
	"github.com/ChicagoDave/costplanner/pkg/scenario"
	"github.com/ChicagoDave/costplanner/pkg/trend"
	"github.com/ChicagoDave/costplanner/pkg/validation"
	"github.com/phuslu/log"
)

// loadAndValidate loads the project and runs boundary validation.
func (a *app) loadAndValidate(projectPath string) (*project.Project, *validation.Report, error) {
	p, err := project.LoadProject(projectPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading project: %w", err)
	}
	return p, validation.ValidateProject(p, a.table), nil
}

// loadScenario loads, validates and estimates one project. Validation
// findings are printed only when they block the estimate.
func (a *app) loadScenario(w io.Writer, projectPath string) (*project.Project, scenario.Scenario, error) {
	p, rep, err := a.loadAndValidate(projectPath)
	if err != nil {
		return nil, scenario.Scenario{}, err
	}
	if !rep.Valid {
		printValidationReport(w, rep)
		return nil, scenario.Scenario{}, fmt.Errorf("%s: %w", projectPath, errInvalidProject)
	}
	for _, warn := range rep.Warnings {
		log.Warn().Str("project", projectPath).Str("field", warn.Field).Msg(warn.Message)
	}
	sc, err := scenario.FromProject(a.table, p, time.Now())
	if err != nil {
		return nil, scenario.Scenario{}, err
	}
	return p, sc, nil
}

func (a *app) resolveSeed(flag uint64) uint64 {
	if flag != 0 {
		return flag
	}
	if a.cfg != nil && a.cfg.Trend.Seed != 0 {
		return a.cfg.Trend.Seed
	}
	return uint64(time.Now().UnixNano())
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) runValidate(w io.Writer, projectPath string) error {
	_, rep, err := a.loadAndValidate(projectPath)
	if err != nil {
		return err
	}
	printValidationReport(w, rep)
	if !rep.Valid {
		return errInvalidProject
	}
	return nil
}

func (a *app) runEstimate(w io.Writer, projectPath string, asJSON bool) error {
	_, sc, err := a.loadScenario(w, projectPath)
	if err != nil {
		return err
	}
	if asJSON {
		return writeJSON(w, sc)
	}
	printEstimate(w, sc, a.lang)
	return nil
}

func (a *app) runROI(w io.Writer, projectPath string, asJSON bool) error {
	p, sc, err := a.loadScenario(w, projectPath)
	if err != nil {
		return err
	}
	if p.Revenue == nil {
		return fmt.Errorf("%s has no revenue section; ROI needs sale and rental assumptions", projectPath)
	}
	analysis, err := finance.ComputeROI(sc, *p.Revenue)
	if err != nil {
		return err
	}
	if asJSON {
		return writeJSON(w, analysis)
	}
	printROI(w, analysis, a.lang)
	return nil
}

func (a *app) runRisk(w io.Writer, asJSON bool) error {
	assessment := risk.AssessCatalog()
	if asJSON {
		return writeJSON(w, assessment)
	}
	printRisk(w, assessment)
	return nil
}

func (a *app) runTrend(w io.Writer, projectPath string, seed uint64, asJSON bool) error {
	_, sc, err := a.loadScenario(w, projectPath)
	if err != nil {
		return err
	}
	points, err := trend.Project(sc.Costs, time.Now(), trend.NewSource(seed))
	if err != nil {
		return err
	}
	if asJSON {
		return writeJSON(w, map[string]any{
			"seed":       seed,
			"points":     points,
			"directions": trend.Directions(points),
			"summary":    trend.Summarize(points),
		})
	}
	printTrend(w, points, seed, a.lang)
	return nil
}

func (a *app) runCompare(w io.Writer, paths []string) error {
	list := make([]scenario.Scenario, 0, len(paths))
	for _, path := range paths {
		_, sc, err := a.loadScenario(w, path)
		if err != nil {
			return err
		}
		list = append(list, sc)
	}
	printComparison(w, scenario.Compare(list), a.lang)
	return nil
}

func (a *app) runReport(w io.Writer, projectPath, format, output string, seed uint64) error {
	p, sc, err := a.loadScenario(w, projectPath)
	if err != nil {
		return err
	}
	doc, err := report.Assemble(sc, a.table, p.Revenue, trend.NewSource(seed), time.Now(), a.lang)
	if err != nil {
		return err
	}

	var out []byte
	switch format {
	case "md", "markdown":
		out = []byte(report.Markdown(doc))
	case "html":
		out, err = report.HTML(doc)
	case "pdf":
		out, err = report.PDF(doc)
	default:
		return fmt.Errorf("unknown format %q (want md, html or pdf)", format)
	}
	if err != nil {
		return err
	}

	if output == "" {
		if format == "pdf" {
			return fmt.Errorf("pdf output needs --output")
		}
		_, err = w.Write(out)
		return err
	}
	if err := os.WriteFile(output, out, 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	log.Info().Str("path", output).Str("format", format).Int("bytes", len(out)).Msg("report written")
	return nil
}
