package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/ChicagoDave/costplanner/pkg/cost"
	"github.com/ChicagoDave/costplanner/pkg/finance"
	"github.com/ChicagoDave/costplanner/pkg/project"
	"github.com/ChicagoDave/costplanner/pkg/report"
	"github.com/ChicagoDave/costplanner/pkg/risk"
	"github.com/ChicagoDave/costplanner/pkg/scenario"
	"github.com/ChicagoDave/costplanner/pkg/trend"
	"github.com/ChicagoDave/costplanner/pkg/validation"
	"golang.org/x/text/language"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// errorStatus maps calculation errors to HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, scenario.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, cost.ErrInvalidInput),
		errors.Is(err, finance.ErrDegenerateInput),
		errors.Is(err, trend.ErrNoCosts):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		s.logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	}
	writeError(w, status, err.Error())
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// decodeProject reads and validates a project body. It writes the error
// response itself and returns false when the request cannot proceed.
func (s *Server) decodeProject(w http.ResponseWriter, r *http.Request) (*project.Project, *validation.Report, bool) {
	var p project.Project
	if err := decodeJSON(w, r, &p); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, nil, false
	}
	rep := validation.ValidateProject(&p, s.table)
	if !rep.Valid {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":      "project failed validation",
			"validation": rep,
		})
		return nil, nil, false
	}
	return &p, rep, true
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, `<!DOCTYPE html>
<html><head><title>CostPlanner</title></head>
<body style="font-family:system-ui;max-width:720px;margin:3em auto">
<h1>CostPlanner</h1>
<p>Construction cost estimation API. POST a project to <code>/api/estimate</code>; see <code>/api/pricing</code> for the reference table.</p>
</body></html>`)
}

func (s *Server) handlePricing(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.table)
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var p project.Project
	if err := decodeJSON(w, r, &p); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, validation.ValidateProject(&p, s.table))
}

func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	p, rep, ok := s.decodeProject(w, r)
	if !ok {
		return
	}
	sc, err := scenario.FromProject(s.table, p, s.now())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"scenario":    sc,
		"cost_per_m2": sc.CostPerM2(),
		"validation":  rep,
	})
}

func (s *Server) handleROI(w http.ResponseWriter, r *http.Request) {
	p, _, ok := s.decodeProject(w, r)
	if !ok {
		return
	}
	if p.Revenue == nil {
		writeError(w, http.StatusUnprocessableEntity, "revenue inputs are required for ROI")
		return
	}
	sc, err := scenario.FromProject(s.table, p, s.now())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	analysis, err := finance.ComputeROI(sc, *p.Revenue)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"scenario": sc,
		"roi":      analysis,
	})
}

func (s *Server) handleRisk(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, risk.AssessCatalog())
}

// trendSeed resolves ?seed=, then the configured seed, then a fresh one.
func (s *Server) trendSeed(r *http.Request) (uint64, error) {
	if v := r.URL.Query().Get("seed"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("seed must be an unsigned integer: %w", err)
		}
		return seed, nil
	}
	if s.cfg.Trend.Seed != 0 {
		return s.cfg.Trend.Seed, nil
	}
	return s.seed(), nil
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	seed, err := s.trendSeed(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	p, _, ok := s.decodeProject(w, r)
	if !ok {
		return
	}
	sc, err := scenario.FromProject(s.table, p, s.now())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	points, err := trend.Project(sc.Costs, s.now(), trend.NewSource(seed))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"seed":       strconv.FormatUint(seed, 10),
		"points":     points,
		"directions": trend.Directions(points),
		"summary":    trend.Summarize(points),
	})
}

func (s *Server) handleListScenarios(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.scenarios.List())
}

func (s *Server) handleCreateScenario(w http.ResponseWriter, r *http.Request) {
	p, _, ok := s.decodeProject(w, r)
	if !ok {
		return
	}
	sc, err := scenario.FromProject(s.table, p, s.now())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.scenarios.Add(sc)

	sess, _ := SessionFrom(r.Context())
	s.logger.Info().
		Str("scenario", sc.ID).
		Str("user", sess.User).
		Float64("total", sc.Costs.Total).
		Msg("scenario created")
	writeJSON(w, http.StatusCreated, sc)
}

func (s *Server) handleGetScenario(w http.ResponseWriter, r *http.Request) {
	sc, err := s.scenarios.Get(r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sc)
}

func (s *Server) handleDeleteScenario(w http.ResponseWriter, r *http.Request) {
	if err := s.scenarios.Delete(r.PathValue("id")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDuplicateScenario(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(w, r, &body); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	dup, err := s.scenarios.Duplicate(r.PathValue("id"), body.Name)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, dup)
}

// handleCompare compares ?ids=a,b,c in that order, or every held scenario
// when ids is absent. The first scenario is the baseline.
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var list []scenario.Scenario
	if ids := r.URL.Query().Get("ids"); ids != "" {
		for _, id := range strings.Split(ids, ",") {
			sc, err := s.scenarios.Get(strings.TrimSpace(id))
			if err != nil {
				s.fail(w, r, err)
				return
			}
			list = append(list, sc)
		}
	} else {
		list = s.scenarios.List()
	}
	writeJSON(w, http.StatusOK, scenario.Compare(list))
}

func (s *Server) handleScenarioReport(w http.ResponseWriter, r *http.Request) {
	sc, err := s.scenarios.Get(r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.renderReport(w, r, sc, nil)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	p, _, ok := s.decodeProject(w, r)
	if !ok {
		return
	}
	sc, err := scenario.FromProject(s.table, p, s.now())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.renderReport(w, r, sc, p.Revenue)
}

// reportLanguage reads ?lang= and falls back to the configured language.
func (s *Server) reportLanguage(r *http.Request) (language.Tag, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("lang"))
	if raw == "" {
		return s.lang, nil
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return language.Und, fmt.Errorf("invalid lang %q: %w", raw, err)
	}
	return tag, nil
}

func (s *Server) renderReport(w http.ResponseWriter, r *http.Request, sc scenario.Scenario, revenue *project.RevenueInputs) {
	seed, err := s.trendSeed(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	tag, err := s.reportLanguage(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	doc, err := report.Assemble(sc, s.table, revenue, trend.NewSource(seed), s.now(), tag)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	switch format := r.URL.Query().Get("format"); format {
	case "", "html":
		out, err := report.HTML(doc)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(out)
	case "md", "markdown":
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		io.WriteString(w, report.Markdown(doc))
	case "pdf":
		out, err := report.PDF(doc)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", sc.ID+".pdf"))
		w.Write(out)
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown format %q (want html, md or pdf)", format))
	}
}
