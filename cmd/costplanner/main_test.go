package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/ChicagoDave/costplanner/pkg/finance"
	"github.com/ChicagoDave/costplanner/pkg/scenario"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	istanbulDir = "../../examples/istanbul-residential"
	ankaraDir   = "../../examples/ankara-office"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestEstimateJSON(t *testing.T) {
	out, err := execute(t, "estimate", "--json", istanbulDir)
	require.NoError(t, err, out)

	var sc scenario.Scenario
	require.NoError(t, json.Unmarshal([]byte(out), &sc))
	assert.InDelta(t, 7_498_575, sc.Costs.Total, 1e-6)
	assert.Equal(t, 800, sc.Duration)
	assert.NotEmpty(t, sc.ID)
}

func TestEstimateTable(t *testing.T) {
	out, err := execute(t, "estimate", ankaraDir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Cost Estimate: Çankaya Ofis")
	assert.Contains(t, out, "TOTAL")
	assert.Contains(t, out, "Duration:")
}

func TestValidate(t *testing.T) {
	out, err := execute(t, "validate", istanbulDir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Result: VALID")

	dir := t.TempDir()
	bad := []byte("name: broken\nbasics:\n  location:\n    city: Bursa\n  area: 0\n  building_type: castle\n  quality_level: standard\nspecs:\n  floors: 3\n  structural_system: concrete\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "project.yaml"), bad, 0o644))

	out, err = execute(t, "validate", dir)
	assert.ErrorIs(t, err, errInvalidProject)
	assert.Contains(t, out, "Result: INVALID")
	assert.Contains(t, out, "basics.area")
	assert.Contains(t, out, "basics.building_type")
}

func TestValidateMissingProject(t *testing.T) {
	_, err := execute(t, "validate", filepath.Join(t.TempDir(), "absent"))
	assert.ErrorContains(t, err, "loading project")
}

func TestROIJSON(t *testing.T) {
	out, err := execute(t, "roi", "--json", ankaraDir)
	require.NoError(t, err, out)

	var a finance.Analysis
	require.NoError(t, json.Unmarshal([]byte(out), &a))
	assert.Equal(t, 2_500_000.0, a.FinancingCosts)
	assert.Equal(t, finance.RateROI(a.ROIPercentage), a.Rating)
}

func TestRisk(t *testing.T) {
	out, err := execute(t, "risk")
	require.NoError(t, err)
	assert.Contains(t, out, "material-price-escalation")
	assert.Contains(t, out, "Overall: 4.83 (high), 3 high-risk items")
}

func TestTrendJSON(t *testing.T) {
	out, err := execute(t, "trend", "--seed", "11", "--json", istanbulDir)
	require.NoError(t, err, out)

	var resp struct {
		Seed   uint64            `json:"seed"`
		Points []json.RawMessage `json:"points"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, uint64(11), resp.Seed)
	assert.Len(t, resp.Points, 18)
}

func TestCompare(t *testing.T) {
	out, err := execute(t, "compare", istanbulDir, ankaraDir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "(cheapest)")
	assert.Contains(t, out, "Spread:")

	_, err = execute(t, "compare", istanbulDir)
	assert.Error(t, err, "compare needs at least two projects")
}

func TestReport(t *testing.T) {
	out, err := execute(t, "report", "--seed", "2", istanbulDir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "# Cost estimate:")
	assert.Contains(t, out, "## Return on investment")

	path := filepath.Join(t.TempDir(), "report.pdf")
	_, err = execute(t, "report", "-f", "pdf", "-o", path, istanbulDir)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	_, err = execute(t, "report", "-f", "pdf", istanbulDir)
	assert.ErrorContains(t, err, "--output")

	_, err = execute(t, "report", "-f", "docx", istanbulDir)
	assert.ErrorContains(t, err, "unknown format")
}

func TestPricing(t *testing.T) {
	out, err := execute(t, "pricing")
	require.NoError(t, err)
	assert.Contains(t, out, "İstanbul")
	assert.Contains(t, out, "×1.15")
	assert.Contains(t, out, "electrician")
}

func TestConfigFlag(t *testing.T) {
	_, err := execute(t, "--config", filepath.Join(t.TempDir(), "missing.toml"), "risk")
	assert.ErrorContains(t, err, "reading config file")
}
