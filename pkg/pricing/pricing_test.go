package pricing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ChicagoDave/costplanner/pkg/project"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultBaseCosts(t *testing.T) {
	tbl := Default()

	want := map[project.BuildingType][3]float64{
		project.Residential: {3200, 4500, 7200},
		project.Commercial:  {3800, 5200, 8500},
		project.Industrial:  {2800, 3900, 6200},
	}
	for bt, row := range want {
		for i, ql := range project.QualityLevels {
			got, ok := tbl.BaseCost(bt, ql)
			require.True(t, ok, "%s/%s missing", bt, ql)
			assert.Equal(t, row[i], got, "%s/%s", bt, ql)
		}
	}
}

func TestDefaultStructuralFactors(t *testing.T) {
	tbl := Default()
	for ss, want := range map[project.StructuralSystem]float64{
		project.Concrete: 1.00,
		project.Steel:    1.12,
		project.Mixed:    1.08,
	} {
		got, ok := tbl.StructuralFactor(ss)
		require.True(t, ok)
		assert.Equal(t, want, got, string(ss))
	}
}

func TestRegionalMultiplier(t *testing.T) {
	tbl := Default()
	assert.Len(t, tbl.Cities(), 10)

	m, ok := tbl.RegionalMultiplier("İstanbul")
	assert.True(t, ok)
	assert.Equal(t, 1.15, m)

	m, ok = tbl.RegionalMultiplier("  Ankara ")
	assert.True(t, ok, "surrounding whitespace is ignored")
	assert.Equal(t, 1.05, m)

	m, ok = tbl.RegionalMultiplier("Atlantis")
	assert.False(t, ok)
	assert.Equal(t, DefaultRegionalMultiplier, m)
}

func TestDurationRates(t *testing.T) {
	tbl := Default()
	for bt, want := range map[project.BuildingType]float64{
		project.Residential: 0.8,
		project.Commercial:  0.9,
		project.Industrial:  0.7,
	} {
		got, ok := tbl.DaysPerM2(bt)
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
}

func TestBlendedLaborRate(t *testing.T) {
	tbl := &Table{LaborRates: map[string]float64{"mason": 200, "plumber": 300}}
	assert.Equal(t, 250.0, tbl.BlendedLaborRate())
	assert.Equal(t, 0.0, (&Table{}).BlendedLaborRate())
	assert.Greater(t, Default().BlendedLaborRate(), 0.0)
}

func TestParseRejectsIncompleteTable(t *testing.T) {
	_, err := Parse([]byte(`
base_costs:
  residential: {economic: 3200, standard: 4500}
structural_factors: {concrete: 1, steel: 1.12, mixed: 1.08}
duration_days_per_m2: {residential: 0.8, commercial: 0.9, industrial: 0.7}
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base_costs")
}

func TestParseRejectsNonPositiveMultiplier(t *testing.T) {
	data, err := os.ReadFile("pricing.yaml")
	require.NoError(t, err)
	tbl, err := Parse(data)
	require.NoError(t, err)

	tbl.RegionalMultipliers["Ankara"] = 0
	assert.Error(t, tbl.Validate())
}

func TestLoadOverrideFile(t *testing.T) {
	data, err := os.ReadFile("pricing.yaml")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "pricing.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	tbl, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default().BaseCosts, tbl.BaseCosts)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
