package scenario

import (
	"errors"
	"testing"
	"time"

	"github.com/ChicagoDave/costplanner/pkg/cost"
	"github.com/ChicagoDave/costplanner/pkg/pricing"
	"github.com/ChicagoDave/costplanner/pkg/project"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)

func basics(city string, area float64) project.Basics {
	return project.Basics{
		Location:     project.Location{City: city},
		Area:         area,
		BuildingType: project.Residential,
		QualityLevel: project.Standard,
	}
}

func specs() project.TechnicalSpecs {
	return project.TechnicalSpecs{Floors: 3, StructuralSystem: project.Concrete, SpecialInstallations: []string{"elevator"}}
}

func mustNew(t *testing.T, name string, b project.Basics) Scenario {
	t.Helper()
	sc, err := New(pricing.Default(), name, b, specs(), fixedNow)
	require.NoError(t, err)
	return sc
}

func TestNewRunsEngine(t *testing.T) {
	sc := mustNew(t, "base", basics("İstanbul", 1000))

	assert.NotEmpty(t, sc.ID)
	assert.Equal(t, fixedNow, sc.CreatedAt)
	assert.InDelta(t, 7_498_575, sc.Costs.Total, 1e-6)
	assert.Equal(t, 800, sc.Duration)
	assert.InDelta(t, 7498.575, sc.CostPerM2(), 1e-9)
}

func TestNewPropagatesInvalidInput(t *testing.T) {
	b := basics("İstanbul", 1000)
	b.QualityLevel = "premium"
	_, err := New(pricing.Default(), "bad", b, specs(), fixedNow)
	assert.True(t, errors.Is(err, cost.ErrInvalidInput))
}

func TestRederiveLeavesOriginal(t *testing.T) {
	orig := mustNew(t, "base", basics("İstanbul", 1000))

	next, err := orig.Rederive(pricing.Default(), basics("İstanbul", 2000), specs(), fixedNow.Add(time.Hour))
	require.NoError(t, err)

	assert.NotEqual(t, orig.ID, next.ID)
	assert.Equal(t, orig.Name, next.Name)
	assert.Equal(t, 1000.0, orig.Basics.Area)
	assert.InDelta(t, 2*orig.Costs.Total, next.Costs.Total, 1e-6)
}

func TestSetClonesOnWayInAndOut(t *testing.T) {
	s := NewSet()
	sc := mustNew(t, "base", basics("İstanbul", 1000))
	s.Add(sc)

	sc.Specs.SpecialInstallations[0] = "mutated"
	got, err := s.Get(sc.ID)
	require.NoError(t, err)
	assert.Equal(t, "elevator", got.Specs.SpecialInstallations[0])

	got.Specs.SpecialInstallations[0] = "mutated again"
	again, _ := s.Get(sc.ID)
	assert.Equal(t, "elevator", again.Specs.SpecialInstallations[0])
}

func TestSetDuplicateAndDeleteAreIndependent(t *testing.T) {
	s := NewSet()
	s.now = func() time.Time { return fixedNow.Add(time.Minute) }

	a := mustNew(t, "Ankara", basics("Ankara", 1000))
	s.Add(a)

	dup, err := s.Duplicate(a.ID, "")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, dup.ID)
	assert.Equal(t, "Ankara (copy)", dup.Name)
	assert.Equal(t, fixedNow.Add(time.Minute), dup.CreatedAt)
	assert.Equal(t, a.Costs, dup.Costs)
	assert.Equal(t, 2, s.Len())

	require.NoError(t, s.Delete(a.ID))
	assert.Equal(t, 1, s.Len())

	kept, err := s.Get(dup.ID)
	require.NoError(t, err)
	assert.Equal(t, a.Costs.Total, kept.Costs.Total)

	_, err = s.Get(a.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(s.Delete(a.ID), ErrNotFound))
	_, err = s.Duplicate(a.ID, "x")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestSetListOrder(t *testing.T) {
	s := NewSet()
	names := []string{"first", "second", "third"}
	for _, n := range names {
		s.Add(mustNew(t, n, basics("İzmir", 500)))
	}
	list := s.List()
	require.Len(t, list, 3)
	for i, n := range names {
		assert.Equal(t, n, list[i].Name)
	}
}

func TestCompare(t *testing.T) {
	base := mustNew(t, "İstanbul", basics("İstanbul", 1000))
	konya := mustNew(t, "Konya", basics("Konya", 1000))
	big := mustNew(t, "İstanbul large", basics("İstanbul", 1500))

	cmp := Compare([]Scenario{base, konya, big})

	assert.Equal(t, base.ID, cmp.BaselineID)
	require.Len(t, cmp.Entries, 3)
	assert.Equal(t, 0.0, cmp.Entries[0].Delta)
	assert.Less(t, cmp.Entries[1].Delta, 0.0)
	assert.InDelta(t, 50, cmp.Entries[2].DeltaPct, 1e-9)
	assert.Equal(t, konya.ID, cmp.CheapestID)
	assert.Equal(t, big.ID, cmp.MostExpensive)
	assert.InDelta(t, big.Costs.Total-konya.Costs.Total, cmp.Spread, 1e-6)
}

func TestCompareEmpty(t *testing.T) {
	cmp := Compare(nil)
	assert.Empty(t, cmp.Entries)
	assert.Empty(t, cmp.BaselineID)
}
