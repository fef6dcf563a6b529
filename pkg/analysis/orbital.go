package analysis

import (
	"github.com/oxygene76/skycalc/internal/types"
	"github.com/oxygene76/skycalc/pkg/astronomy/orbital"
	"github.com/oxygene76/skycalc/pkg/astronomy/units"
	"github.com/oxygene76/skycalc/pkg/table"
)

// Output columns of the orbital domains.
const (
	ColPeriodYears  = "orbital_period_years"
	ColSpeedKMS     = "orbital_speed_kms"
	ColAphelionAU   = "aphelion_AU"
	ColSemiMajorAU  = "semiMajorAxis_AU"
	ExoplanetPrefix = "exo_"
)

// orbitalNEO derives periods and speeds for small bodies from perihelion
// distance and eccentricity, assuming a solar-mass central body.
type orbitalNEO struct{}

func (c *orbitalNEO) domain() types.Domain { return types.DomainOrbitalNEO }

func (c *orbitalNEO) required() []string { return []string{ColPerihel, ColEcc} }

func (c *orbitalNEO) outputs() []string {
	return []string{ColPeriodYears, ColSpeedKMS, ColAphelionAU, ColSemiMajorAU}
}

func (c *orbitalNEO) bind(t *table.Table) bool {
	return t.Has(ColPerihel) && t.Has(ColEcc)
}

func (c *orbitalNEO) row(t *table.Table, i int) rowOutcome {
	q := t.Value(ColPerihel, i).Opt()
	e := t.Value(ColEcc, i).Opt()
	if !q.Valid || !e.Valid {
		return missing(reasonMissingInput)
	}

	elements := orbital.FromPerihelion(q.Value, e.Value)
	if !elements.IsBound() {
		return missing(reasonUnbound)
	}

	orbit := orbital.KeplerOrbit(units.SolarMass, elements.SemiMajorAxisMeters(), e.Value)
	if !orbit.Finite() || !finite(elements.SemiMajorAxis) {
		return missing(reasonNonFinite)
	}

	return computed(
		table.Number(orbit.PeriodYears),
		table.Number(orbit.OrbitalSpeed/1000),
		table.Number(orbit.Aphelion/units.AU),
		table.Number(elements.SemiMajorAxis),
	)
}

func (c *orbitalNEO) placeholder() []table.Value { return missingCells(4) }

func (c *orbitalNEO) aggregate(res *types.PipelineResult, _ *table.Table, out [][]table.Value) {
	periods := validFloats(out[0])
	res.Orbital = &types.OrbitalAggregates{
		MeanPeriodYears: mean(periods),
		MeanSpeedKMS:    mean(validFloats(out[1])),
		Processed:       len(periods),
	}
}

// orbitalExoplanet recovers a circular orbit from the planet's period,
// assuming a solar-mass host star.
type orbitalExoplanet struct{}

func (c *orbitalExoplanet) domain() types.Domain { return types.DomainOrbitalExoplanet }

func (c *orbitalExoplanet) required() []string { return []string{ColOrbPer} }

func (c *orbitalExoplanet) outputs() []string {
	return []string{ColSemiMajorAU, ColSpeedKMS}
}

func (c *orbitalExoplanet) bind(t *table.Table) bool {
	return t.Has(ColOrbPer)
}

func (c *orbitalExoplanet) row(t *table.Table, i int) rowOutcome {
	days := t.Value(ColOrbPer, i).Opt()
	if !days.Valid {
		return missing(reasonMissingInput)
	}
	if days.Value <= 0 {
		return missing(reasonNonPositive)
	}

	circ := orbital.FromPeriod(units.SolarMass, days.Value*units.SecondsPerDay)
	aAU := circ.SemiMajorAxis / units.AU
	speed := circ.Speed / 1000
	if !finite(aAU, speed) {
		return missing(reasonNonFinite)
	}

	return computed(table.Number(aAU), table.Number(speed))
}

func (c *orbitalExoplanet) placeholder() []table.Value { return missingCells(2) }

func (c *orbitalExoplanet) aggregate(res *types.PipelineResult, _ *table.Table, out [][]table.Value) {
	speeds := validFloats(out[1])
	res.Exoplanet = &types.ExoplanetAggregates{
		MeanSpeedKMS: mean(speeds),
		Processed:    len(speeds),
	}
}
