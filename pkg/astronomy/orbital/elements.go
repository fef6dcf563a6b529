package orbital

import (
	"math"

	"github.com/oxygene76/skycalc/pkg/astronomy/units"
	skyerrors "github.com/oxygene76/skycalc/pkg/errors"
)

// OrbitalElements represents the in-plane Keplerian elements needed for
// period and extent calculations.
type OrbitalElements struct {
	SemiMajorAxis float64 // a - Semi-major axis (AU)
	Eccentricity  float64 // e - Eccentricity (0-1 for bound orbits)
}

// FromPerihelion builds elements from a perihelion distance q (AU) and
// eccentricity using a = q/(1-e). Callers must ensure e < 1.
func FromPerihelion(q, e float64) OrbitalElements {
	return OrbitalElements{
		SemiMajorAxis: q / (1 - e),
		Eccentricity:  e,
	}
}

// IsBound reports whether the orbit is elliptical.
func (oe OrbitalElements) IsBound() bool {
	return oe.Eccentricity < 1
}

// GetPerihelion returns the perihelion distance
func (oe OrbitalElements) GetPerihelion() float64 {
	return oe.SemiMajorAxis * (1 - oe.Eccentricity)
}

// GetAphelion returns the aphelion distance
func (oe OrbitalElements) GetAphelion() float64 {
	return oe.SemiMajorAxis * (1 + oe.Eccentricity)
}

// SemiMajorAxisMeters returns a in meters.
func (oe OrbitalElements) SemiMajorAxisMeters() float64 {
	return oe.SemiMajorAxis * units.AU
}

// Orbit is the result of KeplerOrbit. Distances are in meters, speeds in m/s.
type Orbit struct {
	PeriodSeconds  float64
	PeriodDays     float64
	PeriodYears    float64
	OrbitalSpeed   float64 // circular speed sqrt(GM/a)
	SpecificEnergy float64 // J/kg
	Perihelion     float64
	Aphelion       float64
	Eccentricity   float64
}

// KeplerOrbit applies Kepler's third law around a central mass (kg) for a
// semi-major axis in meters. Inputs are not validated: a non-positive mass or
// axis yields non-finite fields, see Finite.
func KeplerOrbit(centralMass, semiMajorAxis, eccentricity float64) Orbit {
	mu := units.G * centralMass
	period := 2 * math.Pi * math.Sqrt(math.Pow(semiMajorAxis, 3)/mu)

	return Orbit{
		PeriodSeconds:  period,
		PeriodDays:     period / units.SecondsPerDay,
		PeriodYears:    period / units.SecondsPerYear,
		OrbitalSpeed:   math.Sqrt(mu / semiMajorAxis),
		SpecificEnergy: -mu / (2 * semiMajorAxis),
		Perihelion:     semiMajorAxis * (1 - eccentricity),
		Aphelion:       semiMajorAxis * (1 + eccentricity),
		Eccentricity:   eccentricity,
	}
}

// Finite reports whether every field of the orbit is a finite number.
func (o Orbit) Finite() bool {
	for _, v := range []float64{
		o.PeriodSeconds, o.PeriodDays, o.PeriodYears, o.OrbitalSpeed,
		o.SpecificEnergy, o.Perihelion, o.Aphelion,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Rotation is the result of AngularVelocity.
type Rotation struct {
	AngularVelocity float64 // rad/s
	LinearVelocity  float64 // m/s
	Period          float64 // s
	Radius          float64 // m
}

// AngularVelocity returns ω = 2π/period and v = ω·radius.
func AngularVelocity(period, radius float64) (Rotation, error) {
	if period == 0 {
		return Rotation{}, skyerrors.Wrap(skyerrors.ErrConfiguration, "period cannot be zero")
	}
	omega := 2 * math.Pi / period
	return Rotation{
		AngularVelocity: omega,
		LinearVelocity:  omega * radius,
		Period:          period,
		Radius:          radius,
	}, nil
}

// CircularOrbit describes a circular orbit recovered from its period.
type CircularOrbit struct {
	SemiMajorAxis float64 // m
	Speed         float64 // m/s
}

// FromPeriod inverts Kepler's third law, a³ = G·M·T²/(4π²), for a period in
// seconds around a central mass in kg, and returns the circular speed 2πa/T.
func FromPeriod(centralMass, periodSeconds float64) CircularOrbit {
	a := math.Cbrt(units.G * centralMass * periodSeconds * periodSeconds / (4 * math.Pi * math.Pi))
	return CircularOrbit{
		SemiMajorAxis: a,
		Speed:         2 * math.Pi * a / periodSeconds,
	}
}
