// Package units holds the physical constants shared by the formula packages.
package units

const (
	SpeedOfLightKMS = 299792.458  // c in km/s
	DefaultH0       = 70.0        // Hubble constant in km/s/Mpc
	G               = 6.67430e-11 // gravitational constant in m³/(kg·s²)
	AU              = 1.496e11    // astronomical unit in meters
	SolarMass       = 1.989e30    // kg

	MpcMeters     = 3.086e22 // meters per megaparsec
	MpcLightYears = 3.262e6  // light-years per megaparsec

	SecondsPerDay  = 86400.0
	SecondsPerYear = SecondsPerDay * 365.25
)
