// Package cosmology implements the linearized Hubble-law relations used to turn
// redshifts into distances.
package cosmology

import (
	"github.com/oxygene76/skycalc/pkg/astronomy/units"
	skyerrors "github.com/oxygene76/skycalc/pkg/errors"
	"github.com/oxygene76/skycalc/pkg/opt"
)

// Distance is the result of HubbleDistance.
type Distance struct {
	Redshift         float64
	VelocityKMS      float64 // recession velocity c·z
	DistanceMpc      float64
	DistanceMeters   float64
	DistanceLightYrs float64
	H0Used           float64 // km/s/Mpc
}

// HubbleConstant returns velocity/distance in km/s/Mpc.
func HubbleConstant(velocity, distance float64) (float64, error) {
	if distance == 0 {
		return 0, skyerrors.Wrap(skyerrors.ErrConfiguration, "distance cannot be zero")
	}
	return velocity / distance, nil
}

// Redshift returns the fractional wavelength shift (observed-rest)/rest.
func Redshift(observedWavelength, restWavelength float64) (float64, error) {
	if restWavelength == 0 {
		return 0, skyerrors.Wrap(skyerrors.ErrConfiguration, "rest wavelength cannot be zero")
	}
	return (observedWavelength - restWavelength) / restWavelength, nil
}

// HubbleDistance converts a redshift into a distance with v = c·z and d = v/H0.
// The approximation only holds for small z. Negative z is accepted and yields a
// negative (blueshifted) distance. When h0 is absent units.DefaultH0 is used.
func HubbleDistance(z float64, h0 opt.Float) Distance {
	hubble := h0.Or(units.DefaultH0)
	v := units.SpeedOfLightKMS * z
	dMpc := v / hubble

	return Distance{
		Redshift:         z,
		VelocityKMS:      v,
		DistanceMpc:      dMpc,
		DistanceMeters:   dMpc * units.MpcMeters,
		DistanceLightYrs: dMpc * units.MpcLightYears,
		H0Used:           hubble,
	}
}
