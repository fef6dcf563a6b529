// Package photometry estimates photometric redshifts from broadband fluxes.
package photometry

import (
	"math"

	"github.com/oxygene76/skycalc/pkg/opt"
)

// Quality labels attached to a photo-z estimate.
const (
	QualityGood   = "good"
	QualityMedium = "medium"
	QualityLow    = "low"
	QualityPoor   = "poor"
	QualityNoData = "no_data"
)

// Method identifies the estimator in results.
const Method = "photometric_colors"

// Empirical colour relation z ≈ slope·(g-r) + intercept, corrected by the r-z colour.
const (
	grSlope     = 0.25
	grIntercept = -0.1
	rzSlope     = 0.15
)

// Estimate is the result of PhotometricRedshift. PhotoZ, ColorGR, MagG and MagR
// are absent only for poor quality estimates; ColorRZ is absent whenever no
// usable z-band flux was supplied.
type Estimate struct {
	PhotoZ  opt.Float
	ColorGR opt.Float
	ColorRZ opt.Float
	MagG    opt.Float
	MagR    opt.Float
	Quality string
	Method  string
}

// Magnitude converts a flux in nanomaggies to an AB magnitude.
func Magnitude(flux float64) float64 {
	return 22.5 - 2.5*math.Log10(flux)
}

// PhotometricRedshift estimates a redshift from g, r and optionally z band
// fluxes (nanomaggies). It never fails: non-positive g or r fluxes produce a
// poor quality estimate with no redshift. The result is floored at zero.
func PhotometricRedshift(fluxG, fluxR float64, fluxZ opt.Float) Estimate {
	if fluxG <= 0 || fluxR <= 0 {
		return Estimate{Quality: QualityPoor, Method: Method}
	}

	magG := Magnitude(fluxG)
	magR := Magnitude(fluxR)
	colorGR := magG - magR

	photoZ := grSlope*colorGR + grIntercept
	colorRZ := opt.None()
	var quality string

	if fluxZ.Positive() {
		rz := magR - Magnitude(fluxZ.Value)
		colorRZ = opt.Some(rz)
		photoZ += rzSlope * rz

		switch {
		case math.Abs(colorGR) < 2.0 && math.Abs(rz) < 1.5:
			quality = QualityGood
		case math.Abs(colorGR) < 3.0 && math.Abs(rz) < 2.5:
			quality = QualityMedium
		default:
			quality = QualityLow
		}
	} else {
		// A single colour can never be rated better than medium.
		if math.Abs(colorGR) < 2.0 {
			quality = QualityMedium
		} else {
			quality = QualityLow
		}
	}

	return Estimate{
		PhotoZ:  opt.Some(math.Max(0, photoZ)),
		ColorGR: opt.Some(colorGR),
		ColorRZ: colorRZ,
		MagG:    opt.Some(magG),
		MagR:    opt.Some(magR),
		Quality: quality,
		Method:  Method,
	}
}
