package analysis

import (
	"github.com/oxygene76/skycalc/internal/types"
	"github.com/oxygene76/skycalc/pkg/astronomy/cosmology"
	"github.com/oxygene76/skycalc/pkg/astronomy/photometry"
	"github.com/oxygene76/skycalc/pkg/opt"
	"github.com/oxygene76/skycalc/pkg/table"
)

// Output columns of the photometric_redshift domain.
const (
	ColColorGR        = "color_g_minus_r"
	ColColorRZ        = "color_r_minus_z"
	ColQuality        = "quality"
	ColPhotoZDistance = "distance_from_photoz_Mpc"
)

// qualityOrder fixes the order of the quality histogram.
var qualityOrder = []string{
	photometry.QualityGood,
	photometry.QualityMedium,
	photometry.QualityLow,
	photometry.QualityPoor,
}

type photometricRedshift struct {
	h0 opt.Float
}

func (c *photometricRedshift) domain() types.Domain { return types.DomainPhotometricRedshift }

func (c *photometricRedshift) required() []string { return []string{ColFluxG, ColFluxR} }

func (c *photometricRedshift) outputs() []string {
	return []string{ColPhotoZ, ColColorGR, ColColorRZ, ColQuality, ColPhotoZDistance}
}

func (c *photometricRedshift) bind(t *table.Table) bool {
	return t.Has(ColFluxG) && t.Has(ColFluxR)
}

func (c *photometricRedshift) row(t *table.Table, i int) rowOutcome {
	g := t.Value(ColFluxG, i).Opt()
	r := t.Value(ColFluxR, i).Opt()
	if !g.Valid || !r.Valid {
		return missing(reasonMissingInput)
	}
	if !g.Positive() || !r.Positive() {
		return missing(reasonNonPositive)
	}

	// flux_z is optional per row; an absent column reads as missing.
	est := photometry.PhotometricRedshift(g.Value, r.Value, t.Value(ColFluxZ, i).Opt())

	distance := table.Missing()
	if est.PhotoZ.Positive() {
		distance = table.Number(cosmology.HubbleDistance(est.PhotoZ.Value, c.h0).DistanceMpc)
	}

	return computed(
		table.FromOpt(est.PhotoZ),
		table.FromOpt(est.ColorGR),
		table.FromOpt(est.ColorRZ),
		table.Text(est.Quality),
		distance,
	)
}

func (c *photometricRedshift) placeholder() []table.Value {
	cells := missingCells(5)
	cells[3] = table.Text(photometry.QualityNoData)
	return cells
}

func (c *photometricRedshift) aggregate(res *types.PipelineResult, _ *table.Table, out [][]table.Value) {
	photoZ := validFloats(out[0])

	counts := make(map[string]int)
	for _, q := range out[3] {
		counts[q.String()]++
	}
	var hist []types.QualityCount
	for _, q := range qualityOrder {
		if n := counts[q]; n > 0 {
			hist = append(hist, types.QualityCount{Quality: q, Count: n})
		}
	}

	res.Photometry = &types.PhotometryAggregates{
		MeanPhotoZ: mean(photoZ),
		MinPhotoZ:  minOf(photoZ),
		MaxPhotoZ:  maxOf(photoZ),
		Valid:      len(photoZ),
		Qualities:  hist,
	}
}
