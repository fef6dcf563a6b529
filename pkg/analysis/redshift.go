package analysis

import (
	"github.com/oxygene76/skycalc/internal/types"
	"github.com/oxygene76/skycalc/pkg/astronomy/cosmology"
	"github.com/oxygene76/skycalc/pkg/opt"
	"github.com/oxygene76/skycalc/pkg/table"
)

// Output columns of the redshift_distance domain.
const (
	ColDistanceMpc  = "distance_Mpc"
	ColDistanceLY   = "distance_lightyears"
	ColRecessionKMS = "recession_velocity_kms"
	ColH0Used       = "H0_used"
)

// redshiftDistance converts spectroscopic (or, failing that, photometric)
// redshifts into Hubble-law distances.
type redshiftDistance struct {
	h0     opt.Float
	source string
}

func (c *redshiftDistance) domain() types.Domain { return types.DomainRedshiftDistance }

func (c *redshiftDistance) required() []string { return []string{ColZ} }

func (c *redshiftDistance) outputs() []string {
	return []string{ColDistanceMpc, ColDistanceLY, ColRecessionKMS, ColH0Used}
}

// bind picks z over photo_z, using whichever holds at least one valid value.
func (c *redshiftDistance) bind(t *table.Table) bool {
	for _, col := range []string{ColZ, ColPhotoZ} {
		if t.AnyValid(col) {
			c.source = col
			return true
		}
	}
	return false
}

func (c *redshiftDistance) row(t *table.Table, i int) rowOutcome {
	z := t.Value(c.source, i).Opt()
	if !z.Valid {
		return missing(reasonMissingInput)
	}
	if z.Value <= 0 {
		return missing(reasonNonPositive)
	}

	d := cosmology.HubbleDistance(z.Value, c.h0)
	return computed(
		table.Number(d.DistanceMpc),
		table.Number(d.DistanceLightYrs),
		table.Number(d.VelocityKMS),
		table.Number(d.H0Used),
	)
}

func (c *redshiftDistance) placeholder() []table.Value { return missingCells(4) }

func (c *redshiftDistance) aggregate(res *types.PipelineResult, t *table.Table, out [][]table.Value) {
	distances := validFloats(out[0])
	src, _ := t.Column(c.source)

	res.Cosmology = &types.CosmologyAggregates{
		SourceColumn:    c.source,
		MeanDistanceMpc: mean(distances),
		MaxDistanceMpc:  maxOf(distances),
		MeanRedshift:    mean(validFloats(src.Values)),
		Processed:       len(distances),
	}
}
