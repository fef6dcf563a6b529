package types

import (
	"time"

	"github.com/oxygene76/skycalc/pkg/opt"
	"github.com/oxygene76/skycalc/pkg/table"
)

// Domain identifies an independent physical calculation applied to a table.
type Domain string

const (
	DomainRedshiftDistance    Domain = "redshift_distance"
	DomainPhotometricRedshift Domain = "photometric_redshift"
	DomainOrbitalNEO          Domain = "orbital_neo"
	DomainOrbitalExoplanet    Domain = "orbital_exoplanet"
)

// AllDomains lists every domain in evaluation order.
var AllDomains = []Domain{
	DomainRedshiftDistance,
	DomainPhotometricRedshift,
	DomainOrbitalNEO,
	DomainOrbitalExoplanet,
}

// PipelineResult represents the outcome of one analysis run. It is built once
// and must not be modified after it has been stored.
type PipelineResult struct {
	SourceName     string                `json:"source_name"`
	RowCount       int                   `json:"row_count"`
	DomainsApplied []Domain              `json:"domains_applied"`
	Cosmology      *CosmologyAggregates  `json:"cosmology,omitempty"`
	Photometry     *PhotometryAggregates `json:"photometry,omitempty"`
	Orbital        *OrbitalAggregates    `json:"orbital,omitempty"`
	Exoplanet      *ExoplanetAggregates  `json:"exoplanet,omitempty"`
	ClassCounts    []ClassCount          `json:"class_counts,omitempty"`
	Table          *table.Table          `json:"-"`
	Timestamp      time.Time             `json:"timestamp"`
	Duration       time.Duration         `json:"duration"`
}

// Applied reports whether the domain ran.
func (r *PipelineResult) Applied(d Domain) bool {
	for _, a := range r.DomainsApplied {
		if a == d {
			return true
		}
	}
	return false
}

// CosmologyAggregates summarizes the redshift_distance domain.
type CosmologyAggregates struct {
	SourceColumn    string    `json:"source_column"` // z or photo_z
	MeanDistanceMpc opt.Float `json:"mean_distance_mpc"`
	MaxDistanceMpc  opt.Float `json:"max_distance_mpc"`
	MeanRedshift    opt.Float `json:"mean_redshift"`
	Processed       int       `json:"processed"`
}

// PhotometryAggregates summarizes the photometric_redshift domain.
type PhotometryAggregates struct {
	MeanPhotoZ opt.Float      `json:"mean_photo_z"`
	MinPhotoZ  opt.Float      `json:"min_photo_z"`
	MaxPhotoZ  opt.Float      `json:"max_photo_z"`
	Valid      int            `json:"valid"`
	Qualities  []QualityCount `json:"qualities"`
}

// QualityCount is one bar of the photo-z quality histogram.
type QualityCount struct {
	Quality string `json:"quality"`
	Count   int    `json:"count"`
}

// OrbitalAggregates summarizes the orbital_neo domain.
type OrbitalAggregates struct {
	MeanPeriodYears opt.Float `json:"mean_period_years"`
	MeanSpeedKMS    opt.Float `json:"mean_speed_kms"`
	Processed       int       `json:"processed"`
}

// ExoplanetAggregates summarizes the orbital_exoplanet domain.
type ExoplanetAggregates struct {
	MeanSpeedKMS opt.Float `json:"mean_speed_kms"`
	Processed    int       `json:"processed"`
}

// ClassCount is the number of rows carrying one object class label.
type ClassCount struct {
	Class string `json:"class"`
	Count int    `json:"count"`
}
