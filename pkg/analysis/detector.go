package analysis

import (
	"strings"

	"github.com/oxygene76/skycalc/internal/types"
	skyerrors "github.com/oxygene76/skycalc/pkg/errors"
	"github.com/oxygene76/skycalc/pkg/table"
)

// Recognized input columns.
const (
	ColZ        = "z"
	ColPhotoZ   = "photo_z"
	ColFluxG    = "flux_g"
	ColFluxR    = "flux_r"
	ColFluxZ    = "flux_z"
	ColPerihel  = "q"
	ColEcc      = "e"
	ColSemiMaj  = "a"
	ColAphelion = "Q"
	ColOrbPer   = "pl_orbper"
	ColClass    = "class"
)

var (
	neoColumns       = []string{ColPerihel, ColEcc, ColSemiMaj, ColAphelion}
	exoplanetColumns = []string{ColOrbPer, "pl_bmasse", "pl_rade", "st_teff"}
)

// ColumnSet is the set of column names of a table.
type ColumnSet map[string]struct{}

// NewColumnSet builds a set from column names.
func NewColumnSet(names ...string) ColumnSet {
	s := make(ColumnSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Has reports whether every name is in the set.
func (s ColumnSet) Has(names ...string) bool {
	for _, n := range names {
		if _, ok := s[n]; !ok {
			return false
		}
	}
	return true
}

// HasAny reports whether at least one name is in the set.
func (s ColumnSet) HasAny(names ...string) bool {
	for _, n := range names {
		if _, ok := s[n]; ok {
			return true
		}
	}
	return false
}

// RedshiftApplies reports whether spectroscopic distances can be derived.
// Row validity is not considered.
func RedshiftApplies(cols ColumnSet) bool {
	return cols.Has(ColZ)
}

// PhotometricApplies reports whether photo-z should be estimated. It is only a
// fallback for tables without a usable spectroscopic redshift.
func PhotometricApplies(cols ColumnSet, anyValidZ bool) bool {
	if !cols.Has(ColFluxG, ColFluxR) {
		return false
	}
	return !cols.Has(ColZ) || !anyValidZ
}

// NEOApplies reports whether the table carries small-body orbital elements.
func NEOApplies(cols ColumnSet) bool {
	return cols.HasAny(neoColumns...)
}

// ExoplanetApplies reports whether the table carries exoplanet parameters.
func ExoplanetApplies(cols ColumnSet) bool {
	return cols.HasAny(exoplanetColumns...)
}

// Detect returns the domains applicable to t in evaluation order.
func Detect(t *table.Table) []types.Domain {
	cols := NewColumnSet(t.Names()...)

	var domains []types.Domain
	if RedshiftApplies(cols) {
		domains = append(domains, types.DomainRedshiftDistance)
	}
	if PhotometricApplies(cols, t.AnyValid(ColZ)) {
		domains = append(domains, types.DomainPhotometricRedshift)
	}
	if NEOApplies(cols) {
		domains = append(domains, types.DomainOrbitalNEO)
	}
	if ExoplanetApplies(cols) {
		domains = append(domains, types.DomainOrbitalExoplanet)
	}
	return domains
}

// ParseDomains converts domain names into a deduplicated list in evaluation
// order.
func ParseDomains(names []string) ([]types.Domain, error) {
	requested := make(map[types.Domain]bool, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		d := types.Domain(n)
		if !isKnown(d) {
			return nil, skyerrors.Wrapf(skyerrors.ErrConfiguration, "unknown calculation domain %q", n)
		}
		requested[d] = true
	}
	return ordered(requested), nil
}

func isKnown(d types.Domain) bool {
	for _, k := range types.AllDomains {
		if k == d {
			return true
		}
	}
	return false
}

func ordered(set map[types.Domain]bool) []types.Domain {
	var out []types.Domain
	for _, d := range types.AllDomains {
		if set[d] {
			out = append(out, d)
		}
	}
	return out
}
