package analysis

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/oxygene76/skycalc/internal/types"
	"github.com/oxygene76/skycalc/pkg/opt"
	"github.com/oxygene76/skycalc/pkg/table"
)

// missReason explains why a row produced no outputs for a domain.
type missReason string

const (
	reasonMissingInput missReason = "missing_input"
	reasonNonPositive  missReason = "non_positive"
	reasonUnbound      missReason = "unbound_orbit"
	reasonNonFinite    missReason = "non_finite"
)

// rowOutcome is either a complete set of output values or a reason.
type rowOutcome struct {
	values []table.Value
	reason missReason
}

func computed(values ...table.Value) rowOutcome {
	return rowOutcome{values: values}
}

func missing(reason missReason) rowOutcome {
	return rowOutcome{reason: reason}
}

func (o rowOutcome) ok() bool { return o.reason == "" }

// calculator is one physical domain. A calculator is created for a single run.
type calculator interface {
	domain() types.Domain
	required() []string
	outputs() []string
	// bind prepares the calculator for t and reports whether it can run.
	bind(t *table.Table) bool
	row(t *table.Table, i int) rowOutcome
	// placeholder returns the cells written for rows without outputs.
	placeholder() []table.Value
	aggregate(res *types.PipelineResult, t *table.Table, out [][]table.Value)
}

func newCalculator(d types.Domain, opts Options) calculator {
	switch d {
	case types.DomainRedshiftDistance:
		return &redshiftDistance{h0: opts.H0}
	case types.DomainPhotometricRedshift:
		return &photometricRedshift{h0: opts.H0}
	case types.DomainOrbitalNEO:
		return &orbitalNEO{}
	case types.DomainOrbitalExoplanet:
		return &orbitalExoplanet{}
	}
	return nil
}

func missingCells(n int) []table.Value {
	return make([]table.Value, n)
}

// validFloats returns the finite numbers in vals.
func validFloats(vals []table.Value) []float64 {
	out := make([]float64, 0, len(vals))
	for _, v := range vals {
		if f := v.Opt(); f.Valid {
			out = append(out, f.Value)
		}
	}
	return out
}

func mean(xs []float64) opt.Float {
	if len(xs) == 0 {
		return opt.None()
	}
	return opt.Finite(stat.Mean(xs, nil))
}

func maxOf(xs []float64) opt.Float {
	if len(xs) == 0 {
		return opt.None()
	}
	return opt.Some(floats.Max(xs))
}

func minOf(xs []float64) opt.Float {
	if len(xs) == 0 {
		return opt.None()
	}
	return opt.Some(floats.Min(xs))
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
