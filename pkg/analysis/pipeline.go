package analysis

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/oxygene76/skycalc/internal/types"
	skyerrors "github.com/oxygene76/skycalc/pkg/errors"
	"github.com/oxygene76/skycalc/pkg/opt"
	"github.com/oxygene76/skycalc/pkg/table"
)

// maxClasses bounds the class distribution kept in a result.
const maxClasses = 5

// Options controls a single run.
type Options struct {
	// Domains bypasses detection when non-empty.
	Domains []types.Domain
	// H0 overrides the Hubble constant used for distances.
	H0 opt.Float
}

// DatasetSource loads tables by name.
type DatasetSource interface {
	Load(name string) (*table.Table, error)
}

// Manager runs the calculation domains over tables and records the most
// recent successful result in its Store.
type Manager struct {
	store    *Store
	datasets DatasetSource
	logger   *slog.Logger
}

// NewManager creates a new analysis manager. datasets may be nil when tables
// are only supplied in memory; a nil store is replaced by an empty one.
func NewManager(store *Store, datasets DatasetSource, logger *slog.Logger) *Manager {
	if store == nil {
		store = NewStore()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		store:    store,
		datasets: datasets,
		logger:   logger,
	}
}

// Store returns the store holding the last result.
func (m *Manager) Store() *Store {
	return m.store
}

// AnalyzeDataset loads a dataset by name and analyzes it.
func (m *Manager) AnalyzeDataset(name string, opts Options) (*types.PipelineResult, error) {
	if m.datasets == nil {
		return nil, skyerrors.Wrapf(skyerrors.ErrDatasetNotFound, "%s: no dataset registry configured", name)
	}
	t, err := m.datasets.Load(name)
	if err != nil {
		return nil, err
	}
	return m.Analyze(name, t, opts)
}

// Analyze applies every selected domain to t and returns a new result. The
// input table is not modified. Row-level problems degrade individual outputs
// to missing; only table-level problems are returned as errors.
func (m *Manager) Analyze(name string, t *table.Table, opts Options) (*types.PipelineResult, error) {
	start := time.Now()
	m.logger.Info("starting analysis", "source", name, "rows", t.NumRows(), "columns", t.NumCols())

	domains := opts.Domains
	if len(domains) == 0 {
		domains = Detect(t)
	} else {
		var err error
		if domains, err = normalize(domains); err != nil {
			return nil, err
		}
	}

	result := &types.PipelineResult{
		SourceName: name,
		RowCount:   t.NumRows(),
	}
	out := t.Clone()

	for _, d := range domains {
		calc := newCalculator(d, opts)
		if !calc.bind(t) {
			m.logger.Debug("skipping domain, required columns not found",
				"domain", d, "required", calc.required())
			continue
		}

		cols, reasons := m.runDomain(calc, t)
		calc.aggregate(result, t, cols)

		names := calc.outputs()
		if d == types.DomainOrbitalExoplanet && result.Applied(types.DomainOrbitalNEO) {
			names = prefixed(ExoplanetPrefix, names)
		}
		for i, n := range names {
			if err := out.Set(n, cols[i]); err != nil {
				return nil, fmt.Errorf("failed to append %s: %w", n, err)
			}
		}

		result.DomainsApplied = append(result.DomainsApplied, d)
		m.logger.Debug("domain complete", "domain", d, "missing", reasons)
	}

	if len(result.DomainsApplied) == 0 {
		return nil, skyerrors.Wrapf(skyerrors.ErrNoApplicableDomains, "%s: columns %v", name, t.Names())
	}

	result.ClassCounts = classCounts(t)
	result.Table = out
	result.Timestamp = time.Now()
	result.Duration = time.Since(start)

	m.store.replace(result)

	m.logger.Info("analysis completed", "source", name,
		"domains", result.DomainsApplied, "duration", result.Duration)
	return result, nil
}

// runDomain evaluates calc row by row and returns one slice per output column
// together with a tally of why rows were left missing.
func (m *Manager) runDomain(calc calculator, t *table.Table) ([][]table.Value, map[missReason]int) {
	n := len(calc.outputs())
	cols := make([][]table.Value, n)
	for i := range cols {
		cols[i] = make([]table.Value, t.NumRows())
	}
	reasons := make(map[missReason]int)

	for r := 0; r < t.NumRows(); r++ {
		o := calc.row(t, r)
		values := o.values
		if !o.ok() {
			reasons[o.reason]++
			values = calc.placeholder()
		}
		for i := 0; i < n; i++ {
			cols[i][r] = values[i]
		}
	}
	return cols, reasons
}

func normalize(domains []types.Domain) ([]types.Domain, error) {
	names := make([]string, len(domains))
	for i, d := range domains {
		names[i] = string(d)
	}
	return ParseDomains(names)
}

func prefixed(prefix string, names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = prefix + n
	}
	return out
}

// classCounts returns the most frequent labels of the class column.
func classCounts(t *table.Table) []types.ClassCount {
	col, ok := t.Column(ColClass)
	if !ok {
		return nil
	}

	counts := make(map[string]int)
	for _, v := range col.Values {
		if !v.IsMissing() {
			counts[v.String()]++
		}
	}

	out := make([]types.ClassCount, 0, len(counts))
	for c, n := range counts {
		out = append(out, types.ClassCount{Class: c, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Class < out[j].Class
	})
	if len(out) > maxClasses {
		out = out[:maxClasses]
	}
	return out
}
