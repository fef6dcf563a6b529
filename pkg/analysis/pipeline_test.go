package analysis

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxygene76/skycalc/internal/types"
	skyerrors "github.com/oxygene76/skycalc/pkg/errors"
	"github.com/oxygene76/skycalc/pkg/opt"
	"github.com/oxygene76/skycalc/pkg/table"
)

func newTestManager() *Manager {
	return NewManager(NewStore(), nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func floatAt(t *testing.T, tbl *table.Table, col string, row int) float64 {
	t.Helper()
	f, ok := tbl.Value(col, row).Float()
	require.True(t, ok, "%s[%d] is missing", col, row)
	return f
}

func TestAnalyze_RedshiftDistance(t *testing.T) {
	m := newTestManager()
	in := mustTable(t, table.NumericColumn("z", 0.0, 0.1, 0.2))

	res, err := m.Analyze("sdss", in, Options{})
	require.NoError(t, err)

	assert.Equal(t, []types.Domain{types.DomainRedshiftDistance}, res.DomainsApplied)
	out := res.Table
	assert.Equal(t, 3, out.NumRows())
	assert.Equal(t, []string{"z", ColDistanceMpc, ColDistanceLY, ColRecessionKMS, ColH0Used}, out.Names())

	// z = 0 is not a recession and stays missing across the whole row.
	for _, c := range []string{ColDistanceMpc, ColDistanceLY, ColRecessionKMS, ColH0Used} {
		assert.True(t, out.Value(c, 0).IsMissing(), c)
	}
	assert.InDelta(t, 428.27, floatAt(t, out, ColDistanceMpc, 1), 0.01)
	assert.InDelta(t, 856.55, floatAt(t, out, ColDistanceMpc, 2), 0.01)
	assert.InDelta(t, 29979.2458, floatAt(t, out, ColRecessionKMS, 1), 1e-6)
	assert.Equal(t, 70.0, floatAt(t, out, ColH0Used, 2))

	require.NotNil(t, res.Cosmology)
	assert.Equal(t, "z", res.Cosmology.SourceColumn)
	assert.InDelta(t, 642.41, res.Cosmology.MeanDistanceMpc.Value, 0.01)
	assert.InDelta(t, 856.55, res.Cosmology.MaxDistanceMpc.Value, 0.01)
	assert.InDelta(t, 0.1, res.Cosmology.MeanRedshift.Value, 1e-12)
	assert.Equal(t, 2, res.Cosmology.Processed)

	// The input is untouched.
	assert.Equal(t, 1, in.NumCols())
}

func TestAnalyze_RedshiftFallsBackToPhotoZ(t *testing.T) {
	m := newTestManager()
	in := mustTable(t, missingColumn("z", 2), table.NumericColumn("photo_z", 0.1, -0.2))

	res, err := m.Analyze("desi", in, Options{Domains: []types.Domain{types.DomainRedshiftDistance}})
	require.NoError(t, err)

	assert.Equal(t, "photo_z", res.Cosmology.SourceColumn)
	assert.InDelta(t, 428.27, floatAt(t, res.Table, ColDistanceMpc, 0), 0.01)
	assert.True(t, res.Table.Value(ColDistanceMpc, 1).IsMissing())
}

func TestAnalyze_CustomH0(t *testing.T) {
	m := newTestManager()
	in := mustTable(t, table.NumericColumn("z", 0.1))

	res, err := m.Analyze("sdss", in, Options{H0: opt.Some(50)})
	require.NoError(t, err)
	assert.Equal(t, 50.0, floatAt(t, res.Table, ColH0Used, 0))
	assert.InDelta(t, 599.58, floatAt(t, res.Table, ColDistanceMpc, 0), 0.01)
}

func TestAnalyze_PhotometricRedshift(t *testing.T) {
	m := newTestManager()
	in := mustTable(t,
		table.NumericColumn("flux_g", 10, 10, -1, 100),
		table.NumericColumn("flux_r", 20, 20, 20, 10),
		table.Column{Name: "flux_z", Values: []table.Value{
			table.Number(40), table.Missing(), table.Number(40), table.Number(10),
		}},
	)

	res, err := m.Analyze("desi", in, Options{})
	require.NoError(t, err)
	assert.Equal(t, []types.Domain{types.DomainPhotometricRedshift}, res.DomainsApplied)

	out := res.Table
	assert.Equal(t, "good", out.Value(ColQuality, 0).String())
	assert.InDelta(t, 0.2010, floatAt(t, out, ColPhotoZ, 0), 1e-4)
	assert.False(t, out.Value(ColColorRZ, 0).IsMissing())
	assert.False(t, out.Value(ColPhotoZDistance, 0).IsMissing())

	assert.Equal(t, "medium", out.Value(ColQuality, 1).String())
	assert.InDelta(t, 0.0881, floatAt(t, out, ColPhotoZ, 1), 1e-4)
	assert.True(t, out.Value(ColColorRZ, 1).IsMissing())

	assert.Equal(t, "no_data", out.Value(ColQuality, 2).String())
	for _, c := range []string{ColPhotoZ, ColColorGR, ColColorRZ, ColPhotoZDistance} {
		assert.True(t, out.Value(c, 2).IsMissing(), c)
	}

	// Blue source: photo-z floors at zero and gets no distance.
	assert.Equal(t, 0.0, floatAt(t, out, ColPhotoZ, 3))
	assert.True(t, out.Value(ColPhotoZDistance, 3).IsMissing())

	p := res.Photometry
	require.NotNil(t, p)
	assert.Equal(t, 3, p.Valid)
	assert.Equal(t, 0.0, p.MinPhotoZ.Value)
	assert.InDelta(t, 0.2010, p.MaxPhotoZ.Value, 1e-4)
	assert.Equal(t, []types.QualityCount{
		{Quality: "good", Count: 1},
		{Quality: "medium", Count: 2},
	}, p.Qualities)
}

func TestAnalyze_OrbitalNEO(t *testing.T) {
	m := newTestManager()
	in := mustTable(t,
		table.Column{Name: "q", Values: []table.Value{
			table.Number(1), table.Number(1), table.Missing(), table.Number(0), table.Number(1.5),
		}},
		table.NumericColumn("e", 0, 1.2, 0.1, 0.2, 0.5),
	)

	res, err := m.Analyze("neo", in, Options{})
	require.NoError(t, err)
	out := res.Table

	assert.InDelta(t, 1.0, floatAt(t, out, ColSemiMajorAU, 0), 1e-12)
	assert.InDelta(t, 1.0, floatAt(t, out, ColPeriodYears, 0), 0.01)
	assert.InDelta(t, 1.0, floatAt(t, out, ColAphelionAU, 0), 1e-12)
	assert.InDelta(t, 29.79, floatAt(t, out, ColSpeedKMS, 0), 0.05)

	// Hyperbolic, missing and degenerate rows are missing as a whole.
	for _, row := range []int{1, 2, 3} {
		for _, c := range []string{ColPeriodYears, ColSpeedKMS, ColAphelionAU, ColSemiMajorAU} {
			assert.True(t, out.Value(c, row).IsMissing(), "%s[%d]", c, row)
		}
	}

	assert.InDelta(t, 3.0, floatAt(t, out, ColSemiMajorAU, 4), 1e-12)
	assert.InDelta(t, 4.5, floatAt(t, out, ColAphelionAU, 4), 1e-12)

	require.NotNil(t, res.Orbital)
	assert.Equal(t, 2, res.Orbital.Processed)
	assert.InDelta(t, (floatAt(t, out, ColPeriodYears, 0)+floatAt(t, out, ColPeriodYears, 4))/2,
		res.Orbital.MeanPeriodYears.Value, 1e-9)
}

func TestAnalyze_NEOWithoutRequiredColumnsIsSkipped(t *testing.T) {
	m := newTestManager()
	in := mustTable(t, table.NumericColumn("a", 2.5), table.NumericColumn("z", 0.1))

	res, err := m.Analyze("mixed", in, Options{})
	require.NoError(t, err)
	assert.Equal(t, []types.Domain{types.DomainRedshiftDistance}, res.DomainsApplied)
	assert.Nil(t, res.Orbital)
}

func TestAnalyze_OrbitalExoplanet(t *testing.T) {
	m := newTestManager()
	in := mustTable(t, table.NumericColumn("pl_orbper", 365.25, 0, -3))

	res, err := m.Analyze("esi", in, Options{})
	require.NoError(t, err)
	out := res.Table

	assert.Equal(t, []string{"pl_orbper", ColSemiMajorAU, ColSpeedKMS}, out.Names())
	assert.InDelta(t, 1.0, floatAt(t, out, ColSemiMajorAU, 0), 0.01)
	assert.InDelta(t, 29.79, floatAt(t, out, ColSpeedKMS, 0), 0.1)
	assert.True(t, out.Value(ColSemiMajorAU, 1).IsMissing())
	assert.True(t, out.Value(ColSpeedKMS, 2).IsMissing())

	require.NotNil(t, res.Exoplanet)
	assert.Equal(t, 1, res.Exoplanet.Processed)
}

func TestAnalyze_NEOAndExoplanetColumnsAreNamespaced(t *testing.T) {
	m := newTestManager()
	in := mustTable(t,
		table.NumericColumn("q", 1),
		table.NumericColumn("e", 0),
		table.NumericColumn("pl_orbper", 365.25),
	)

	res, err := m.Analyze("mixed", in, Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"q", "e", "pl_orbper",
		ColPeriodYears, ColSpeedKMS, ColAphelionAU, ColSemiMajorAU,
		"exo_" + ColSemiMajorAU, "exo_" + ColSpeedKMS,
	}, res.Table.Names())
	assert.InDelta(t, 1.0, floatAt(t, res.Table, ColSemiMajorAU, 0), 1e-12)
	assert.InDelta(t, 1.0, floatAt(t, res.Table, "exo_"+ColSemiMajorAU, 0), 0.01)
}

func TestAnalyze_ColumnCountAndRowCount(t *testing.T) {
	m := newTestManager()
	in := mustTable(t,
		table.NumericColumn("z", 0.05, 0.1),
		table.NumericColumn("q", 1, 2),
		table.NumericColumn("e", 0.1, 0.3),
		table.NumericColumn("pl_rade", 1, 2),
	)

	res, err := m.Analyze("mixed", in, Options{})
	require.NoError(t, err)

	// redshift (4) + neo (4); exoplanet is detected but pl_orbper is absent.
	assert.Equal(t, in.NumRows(), res.Table.NumRows())
	assert.Equal(t, in.NumCols()+4+4, res.Table.NumCols())
	assert.Equal(t, []types.Domain{types.DomainRedshiftDistance, types.DomainOrbitalNEO}, res.DomainsApplied)
}

func TestAnalyze_RerunOverwritesOutputs(t *testing.T) {
	m := newTestManager()
	in := mustTable(t, table.NumericColumn("q", 1, 2), table.NumericColumn("e", 0, 0.5))

	first, err := m.Analyze("neo", in, Options{})
	require.NoError(t, err)
	second, err := m.Analyze("neo", first.Table, Options{})
	require.NoError(t, err)

	assert.Equal(t, first.Table.NumCols(), second.Table.NumCols())
	assert.True(t, first.Table.Equal(second.Table))
}

func TestAnalyze_Idempotent(t *testing.T) {
	in := mustTable(t,
		table.NumericColumn("flux_g", 10, 35, 0.5),
		table.NumericColumn("flux_r", 20, 30, 8),
		table.NumericColumn("flux_z", 40, 25, 12),
	)
	opts := Options{Domains: []types.Domain{types.DomainPhotometricRedshift}}

	a, err := newTestManager().Analyze("desi", in, opts)
	require.NoError(t, err)
	b, err := newTestManager().Analyze("desi", in, opts)
	require.NoError(t, err)

	assert.True(t, a.Table.Equal(b.Table))
}

func TestAnalyze_NoApplicableDomains(t *testing.T) {
	m := newTestManager()
	_, err := m.Analyze("ok", mustTable(t, table.NumericColumn("z", 0.1)), Options{})
	require.NoError(t, err)

	_, err = m.Analyze("radec", mustTable(t, table.NumericColumn("ra", 180)), Options{})
	assert.ErrorIs(t, err, skyerrors.ErrNoApplicableDomains)

	// Explicit domain whose columns are absent.
	_, err = m.Analyze("radec", mustTable(t, table.NumericColumn("ra", 180)),
		Options{Domains: []types.Domain{types.DomainOrbitalNEO}})
	assert.ErrorIs(t, err, skyerrors.ErrNoApplicableDomains)

	last, ok := m.Store().Last()
	require.True(t, ok)
	assert.Equal(t, "ok", last.SourceName)
}

func TestAnalyze_UnknownDomain(t *testing.T) {
	m := newTestManager()
	_, err := m.Analyze("x", mustTable(t, table.NumericColumn("z", 0.1)),
		Options{Domains: []types.Domain{"spectral_fit"}})
	assert.ErrorIs(t, err, skyerrors.ErrConfiguration)
}

func TestAnalyze_ClassCounts(t *testing.T) {
	labels := []string{"GALAXY", "STAR", "GALAXY", "QSO", "GALAXY", "STAR"}
	vals := make([]table.Value, len(labels))
	for i, l := range labels {
		vals[i] = table.Text(l)
	}
	in := mustTable(t,
		table.NumericColumn("z", 0.1, 0.2, 0.3, 0.4, 0.5, 0.6),
		table.Column{Name: "class", Values: vals},
	)

	res, err := newTestManager().Analyze("sdss", in, Options{})
	require.NoError(t, err)
	assert.Equal(t, []types.ClassCount{
		{Class: "GALAXY", Count: 3},
		{Class: "STAR", Count: 2},
		{Class: "QSO", Count: 1},
	}, res.ClassCounts)
}

type fakeDatasets map[string]*table.Table

func (f fakeDatasets) Load(name string) (*table.Table, error) {
	t, ok := f[name]
	if !ok {
		return nil, skyerrors.Wrap(skyerrors.ErrDatasetNotFound, name)
	}
	return t, nil
}

func TestAnalyzeDataset(t *testing.T) {
	z := mustTable(t, table.NumericColumn("z", 0.1))
	m := NewManager(NewStore(), fakeDatasets{"sdss": z}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	res, err := m.AnalyzeDataset("sdss", Options{})
	require.NoError(t, err)
	assert.Equal(t, "sdss", res.SourceName)

	_, err = m.AnalyzeDataset("missing", Options{})
	assert.ErrorIs(t, err, skyerrors.ErrDatasetNotFound)

	_, err = newTestManager().AnalyzeDataset("sdss", Options{})
	assert.ErrorIs(t, err, skyerrors.ErrDatasetNotFound)
}
