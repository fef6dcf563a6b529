package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxygene76/skycalc/internal/types"
	"github.com/oxygene76/skycalc/pkg/opt"
	"github.com/oxygene76/skycalc/pkg/table"
)

func TestRenderReport_Empty(t *testing.T) {
	assert.Equal(t, NoAnalysisMessage, RenderReport(NewStore()))
}

func TestRenderReport_AfterRun(t *testing.T) {
	m := newTestManager()
	in := mustTable(t,
		table.NumericColumn("z", 0.1, 0.2),
		table.NumericColumn("q", 1, 2),
		table.NumericColumn("e", 0, 0.5),
	)
	_, err := m.Analyze("sdss_dr17", in, Options{})
	require.NoError(t, err)

	report := RenderReport(m.Store())
	assert.Contains(t, report, "Source: sdss_dr17")
	assert.Contains(t, report, "Objects analyzed: 2")
	assert.Contains(t, report, "Domains applied: redshift_distance, orbital_neo")
	assert.Contains(t, report, "COSMOLOGICAL RESULTS")
	assert.Contains(t, report, "Mean distance: 642.41 Mpc")
	assert.Contains(t, report, "ORBITAL RESULTS")
	assert.NotContains(t, report, "PHOTOMETRIC RESULTS")
	assert.NotContains(t, report, "EXOPLANET RESULTS")

	// Rendering does not consume or alter the stored result.
	assert.Equal(t, report, RenderReport(m.Store()))

	m.Store().Reset()
	assert.Equal(t, NoAnalysisMessage, RenderReport(m.Store()))
}

func TestRenderReport_AbsentAggregates(t *testing.T) {
	s := NewStore()
	s.replace(&types.PipelineResult{
		SourceName:     "desi",
		RowCount:       1,
		DomainsApplied: []types.Domain{types.DomainPhotometricRedshift},
		Photometry:     &types.PhotometryAggregates{MeanPhotoZ: opt.None()},
	})

	report := RenderReport(s)
	assert.Contains(t, report, "Mean photo-z: n/a")
	assert.Contains(t, report, "Objects with photo-z: 0/1")
}
