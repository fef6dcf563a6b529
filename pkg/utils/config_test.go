package utils

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "data", cfg.Data.Dir)
	assert.Equal(t, "results", cfg.Data.OutputDir)
	assert.Equal(t, 70.0, cfg.Analysis.HubbleConstant)
	assert.Empty(t, cfg.Analysis.Domains)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestSaveAndLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Data.Dir = "/srv/surveys"
	cfg.Analysis.HubbleConstant = 67.4
	cfg.Analysis.Domains = []string{"redshift_distance", "orbital_neo"}
	cfg.Log.Level = "debug"
	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, SaveConfig(DefaultConfig(), path))
	t.Setenv("SKYCALC_ANALYSIS_HUBBLE_CONSTANT", "73")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 73.0, cfg.Analysis.HubbleConstant)
}

func TestLoadConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("analysis:\n  hubble_constant: -1\n"), 0644))

	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "hubble constant must be positive")
}

func TestValidateConfig(t *testing.T) {
	for name, tc := range map[string]struct {
		mutate  func(*Config)
		wantErr string
	}{
		"defaults":       {mutate: func(*Config) {}},
		"empty data dir": {mutate: func(c *Config) { c.Data.Dir = "" }, wantErr: "data directory"},
		"zero h0":        {mutate: func(c *Config) { c.Analysis.HubbleConstant = 0 }, wantErr: "hubble constant"},
		"unknown domain": {mutate: func(c *Config) { c.Analysis.Domains = []string{"spectra"} }, wantErr: "invalid domain"},
		"bad log level":  {mutate: func(c *Config) { c.Log.Level = "loud" }, wantErr: "invalid log level"},
	} {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			err := ValidateConfig(cfg)
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	lvl, err := ParseLogLevel("WARNING")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, lvl)

	lvl, err = ParseLogLevel("")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, lvl)
}
