package utils

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/oxygene76/skycalc/internal/types"
)

// Config represents the skycalc configuration
type Config struct {
	Data     DataConfig     `yaml:"data" mapstructure:"data"`
	Analysis AnalysisConfig `yaml:"analysis" mapstructure:"analysis"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// DataConfig contains dataset locations
type DataConfig struct {
	Dir       string `yaml:"dir" mapstructure:"dir"`
	OutputDir string `yaml:"output_dir" mapstructure:"output_dir"`
}

// AnalysisConfig contains analysis-specific configuration
type AnalysisConfig struct {
	HubbleConstant float64  `yaml:"hubble_constant" mapstructure:"hubble_constant"`
	Domains        []string `yaml:"domains" mapstructure:"domains"`
}

// LogConfig contains logging configuration
type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Dir:       "data",
			OutputDir: "results",
		},
		Analysis: AnalysisConfig{
			HubbleConstant: 70,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// HomeDir returns the per-user configuration directory.
func HomeDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".skycalc")
}

// LoadConfig loads configuration from cfgFile, or from the default search
// paths when cfgFile is empty. A missing config file yields the defaults.
func LoadConfig(cfgFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(HomeDir())
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	// Set environment variable prefix
	v.SetEnvPrefix("SKYCALC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := ValidateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	def := DefaultConfig()
	v.SetDefault("data.dir", def.Data.Dir)
	v.SetDefault("data.output_dir", def.Data.OutputDir)
	v.SetDefault("analysis.hubble_constant", def.Analysis.HubbleConstant)
	v.SetDefault("analysis.domains", def.Analysis.Domains)
	v.SetDefault("log.level", def.Log.Level)
}

// SaveConfig writes config as YAML to path, creating parent directories.
func SaveConfig(config *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ValidateConfig validates the configuration
func ValidateConfig(config *Config) error {
	if config.Data.Dir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}

	if config.Analysis.HubbleConstant <= 0 {
		return fmt.Errorf("hubble constant must be positive, got %g", config.Analysis.HubbleConstant)
	}

	valid := make(map[string]bool, len(types.AllDomains))
	for _, d := range types.AllDomains {
		valid[string(d)] = true
	}
	for _, d := range config.Analysis.Domains {
		if !valid[d] {
			return fmt.Errorf("invalid domain: %s", d)
		}
	}

	if _, err := ParseLogLevel(config.Log.Level); err != nil {
		return err
	}

	return nil
}

// ParseLogLevel maps a config level name to a slog level.
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("invalid log level: %s", level)
}
