package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/oxygene76/skycalc/pkg/utils"
)

const (
	appName = "skycalc"
	version = "v1.0.0"
)

var (
	cfgFile string
	verbose bool
	config  *utils.Config
)

func main() {
	rootCmd := &cobra.Command{
		Use:   appName,
		Short: "Derive physical quantities from astronomical survey tables",
		Long: `skycalc inspects tabular survey data (galaxy catalogs, near-Earth object
elements, exoplanet parameters), decides which physical calculations apply and
appends cosmological distances, photometric redshifts and orbital parameters.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := utils.LoadConfig(cfgFile)
			if err != nil {
				return err
			}
			config = cfg
			return setupLogging(cfg)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.skycalc/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(
		datasetsCmd(),
		analyzeCmd(),
		watchCmd(),
		calcCmd(),
		configCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "err", err)
		os.Exit(1)
	}
}

func setupLogging(cfg *utils.Config) error {
	level, err := utils.ParseLogLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	if verbose {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.TimeOnly,
		}),
	))
	return nil
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage skycalc configuration",
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("path")
			if path == "" {
				path = filepath.Join(utils.HomeDir(), "config.yaml")
			}
			if err := utils.SaveConfig(utils.DefaultConfig(), path); err != nil {
				return err
			}
			fmt.Printf("Configuration saved to: %s\n", path)
			return nil
		},
	}
	initCmd.Flags().String("path", "", "destination file (default is $HOME/.skycalc/config.yaml)")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := yaml.Marshal(config)
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			fmt.Print(string(data))
			return nil
		},
	}

	cmd.AddCommand(initCmd, showCmd)
	return cmd
}
