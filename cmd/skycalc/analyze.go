package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/oxygene76/skycalc/internal/types"
	"github.com/oxygene76/skycalc/pkg/analysis"
	"github.com/oxygene76/skycalc/pkg/opt"
	"github.com/oxygene76/skycalc/pkg/registry"
	"github.com/oxygene76/skycalc/pkg/table"
)

func openRegistry() (*registry.Registry, error) {
	return registry.New(config.Data.Dir, slog.Default())
}

func datasetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "datasets",
		Short: "Inspect datasets in the data directory",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List available datasets",
			RunE: func(cmd *cobra.Command, args []string) error {
				reg, err := openRegistry()
				if err != nil {
					return err
				}
				names := reg.List()
				if len(names) == 0 {
					fmt.Printf("No datasets found in %s\n", reg.Dir())
					return nil
				}
				for _, n := range names {
					fmt.Println(n)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "info <name>",
			Short: "Show the columns of a dataset",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				reg, err := openRegistry()
				if err != nil {
					return err
				}
				info, err := reg.Info(args[0])
				if err != nil {
					return err
				}
				fmt.Printf("Name:    %s\n", info.Name)
				fmt.Printf("Path:    %s\n", info.Path)
				fmt.Printf("Columns: %d\n", info.NumColumns)
				fmt.Printf("         %s\n", strings.Join(info.Columns, ", "))
				return nil
			},
		},
	)

	return cmd
}

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <dataset|file.csv>",
		Short: "Run the applicable calculations over a dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			domainNames, _ := cmd.Flags().GetStringSlice("domains")
			h0, _ := cmd.Flags().GetFloat64("h0")
			output, _ := cmd.Flags().GetString("output")
			save, _ := cmd.Flags().GetBool("save")

			if len(domainNames) == 0 {
				domainNames = config.Analysis.Domains
			}
			domains, err := analysis.ParseDomains(domainNames)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("h0") {
				h0 = config.Analysis.HubbleConstant
			}
			opts := analysis.Options{Domains: domains, H0: opt.Some(h0)}

			reg, err := openRegistry()
			if err != nil {
				return err
			}
			manager := analysis.NewManager(analysis.NewStore(), reg, slog.Default())

			result, err := runAnalysis(manager, args[0], opts)
			if err != nil {
				return err
			}

			fmt.Print(analysis.RenderReport(manager.Store()))

			if output == "" && save {
				output = defaultOutputPath(result)
			}
			if output != "" {
				if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
					return fmt.Errorf("failed to create output directory: %w", err)
				}
				if err := result.Table.WriteCSVFile(output); err != nil {
					return fmt.Errorf("failed to write results: %w", err)
				}
				fmt.Printf("Results written to: %s\n", output)
			}
			return nil
		},
	}

	cmd.Flags().StringSlice("domains", nil, "calculation domains to apply (default: auto-detect)")
	cmd.Flags().Float64("h0", 70, "Hubble constant in km/s/Mpc")
	cmd.Flags().StringP("output", "o", "", "write the result table to this CSV file")
	cmd.Flags().Bool("save", false, "write the result table to the configured output directory")

	return cmd
}

// runAnalysis accepts either a registered dataset name or a path to a CSV file.
func runAnalysis(manager *analysis.Manager, target string, opts analysis.Options) (*types.PipelineResult, error) {
	if strings.HasSuffix(target, ".csv") {
		if _, err := os.Stat(target); err == nil {
			t, err := table.ReadCSVFile(target)
			if err != nil {
				return nil, fmt.Errorf("failed to read %s: %w", target, err)
			}
			name := strings.TrimSuffix(filepath.Base(target), ".csv")
			return manager.Analyze(name, t, opts)
		}
	}
	return manager.AnalyzeDataset(target, opts)
}

func defaultOutputPath(result *types.PipelineResult) string {
	stamp := result.Timestamp.Format("2006-01-02_15-04-05")
	return filepath.Join(config.Data.OutputDir, fmt.Sprintf("%s_analysis_%s.csv", result.SourceName, stamp))
}

func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch the data directory and report dataset changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := openRegistry()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			slog.Info("datasets available", "names", reg.List())
			return reg.Watch(ctx, func(names []string) {
				slog.Info("datasets changed", "names", names, "at", time.Now().Format(time.TimeOnly))
			})
		},
	}
}
