package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"ablab/adapters/csvfile"
	"ablab/adapters/excel"
	"ablab/app"
	"ablab/domain/dataset"
	"ablab/domain/experiment"
	"ablab/domain/verdict"
	"ablab/ports"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ablab",
		Short: "A/B experiment analysis from the command line",
	}

	rootCmd.AddCommand(
		newAnalyzeCmd(),
		newSweepCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type analyzeFlags struct {
	variantColumn string
	metricColumn  string
	metricType    string
	controlLabel  string
	experiment    string
	alpha         float64
	asJSON        bool
}

func (f *analyzeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.variantColumn, "variant-column", "", "column holding the variant labels (required)")
	cmd.Flags().StringVar(&f.metricColumn, "metric-column", "", "column holding the metric values")
	cmd.Flags().StringVar(&f.metricType, "metric-type", "", "metric type: discrete or continuous")
	cmd.Flags().StringVar(&f.controlLabel, "control", "", "variant label to treat as control (default: first seen)")
	cmd.Flags().StringVar(&f.experiment, "name", "", "experiment name for the report")
	cmd.Flags().Float64Var(&f.alpha, "alpha", 0, "significance level (default 0.05)")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "emit the full report as JSON")
}

func newAnalyzeCmd() *cobra.Command {
	var flags analyzeFlags

	cmd := &cobra.Command{
		Use:   "analyze [dataset-file]",
		Short: "Run one metric through the full decision pipeline",
		Long: `Analyze one metric column of an A/B experiment export.

Example: ablab analyze results.csv --variant-column variant --metric-column converted --metric-type discrete`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := readTableFile(args[0])
			if err != nil {
				return err
			}

			report, err := app.NewAnalysisService().Analyze(app.AnalysisRequest{
				Table:          table,
				ExperimentName: flags.experiment,
				VariantColumn:  flags.variantColumn,
				MetricColumn:   flags.metricColumn,
				MetricType:     experiment.MetricType(flags.metricType),
				ControlLabel:   flags.controlLabel,
				Alpha:          flags.alpha,
			})
			if err != nil {
				return err
			}

			if flags.asJSON {
				return printJSON(report)
			}
			printReport(report)
			return nil
		},
	}

	flags.register(cmd)
	_ = cmd.MarkFlagRequired("variant-column")
	_ = cmd.MarkFlagRequired("metric-column")
	_ = cmd.MarkFlagRequired("metric-type")
	return cmd
}

func newSweepCmd() *cobra.Command {
	var flags analyzeFlags
	var metrics []string

	cmd := &cobra.Command{
		Use:   "sweep [dataset-file]",
		Short: "Analyze several metric columns of one dataset",
		Long: `Run the pipeline once per metric column. Each metric is written as
column:type.

Example: ablab sweep results.csv --variant-column variant --metric converted:discrete --metric revenue:continuous`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(metrics) == 0 {
				return fmt.Errorf("at least one --metric is required")
			}

			table, err := readTableFile(args[0])
			if err != nil {
				return err
			}

			req := app.SweepRequest{
				Base: app.AnalysisRequest{
					Table:          table,
					ExperimentName: flags.experiment,
					VariantColumn:  flags.variantColumn,
					ControlLabel:   flags.controlLabel,
					Alpha:          flags.alpha,
				},
			}
			for _, m := range metrics {
				column, metricType, ok := strings.Cut(m, ":")
				if !ok {
					return fmt.Errorf("metric %q must be written as column:type", m)
				}
				req.Metrics = append(req.Metrics, app.SweepMetric{
					Column: column,
					Type:   experiment.MetricType(metricType),
				})
			}

			entries, err := app.NewSweepService(app.NewAnalysisService()).Run(context.Background(), req)
			if err != nil {
				return err
			}

			if flags.asJSON {
				return printJSON(entries)
			}
			for _, e := range entries {
				fmt.Printf("== %s ==\n", e.Metric)
				if e.Error != "" {
					fmt.Printf("error: %s\n\n", e.Error)
					continue
				}
				printReport(e.Report)
				fmt.Println()
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringArrayVar(&metrics, "metric", nil, "metric column and type as column:type (repeatable)")
	_ = cmd.MarkFlagRequired("variant-column")
	return cmd
}

func readTableFile(path string) (dataset.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataset.Table{}, fmt.Errorf("could not open %s: %w", path, err)
	}
	defer f.Close()

	var reader ports.TableReader
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		reader = excel.NewReader()
	default:
		reader = csvfile.NewReader()
	}
	return reader.Read(f)
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printReport(report *verdict.AnalysisReport) {
	fmt.Printf("experiment: %s\n", report.ExperimentName)
	fmt.Printf("metric:     %s (%s)\n", report.MetricColumn, report.MetricType)
	fmt.Printf("test:       %s (%s)\n", report.Decision.Test, report.Decision.Rule)
	fmt.Printf("statistic:  %.6g", report.Result.Statistic)
	if report.Result.DegreesOfFreedom > 0 {
		fmt.Printf("  df=%.4g", report.Result.DegreesOfFreedom)
	}
	fmt.Println()
	fmt.Printf("p-value:    %.6g\n", report.Result.PValue)
	fmt.Printf("effect:     %s = %.6g", report.Result.Effect.Kind, report.Result.Effect.Value)
	if ci := report.Result.Effect.CI; ci != nil {
		fmt.Printf("  95%% CI [%.6g, %.6g]", ci.Lower, ci.Upper)
	}
	fmt.Println()

	switch {
	case report.Result.Degenerate():
		fmt.Println("verdict:    no variation observed")
	case report.Result.Significant:
		fmt.Printf("verdict:    significant at alpha=%.2g\n", report.Result.Alpha)
	default:
		fmt.Printf("verdict:    not significant at alpha=%.2g\n", report.Result.Alpha)
	}

	for _, w := range report.Warnings {
		fmt.Printf("warning:    %s\n", w)
	}
	if report.DroppedRows > 0 {
		fmt.Printf("note:       %d non-numeric rows dropped\n", report.DroppedRows)
	}
}
