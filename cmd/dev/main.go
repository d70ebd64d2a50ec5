package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	"github.com/marshallyale/go-outdoors-learning/adapters/plot"
	"github.com/marshallyale/go-outdoors-learning/app"
	"github.com/marshallyale/go-outdoors-learning/internal/analysis"
	"github.com/marshallyale/go-outdoors-learning/internal/loader"
	"github.com/marshallyale/go-outdoors-learning/internal/testkit"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "outreach-dev",
		Short: "Outreach plots development tools",
	}

	rootCmd.AddCommand(
		newSeedCmd(),
		newSmokeTestCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newSeedCmd() *cobra.Command {
	var dir string
	var seed int64
	var respondents int

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write a sample CSV export and tally workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := testkit.DefaultSurveyConfig()
			config.Seed = seed
			config.Respondents = respondents
			csvPath, xlsxPath, err := generateSeedData(dir, config)
			if err != nil {
				return err
			}
			fmt.Printf("Wrote %s\nWrote %s\n", csvPath, xlsxPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", ".", "directory to write the sample files to")
	cmd.Flags().Int64Var(&seed, "seed", testkit.DefaultSurveyConfig().Seed, "generator seed")
	cmd.Flags().IntVar(&respondents, "respondents", testkit.DefaultSurveyConfig().Respondents, "respondents per topic")
	return cmd
}

func newSmokeTestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "smoke",
		Short: "Run smoke tests",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSmokeTests(cmd.Context())
		},
	}
	return cmd
}

func generateSeedData(dir string, config testkit.SurveyGeneratorConfig) (string, string, error) {
	fixtures, err := testkit.NewSurveyGenerator(config).Generate()
	if err != nil {
		return "", "", fmt.Errorf("failed to generate survey: %w", err)
	}

	csvPath := filepath.Join(dir, "survey.csv")
	if err := testkit.WriteResponsesCSV(csvPath, fixtures...); err != nil {
		return "", "", fmt.Errorf("failed to write %s: %w", csvPath, err)
	}

	xlsxPath := filepath.Join(dir, "tallies.xlsx")
	if err := testkit.WriteTallyWorkbook(xlsxPath, testkit.TreesSheet(), testkit.TallySheet{Name: "Notes", Empty: true}); err != nil {
		return "", "", fmt.Errorf("failed to write %s: %w", xlsxPath, err)
	}
	return csvPath, xlsxPath, nil
}

func runSmokeTests(ctx context.Context) error {
	fmt.Println("Running smoke tests...")

	workDir, err := os.MkdirTemp("", "outreach-smoke-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(workDir)

	csvPath, xlsxPath, err := generateSeedData(workDir, testkit.DefaultSurveyConfig())
	if err != nil {
		return err
	}
	outDir := filepath.Join(workDir, "plots")
	if err := os.Mkdir(outDir, 0o755); err != nil {
		return err
	}

	renderer := plot.NewRenderer(plot.Options{Dir: outDir, DPI: 72, Width: 9 * vg.Inch, Height: 4.8 * vg.Inch})
	service := app.NewReportService(loader.NewLoader(loader.DefaultOptions()), analysis.NewAggregator(), renderer)

	tests := []struct {
		name   string
		input  string
		charts int
	}{
		{"csv_responses", csvPath, len(testkit.DefaultSurveyConfig().Topics)},
		{"xlsx_tallies", xlsxPath, 1},
	}

	passed := 0
	for _, test := range tests {
		fmt.Printf("  Running %s...", test.name)
		report, err := service.Run(ctx, test.input)
		switch {
		case err != nil:
			fmt.Printf(" FAILED: %v\n", err)
		case len(report.Topics) != test.charts:
			fmt.Printf(" FAILED: expected %d charts, got %d\n", test.charts, len(report.Topics))
		default:
			fmt.Println(" PASSED")
			passed++
		}
	}

	fmt.Printf("\nSmoke tests: %d/%d passed\n", passed, len(tests))
	if passed < len(tests) {
		return fmt.Errorf("some smoke tests failed")
	}

	return nil
}
