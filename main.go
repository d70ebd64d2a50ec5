package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	"github.com/marshallyale/go-outdoors-learning/adapters/excel"
	"github.com/marshallyale/go-outdoors-learning/adapters/plot"
	"github.com/marshallyale/go-outdoors-learning/app"
	"github.com/marshallyale/go-outdoors-learning/internal/analysis"
	"github.com/marshallyale/go-outdoors-learning/internal/config"
	"github.com/marshallyale/go-outdoors-learning/internal/loader"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var inputPath string

	cmd := &cobra.Command{
		Use:           "outreach-plots",
		Short:         "Chart knowledge gains and interest from outreach lesson surveys",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, inputPath)
		},
	}
	cmd.Flags().StringVarP(&inputPath, "file", "f", "", "survey export to chart (.csv or .xlsx)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func run(cmd *cobra.Command, inputPath string) error {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		return err
	}

	loaderOptions := loader.DefaultOptions()
	loaderOptions.ScaleFromHeader = appConfig.Survey.ScaleFromHeader
	if appConfig.Survey.LayoutFile != "" {
		layout, err := excel.LoadSheetLayout(appConfig.Survey.LayoutFile)
		if err != nil {
			return err
		}
		loaderOptions.Layout = layout
	}

	renderer := plot.NewRenderer(plot.Options{
		Dir:    appConfig.Output.Dir,
		DPI:    appConfig.Output.DPI,
		Width:  vg.Length(appConfig.Output.WidthIn) * vg.Inch,
		Height: vg.Length(appConfig.Output.HeightIn) * vg.Inch,
	})
	service := app.NewReportService(loader.NewLoader(loaderOptions), analysis.NewAggregator(), renderer)

	report, err := service.Run(cmd.Context(), inputPath)
	if err != nil {
		return err
	}
	for _, topic := range report.Topics {
		fmt.Fprintln(cmd.OutOrStdout(), topic.OutputPath)
	}
	return nil
}
