package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/lukeuthy/phLaborMarketPredictiveAnalytics/internal/config"
	"github.com/lukeuthy/phLaborMarketPredictiveAnalytics/internal/dataprocessing"
	"github.com/lukeuthy/phLaborMarketPredictiveAnalytics/internal/exporter"
	"github.com/lukeuthy/phLaborMarketPredictiveAnalytics/internal/infrastructure"
	"github.com/lukeuthy/phLaborMarketPredictiveAnalytics/pkg/contracts/domain"
)

func main() {
	inFile := flag.String("in", "", "input CSV or .xlsx file with quarterly labor market data")
	outFile := flag.String("out", "", "output path for processed CSV (defaults to data/processed relative to executable)")
	featuresFile := flag.String("features", "", "output path for the modeling feature CSV (defaults to data/processed relative to executable)")
	target := flag.String("target", domain.IndicatorUR, "target indicator for feature derivation (LFPR, ER, UR, UER)")
	flag.Parse()

	logCfg := config.Default().Logging
	logCfg.Output = "console"
	logger, err := infrastructure.InitializeLogger(logCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	if *inFile == "" {
		fmt.Fprintln(os.Stderr, "usage: pipeline -in <file.csv> [-out <processed.csv>] [-features <features.csv>] [-target UR]")
		os.Exit(1)
	}

	paths, err := config.GetPaths()
	if err != nil {
		logger.Error("failed to resolve paths", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := paths.EnsureDirectories(); err != nil {
		logger.Error("failed to create directories", slog.String("error", err.Error()))
		os.Exit(1)
	}

	pipeline := config.DefaultPipeline()
	loader := dataprocessing.NewLoader(logger, pipeline, paths)

	var dataset *domain.Dataset
	if strings.HasSuffix(strings.ToLower(*inFile), ".xlsx") {
		dataset, err = loader.LoadExcel(*inFile)
	} else {
		dataset, err = loader.LoadCSV(*inFile)
	}
	if err != nil {
		logger.Error("failed to load dataset", slog.String("error", err.Error()))
		os.Exit(1)
	}

	validator := dataprocessing.NewValidator(logger, pipeline, dataset)
	report := validator.ValidateAll()
	fmt.Println(validator.Report())

	if !report.OverallValid {
		logger.Warn("dataset has validation issues, continuing with feature derivation")
	}

	exported, err := loader.ExportProcessed(*outFile)
	if err != nil {
		logger.Error("failed to export processed data", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("processed data written", slog.String("path", exported))

	pre := dataprocessing.NewPreprocessor(logger, dataset)
	features, err := pre.PrepareForModeling(*target, dataprocessing.ModelingOptions{
		IncludeTemporal: true,
		IncludeLags:     true,
		IncludeMA:       true,
	})
	if err != nil {
		logger.Error("failed to derive features", slog.String("error", err.Error()))
		os.Exit(1)
	}

	featuresPath := *featuresFile
	if featuresPath == "" {
		featuresPath = paths.FeatureDataCSV
	}
	if err := exporter.WriteFeatureTableCSV(featuresPath, features); err != nil {
		logger.Error("failed to export features", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rows, cols := features.Shape()
	logger.Info("feature data written",
		slog.String("path", featuresPath),
		slog.Int("rows", rows),
		slog.Int("columns", cols))
}
