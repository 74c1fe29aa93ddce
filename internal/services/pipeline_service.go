// Package services orchestrates the data pipeline for the transport
// layer: one loaded dataset at a time, with validation and feature
// derivation on demand.
package services

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/lukeuthy/phLaborMarketPredictiveAnalytics/internal/config"
	"github.com/lukeuthy/phLaborMarketPredictiveAnalytics/internal/dataprocessing"
	"github.com/lukeuthy/phLaborMarketPredictiveAnalytics/internal/errors"
	"github.com/lukeuthy/phLaborMarketPredictiveAnalytics/internal/exporter"
	"github.com/lukeuthy/phLaborMarketPredictiveAnalytics/pkg/contracts/domain"
)

// FeatureRequest describes a feature-table build.
type FeatureRequest struct {
	Target          string `json:"target" validate:"required,oneof=LFPR ER UR UER"`
	IncludeTemporal bool   `json:"include_temporal"`
	IncludeLags     bool   `json:"include_lags"`
	IncludeMA       bool   `json:"include_ma"`
}

// PipelineService wires the loader, validator, and preprocessor behind a
// single mutex. The pipeline components themselves are single-threaded by
// contract; the service provides the external synchronization concurrent
// HTTP callers need.
type PipelineService struct {
	logger   *slog.Logger
	pipeline config.PipelineConfig
	paths    *config.Paths

	mu        sync.Mutex
	loader    *dataprocessing.Loader
	validator *dataprocessing.Validator
}

// NewPipelineService creates the orchestration service.
func NewPipelineService(logger *slog.Logger, pipeline config.PipelineConfig, paths *config.Paths) *PipelineService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PipelineService{
		logger:   logger.With(slog.String("component", "pipeline_service")),
		pipeline: pipeline,
		paths:    paths,
	}
}

// Load reads the dataset at path, replacing any previously loaded one.
// Workbook paths (.xlsx) route through the Excel loader.
func (s *PipelineService) Load(ctx context.Context, path string) (*domain.Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	loader := dataprocessing.NewLoader(s.logger, s.pipeline, s.paths)

	var (
		dataset *domain.Dataset
		err     error
	)
	if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		dataset, err = loader.LoadExcel(path)
	} else {
		dataset, err = loader.LoadCSV(path)
	}
	if err != nil {
		return nil, err
	}

	s.loader = loader
	s.validator = dataprocessing.NewValidator(s.logger, s.pipeline, dataset)

	s.logger.InfoContext(ctx, "dataset loaded",
		slog.String("source", dataset.Meta.Source),
		slog.Int("record_count", dataset.Meta.RecordCount))

	return dataset, nil
}

// Dataset returns the currently loaded dataset.
func (s *PipelineService) Dataset(ctx context.Context) (*domain.Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loader == nil || s.loader.Data() == nil {
		return nil, errors.NewStateError("Dataset")
	}
	return s.loader.Data(), nil
}

// SummaryStatistics returns per-indicator summary statistics.
func (s *PipelineService) SummaryStatistics(ctx context.Context) (map[string]dataprocessing.IndicatorStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loader == nil {
		return nil, errors.NewStateError("SummaryStatistics")
	}
	return s.loader.SummaryStatistics()
}

// Validate runs the full validation suite over the loaded dataset.
func (s *PipelineService) Validate(ctx context.Context) (*dataprocessing.ValidationReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.validator == nil {
		return nil, errors.NewStateError("Validate")
	}
	return s.validator.ValidateAll(), nil
}

// ValidationReport renders the human-readable validation summary.
func (s *PipelineService) ValidationReport(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.validator == nil {
		return "", errors.NewStateError("ValidationReport")
	}
	return s.validator.Report(), nil
}

// BuildFeatures derives the modeling feature table for the request.
func (s *PipelineService) BuildFeatures(ctx context.Context, req FeatureRequest) (*domain.FeatureTable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loader == nil || s.loader.Data() == nil {
		return nil, errors.NewStateError("BuildFeatures")
	}

	pre := dataprocessing.NewPreprocessor(s.logger, s.loader.Data())
	return pre.PrepareForModeling(req.Target, dataprocessing.ModelingOptions{
		IncludeTemporal: req.IncludeTemporal,
		IncludeLags:     req.IncludeLags,
		IncludeMA:       req.IncludeMA,
	})
}

// Export writes the loaded dataset as CSV to destination, or to the
// configured processed-data location when destination is empty. Returns
// the path written.
func (s *PipelineService) Export(ctx context.Context, destination string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loader == nil {
		return "", errors.NewStateError("Export")
	}
	return s.loader.ExportProcessed(destination)
}

// ExportFeatures writes a derived feature table next to the processed
// dataset. Returns the path written.
func (s *PipelineService) ExportFeatures(ctx context.Context, table *domain.FeatureTable, destination string) (string, error) {
	if destination == "" {
		if s.paths == nil {
			return "", errors.NewConfigError("no export destination and no configured paths", nil)
		}
		destination = s.paths.FeatureDataCSV
	}

	if err := exporter.WriteFeatureTableCSV(destination, table); err != nil {
		return "", err
	}
	return destination, nil
}
