package http

import (
	"context"

	"github.com/lukeuthy/phLaborMarketPredictiveAnalytics/internal/dataprocessing"
	"github.com/lukeuthy/phLaborMarketPredictiveAnalytics/internal/services"
	"github.com/lukeuthy/phLaborMarketPredictiveAnalytics/pkg/contracts/domain"
)

// DatasetServiceInterface defines the pipeline operations the dataset
// handler depends on. Kept as an interface so handler tests can mock the
// service.
type DatasetServiceInterface interface {
	Load(ctx context.Context, path string) (*domain.Dataset, error)
	Dataset(ctx context.Context) (*domain.Dataset, error)
	SummaryStatistics(ctx context.Context) (map[string]dataprocessing.IndicatorStats, error)
	Validate(ctx context.Context) (*dataprocessing.ValidationReport, error)
	ValidationReport(ctx context.Context) (string, error)
	BuildFeatures(ctx context.Context, req services.FeatureRequest) (*domain.FeatureTable, error)
	Export(ctx context.Context, destination string) (string, error)
}
