package config

import "time"

// Application constants for the labor market analytics system
const (
	// Application Info
	AppName    = "PH Labor Market Analytics"
	AppVersion = "1.0.0"

	// Data settings
	QuarterColumn = "Quarter"
	DateColumn    = "Date"

	// Analysis settings
	MinDataPoints          = 20 // minimum quarters needed for analysis
	DefaultForecastHorizon = 4  // forecast quarters
	ConfidenceLevel        = 0.95

	// Validation tolerances. These defaults are load-bearing for
	// compatibility with previously produced reports; keep them unless the
	// data contract itself changes.
	ValueRangeMin        = 0.0
	ValueRangeMax        = 100.0
	QuarterSpacingDays   = 90
	ContinuityGapFactor  = 1.5
	ConsistencyTolerance = 2.0
	IQRFactor            = 1.5

	// Network Timeouts
	DefaultHTTPTimeout = 30 * time.Second

	// File Paths (relative to executable)
	DefaultDataDir      = "data"
	DefaultRawDir       = "data/raw"
	DefaultProcessedDir = "data/processed"
	DefaultResultsDir   = "data/results"
	DefaultModelsDir    = "models"
	DefaultLogsDir      = "logs"
	DefaultExportsDir   = "exports"

	// Well-known output files
	ProcessedDataFile = "processed_data.csv"
	FeatureDataFile   = "feature_data.csv"

	// Log Settings
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	// API Endpoints (internal)
	APIBasePath     = "/api/v1"
	DatasetEndpoint = "/api/v1/dataset"
	HealthEndpoint  = "/health"
)

// RequiredColumns lists the columns every input table must carry, in
// header order.
var RequiredColumns = []string{QuarterColumn, "LFPR", "ER", "UR", "UER"}
