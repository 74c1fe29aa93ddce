package dataprocessing

// MissingValuesResult reports null counts per required column.
type MissingValuesResult struct {
	HasMissing   bool           `json:"has_missing"`
	Counts       map[string]int `json:"counts"`
	TotalMissing int            `json:"total_missing"`
}

// IndicatorRange reports range validity plus the observed extremes for one
// indicator.
type IndicatorRange struct {
	Valid bool    `json:"valid"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// RangeCheckResult reports per-indicator range validity.
type RangeCheckResult struct {
	AllValid   bool                      `json:"all_valid"`
	Indicators map[string]IndicatorRange `json:"indicators"`
}

// ContinuityResult reports gaps in the quarterly series.
type ContinuityResult struct {
	IsContinuous     bool     `json:"is_continuous"`
	ExpectedQuarters int      `json:"expected_quarters"`
	ActualQuarters   int      `json:"actual_quarters"`
	GapsFound        int      `json:"gaps_found"`
	GapLocations     []string `json:"gap_locations"`
}

// IndicatorOutliers reports IQR outliers for one indicator.
type IndicatorOutliers struct {
	Count      int       `json:"count"`
	Percentage float64   `json:"percentage"`
	Quarters   []string  `json:"quarters"`
	Values     []float64 `json:"values"`
}

// OutlierResult reports outliers per indicator.
type OutlierResult struct {
	Indicators map[string]IndicatorOutliers `json:"indicators"`
}

// ConsistencyResult reports quarters where ER + UR strays from 100 beyond
// the configured absolute tolerance.
type ConsistencyResult struct {
	ERURConsistent       bool     `json:"er_ur_consistent"`
	InconsistentCount    int      `json:"inconsistent_count"`
	InconsistentQuarters []string `json:"inconsistent_quarters"`
}

// ValidationReport is the composite result of one full validation run.
type ValidationReport struct {
	MissingValues      MissingValuesResult `json:"missing_values"`
	DataRanges         RangeCheckResult    `json:"data_ranges"`
	TemporalContinuity ContinuityResult    `json:"temporal_continuity"`
	Outliers           OutlierResult       `json:"outliers"`
	Consistency        ConsistencyResult   `json:"consistency"`
	OverallValid       bool                `json:"overall_valid"`
}
