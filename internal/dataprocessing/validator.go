package dataprocessing

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/lukeuthy/phLaborMarketPredictiveAnalytics/internal/config"
	"github.com/lukeuthy/phLaborMarketPredictiveAnalytics/pkg/contracts/domain"
)

// Validator runs data-quality checks over one dataset snapshot. Checks are
// read-only and independent of each other; only the aggregate verdict
// combines them. Detecting bad data is the Validator's purpose, so a bad
// value is reported, never returned as an error.
type Validator struct {
	logger   *slog.Logger
	pipeline config.PipelineConfig
	data     *domain.Dataset

	// cached result of the last ValidateAll run, for the lifetime of
	// this instance only
	results *ValidationReport
}

// NewValidator creates a validator over the given dataset snapshot.
func NewValidator(logger *slog.Logger, pipeline config.PipelineConfig, data *domain.Dataset) *Validator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Validator{
		logger:   logger.With(slog.String("component", "validator")),
		pipeline: pipeline,
		data:     data,
	}
}

// ValidateAll runs every check and aggregates the overall verdict. By
// default missing values, range violations, and temporal gaps fail the
// dataset while outliers and consistency findings are warnings; the
// gating of warnings is configurable.
func (v *Validator) ValidateAll() *ValidationReport {
	v.logger.Info("running data validation checks",
		slog.Int("record_count", v.data.Len()))

	report := &ValidationReport{
		MissingValues:      v.CheckMissingValues(),
		DataRanges:         v.CheckDataRanges(),
		TemporalContinuity: v.CheckTemporalContinuity(),
		Outliers:           v.DetectOutliers(),
		Consistency:        v.CheckConsistency(),
	}

	report.OverallValid = !report.MissingValues.HasMissing &&
		report.DataRanges.AllValid &&
		report.TemporalContinuity.IsContinuous

	if v.pipeline.GateOutliers {
		for _, info := range report.Outliers.Indicators {
			if info.Count > 0 {
				report.OverallValid = false
			}
		}
	}
	if v.pipeline.GateConsistency && !report.Consistency.ERURConsistent {
		report.OverallValid = false
	}

	v.results = report
	return report
}

// CheckMissingValues counts null cells per required column.
func (v *Validator) CheckMissingValues() MissingValuesResult {
	counts := make(map[string]int, len(config.RequiredColumns))
	total := 0

	for _, col := range config.RequiredColumns {
		count := 0
		for _, obs := range v.data.Observations {
			if col == config.QuarterColumn {
				if obs.Quarter == "" {
					count++
				}
				continue
			}
			if value, ok := obs.Indicator(col); ok && math.IsNaN(value) {
				count++
			}
		}
		counts[col] = count
		total += count
	}

	return MissingValuesResult{
		HasMissing:   total > 0,
		Counts:       counts,
		TotalMissing: total,
	}
}

// CheckDataRanges verifies every indicator value lies within the
// configured bounds, reporting the observed extremes either way.
func (v *Validator) CheckDataRanges() RangeCheckResult {
	indicators := make(map[string]IndicatorRange, len(domain.Indicators))
	allValid := true

	for _, ind := range domain.Indicators {
		series, _ := v.data.IndicatorSeries(ind)

		valid := true
		for _, value := range series {
			if math.IsNaN(value) {
				continue
			}
			if value < v.pipeline.MinValue || value > v.pipeline.MaxValue {
				valid = false
				break
			}
		}

		indicators[ind] = IndicatorRange{
			Valid: valid,
			Min:   Min(series),
			Max:   Max(series),
		}
		if !valid {
			allValid = false
		}
	}

	return RangeCheckResult{
		AllValid:   allValid,
		Indicators: indicators,
	}
}

// CheckTemporalContinuity looks for gaps in the quarterly series. A gap is
// a successive date delta exceeding the nominal quarter spacing by the
// configured factor; the reported labels are the quarters after each gap.
func (v *Validator) CheckTemporalContinuity() ContinuityResult {
	dates := v.data.Dates()
	actual := len(dates)

	result := ContinuityResult{
		IsContinuous:   true,
		ActualQuarters: actual,
		GapLocations:   []string{},
	}
	if actual == 0 {
		return result
	}

	spanDays := int(dates[len(dates)-1].Sub(dates[0]).Hours() / 24)
	result.ExpectedQuarters = spanDays/v.pipeline.QuarterSpacingDays + 1

	gapThreshold := float64(v.pipeline.QuarterSpacingDays) * v.pipeline.ContinuityGapFactor

	for i := 1; i < len(dates); i++ {
		deltaDays := dates[i].Sub(dates[i-1]).Hours() / 24
		if deltaDays > gapThreshold {
			result.GapsFound++
			result.GapLocations = append(result.GapLocations, v.data.Observations[i].Quarter)
		}
	}

	result.IsContinuous = result.GapsFound == 0
	return result
}

// DetectOutliers flags values outside the IQR bounds
// [Q1 - f*IQR, Q3 + f*IQR] per indicator.
func (v *Validator) DetectOutliers() OutlierResult {
	indicators := make(map[string]IndicatorOutliers, len(domain.Indicators))
	total := v.data.Len()

	for _, ind := range domain.Indicators {
		series, _ := v.data.IndicatorSeries(ind)

		q1 := Quantile(series, 0.25)
		q3 := Quantile(series, 0.75)
		iqr := q3 - q1
		lower := q1 - v.pipeline.IQRFactor*iqr
		upper := q3 + v.pipeline.IQRFactor*iqr

		info := IndicatorOutliers{Quarters: []string{}, Values: []float64{}}
		for i, value := range series {
			if math.IsNaN(value) {
				continue
			}
			if value < lower || value > upper {
				info.Count++
				info.Quarters = append(info.Quarters, v.data.Observations[i].Quarter)
				info.Values = append(info.Values, value)
			}
		}
		if total > 0 {
			info.Percentage = float64(info.Count) / float64(total) * 100
		}

		indicators[ind] = info
	}

	return OutlierResult{Indicators: indicators}
}

// CheckConsistency verifies that ER + UR stays within the configured
// absolute tolerance of 100 for every quarter.
func (v *Validator) CheckConsistency() ConsistencyResult {
	result := ConsistencyResult{
		ERURConsistent:       true,
		InconsistentQuarters: []string{},
	}

	for _, obs := range v.data.Observations {
		if math.IsNaN(obs.ER) || math.IsNaN(obs.UR) {
			continue
		}
		if math.Abs(obs.ER+obs.UR-100) > v.pipeline.ConsistencyTolerance {
			result.InconsistentCount++
			result.InconsistentQuarters = append(result.InconsistentQuarters, obs.Quarter)
		}
	}

	result.ERURConsistent = result.InconsistentCount == 0
	return result
}

// Report renders a human-readable validation summary, running ValidateAll
// first if no validation has been cached yet.
func (v *Validator) Report() string {
	if v.results == nil {
		v.ValidateAll()
	}
	r := v.results

	var b strings.Builder
	rule := strings.Repeat("=", 60)

	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "DATA VALIDATION REPORT")
	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b)

	if r.MissingValues.HasMissing {
		fmt.Fprintf(&b, "Missing Values: ✗ %d found\n", r.MissingValues.TotalMissing)
	} else {
		fmt.Fprintln(&b, "Missing Values: ✓ None")
	}

	if r.DataRanges.AllValid {
		fmt.Fprintln(&b, "Data Ranges: ✓ All valid")
	} else {
		fmt.Fprintln(&b, "Data Ranges: ✗ Invalid values found")
	}

	if r.TemporalContinuity.IsContinuous {
		fmt.Fprintln(&b, "Temporal Continuity: ✓ Continuous")
	} else {
		fmt.Fprintf(&b, "Temporal Continuity: ✗ %d gaps found\n", r.TemporalContinuity.GapsFound)
	}

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "Outliers Detected:")
	for _, ind := range domain.Indicators {
		info := r.Outliers.Indicators[ind]
		fmt.Fprintf(&b, "  %s: %d (%.1f%%)\n", ind, info.Count, info.Percentage)
	}

	fmt.Fprintln(&b)
	if r.Consistency.ERURConsistent {
		fmt.Fprintln(&b, "Consistency Check: ✓ Passed")
	} else {
		fmt.Fprintln(&b, "Consistency Check: ✗ Failed")
	}

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, rule)
	if r.OverallValid {
		fmt.Fprintln(&b, "Overall Status: ✓ VALID")
	} else {
		fmt.Fprintln(&b, "Overall Status: ✗ ISSUES FOUND")
	}
	fmt.Fprint(&b, rule)

	return b.String()
}
