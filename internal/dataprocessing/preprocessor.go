package dataprocessing

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/lukeuthy/phLaborMarketPredictiveAnalytics/internal/errors"
	"github.com/lukeuthy/phLaborMarketPredictiveAnalytics/pkg/contracts/domain"
)

// Normalization methods accepted by NormalizeIndicators.
const (
	NormalizeZScore = "zscore"
	NormalizeMinMax = "minmax"
)

// Preprocessor derives time-series features from a dataset. The
// constructor takes a defensive copy; every method returns a new feature
// table and never mutates the stored copy, so derived-feature pipelines
// compose freely.
type Preprocessor struct {
	logger *slog.Logger
	base   *domain.FeatureTable
}

// ModelingOptions selects which feature families PrepareForModeling
// composes. Rate-of-change features for the target are always included.
type ModelingOptions struct {
	IncludeTemporal bool
	IncludeLags     bool
	IncludeMA       bool
}

// Default feature parameters for modeling-table assembly.
var (
	modelingLags    = []int{1, 2, 4}
	modelingWindows = []int{2, 4}
	defaultPeriods  = []int{1, 4}
)

// NewPreprocessor creates a preprocessor over a defensive copy of the
// dataset.
func NewPreprocessor(logger *slog.Logger, data *domain.Dataset) *Preprocessor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Preprocessor{
		logger: logger.With(slog.String("component", "preprocessor")),
		base:   domain.TableFromDataset(data.Copy()),
	}
}

// CreateTemporalFeatures derives Year, QuarterNum, and Month from each
// row's date, plus cyclical sin/cos encodings of the quarter so Q4 and Q1
// sit adjacent rather than four ordinal steps apart.
func (p *Preprocessor) CreateTemporalFeatures() *domain.FeatureTable {
	p.logger.Info("creating temporal features")
	return p.addTemporalFeatures(p.base.Copy())
}

func (p *Preprocessor) addTemporalFeatures(t *domain.FeatureTable) *domain.FeatureTable {
	n := t.NumRows()
	years := make([]float64, n)
	quarters := make([]float64, n)
	months := make([]float64, n)
	sins := make([]float64, n)
	coss := make([]float64, n)

	for i, date := range t.Dates {
		q := QuarterOf(date)
		years[i] = float64(date.Year())
		quarters[i] = float64(q)
		months[i] = float64(date.Month())
		sins[i] = math.Sin(2 * math.Pi * float64(q) / 4)
		coss[i] = math.Cos(2 * math.Pi * float64(q) / 4)
	}

	t.AddColumn("Year", years)
	t.AddColumn("QuarterNum", quarters)
	t.AddColumn("Month", months)
	t.AddColumn("Quarter_sin", sins)
	t.AddColumn("Quarter_cos", coss)
	return t
}

// AddLagFeatures adds, for each indicator and lag k, a column holding the
// value k quarters prior. The leading k rows of each lag column are
// undefined.
func (p *Preprocessor) AddLagFeatures(indicators []string, lags []int) (*domain.FeatureTable, error) {
	p.logger.Info("adding lag features", slog.Any("lags", lags))

	t := p.base.Copy()
	if err := p.addLagFeatures(t, indicators, lags); err != nil {
		return nil, err
	}
	return t, nil
}

func (p *Preprocessor) addLagFeatures(t *domain.FeatureTable, indicators []string, lags []int) error {
	for _, ind := range indicators {
		series, ok := t.Column(ind)
		if !ok {
			return errors.NewValueError(fmt.Sprintf("invalid indicator: %s", ind))
		}
		for _, lag := range lags {
			if lag <= 0 {
				return errors.NewValueError(fmt.Sprintf("lag must be positive, got %d", lag))
			}
			t.AddColumn(fmt.Sprintf("%s_lag_%d", ind, lag), shift(series, lag))
		}
	}
	return nil
}

// AddMovingAverages adds trailing rolling means per indicator and window.
// The first window-1 rows of each column are undefined.
func (p *Preprocessor) AddMovingAverages(indicators []string, windows []int) (*domain.FeatureTable, error) {
	p.logger.Info("adding moving averages", slog.Any("windows", windows))

	t := p.base.Copy()
	if err := p.addMovingAverages(t, indicators, windows); err != nil {
		return nil, err
	}
	return t, nil
}

func (p *Preprocessor) addMovingAverages(t *domain.FeatureTable, indicators []string, windows []int) error {
	for _, ind := range indicators {
		series, ok := t.Column(ind)
		if !ok {
			return errors.NewValueError(fmt.Sprintf("invalid indicator: %s", ind))
		}
		for _, window := range windows {
			if window <= 0 {
				return errors.NewValueError(fmt.Sprintf("window must be positive, got %d", window))
			}
			t.AddColumn(fmt.Sprintf("%s_ma%d", ind, window), rollingMean(series, window))
		}
	}
	return nil
}

// AddRateOfChange adds percent-change columns per indicator and period.
// A nil periods slice uses the defaults {1, 4}. Cells where the earlier
// value is unavailable are undefined; a zero earlier value yields 0.0 per
// the percentage-change contract.
func (p *Preprocessor) AddRateOfChange(indicators []string, periods []int) (*domain.FeatureTable, error) {
	if periods == nil {
		periods = defaultPeriods
	}
	p.logger.Info("adding rate of change features", slog.Any("periods", periods))

	t := p.base.Copy()
	if err := p.addRateOfChange(t, indicators, periods); err != nil {
		return nil, err
	}
	return t, nil
}

func (p *Preprocessor) addRateOfChange(t *domain.FeatureTable, indicators []string, periods []int) error {
	for _, ind := range indicators {
		series, ok := t.Column(ind)
		if !ok {
			return errors.NewValueError(fmt.Sprintf("invalid indicator: %s", ind))
		}
		for _, period := range periods {
			if period <= 0 {
				return errors.NewValueError(fmt.Sprintf("period must be positive, got %d", period))
			}

			change := make([]float64, len(series))
			for i := range series {
				if i < period || math.IsNaN(series[i]) || math.IsNaN(series[i-period]) {
					change[i] = math.NaN()
					continue
				}
				change[i] = PercentageChange(series[i], series[i-period])
			}
			t.AddColumn(fmt.Sprintf("%s_change%d", ind, period), change)
		}
	}
	return nil
}

// NormalizeIndicators adds a normalized column per indicator using the
// given method: zscore ((v-mean)/stddev) or minmax ((v-min)/(max-min)).
// Normalized cells are undefined when the stddev or range is zero.
func (p *Preprocessor) NormalizeIndicators(indicators []string, method string) (*domain.FeatureTable, error) {
	p.logger.Info("normalizing indicators", slog.String("method", method))

	if method != NormalizeZScore && method != NormalizeMinMax {
		return nil, errors.NewValueError(fmt.Sprintf("invalid normalization method: %s", method))
	}

	t := p.base.Copy()
	for _, ind := range indicators {
		series, ok := t.Column(ind)
		if !ok {
			return nil, errors.NewValueError(fmt.Sprintf("invalid indicator: %s", ind))
		}

		norm := make([]float64, len(series))
		switch method {
		case NormalizeZScore:
			mean := Mean(series)
			std := SampleStdDev(series)
			for i, v := range series {
				if math.IsNaN(v) || math.IsNaN(std) || std == 0 {
					norm[i] = math.NaN()
					continue
				}
				norm[i] = (v - mean) / std
			}
		case NormalizeMinMax:
			min := Min(series)
			max := Max(series)
			span := max - min
			for i, v := range series {
				if math.IsNaN(v) || math.IsNaN(span) || span == 0 {
					norm[i] = math.NaN()
					continue
				}
				norm[i] = (v - min) / span
			}
		}
		t.AddColumn(ind+"_norm", norm)
	}

	return t, nil
}

// PrepareForModeling composes the modeling feature set for the target
// indicator: temporal encodings, lags {1,2,4}, moving averages {2,4} (each
// when requested), and rate-of-change at the default periods (always).
// Rows made undefined by any warm-up span are dropped from the result.
func (p *Preprocessor) PrepareForModeling(target string, opts ModelingOptions) (*domain.FeatureTable, error) {
	p.logger.Info("preparing data for modeling", slog.String("target", target))

	if !domain.IsIndicator(target) {
		return nil, errors.NewValueError(fmt.Sprintf("invalid indicator: %s", target))
	}

	t := p.base.Copy()

	if opts.IncludeTemporal {
		t = p.addTemporalFeatures(t)
	}
	if opts.IncludeLags {
		if err := p.addLagFeatures(t, []string{target}, modelingLags); err != nil {
			return nil, err
		}
	}
	if opts.IncludeMA {
		if err := p.addMovingAverages(t, []string{target}, modelingWindows); err != nil {
			return nil, err
		}
	}
	if err := p.addRateOfChange(t, []string{target}, defaultPeriods); err != nil {
		return nil, err
	}

	t = t.DropNaNRows()

	rows, cols := t.Shape()
	p.logger.Info("prepared dataset shape",
		slog.Int("rows", rows),
		slog.Int("columns", cols))

	return t, nil
}

// shift returns series moved forward lag positions, with undefined leading
// cells.
func shift(series []float64, lag int) []float64 {
	out := make([]float64, len(series))
	for i := range out {
		if i < lag {
			out[i] = math.NaN()
			continue
		}
		out[i] = series[i-lag]
	}
	return out
}

// rollingMean returns the trailing mean over window consecutive values.
// Any undefined value inside the window makes the cell undefined.
func rollingMean(series []float64, window int) []float64 {
	out := make([]float64, len(series))
	for i := range out {
		if i < window-1 {
			out[i] = math.NaN()
			continue
		}

		sum := 0.0
		defined := true
		for j := i - window + 1; j <= i; j++ {
			if math.IsNaN(series[j]) {
				defined = false
				break
			}
			sum += series[j]
		}
		if !defined {
			out[i] = math.NaN()
			continue
		}
		out[i] = sum / float64(window)
	}
	return out
}
