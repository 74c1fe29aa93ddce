package dataprocessing

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/lukeuthy/phLaborMarketPredictiveAnalytics/internal/config"
	"github.com/lukeuthy/phLaborMarketPredictiveAnalytics/internal/errors"
	"github.com/lukeuthy/phLaborMarketPredictiveAnalytics/internal/exporter"
	"github.com/lukeuthy/phLaborMarketPredictiveAnalytics/pkg/contracts/domain"
)

// Loader reads rectangular labor-market tables and owns the canonical
// dataset it produces. A single Loader instance is not safe for concurrent
// use; callers needing concurrency provide independent instances.
type Loader struct {
	logger   *slog.Logger
	pipeline config.PipelineConfig
	paths    *config.Paths

	data *domain.Dataset
}

// IndicatorStats holds per-indicator summary statistics.
type IndicatorStats struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	P25    float64 `json:"q25"`
	P75    float64 `json:"q75"`
}

// NewLoader creates a loader. paths may be nil when the caller always
// passes explicit export destinations.
func NewLoader(logger *slog.Logger, pipeline config.PipelineConfig, paths *config.Paths) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		logger:   logger.With(slog.String("component", "loader")),
		pipeline: pipeline,
		paths:    paths,
	}
}

// Data returns the loaded dataset, or nil before any load.
func (l *Loader) Data() *domain.Dataset {
	return l.data
}

// LoadCSV loads a dataset from a comma-separated file. The header must
// carry every required column; rows are sorted by derived date ascending.
// Schema and format failures abort the load with no partial dataset.
func (l *Loader) LoadCSV(path string) (*domain.Dataset, error) {
	l.logger.Info("loading data", slog.String("path", path))

	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewStorageError("failed to open input file", err).
			WithContext("path", path)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.NewStorageError("failed to read CSV records", err).
			WithContext("path", path)
	}

	return l.loadRows(path, rows)
}

// LoadExcel loads a dataset from the first non-empty sheet of an .xlsx
// workbook, applying the same schema contract as LoadCSV.
func (l *Loader) LoadExcel(path string) (*domain.Dataset, error) {
	l.logger.Info("loading workbook", slog.String("path", path))

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.NewStorageError("failed to open workbook", err).
			WithContext("path", path)
	}
	defer f.Close()

	var rows [][]string
	for _, sheet := range f.GetSheetList() {
		sheetRows, err := f.GetRows(sheet)
		if err != nil {
			continue
		}
		if len(sheetRows) > 0 {
			rows = sheetRows
			break
		}
	}

	if len(rows) == 0 {
		return nil, errors.NewStorageError("workbook contains no data", nil).
			WithContext("path", path)
	}

	return l.loadRows(path, rows)
}

// loadRows assembles the dataset from raw header+data rows.
func (l *Loader) loadRows(source string, rows [][]string) (*domain.Dataset, error) {
	if len(rows) == 0 {
		return nil, errors.NewStorageError("input contains no rows", nil).
			WithContext("source", source)
	}

	header := make([]string, len(rows[0]))
	for i, cell := range rows[0] {
		header[i] = strings.TrimSpace(cell)
	}

	columnIndex := make(map[string]int, len(header))
	for i, name := range header {
		columnIndex[name] = i
	}

	var missing []string
	for _, required := range config.RequiredColumns {
		if _, ok := columnIndex[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, errors.NewSchemaError(missing)
	}

	observations := make([]domain.Observation, 0, len(rows)-1)
	for rowNum, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}

		obs, err := l.parseObservation(header, columnIndex, row)
		if err != nil {
			var appErr *errors.AppError
			if e, ok := err.(*errors.AppError); ok {
				appErr = e
			} else {
				appErr = errors.NewFormatError(err.Error(), "")
			}
			return nil, appErr.WithContext("row", rowNum+2)
		}
		observations = append(observations, obs)
	}

	// Stable sort keeps the original order for equal dates.
	sort.SliceStable(observations, func(i, j int) bool {
		return observations[i].Date.Before(observations[j].Date)
	})

	columns := append([]string(nil), header...)
	columns = append(columns, config.DateColumn)

	dataset := &domain.Dataset{
		Observations: observations,
		Meta: domain.DatasetMeta{
			Source:      source,
			RecordCount: len(observations),
			Columns:     columns,
		},
	}
	if len(observations) > 0 {
		dataset.Meta.FirstQuarter = observations[0].Quarter
		dataset.Meta.LastQuarter = observations[len(observations)-1].Quarter
	}

	l.data = dataset
	l.logger.Info("successfully loaded records",
		slog.Int("record_count", dataset.Meta.RecordCount),
		slog.String("first_quarter", dataset.Meta.FirstQuarter),
		slog.String("last_quarter", dataset.Meta.LastQuarter))

	if dataset.Meta.RecordCount < l.pipeline.MinDataPoints {
		l.logger.Warn("dataset below minimum data points threshold",
			slog.Int("record_count", dataset.Meta.RecordCount),
			slog.Int("min_data_points", l.pipeline.MinDataPoints))
	}

	return dataset, nil
}

// parseObservation builds one observation from a data row. Empty indicator
// cells become NaN; a malformed quarter label or numeric cell aborts the
// load.
func (l *Loader) parseObservation(header []string, columnIndex map[string]int, row []string) (domain.Observation, error) {
	cell := func(name string) string {
		idx := columnIndex[name]
		if idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	label := cell(config.QuarterColumn)
	date, err := QuarterToDate(label)
	if err != nil {
		return domain.Observation{}, err
	}

	obs := domain.Observation{Quarter: label, Date: date}

	for _, ind := range domain.Indicators {
		raw := cell(ind)
		if raw == "" {
			obs.SetIndicator(ind, math.NaN())
			continue
		}
		value, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
		if err != nil {
			return domain.Observation{}, errors.NewFormatError(
				fmt.Sprintf("invalid numeric value for %s: %q", ind, raw), raw)
		}
		obs.SetIndicator(ind, value)
	}

	// Passthrough columns survive untouched.
	for i, name := range header {
		if name == config.QuarterColumn || domain.IsIndicator(name) {
			continue
		}
		if i >= len(row) {
			continue
		}
		if obs.Extra == nil {
			obs.Extra = make(map[string]string)
		}
		obs.Extra[name] = strings.TrimSpace(row[i])
	}

	return obs, nil
}

// IndicatorSeries projects one indicator column from the loaded dataset.
func (l *Loader) IndicatorSeries(indicator string) ([]float64, error) {
	if l.data == nil {
		return nil, errors.NewStateError("IndicatorSeries")
	}

	series, ok := l.data.IndicatorSeries(indicator)
	if !ok {
		return nil, errors.NewValueError(fmt.Sprintf("invalid indicator: %s", indicator))
	}
	return series, nil
}

// DateRange returns the first and last dates of the loaded dataset. The
// third return value is false when nothing is loaded.
func (l *Loader) DateRange() (time.Time, time.Time, bool) {
	if l.data == nil {
		return time.Time{}, time.Time{}, false
	}
	return l.data.DateRange()
}

// SummaryStatistics computes per-indicator summary statistics over the
// loaded dataset.
func (l *Loader) SummaryStatistics() (map[string]IndicatorStats, error) {
	if l.data == nil {
		return nil, errors.NewStateError("SummaryStatistics")
	}

	stats := make(map[string]IndicatorStats, len(domain.Indicators))
	for _, ind := range domain.Indicators {
		series, _ := l.data.IndicatorSeries(ind)
		stats[ind] = IndicatorStats{
			Mean:   Mean(series),
			Median: Median(series),
			StdDev: SampleStdDev(series),
			Min:    Min(series),
			Max:    Max(series),
			P25:    Quantile(series, 0.25),
			P75:    Quantile(series, 0.75),
		}
	}

	return stats, nil
}

// ExportProcessed serializes the loaded dataset, including the derived
// Date column, as CSV. An empty destination writes to the configured
// processed-data location. Returns the path written.
func (l *Loader) ExportProcessed(destination string) (string, error) {
	if l.data == nil {
		return "", errors.NewStateError("ExportProcessed")
	}

	if destination == "" {
		if l.paths == nil {
			return "", errors.NewConfigError("no export destination and no configured paths", nil)
		}
		destination = l.paths.ProcessedDataCSV
	}

	if err := exporter.WriteDatasetCSV(destination, l.data); err != nil {
		return "", err
	}

	l.logger.Info("data exported", slog.String("path", destination))
	return destination, nil
}

// isBlankRow reports whether every cell in the row is empty.
func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
