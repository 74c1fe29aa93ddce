// Package exporter writes datasets and derived feature tables as
// delimited files under the configured output directories.
package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/lukeuthy/phLaborMarketPredictiveAnalytics/internal/config"
	"github.com/lukeuthy/phLaborMarketPredictiveAnalytics/internal/errors"
	"github.com/lukeuthy/phLaborMarketPredictiveAnalytics/pkg/contracts/domain"
)

const dateFormat = "2006-01-02"

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	paths *config.Paths
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(paths *config.Paths) *CSVWriter {
	return &CSVWriter{paths: paths}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes data to a CSV file with the given options
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) error {
	fullPath := w.resolvePath(filePath)

	slog.Info("writing CSV file",
		slog.String("full_path", fullPath),
		slog.Int("record_count", len(options.Records)))

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.NewStorageError("failed to create output directory", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return errors.NewStorageError("failed to create output file", err)
	}
	defer file.Close()

	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return errors.NewStorageError("failed to write BOM", err)
		}
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return errors.NewStorageError("failed to write header row", err)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return errors.NewStorageError(fmt.Sprintf("failed to write record %d", i), err)
		}
	}

	if err := writer.Error(); err != nil {
		return errors.NewStorageError("failed to flush CSV output", err)
	}
	return nil
}

// resolvePath resolves a relative path into the exports directory.
func (w *CSVWriter) resolvePath(filePath string) string {
	if filepath.IsAbs(filePath) || w.paths == nil {
		return filePath
	}
	return w.paths.GetExportPath(filePath)
}

// WriteDatasetCSV writes a dataset to path: the original columns in header
// order plus the derived Date column. Missing indicator values export as
// empty cells.
func WriteDatasetCSV(path string, dataset *domain.Dataset) error {
	headers := append([]string(nil), dataset.Meta.Columns...)

	records := make([][]string, 0, dataset.Len())
	for _, obs := range dataset.Observations {
		record := make([]string, 0, len(headers))
		for _, col := range headers {
			switch {
			case col == config.QuarterColumn:
				record = append(record, obs.Quarter)
			case col == config.DateColumn:
				record = append(record, obs.Date.Format(dateFormat))
			case domain.IsIndicator(col):
				value, _ := obs.Indicator(col)
				record = append(record, formatCell(value))
			default:
				record = append(record, obs.Extra[col])
			}
		}
		records = append(records, record)
	}

	writer := NewCSVWriter(nil)
	return writer.WriteCSV(path, WriteOptions{Headers: headers, Records: records})
}

// WriteFeatureTableCSV writes a feature table to path with Quarter and
// Date axes followed by every feature column. Undefined cells export as
// empty.
func WriteFeatureTableCSV(path string, table *domain.FeatureTable) error {
	headers := append([]string{config.QuarterColumn, config.DateColumn}, table.Columns...)

	records := make([][]string, 0, table.NumRows())
	for i := range table.Quarters {
		record := make([]string, 0, len(headers))
		record = append(record, table.Quarters[i], table.Dates[i].Format(dateFormat))
		for _, col := range table.Columns {
			record = append(record, formatCell(table.Data[col][i]))
		}
		records = append(records, record)
	}

	writer := NewCSVWriter(nil)
	return writer.WriteCSV(path, WriteOptions{Headers: headers, Records: records})
}

// formatCell renders a float with minimal round-trip precision, empty for
// undefined values.
func formatCell(value float64) string {
	if math.IsNaN(value) {
		return ""
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
