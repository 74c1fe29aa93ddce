package dataprocessing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lukeuthy/phLaborMarketPredictiveAnalytics/internal/config"
	"github.com/lukeuthy/phLaborMarketPredictiveAnalytics/pkg/contracts/domain"
)

// makeDataset builds a sorted dataset from quarter labels and per-indicator
// series. Every series must match the quarter count.
func makeDataset(t *testing.T, quarters []string, values map[string][]float64) *domain.Dataset {
	t.Helper()

	observations := make([]domain.Observation, len(quarters))
	for i, label := range quarters {
		date, err := QuarterToDate(label)
		require.NoError(t, err)

		obs := domain.Observation{Quarter: label, Date: date}
		for _, ind := range domain.Indicators {
			series, ok := values[ind]
			require.True(t, ok, "missing series for %s", ind)
			require.Len(t, series, len(quarters))
			obs.SetIndicator(ind, series[i])
		}
		observations[i] = obs
	}

	return &domain.Dataset{
		Observations: observations,
		Meta: domain.DatasetMeta{
			Source:      "test",
			RecordCount: len(observations),
			Columns:     append(append([]string(nil), config.RequiredColumns...), config.DateColumn),
		},
	}
}

// repeat returns a series of n copies of v.
func repeat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// consecutiveQuarters generates n quarter labels starting at the given
// year and quarter.
func consecutiveQuarters(year, quarter, n int) []string {
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = FormatQuarter(year, quarter)
		quarter++
		if quarter > 4 {
			quarter = 1
			year++
		}
	}
	return out
}

// writeTempCSV writes lines joined as a CSV file in a temp directory and
// returns its path.
func writeTempCSV(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "input.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
