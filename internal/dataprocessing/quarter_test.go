package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukeuthy/phLaborMarketPredictiveAnalytics/internal/errors"
)

func TestParseQuarter(t *testing.T) {
	tests := []struct {
		name        string
		label       string
		wantYear    int
		wantQuarter int
		wantErr     bool
	}{
		{
			name:        "first quarter",
			label:       "2020 Q1",
			wantYear:    2020,
			wantQuarter: 1,
		},
		{
			name:        "fourth quarter",
			label:       "2015 Q4",
			wantYear:    2015,
			wantQuarter: 4,
		},
		{
			name:        "extra whitespace tolerated",
			label:       "  2020   Q2  ",
			wantYear:    2020,
			wantQuarter: 2,
		},
		{
			name:    "missing quarter token",
			label:   "2020",
			wantErr: true,
		},
		{
			name:    "too many tokens",
			label:   "2020 Q1 extra",
			wantErr: true,
		},
		{
			name:    "two digit year",
			label:   "20 Q1",
			wantErr: true,
		},
		{
			name:    "non numeric year",
			label:   "abcd Q1",
			wantErr: true,
		},
		{
			name:    "quarter zero",
			label:   "2020 Q0",
			wantErr: true,
		},
		{
			name:    "quarter five",
			label:   "2020 Q5",
			wantErr: true,
		},
		{
			name:    "lowercase quarter token",
			label:   "2020 q1",
			wantErr: true,
		},
		{
			name:    "empty label",
			label:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			year, quarter, err := ParseQuarter(tt.label)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsType(err, errors.ErrTypeFormat),
					"expected a format error, got: %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantYear, year)
			assert.Equal(t, tt.wantQuarter, quarter)
		})
	}
}

func TestParseQuarterCarriesRawValue(t *testing.T) {
	_, _, err := ParseQuarter("2020-Q1")
	require.Error(t, err)

	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, "2020-Q1", appErr.Context["raw_value"])
}

func TestQuarterToDate(t *testing.T) {
	tests := []struct {
		label string
		want  time.Time
	}{
		{"2020 Q1", time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)},
		{"2020 Q2", time.Date(2020, time.April, 1, 0, 0, 0, 0, time.UTC)},
		{"2020 Q3", time.Date(2020, time.July, 1, 0, 0, 0, 0, time.UTC)},
		{"2020 Q4", time.Date(2020, time.October, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, err := QuarterToDate(tt.label)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %v, got %v", tt.want, got)
		})
	}
}

func TestQuarterToDateInvalid(t *testing.T) {
	_, err := QuarterToDate("not a quarter")
	require.Error(t, err)
}

func TestFormatQuarterRoundTrip(t *testing.T) {
	for year := 2014; year <= 2024; year++ {
		for q := 1; q <= 4; q++ {
			label := FormatQuarter(year, q)
			gotYear, gotQ, err := ParseQuarter(label)
			require.NoError(t, err, "label %q should parse", label)
			assert.Equal(t, year, gotYear)
			assert.Equal(t, q, gotQ)
		}
	}
}

func TestQuarterOf(t *testing.T) {
	tests := []struct {
		month time.Month
		want  int
	}{
		{time.January, 1},
		{time.March, 1},
		{time.April, 2},
		{time.June, 2},
		{time.July, 3},
		{time.September, 3},
		{time.October, 4},
		{time.December, 4},
	}

	for _, tt := range tests {
		date := time.Date(2020, tt.month, 15, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, tt.want, QuarterOf(date), "month %s", tt.month)
	}
}
