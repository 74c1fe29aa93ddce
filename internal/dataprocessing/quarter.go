package dataprocessing

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lukeuthy/phLaborMarketPredictiveAnalytics/internal/errors"
)

// ParseQuarter parses a quarter label of the form "YYYY Qn" into its year
// and quarter number. Any other shape fails with a format error carrying
// the offending raw value.
func ParseQuarter(label string) (year, quarter int, err error) {
	parts := strings.Fields(label)
	if len(parts) != 2 {
		return 0, 0, errors.NewFormatError(
			fmt.Sprintf("invalid quarter format: %q", label), label)
	}

	year, err = strconv.Atoi(parts[0])
	if err != nil || len(parts[0]) != 4 {
		return 0, 0, errors.NewFormatError(
			fmt.Sprintf("invalid year in quarter label: %q", label), label)
	}

	qtoken := parts[1]
	if len(qtoken) != 2 || qtoken[0] != 'Q' {
		return 0, 0, errors.NewFormatError(
			fmt.Sprintf("invalid quarter token in label: %q", label), label)
	}

	quarter = int(qtoken[1] - '0')
	if quarter < 1 || quarter > 4 {
		return 0, 0, errors.NewFormatError(
			fmt.Sprintf("quarter number out of range in label: %q", label), label)
	}

	return year, quarter, nil
}

// QuarterToDate converts a quarter label to the first day of its starting
// month: Q1 opens in January, Q2 in April, Q3 in July, Q4 in October.
func QuarterToDate(label string) (time.Time, error) {
	year, quarter, err := ParseQuarter(label)
	if err != nil {
		return time.Time{}, err
	}

	month := time.Month((quarter-1)*3 + 1)
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), nil
}

// FormatQuarter renders a year and quarter number as a "YYYY Qn" label.
func FormatQuarter(year, quarter int) string {
	return fmt.Sprintf("%04d Q%d", year, quarter)
}

// QuarterOf returns the quarter number (1..4) a date falls in.
func QuarterOf(date time.Time) int {
	return (int(date.Month())-1)/3 + 1
}
