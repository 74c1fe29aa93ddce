package dataprocessing

import (
	"math"
	"sort"
)

// SafeDivide returns numerator/denominator, or def when the denominator is
// zero. Ratio derivations use this instead of raising on bad rows.
func SafeDivide(numerator, denominator, def float64) float64 {
	if denominator == 0 {
		return def
	}
	return numerator / denominator
}

// PercentageChange returns the percent change from previous to current,
// or 0.0 when previous is zero.
func PercentageChange(current, previous float64) float64 {
	if previous == 0 {
		return 0.0
	}
	return ((current - previous) / previous) * 100
}

// validValues filters NaN and Inf out of a series. Statistics are computed
// over the defined values only, matching how the original treated missing
// cells.
func validValues(values []float64) []float64 {
	valid := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			valid = append(valid, v)
		}
	}
	return valid
}

// Mean returns the arithmetic mean of the defined values, NaN if none.
func Mean(values []float64) float64 {
	valid := validValues(values)
	if len(valid) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, v := range valid {
		sum += v
	}
	return sum / float64(len(valid))
}

// Median returns the middle defined value, NaN if none.
func Median(values []float64) float64 {
	return Quantile(values, 0.5)
}

// SampleStdDev returns the sample standard deviation (n-1 denominator) of
// the defined values. Series with fewer than two defined values yield NaN.
func SampleStdDev(values []float64) float64 {
	valid := validValues(values)
	if len(valid) < 2 {
		return math.NaN()
	}

	mean := Mean(valid)
	sumSquaredDiff := 0.0
	for _, v := range valid {
		diff := v - mean
		sumSquaredDiff += diff * diff
	}

	return math.Sqrt(sumSquaredDiff / float64(len(valid)-1))
}

// Quantile returns the q-th quantile (0 <= q <= 1) of the defined values
// using linear interpolation between closest ranks. NaN if the series has
// no defined values.
func Quantile(values []float64, q float64) float64 {
	valid := validValues(values)
	if len(valid) == 0 || q < 0 || q > 1 {
		return math.NaN()
	}

	sorted := append([]float64(nil), valid...)
	sort.Float64s(sorted)

	if len(sorted) == 1 {
		return sorted[0]
	}

	pos := q * float64(len(sorted)-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	if lower == upper {
		return sorted[lower]
	}

	frac := pos - float64(lower)
	return sorted[lower] + frac*(sorted[upper]-sorted[lower])
}

// Min returns the smallest defined value, NaN if none.
func Min(values []float64) float64 {
	valid := validValues(values)
	if len(valid) == 0 {
		return math.NaN()
	}
	min := valid[0]
	for _, v := range valid[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

// Max returns the largest defined value, NaN if none.
func Max(values []float64) float64 {
	valid := validValues(values)
	if len(valid) == 0 {
		return math.NaN()
	}
	max := valid[0]
	for _, v := range valid[1:] {
		if v > max {
			max = v
		}
	}
	return max
}
