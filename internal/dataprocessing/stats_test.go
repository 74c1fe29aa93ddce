package dataprocessing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeDivide(t *testing.T) {
	tests := []struct {
		name        string
		numerator   float64
		denominator float64
		def         float64
		want        float64
	}{
		{"normal division", 10, 4, 0, 2.5},
		{"zero denominator returns default", 10, 0, -1, -1},
		{"zero numerator", 0, 4, -1, 0},
		{"negative values", -10, 4, 0, -2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, SafeDivide(tt.numerator, tt.denominator, tt.def), 1e-12)
		})
	}
}

func TestPercentageChange(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		previous float64
		want     float64
	}{
		{"increase", 110, 100, 10},
		{"decrease", 90, 100, -10},
		{"no change", 100, 100, 0},
		{"zero previous yields zero", 5, 0, 0},
		{"negative previous", 90, -100, -190},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, PercentageChange(tt.current, tt.previous), 1e-12)
		})
	}
}

func TestMean(t *testing.T) {
	assert.InDelta(t, 2.5, Mean([]float64{1, 2, 3, 4}), 1e-12)
	assert.InDelta(t, 2.5, Mean([]float64{1, math.NaN(), 2, 3, 4}), 1e-12,
		"NaN values are skipped")
	assert.True(t, math.IsNaN(Mean(nil)))
	assert.True(t, math.IsNaN(Mean([]float64{math.NaN(), math.NaN()})))
}

func TestMedian(t *testing.T) {
	assert.InDelta(t, 2.5, Median([]float64{1, 2, 3, 4}), 1e-12)
	assert.InDelta(t, 3, Median([]float64{1, 2, 3, 4, 5}), 1e-12)
	assert.InDelta(t, 3, Median([]float64{5, 1, 3, 2, 4}), 1e-12, "order must not matter")
	assert.True(t, math.IsNaN(Median(nil)))
}

func TestSampleStdDev(t *testing.T) {
	// Sample variance of {2,4,4,4,5,5,7,9} is 32/7.
	got := SampleStdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	assert.InDelta(t, math.Sqrt(32.0/7.0), got, 1e-12)

	assert.True(t, math.IsNaN(SampleStdDev([]float64{1})),
		"fewer than two defined values has no sample stddev")
	assert.True(t, math.IsNaN(SampleStdDev([]float64{1, math.NaN()})))
	assert.InDelta(t, 0, SampleStdDev([]float64{3, 3, 3}), 1e-12)
}

func TestQuantile(t *testing.T) {
	series := []float64{1, 2, 3, 4, 5}

	tests := []struct {
		name string
		q    float64
		want float64
	}{
		{"minimum", 0, 1},
		{"first quartile", 0.25, 2},
		{"median", 0.5, 3},
		{"third quartile", 0.75, 4},
		{"maximum", 1, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Quantile(series, tt.q), 1e-12)
		})
	}
}

func TestQuantileInterpolates(t *testing.T) {
	// Four values: q=0.25 lands at pos 0.75, between 1 and 2.
	assert.InDelta(t, 1.75, Quantile([]float64{1, 2, 3, 4}, 0.25), 1e-12)
	assert.InDelta(t, 3.25, Quantile([]float64{1, 2, 3, 4}, 0.75), 1e-12)
}

func TestQuantileEdgeCases(t *testing.T) {
	assert.True(t, math.IsNaN(Quantile(nil, 0.5)))
	assert.True(t, math.IsNaN(Quantile([]float64{1, 2}, -0.1)))
	assert.True(t, math.IsNaN(Quantile([]float64{1, 2}, 1.1)))
	assert.InDelta(t, 7, Quantile([]float64{7}, 0.25), 1e-12, "single value at any quantile")
	assert.InDelta(t, 2.5, Quantile([]float64{math.NaN(), 2, 3}, 0.5), 1e-12)
}

func TestMinMax(t *testing.T) {
	series := []float64{3, math.NaN(), -1, 7, 2}

	assert.InDelta(t, -1, Min(series), 1e-12)
	assert.InDelta(t, 7, Max(series), 1e-12)
	assert.True(t, math.IsNaN(Min(nil)))
	assert.True(t, math.IsNaN(Max(nil)))
}
