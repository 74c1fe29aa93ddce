package domain

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() *FeatureTable {
	return NewFeatureTable(
		[]string{"2020 Q1", "2020 Q2", "2020 Q3"},
		[]time.Time{
			time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2020, time.April, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2020, time.July, 1, 0, 0, 0, 0, time.UTC),
		},
	)
}

func TestTableFromDataset(t *testing.T) {
	table := TableFromDataset(sampleDataset())

	assert.Equal(t, 2, table.NumRows())
	assert.Equal(t, Indicators, table.Columns)

	ur, ok := table.Column(IndicatorUR)
	require.True(t, ok)
	assert.Equal(t, []float64{5.3, 17.6}, ur)
}

func TestAddColumn(t *testing.T) {
	table := sampleTable()

	require.NoError(t, table.AddColumn("UR", []float64{1, 2, 3}))
	assert.Equal(t, []string{"UR"}, table.Columns)

	// Replacing keeps column order.
	require.NoError(t, table.AddColumn("ER", []float64{4, 5, 6}))
	require.NoError(t, table.AddColumn("UR", []float64{7, 8, 9}))
	assert.Equal(t, []string{"UR", "ER"}, table.Columns)

	ur, _ := table.Column("UR")
	assert.Equal(t, []float64{7, 8, 9}, ur)
}

func TestAddColumnLengthMismatch(t *testing.T) {
	table := sampleTable()
	assert.Error(t, table.AddColumn("UR", []float64{1, 2}))
}

func TestColumnMissing(t *testing.T) {
	table := sampleTable()
	_, ok := table.Column("nope")
	assert.False(t, ok)
}

func TestShape(t *testing.T) {
	table := sampleTable()
	require.NoError(t, table.AddColumn("a", []float64{1, 2, 3}))
	require.NoError(t, table.AddColumn("b", []float64{4, 5, 6}))

	rows, cols := table.Shape()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 4, cols, "shape counts the Quarter and Date axes")
}

func TestTableCopyIsDeep(t *testing.T) {
	table := sampleTable()
	require.NoError(t, table.AddColumn("UR", []float64{1, 2, 3}))

	cp := table.Copy()
	values, _ := cp.Column("UR")
	values[0] = 99
	require.NoError(t, cp.AddColumn("extra", []float64{0, 0, 0}))

	original, _ := table.Column("UR")
	assert.InDelta(t, 1, original[0], 1e-12)
	assert.Equal(t, []string{"UR"}, table.Columns)
}

func TestDropNaNRows(t *testing.T) {
	table := sampleTable()
	require.NoError(t, table.AddColumn("UR", []float64{5.3, 17.6, 10.0}))
	require.NoError(t, table.AddColumn("UR_lag_1", []float64{math.NaN(), 5.3, 17.6}))

	dropped := table.DropNaNRows()

	assert.Equal(t, 2, dropped.NumRows())
	assert.Equal(t, []string{"2020 Q2", "2020 Q3"}, dropped.Quarters)

	lag, _ := dropped.Column("UR_lag_1")
	assert.Equal(t, []float64{5.3, 17.6}, lag)

	// Original table keeps all rows.
	assert.Equal(t, 3, table.NumRows())
}

func TestDropNaNRowsAllDefined(t *testing.T) {
	table := sampleTable()
	require.NoError(t, table.AddColumn("UR", []float64{1, 2, 3}))

	dropped := table.DropNaNRows()
	assert.Equal(t, 3, dropped.NumRows())
}

func TestDropNaNRowsEverythingUndefined(t *testing.T) {
	table := sampleTable()
	require.NoError(t, table.AddColumn("UR", []float64{math.NaN(), math.NaN(), math.NaN()}))

	dropped := table.DropNaNRows()
	assert.Equal(t, 0, dropped.NumRows())
	assert.Equal(t, []string{"UR"}, dropped.Columns, "columns survive even when no rows do")
}
