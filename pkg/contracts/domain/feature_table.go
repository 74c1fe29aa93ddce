package domain

import (
	"fmt"
	"math"
	"time"
)

// FeatureTable is a column-oriented table of derived features keyed by
// quarter. A cell holding NaN is undefined (a warm-up row for a lag,
// moving-average, or change column). Tables are value-producing: every
// transform returns a new table and leaves its input untouched.
type FeatureTable struct {
	Quarters []string             `json:"quarters"`
	Dates    []time.Time          `json:"dates"`
	Columns  []string             `json:"columns"`
	Data     map[string][]float64 `json:"data"`
}

// NewFeatureTable creates an empty table over the given quarter axis.
func NewFeatureTable(quarters []string, dates []time.Time) *FeatureTable {
	return &FeatureTable{
		Quarters: append([]string(nil), quarters...),
		Dates:    append([]time.Time(nil), dates...),
		Columns:  []string{},
		Data:     make(map[string][]float64),
	}
}

// TableFromDataset builds a base feature table carrying the dataset's four
// indicator columns.
func TableFromDataset(d *Dataset) *FeatureTable {
	t := NewFeatureTable(d.Quarters(), d.Dates())
	for _, ind := range Indicators {
		series, _ := d.IndicatorSeries(ind)
		// series is freshly allocated by IndicatorSeries
		t.Columns = append(t.Columns, ind)
		t.Data[ind] = series
	}
	return t
}

// Copy returns a deep copy of the table.
func (t *FeatureTable) Copy() *FeatureTable {
	out := NewFeatureTable(t.Quarters, t.Dates)
	out.Columns = append([]string(nil), t.Columns...)
	for name, values := range t.Data {
		out.Data[name] = append([]float64(nil), values...)
	}
	return out
}

// AddColumn appends a named column. Adding a name that already exists
// replaces its values without changing column order.
func (t *FeatureTable) AddColumn(name string, values []float64) error {
	if len(values) != len(t.Quarters) {
		return fmt.Errorf("column %s has %d values, table has %d rows", name, len(values), len(t.Quarters))
	}
	if _, exists := t.Data[name]; !exists {
		t.Columns = append(t.Columns, name)
	}
	t.Data[name] = append([]float64(nil), values...)
	return nil
}

// Column returns the named column. The second return value is false when
// the column does not exist.
func (t *FeatureTable) Column(name string) ([]float64, bool) {
	values, ok := t.Data[name]
	return values, ok
}

// NumRows returns the number of rows in the table.
func (t *FeatureTable) NumRows() int {
	return len(t.Quarters)
}

// Shape returns (rows, columns) counting the Quarter and Date axes, so the
// reported shape matches the exported tabular form.
func (t *FeatureTable) Shape() (int, int) {
	return len(t.Quarters), len(t.Columns) + 2
}

// rowHasNaN reports whether any column is undefined at row i.
func (t *FeatureTable) rowHasNaN(i int) bool {
	for _, name := range t.Columns {
		if math.IsNaN(t.Data[name][i]) {
			return true
		}
	}
	return false
}

// DropNaNRows returns a new table containing only rows where every column
// is defined. Warm-up rows introduced by lag and window features disappear
// here.
func (t *FeatureTable) DropNaNRows() *FeatureTable {
	keep := make([]int, 0, len(t.Quarters))
	for i := range t.Quarters {
		if !t.rowHasNaN(i) {
			keep = append(keep, i)
		}
	}

	out := &FeatureTable{
		Quarters: make([]string, len(keep)),
		Dates:    make([]time.Time, len(keep)),
		Columns:  append([]string(nil), t.Columns...),
		Data:     make(map[string][]float64, len(t.Columns)),
	}
	for _, name := range t.Columns {
		out.Data[name] = make([]float64, len(keep))
	}
	for j, i := range keep {
		out.Quarters[j] = t.Quarters[i]
		out.Dates[j] = t.Dates[i]
		for _, name := range t.Columns {
			out.Data[name][j] = t.Data[name][i]
		}
	}
	return out
}
