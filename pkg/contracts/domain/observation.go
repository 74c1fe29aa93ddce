package domain

import (
	"math"
	"time"
)

// Indicator column names as they appear in the input header.
const (
	IndicatorLFPR = "LFPR"
	IndicatorER   = "ER"
	IndicatorUR   = "UR"
	IndicatorUER  = "UER"
)

// Indicators lists the four labor-market indicator columns in canonical order.
var Indicators = []string{IndicatorLFPR, IndicatorER, IndicatorUR, IndicatorUER}

// IndicatorNames maps indicator codes to their full display names.
var IndicatorNames = map[string]string{
	IndicatorLFPR: "Labor Force Participation Rate",
	IndicatorER:   "Employment Rate",
	IndicatorUR:   "Unemployment Rate",
	IndicatorUER:  "Underemployment Rate",
}

// IsIndicator reports whether name is one of the four indicator columns.
func IsIndicator(name string) bool {
	for _, ind := range Indicators {
		if ind == name {
			return true
		}
	}
	return false
}

// Observation represents one quarter of labor-market data.
// A missing indicator value is stored as NaN, never as zero.
type Observation struct {
	Quarter string    `json:"quarter"`
	Date    time.Time `json:"date"`
	LFPR    float64   `json:"lfpr"`
	ER      float64   `json:"er"`
	UR      float64   `json:"ur"`
	UER     float64   `json:"uer"`

	// Extra holds passthrough columns that are not part of the required set.
	Extra map[string]string `json:"extra,omitempty"`
}

// Indicator returns the named indicator value. The second return value is
// false when name is not a recognized indicator.
func (o Observation) Indicator(name string) (float64, bool) {
	switch name {
	case IndicatorLFPR:
		return o.LFPR, true
	case IndicatorER:
		return o.ER, true
	case IndicatorUR:
		return o.UR, true
	case IndicatorUER:
		return o.UER, true
	default:
		return math.NaN(), false
	}
}

// SetIndicator assigns the named indicator value. It reports whether name
// was a recognized indicator.
func (o *Observation) SetIndicator(name string, value float64) bool {
	switch name {
	case IndicatorLFPR:
		o.LFPR = value
	case IndicatorER:
		o.ER = value
	case IndicatorUR:
		o.UR = value
	case IndicatorUER:
		o.UER = value
	default:
		return false
	}
	return true
}

// HasMissing reports whether any indicator value is NaN.
func (o Observation) HasMissing() bool {
	return math.IsNaN(o.LFPR) || math.IsNaN(o.ER) || math.IsNaN(o.UR) || math.IsNaN(o.UER)
}

// DatasetMeta records provenance information captured at load time.
type DatasetMeta struct {
	Source       string   `json:"source"`
	RecordCount  int      `json:"record_count"`
	FirstQuarter string   `json:"first_quarter"`
	LastQuarter  string   `json:"last_quarter"`
	Columns      []string `json:"columns"`
}

// Dataset is an ordered sequence of observations plus load metadata.
// Observations are sorted by date ascending once loaded. The loader owns
// the canonical dataset; downstream components work on copies or read-only
// references and never mutate it in place.
type Dataset struct {
	Observations []Observation `json:"observations"`
	Meta         DatasetMeta   `json:"meta"`
}

// Len returns the number of observations.
func (d *Dataset) Len() int {
	return len(d.Observations)
}

// Copy returns a deep copy of the dataset, including passthrough columns.
func (d *Dataset) Copy() *Dataset {
	out := &Dataset{
		Observations: make([]Observation, len(d.Observations)),
		Meta:         d.Meta,
	}
	out.Meta.Columns = append([]string(nil), d.Meta.Columns...)
	for i, obs := range d.Observations {
		cp := obs
		if obs.Extra != nil {
			cp.Extra = make(map[string]string, len(obs.Extra))
			for k, v := range obs.Extra {
				cp.Extra[k] = v
			}
		}
		out.Observations[i] = cp
	}
	return out
}

// IndicatorSeries projects one indicator column in row order. The second
// return value is false when name is not a recognized indicator.
func (d *Dataset) IndicatorSeries(name string) ([]float64, bool) {
	if !IsIndicator(name) {
		return nil, false
	}
	series := make([]float64, len(d.Observations))
	for i, obs := range d.Observations {
		series[i], _ = obs.Indicator(name)
	}
	return series, true
}

// Quarters returns the quarter labels in row order.
func (d *Dataset) Quarters() []string {
	quarters := make([]string, len(d.Observations))
	for i, obs := range d.Observations {
		quarters[i] = obs.Quarter
	}
	return quarters
}

// Dates returns the derived dates in row order.
func (d *Dataset) Dates() []time.Time {
	dates := make([]time.Time, len(d.Observations))
	for i, obs := range d.Observations {
		dates[i] = obs.Date
	}
	return dates
}

// DateRange returns the first and last dates of the sorted dataset.
// The third return value is false when the dataset is empty.
func (d *Dataset) DateRange() (time.Time, time.Time, bool) {
	if len(d.Observations) == 0 {
		return time.Time{}, time.Time{}, false
	}
	return d.Observations[0].Date, d.Observations[len(d.Observations)-1].Date, true
}
