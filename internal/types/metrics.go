package types

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// metricKind discriminates the value held by a MetricValue.
type metricKind int

const (
	metricFloat metricKind = iota
	metricInt
	metricText
)

// MetricValue is a single leaderboard metric: a float, an integer, or text.
// It serializes untagged, i.e. as the bare JSON value.
type MetricValue struct {
	kind    metricKind
	float   float64
	integer int64
	text    string
}

// Float wraps a float metric.
func Float(f float64) MetricValue { return MetricValue{kind: metricFloat, float: f} }

// Int wraps an integer metric.
func Int(i int64) MetricValue { return MetricValue{kind: metricInt, integer: i} }

// Text wraps a text metric.
func Text(s string) MetricValue { return MetricValue{kind: metricText, text: s} }

// AsFloat returns the numeric value, converting ints. Text metrics and the
// zero value report false.
func (m MetricValue) AsFloat() (float64, bool) {
	switch m.kind {
	case metricFloat:
		return m.float, true
	case metricInt:
		return float64(m.integer), true
	default:
		return 0, false
	}
}

// String renders the metric for table output.
func (m MetricValue) String() string {
	switch m.kind {
	case metricFloat:
		return strconv.FormatFloat(m.float, 'f', -1, 64)
	case metricInt:
		return strconv.FormatInt(m.integer, 10)
	default:
		return m.text
	}
}

// MarshalJSON emits the bare underlying value.
func (m MetricValue) MarshalJSON() ([]byte, error) {
	switch m.kind {
	case metricFloat:
		return json.Marshal(m.float)
	case metricInt:
		return json.Marshal(m.integer)
	case metricText:
		return json.Marshal(m.text)
	default:
		return nil, fmt.Errorf("unknown metric kind %d", m.kind)
	}
}

// UnmarshalJSON accepts a bare number or string. Numbers without a fractional
// part decode as ints so that ranks and counts round-trip.
func (m *MetricValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*m = Text(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("metric must be a number or string: %w", err)
	}
	if i, err := n.Int64(); err == nil {
		*m = Int(i)
		return nil
	}
	f, err := n.Float64()
	if err != nil {
		return fmt.Errorf("invalid numeric metric %q: %w", n.String(), err)
	}
	*m = Float(f)
	return nil
}
