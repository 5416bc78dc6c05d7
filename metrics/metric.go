package metrics

import (
	"fmt"
	"math"
)

// Metric is one display/record row. Header rows carry no value; they are
// rendering markers that group the rows below them.
type Metric struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Value  float64 `json:"value"`
	Unit   string  `json:"unit,omitempty"`
	Header bool    `json:"header,omitempty"`
}

// Format renders the metric value with its unit. Non-finite values print as
// sentinels rather than numbers; callers that need to branch on them should
// inspect Value directly.
func (m Metric) Format() string {
	if m.Header {
		return ""
	}

	switch {
	case math.IsInf(m.Value, +1):
		return "+Inf"
	case math.IsInf(m.Value, -1):
		return "-Inf"
	case math.IsNaN(m.Value):
		return "n/a"
	}

	switch m.Unit {
	case "$":
		return fmt.Sprintf("$%.2f", m.Value)
	case "%":
		return fmt.Sprintf("%.2f%%", m.Value)
	case "count":
		return fmt.Sprintf("%.0f", m.Value)
	default:
		return fmt.Sprintf("%.2f", m.Value)
	}
}
