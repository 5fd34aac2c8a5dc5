package contracts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// Metric is a numeric fund metric that may be absent.
// Absence is distinct from zero: "0%" vacancy is a real value, while "-"
// in the source table means no data was published for that fund.
type Metric struct {
	Value float64
	Valid bool
}

// F wraps a known float value into a Metric
func F(v float64) Metric {
	return Metric{Value: v, Valid: true}
}

// Missing returns the missing sentinel
func Missing() Metric {
	return Metric{}
}

// Or returns the metric value, or fallback when missing
func (m Metric) Or(fallback float64) float64 {
	if m.Valid {
		return m.Value
	}
	return fallback
}

// IsFinite reports whether the metric holds a usable finite value
func (m Metric) IsFinite() bool {
	return m.Valid && !math.IsNaN(m.Value) && !math.IsInf(m.Value, 0)
}

// MarshalJSON renders missing metrics as null
func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(m.Value)
}

// UnmarshalJSON accepts either a number or null
func (m *Metric) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*m = Metric{}
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("metric must be a number or null: %w", err)
	}

	*m = Metric{Value: v, Valid: true}
	return nil
}

func (m Metric) String() string {
	if !m.Valid {
		return "-"
	}
	return fmt.Sprintf("%g", m.Value)
}
