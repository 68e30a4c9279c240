package analytics

import (
	"encoding/json"
	"fmt"
	"math"
)

const infinityJSON = `"Infinity"`

// Ratio is a non-negative metric that may legitimately be +Inf, e.g. a profit
// factor with no losing trades. It marshals +Inf as the JSON string "Infinity".
type Ratio float64

// safeRatio divides num by den. A zero denominator yields +Inf when num is
// positive and 0 otherwise.
func safeRatio(num, den float64) Ratio {
	if den == 0 {
		if num > 0 {
			return Ratio(math.Inf(1))
		}
		return 0
	}
	return Ratio(num / den)
}

// IsInf reports whether the ratio is unbounded
func (r Ratio) IsInf() bool {
	return math.IsInf(float64(r), 1)
}

// Float64 returns the raw value
func (r Ratio) Float64() float64 {
	return float64(r)
}

// String renders the ratio with two decimals, or "∞"
func (r Ratio) String() string {
	if r.IsInf() {
		return "∞"
	}
	return fmt.Sprintf("%.2f", float64(r))
}

// MarshalJSON implements json.Marshaler
func (r Ratio) MarshalJSON() ([]byte, error) {
	if r.IsInf() {
		return []byte(infinityJSON), nil
	}
	return json.Marshal(float64(r))
}

// UnmarshalJSON implements json.Unmarshaler
func (r *Ratio) UnmarshalJSON(data []byte) error {
	if string(data) == infinityJSON {
		*r = Ratio(math.Inf(1))
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = Ratio(v)
	return nil
}
