// Package durata converts hour/minute pairs entered on forms into the
// millisecond totals stored and summed everywhere else in the system.
package durata

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrOreNegative = errors.New("ore must not be negative")
	ErrMinutiRange = errors.New("minuti must be between 0 and 59")
)

const millisPerMinute = 60_000

// Millis is a duration total in milliseconds. It serializes as a decimal
// string: totals summed over many records can exceed the safe-integer range
// of JavaScript clients, so the wire format is a string, never a number.
type Millis int64

// MarshalJSON encodes the value as a decimal string.
func (m Millis) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatInt(int64(m), 10))
}

// UnmarshalJSON accepts both the string form and a bare number.
func (m *Millis) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		var n int64
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("durata: invalid millis value %s", data)
		}
		*m = Millis(n)
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("durata: invalid millis string %q: %w", s, err)
	}
	*m = Millis(n)
	return nil
}

// String returns the decimal representation used on the wire.
func (m Millis) String() string {
	return strconv.FormatInt(int64(m), 10)
}

// FromOreMinuti converts an (ore, minuti) pair to a millisecond total.
// minuti must be within [0,59]; ore must be >= 0.
func FromOreMinuti(ore, minuti int) (Millis, error) {
	if ore < 0 {
		return 0, ErrOreNegative
	}
	if minuti < 0 || minuti > 59 {
		return 0, ErrMinutiRange
	}
	return Millis(int64(ore*60+minuti) * millisPerMinute), nil
}

// OreMinuti splits a millisecond total back into whole hours and remaining
// minutes for display. Sub-minute remainders are truncated.
func (m Millis) OreMinuti() (ore, minuti int) {
	totalMinutes := int64(m) / millisPerMinute
	return int(totalMinutes / 60), int(totalMinutes % 60)
}

// Sum folds a slice of totals. The 64-bit accumulator does not overflow for
// any realistic amount of recorded time.
func Sum(values []Millis) Millis {
	var total Millis
	for _, v := range values {
		total += v
	}
	return total
}
