package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Money is a monetary amount in Taka. Any value that fails to parse as a
// number (malformed JSON, junk text in a legacy column, null) coerces to 0
// so a single bad record never poisons a whole aggregation with NaN.
type Money float64

// ParseAmount coerces an arbitrary value to Money, defaulting to 0.
func ParseAmount(v interface{}) Money {
	switch n := v.(type) {
	case nil:
		return 0
	case Money:
		return n
	case float64:
		return Money(n)
	case float32:
		return Money(n)
	case int:
		return Money(n)
	case int64:
		return Money(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0
		}
		return Money(f)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return Money(f)
	case []byte:
		return ParseAmount(string(n))
	default:
		return 0
	}
}

// UnmarshalJSON accepts numbers, numeric strings, and null.
func (m *Money) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		*m = 0
		return nil
	}
	*m = ParseAmount(raw)
	return nil
}

// Scan implements sql.Scanner with the same coercion rules as JSON decoding.
// The legacy schema stored some amounts as DECIMAL strings.
func (m *Money) Scan(src interface{}) error {
	*m = ParseAmount(src)
	return nil
}

// Value implements driver.Valuer.
func (m Money) Value() (driver.Value, error) {
	return float64(m), nil
}

// Float64 returns the amount as a plain float64.
func (m Money) Float64() float64 {
	return float64(m)
}

func (m Money) String() string {
	return fmt.Sprintf("%.2f", float64(m))
}
