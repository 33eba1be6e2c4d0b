package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Numeric is a backend number that may arrive as a JSON number or a numeric string.
// Valid is false when the field was null, absent, or not parseable.
type Numeric struct {
	Value float64
	Valid bool
}

// NewNumeric returns a valid Numeric holding v.
func NewNumeric(v float64) Numeric {
	return Numeric{Value: v, Valid: true}
}

func (n *Numeric) UnmarshalJSON(b []byte) error {
	*n = Numeric{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			*n = NewNumeric(v)
		}
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		// Booleans, objects and arrays degrade to an invalid value.
		return nil
	}
	*n = NewNumeric(v)
	return nil
}

func (n Numeric) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// Int returns the value truncated to int, or 0 when invalid.
func (n Numeric) Int() int {
	if !n.Valid {
		return 0
	}
	return int(n.Value)
}

// Float returns the value, or 0 when invalid.
func (n Numeric) Float() float64 {
	if !n.Valid {
		return 0
	}
	return n.Value
}
