package forms

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Number is a JSON value sent either as a number or as a numeric string,
// e.g. 4 and "4". The text is kept as sent and parsed on demand, so a
// malformed value reaches validation instead of failing the decode.
type Number string

// UnmarshalJSON accepts numbers, strings and null.
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*n = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = Number(s)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidNumber, data)
	}
	*n = Number(num)
	return nil
}

func (n Number) String() string {
	return strings.TrimSpace(string(n))
}

// IsZero reports whether no value was sent.
func (n Number) IsZero() bool {
	return n.String() == ""
}

// Float parses the value as a finite float.
func (n Number) Float() (float64, error) {
	f, err := strconv.ParseFloat(n.String(), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, string(n))
	}
	return f, nil
}

// Int parses the value as a whole number. "4.0" is accepted.
func (n Number) Int() (int, error) {
	f, err := n.Float()
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %q is not a whole number", ErrInvalidNumber, string(n))
	}
	return int(f), nil
}

// FloatOr returns the parsed value, or def when the value is blank or invalid.
func (n Number) FloatOr(def float64) float64 {
	if f, err := n.Float(); err == nil {
		return f
	}
	return def
}

// IntOr returns the parsed value, or def when the value is blank or invalid.
func (n Number) IntOr(def int) int {
	if i, err := n.Int(); err == nil {
		return i
	}
	return def
}
