package classify

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Coerce interprets v as a finite float64.
func Coerce(v any) (float64, error) {
	var x float64
	switch t := v.(type) {
	case float64:
		x = t
	case float32:
		x = float64(t)
	case int:
		x = float64(t)
	case int8:
		x = float64(t)
	case int16:
		x = float64(t)
	case int32:
		x = float64(t)
	case int64:
		x = float64(t)
	case uint:
		x = float64(t)
	case uint8:
		x = float64(t)
	case uint16:
		x = float64(t)
	case uint32:
		x = float64(t)
	case uint64:
		x = float64(t)
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, fmt.Errorf("%q: %w", string(t), ErrCoercion)
		}
		x = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, fmt.Errorf("%q: %w", t, ErrCoercion)
		}
		x = f
	default:
		return 0, fmt.Errorf("%T: %w", v, ErrCoercion)
	}
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, fmt.Errorf("%v: %w", x, ErrCoercion)
	}

	return x, nil
}
