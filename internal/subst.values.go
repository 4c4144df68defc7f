package internal

import (
	"fmt"
	"strconv"
)

// AsSequence reports whether v is an ordered sequence of scalars and, if
// so, returns its elements as []any. Typed scalar slices are widened so
// callers only deal with one shape.
func AsSequence(v any) ([]any, bool) {
	switch seq := v.(type) {
	case []any:
		return seq, true
	case []string:
		out := make([]any, len(seq))
		for i, e := range seq {
			out[i] = e
		}
		return out, true
	case []int:
		out := make([]any, len(seq))
		for i, e := range seq {
			out[i] = e
		}
		return out, true
	case []int64:
		out := make([]any, len(seq))
		for i, e := range seq {
			out[i] = e
		}
		return out, true
	case []float64:
		out := make([]any, len(seq))
		for i, e := range seq {
			out[i] = e
		}
		return out, true
	case []bool:
		out := make([]any, len(seq))
		for i, e := range seq {
			out[i] = e
		}
		return out, true
	default:
		return nil, false
	}
}

// Stringify renders a scalar substitution value as template output.
// Numbers use a canonical locale-independent decimal form, booleans
// render lowercase. A sequence is not a valid terminal value; ok is
// false for sequences and other non-scalar types.
func Stringify(v any) (s string, ok bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case bool:
		return strconv.FormatBool(val), true
	case int:
		return strconv.Itoa(val), true
	case int8:
		return strconv.FormatInt(int64(val), 10), true
	case int16:
		return strconv.FormatInt(int64(val), 10), true
	case int32:
		return strconv.FormatInt(int64(val), 10), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case uint:
		return strconv.FormatUint(uint64(val), 10), true
	case uint8:
		return strconv.FormatUint(uint64(val), 10), true
	case uint16:
		return strconv.FormatUint(uint64(val), 10), true
	case uint32:
		return strconv.FormatUint(uint64(val), 10), true
	case uint64:
		return strconv.FormatUint(val, 10), true
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case fmt.Stringer:
		return val.String(), true
	default:
		return "", false
	}
}

// ToString converts a scalar to string for resolver implementations,
// falling back to fmt for exotic types.
func ToString(v any) string {
	if v == nil {
		return StringValueEmpty
	}
	if s, ok := Stringify(v); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// ToFloat converts numeric scalars (and numeric strings) to float64.
func ToFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
