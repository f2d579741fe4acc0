package ndarray

import "errors"

var errNotNumeric = errors.New("not numeric")

// toFloat32 accepts Go numeric kinds and bool, the same inputs a numeric
// array would accept from an untyped host value.
func toFloat32(v any) (float32, error) {
	switch x := v.(type) {
	case float32:
		return x, nil
	case float64:
		return float32(x), nil
	case int:
		return float32(x), nil
	case int8:
		return float32(x), nil
	case int16:
		return float32(x), nil
	case int32:
		return float32(x), nil
	case int64:
		return float32(x), nil
	case uint:
		return float32(x), nil
	case uint8:
		return float32(x), nil
	case uint16:
		return float32(x), nil
	case uint32:
		return float32(x), nil
	case uint64:
		return float32(x), nil
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, errNotNumeric
	}
}
