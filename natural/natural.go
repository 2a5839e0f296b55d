package natural

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"
)

// ErrInvalidInput indicates the value does not denote a natural number.
var ErrInvalidInput = errors.New("natural: invalid input")

// Normalize returns v as a non-negative *big.Int.
//
// Errors:
//   - ErrInvalidInput (wrapped with the offending kind) for negatives,
//     non-integral or non-finite floats, malformed strings, nil and
//     unsupported kinds.
//
// Complexity: O(len(v)) for strings, O(1) otherwise (plus the copy).
func Normalize(v any) (*big.Int, error) {
	switch x := v.(type) {
	case *big.Int:
		if x == nil {
			return nil, fmt.Errorf("%w: nil *big.Int", ErrInvalidInput)
		}
		return fromBig(x)
	case big.Int:
		return fromBig(&x)
	case int:
		return fromInt64(int64(x))
	case int8:
		return fromInt64(int64(x))
	case int16:
		return fromInt64(int64(x))
	case int32:
		return fromInt64(int64(x))
	case int64:
		return fromInt64(x)
	case uint:
		return new(big.Int).SetUint64(uint64(x)), nil
	case uint8:
		return new(big.Int).SetUint64(uint64(x)), nil
	case uint16:
		return new(big.Int).SetUint64(uint64(x)), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(x)), nil
	case uint64:
		return new(big.Int).SetUint64(x), nil
	case float32:
		return fromFloat(float64(x))
	case float64:
		return fromFloat(x)
	case string:
		return fromDigits(x)
	case nil:
		return nil, fmt.Errorf("%w: nil value", ErrInvalidInput)
	default:
		return nil, fmt.Errorf("%w: unsupported kind %T", ErrInvalidInput, v)
	}
}

// Parse trims surrounding whitespace from s and normalizes the rest.
// It is the entry point for text typed by a user.
func Parse(s string) (*big.Int, error) {
	return fromDigits(strings.TrimSpace(s))
}

// FromUint64 is a shorthand for the common fixed-width case that cannot fail.
func FromUint64(u uint64) *big.Int {
	return new(big.Int).SetUint64(u)
}

func fromBig(x *big.Int) (*big.Int, error) {
	if x.Sign() < 0 {
		return nil, fmt.Errorf("%w: negative big integer %s", ErrInvalidInput, x.String())
	}
	return new(big.Int).Set(x), nil
}

func fromInt64(x int64) (*big.Int, error) {
	if x < 0 {
		return nil, fmt.Errorf("%w: negative integer %d", ErrInvalidInput, x)
	}
	return big.NewInt(x), nil
}

func fromFloat(f float64) (*big.Int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%w: non-finite float %v", ErrInvalidInput, f)
	}
	if f < 0 || f != math.Trunc(f) {
		return nil, fmt.Errorf("%w: float %v is not a natural integer", ErrInvalidInput, f)
	}
	// Integral floats convert exactly through big.Float.
	n, _ := new(big.Float).SetFloat64(f).Int(nil)
	return n, nil
}

func fromDigits(s string) (*big.Int, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: empty string", ErrInvalidInput)
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return nil, fmt.Errorf("%w: %q contains non-digit at offset %d", ErrInvalidInput, s, i)
		}
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidInput, s)
	}
	return n, nil
}
