package runtime

import (
	"math"
	"strconv"
	"strings"
)

// ToNumber converts a value to a number: undefined is NaN, booleans
// are 0 or 1, numeric strings parse, everything else is NaN.
func (v *Value) ToNumber() float64 {
	switch v.Type {
	case TypeUndefined:
		return math.NaN()
	case TypeBoolean:
		if v.Bool {
			return 1
		}
		return 0
	case TypeNumber:
		return v.Number
	case TypeString:
		s := strings.TrimSpace(v.Str)
		if s == "" {
			return 0
		}
		if s == "Infinity" || s == "+Infinity" {
			return math.Inf(1)
		}
		if s == "-Infinity" {
			return math.Inf(-1)
		}
		if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
			u, err := strconv.ParseUint(s[2:], 16, 64)
			if err != nil {
				return math.NaN()
			}
			return float64(u)
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return math.NaN()
		}
		return n
	default:
		return math.NaN()
	}
}

// ToBoolean converts a value to its truthiness: undefined, false, 0,
// NaN and the empty string are false; every aggregate and function
// is true.
func (v *Value) ToBoolean() bool {
	switch v.Type {
	case TypeUndefined:
		return false
	case TypeBoolean:
		return v.Bool
	case TypeNumber:
		return v.Number != 0 && !math.IsNaN(v.Number)
	case TypeString:
		return len(v.Str) > 0
	default:
		return true
	}
}

// ToInt32 converts a value to a 32-bit integer for the bitwise
// operators. Non-finite numbers map to zero.
func (v *Value) ToInt32() int32 {
	f := v.ToNumber()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int32(int64(math.Trunc(f)))
}
