package vdom

import (
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// LooseEqual compares two attribute values with coercion:
//
//   - nil equals only nil;
//   - numbers of any kind compare numerically;
//   - a string compares to a number by parsing it as a decimal literal,
//     a 0x, 0o or 0b integer or Infinity, with an empty or blank string
//     counting as 0;
//   - a bool compares to a number or string as 1 or 0;
//   - strings compare exactly with strings;
//   - arrays, maps and listeners are equal only when they are the same
//     value.
func LooseEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case string:
		if y, ok := b.(string); ok {
			return x == y
		}
	case bool:
		if y, ok := b.(bool); ok {
			return x == y
		}
	}

	fa, aNum := toNumber(a)
	fb, bNum := toNumber(b)
	if aNum && bNum {
		return fa == fb
	}
	if aNum || bNum {
		return false
	}
	return sameRef(a, b)
}

// toNumber converts scalars to float64 for coercive comparison.
func toNumber(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, true
		}
		return parseNumber(s)
	}
	return 0, false
}

// parseNumber reads a trimmed numeric string: a decimal literal, an
// unsigned 0x, 0o or 0b integer, or a signed Infinity.
func parseNumber(s string) (float64, bool) {
	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1), true
	case "-Infinity":
		return math.Inf(-1), true
	}
	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			if strings.ContainsRune(s, '_') {
				return 0, false
			}
			u, err := strconv.ParseUint(s[2:], base, 64)
			if err != nil {
				return 0, false
			}
			return float64(u), true
		}
	}
	for _, r := range s {
		if (r < '0' || r > '9') && !strings.ContainsRune(".eE+-", r) {
			return 0, false
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return f, true
}

func sameRef(a, b any) bool {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Kind() != vb.Kind() {
		return false
	}
	switch va.Kind() {
	case reflect.Map, reflect.Func, reflect.Pointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	}
	return false
}
