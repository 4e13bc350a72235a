package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnsupportedValue is returned when a field value does not fit any of the
// five supported shapes (string, boolean, integer, string array, integer array).
var ErrUnsupportedValue = errors.New("unsupported field value type")

// Kind enumerates the supported shapes of an additional-field value.
type Kind int

const (
	KindString Kind = iota
	KindBoolean
	KindInteger
	KindStringArray
	KindIntegerArray
)

// Suffix conventions used when naming search-index fields.
const (
	SuffixString       = "_ssi"
	SuffixBoolean      = "_bsi"
	SuffixInteger      = "_isi"
	SuffixStringArray  = "_ssim"
	SuffixIntegerArray = "_isim"
)

// Value is a tagged variant holding one additional-field value.
// Exactly one payload is meaningful, selected by Kind. Construct values
// through String, Boolean, Integer, Strings or Integers; arbitrary data
// is funneled through ValueOf, the single place ErrUnsupportedValue arises.
type Value struct {
	Kind Kind

	Str  string
	Bool bool
	Int  int64
	Strs []string
	Ints []int64
}

// String returns a string-kind value.
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// Boolean returns a boolean-kind value.
func Boolean(b bool) Value { return Value{Kind: KindBoolean, Bool: b} }

// Integer returns an integer-kind value.
func Integer(i int64) Value { return Value{Kind: KindInteger, Int: i} }

// Strings returns a string-array value.
func Strings(ss ...string) Value { return Value{Kind: KindStringArray, Strs: ss} }

// Integers returns an integer-array value.
func Integers(is ...int64) Value { return Value{Kind: KindIntegerArray, Ints: is} }

// Suffix returns the canonical index field-name suffix for the value's shape:
// string "_ssi", boolean "_bsi", integer "_isi", integer array "_isim",
// string array "_ssim".
func (v Value) Suffix() string {
	switch v.Kind {
	case KindBoolean:
		return SuffixBoolean
	case KindInteger:
		return SuffixInteger
	case KindStringArray:
		return SuffixStringArray
	case KindIntegerArray:
		return SuffixIntegerArray
	default:
		return SuffixString
	}
}

// KindForSuffix maps an index field-name suffix back to the value shape it
// encodes. The suffix includes the leading underscore.
func KindForSuffix(suffix string) (Kind, bool) {
	switch suffix {
	case SuffixString:
		return KindString, true
	case SuffixBoolean:
		return KindBoolean, true
	case SuffixInteger:
		return KindInteger, true
	case SuffixStringArray:
		return KindStringArray, true
	case SuffixIntegerArray:
		return KindIntegerArray, true
	}
	return 0, false
}

// Native returns the value as the plain Go type it wraps, suitable for
// serialization or for handing to the search index.
func (v Value) Native() interface{} {
	switch v.Kind {
	case KindBoolean:
		return v.Bool
	case KindInteger:
		return v.Int
	case KindStringArray:
		return v.Strs
	case KindIntegerArray:
		return v.Ints
	default:
		return v.Str
	}
}

// Equal reports whether two values have the same kind and payload.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindBoolean:
		return v.Bool == o.Bool
	case KindInteger:
		return v.Int == o.Int
	case KindStringArray:
		if len(v.Strs) != len(o.Strs) {
			return false
		}
		for i := range v.Strs {
			if v.Strs[i] != o.Strs[i] {
				return false
			}
		}
		return true
	case KindIntegerArray:
		if len(v.Ints) != len(o.Ints) {
			return false
		}
		for i := range v.Ints {
			if v.Ints[i] != o.Ints[i] {
				return false
			}
		}
		return true
	default:
		return v.Str == o.Str
	}
}

// ValueOf converts an untyped value into a tagged Value.
//
// Arrays are classified by their first element: a leading integer makes the
// whole array an integer array, anything else (including an empty array)
// makes it a string array, with non-string elements rendered via fmt.
// Heterogeneous arrays are not validated beyond the first element.
// Boolean arrays are explicitly unsupported, as are floats with a
// fractional part, maps and nil.
func ValueOf(raw interface{}) (Value, error) {
	switch x := raw.(type) {
	case Value:
		return x, nil
	case string:
		return String(x), nil
	case bool:
		return Boolean(x), nil
	case int:
		return Integer(int64(x)), nil
	case int32:
		return Integer(int64(x)), nil
	case int64:
		return Integer(x), nil
	case uint:
		return Integer(int64(x)), nil
	case float64:
		if x != float64(int64(x)) {
			return Value{}, fmt.Errorf("%w: non-integral number %v", ErrUnsupportedValue, x)
		}
		return Integer(int64(x)), nil
	case json.Number:
		i, err := x.Int64()
		if err != nil {
			return Value{}, fmt.Errorf("%w: non-integral number %q", ErrUnsupportedValue, x.String())
		}
		return Integer(i), nil
	case []string:
		return Strings(x...), nil
	case []int:
		ints := make([]int64, len(x))
		for i, n := range x {
			ints[i] = int64(n)
		}
		return Integers(ints...), nil
	case []int64:
		return Integers(x...), nil
	case []interface{}:
		return arrayValueOf(x)
	}
	return Value{}, fmt.Errorf("%w: %T", ErrUnsupportedValue, raw)
}

// arrayValueOf applies the first-element rule to an untyped array.
func arrayValueOf(raw []interface{}) (Value, error) {
	if len(raw) > 0 {
		if _, err := integerOf(raw[0]); err == nil {
			ints := make([]int64, len(raw))
			for i, el := range raw {
				n, err := integerOf(el)
				if err != nil {
					return Value{}, err
				}
				ints[i] = n
			}
			return Integers(ints...), nil
		}
		if _, ok := raw[0].(bool); ok {
			// No safe suffix convention exists for boolean arrays.
			return Value{}, fmt.Errorf("%w: array of booleans", ErrUnsupportedValue)
		}
	}

	strs := make([]string, len(raw))
	for i, el := range raw {
		if s, ok := el.(string); ok {
			strs[i] = s
			continue
		}
		strs[i] = fmt.Sprint(el)
	}
	return Strings(strs...), nil
}

func integerOf(raw interface{}) (int64, error) {
	switch x := raw.(type) {
	case int:
		return int64(x), nil
	case int64:
		return x, nil
	case float64:
		if x != float64(int64(x)) {
			return 0, fmt.Errorf("%w: non-integral number %v", ErrUnsupportedValue, x)
		}
		return int64(x), nil
	case json.Number:
		i, err := x.Int64()
		if err != nil {
			return 0, fmt.Errorf("%w: non-integral number %q", ErrUnsupportedValue, x.String())
		}
		return i, nil
	}
	return 0, fmt.Errorf("%w: %T", ErrUnsupportedValue, raw)
}

// MarshalJSON writes the value as the natural JSON scalar or array.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Native())
}

// UnmarshalJSON reads any supported JSON shape back into a tagged value.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	val, err := ValueOf(raw)
	if err != nil {
		return err
	}
	*v = val
	return nil
}
