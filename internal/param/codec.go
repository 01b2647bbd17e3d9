// Package param maps typed board settings onto URL query or fragment
// parameters.
//
// Every parameter has a declared default. A default value is never written
// to the URL, an absent key always reads back as its default, and malformed
// values degrade to a default or zero value instead of failing.
package param

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Codec converts a parameter between its URL form and its typed form.
// Decode only sees values that are present in the URL; def is the declared
// default of the parameter being decoded.
type Codec[T comparable] struct {
	Encode func(v T) string
	Decode func(raw string, def T) T
}

// Param is the definition of one named URL parameter.
type Param[T comparable] struct {
	key   string
	def   T
	codec Codec[T]
}

// New declares a parameter with a custom codec.
func New[T comparable](key string, def T, codec Codec[T]) Param[T] {
	return Param[T]{key: key, def: def, codec: codec}
}

// Key returns the URL key of the parameter.
func (p Param[T]) Key() string { return p.key }

// Default returns the declared default.
func (p Param[T]) Default() T { return p.def }

// DefaultValue returns the declared default as an untyped value.
func (p Param[T]) DefaultValue() any { return p.def }

// Decode converts a raw URL value. ok reports whether the key was present.
func (p Param[T]) Decode(raw string, ok bool) T {
	if !ok {
		return p.def
	}
	return p.codec.Decode(raw, p.def)
}

// Encode converts v to its URL form. present is false when v is the default
// (or encodes to the same text as the default), meaning the key must be
// removed from the URL.
func (p Param[T]) Encode(v T) (raw string, present bool) {
	if v == p.def {
		return "", false
	}
	raw = p.codec.Encode(v)
	if raw == p.codec.Encode(p.def) {
		return "", false
	}
	return raw, true
}

func (p Param[T]) decodeAny(raw string, ok bool) any {
	return p.Decode(raw, ok)
}

func (p Param[T]) encodeAny(v any) (string, bool, error) {
	t, ok := p.coerce(v)
	if !ok {
		return "", false, fmt.Errorf("param %q: cannot use %T value", p.key, v)
	}
	raw, present := p.Encode(t)
	return raw, present, nil
}

// coerce accepts either a value of the parameter's own type, its raw string
// form, or the loosely typed numbers and objects that JSON and YAML decoders
// produce.
func (p Param[T]) coerce(v any) (T, bool) {
	if t, ok := v.(T); ok {
		return t, true
	}
	var zero T
	switch x := v.(type) {
	case string:
		return p.codec.Decode(x, p.def), true
	case float64:
		if x != math.Trunc(x) {
			return zero, false
		}
		return castInt[T](int(x))
	case int64:
		return castInt[T](int(x))
	case uint64:
		return castInt[T](int(x))
	case map[string]any:
		if _, ok := any(p.def).(TimeOfDay); ok {
			t := TimeOfDay{Hour: looseInt(x["hour"]), Minute: looseInt(x["minute"])}
			return any(t).(T), true
		}
	}
	return zero, false
}

func castInt[T comparable](n int) (T, bool) {
	t, ok := any(n).(T)
	return t, ok
}

func looseInt(v any) int {
	switch x := v.(type) {
	case int:
		return x
	case float64:
		return int(x)
	case string:
		return atoiOrZero(x)
	}
	return 0
}

// String declares a string parameter. Its codec is the identity.
func String(key, def string) Param[string] {
	return New(key, def, Codec[string]{
		Encode: func(v string) string { return v },
		Decode: func(raw string, _ string) string { return raw },
	})
}

// Enum declares a string parameter restricted to allowed. Unknown values
// decode to the default.
func Enum(key, def string, allowed ...string) Param[string] {
	return New(key, def, Codec[string]{
		Encode: func(v string) string { return v },
		Decode: func(raw string, def string) string {
			if slices.Contains(allowed, raw) {
				return raw
			}
			return def
		},
	})
}

// Int declares a numeric parameter. Unparseable input decodes to 0; range
// checks are left to callers.
func Int(key string, def int) Param[int] {
	return New(key, def, Codec[int]{
		Encode: strconv.Itoa,
		Decode: func(raw string, _ int) int { return atoiOrZero(raw) },
	})
}

// Bool declares a boolean parameter. Only the literal "true" decodes to
// true; an empty value decodes to the default.
func Bool(key string, def bool) Param[bool] {
	return New(key, def, Codec[bool]{
		Encode: strconv.FormatBool,
		Decode: func(raw string, def bool) bool {
			if raw == "" {
				return def
			}
			return raw == "true"
		},
	})
}

// Time declares a time-of-day parameter written as H:MM.
func Time(key string, def TimeOfDay) Param[TimeOfDay] {
	return New(key, def, Codec[TimeOfDay]{
		Encode: TimeOfDay.String,
		Decode: func(raw string, def TimeOfDay) TimeOfDay {
			if strings.TrimSpace(raw) == "" {
				return def
			}
			return ParseTimeOfDay(raw)
		},
	})
}
