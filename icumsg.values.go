package icumsg

import (
	"fmt"
	"strconv"
	"time"
)

// ValueKind discriminates the variants a runtime argument value can take.
type ValueKind int

// Value kind constants
const (
	ValueKindString ValueKind = iota
	ValueKindNumber
	ValueKindTime
	ValueKindRich
	ValueKindTransform
)

// Value kind string values for error metadata
const (
	ValueKindNameString    = "string"
	ValueKindNameNumber    = "number"
	ValueKindNameTime      = "time"
	ValueKindNameRich      = "rich"
	ValueKindNameTransform = "transform"
)

// String returns the string representation of the value kind.
func (k ValueKind) String() string {
	switch k {
	case ValueKindString:
		return ValueKindNameString
	case ValueKindNumber:
		return ValueKindNameNumber
	case ValueKindTime:
		return ValueKindNameTime
	case ValueKindRich:
		return ValueKindNameRich
	case ValueKindTransform:
		return ValueKindNameTransform
	default:
		return ValueKindNameString
	}
}

// TagTransform renders the formatted children of a rich-text tag into an
// arbitrary caller value. All-literal children arrive pre-coalesced as a
// single literal part.
type TagTransform func(children []Part) any

// Value is a tagged runtime argument value. The interpreter dispatches on the
// tag, never on dynamic type inspection. The zero Value is an empty string.
type Value struct {
	kind      ValueKind
	str       string
	num       float64
	intVal    int64
	isInt     bool
	t         time.Time
	rich      any
	transform TagTransform
}

// String creates a string scalar value.
func String(s string) Value {
	return Value{kind: ValueKindString, str: s}
}

// Int creates a numeric scalar value from an int.
func Int(n int) Value {
	return Int64(int64(n))
}

// Int64 creates a numeric scalar value from an int64.
func Int64(n int64) Value {
	return Value{kind: ValueKindNumber, num: float64(n), intVal: n, isInt: true}
}

// Float creates a numeric scalar value from a float64.
func Float(f float64) Value {
	return Value{kind: ValueKindNumber, num: f}
}

// Time creates a temporal scalar value.
func Time(t time.Time) Value {
	return Value{kind: ValueKindTime, t: t}
}

// Rich creates a rich-content value that flows through as an ObjectPart.
func Rich(v any) Value {
	return Value{kind: ValueKindRich, rich: v}
}

// Transform creates a rich-text tag transform value.
func Transform(fn TagTransform) Value {
	return Value{kind: ValueKindTransform, transform: fn}
}

// Kind returns the value kind.
func (v Value) Kind() ValueKind {
	return v.kind
}

// String returns a debug representation.
func (v Value) String() string {
	switch v.kind {
	case ValueKindString:
		return fmt.Sprintf("Value(%s: %q)", v.kind, v.str)
	case ValueKindNumber:
		s, _ := v.scalarString()
		return fmt.Sprintf("Value(%s: %s)", v.kind, s)
	case ValueKindTime:
		return fmt.Sprintf("Value(%s: %s)", v.kind, v.t.Format(time.RFC3339))
	default:
		return fmt.Sprintf("Value(%s)", v.kind)
	}
}

// scalarString renders string and numeric scalars with plain, locale-free
// stringification.
func (v Value) scalarString() (string, bool) {
	switch v.kind {
	case ValueKindString:
		return v.str, true
	case ValueKindNumber:
		if v.isInt {
			return strconv.FormatInt(v.intVal, 10), true
		}
		return strconv.FormatFloat(v.num, 'f', -1, 64), true
	default:
		return "", false
	}
}

// floatValue returns the numeric scalar as float64.
func (v Value) floatValue() (float64, bool) {
	if v.kind != ValueKindNumber {
		return 0, false
	}
	return v.num, true
}

// timeValue returns the temporal scalar. Numeric scalars are interpreted as
// Unix milliseconds.
func (v Value) timeValue() (time.Time, bool) {
	switch v.kind {
	case ValueKindTime:
		return v.t, true
	case ValueKindNumber:
		if v.isInt {
			return time.UnixMilli(v.intVal), true
		}
		return time.UnixMilli(int64(v.num)), true
	default:
		return time.Time{}, false
	}
}

// richValue returns the rich content of a rich value, the transform of a
// transform value, or the underlying scalar for everything else.
func (v Value) richValue() any {
	switch v.kind {
	case ValueKindRich:
		return v.rich
	case ValueKindTransform:
		return v.transform
	case ValueKindTime:
		return v.t
	default:
		s, _ := v.scalarString()
		return s
	}
}

// transformFn returns the tag transform of a transform value.
func (v Value) transformFn() (TagTransform, bool) {
	if v.kind != ValueKindTransform || v.transform == nil {
		return nil, false
	}
	return v.transform, true
}

// Values maps argument names to runtime values.
type Values map[string]Value

// CoerceValues builds Values from loosely typed data, such as decoded JSON or
// CLI input. Strings and numerics become scalars, bools become their string
// form, time.Time becomes temporal, TagTransform-shaped functions become
// transforms, and everything else is carried as rich content. The interpreter
// itself never performs this inspection; coercion happens only at this
// boundary.
func CoerceValues(data map[string]any) Values {
	values := make(Values, len(data))
	for name, raw := range data {
		values[name] = coerceValue(raw)
	}
	return values
}

func coerceValue(raw any) Value {
	switch v := raw.(type) {
	case Value:
		return v
	case string:
		return String(v)
	case int:
		return Int(v)
	case int8:
		return Int64(int64(v))
	case int16:
		return Int64(int64(v))
	case int32:
		return Int64(int64(v))
	case int64:
		return Int64(v)
	case uint:
		return Int64(int64(v))
	case uint8:
		return Int64(int64(v))
	case uint16:
		return Int64(int64(v))
	case uint32:
		return Int64(int64(v))
	case uint64:
		return Int64(int64(v))
	case float32:
		return Float(float64(v))
	case float64:
		return Float(v)
	case bool:
		return String(strconv.FormatBool(v))
	case time.Time:
		return Time(v)
	case TagTransform:
		return Transform(v)
	case func(children []Part) any:
		return Transform(v)
	default:
		return Rich(v)
	}
}
