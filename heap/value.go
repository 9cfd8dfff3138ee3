package heap

import (
	"fmt"
	"strconv"
)

// ValueKind identifies the variant held by a Value.
type ValueKind uint8

// Value variants.
const (
	ValNull ValueKind = iota
	ValInt
	ValFloat
	ValBool
	ValChar
	ValStr
	ValRef
)

// Value is a tagged variant holding either a primitive, a raw string, or a
// reference into the object/pool arena. Variables and structure cells store
// Values; references carry no ownership (they are plain ids).
type Value struct {
	Kind  ValueKind
	Int   int64
	Float float64
	Bool  bool
	Char  rune
	Str   string
	Ref   ObjID
}

// Null returns the engine-level null value.
func Null() Value {
	return Value{Kind: ValNull}
}

// IntValue wraps an int64.
func IntValue(v int64) Value {
	return Value{Kind: ValInt, Int: v}
}

// FloatValue wraps a float64.
func FloatValue(v float64) Value {
	return Value{Kind: ValFloat, Float: v}
}

// BoolValue wraps a bool.
func BoolValue(v bool) Value {
	return Value{Kind: ValBool, Bool: v}
}

// CharValue wraps a rune.
func CharValue(v rune) Value {
	return Value{Kind: ValChar, Char: v}
}

// StrValue wraps a raw (non-pooled) string.
func StrValue(v string) Value {
	return Value{Kind: ValStr, Str: v}
}

// RefValue wraps a reference to a heap object or pool entry.
func RefValue(id ObjID) Value {
	return Value{Kind: ValRef, Ref: id}
}

// IsRef reports whether the value references an arena id.
func (v Value) IsRef() bool {
	return v.Kind == ValRef && v.Ref != NilRef
}

// Numeric returns the value as a float64 and whether it is numeric.
func (v Value) Numeric() (float64, bool) {
	switch v.Kind {
	case ValInt:
		return float64(v.Int), true
	case ValFloat:
		return v.Float, true
	default:
		return 0, false
	}
}

// Equal reports value equality. Ints and floats compare numerically.
func (v Value) Equal(o Value) bool {
	if a, ok := v.Numeric(); ok {
		b, ok2 := o.Numeric()
		return ok2 && a == b
	}
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case ValNull:
		return true
	case ValBool:
		return v.Bool == o.Bool
	case ValChar:
		return v.Char == o.Char
	case ValStr:
		return v.Str == o.Str
	case ValRef:
		return v.Ref == o.Ref
	}
	return false
}

// Less orders values for sorted (Tree*) display: numbers first, then
// everything else by rendered form.
func (v Value) Less(o Value) bool {
	a, aNum := v.Numeric()
	b, bNum := o.Numeric()
	switch {
	case aNum && bNum:
		return a < b
	case aNum:
		return true
	case bNum:
		return false
	default:
		return v.String() < o.String()
	}
}

// String renders the value for display.
func (v Value) String() string {
	switch v.Kind {
	case ValNull:
		return "null"
	case ValInt:
		return strconv.FormatInt(v.Int, 10)
	case ValFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case ValBool:
		return strconv.FormatBool(v.Bool)
	case ValChar:
		return "'" + string(v.Char) + "'"
	case ValStr:
		return "\"" + v.Str + "\""
	case ValRef:
		return fmt.Sprintf("@%d", v.Ref)
	}
	return "?"
}
