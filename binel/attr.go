package binel

import (
	"math"
	"strconv"
)

// Kind identifies which value an Attr holds.
type Kind uint8

const (
	KindBool Kind = iota + 1
	KindInt
	KindFloat
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "Bool"
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindText:
		return "Text"
	default:
		return "Invalid"
	}
}

// Attr is an attribute value. Exactly one of bool, int32, float32 or string is
// held, and the kind is fixed at construction.
//
// The zero Attr is invalid; build values with Bool, Int, Float or Text.
type Attr struct {
	kind Kind
	num  uint32 // int32 or float32 bits
	text string
}

// Bool returns a boolean attribute.
func Bool(v bool) Attr {
	var n uint32
	if v {
		n = 1
	}

	return Attr{kind: KindBool, num: n}
}

// Int returns a 32-bit signed integer attribute.
func Int(v int32) Attr {
	return Attr{kind: KindInt, num: uint32(v)} //nolint:gosec
}

// Float returns a 32-bit float attribute. The exact bit pattern is kept.
func Float(v float32) Attr {
	return Attr{kind: KindFloat, num: math.Float32bits(v)}
}

// FloatFromBits returns a float attribute holding the IEEE-754 bits as given.
func FloatFromBits(bits uint32) Attr {
	return Attr{kind: KindFloat, num: bits}
}

// Text returns a string attribute.
func Text(v string) Attr {
	return Attr{kind: KindText, text: v}
}

// Kind returns the kind of value held by a.
func (a Attr) Kind() Kind {
	return a.kind
}

// IsValid reports whether a was built by one of the constructors.
func (a Attr) IsValid() bool {
	return a.kind >= KindBool && a.kind <= KindText
}

// AsBool returns the boolean value and whether a is a Bool.
func (a Attr) AsBool() (bool, bool) {
	return a.num != 0, a.kind == KindBool
}

// AsInt returns the integer value and whether a is an Int.
func (a Attr) AsInt() (int32, bool) {
	if a.kind != KindInt {
		return 0, false
	}

	return int32(a.num), true //nolint:gosec
}

// AsFloat returns the float value and whether a is a Float.
func (a Attr) AsFloat() (float32, bool) {
	if a.kind != KindFloat {
		return 0, false
	}

	return math.Float32frombits(a.num), true
}

// FloatBits returns the raw IEEE-754 bits of a Float attribute.
func (a Attr) FloatBits() (uint32, bool) {
	return a.num, a.kind == KindFloat
}

// AsText returns the string value and whether a is a Text.
func (a Attr) AsText() (string, bool) {
	return a.text, a.kind == KindText
}

// Equal reports whether a and b have the same kind and value. Floats are
// compared by bit pattern, so NaN equals an identical NaN and 0 differs from -0.
func (a Attr) Equal(b Attr) bool {
	return a.kind == b.kind && a.num == b.num && a.text == b.text
}

// String formats the value for diagnostics.
func (a Attr) String() string {
	switch a.kind {
	case KindBool:
		return strconv.FormatBool(a.num != 0)
	case KindInt:
		return strconv.FormatInt(int64(int32(a.num)), 10) //nolint:gosec
	case KindFloat:
		return strconv.FormatFloat(float64(math.Float32frombits(a.num)), 'g', -1, 32)
	case KindText:
		return strconv.Quote(a.text)
	default:
		return "<invalid>"
	}
}
