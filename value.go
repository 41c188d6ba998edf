package zcache

import "strconv"

// Kind identifies the variant held by a Value.
type Kind int

// Cacheable value variants, the set is closed.
const (
	KindNone Kind = iota
	KindInt
	KindFloat
	KindText
	KindBool
)

// Value is a cacheable value holding one of a closed set of variants:
// int64, float64, string or bool.
//
// Zero Value holds no variant and reads as absent from cache.
// Values are comparable with ==.
type Value struct {
	kind Kind
	num  int64
	flt  float64
	txt  string
	bln  bool
}

// Int creates an integer Value.
func Int(v int64) Value {
	return Value{kind: KindInt, num: v}
}

// Float creates a floating point Value.
func Float(v float64) Value {
	return Value{kind: KindFloat, flt: v}
}

// Text creates a text Value.
func Text(v string) Value {
	return Value{kind: KindText, txt: v}
}

// Bool creates a boolean Value.
func Bool(v bool) Value {
	return Value{kind: KindBool, bln: v}
}

// Kind returns the variant held.
func (v Value) Kind() Kind {
	return v.kind
}

// Int returns the integer variant.
func (v Value) Int() (int64, bool) {
	return v.num, v.kind == KindInt
}

// Float returns the floating point variant.
func (v Value) Float() (float64, bool) {
	return v.flt, v.kind == KindFloat
}

// Text returns the text variant.
func (v Value) Text() (string, bool) {
	return v.txt, v.kind == KindText
}

// Bool returns the boolean variant.
func (v Value) Bool() (bool, bool) {
	return v.bln, v.kind == KindBool
}

// String formats the held variant, mostly for logs.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.num, 10)
	case KindFloat:
		return strconv.FormatFloat(v.flt, 'g', -1, 64)
	case KindText:
		return v.txt
	case KindBool:
		return strconv.FormatBool(v.bln)
	case KindNone:
	}

	return "<none>"
}
