// Package value contains the concrete values our programs compute with:
// 32-bit integers and booleans. Operators never fail on a kind mismatch, they
// just report that the result is not evaluable.
package value

import (
	"fmt"
	"strconv"
)

type Kind int

const (
	KIND_INT = iota
	KIND_BOOL
)

var kindnames = [...]string{
	"int",
	"bool",
}

func (k Kind) String() string {
	return kindnames[k]
}

// Value is a tagged union. It is comparable, so it may be used directly as a
// map value and compared with ==.
type Value struct {
	Kind Kind
	Int  int32
	Bool bool
}

func Int(i int32) Value {
	return Value{Kind: KIND_INT, Int: i}
}

func Bool(b bool) Value {
	return Value{Kind: KIND_BOOL, Bool: b}
}

func (v Value) String() string {
	switch v.Kind {
	case KIND_INT:
		return strconv.FormatInt(int64(v.Int), 10)
	case KIND_BOOL:
		return strconv.FormatBool(v.Bool)
	default:
		panic(fmt.Sprintf("invalid value kind: %d", v.Kind))
	}
}

func ints(a, b Value) bool {
	return a.Kind == KIND_INT && b.Kind == KIND_INT
}

// Add, Sub and Mul wrap around like int32 does.
func Add(a, b Value) (Value, bool) {
	if !ints(a, b) {
		return Value{}, false
	}
	return Int(a.Int + b.Int), true
}

func Sub(a, b Value) (Value, bool) {
	if !ints(a, b) {
		return Value{}, false
	}
	return Int(a.Int - b.Int), true
}

func Mul(a, b Value) (Value, bool) {
	if !ints(a, b) {
		return Value{}, false
	}
	return Int(a.Int * b.Int), true
}

// Eq compares two values of the same kind.
func Eq(a, b Value) (Value, bool) {
	if a.Kind != b.Kind {
		return Value{}, false
	}
	return Bool(a == b), true
}

func Ne(a, b Value) (Value, bool) {
	r, ok := Eq(a, b)
	if !ok {
		return Value{}, false
	}
	return Bool(!r.Bool), true
}

func Lt(a, b Value) (Value, bool) {
	if !ints(a, b) {
		return Value{}, false
	}
	return Bool(a.Int < b.Int), true
}
