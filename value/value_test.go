package value_test

import (
	"math"
	"testing"

	"github.com/susji/cfold/testers/assert"
	"github.com/susji/cfold/value"
)

type binop func(a, b value.Value) (value.Value, bool)

func TestOperators(t *testing.T) {
	type entry struct {
		name string
		op   binop
		a, b value.Value
		exp  value.Value
		ok   bool
	}
	i, b := value.Int, value.Bool
	table := []entry{
		{"add", value.Add, i(1), i(2), i(3), true},
		{"sub", value.Sub, i(1), i(2), i(-1), true},
		{"mul", value.Mul, i(4), i(5), i(20), true},
		{"add-bool", value.Add, i(1), b(true), value.Value{}, false},
		{"mul-bools", value.Mul, b(false), b(true), value.Value{}, false},
		{"eq-ints", value.Eq, i(3), i(3), b(true), true},
		{"eq-bools", value.Eq, b(true), b(false), b(false), true},
		{"eq-mixed", value.Eq, i(1), b(true), value.Value{}, false},
		{"ne-ints", value.Ne, i(3), i(4), b(true), true},
		{"ne-bools", value.Ne, b(true), b(true), b(false), true},
		{"ne-mixed", value.Ne, b(false), i(0), value.Value{}, false},
		{"lt", value.Lt, i(3), i(4), b(true), true},
		{"lt-false", value.Lt, i(4), i(4), b(false), true},
		{"lt-bools", value.Lt, b(false), b(true), value.Value{}, false},
		{"add-wraps", value.Add, i(math.MaxInt32), i(1), i(math.MinInt32), true},
	}
	for _, e := range table {
		got, ok := e.op(e.a, e.b)
		assert.Equalf(t, e.ok, ok, "%s: ok", e.name)
		if ok {
			assert.Equalf(t, e.exp, got, "%s: result", e.name)
		}
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "-12", value.Int(-12).String())
	assert.Equal(t, "true", value.Bool(true).String())
	assert.Equal(t, "bool", value.Kind(value.KIND_BOOL).String())
}
