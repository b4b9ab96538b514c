package fold

import (
	"fmt"

	"github.com/susji/cfold/node"
	"github.com/susji/cfold/value"
)

type concreteop func(a, b value.Value) (value.Value, bool)

var concreteops = map[node.KindOpBin]concreteop{
	node.OPBIN_ADD: value.Add,
	node.OPBIN_SUB: value.Sub,
	node.OPBIN_MUL: value.Mul,
	node.OPBIN_EQ:  value.Eq,
	node.OPBIN_NE:  value.Ne,
	node.OPBIN_LT:  value.Lt,
}

// Evaluate computes what is known about e under env. Only fully constant
// operands produce a constant; there is no partial evaluation.
func Evaluate(e node.Expr, env Env) AValue {
	switch t := e.(type) {
	case *node.Const:
		return Const(t.Value)
	case *node.Variable:
		return env.Get(VarKey(t.Name))
	case *node.OpBinary:
		op, ok := concreteops[t.Op]
		if !ok {
			panic(fmt.Sprintf("unhandled binary operator: %s", t.Op))
		}
		left := Evaluate(t.Left, env)
		right := Evaluate(t.Right, env)
		if !left.Known || !right.Known {
			return Unknown
		}
		v, ok := op(left.Value, right.Value)
		if !ok {
			return Unknown
		}
		return Const(v)
	default:
		panic(fmt.Sprintf("unhandled expression: %T", e))
	}
}
