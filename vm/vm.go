// Package vm executes a control-flow graph directly. It exists so that a
// folded graph can be checked against the graph it was folded from: both
// must compute the same result.
package vm

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/susji/cfold/cfg"
	"github.com/susji/cfold/node"
	"github.com/susji/cfold/value"
)

var (
	ErrUndefined = errors.New("undefined variable")
	ErrType      = errors.New("operand type mismatch")
	ErrCondition = errors.New("condition is not a boolean")
	ErrNoReturn  = errors.New("program ended without return")
	ErrStepLimit = errors.New("step limit exceeded")
)

const DefaultStepLimit = 100000

type VM struct {
	g     *cfg.Graph
	vars  map[string]value.Value
	limit int
	steps int
	out   io.Writer
}

func New(g *cfg.Graph) *VM {
	return &VM{
		g:     g,
		vars:  map[string]value.Value{},
		limit: DefaultStepLimit,
	}
}

// Set gives a variable its initial value.
func (vm *VM) Set(name string, v value.Value) {
	vm.vars[name] = v
}

func (vm *VM) Get(name string) (value.Value, bool) {
	v, ok := vm.vars[name]
	return v, ok
}

func (vm *VM) SetStepLimit(limit int) {
	vm.limit = limit
}

// Trace makes Run print every executed node to w.
func (vm *VM) Trace(w io.Writer) {
	vm.out = w
}

func (vm *VM) Steps() int {
	return vm.steps
}

func (vm *VM) inst(name, f string, va ...interface{}) {
	if vm.out == nil {
		return
	}
	fmt.Fprintf(vm.out, fmt.Sprintf("%-10s | ", name)+f+"\n", va...)
}

var binops = map[node.KindOpBin]func(a, b value.Value) (value.Value, bool){
	node.OPBIN_ADD: value.Add,
	node.OPBIN_SUB: value.Sub,
	node.OPBIN_MUL: value.Mul,
	node.OPBIN_EQ:  value.Eq,
	node.OPBIN_NE:  value.Ne,
	node.OPBIN_LT:  value.Lt,
}

func (vm *VM) eval(e node.Expr) (value.Value, error) {
	switch t := e.(type) {
	case *node.Const:
		return t.Value, nil
	case *node.Variable:
		v, ok := vm.vars[t.Name]
		if !ok {
			return value.Value{}, fmt.Errorf("%s: %w", t.Name, ErrUndefined)
		}
		return v, nil
	case *node.OpBinary:
		op, ok := binops[t.Op]
		if !ok {
			panic(fmt.Sprintf("unhandled binary operator: %s", t.Op))
		}
		l, err := vm.eval(t.Left)
		if err != nil {
			return value.Value{}, err
		}
		r, err := vm.eval(t.Right)
		if err != nil {
			return value.Value{}, err
		}
		v, ok := op(l, r)
		if !ok {
			return value.Value{}, fmt.Errorf("%s %s %s: %w", l.Kind, t.Op, r.Kind, ErrType)
		}
		return v, nil
	default:
		panic(fmt.Sprintf("unhandled expression: %T", e))
	}
}

func (vm *VM) cond(e node.Expr) (bool, error) {
	v, err := vm.eval(e)
	if err != nil {
		return false, err
	}
	if v.Kind != value.KIND_BOOL {
		return false, fmt.Errorf("%s: %w", node.Infix(e), ErrCondition)
	}
	return v.Bool, nil
}

// Run executes the graph from its entry until a return.
func (vm *VM) Run() (value.Value, error) {
	vm.steps = 0
	cur := vm.g.Entry()
	for {
		if vm.steps >= vm.limit {
			return value.Value{}, fmt.Errorf("after %d steps: %w", vm.steps, ErrStepLimit)
		}
		vm.steps++
		switch t := vm.g.Node(cur).(type) {
		case *cfg.Assign:
			v, err := vm.eval(t.Value)
			if err != nil {
				return value.Value{}, err
			}
			vm.inst("assign", "%s <- %s", t.Var, v)
			vm.vars[t.Var] = v
			cur = t.Next
		case *cfg.Condition:
			c, err := vm.cond(t.Cond)
			if err != nil {
				return value.Value{}, err
			}
			vm.inst("cond", "%s -> %t", node.Infix(t.Cond), c)
			if c {
				cur = t.True
			} else {
				cur = t.False
			}
		case *cfg.While:
			c, err := vm.cond(t.Cond)
			if err != nil {
				return value.Value{}, err
			}
			vm.inst("while", "%s -> %t", node.Infix(t.Cond), c)
			if c {
				cur = t.Body
			} else {
				cur = t.Join
			}
		case *cfg.Return:
			v, err := vm.eval(t.Result)
			if err != nil {
				return value.Value{}, err
			}
			vm.inst("return", "%s", v)
			return v, nil
		case *cfg.Quit:
			vm.inst("quit", "")
			return value.Value{}, ErrNoReturn
		default:
			panic(fmt.Sprintf("unknown node: %s", t))
		}
	}
}

func (vm *VM) DumpVars() string {
	names := []string{}
	for name := range vm.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	b := &strings.Builder{}
	b.WriteString("# variables\n")
	for _, name := range names {
		b.WriteString(fmt.Sprintf("%10s = %s\n", name, vm.vars[name]))
	}
	return b.String()
}
