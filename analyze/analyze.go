// Package analyze checks statement trees before they are turned into a CFG.
//
// Errors mean the tree is malformed and cannot be formed at all: missing
// statements or expressions, nameless variables, operators the folding pass
// does not know. Warnings are about programs which are well-formed but
// suspicious, namely reading a variable which is not assigned on every path
// leading to the read, and code following a return.
package analyze

import (
	"errors"
	"fmt"

	"github.com/susji/cfold/node"
)

var (
	ErrNilStmt         = errors.New("missing statement")
	ErrNilExpr         = errors.New("missing expression")
	ErrEmptyName       = errors.New("variable without a name")
	ErrUnknownOp       = errors.New("unknown binary operator")
	ErrUnknownNode     = errors.New("unknown node")
	ErrMaybeUnassigned = errors.New("variable may be used before assignment")
	ErrUnreachable     = errors.New("unreachable code after return")
)

// Analyzer maintains the state while checking a single program.
type Analyzer struct {
	errs     []error
	warnings []error
	// dead is positive while checking code which follows a return
	dead int
}

func New() *Analyzer {
	return &Analyzer{}
}

func (a *Analyzer) Warnings() []error {
	return a.warnings
}

func (a *Analyzer) errorf(n interface{}, path string, err error) {
	a.errs = append(a.errs, &Error{Node: n, Path: path, Wrapped: err})
}

func (a *Analyzer) warnf(n interface{}, path string, err error) {
	a.warnings = append(a.warnings, &Error{Node: n, Path: path, Wrapped: err})
}

func (a *Analyzer) expr(e node.Expr, path string, sc *scope) {
	switch t := e.(type) {
	case nil:
		a.errorf(e, path, ErrNilExpr)
	case *node.Const:
	case *node.Variable:
		if t == nil {
			a.errorf(e, path, ErrNilExpr)
			return
		}
		if t.Name == "" {
			a.errorf(t, path, ErrEmptyName)
			return
		}
		if a.dead == 0 && !sc.has(t.Name) {
			a.warnf(t, path, ErrMaybeUnassigned)
		}
	case *node.OpBinary:
		if !t.Op.Valid() {
			a.errorf(t, path, ErrUnknownOp)
		}
		a.expr(t.Left, path+".left", sc)
		a.expr(t.Right, path+".right", sc)
	default:
		a.errorf(e, path, ErrUnknownNode)
	}
}

// stmt checks s and returns the scope after it. A nil scope means that no
// path continues past s, as all of them returned.
func (a *Analyzer) stmt(s node.Stmt, path string, sc *scope) *scope {
	switch t := s.(type) {
	case nil:
		a.errorf(s, path, ErrNilStmt)
		return sc
	case *node.Block:
		for i, sub := range t.Value {
			subpath := fmt.Sprintf("%s[%d]", path, i)
			if sc == nil {
				a.warnf(sub, subpath, ErrUnreachable)
				// Keep looking for malformed nodes, but do not warn
				// about unassigned variables in dead code.
				a.dead++
				a.stmt(sub, subpath, newScope())
				a.dead--
				continue
			}
			sc = a.stmt(sub, subpath, sc)
		}
		return sc
	case *node.Assign:
		a.expr(t.What, path+".value", sc)
		if t.To == nil {
			a.errorf(t, path, ErrNilExpr)
			return sc
		}
		if t.To.Name == "" {
			a.errorf(t, path, ErrEmptyName)
			return sc
		}
		sc.add(t.To.Name)
		return sc
	case *node.Return:
		a.expr(t.Expr, path+".result", sc)
		return nil
	case *node.If:
		a.expr(t.Cond, path+".cond", sc)
		tsc := a.stmt(t.True, path+".then", sc.copy())
		fsc := sc
		if t.False != nil {
			fsc = a.stmt(t.False, path+".else", sc.copy())
		}
		switch {
		case tsc == nil:
			return fsc
		case fsc == nil:
			return tsc
		}
		return tsc.intersect(fsc)
	case *node.While:
		a.expr(t.Cond, path+".cond", sc)
		// The body may run zero times, so nothing it assigns is certain
		// afterwards.
		a.stmt(t.Body, path+".body", sc.copy())
		return sc
	default:
		a.errorf(s, path, ErrUnknownNode)
		return sc
	}
}

// Check analyzes a whole program. Input variables which the program reads
// without assigning them first may be listed in inputs to silence warnings
// about them. The returned errors mean the program must not be formed into a
// CFG. Warnings are available afterwards from Warnings.
func (a *Analyzer) Check(prog node.Stmt, inputs ...string) []error {
	a.errs = []error{}
	a.warnings = []error{}
	a.dead = 0
	sc := newScope()
	for _, in := range inputs {
		sc.add(in)
	}
	a.stmt(prog, "program", sc)
	return a.errs
}
