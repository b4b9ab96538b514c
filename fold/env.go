package fold

import (
	"fmt"
	"sort"
	"strings"

	"github.com/susji/cfold/cfg"
	"github.com/susji/cfold/value"
)

// AValue is what the analysis knows about a value: either a constant or
// nothing at all. The zero AValue is Unknown.
type AValue struct {
	Known bool
	Value value.Value
}

var Unknown = AValue{}

func Const(v value.Value) AValue {
	return AValue{Known: true, Value: v}
}

func (av AValue) String() string {
	if !av.Known {
		return "?"
	}
	return av.Value.String()
}

type KeyKind int

const (
	KEY_VAR = iota
	KEY_NODE
)

// Key names an entry of an environment. KEY_VAR keys are program variables.
// KEY_NODE keys stand for the expression attached to a single non-assign
// node: the condition of a conditional or loop, or the result of a return.
// They are keyed by node identity, as different nodes may well carry
// identical expressions.
type Key struct {
	Kind KeyKind
	Name string
	Node cfg.NodeId
}

func VarKey(name string) Key {
	return Key{Kind: KEY_VAR, Name: name}
}

func NodeKey(id cfg.NodeId) Key {
	return Key{Kind: KEY_NODE, Node: id}
}

func (k Key) String() string {
	switch k.Kind {
	case KEY_VAR:
		return k.Name
	case KEY_NODE:
		return fmt.Sprintf("@%d", k.Node)
	default:
		panic(fmt.Sprintf("invalid key kind: %d", k.Kind))
	}
}

type Env map[Key]AValue

// Get treats absent keys as Unknown.
func (e Env) Get(k Key) AValue {
	return e[k]
}

func (e Env) Copy() Env {
	ret := make(Env, len(e))
	for k, v := range e {
		ret[k] = v
	}
	return ret
}

// Equal compares the full maps. An absent key and an explicitly Unknown key
// are different here.
func (e Env) Equal(other Env) bool {
	if len(e) != len(other) {
		return false
	}
	for k, v := range e {
		ov, ok := other[k]
		if !ok || ov != v {
			return false
		}
	}
	return true
}

func (e Env) String() string {
	keys := make([]Key, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Kind != keys[j].Kind {
			return keys[i].Kind < keys[j].Kind
		}
		if keys[i].Name != keys[j].Name {
			return keys[i].Name < keys[j].Name
		}
		return keys[i].Node < keys[j].Node
	})
	b := &strings.Builder{}
	b.WriteString("{")
	for i, k := range keys {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(fmt.Sprintf("%s=%s", k, e[k]))
	}
	b.WriteString("}")
	return b.String()
}

// Merge combines the environments flowing into a node. A key keeps its value
// only if every input agrees on it. Inputs lacking the key count as Unknown,
// so a variable assigned on some paths only becomes Unknown.
func Merge(envs []Env) Env {
	ret := Env{}
	for _, env := range envs {
		for k := range env {
			if _, done := ret[k]; done {
				continue
			}
			merged := env[k]
			for _, other := range envs {
				if other.Get(k) != merged {
					merged = Unknown
					break
				}
			}
			ret[k] = merged
		}
	}
	return ret
}
