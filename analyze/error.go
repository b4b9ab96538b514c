package analyze

import (
	"fmt"
)

// Error ties a problem to the syntax tree node it was found in. Path is the
// position of the node in the tree, for example "block[2].while.body".
type Error struct {
	Node    interface{}
	Path    string
	Wrapped error
}

func (e *Error) Error() string {
	if e.Node == nil {
		return fmt.Sprintf("%s: %s", e.Path, e.Wrapped)
	}
	return fmt.Sprintf("%s: %s: %s", e.Path, e.Wrapped, e.Node)
}

func (e *Error) Unwrap() error {
	return e.Wrapped
}
