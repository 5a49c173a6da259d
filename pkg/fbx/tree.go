package fbx

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrSkipChildren is returned by a WalkFunc to skip the children of the
// current node.
var ErrSkipChildren = errors.New("skip children")

// WalkFunc is called for every node visited by Walk. path holds the names of
// the ancestors of n followed by n's own name.
type WalkFunc func(path []string, n Node) error

// Child returns the first direct child called name.
func (n Node) Child(name string) (Node, bool) {
	for _, c := range n.Children {
		if c.Name == name {
			return c, true
		}
	}
	return Node{}, false
}

// ChildrenNamed returns the direct children called name, in order.
func (n Node) ChildrenNamed(name string) []Node {
	var out []Node
	for _, c := range n.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Property returns the property at index i.
func (n Node) Property(i int) (Property, bool) {
	if i < 0 || i >= len(n.Properties) {
		return Property{}, false
	}
	return n.Properties[i], true
}

// Find returns the first top-level node called name.
func Find(nodes []Node, name string) (Node, bool) {
	for _, n := range nodes {
		if n.Name == name {
			return n, true
		}
	}
	return Node{}, false
}

// Walk visits nodes depth-first in document order. The depth of a node is
// len(path)-1.
func Walk(nodes []Node, fn WalkFunc) error {
	for _, n := range nodes {
		if err := walk(nil, n, fn); err != nil {
			return err
		}
	}
	return nil
}

// Walk visits n and its descendants depth-first.
func (n Node) Walk(fn WalkFunc) error {
	return walk(nil, n, fn)
}

func walk(parent []string, n Node, fn WalkFunc) error {
	path := append(parent[:len(parent):len(parent)], n.Name)
	if err := fn(path, n); err != nil {
		if errors.Is(err, ErrSkipChildren) {
			return nil
		}
		return err
	}
	for _, c := range n.Children {
		if err := walk(path, c, fn); err != nil {
			return err
		}
	}
	return nil
}

const dumpIndent = "    "

// Dump writes an indented text rendering of n to w.
func (n Node) Dump(w io.Writer) error {
	return dump(w, n, 0)
}

// Dump writes an indented text rendering of every node to w.
func Dump(w io.Writer, nodes []Node) error {
	for _, n := range nodes {
		if err := dump(w, n, 0); err != nil {
			return err
		}
	}
	return nil
}

func dump(w io.Writer, n Node, depth int) error {
	line := func(d int, format string, args ...any) error {
		_, err := fmt.Fprintf(w, "%s"+format+"\n", append([]any{strings.Repeat(dumpIndent, d)}, args...)...)
		return err
	}
	if err := line(depth, "[%s]:", n.Name); err != nil {
		return err
	}
	if len(n.Properties) > 0 {
		if err := line(depth+1, "Properties"); err != nil {
			return err
		}
		for _, p := range n.Properties {
			if err := line(depth+2, "Property<%s>: %s", p.Type(), p); err != nil {
				return err
			}
		}
	}
	if len(n.Children) > 0 {
		if err := line(depth+1, "Children"); err != nil {
			return err
		}
		for _, c := range n.Children {
			if err := dump(w, c, depth+2); err != nil {
				return err
			}
		}
	}
	return nil
}
