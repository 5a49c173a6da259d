package fbx

import (
	"bytes"
	"fmt"

	"github.com/twinfer/kfbx/pkg/combinator"
)

// Node is one record of the scene tree. A node owns its properties and
// children; decoded nodes are not modified afterwards.
type Node struct {
	Name       string     `json:"name" yaml:"name"`
	Properties []Property `json:"properties" yaml:"properties"`
	Children   []Node     `json:"children,omitempty" yaml:"children,omitempty"`
}

var (
	nameCodepoint = combinator.UTF8Codepoint[Format]().WithLabel("Codepoint")

	// nodeRecord is assigned in init because the node and children parsers
	// refer to each other.
	nodeRecord combinator.Parser[Node, Format]

	node = combinator.New(func(s combinator.State[Format]) combinator.Result[Node, Format] {
		return nodeRecord.Run(s)
	})
)

func init() {
	nodeRecord = combinator.Do(parseNode).WithLabel("Node")
}

// NodeParser reads one node record, its properties and all of its children.
// The user state must carry the file version.
func NodeParser() combinator.Parser[Node, Format] {
	return node
}

func parseNode(sc *combinator.Scope[Format]) (Node, error) {
	field := sc.User().offsetField()

	end, err := combinator.Step(sc, field.WithLabel("End Offset"))
	if err != nil {
		return Node{}, err
	}
	count, err := combinator.Step(sc, field.WithLabel("Property Count"))
	if err != nil {
		return Node{}, err
	}
	if count < 0 {
		return Node{}, fmt.Errorf("%w: property count %d", ErrNodeField, count)
	}
	// The property list length is part of the layout but not validated.
	if _, err := combinator.Step(sc, field.WithLabel("Property List Length")); err != nil {
		return Node{}, err
	}
	nameLen, err := combinator.Step(sc, combinator.Head[Format]().WithLabel("Name Length"))
	if err != nil {
		return Node{}, err
	}
	name, err := combinator.Step(sc, combinator.Text(combinator.Take(nameCodepoint, int(nameLen))).WithLabel("Name"))
	if err != nil {
		return Node{}, err
	}

	props, err := combinator.Step(sc,
		combinator.Take(propertyRecord, int(count)).WithLabel(fmt.Sprintf("%d properties of %s", count, name)))
	if err != nil {
		return Node{}, err
	}
	kids, err := combinator.Step(sc, children(end).WithLabel("children of "+name))
	if err != nil {
		return Node{}, err
	}
	return Node{Name: name, Properties: props, Children: kids}, nil
}

// children reads child nodes until the cursor reaches end. A null record
// filling the rest of the span ends the list without producing a node.
func children(end int64) combinator.Parser[[]Node, Format] {
	return combinator.Do(func(sc *combinator.Scope[Format]) ([]Node, error) {
		var kids []Node
		for {
			s := sc.State()
			remaining := end - int64(s.Pos())
			switch {
			case remaining == 0:
				return kids, nil
			case remaining < 0:
				return nil, fmt.Errorf("%w: cursor at %d is past end offset %d", ErrEndOffset, s.Pos(), end)
			case isNullRecord(s, remaining):
				if _, err := combinator.Step(sc, combinator.Skip[Format](int(remaining)).WithLabel("Null Record")); err != nil {
					return nil, err
				}
				return kids, nil
			}
			child, err := combinator.Step(sc, node)
			if err != nil {
				return nil, err
			}
			kids = append(kids, child)
		}
	})
}

// isNullRecord reports whether the remaining span of a node is its
// terminating null record.
func isNullRecord(s combinator.State[Format], remaining int64) bool {
	if remaining == NullRecordSize {
		return true
	}
	if remaining != wideNullRecordSize || !s.User().WideOffsets() || s.Len() < wideNullRecordSize {
		return false
	}
	return bytes.Count(s.Rest()[:wideNullRecordSize], []byte{0}) == wideNullRecordSize
}

// nullRecord matches the all-zero record that ends the top-level node list.
var nullRecord = combinator.Do(func(sc *combinator.Scope[Format]) (combinator.Unit, error) {
	size := NullRecordSize
	if sc.User().WideOffsets() {
		size = wideNullRecordSize
	}
	_, err := combinator.Step(sc, combinator.Expect[Format](make([]byte, size)))
	return combinator.Unit{}, err
}).WithLabel("Null Record")

// nodeList reads top-level nodes until the end of input or the top-level null
// record. Anything after the null record is the file footer and is ignored.
var nodeList = combinator.ManyTill(node, combinator.Choice(combinator.Eof[Format](), nullRecord))
