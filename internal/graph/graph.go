// Package graph builds a DOT diagram of the objects of a decoded file and the
// connections between them.
package graph

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/twinfer/kfbx/pkg/fbx"
)

var (
	// ErrObjectID is returned when an object or connection lacks an integer id.
	ErrObjectID = errors.New("missing object id")
	// ErrUnknownObject is returned for a connection to an id not in Objects.
	ErrUnknownObject = errors.New("unknown object")
)

// RootID is the id of the implicit scene root that objects connect to.
const RootID int64 = 0

// maxPropertyLabel bounds the rendered length of one property in a label.
const maxPropertyLabel = 64

// Connection links two objects, as in the children of the Connections section.
type Connection struct {
	Mode string
	From int64
	To   int64
}

// Objects indexes the children of the Objects section by the integer id in
// their first property. The scene root is added under RootID.
func Objects(nodes []fbx.Node) (map[int64]fbx.Node, error) {
	objects := map[int64]fbx.Node{
		RootID: {Name: "RootNode", Properties: []fbx.Property{fbx.NewInt64(RootID)}},
	}
	section, ok := fbx.Find(nodes, "Objects")
	if !ok {
		return objects, nil
	}
	for i, o := range section.Children {
		id, ok := intProp(o, 0)
		if !ok {
			return nil, fmt.Errorf("%w: object %d (%s)", ErrObjectID, i, o.Name)
		}
		objects[id] = o
	}
	return objects, nil
}

// Connections reads the C records of the Connections section.
func Connections(nodes []fbx.Node) ([]Connection, error) {
	section, ok := fbx.Find(nodes, "Connections")
	if !ok {
		return nil, nil
	}
	var out []Connection
	for i, c := range section.ChildrenNamed("C") {
		mode, _ := c.Property(0)
		text, ok := mode.Text()
		if !ok {
			return nil, fmt.Errorf("connection %d: missing mode", i)
		}
		from, okFrom := intProp(c, 1)
		to, okTo := intProp(c, 2)
		if !okFrom || !okTo {
			return nil, fmt.Errorf("%w: connection %d", ErrObjectID, i)
		}
		out = append(out, Connection{Mode: text, From: from, To: to})
	}
	return out, nil
}

func intProp(n fbx.Node, i int) (int64, bool) {
	p, ok := n.Property(i)
	if !ok {
		return 0, false
	}
	return p.Int()
}

type vertex struct {
	id     string
	label  string
	object bool
}

type edge struct {
	from, to string
	label    string
	object   bool
}

// Graph is a directed graph of objects and their child records.
type Graph struct {
	vertices []vertex
	edges    []edge
	objects  map[int64]string
	next     int
}

// Build creates the graph of every connected object. Each connected object is
// drawn with its child records, which point to their parent with a
// "child of" edge.
func Build(nodes []fbx.Node) (*Graph, error) {
	objects, err := Objects(nodes)
	if err != nil {
		return nil, err
	}
	conns, err := Connections(nodes)
	if err != nil {
		return nil, err
	}

	g := &Graph{objects: make(map[int64]string)}
	for _, c := range conns {
		from, ok := objects[c.From]
		if !ok {
			return nil, fmt.Errorf("%w: %d in %s connection", ErrUnknownObject, c.From, c.Mode)
		}
		to, ok := objects[c.To]
		if !ok {
			return nil, fmt.Errorf("%w: %d in %s connection", ErrUnknownObject, c.To, c.Mode)
		}
		fromID := g.object(from, c.From)
		toID := g.object(to, c.To)
		g.edges = append(g.edges, edge{from: fromID, to: toID, label: c.Mode, object: true})
	}
	return g, nil
}

// object adds the vertex for an object once, together with its child records.
func (g *Graph) object(n fbx.Node, id int64) string {
	if v, ok := g.objects[id]; ok {
		return v
	}
	title := fmt.Sprintf("%s - %d", n.Name, id)
	g.objects[id] = title
	g.vertices = append(g.vertices, vertex{id: title, label: label(title, n), object: true})
	g.children(n, title)
	return title
}

func (g *Graph) children(parent fbx.Node, parentID string) {
	for _, c := range parent.Children {
		g.next++
		id := fmt.Sprintf("n%d", g.next)
		g.vertices = append(g.vertices, vertex{id: id, label: label(c.Name, c)})
		g.edges = append(g.edges, edge{from: id, to: parentID, label: "child of"})
		g.children(c, id)
	}
}

func label(title string, n fbx.Node) string {
	lines := []string{displayName(title)}
	for _, p := range n.Properties {
		s := displayName(p.String())
		if len(s) > maxPropertyLabel {
			s = s[:maxPropertyLabel] + "..."
		}
		lines = append(lines, s)
	}
	return strings.Join(lines, `\l`) + `\l`
}

// displayName shows the name/class separator of object names as "::".
func displayName(s string) string {
	return strings.ReplaceAll(s, "\x00\x01", "::")
}

// Len returns the number of vertices and edges.
func (g *Graph) Len() (vertices, edges int) {
	return len(g.vertices), len(g.edges)
}

// WriteDOT writes the graph in the DOT language.
func (g *Graph) WriteDOT(w io.Writer) error {
	var b strings.Builder
	b.WriteString("digraph \"FBX\" {\n")
	for _, v := range g.vertices {
		style := "style=dashed"
		if v.object {
			style = "style=filled, fillcolor=yellow"
		}
		fmt.Fprintf(&b, "\t%s [shape=box, %s, label=%s];\n", quote(v.id), style, quoteLabel(v.label))
	}
	for _, e := range g.edges {
		attrs := "label=" + quote(e.label)
		if e.object {
			attrs += ", color=darkorange"
		}
		fmt.Fprintf(&b, "\t%s -> %s [%s];\n", quote(e.from), quote(e.to), attrs)
	}
	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func (g *Graph) String() string {
	var b strings.Builder
	_ = g.WriteDOT(&b)
	return b.String()
}

var quoter = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\x00", "", "\x01", "")

func quote(s string) string {
	return `"` + quoter.Replace(displayName(s)) + `"`
}

// quoteLabel quotes a label that already contains \l line breaks.
func quoteLabel(s string) string {
	parts := strings.Split(s, `\l`)
	for i, p := range parts {
		parts[i] = quoter.Replace(p)
	}
	return `"` + strings.Join(parts, `\l`) + `"`
}
