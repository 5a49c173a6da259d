package kfbx_test

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/twinfer/kfbx/pkg/combinator"
	"github.com/twinfer/kfbx/pkg/fbx"
	"github.com/twinfer/kfbx/pkg/kfbx"
	"github.com/twinfer/kfbx/testutil"
)

// Example decodes a file held in memory and lists its sections.
func Example() {
	data := testutil.Scene(7400)

	doc, err := kfbx.Decode(data)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(doc.Format)
	for _, n := range doc.Nodes {
		fmt.Println(n.Name)
	}
	// Output:
	// FBX 7.4
	// FBXHeaderExtension
	// Objects
	// Connections
}

// ExampleQuery selects mesh objects with a CEL predicate.
func ExampleQuery() {
	doc, err := kfbx.Decode(testutil.Scene(7500))
	if err != nil {
		log.Fatal(err)
	}

	matches, err := kfbx.Query(doc, `props.size() > 2 && props[2] == "Mesh"`)
	if err != nil {
		log.Fatal(err)
	}
	for _, m := range matches {
		fmt.Println(m.PathString(), m.Node.Properties[0])
	}
	// Output:
	// Objects/Geometry 2001
	// Objects/Model 1001
}

// Example_failure shows the label path and offset of a truncated file.
func Example_failure() {
	data := testutil.Scene(7400)

	_, err := kfbx.Decode(data[:60])
	var f *combinator.Failure[fbx.Format]
	if errors.As(err, &f) {
		fmt.Println(strings.Join(f.Path(), " > "))
		fmt.Println("offset", f.Offset())
	}
	// Output:
	// Node > children of FBXHeaderExtension > Node > End Offset
	// offset 58
}
