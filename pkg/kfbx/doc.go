// Package kfbx provides a high-level API for decoding binary FBX files.
//
// # Overview
//
// The package wraps the format decoder of package fbx with the concerns an
// application needs around it:
//
//   - Decoding from memory or from a file, with a maximum input size
//   - JSON and YAML rendering of the decoded tree
//   - Node queries written as CEL predicates, with compiled programs cached
//   - Context support for cancellation
//   - Structured logging through log/slog
//
// # Quick Start
//
//	doc, err := kfbx.DecodeFile("scene.fbx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(doc.Format, len(doc.Nodes))
//
// # Queries
//
// A query is evaluated against every node of the tree. The predicate can use
// the variables name, props, types, depth, path and children:
//
//	meshes, err := kfbx.Query(doc, `name == "Model" && props[2] == "Mesh"`)
//
// # Custom Decoder
//
//	dec := kfbx.NewDecoder(
//	    kfbx.WithLogger(logger),
//	    kfbx.WithDebugMode(true),
//	    kfbx.WithMaxInputSize(64<<20),
//	)
//	doc, err := dec.Decode(ctx, data)
//
// # Errors
//
// Decoding errors wrap a *combinator.Failure[fbx.Format]; use errors.As to
// obtain the label path and the byte offset where decoding stopped.
package kfbx
