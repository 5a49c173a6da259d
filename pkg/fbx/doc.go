// Package fbx decodes the binary FBX scene-graph format into a generic tree of
// named nodes carrying typed properties.
//
// The decoder is built from the parsers in package combinator. The header
// supplies the format version, which becomes the user state of the parse and
// selects 32- or 64-bit offset fields for every node record.
//
//	nodes, err := fbx.Decode(data)
//	if err != nil {
//	    var f *combinator.Failure[fbx.Format]
//	    if errors.As(err, &f) {
//	        log.Printf("stopped at offset %d in %v", f.Offset(), f.Path())
//	    }
//	    return err
//	}
//	objects, _ := fbx.Find(nodes, "Objects")
//
// Node names carry no meaning for the decoder; callers interpret sections such
// as "Objects" or "Connections" by walking the tree.
package fbx
