package fbx

import "github.com/twinfer/kfbx/pkg/combinator"

// Document is a decoded file: its format and top-level nodes.
type Document struct {
	Format Format `json:"format" yaml:"format"`
	Nodes  []Node `json:"nodes" yaml:"nodes"`
}

var document = combinator.Bind(HeaderParser(), func(f Format) combinator.Parser[Document, Format] {
	return combinator.Then(
		combinator.SetState(f),
		combinator.Map(nodeList, func(nodes []Node) Document {
			if nodes == nil {
				nodes = []Node{}
			}
			return Document{Format: f, Nodes: nodes}
		}),
	)
})

// DocumentParser reads the header, installs its Format as the user state and
// reads the top-level node list.
func DocumentParser() combinator.Parser[Document, Format] {
	return document
}

// DecodeDocument decodes a complete file held in data. On failure the error
// is a *combinator.Failure[Format] carrying the label path and offset.
func DecodeDocument(data []byte) (Document, error) {
	r := document.Parse(data, Format{})
	if !r.OK() {
		return Document{}, r.Failure()
	}
	return r.Value(), nil
}

// Decode decodes a complete file and returns its top-level nodes.
func Decode(data []byte) ([]Node, error) {
	doc, err := DecodeDocument(data)
	if err != nil {
		return nil, err
	}
	return doc.Nodes, nil
}

// Header decodes only the file header.
func Header(data []byte) (Format, error) {
	r := HeaderParser().Parse(data, Format{})
	if !r.OK() {
		return Format{}, r.Failure()
	}
	return r.Value(), nil
}
