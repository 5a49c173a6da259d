package fbx

import "errors"

var (
	// ErrUnknownPropertyType is returned for a property type code outside the
	// known set.
	ErrUnknownPropertyType = errors.New("unknown property type")
	// ErrArrayEncoding is returned for an array encoding flag other than 0 or 1.
	ErrArrayEncoding = errors.New("unknown array encoding")
	// ErrInflate is returned when a compressed array payload cannot be inflated.
	ErrInflate = errors.New("inflating array payload")
	// ErrArrayLength is returned when an array payload does not hold exactly
	// count × element size bytes.
	ErrArrayLength = errors.New("array payload length mismatch")
	// ErrEndOffset is returned when a node's content runs past its end offset.
	ErrEndOffset = errors.New("node overruns its end offset")
	// ErrNodeField is returned for a negative or oversized count field.
	ErrNodeField = errors.New("invalid node field")
)
