package mesh

import "github.com/pkg/errors"

var (
	// ErrNodeCount is returned when an element gets the wrong number of nodes
	// for its kind.
	ErrNodeCount = errors.New("mesh: wrong node count")

	// ErrUnknownNode is returned when an element refers to a node the mesh
	// does not own.
	ErrUnknownNode = errors.New("mesh: unknown node")

	// ErrDuplicateID is returned when an ID is registered twice.
	ErrDuplicateID = errors.New("mesh: duplicate id")
)
