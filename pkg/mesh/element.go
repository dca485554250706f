package mesh

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/chazu/brep/pkg/brep"
)

// Compile-time interface check.
var _ brep.SampledGeometry = (*Element)(nil)

// Element is a linear finite element over mesh nodes. It is the geometry a
// BRep classifies as in, out or cut.
type Element struct {
	ID    int
	Kind  Kind
	Nodes []*Node
}

// NewElement returns an element of the given kind. The node count must match
// the kind.
func NewElement(id int, kind Kind, nodes ...*Node) (*Element, error) {
	if want := kind.NumNodes(); want == 0 || len(nodes) != want {
		return nil, errors.Wrapf(ErrNodeCount, "element %d: %s takes %d nodes, got %d", id, kind, want, len(nodes))
	}
	if lo.Contains(nodes, nil) {
		return nil, errors.Wrapf(ErrUnknownNode, "element %d: nil node", id)
	}
	return &Element{ID: id, Kind: kind, Nodes: nodes}, nil
}

func (e *Element) String() string {
	ids := lo.Map(e.Nodes, func(n *Node, _ int) NodeID { return n.ID })
	return fmt.Sprintf("%s %d %v", e.Kind, e.ID, ids)
}

// Len returns the number of nodes.
func (e *Element) Len() int { return len(e.Nodes) }

// InitialPosition returns the reference position of node i.
func (e *Element) InitialPosition(i int) brep.Point { return e.Nodes[i].Initial }

// Position returns the current position of node i.
func (e *Element) Position(i int) brep.Point { return e.Nodes[i].Current }

// ShapeFunctions evaluates the element's shape functions at local point xi.
func (e *Element) ShapeFunctions(xi brep.Point) []float64 {
	return e.Kind.shapeFunctions(xi)
}

// GlobalCoordinates maps local point xi into space using the node positions
// of configuration cfg.
func (e *Element) GlobalCoordinates(xi brep.Point, cfg brep.Configuration) (brep.Point, error) {
	corners, err := brep.Positions(e, cfg)
	if err != nil {
		return brep.Point{}, err
	}
	return interpolate(e.ShapeFunctions(xi), corners), nil
}

// SamplePoints returns n points strictly inside the element, in
// configuration cfg. The same n always yields the same local points.
func (e *Element) SamplePoints(n int, cfg brep.Configuration) ([]brep.Point, error) {
	if n < 0 {
		return nil, brep.Precondition("element %d: negative sample count %d", e.ID, n)
	}
	corners, err := brep.Positions(e, cfg)
	if err != nil {
		return nil, err
	}
	return lo.Map(e.Kind.LocalSamples(n), func(xi brep.Point, _ int) brep.Point {
		return interpolate(e.ShapeFunctions(xi), corners)
	}), nil
}

// Edges returns the element's edges as pairs of local node indices.
func (e *Element) Edges() [][2]int {
	return e.Kind.edges()
}

func interpolate(weights []float64, corners []brep.Point) brep.Point {
	var p brep.Point
	for i, w := range weights {
		p = p.Add(corners[i].MulScalar(w))
	}
	return p
}
