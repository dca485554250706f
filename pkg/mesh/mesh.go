package mesh

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/chazu/brep/pkg/brep"
)

// Mesh owns a set of nodes and the elements built on them. It is not safe
// for concurrent mutation; once built it may be read from many goroutines.
type Mesh struct {
	Nodes    []*Node
	Elements []*Element
	byID     map[NodeID]*Node
}

// New creates an empty mesh.
func New() *Mesh {
	return &Mesh{byID: make(map[NodeID]*Node)}
}

// AddNode creates a node at p with the next free ID.
func (m *Mesh) AddNode(p brep.Point) *Node {
	n := NewNode(NodeID(len(m.Nodes)), p)
	m.Nodes = append(m.Nodes, n)
	m.byID[n.ID] = n
	return n
}

// Node returns the node with the given ID, or nil.
func (m *Mesh) Node(id NodeID) *Node {
	return m.byID[id]
}

// AddElement creates an element of the given kind over existing nodes. The
// element ID is its index in Elements.
func (m *Mesh) AddElement(kind Kind, ids ...NodeID) (*Element, error) {
	id := len(m.Elements)
	nodes := make([]*Node, len(ids))
	for i, nid := range ids {
		n := m.byID[nid]
		if n == nil {
			return nil, errors.Wrapf(ErrUnknownNode, "element %d: node %d", id, nid)
		}
		nodes[i] = n
	}
	if dup := lo.FindDuplicates(ids); len(dup) > 0 {
		return nil, errors.Wrapf(ErrDuplicateID, "element %d: repeated nodes %v", id, dup)
	}
	e, err := NewElement(id, kind, nodes...)
	if err != nil {
		return nil, err
	}
	m.Elements = append(m.Elements, e)
	return e, nil
}

// ElementsOfKind returns the elements of the given kind, in mesh order.
func (m *Mesh) ElementsOfKind(k Kind) []*Element {
	return lo.Filter(m.Elements, func(e *Element, _ int) bool { return e.Kind == k })
}

// Displace moves every node's current position by f(initial position).
func (m *Mesh) Displace(f func(brep.Point) brep.Vector) {
	for _, n := range m.Nodes {
		n.Displace(f(n.Initial))
	}
}

// Reset moves every node back to its initial position.
func (m *Mesh) Reset() {
	for _, n := range m.Nodes {
		n.Current = n.Initial
	}
}

func (m *Mesh) String() string {
	counts := lo.CountValuesBy(m.Elements, func(e *Element) Kind { return e.Kind })
	return fmt.Sprintf("mesh: %d nodes, %d elements %v", len(m.Nodes), len(m.Elements), counts)
}

// --- lattice fixtures ---

// Lattice2D builds an nx by ny block of quadrilaterals spanning
// [min, max] in the z = 0 plane.
func Lattice2D(nx, ny int, min, max [2]float64) *Mesh {
	if nx <= 0 || ny <= 0 {
		panic(fmt.Sprintf("mesh: lattice needs positive cell counts, got %dx%d", nx, ny))
	}
	m := New()
	hx := (max[0] - min[0]) / float64(nx)
	hy := (max[1] - min[1]) / float64(ny)
	for j := 0; j <= ny; j++ {
		for i := 0; i <= nx; i++ {
			m.AddNode(brep.NewPoint(min[0]+float64(i)*hx, min[1]+float64(j)*hy, 0))
		}
	}
	id := func(i, j int) NodeID { return NodeID(j*(nx+1) + i) }
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			m.mustAdd(Quadrilateral4, id(i, j), id(i+1, j), id(i+1, j+1), id(i, j+1))
		}
	}
	return m
}

// Lattice3D builds an nx by ny by nz block of hexahedra spanning
// [min, max].
func Lattice3D(nx, ny, nz int, min, max [3]float64) *Mesh {
	if nx <= 0 || ny <= 0 || nz <= 0 {
		panic(fmt.Sprintf("mesh: lattice needs positive cell counts, got %dx%dx%d", nx, ny, nz))
	}
	m := New()
	h := [3]float64{
		(max[0] - min[0]) / float64(nx),
		(max[1] - min[1]) / float64(ny),
		(max[2] - min[2]) / float64(nz),
	}
	for k := 0; k <= nz; k++ {
		for j := 0; j <= ny; j++ {
			for i := 0; i <= nx; i++ {
				m.AddNode(brep.NewPoint(
					min[0]+float64(i)*h[0],
					min[1]+float64(j)*h[1],
					min[2]+float64(k)*h[2],
				))
			}
		}
	}
	id := func(i, j, k int) NodeID { return NodeID((k*(ny+1)+j)*(nx+1) + i) }
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				m.mustAdd(Hexahedron8,
					id(i, j, k), id(i+1, j, k), id(i+1, j+1, k), id(i, j+1, k),
					id(i, j, k+1), id(i+1, j, k+1), id(i+1, j+1, k+1), id(i, j+1, k+1),
				)
			}
		}
	}
	return m
}

func (m *Mesh) mustAdd(kind Kind, ids ...NodeID) {
	if _, err := m.AddElement(kind, ids...); err != nil {
		panic(fmt.Sprintf("mesh: lattice: %v", err))
	}
}
