package mesh_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/brep/pkg/brep"
	"github.com/chazu/brep/pkg/mesh"
)

func pt(x, y, z float64) brep.Point { return brep.NewPoint(x, y, z) }

func TestKindTables(t *testing.T) {
	tests := []struct {
		kind  mesh.Kind
		name  string
		nodes int
		dim   int
	}{
		{mesh.Line2, "line2", 2, 1},
		{mesh.Triangle3, "triangle3", 3, 2},
		{mesh.Quadrilateral4, "quadrilateral4", 4, 2},
		{mesh.Tetrahedron4, "tetrahedron4", 4, 3},
		{mesh.Hexahedron8, "hexahedron8", 8, 3},
		{mesh.Kind(42), "unknown", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.kind.String())
			assert.Equal(t, tt.nodes, tt.kind.NumNodes())
			assert.Equal(t, tt.dim, tt.kind.LocalDimension())
		})
	}
}

func TestElementEdgesJoinCorners(t *testing.T) {
	want := map[mesh.Kind]int{
		mesh.Line2: 1, mesh.Triangle3: 3, mesh.Quadrilateral4: 4,
		mesh.Tetrahedron4: 6, mesh.Hexahedron8: 12,
	}
	for kind, n := range want {
		e := unitElement(t, kind)
		edges := e.Edges()
		assert.Len(t, edges, n, kind.String())
		for _, ed := range edges {
			// Every edge of these unit elements has length 1.
			d := e.InitialPosition(ed[1]).Sub(e.InitialPosition(ed[0]))
			if kind.IsSimplex() && ed[0] != 0 && ed[1] != 0 {
				continue
			}
			assert.InDelta(t, 1, d.Length(), 1e-12, "%s edge %v", kind, ed)
		}
	}
}

// unitElement builds an element of the given kind over its own reference
// corners, shifted to [0, 1] for the cube kinds.
func unitElement(t *testing.T, kind mesh.Kind) *mesh.Element {
	t.Helper()
	var corners []brep.Point
	switch kind {
	case mesh.Line2:
		corners = []brep.Point{pt(0, 0, 0), pt(1, 0, 0)}
	case mesh.Triangle3:
		corners = []brep.Point{pt(0, 0, 0), pt(1, 0, 0), pt(0, 1, 0)}
	case mesh.Quadrilateral4:
		corners = []brep.Point{pt(0, 0, 0), pt(1, 0, 0), pt(1, 1, 0), pt(0, 1, 0)}
	case mesh.Tetrahedron4:
		corners = []brep.Point{pt(0, 0, 0), pt(1, 0, 0), pt(0, 1, 0), pt(0, 0, 1)}
	case mesh.Hexahedron8:
		corners = []brep.Point{
			pt(0, 0, 0), pt(1, 0, 0), pt(1, 1, 0), pt(0, 1, 0),
			pt(0, 0, 1), pt(1, 0, 1), pt(1, 1, 1), pt(0, 1, 1),
		}
	}
	nodes := make([]*mesh.Node, len(corners))
	for i, c := range corners {
		nodes[i] = mesh.NewNode(mesh.NodeID(i), c)
	}
	e, err := mesh.NewElement(0, kind, nodes...)
	require.NoError(t, err)
	return e
}

func strictlyInside(kind mesh.Kind, p brep.Point) bool {
	switch kind {
	case mesh.Line2:
		return p.X > 0 && p.X < 1 && p.Y == 0 && p.Z == 0
	case mesh.Triangle3:
		return p.X > 0 && p.Y > 0 && p.X+p.Y < 1 && p.Z == 0
	case mesh.Quadrilateral4:
		return p.X > 0 && p.X < 1 && p.Y > 0 && p.Y < 1 && p.Z == 0
	case mesh.Tetrahedron4:
		return p.X > 0 && p.Y > 0 && p.Z > 0 && p.X+p.Y+p.Z < 1
	default:
		return p.X > 0 && p.X < 1 && p.Y > 0 && p.Y < 1 && p.Z > 0 && p.Z < 1
	}
}

func TestSamplePointsAreInteriorAndExact(t *testing.T) {
	kinds := []mesh.Kind{mesh.Line2, mesh.Triangle3, mesh.Quadrilateral4, mesh.Tetrahedron4, mesh.Hexahedron8}
	for _, kind := range kinds {
		t.Run(kind.String(), func(t *testing.T) {
			e := unitElement(t, kind)
			for _, n := range []int{0, 1, 2, 3, 7, 10, 27, 50} {
				points, err := e.SamplePoints(n, brep.Reference)
				require.NoError(t, err)
				require.Len(t, points, n)
				seen := map[brep.Point]bool{}
				for _, p := range points {
					assert.True(t, strictlyInside(kind, p), "n=%d point %v", n, p)
					assert.False(t, seen[p], "n=%d duplicate %v", n, p)
					seen[p] = true
				}
			}
		})
	}
}

func TestSamplePointsDeterministic(t *testing.T) {
	e := unitElement(t, mesh.Hexahedron8)
	a, err := e.SamplePoints(13, brep.Reference)
	require.NoError(t, err)
	b, err := e.SamplePoints(13, brep.Reference)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	single, err := e.SamplePoints(1, brep.Reference)
	require.NoError(t, err)
	assert.Equal(t, []brep.Point{pt(0.5, 0.5, 0.5)}, single)
}

func TestSamplePointsErrors(t *testing.T) {
	e := unitElement(t, mesh.Quadrilateral4)

	_, err := e.SamplePoints(-1, brep.Reference)
	assert.True(t, errors.Is(err, brep.ErrPreconditionViolation))

	_, err = e.SamplePoints(3, brep.Configuration(7))
	assert.True(t, errors.Is(err, brep.ErrInvalidConfiguration))
}

func TestShapeFunctionsPartitionUnity(t *testing.T) {
	kinds := []mesh.Kind{mesh.Line2, mesh.Triangle3, mesh.Quadrilateral4, mesh.Tetrahedron4, mesh.Hexahedron8}
	for _, kind := range kinds {
		t.Run(kind.String(), func(t *testing.T) {
			e := unitElement(t, kind)
			for _, xi := range kind.LocalSamples(20) {
				sum := 0.0
				for _, w := range e.ShapeFunctions(xi) {
					sum += w
				}
				assert.InDelta(t, 1, sum, 1e-12)
			}
		})
	}
}

func TestGlobalCoordinatesFollowConfiguration(t *testing.T) {
	e := unitElement(t, mesh.Quadrilateral4)
	for _, n := range e.Nodes {
		n.Displace(pt(10, 0, 0))
	}

	ref, err := e.GlobalCoordinates(pt(0, 0, 0), brep.Reference)
	require.NoError(t, err)
	assert.Equal(t, pt(0.5, 0.5, 0), ref)

	cur, err := e.GlobalCoordinates(pt(0, 0, 0), brep.Current)
	require.NoError(t, err)
	assert.Equal(t, pt(10.5, 0.5, 0), cur)

	corner, err := e.GlobalCoordinates(pt(1, 1, 0), brep.Current)
	require.NoError(t, err)
	assert.Equal(t, pt(11, 1, 0), corner)

	samples, err := e.SamplePoints(4, brep.Current)
	require.NoError(t, err)
	for _, p := range samples {
		assert.True(t, p.X > 10 && p.X < 11, "sample %v", p)
	}
}

func TestNewElementChecksNodes(t *testing.T) {
	a, b := mesh.NewNode(0, pt(0, 0, 0)), mesh.NewNode(1, pt(1, 0, 0))

	_, err := mesh.NewElement(3, mesh.Triangle3, a, b)
	assert.True(t, errors.Is(err, mesh.ErrNodeCount))
	assert.Contains(t, err.Error(), "element 3")

	_, err = mesh.NewElement(4, mesh.Line2, a, nil)
	assert.True(t, errors.Is(err, mesh.ErrUnknownNode))

	_, err = mesh.NewElement(5, mesh.Kind(-1))
	assert.True(t, errors.Is(err, mesh.ErrNodeCount))

	e, err := mesh.NewElement(6, mesh.Line2, a, b)
	require.NoError(t, err)
	assert.Equal(t, "line2 6 [0 1]", e.String())
	assert.Equal(t, [][2]int{{0, 1}}, e.Edges())
}

func TestMeshAddElement(t *testing.T) {
	m := mesh.New()
	a := m.AddNode(pt(0, 0, 0))
	b := m.AddNode(pt(1, 0, 0))
	c := m.AddNode(pt(0, 1, 0))
	assert.Equal(t, []mesh.NodeID{0, 1, 2}, []mesh.NodeID{a.ID, b.ID, c.ID})
	assert.Same(t, b, m.Node(1))
	assert.Nil(t, m.Node(9))

	e, err := m.AddElement(mesh.Triangle3, 0, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, e.ID)

	_, err = m.AddElement(mesh.Triangle3, 0, 1, 9)
	assert.True(t, errors.Is(err, mesh.ErrUnknownNode))

	_, err = m.AddElement(mesh.Triangle3, 0, 1, 1)
	assert.True(t, errors.Is(err, mesh.ErrDuplicateID))

	_, err = m.AddElement(mesh.Line2, 0, 1)
	require.NoError(t, err)
	assert.Len(t, m.ElementsOfKind(mesh.Triangle3), 1)
	assert.Len(t, m.ElementsOfKind(mesh.Line2), 1)
	assert.Empty(t, m.ElementsOfKind(mesh.Hexahedron8))
}

func TestLattices(t *testing.T) {
	m2 := mesh.Lattice2D(4, 3, [2]float64{-2, -1.5}, [2]float64{2, 1.5})
	assert.Len(t, m2.Nodes, 5*4)
	assert.Len(t, m2.Elements, 12)
	last := m2.Elements[len(m2.Elements)-1]
	assert.Equal(t, pt(2, 1.5, 0), last.InitialPosition(2))

	m3 := mesh.Lattice3D(2, 2, 2, [3]float64{0, 0, 0}, [3]float64{1, 1, 1})
	assert.Len(t, m3.Nodes, 27)
	assert.Len(t, m3.Elements, 8)
	first := m3.Elements[0]
	assert.Equal(t, pt(0, 0, 0), first.InitialPosition(0))
	assert.Equal(t, pt(0.5, 0.5, 0.5), first.InitialPosition(6))

	// Every hexahedron has positive volume orientation: corner 6 is opposite 0.
	for _, e := range m3.Elements {
		d := e.InitialPosition(6).Sub(e.InitialPosition(0))
		assert.InDelta(t, 0.5, d.X, 1e-12)
		assert.InDelta(t, 0.5, d.Y, 1e-12)
		assert.InDelta(t, 0.5, d.Z, 1e-12)
	}

	assert.Panics(t, func() { mesh.Lattice2D(0, 1, [2]float64{}, [2]float64{1, 1}) })
}

func TestMeshDisplaceAndReset(t *testing.T) {
	m := mesh.Lattice2D(2, 2, [2]float64{0, 0}, [2]float64{1, 1})
	m.Displace(func(p brep.Point) brep.Vector { return pt(0, p.X, 0) })

	n := m.Node(2) // (1, 0)
	assert.Equal(t, pt(1, 0, 0), n.Initial)
	assert.Equal(t, pt(1, 1, 0), n.Current)

	p, err := n.Position(brep.Current)
	require.NoError(t, err)
	assert.Equal(t, pt(1, 1, 0), p)
	_, err = n.Position(brep.Configuration(-1))
	assert.True(t, errors.Is(err, brep.ErrInvalidConfiguration))

	m.Reset()
	assert.Equal(t, n.Initial, n.Current)
}
