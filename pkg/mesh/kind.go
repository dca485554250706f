package mesh

import "github.com/chazu/brep/pkg/brep"

// Kind enumerates the supported linear element types.
type Kind int

const (
	Line2          Kind = iota // 2-node line on [-1, 1]
	Triangle3                  // 3-node triangle on the unit simplex
	Quadrilateral4             // 4-node quadrilateral on [-1, 1]^2
	Tetrahedron4               // 4-node tetrahedron on the unit simplex
	Hexahedron8                // 8-node hexahedron on [-1, 1]^3
)

func (k Kind) String() string {
	switch k {
	case Line2:
		return "line2"
	case Triangle3:
		return "triangle3"
	case Quadrilateral4:
		return "quadrilateral4"
	case Tetrahedron4:
		return "tetrahedron4"
	case Hexahedron8:
		return "hexahedron8"
	default:
		return "unknown"
	}
}

// NumNodes returns the number of nodes of an element of this kind, or 0 for
// an unknown kind.
func (k Kind) NumNodes() int {
	return len(k.corners())
}

// LocalDimension returns the dimension of the reference element.
func (k Kind) LocalDimension() int {
	switch k {
	case Line2:
		return 1
	case Triangle3, Quadrilateral4:
		return 2
	case Tetrahedron4, Hexahedron8:
		return 3
	default:
		return 0
	}
}

// IsSimplex reports whether the reference element is a unit simplex rather
// than a [-1, 1] cube.
func (k Kind) IsSimplex() bool {
	return k == Triangle3 || k == Tetrahedron4
}

// corners returns the local coordinates of the element's nodes, in node
// order.
func (k Kind) corners() []brep.Point {
	switch k {
	case Line2:
		return []brep.Point{{X: -1}, {X: 1}}
	case Triangle3:
		return []brep.Point{{}, {X: 1}, {Y: 1}}
	case Quadrilateral4:
		return []brep.Point{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}}
	case Tetrahedron4:
		return []brep.Point{{}, {X: 1}, {Y: 1}, {Z: 1}}
	case Hexahedron8:
		return []brep.Point{
			{X: -1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: -1}, {X: 1, Y: 1, Z: -1}, {X: -1, Y: 1, Z: -1},
			{X: -1, Y: -1, Z: 1}, {X: 1, Y: -1, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: -1, Y: 1, Z: 1},
		}
	default:
		return nil
	}
}

// edges lists the corner pairs joined by an element edge.
func (k Kind) edges() [][2]int {
	switch k {
	case Line2:
		return [][2]int{{0, 1}}
	case Triangle3:
		return [][2]int{{0, 1}, {1, 2}, {2, 0}}
	case Quadrilateral4:
		return [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}}
	case Tetrahedron4:
		return [][2]int{{0, 1}, {1, 2}, {2, 0}, {0, 3}, {1, 3}, {2, 3}}
	case Hexahedron8:
		return [][2]int{
			{0, 1}, {1, 2}, {2, 3}, {3, 0},
			{4, 5}, {5, 6}, {6, 7}, {7, 4},
			{0, 4}, {1, 5}, {2, 6}, {3, 7},
		}
	default:
		return nil
	}
}

// shapeFunctions evaluates the linear shape functions at local point xi.
func (k Kind) shapeFunctions(xi brep.Point) []float64 {
	switch k {
	case Triangle3:
		return []float64{1 - xi.X - xi.Y, xi.X, xi.Y}
	case Tetrahedron4:
		return []float64{1 - xi.X - xi.Y - xi.Z, xi.X, xi.Y, xi.Z}
	}
	// Tensor-product kinds: N_i = prod over axes of (1 + xi_a * c_a) / 2.
	corners := k.corners()
	dim := k.LocalDimension()
	n := make([]float64, len(corners))
	for i, c := range corners {
		v := 1.0
		for a := 0; a < dim; a++ {
			v *= (1 + brep.Component(xi, a)*brep.Component(c, a)) / 2
		}
		n[i] = v
	}
	return n
}
