package brep

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
	"gonum.org/v1/gonum/mat"
)

// Point is a position in 3D space. Two-dimensional shapes ignore Z.
type Point = v3.Vec

// Vector is a free 3D vector (gradients, normals, displacements).
type Vector = v3.Vec

// NewPoint returns the point (x, y, z).
func NewPoint(x, y, z float64) Point {
	return Point{X: x, Y: y, Z: z}
}

// Component returns coordinate i (0, 1 or 2) of p.
func Component(p Point, i int) float64 {
	switch i {
	case 0:
		return p.X
	case 1:
		return p.Y
	case 2:
		return p.Z
	default:
		panic("brep: point component index out of range")
	}
}

// NewMatrix returns a zeroed 3x3 matrix, the shape of every Jacobian
// produced by this package and its implementations.
func NewMatrix() *mat.Dense {
	return mat.NewDense(3, 3, nil)
}
