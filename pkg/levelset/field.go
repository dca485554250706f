package levelset

import (
	"github.com/chazu/brep/pkg/brep"
	"gonum.org/v1/gonum/mat"
)

// Field is the capability set every shape provides.
type Field interface {
	// Value evaluates phi at p.
	Value(p brep.Point) float64
	// Gradient evaluates grad phi at p.
	Gradient(p brep.Point) brep.Vector
	// WorkingSpaceDimension is 2 for planar shapes and 3 for solids.
	WorkingSpaceDimension() int
	// Clone returns a copy sharing no mutable state with the receiver.
	Clone() Field
	String() string
}

// GradientDeriver is implemented by shapes that know the Jacobian of their
// gradient field.
type GradientDeriver interface {
	GradientDerivatives(p brep.Point) (*mat.Dense, error)
}

// Projector is implemented by shapes with a closed-form projection onto
// their zero set.
type Projector interface {
	ProjectOnSurface(p brep.Point) (brep.Point, error)
	ProjectionDerivatives(p brep.Point) (*mat.Dense, error)
}
