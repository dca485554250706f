package levelset

import (
	"fmt"
	"math"

	"github.com/chazu/brep/pkg/brep"
	"gonum.org/v1/gonum/mat"
)

// Compile-time interface checks.
var (
	_ Field     = (*Spherical)(nil)
	_ Projector = (*Spherical)(nil)
)

// Spherical is the sphere of radius r around (cx, cy, cz), with
// phi = |P - c|^2 - r^2.
//
// It has no closed-form gradient Jacobian or projection Jacobian; the
// corresponding LevelSet queries report ErrUnimplementedCapability.
type Spherical struct {
	cx, cy, cz, r float64
}

// NewSpherical returns the sphere field. A negative radius panics.
func NewSpherical(cx, cy, cz, r float64) *Spherical {
	if r < 0 {
		panic(fmt.Sprintf("levelset: negative sphere radius %g", r))
	}
	return &Spherical{cx: cx, cy: cy, cz: cz, r: r}
}

// SphericalLevelSet returns a LevelSet over NewSpherical(cx, cy, cz, r).
func SphericalLevelSet(cx, cy, cz, r float64, opts ...Option) *LevelSet {
	return New(NewSpherical(cx, cy, cz, r), opts...)
}

// Center returns the sphere center.
func (s *Spherical) Center() brep.Point { return brep.NewPoint(s.cx, s.cy, s.cz) }

// Radius returns the sphere radius.
func (s *Spherical) Radius() float64 { return s.r }

func (s *Spherical) String() string {
	return fmt.Sprintf("Spherical Level Set cX: %g, cY: %g, cZ: %g, R: %g", s.cx, s.cy, s.cz, s.r)
}

func (s *Spherical) WorkingSpaceDimension() int { return 3 }

func (s *Spherical) Clone() Field {
	cp := *s
	return &cp
}

func (s *Spherical) Value(p brep.Point) float64 {
	return sq(p.X-s.cx) + sq(p.Y-s.cy) + sq(p.Z-s.cz) - sq(s.r)
}

func (s *Spherical) Gradient(p brep.Point) brep.Vector {
	return brep.Vector{X: 2 * (p.X - s.cx), Y: 2 * (p.Y - s.cy), Z: 2 * (p.Z - s.cz)}
}

// ProjectOnSurface projects p radially onto the sphere. The center is
// rejected.
func (s *Spherical) ProjectOnSurface(p brep.Point) (brep.Point, error) {
	length := math.Sqrt(sq(p.X-s.cx) + sq(p.Y-s.cy) + sq(p.Z-s.cz))
	if length == 0 {
		return brep.Point{}, brep.Precondition("cannot project the center (%g, %g, %g) of %s", s.cx, s.cy, s.cz, s)
	}
	return brep.Point{
		X: (p.X-s.cx)*s.r/length + s.cx,
		Y: (p.Y-s.cy)*s.r/length + s.cy,
		Z: (p.Z-s.cz)*s.r/length + s.cz,
	}, nil
}

func (s *Spherical) ProjectionDerivatives(brep.Point) (*mat.Dense, error) {
	return nil, brep.Unimplemented("ProjectionDerivatives", s.String())
}
