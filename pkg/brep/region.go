package brep

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Compile-time interface check.
var _ BRep = (*Region)(nil)

// Region is a BRep known only through a membership test, e.g. a solid from
// an external modeller that can answer "is this point inside" and nothing
// more. It classifies with the exact algorithm; surface queries are not
// available and report ErrUnimplementedCapability.
type Region struct {
	Tolerance
	name   string
	dim    int
	inside func(Point) bool
}

// NewRegion returns a Region of the given working-space dimension whose
// membership is decided by inside. inside must be safe for concurrent use.
func NewRegion(name string, dim int, inside func(Point) bool) *Region {
	if inside == nil {
		panic("brep: NewRegion with nil membership test")
	}
	return &Region{name: name, dim: dim, inside: inside}
}

func (r *Region) String() string {
	return fmt.Sprintf("Region(%s)", r.name)
}

// WorkingSpaceDimension returns the dimension given at construction.
func (r *Region) WorkingSpaceDimension() int { return r.dim }

// IsInside applies the membership test.
func (r *Region) IsInside(p Point) bool { return r.inside(p) }

// IsOnBoundary is not available for a membership-only region.
func (r *Region) IsOnBoundary(Point, float64) (bool, error) {
	return false, Unimplemented("IsOnBoundary", r.String())
}

// CutStatus classifies points with the exact algorithm.
func (r *Region) CutStatus(points []Point) (CutStatus, error) {
	return CutStatusOfPoints(r, points, r.GetTolerance())
}

// CutStatusOfGeometry classifies the corners of g in configuration cfg.
func (r *Region) CutStatusOfGeometry(g Geometry, cfg Configuration) (CutStatus, error) {
	points, err := Positions(g, cfg)
	if err != nil {
		return 0, err
	}
	return r.CutStatus(points)
}

// CutStatusBySampling classifies corners plus interior samples of g.
func (r *Region) CutStatusBySampling(g SampledGeometry, nsampling int, cfg Configuration) (CutStatus, error) {
	return CutStatusBySampling(r, g, nsampling, cfg)
}

func (r *Region) Bisect(Point, Point, float64) (Point, error) {
	return Point{}, Unimplemented("Bisect", r.String())
}

func (r *Region) GetNormal(Point) (Vector, error) {
	return Vector{}, Unimplemented("GetNormal", r.String())
}

func (r *Region) GetNormalDerivatives(Point) (*mat.Dense, error) {
	return nil, Unimplemented("GetNormalDerivatives", r.String())
}

func (r *Region) ProjectOnSurface(Point) (Point, error) {
	return Point{}, Unimplemented("ProjectOnSurface", r.String())
}

func (r *Region) ProjectionDerivatives(Point) (*mat.Dense, error) {
	return nil, Unimplemented("ProjectionDerivatives", r.String())
}

// CloneBRep returns a Region with the same membership test and tolerance.
func (r *Region) CloneBRep() BRep {
	c := NewRegion(r.name, r.dim, r.inside)
	c.SetTolerance(r.GetTolerance())
	return c
}
