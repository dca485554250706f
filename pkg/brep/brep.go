package brep

import "gonum.org/v1/gonum/mat"

// ImplicitFunction is a scalar field whose zero set is a boundary.
// Negative values are inside, positive values outside.
type ImplicitFunction interface {
	GetValue(p Point) float64
	GetGradient(p Point) Vector
}

// Insider answers strict membership queries.
type Insider interface {
	IsInside(p Point) bool
}

// BRep is a boundary representation able to classify points and geometries.
//
// Jacobians are 3x3 and organized row by output component:
//
//	[d N[0]/d P[0], d N[0]/d P[1], d N[0]/d P[2]]
//	[d N[1]/d P[0], d N[1]/d P[1], d N[1]/d P[2]]
//	[d N[2]/d P[0], d N[2]/d P[1], d N[2]/d P[2]]
type BRep interface {
	Insider

	SetTolerance(tol float64)
	GetTolerance() float64

	// WorkingSpaceDimension is 2 for planar shapes and 3 for solids.
	WorkingSpaceDimension() int

	// IsOnBoundary reports whether p lies on the boundary within tol.
	IsOnBoundary(p Point, tol float64) (bool, error)

	// CutStatus classifies a raw point set.
	CutStatus(points []Point) (CutStatus, error)

	// CutStatusOfGeometry classifies the corners of g in configuration cfg.
	CutStatusOfGeometry(g Geometry, cfg Configuration) (CutStatus, error)

	// CutStatusBySampling classifies the corners of g together with
	// nsampling interior samples, catching boundaries that pass through an
	// element without separating any two corners.
	CutStatusBySampling(g SampledGeometry, nsampling int, cfg Configuration) (CutStatus, error)

	// Bisect returns the intersection of the boundary with the segment p1-p2.
	Bisect(p1, p2 Point, tol float64) (Point, error)

	// GetNormal returns the (not necessarily unit) normal at p.
	GetNormal(p Point) (Vector, error)

	// GetNormalDerivatives returns the Jacobian of the normal field at p.
	GetNormalDerivatives(p Point) (*mat.Dense, error)

	// ProjectOnSurface returns the projection of p onto the boundary.
	ProjectOnSurface(p Point) (Point, error)

	// ProjectionDerivatives returns the Jacobian of the projection at p.
	ProjectionDerivatives(p Point) (*mat.Dense, error)

	// CloneBRep returns an independent copy sharing no mutable state.
	CloneBRep() BRep
}
