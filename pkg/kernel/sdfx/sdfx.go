// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library.
package sdfx

import (
	"fmt"
	"math"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/brep/pkg/brep"
	"github.com/chazu/brep/pkg/kernel"
	"github.com/chazu/brep/pkg/levelset"
)

// Compile-time interface check.
var _ kernel.Kernel = (*SdfxKernel)(nil)

const (
	// defaultMeshCells controls marching cubes tessellation resolution.
	defaultMeshCells = 200

	// defaultGradientStep is the finite-difference step for SDF gradients.
	defaultGradientStep = 1e-6
)

// sdfxSolid wraps an sdf.SDF3 to implement kernel.Solid.
type sdfxSolid struct {
	s    sdf.SDF3
	name string
}

// BoundingBox returns the axis-aligned bounding box.
func (s *sdfxSolid) BoundingBox() (min, max [3]float64) {
	bb := s.s.BoundingBox()
	min = [3]float64{bb.Min.X, bb.Min.Y, bb.Min.Z}
	max = [3]float64{bb.Max.X, bb.Max.Y, bb.Max.Z}
	return min, max
}

func (s *sdfxSolid) String() string { return s.name }

// SdfxKernel implements kernel.Kernel using sdfx.
type SdfxKernel struct {
	meshCells int
	step      float64
}

// Option configures an SdfxKernel.
type Option func(*SdfxKernel)

// WithMeshCells sets the marching cubes resolution along the longest side.
func WithMeshCells(n int) Option {
	return func(k *SdfxKernel) {
		if n <= 0 {
			panic(fmt.Sprintf("sdfx: non-positive mesh cell count %d", n))
		}
		k.meshCells = n
	}
}

// WithGradientStep sets the finite-difference step used for gradients of
// solids that have no analytic form.
func WithGradientStep(h float64) Option {
	return func(k *SdfxKernel) {
		if !(h > 0) {
			panic(fmt.Sprintf("sdfx: non-positive gradient step %g", h))
		}
		k.step = h
	}
}

// New returns a new SdfxKernel.
func New(opts ...Option) *SdfxKernel {
	k := &SdfxKernel{meshCells: defaultMeshCells, step: defaultGradientStep}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// unwrap extracts the underlying sdf.SDF3 from a kernel.Solid.
func unwrap(s kernel.Solid) *sdfxSolid {
	return s.(*sdfxSolid)
}

// wrap creates a kernel.Solid from an sdf.SDF3.
func wrap(s sdf.SDF3, format string, args ...any) kernel.Solid {
	return &sdfxSolid{s: s, name: fmt.Sprintf(format, args...)}
}

// Box creates a box with the given dimensions, centred at the origin.
func (k *SdfxKernel) Box(x, y, z float64) kernel.Solid {
	s, err := sdf.Box3D(v3.Vec{X: x, Y: y, Z: z}, 0)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Box3D: %v", err))
	}
	return wrap(s, "box(%g, %g, %g)", x, y, z)
}

// Cylinder creates a cylinder along Z with the given height and radius,
// centred at the origin.
func (k *SdfxKernel) Cylinder(height, radius float64) kernel.Solid {
	s, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Cylinder3D: %v", err))
	}
	return wrap(s, "cylinder(h=%g, r=%g)", height, radius)
}

// Sphere creates a sphere centred at the origin.
func (k *SdfxKernel) Sphere(radius float64) kernel.Solid {
	s, err := sdf.Sphere3D(radius)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Sphere3D: %v", err))
	}
	return wrap(s, "sphere(r=%g)", radius)
}

// Union returns the union of two solids.
func (k *SdfxKernel) Union(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Union3D(unwrap(a).s, unwrap(b).s), "union(%s, %s)", unwrap(a), unwrap(b))
}

// Difference returns the difference a - b.
func (k *SdfxKernel) Difference(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Difference3D(unwrap(a).s, unwrap(b).s), "difference(%s, %s)", unwrap(a), unwrap(b))
}

// Intersection returns the intersection of two solids.
func (k *SdfxKernel) Intersection(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Intersect3D(unwrap(a).s, unwrap(b).s), "intersection(%s, %s)", unwrap(a), unwrap(b))
}

// Translate moves a solid by (x, y, z).
func (k *SdfxKernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	m := sdf.Translate3d(v3.Vec{X: x, Y: y, Z: z})
	return wrap(sdf.Transform3D(unwrap(s).s, m), "translate(%s, %g, %g, %g)", unwrap(s), x, y, z)
}

// Rotate rotates a solid by Euler angles (degrees) around X, Y, Z axes.
func (k *SdfxKernel) Rotate(s kernel.Solid, x, y, z float64) kernel.Solid {
	xRad := x * math.Pi / 180.0
	yRad := y * math.Pi / 180.0
	zRad := z * math.Pi / 180.0

	m := sdf.RotateZ(zRad).Mul(sdf.RotateY(yRad)).Mul(sdf.RotateX(xRad))
	return wrap(sdf.Transform3D(unwrap(s).s, m), "rotate(%s, %g, %g, %g)", unwrap(s), x, y, z)
}

// LevelSet returns the solid's signed distance as a level set. A solid made
// by FromLevelSet hands back a copy of the original level set, keeping its
// analytic derivatives; opts are applied on top of its settings.
func (k *SdfxKernel) LevelSet(s kernel.Solid, opts ...levelset.Option) *levelset.LevelSet {
	solid := unwrap(s)
	if b, ok := solid.s.(*boundedLevelSet); ok {
		base := []levelset.Option{
			levelset.WithTolerance(b.ls.GetTolerance()),
			levelset.WithMaxIterations(b.ls.MaxIterations()),
		}
		return levelset.New(b.ls.Field().Clone(), append(base, opts...)...)
	}
	return levelset.New(NewField(solid.s, solid.name, k.step), opts...)
}

// Region returns the solid as a membership-only BRep: a point is inside
// where the signed distance is negative.
func (k *SdfxKernel) Region(s kernel.Solid) brep.BRep {
	solid := unwrap(s)
	return brep.NewRegion(solid.name, 3, func(p brep.Point) bool {
		return solid.s.Evaluate(p) < 0
	})
}

// FromLevelSet wraps a copy of ls as a solid with the given bounds. The
// field is not a true distance, which only matters to operations that rely
// on distances (rounding, offsets); booleans and meshing only need the sign.
func (k *SdfxKernel) FromLevelSet(ls *levelset.LevelSet, min, max [3]float64) kernel.Solid {
	b := &boundedLevelSet{
		ls: ls.Clone(),
		bb: sdf.Box3{
			Min: v3.Vec{X: min[0], Y: min[1], Z: min[2]},
			Max: v3.Vec{X: max[0], Y: max[1], Z: max[2]},
		},
	}
	return wrap(b, "%s", ls)
}

// ToMesh converts a solid to a triangle mesh using marching cubes.
func (k *SdfxKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	solid := unwrap(s)

	renderer := render.NewMarchingCubesUniform(k.meshCells)
	triangles := render.ToTriangles(solid.s, renderer)

	numTri := len(triangles)
	numVerts := numTri * 3

	vertices := make([]float32, 0, numVerts*3)
	normals := make([]float32, 0, numVerts*3)
	indices := make([]uint32, 0, numVerts)

	for i, tri := range triangles {
		// Compute face normal.
		n := tri.Normal()
		nx := float32(n.X)
		ny := float32(n.Y)
		nz := float32(n.Z)

		for j := 0; j < 3; j++ {
			v := tri[j]
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, nx, ny, nz)
			indices = append(indices, uint32(i*3+j))
		}
	}

	return &kernel.Mesh{
		Vertices: vertices,
		Normals:  normals,
		Indices:  indices,
		Name:     solid.name,
	}, nil
}
