// Package kernel defines the abstract solid-modelling kernel that feeds
// shapes into the classification layer. A kernel builds solids from
// primitives, booleans and transforms, then exposes them as level sets or
// membership-only regions. Implementations (sdfx) live in sub-packages so
// the rest of the system never imports a modelling library directly.
package kernel

import (
	"github.com/chazu/brep/pkg/brep"
	"github.com/chazu/brep/pkg/levelset"
)

// Solid is an opaque handle to a kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract geometry kernel interface.
type Kernel interface {
	// Primitives, centred at the origin.
	Box(x, y, z float64) Solid
	Cylinder(height, radius float64) Solid
	Sphere(radius float64) Solid

	// Boolean operations
	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid
	Intersection(a, b Solid) Solid

	// Transforms
	Translate(s Solid, x, y, z float64) Solid
	Rotate(s Solid, x, y, z float64) Solid // Euler angles in degrees

	// LevelSet returns s as a level set: negative inside, zero on the surface.
	LevelSet(s Solid, opts ...levelset.Option) *levelset.LevelSet
	// Region returns s as a BRep that only answers membership queries.
	Region(s Solid) brep.BRep
	// FromLevelSet turns ls into a solid bounded by [min, max], so that
	// analytic shapes can be combined and meshed like any other solid.
	FromLevelSet(ls *levelset.LevelSet, min, max [3]float64) Solid

	// Mesh output
	ToMesh(s Solid) (*Mesh, error)
}
