package sdfx

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"

	"github.com/chazu/brep/pkg/brep"
	"github.com/chazu/brep/pkg/levelset"
)

// Compile-time interface checks.
var (
	_ levelset.Field           = (*Field)(nil)
	_ levelset.GradientDeriver = (*Field)(nil)
	_ levelset.Projector       = (*Field)(nil)
)

const (
	// projectIterations bounds the Newton steps of ProjectOnSurface.
	projectIterations = 32
	// projectTolerance is the |phi| at which projection stops.
	projectTolerance = 1e-9
)

// Field is a level set field backed by an sdfx signed distance function.
// Derivatives are central finite differences. The sdfx tree is immutable, so
// clones share it.
type Field struct {
	s    sdf.SDF3
	name string
	step float64
}

// NewField returns a field evaluating s, differentiated with step h.
func NewField(s sdf.SDF3, name string, h float64) *Field {
	return &Field{s: s, name: name, step: h}
}

func (f *Field) String() string { return "SDF Level Set " + f.name }

func (f *Field) WorkingSpaceDimension() int { return 3 }

func (f *Field) Clone() levelset.Field {
	cp := *f
	return &cp
}

func (f *Field) Value(p brep.Point) float64 {
	return f.s.Evaluate(p)
}

func (f *Field) eval(x []float64) float64 {
	return f.s.Evaluate(brep.NewPoint(x[0], x[1], x[2]))
}

func (f *Field) settings() *fd.Settings {
	return &fd.Settings{Formula: fd.Central, Step: f.step}
}

func (f *Field) Gradient(p brep.Point) brep.Vector {
	g := fd.Gradient(nil, f.eval, []float64{p.X, p.Y, p.Z}, f.settings())
	return brep.NewPoint(g[0], g[1], g[2])
}

// GradientDerivatives returns the finite-difference Hessian of the distance.
// Second differences use the square root of the gradient step.
func (f *Field) GradientDerivatives(p brep.Point) (*mat.Dense, error) {
	h := mat.NewSymDense(3, nil)
	fd.Hessian(h, f.eval, []float64{p.X, p.Y, p.Z}, &fd.Settings{Step: math.Sqrt(f.step)})
	jac := brep.NewMatrix()
	jac.Copy(h)
	return jac, nil
}

// ProjectOnSurface walks p onto the zero set with Newton steps along the
// gradient. A vanishing gradient is a precondition failure, as is a walk
// that does not reach the surface.
func (f *Field) ProjectOnSurface(p brep.Point) (brep.Point, error) {
	for i := 0; i < projectIterations; i++ {
		phi := f.Value(p)
		if math.Abs(phi) < projectTolerance {
			return p, nil
		}
		g := f.Gradient(p)
		gg := g.Dot(g)
		if gg == 0 {
			return brep.Point{}, brep.Precondition("cannot project (%g, %g, %g) onto %s: zero gradient", p.X, p.Y, p.Z, f)
		}
		p = p.Sub(g.MulScalar(phi / gg))
	}
	return brep.Point{}, brep.Precondition("projection onto %s did not settle within %d steps", f, projectIterations)
}

func (f *Field) ProjectionDerivatives(brep.Point) (*mat.Dense, error) {
	return nil, brep.Unimplemented("ProjectionDerivatives", f.String())
}
