package levelset

import (
	"fmt"
	"math"

	"github.com/chazu/brep/pkg/brep"
	"gonum.org/v1/gonum/mat"
)

// Compile-time interface checks.
var (
	_ brep.BRep             = (*LevelSet)(nil)
	_ brep.ImplicitFunction = (*LevelSet)(nil)
)

const (
	// DefaultTolerance is the geometric tolerance of a new LevelSet.
	DefaultTolerance = 1e-10

	// DefaultMaxIterations caps Bisect. Halving the unit interval 200 times
	// is far below float64 resolution, so only a field that never meets the
	// stopping criterion reaches it.
	DefaultMaxIterations = 200
)

// LevelSet is a BRep and an ImplicitFunction at once. It is safe for
// concurrent queries; SetTolerance may race with queries without harm.
type LevelSet struct {
	brep.Tolerance
	field   Field
	maxIter int
}

// Option configures a LevelSet.
type Option func(*LevelSet)

// WithTolerance sets the initial geometric tolerance.
func WithTolerance(tol float64) Option {
	return func(ls *LevelSet) { ls.SetTolerance(tol) }
}

// WithMaxIterations sets the bisection iteration cap.
func WithMaxIterations(n int) Option {
	return func(ls *LevelSet) {
		if n <= 0 {
			panic(fmt.Sprintf("levelset: non-positive iteration cap %d", n))
		}
		ls.maxIter = n
	}
}

// New returns a LevelSet over f.
func New(f Field, opts ...Option) *LevelSet {
	if f == nil {
		panic("levelset: New with nil field")
	}
	ls := &LevelSet{field: f, maxIter: DefaultMaxIterations}
	ls.SetTolerance(DefaultTolerance)
	for _, opt := range opts {
		opt(ls)
	}
	return ls
}

// Field returns the shape behind the level set.
func (ls *LevelSet) Field() Field { return ls.field }

// MaxIterations returns the bisection iteration cap.
func (ls *LevelSet) MaxIterations() int { return ls.maxIter }

func (ls *LevelSet) String() string { return ls.field.String() }

// Clone returns a deep copy with the same tolerance and iteration cap.
func (ls *LevelSet) Clone() *LevelSet {
	return New(ls.field.Clone(), WithTolerance(ls.GetTolerance()), WithMaxIterations(ls.maxIter))
}

// CloneBRep implements brep.BRep.
func (ls *LevelSet) CloneBRep() brep.BRep { return ls.Clone() }

// WorkingSpaceDimension returns the dimension of the shape.
func (ls *LevelSet) WorkingSpaceDimension() int { return ls.field.WorkingSpaceDimension() }

// GetValue evaluates phi at p.
func (ls *LevelSet) GetValue(p brep.Point) float64 { return ls.field.Value(p) }

// GetValueXYZ evaluates phi at (x, y, z).
func (ls *LevelSet) GetValueXYZ(x, y, z float64) float64 {
	return ls.GetValue(brep.NewPoint(x, y, z))
}

// GetGradient evaluates grad phi at p.
func (ls *LevelSet) GetGradient(p brep.Point) brep.Vector { return ls.field.Gradient(p) }

// GetGradientXYZ evaluates grad phi at (x, y, z).
func (ls *LevelSet) GetGradientXYZ(x, y, z float64) brep.Vector {
	return ls.GetGradient(brep.NewPoint(x, y, z))
}

// GetGradientDerivatives returns the Jacobian of grad phi at p.
func (ls *LevelSet) GetGradientDerivatives(p brep.Point) (*mat.Dense, error) {
	d, ok := ls.field.(GradientDeriver)
	if !ok {
		return nil, brep.Unimplemented("GetGradientDerivatives", ls.String())
	}
	return d.GradientDerivatives(p)
}

// IsInside reports phi(p) < 0.
func (ls *LevelSet) IsInside(p brep.Point) bool {
	return ls.GetValue(p) < 0
}

// IsOnBoundary reports |phi(p)| < tol. A point where phi vanishes exactly is
// on the boundary for every tolerance, including zero.
func (ls *LevelSet) IsOnBoundary(p brep.Point, tol float64) (bool, error) {
	phi := ls.GetValue(p)
	return phi == 0 || math.Abs(phi) < tol, nil
}

// GetNormal returns grad phi at p. It is not normalized.
func (ls *LevelSet) GetNormal(p brep.Point) (brep.Vector, error) {
	return ls.GetGradient(p), nil
}

// GetNormalDerivatives returns the Jacobian of the normal field, i.e. of
// grad phi.
func (ls *LevelSet) GetNormalDerivatives(p brep.Point) (*mat.Dense, error) {
	return ls.GetGradientDerivatives(p)
}

// ProjectOnSurface projects p onto the zero set using the shape's closed form.
func (ls *LevelSet) ProjectOnSurface(p brep.Point) (brep.Point, error) {
	pr, ok := ls.field.(Projector)
	if !ok {
		return brep.Point{}, brep.Unimplemented("ProjectOnSurface", ls.String())
	}
	return pr.ProjectOnSurface(p)
}

// ProjectionDerivatives returns the Jacobian of ProjectOnSurface at p.
func (ls *LevelSet) ProjectionDerivatives(p brep.Point) (*mat.Dense, error) {
	pr, ok := ls.field.(Projector)
	if !ok {
		return nil, brep.Unimplemented("ProjectionDerivatives", ls.String())
	}
	return pr.ProjectionDerivatives(p)
}
