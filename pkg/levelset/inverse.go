package levelset

import (
	"fmt"
	"sync"

	"github.com/chazu/brep/pkg/brep"
	"gonum.org/v1/gonum/mat"
)

// Compile-time interface checks.
var (
	_ Field           = (*Inverse)(nil)
	_ GradientDeriver = (*Inverse)(nil)
	_ Projector       = (*Inverse)(nil)
)

// Inverse swaps inside and outside of a wrapped level set by negating its
// field. The zero set does not move, so cut elements stay cut.
//
// Inverse owns its inner level set: Clone copies it recursively, and
// SetLevelSet is serialized against concurrent queries.
type Inverse struct {
	mu    sync.RWMutex
	inner *LevelSet
}

// NewInverse returns the inverse field of inner and takes ownership of it.
func NewInverse(inner *LevelSet) *Inverse {
	if inner == nil {
		panic("levelset: NewInverse with nil level set")
	}
	return &Inverse{inner: inner}
}

// InverseLevelSet returns a LevelSet over NewInverse(inner).
func InverseLevelSet(inner *LevelSet, opts ...Option) *LevelSet {
	return New(NewInverse(inner), opts...)
}

// LevelSet returns a copy of the wrapped level set.
func (v *Inverse) LevelSet() *LevelSet {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.inner.Clone()
}

// SetLevelSet replaces the wrapped level set and takes ownership of ls. It
// waits for in-flight queries to finish.
func (v *Inverse) SetLevelSet(ls *LevelSet) {
	if ls == nil {
		panic("levelset: SetLevelSet with nil level set")
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.inner = ls
}

func (v *Inverse) String() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return fmt.Sprintf("Inverse Level Set of (%s)", v.inner)
}

func (v *Inverse) WorkingSpaceDimension() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.inner.WorkingSpaceDimension()
}

// Clone returns an Inverse over a deep copy of the wrapped level set.
func (v *Inverse) Clone() Field {
	return NewInverse(v.LevelSet())
}

func (v *Inverse) Value(p brep.Point) float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return -v.inner.GetValue(p)
}

func (v *Inverse) Gradient(p brep.Point) brep.Vector {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.inner.GetGradient(p).MulScalar(-1)
}

// GradientDerivatives negates the wrapped shape's gradient Jacobian.
func (v *Inverse) GradientDerivatives(p brep.Point) (*mat.Dense, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	jac, err := v.inner.GetGradientDerivatives(p)
	if err != nil {
		return nil, err
	}
	jac.Scale(-1, jac)
	return jac, nil
}

// ProjectOnSurface uses the wrapped shape's projection; inversion leaves the
// zero set unchanged.
func (v *Inverse) ProjectOnSurface(p brep.Point) (brep.Point, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.inner.ProjectOnSurface(p)
}

// ProjectionDerivatives uses the wrapped shape's projection Jacobian.
func (v *Inverse) ProjectionDerivatives(p brep.Point) (*mat.Dense, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.inner.ProjectionDerivatives(p)
}
