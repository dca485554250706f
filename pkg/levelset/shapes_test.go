package levelset_test

import (
	"errors"
	"math"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/chazu/brep/pkg/brep"
	"github.com/chazu/brep/pkg/levelset"
)

// --- Circular ---

func TestCircularValueAndProjection(t *testing.T) {
	ls := levelset.CircularLevelSet(0, 0, 5)
	assert.Equal(t, 0.0, ls.GetValue(pt(5, 0, 0)))
	assert.Equal(t, -25.0, ls.GetValue(pt(0, 0, 0)))
	// Z does not take part in a planar shape.
	assert.Equal(t, ls.GetValue(pt(3, 4, 0)), ls.GetValue(pt(3, 4, 17)))

	proj, err := ls.ProjectOnSurface(pt(10, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, pt(5, 0, 0), proj)

	proj, err = ls.ProjectOnSurface(pt(-3, 4, 2))
	require.NoError(t, err)
	assert.InDelta(t, -3, proj.X, 1e-12)
	assert.InDelta(t, 4, proj.Y, 1e-12)
	assert.Equal(t, 0.0, proj.Z)

	assert.Equal(t, 2, ls.WorkingSpaceDimension())
}

func TestCircularGradient(t *testing.T) {
	ls := levelset.CircularLevelSet(1, 2, 3)
	assert.Equal(t, pt(6, 8, 0), ls.GetGradient(pt(4, 6, 9)))

	jac, err := ls.GetNormalDerivatives(pt(4, 6, 9))
	require.NoError(t, err)
	want := mat.NewDense(3, 3, []float64{
		2, 0, 0,
		0, 2, 0,
		0, 0, 0,
	})
	assert.True(t, mat.Equal(want, jac), "got %v", mat.Formatted(jac))
}

func TestCircularProjectionDerivatives(t *testing.T) {
	// d = (3, 4), length 5, dlength = (6, 8), R = 3
	ls := levelset.CircularLevelSet(1, 2, 3)
	jac, err := ls.ProjectionDerivatives(pt(4, 6, 0))
	require.NoError(t, err)

	want := mat.NewDense(3, 3, []float64{
		3.0/5 - 3*3*6/25.0, -3 * 3 * 8 / 25.0, 0,
		-4 * 3 * 6 / 25.0, 3.0/5 - 4*3*8/25.0, 0,
		0, 0, 0,
	})
	assert.True(t, mat.EqualApprox(want, jac, 1e-14), "got %v", mat.Formatted(jac))
	assert.InDelta(t, -1.56, jac.At(0, 0), 1e-14)
	assert.InDelta(t, -2.88, jac.At(0, 1), 1e-14)
	assert.InDelta(t, -2.88, jac.At(1, 0), 1e-14)
	assert.InDelta(t, -3.24, jac.At(1, 1), 1e-14)
}

func TestCircularProjectionAtCenter(t *testing.T) {
	ls := levelset.CircularLevelSet(1, 1, 2)

	_, err := ls.ProjectOnSurface(pt(1, 1, 5))
	assert.True(t, errors.Is(err, brep.ErrPreconditionViolation))

	_, err = ls.ProjectionDerivatives(pt(1, 1, 0))
	assert.True(t, errors.Is(err, brep.ErrPreconditionViolation))
}

func TestCircularGeneratePoints(t *testing.T) {
	c := levelset.NewCircular(1, -1, 2)

	points := slices.Collect(c.GenerateFullCircle(4))
	require.Len(t, points, 4)
	want := []brep.Point{pt(3, -1, 0), pt(1, 1, 0), pt(-1, -1, 0), pt(1, -3, 0)}
	for i := range want {
		assert.InDelta(t, want[i].X, points[i].X, 1e-12)
		assert.InDelta(t, want[i].Y, points[i].Y, 1e-12)
		assert.Equal(t, 0.0, points[i].Z)
	}

	ls := levelset.New(c)
	for p := range c.GeneratePoints(0.3, 2.1, 25) {
		assert.InDelta(t, 0, ls.GetValue(p), 1e-12)
	}

	// The sequence is restartable and stops early on request.
	seq := c.GeneratePoints(0, math.Pi, 10)
	assert.Equal(t, slices.Collect(seq), slices.Collect(seq))
	n := 0
	for range seq {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, n)

	assert.Empty(t, slices.Collect(c.GenerateFullCircle(0)))
}

func TestCircularAccessors(t *testing.T) {
	c := levelset.NewCircular(1, 2, 3)
	assert.Equal(t, pt(1, 2, 0), c.Center())
	assert.Equal(t, 3.0, c.Radius())
	assert.Equal(t, "Circular Level Set cX: 1, cY: 2, R: 3", c.String())
}

// --- Spherical ---

func TestSphericalValueAndProjection(t *testing.T) {
	ls := levelset.SphericalLevelSet(0, 0, 0, 2)
	assert.Equal(t, -4.0, ls.GetValue(pt(0, 0, 0)))
	assert.Equal(t, 0.0, ls.GetValue(pt(0, 2, 0)))
	assert.Equal(t, pt(2, 4, 6), ls.GetGradient(pt(1, 2, 3)))

	proj, err := ls.ProjectOnSurface(pt(0, 0, 8))
	require.NoError(t, err)
	assert.Equal(t, pt(0, 0, 2), proj)

	_, err = ls.ProjectOnSurface(pt(0, 0, 0))
	require.Error(t, err)
	assert.True(t, errors.Is(err, brep.ErrPreconditionViolation))
}

func TestSphericalMissingCapabilities(t *testing.T) {
	ls := levelset.SphericalLevelSet(0, 0, 0, 2)

	jac, err := ls.GetNormalDerivatives(pt(1, 0, 0))
	assert.Nil(t, jac)
	assert.True(t, errors.Is(err, brep.ErrUnimplementedCapability))
	assert.Contains(t, err.Error(), "GetGradientDerivatives")

	jac, err = ls.ProjectionDerivatives(pt(1, 0, 0))
	assert.Nil(t, jac)
	assert.True(t, errors.Is(err, brep.ErrUnimplementedCapability))
	assert.Contains(t, err.Error(), "ProjectionDerivatives on Spherical Level Set")
}

// --- capability checks on a bare field ---

// bareField only provides the mandatory capabilities.
type bareField struct{}

func (bareField) Value(p brep.Point) float64 { return p.X }
func (bareField) Gradient(brep.Point) brep.Vector { return pt(1, 0, 0) }
func (bareField) WorkingSpaceDimension() int { return 3 }
func (f bareField) Clone() levelset.Field { return f }
func (bareField) String() string { return "half space" }

func TestBareFieldReportsMissingCapabilities(t *testing.T) {
	ls := levelset.New(bareField{})

	_, err := ls.ProjectOnSurface(pt(1, 0, 0))
	assert.True(t, errors.Is(err, brep.ErrUnimplementedCapability))
	_, err = ls.ProjectionDerivatives(pt(1, 0, 0))
	assert.True(t, errors.Is(err, brep.ErrUnimplementedCapability))
	_, err = ls.GetGradientDerivatives(pt(1, 0, 0))
	assert.True(t, errors.Is(err, brep.ErrUnimplementedCapability))

	// Everything derived from value and gradient still works.
	r, err := ls.Bisect(pt(-1, 0, 0), pt(3, 0, 0), 1e-12)
	require.NoError(t, err)
	assert.InDelta(t, 0, r.X, 1e-12)
}

// --- Inverse ---

func TestInverseNegatesField(t *testing.T) {
	for name, inner := range shapes() {
		t.Run(name, func(t *testing.T) {
			inv := levelset.InverseLevelSet(inner.Clone())
			for _, p := range samplePoints() {
				assert.Equal(t, -inner.GetValue(p), inv.GetValue(p))
				assert.Equal(t, inner.GetGradient(p).MulScalar(-1), inv.GetGradient(p))
			}
			assert.Equal(t, inner.WorkingSpaceDimension(), inv.WorkingSpaceDimension())
		})
	}
}

func TestInverseFlipsClassification(t *testing.T) {
	ls := levelset.CircularLevelSet(0, 0, 5)
	inv := levelset.InverseLevelSet(ls.Clone())

	tests := []struct {
		name     string
		points   []brep.Point
		original brep.CutStatus
		inverted brep.CutStatus
	}{
		{"in becomes out", []brep.Point{pt(0, 0, 0), pt(1, 1, 0)}, brep.In, brep.Out},
		{"out becomes in", []brep.Point{pt(10, 0, 0), pt(0, 9, 0)}, brep.Out, brep.In},
		{"cut stays cut", []brep.Point{pt(0, 0, 0), pt(10, 0, 0)}, brep.Cut, brep.Cut},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ls.CutStatus(tt.points)
			require.NoError(t, err)
			assert.Equal(t, tt.original, got)

			got, err = inv.CutStatus(tt.points)
			require.NoError(t, err)
			assert.Equal(t, tt.inverted, got)
		})
	}
}

func TestInverseDerivativesAndProjection(t *testing.T) {
	inv := levelset.InverseLevelSet(levelset.CircularLevelSet(0, 0, 5))

	jac, err := inv.GetNormalDerivatives(pt(1, 1, 0))
	require.NoError(t, err)
	assert.Equal(t, -2.0, jac.At(0, 0))
	assert.Equal(t, -2.0, jac.At(1, 1))
	assert.Equal(t, 0.0, jac.At(2, 2))

	proj, err := inv.ProjectOnSurface(pt(10, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, pt(5, 0, 0), proj)

	_, err = inv.ProjectionDerivatives(pt(3, 4, 0))
	require.NoError(t, err)

	sphere := levelset.InverseLevelSet(levelset.SphericalLevelSet(0, 0, 0, 1))
	_, err = sphere.GetNormalDerivatives(pt(1, 0, 0))
	assert.True(t, errors.Is(err, brep.ErrUnimplementedCapability))
	_, err = sphere.ProjectOnSurface(pt(0, 0, 0))
	assert.True(t, errors.Is(err, brep.ErrPreconditionViolation))
}

func TestInverseCloneIsDeep(t *testing.T) {
	inner := levelset.SphericalLevelSet(0, 0, 0, 1, levelset.WithTolerance(0.01))
	field := levelset.NewInverse(inner)
	inv := levelset.New(field)

	c := inv.Clone()
	cf := c.Field().(*levelset.Inverse)

	// Retargeting the clone must not affect the original.
	cf.SetLevelSet(levelset.SphericalLevelSet(0, 0, 0, 3))
	assert.Equal(t, -(0 - 1.0), inv.GetValue(pt(0, 0, 0)))
	assert.Equal(t, -(0 - 9.0), c.GetValue(pt(0, 0, 0)))

	// The accessor hands out a copy, not the owned instance.
	got := field.LevelSet()
	got.SetTolerance(0.5)
	assert.Equal(t, 0.01, field.LevelSet().GetTolerance())
	assert.NotSame(t, got, field.LevelSet())

	// Nested inversions clone all the way down.
	double := levelset.InverseLevelSet(levelset.InverseLevelSet(levelset.CircularLevelSet(0, 0, 2)))
	dc := double.Clone()
	for _, p := range samplePoints() {
		assert.Equal(t, double.GetValue(p), dc.GetValue(p))
	}
	assert.Contains(t, dc.String(), "Inverse Level Set of (Inverse Level Set of (Circular Level Set")
}

func TestInverseSetLevelSetWhileQuerying(t *testing.T) {
	field := levelset.NewInverse(levelset.SphericalLevelSet(0, 0, 0, 1))
	inv := levelset.New(field)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				v := inv.GetValue(pt(0, 0, 0))
				assert.True(t, v == 1 || v == 4, "value %g", v)
			}
		}()
	}
	for j := 0; j < 50; j++ {
		r := 1.0
		if j%2 == 0 {
			r = 2
		}
		field.SetLevelSet(levelset.SphericalLevelSet(0, 0, 0, r))
	}
	wg.Wait()

	assert.Panics(t, func() { field.SetLevelSet(nil) })
	assert.Panics(t, func() { levelset.NewInverse(nil) })
}
