package brep

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositions(t *testing.T) {
	e := &fakeElement{
		initial: [2]Point{NewPoint(0, 0, 0), NewPoint(1, 0, 0)},
		current: [2]Point{NewPoint(0, 0, 2), NewPoint(1, 0, 2)},
	}

	ref, err := Positions(e, Reference)
	require.NoError(t, err)
	assert.Equal(t, []Point{NewPoint(0, 0, 0), NewPoint(1, 0, 0)}, ref)

	cur, err := Positions(e, Current)
	require.NoError(t, err)
	assert.Equal(t, []Point{NewPoint(0, 0, 2), NewPoint(1, 0, 2)}, cur)

	for _, cfg := range []Configuration{-1, 2, 99} {
		_, err := Positions(e, cfg)
		assert.True(t, errors.Is(err, ErrInvalidConfiguration), "configuration %d", cfg)
	}
}

func TestPointSet(t *testing.T) {
	s := PointSet{NewPoint(1, 2, 3)}
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, s.InitialPosition(0), s.Position(0))
}

func TestComponent(t *testing.T) {
	p := NewPoint(1, 2, 3)
	assert.Equal(t, 1.0, Component(p, 0))
	assert.Equal(t, 2.0, Component(p, 1))
	assert.Equal(t, 3.0, Component(p, 2))
	assert.Panics(t, func() { Component(p, 3) })
}

func TestTolerance(t *testing.T) {
	var tol Tolerance
	assert.Equal(t, 0.0, tol.GetTolerance())

	tol.SetTolerance(1e-8)
	assert.Equal(t, 1e-8, tol.GetTolerance())

	assert.Panics(t, func() { tol.SetTolerance(-1) })
	assert.Panics(t, func() { tol.SetTolerance(math.NaN()) })
	assert.Equal(t, 1e-8, tol.GetTolerance())
}

func TestToleranceConcurrentAccess(t *testing.T) {
	var tol Tolerance
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(v float64) {
			defer wg.Done()
			tol.SetTolerance(v)
		}(float64(i))
		go func() {
			defer wg.Done()
			_ = tol.GetTolerance()
		}()
	}
	wg.Wait()
	assert.GreaterOrEqual(t, tol.GetTolerance(), 0.0)
}
