package levelset

import (
	"fmt"
	"iter"
	"math"

	"github.com/chazu/brep/pkg/brep"
	"gonum.org/v1/gonum/mat"
)

// Compile-time interface checks.
var (
	_ Field           = (*Circular)(nil)
	_ GradientDeriver = (*Circular)(nil)
	_ Projector       = (*Circular)(nil)
)

// Circular is the circle of radius r around (cx, cy) in the XY plane, with
// phi = |P - c|^2 - r^2.
type Circular struct {
	cx, cy, r float64
}

// NewCircular returns the circle field. A negative radius panics.
func NewCircular(cx, cy, r float64) *Circular {
	if r < 0 {
		panic(fmt.Sprintf("levelset: negative circle radius %g", r))
	}
	return &Circular{cx: cx, cy: cy, r: r}
}

// CircularLevelSet returns a LevelSet over NewCircular(cx, cy, r).
func CircularLevelSet(cx, cy, r float64, opts ...Option) *LevelSet {
	return New(NewCircular(cx, cy, r), opts...)
}

// Center returns the circle center (Z is zero).
func (c *Circular) Center() brep.Point { return brep.NewPoint(c.cx, c.cy, 0) }

// Radius returns the circle radius.
func (c *Circular) Radius() float64 { return c.r }

func (c *Circular) String() string {
	return fmt.Sprintf("Circular Level Set cX: %g, cY: %g, R: %g", c.cx, c.cy, c.r)
}

func (c *Circular) WorkingSpaceDimension() int { return 2 }

func (c *Circular) Clone() Field {
	cp := *c
	return &cp
}

func (c *Circular) Value(p brep.Point) float64 {
	return sq(p.X-c.cx) + sq(p.Y-c.cy) - sq(c.r)
}

func (c *Circular) Gradient(p brep.Point) brep.Vector {
	return brep.Vector{X: 2 * (p.X - c.cx), Y: 2 * (p.Y - c.cy)}
}

// GradientDerivatives is constant: 2 on the in-plane diagonal.
func (c *Circular) GradientDerivatives(brep.Point) (*mat.Dense, error) {
	jac := brep.NewMatrix()
	jac.Set(0, 0, 2)
	jac.Set(1, 1, 2)
	return jac, nil
}

// ProjectOnSurface projects p radially onto the circle. The center itself
// has no radial direction and is rejected.
func (c *Circular) ProjectOnSurface(p brep.Point) (brep.Point, error) {
	length, err := c.radialLength(p)
	if err != nil {
		return brep.Point{}, err
	}
	return brep.Point{
		X: (p.X-c.cx)*c.r/length + c.cx,
		Y: (p.Y-c.cy)*c.r/length + c.cy,
	}, nil
}

// ProjectionDerivatives returns d Proj / d P. Only the in-plane 2x2 block is
// populated; the third row and column stay zero.
func (c *Circular) ProjectionDerivatives(p brep.Point) (*mat.Dense, error) {
	length, err := c.radialLength(p)
	if err != nil {
		return nil, err
	}
	d := [2]float64{p.X - c.cx, p.Y - c.cy}
	dlength := [2]float64{2 * d[0], 2 * d[1]}
	l2 := length * length

	jac := brep.NewMatrix()
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			v := -d[i] * c.r * dlength[j] / l2
			if i == j {
				v += c.r / length
			}
			jac.Set(i, j, v)
		}
	}
	return jac, nil
}

func (c *Circular) radialLength(p brep.Point) (float64, error) {
	length := math.Sqrt(sq(p.X-c.cx) + sq(p.Y-c.cy))
	if length == 0 {
		return 0, brep.Precondition("cannot project the center (%g, %g) of %s", c.cx, c.cy, c)
	}
	return length, nil
}

// GeneratePoints yields n points on the circle, evenly spaced in angle over
// [start, end). The sequence holds no state and can be ranged over again.
func (c *Circular) GeneratePoints(start, end float64, n int) iter.Seq[brep.Point] {
	return func(yield func(brep.Point) bool) {
		if n <= 0 {
			return
		}
		step := (end - start) / float64(n)
		for j := 0; j < n; j++ {
			a := start + float64(j)*step
			p := brep.Point{X: c.cx + c.r*math.Cos(a), Y: c.cy + c.r*math.Sin(a)}
			if !yield(p) {
				return
			}
		}
	}
}

// GenerateFullCircle yields n points evenly spaced over the whole circle.
func (c *Circular) GenerateFullCircle(n int) iter.Seq[brep.Point] {
	return c.GeneratePoints(0, 2*math.Pi, n)
}

func sq(x float64) float64 { return x * x }
