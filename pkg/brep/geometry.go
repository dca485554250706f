package brep

import "github.com/pkg/errors"

// Configuration selects which coordinates of a geometry are classified.
type Configuration int

const (
	Reference Configuration = 0 // initial, undeformed positions
	Current   Configuration = 1 // current positions, e.g. in dynamic analyses
)

func (c Configuration) String() string {
	switch c {
	case Reference:
		return "reference"
	case Current:
		return "current"
	default:
		return "invalid"
	}
}

// Validate returns ErrInvalidConfiguration for any value other than
// Reference or Current.
func (c Configuration) Validate() error {
	if c != Reference && c != Current {
		return errors.Wrapf(ErrInvalidConfiguration, "configuration %d", int(c))
	}
	return nil
}

// Geometry is an ordered, fixed-size collection of points owned by a mesh.
// It is consumed read-only.
type Geometry interface {
	Len() int
	InitialPosition(i int) Point
	Position(i int) Point
}

// SampledGeometry is a Geometry able to produce interior sample points, e.g.
// by mapping a grid over its reference element.
type SampledGeometry interface {
	Geometry
	// SamplePoints returns exactly n points strictly inside the geometry,
	// in the given configuration.
	SamplePoints(n int, cfg Configuration) ([]Point, error)
}

// Positions returns the corner points of g in the given configuration.
func Positions(g Geometry, cfg Configuration) ([]Point, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	points := make([]Point, g.Len())
	for i := range points {
		if cfg == Reference {
			points[i] = g.InitialPosition(i)
		} else {
			points[i] = g.Position(i)
		}
	}
	return points, nil
}

// PointSet is a Geometry whose reference and current positions coincide.
type PointSet []Point

func (s PointSet) Len() int                    { return len(s) }
func (s PointSet) InitialPosition(i int) Point { return s[i] }
func (s PointSet) Position(i int) Point        { return s[i] }
