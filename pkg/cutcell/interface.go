package cutcell

import (
	"github.com/pkg/errors"

	"github.com/chazu/brep/pkg/brep"
	"github.com/chazu/brep/pkg/mesh"
)

// Surface is a BRep backed by an implicit function, such as a level set.
type Surface interface {
	brep.BRep
	brep.ImplicitFunction
}

// InterfacePoint is where the boundary crosses an element edge.
type InterfacePoint struct {
	// Edge holds the local node indices of the crossed edge.
	Edge   [2]int
	Point  brep.Point
	Normal brep.Vector // unit outward normal, zero where the gradient vanishes
}

// InterfacePoints bisects every edge of e whose end points lie strictly on
// opposite sides of s and returns the crossings in edge order. Edges that
// merely touch the boundary at a node are skipped.
func InterfacePoints(s Surface, e *mesh.Element, cfg brep.Configuration, tol float64) ([]InterfacePoint, error) {
	corners, err := brep.Positions(e, cfg)
	if err != nil {
		return nil, err
	}
	values := make([]float64, len(corners))
	for i, p := range corners {
		values[i] = s.GetValue(p)
	}

	var out []InterfacePoint
	for _, ed := range e.Edges() {
		if !brep.OppositeSigns(values[ed[0]], values[ed[1]]) {
			continue
		}
		p, err := s.Bisect(corners[ed[0]], corners[ed[1]], tol)
		if err != nil {
			return nil, errors.WithMessagef(err, "cutcell: element %d edge %v", e.ID, ed)
		}
		out = append(out, InterfacePoint{Edge: ed, Point: p, Normal: unit(s.GetGradient(p))})
	}
	return out, nil
}

func unit(v brep.Vector) brep.Vector {
	l := v.Length()
	if l == 0 {
		return brep.Vector{}
	}
	return v.MulScalar(1 / l)
}
