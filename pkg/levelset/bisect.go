package levelset

import (
	"math"

	"github.com/chazu/brep/pkg/brep"
	"github.com/pkg/errors"
)

// Bisect finds the intersection of the zero set with the segment p1-p2.
//
// phi(p1) and phi(p2) must have strictly opposite signs. The segment is
// parametrized as p1 + t*(p2-p1) and bisected on t, one field evaluation per
// step, until |phi(mid)| < tol or the bracket on t is narrower than tol.
// If neither happens within MaxIterations steps, ErrNonConvergence is
// returned.
func (ls *LevelSet) Bisect(p1, p2 brep.Point, tol float64) (brep.Point, error) {
	f1 := ls.GetValue(p1)
	f2 := ls.GetValue(p2)
	if !brep.OppositeSigns(f1, f2) {
		return brep.Point{}, brep.Precondition(
			"bisect on %s: ends are not on opposite sides (phi1=%g, phi2=%g)", ls, f1, f2)
	}

	d := p2.Sub(p1)
	left, right := 0.0, 1.0
	for i := 0; i < ls.maxIter; i++ {
		mid := (left + right) / 2
		p := p1.Add(d.MulScalar(mid))
		fm := ls.GetValue(p)

		if math.Abs(fm) < tol {
			return p, nil
		}
		if (fm < 0) != (f1 < 0) {
			right = mid
		} else {
			left = mid
			f1 = fm
		}
		if right-left < tol {
			return p, nil
		}
	}
	return brep.Point{}, errors.Wrapf(brep.ErrNonConvergence,
		"bisect on %s: no root within %d iterations (tol=%g)", ls, ls.maxIter, tol)
}
