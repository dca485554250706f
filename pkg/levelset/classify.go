package levelset

import "github.com/chazu/brep/pkg/brep"

// CutStatus classifies points with the tolerance-banded algorithm.
func (ls *LevelSet) CutStatus(points []brep.Point) (brep.CutStatus, error) {
	return ls.cutStatusOfPoints(points, ls.GetTolerance())
}

// CutStatusOfGeometry classifies the corners of g, read in configuration
// cfg, with the tolerance-banded algorithm.
func (ls *LevelSet) CutStatusOfGeometry(g brep.Geometry, cfg brep.Configuration) (brep.CutStatus, error) {
	points, err := brep.Positions(g, cfg)
	if err != nil {
		return 0, err
	}
	return ls.CutStatus(points)
}

// CutStatusBySampling classifies the corners of g plus nsampling interior
// samples with the tolerance-banded algorithm.
func (ls *LevelSet) CutStatusBySampling(g brep.SampledGeometry, nsampling int, cfg brep.Configuration) (brep.CutStatus, error) {
	return brep.CutStatusBySampling(ls, g, nsampling, cfg)
}

// cutStatusOfPoints sorts points into three buckets: inside (phi < -tol),
// outside (phi > tol) and on the boundary. Points on the boundary never
// decide the status on their own: a set with nothing strictly inside and
// nothing strictly outside is degenerate even when every point is on the
// boundary.
func (ls *LevelSet) cutStatusOfPoints(points []brep.Point, tol float64) (brep.CutStatus, error) {
	var in, out, on int
	for _, p := range points {
		phi := ls.GetValue(p)
		switch {
		case phi < -tol:
			in++
		case phi > tol:
			out++
		default:
			on++
		}
	}

	switch {
	case in == 0 && out == 0:
		return 0, brep.Degenerate(points, in, out, on, tol)
	case in == 0:
		return brep.Out, nil
	case out == 0:
		return brep.In, nil
	default:
		return brep.Cut, nil
	}
}
