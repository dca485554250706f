package brep

// CutStatusOfPoints is the exact classification: every point is either
// inside or not, with no tolerance band. The result is Cut when both groups
// are populated, In when nothing is outside and Out when nothing is inside.
// An empty sample set cannot be classified and yields a *DegenerateError;
// tol is only reported in that diagnostic.
//
// Level sets refine this with a tolerance band; the two algorithms differ on
// points near the boundary and are kept separate on purpose.
func CutStatusOfPoints(in Insider, points []Point, tol float64) (CutStatus, error) {
	var nIn, nOut int
	for _, p := range points {
		if in.IsInside(p) {
			nIn++
		} else {
			nOut++
		}
	}

	switch {
	case nIn == 0 && nOut == 0:
		return 0, degenerate(points, nIn, nOut, 0, false, tol)
	case nIn == 0:
		return Out, nil
	case nOut == 0:
		return In, nil
	default:
		return Cut, nil
	}
}

// PointClassifier classifies raw point sets.
type PointClassifier interface {
	CutStatus(points []Point) (CutStatus, error)
}

// CutStatusBySampling gathers the corners of g in configuration cfg plus
// nsampling interior samples and hands them to c, so every BRep refines the
// corner classification with its own algorithm.
func CutStatusBySampling(c PointClassifier, g SampledGeometry, nsampling int, cfg Configuration) (CutStatus, error) {
	if nsampling < 0 {
		return 0, Precondition("negative sampling count %d", nsampling)
	}
	points, err := Positions(g, cfg)
	if err != nil {
		return 0, err
	}
	if nsampling > 0 {
		samples, err := g.SamplePoints(nsampling, cfg)
		if err != nil {
			return 0, err
		}
		points = append(points, samples...)
	}
	return c.CutStatus(points)
}

// OppositeSigns reports whether a and b are both nonzero with different
// signs. It compares signs directly, so values whose product would
// underflow still count.
func OppositeSigns(a, b float64) bool {
	return a != 0 && b != 0 && (a < 0) != (b < 0)
}
