package mesh

import "github.com/chazu/brep/pkg/brep"

// LocalSamples returns n points strictly inside the reference element of
// kind k. It lays a cell-centred lattice over the reference element, refines
// it until it holds at least n points and picks n of them evenly spread
// through the lattice. The result is deterministic.
func (k Kind) LocalSamples(n int) []brep.Point {
	if n <= 0 || k.LocalDimension() == 0 {
		return nil
	}
	var lattice []brep.Point
	for cells := 1; len(lattice) < n; cells++ {
		lattice = k.lattice(cells)
	}
	if len(lattice) == n {
		return lattice
	}
	out := make([]brep.Point, n)
	for i := range out {
		out[i] = lattice[i*len(lattice)/n]
	}
	return out
}

// lattice returns the centres of a cells^dim grid that fall strictly inside
// the reference element.
func (k Kind) lattice(cells int) []brep.Point {
	dim := k.LocalDimension()
	simplex := k.IsSimplex()

	var out []brep.Point
	var idx [3]int
	var walk func(axis int)
	walk = func(axis int) {
		if axis == dim {
			// Centre (i + 1/2) / cells lies inside the simplex iff
			// 2*sum(i) + dim < 2*cells; compare in integers.
			if simplex {
				sum := 0
				for a := 0; a < dim; a++ {
					sum += idx[a]
				}
				if 2*sum+dim >= 2*cells {
					return
				}
			}
			var p brep.Point
			for a := 0; a < dim; a++ {
				var c float64
				if simplex {
					c = (float64(idx[a]) + 0.5) / float64(cells)
				} else {
					c = -1 + (2*float64(idx[a])+1)/float64(cells)
				}
				switch a {
				case 0:
					p.X = c
				case 1:
					p.Y = c
				case 2:
					p.Z = c
				}
			}
			out = append(out, p)
			return
		}
		for i := 0; i < cells; i++ {
			idx[axis] = i
			walk(axis + 1)
		}
	}
	walk(0)
	return out
}
