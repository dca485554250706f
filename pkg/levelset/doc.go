// Package levelset implements boundary representations backed by an
// implicit scalar field phi: R^3 -> R, partitioning space by
//
//	phi(x) < 0  <=>  x is inside the domain
//	phi(x) = 0  <=>  x is on the boundary
//	phi(x) > 0  <=>  x is outside the domain
//
// A LevelSet wraps a Field (the shape) and derives every BRep query from the
// field's value and gradient, except where the shape supplies a closed form
// (projection and its Jacobian, gradient Jacobian).
//
// REF: Massing et al, CutFEM: Discretizing geometry and partial differential
// equations.
package levelset
