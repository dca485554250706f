// Package brep defines the boundary-representation abstraction used by
// cut-cell finite element codes: a BRep decides whether points and element
// geometries lie inside, outside, or across an embedded boundary, and exposes
// the surface geometry (intersections, normals, projections) needed for
// integration on cut elements.
//
// Status encoding follows the classic convention: In = 0, Out = 1, Cut = -1.
package brep
