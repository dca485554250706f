// Package mesh holds the finite element geometry that BReps classify:
// nodes with a reference and a current position, linear elements over them,
// and the sampling of element interiors. Meshes are built by callers; the
// lattice constructors exist for tests and small command-line runs and are
// not a mesh generator.
package mesh
