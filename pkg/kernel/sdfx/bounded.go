package sdfx

import (
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/brep/pkg/levelset"
)

// Compile-time interface check.
var _ sdf.SDF3 = (*boundedLevelSet)(nil)

// boundedLevelSet presents a level set to sdfx. Level sets are unbounded, so
// the box is supplied by the caller.
type boundedLevelSet struct {
	ls *levelset.LevelSet
	bb sdf.Box3
}

func (b *boundedLevelSet) Evaluate(p v3.Vec) float64 {
	return b.ls.GetValue(p)
}

func (b *boundedLevelSet) BoundingBox() sdf.Box3 {
	return b.bb
}
