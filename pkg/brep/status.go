package brep

// CutStatus classifies a point set or geometry against a boundary.
type CutStatus int

const (
	Cut CutStatus = -1 // crossed by the boundary
	In  CutStatus = 0  // completely inside
	Out CutStatus = 1  // completely outside
)

func (s CutStatus) String() string {
	switch s {
	case Cut:
		return "cut"
	case In:
		return "in"
	case Out:
		return "out"
	default:
		return "unknown"
	}
}
