package brep

import (
	"fmt"
	"math"
	"sync/atomic"
)

// Tolerance holds the geometric tolerance of a BRep. It is the only state of
// a BRep that may change after construction, and it may be updated while
// other goroutines query the BRep.
type Tolerance struct {
	bits atomic.Uint64
}

// SetTolerance sets the geometric tolerance. A negative or NaN tolerance is a
// programming error and panics.
func (t *Tolerance) SetTolerance(tol float64) {
	if tol < 0 || math.IsNaN(tol) {
		panic(fmt.Sprintf("brep: invalid tolerance %g", tol))
	}
	t.bits.Store(math.Float64bits(tol))
}

// GetTolerance returns the geometric tolerance.
func (t *Tolerance) GetTolerance() float64 {
	return math.Float64frombits(t.bits.Load())
}
