package brep

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Every failure produced by this module wraps one of these sentinels; match
// them with errors.Is. Wrapped errors carry a stack trace (print with %+v).
var (
	// ErrUnimplementedCapability is returned when an operation is requested
	// from a shape that does not provide it.
	ErrUnimplementedCapability = errors.New("brep: capability not implemented")

	// ErrDegenerateClassification is returned when a sample set has neither a
	// strictly inside nor a strictly outside point. See DegenerateError.
	ErrDegenerateClassification = errors.New("brep: degenerate geometry")

	// ErrPreconditionViolation is returned when a caller breaks an operation's
	// contract, e.g. bisecting a segment whose ends lie on the same side.
	ErrPreconditionViolation = errors.New("brep: precondition violated")

	// ErrInvalidConfiguration is returned for a configuration selector other
	// than Reference or Current.
	ErrInvalidConfiguration = errors.New("brep: invalid configuration")

	// ErrNonConvergence is returned when bisection exhausts its iteration cap.
	ErrNonConvergence = errors.New("brep: bisection did not converge")
)

// Unimplemented reports that capability was requested from shape.
func Unimplemented(capability, shape string) error {
	return errors.Wrapf(ErrUnimplementedCapability, "%s on %s", capability, shape)
}

// Precondition reports a contract violation described by format.
func Precondition(format string, args ...any) error {
	return errors.Wrapf(ErrPreconditionViolation, format, args...)
}

// DegenerateError is the diagnostic dump for a sample set that could not be
// classified. On is only meaningful for the tolerance-banded algorithm.
type DegenerateError struct {
	Points    []Point
	In        int
	Out       int
	On        int
	Banded    bool
	Tolerance float64
}

func (e *DegenerateError) Error() string {
	var b strings.Builder
	b.WriteString("brep: degenerate geometry: ")
	fmt.Fprintf(&b, "%d points, in=%d out=%d", len(e.Points), e.In, e.Out)
	if e.Banded {
		fmt.Fprintf(&b, " on=%d", e.On)
	}
	fmt.Fprintf(&b, " tolerance=%g", e.Tolerance)
	for i, p := range e.Points {
		fmt.Fprintf(&b, "\n  point[%d] = (%g, %g, %g)", i, p.X, p.Y, p.Z)
	}
	return b.String()
}

// Unwrap lets errors.Is match ErrDegenerateClassification.
func (e *DegenerateError) Unwrap() error {
	return ErrDegenerateClassification
}

// degenerate builds the wrapped error for a failed classification. The points
// are copied so the error does not alias the caller's slice.
func degenerate(points []Point, in, out, on int, banded bool, tol float64) error {
	return errors.WithStack(&DegenerateError{
		Points:    append([]Point(nil), points...),
		In:        in,
		Out:       out,
		On:        on,
		Banded:    banded,
		Tolerance: tol,
	})
}

// Degenerate builds the error for a tolerance-banded classification that
// found no strictly inside and no strictly outside point.
func Degenerate(points []Point, in, out, on int, tol float64) error {
	return degenerate(points, in, out, on, true, tol)
}
