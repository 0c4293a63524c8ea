package crs

import "fmt"

// Stage names a step of the transformation pipeline.
type Stage int

const (
	StageInverseProjection Stage = iota + 1
	StageDatumShift
	StageForwardProjection
)

func (s Stage) String() string {
	switch s {
	case StageInverseProjection:
		return "inverse projection"
	case StageDatumShift:
		return "datum shift"
	case StageForwardProjection:
		return "forward projection"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// ComputationError is a per-coordinate failure of one pipeline stage, such
// as a singular projection denominator or a latitude out of range.
type ComputationError struct {
	Stage Stage
	Err   error
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("crs: %s failed: %v", e.Stage, e.Err)
}

func (e *ComputationError) Unwrap() error { return e.Err }

// Cause returns the underlying error for github.com/pkg/errors.Cause.
func (e *ComputationError) Cause() error { return e.Err }

// UnsupportedError reports a CRS pair the transform cannot handle. It is
// returned by NewTransform, never per coordinate.
type UnsupportedError struct {
	CRS    string
	Reason string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("crs: unsupported configuration for %s: %s", e.CRS, e.Reason)
}
