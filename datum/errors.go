package datum

import (
	"github.com/pkg/errors"

	"github.com/pspoerri/geotransform/ellipsoid"
)

// ErrLatitudeRange is returned when a geodetic latitude lies outside ±π/2 by
// more than the rounding allowance.
var ErrLatitudeRange = errors.New("datum: latitude out of range")

// ErrNoConvergence is returned when the geocentric to geodetic iteration
// does not settle within its iteration cap.
var ErrNoConvergence = errors.New("datum: geodetic iteration did not converge")

// ConfigurationError is shared with the ellipsoid package so that callers
// can match construction failures from either with a single errors.As.
type ConfigurationError = ellipsoid.ConfigurationError
