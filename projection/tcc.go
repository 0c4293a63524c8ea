package projection

import (
	"math"

	"github.com/pkg/errors"

	"github.com/pspoerri/geotransform/internal/projmath"
)

// TransverseCentralCylindrical is the spherical transverse central
// cylindrical projection. It has no inverse.
type TransverseCentralCylindrical struct {
	base
}

func NewTransverseCentralCylindrical(p Params) (*TransverseCentralCylindrical, error) {
	b, err := newBase(p)
	if err != nil {
		return nil, err
	}
	return &TransverseCentralCylindrical{base: b}, nil
}

func (*TransverseCentralCylindrical) Name() string     { return "tcc" }
func (*TransverseCentralCylindrical) HasInverse() bool { return false }

func (*TransverseCentralCylindrical) Forward(lam, phi float64) (x, y float64, err error) {
	b := math.Cos(phi) * math.Sin(lam)
	bt := 1 - b*b
	if bt < projmath.Eps10 {
		return 0, 0, errors.Wrap(ErrSingular, "tcc: 90° from central meridian")
	}
	return b / math.Sqrt(bt), math.Atan2(math.Tan(phi), math.Cos(lam)), nil
}

func (*TransverseCentralCylindrical) Inverse(x, y float64) (lam, phi float64, err error) {
	return 0, 0, errors.Wrap(ErrNoInverse, "tcc")
}
