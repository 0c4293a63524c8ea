package projection

// LongLat is the identity projection of a geographic CRS. Project and
// Unproject convert between radians and degrees instead of scaling.
type LongLat struct {
	base
}

// NewLongLat returns the geographic projection on p's ellipsoid.
func NewLongLat(p Params) (*LongLat, error) {
	b, err := newBase(p)
	if err != nil {
		return nil, err
	}
	return &LongLat{base: b}, nil
}

func (*LongLat) Name() string        { return "longlat" }
func (*LongLat) IsRectilinear() bool { return true }

func (*LongLat) Forward(lam, phi float64) (x, y float64, err error) { return lam, phi, nil }
func (*LongLat) Inverse(x, y float64) (lam, phi float64, err error) { return x, y, nil }
