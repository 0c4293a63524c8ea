package projection

import (
	"math"

	"github.com/pkg/errors"

	"github.com/pspoerri/geotransform/internal/projmath"
)

const (
	somercIter = 6
	somercEps  = 1e-10
)

// SwissObliqueMercator is the oblique Mercator of the Swiss national grids
// (EPSG:21781 LV03 and EPSG:2056 LV95): the ellipsoid is mapped onto a
// conformal sphere, which is then projected with a Mercator cylinder
// tangent along the small circle through the origin.
type SwissObliqueMercator struct {
	base
	hlfE         float64
	c            float64
	k            float64
	kR           float64
	sinp0, cosp0 float64
}

func NewSwissObliqueMercator(p Params) (*SwissObliqueMercator, error) {
	b, err := newBase(p)
	if err != nil {
		return nil, err
	}
	s := &SwissObliqueMercator{base: b, hlfE: 0.5 * b.e}
	cp := math.Cos(p.Lat0)
	cp *= cp
	s.c = math.Sqrt(1 + b.es*cp*cp/b.oneEs)
	sp := math.Sin(p.Lat0)
	s.sinp0 = sp / s.c
	phip0 := projmath.Aasin(s.sinp0)
	s.cosp0 = math.Cos(phip0)
	sp *= b.e
	s.k = math.Log(math.Tan(projmath.FortPi+0.5*phip0)) -
		s.c*(math.Log(math.Tan(projmath.FortPi+0.5*p.Lat0))-s.hlfE*math.Log((1+sp)/(1-sp)))
	s.kR = p.K0 * math.Sqrt(b.oneEs) / (1 - sp*sp)
	return s, nil
}

func (*SwissObliqueMercator) Name() string { return "somerc" }

func (s *SwissObliqueMercator) Forward(lam, phi float64) (x, y float64, err error) {
	sp := s.e * math.Sin(phi)
	phip := 2*math.Atan(math.Exp(s.c*(math.Log(math.Tan(projmath.FortPi+0.5*phi))-
		s.hlfE*math.Log((1+sp)/(1-sp)))+s.k)) - projmath.HalfPi
	lamp := s.c * lam
	cp := math.Cos(phip)
	phipp := projmath.Aasin(s.cosp0*math.Sin(phip) - s.sinp0*cp*math.Cos(lamp))
	cosPhipp := math.Cos(phipp)
	if cosPhipp < projmath.Eps10 {
		return 0, 0, errors.Wrap(ErrSingular, "somerc: pole of the oblique cylinder")
	}
	lampp := projmath.Aasin(cp * math.Sin(lamp) / cosPhipp)
	return s.kR * lampp, s.kR * math.Log(math.Tan(projmath.FortPi+0.5*phipp)), nil
}

func (s *SwissObliqueMercator) Inverse(x, y float64) (lam, phi float64, err error) {
	phipp := 2 * (math.Atan(math.Exp(y/s.kR)) - projmath.FortPi)
	lampp := x / s.kR
	cp := math.Cos(phipp)
	phip := projmath.Aasin(s.cosp0*math.Sin(phipp) + s.sinp0*cp*math.Cos(lampp))
	lamp := projmath.Aasin(cp * math.Sin(lampp) / math.Cos(phip))
	con := (s.k - math.Log(math.Tan(projmath.FortPi+0.5*phip))) / s.c

	for i := 0; i < somercIter; i++ {
		esp := s.e * math.Sin(phip)
		delp := (con + math.Log(math.Tan(projmath.FortPi+0.5*phip)) - s.hlfE*math.Log((1+esp)/(1-esp))) *
			(1 - esp*esp) * math.Cos(phip) / s.oneEs
		phip -= delp
		if math.Abs(delp) < somercEps {
			return lamp / s.c, phip, nil
		}
	}
	return 0, 0, errors.Wrap(ErrNoConvergence, "somerc")
}
