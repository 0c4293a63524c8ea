// Package ellipsoid defines the reference ellipsoids that approximate the
// shape of the earth. Ellipsoid values are immutable and safe to share.
package ellipsoid

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// ellipsoidULP is the tolerance, in units in the last place, within which two
// ellipsoids compare equal.
const ellipsoidULP = 4

// ConfigurationError reports a malformed or contradictory ellipsoid or datum
// definition. It is raised at construction and is never retried.
type ConfigurationError struct {
	Subject string
	Reason  string
}

func (e *ConfigurationError) Error() string {
	return "invalid " + e.Subject + ": " + e.Reason
}

// Ellipsoid is an immutable reference ellipsoid.
type Ellipsoid struct {
	shortName string
	name      string
	a         float64 // equatorial radius
	b         float64 // polar radius
	es        float64 // eccentricity squared
	e         float64
}

// Well-known ellipsoids. From the USGS PROJ ellipsoid table.
var (
	Sphere            = mustEllipsoid("sphere", "Sphere", 6371008.7714, 6371008.7714, 0)
	Bessel            = mustEllipsoid("bessel", "Bessel 1841", 6377397.155, 0, 299.1528128)
	Clarke1866        = mustEllipsoid("clrk66", "Clarke 1866", 6378206.4, 6356583.8, 0)
	Clarke1880        = mustEllipsoid("clrk80", "Clarke 1880 mod.", 6378249.145, 0, 293.4663)
	Airy              = mustEllipsoid("airy", "Airy 1830", 6377563.396, 6356256.910, 0)
	ModAiry           = mustEllipsoid("mod_airy", "Modified Airy", 6377340.189, 6356034.446, 0)
	WGS60             = mustEllipsoid("WGS60", "WGS 60", 6378165.0, 0, 298.3)
	WGS66             = mustEllipsoid("WGS66", "WGS 66", 6378145.0, 0, 298.25)
	WGS72             = mustEllipsoid("WGS72", "WGS 72", 6378135.0, 0, 298.26)
	WGS84             = mustEllipsoid("WGS84", "WGS 84", 6378137.0, 0, 298.257223563)
	Krassovsky        = mustEllipsoid("krass", "Krassovsky, 1942", 6378245.0, 0, 298.3)
	Everest           = mustEllipsoid("evrst30", "Everest 1830", 6377276.345, 0, 300.8017)
	International     = mustEllipsoid("intl", "International 1909 (Hayford)", 6378388.0, 0, 297.0)
	International1967 = mustEllipsoid("new_intl", "New International 1967", 6378157.5, 6356772.2, 0)
	GRS80             = mustEllipsoid("GRS80", "GRS 1980 (IUGG, 1980)", 6378137.0, 0, 298.257222101)
	Australian        = mustEllipsoid("australian", "Australian", 6378160.0, 6356774.7, 298.25)
)

// Ellipsoids returns the well-known ellipsoids.
func Ellipsoids() []*Ellipsoid {
	return []*Ellipsoid{
		Sphere, Bessel, Clarke1866, Clarke1880, Airy, ModAiry, WGS60, WGS66, WGS72,
		WGS84, Krassovsky, Everest, International, International1967, GRS80, Australian,
	}
}

// NewEllipsoid creates an ellipsoid from its equatorial radius a and either
// its polar radius b or its inverse flattening rf. The unused one must be
// zero; if both are given rf takes precedence.
func NewEllipsoid(shortName, name string, a, b, rf float64) (*Ellipsoid, error) {
	if b == 0 && rf == 0 {
		return nil, &ConfigurationError{Subject: "ellipsoid " + shortName, Reason: "one of polar radius or inverse flattening must be given"}
	}
	if rf != 0 {
		f := 1 / rf
		return newEllipsoid(shortName, name, a, 2*f-f*f)
	}
	if a <= 0 {
		return nil, &ConfigurationError{Subject: "ellipsoid " + shortName, Reason: fmt.Sprintf("equatorial radius %g must be positive", a)}
	}
	e, err := newEllipsoid(shortName, name, a, 1-(b*b)/(a*a))
	if err != nil {
		return nil, err
	}
	e.b = b
	return e, nil
}

// NewEllipsoidES creates an ellipsoid from its equatorial radius and squared
// eccentricity.
func NewEllipsoidES(shortName, name string, a, es float64) (*Ellipsoid, error) {
	return newEllipsoid(shortName, name, a, es)
}

func newEllipsoid(shortName, name string, a, es float64) (*Ellipsoid, error) {
	switch {
	case !(a > 0) || math.IsInf(a, 0):
		return nil, &ConfigurationError{Subject: "ellipsoid " + shortName, Reason: fmt.Sprintf("equatorial radius %g must be positive", a)}
	case !(es >= 0 && es < 1):
		return nil, &ConfigurationError{Subject: "ellipsoid " + shortName, Reason: fmt.Sprintf("eccentricity squared %g outside [0, 1)", es)}
	}
	return &Ellipsoid{
		shortName: shortName,
		name:      name,
		a:         a,
		b:         a * math.Sqrt(1-es),
		es:        es,
		e:         math.Sqrt(es),
	}, nil
}

func mustEllipsoid(shortName, name string, a, b, rf float64) *Ellipsoid {
	e, err := NewEllipsoid(shortName, name, a, b, rf)
	if err != nil {
		panic(err)
	}
	return e
}

// A returns the equatorial radius in metres.
func (e *Ellipsoid) A() float64 { return e.a }

// B returns the polar radius in metres.
func (e *Ellipsoid) B() float64 { return e.b }

// Es returns the squared eccentricity.
func (e *Ellipsoid) Es() float64 { return e.es }

// E returns the eccentricity.
func (e *Ellipsoid) E() float64 { return e.e }

func (e *Ellipsoid) Name() string { return e.name }

func (e *Ellipsoid) ShortName() string { return e.shortName }

func (e *Ellipsoid) String() string { return e.name }

// IsSphere reports whether the ellipsoid has zero eccentricity.
func (e *Ellipsoid) IsSphere() bool { return e.es == 0 }

// Equal reports whether both ellipsoids have the same equatorial radius and
// squared eccentricity, up to a few units in the last place.
func (e *Ellipsoid) Equal(o *Ellipsoid) bool {
	if e == o {
		return true
	}
	if e == nil || o == nil {
		return false
	}
	return scalar.EqualWithinULP(e.a, o.a, ellipsoidULP) &&
		scalar.EqualWithinULP(e.es, o.es, ellipsoidULP)
}
