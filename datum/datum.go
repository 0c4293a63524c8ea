// Package datum models geodetic datums and the conversion between geodetic
// and geocentric coordinates used to shift positions from one datum to
// another.
//
// Datum values are immutable once constructed and may be shared freely
// between goroutines.
package datum

import (
	"fmt"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pspoerri/geotransform/ellipsoid"
)

const (
	secToRad = 4.84813681109535993589914102357e-6

	// esTolerance keeps GRS80 and WGS84 equal when comparing datums.
	esTolerance = 5e-11
)

// Type classifies a datum by the shape of its shift to the reference frame.
type Type int

const (
	// TypeReference datums are the common reference frame (WGS84 or
	// equivalent) and need no shift.
	TypeReference Type = iota
	// Type3Param datums shift by a geocentric translation.
	Type3Param
	// Type7Param datums shift by a Bursa-Wolf similarity transform.
	Type7Param
)

func (t Type) String() string {
	switch t {
	case TypeReference:
		return "reference"
	case Type3Param:
		return "3-parameter"
	case Type7Param:
		return "7-parameter"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// Datum ties an ellipsoid to the earth through an optional shift to the
// WGS84 geocentric frame.
type Datum struct {
	code      string
	name      string
	ellipsoid *ellipsoid.Ellipsoid
	shift     []float64

	// Derived from shift: translation in metres, rotations in radians and
	// the scale factor 1+ppm/1e6.
	translation r3.Vec
	rx, ry, rz  float64
	scale       float64
}

// Well-known datums. Shift parameters follow the towgs84 convention.
var (
	WGS84         = mustDatum("WGS84", "WGS84", ellipsoid.WGS84)
	GGRS87        = mustDatum("GGRS87", "Greek_Geodetic_Reference_System_1987", ellipsoid.GRS80, -199.87, 74.79, 246.62)
	NAD83         = mustDatum("NAD83", "North_American_Datum_1983", ellipsoid.GRS80, 0, 0, 0)
	Potsdam       = mustDatum("potsdam", "Potsdam Rauenberg 1950 DHDN", ellipsoid.Bessel, 606.0, 23.0, 413.0)
	Carthage      = mustDatum("carthage", "Carthage 1934 Tunisia", ellipsoid.Clarke1880, -263.0, 6.0, 431.0)
	Hermannskogel = mustDatum("hermannskogel", "Hermannskogel", ellipsoid.Bessel, 653.0, -212.0, 449.0)
	IRE65         = mustDatum("ire65", "Ireland 1965", ellipsoid.ModAiry, 482.530, -130.596, 564.557, -1.042, -0.214, -0.631, 8.15)
	NZGD49        = mustDatum("nzgd49", "New Zealand Geodetic Datum 1949", ellipsoid.International, 59.47, -5.04, 187.44, 0.47, -0.1, 1.024, -4.5993)
	OSGB36        = mustDatum("OSGB36", "Airy 1830", ellipsoid.Airy, 446.448, -125.157, 542.060, 0.1502, 0.2470, 0.8421, -20.4894)
	CH1903Plus    = mustDatum("CH1903+", "CH1903+", ellipsoid.Bessel, 674.374, 15.056, 405.346)
)

// Datums returns the well-known datums.
func Datums() []*Datum {
	return []*Datum{WGS84, GGRS87, NAD83, Potsdam, Carthage, Hermannskogel, IRE65, NZGD49, OSGB36, CH1903Plus}
}

// NewDatum creates a datum on ellipsoid e. shift holds either nothing, a
// translation (dx, dy, dz) in metres, or a translation followed by rotations
// (rx, ry, rz) in arc-seconds and a scale difference in parts per million.
func NewDatum(code, name string, e *ellipsoid.Ellipsoid, shift ...float64) (*Datum, error) {
	if e == nil {
		return nil, &ConfigurationError{Subject: "datum " + code, Reason: "missing ellipsoid"}
	}
	switch len(shift) {
	case 0, 3, 7:
	default:
		return nil, &ConfigurationError{Subject: "datum " + code, Reason: fmt.Sprintf("expected 0, 3 or 7 shift parameters, got %d", len(shift))}
	}
	d := &Datum{
		code:      code,
		name:      name,
		ellipsoid: e,
		scale:     1,
	}
	if len(shift) == 0 {
		return d, nil
	}
	d.shift = append([]float64(nil), shift...)
	d.translation = r3.Vec{X: shift[0], Y: shift[1], Z: shift[2]}
	if len(shift) == 7 {
		d.rx = shift[3] * secToRad
		d.ry = shift[4] * secToRad
		d.rz = shift[5] * secToRad
		d.scale = 1 + shift[6]/1e6
	}
	return d, nil
}

func mustDatum(code, name string, e *ellipsoid.Ellipsoid, shift ...float64) *Datum {
	d, err := NewDatum(code, name, e, shift...)
	if err != nil {
		panic(err)
	}
	return d
}

func (d *Datum) Code() string { return d.code }

func (d *Datum) Name() string { return d.name }

func (d *Datum) Ellipsoid() *ellipsoid.Ellipsoid { return d.ellipsoid }

func (d *Datum) String() string { return d.code }

// ShiftParameterCount returns 0, 3 or 7.
func (d *Datum) ShiftParameterCount() int { return len(d.shift) }

// ShiftParameters returns a copy of the shift parameters as given.
func (d *Datum) ShiftParameters() []float64 {
	return append([]float64(nil), d.shift...)
}

// HasShiftParameters reports whether the datum carries a shift to WGS84.
func (d *Datum) HasShiftParameters() bool { return len(d.shift) > 0 }

// Type derives the datum type from the number of shift parameters.
func (d *Datum) Type() Type {
	switch len(d.shift) {
	case 3:
		return Type3Param
	case 7:
		return Type7Param
	default:
		return TypeReference
	}
}

// Equal reports whether two datums describe the same frame: same type, same
// equatorial radius, squared eccentricities within 5e-11 and identical shift
// parameters.
func (d *Datum) Equal(o *Datum) bool {
	if d == o {
		return true
	}
	if d == nil || o == nil {
		return false
	}
	if d.Type() != o.Type() {
		return false
	}
	if d.ellipsoid.A() != o.ellipsoid.A() || !scalar.EqualWithinAbs(d.ellipsoid.Es(), o.ellipsoid.Es(), esTolerance) {
		return false
	}
	for i := range d.shift {
		if d.shift[i] != o.shift[i] {
			return false
		}
	}
	return true
}

// ToWGS84 moves a geocentric position from this datum's frame to WGS84.
func (d *Datum) ToWGS84(p r3.Vec) r3.Vec {
	switch d.Type() {
	case Type3Param:
		return r3.Add(p, d.translation)
	case Type7Param:
		rotated := r3.Vec{
			X: p.X - d.rz*p.Y + d.ry*p.Z,
			Y: d.rz*p.X + p.Y - d.rx*p.Z,
			Z: -d.ry*p.X + d.rx*p.Y + p.Z,
		}
		return r3.Add(r3.Scale(d.scale, rotated), d.translation)
	}
	return p
}

// FromWGS84 moves a geocentric position from WGS84 to this datum's frame.
func (d *Datum) FromWGS84(p r3.Vec) r3.Vec {
	switch d.Type() {
	case Type3Param:
		return r3.Sub(p, d.translation)
	case Type7Param:
		t := r3.Scale(1/d.scale, r3.Sub(p, d.translation))
		return r3.Vec{
			X: t.X + d.rz*t.Y - d.ry*t.Z,
			Y: -d.rz*t.X + t.Y + d.rx*t.Z,
			Z: d.ry*t.X - d.rx*t.Y + t.Z,
		}
	}
	return p
}
