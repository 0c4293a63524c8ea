package crs

import (
	"github.com/sirupsen/logrus"

	"github.com/pspoerri/geotransform/datum"
	"github.com/pspoerri/geotransform/projection"
)

// Strategy lists the pipeline stages a Transform runs, decided once from the
// two CRSs.
type Strategy struct {
	InverseProjection bool
	DatumShift        bool
	// ViaGeocentric is set when the datum shift passes through geocentric
	// coordinates, which is whenever the ellipsoids differ or either datum
	// carries shift parameters.
	ViaGeocentric     bool
	ForwardProjection bool
}

// Option configures a Transform.
type Option func(*Transform)

// WithConfig sets the datum shift policy and height handling.
func WithConfig(cfg Config) Option {
	return func(t *Transform) { t.cfg = cfg }
}

// WithLogger sets the logger used to report the chosen strategy.
func WithLogger(log logrus.FieldLogger) Option {
	return func(t *Transform) { t.log = log }
}

// Transform converts coordinates from a source CRS to a target CRS.
//
// A Transform reuses an internal scratch coordinate and must not be used by
// several goroutines at once. Create one per goroutine; the CRSs themselves
// may be shared.
type Transform struct {
	src, dst *CRS
	cfg      Config
	log      logrus.FieldLogger
	strategy Strategy

	srcConv, dstConv *datum.GeocentricConverter

	geo Coordinate
}

// NewTransform precomputes the strategy for transforming from src to dst.
func NewTransform(src, dst *CRS, opts ...Option) (*Transform, error) {
	t := &Transform{
		src: src,
		dst: dst,
		cfg: DefaultConfig(),
		log: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(t)
	}
	if src == nil || dst == nil {
		return nil, &UnsupportedError{CRS: "<nil>", Reason: "missing source or target CRS"}
	}

	s := &t.strategy
	s.InverseProjection = src != Geographic && src.projection != nil
	s.ForwardProjection = dst != Geographic && dst.projection != nil

	if s.InverseProjection && !src.projection.HasInverse() {
		return nil, &UnsupportedError{
			CRS:    src.name,
			Reason: "projection " + src.projection.Name() + " has no inverse",
		}
	}

	s.DatumShift = src.datum != nil && dst.datum != nil && !src.datum.Equal(dst.datum)
	if t.cfg.DatumShift == PolicyCompatible {
		s.DatumShift = s.DatumShift && s.InverseProjection && s.ForwardProjection
	}
	if s.DatumShift {
		srcEll, dstEll := src.datum.Ellipsoid(), dst.datum.Ellipsoid()
		s.ViaGeocentric = !srcEll.Equal(dstEll) ||
			src.datum.HasShiftParameters() || dst.datum.HasShiftParameters()
		if s.ViaGeocentric {
			t.srcConv = datum.NewGeocentricConverter(srcEll)
			t.dstConv = datum.NewGeocentricConverter(dstEll)
		}
	}

	t.log.WithFields(logrus.Fields{
		"source":             src.name,
		"target":             dst.name,
		"inverse_projection": s.InverseProjection,
		"datum_shift":        s.DatumShift,
		"via_geocentric":     s.ViaGeocentric,
		"forward_projection": s.ForwardProjection,
		"policy":             t.cfg.DatumShift.String(),
	}).Debug("coordinate transform")
	return t, nil
}

func (t *Transform) Source() *CRS { return t.src }

func (t *Transform) Target() *CRS { return t.dst }

// Strategy returns the stages chosen at construction.
func (t *Transform) Strategy() Strategy { return t.strategy }

// Reverse returns a transform from the target back to the source with the
// same configuration.
func (t *Transform) Reverse() (*Transform, error) {
	return NewTransform(t.dst, t.src, WithConfig(t.cfg), WithLogger(t.log))
}

// Transform converts c from the source CRS to the target CRS. Failures are
// returned as *ComputationError naming the failing stage.
func (t *Transform) Transform(c Coordinate) (Coordinate, error) {
	geo := &t.geo
	if t.strategy.InverseProjection {
		lon, lat, err := projection.Unproject(t.src.projection, c.X, c.Y)
		if err != nil {
			return Coordinate{}, &ComputationError{Stage: StageInverseProjection, Err: err}
		}
		geo.X, geo.Y = lon, lat
	} else {
		geo.X, geo.Y = c.X, c.Y
	}
	geo.Z = 0
	if t.cfg.PropagateHeight {
		geo.Z = c.Z
	}

	if t.strategy.ViaGeocentric {
		if err := t.shiftDatum(geo); err != nil {
			return Coordinate{}, &ComputationError{Stage: StageDatumShift, Err: err}
		}
	}

	out := Coordinate{X: geo.X, Y: geo.Y}
	if t.strategy.ForwardProjection {
		x, y, err := projection.Project(t.dst.projection, geo.X, geo.Y)
		if err != nil {
			return Coordinate{}, &ComputationError{Stage: StageForwardProjection, Err: err}
		}
		out.X, out.Y = x, y
	}
	if t.cfg.PropagateHeight {
		out.Z = geo.Z
	}
	return out, nil
}

// shiftDatum moves a geographic position from the source datum to the
// target datum through WGS84 geocentric coordinates.
func (t *Transform) shiftDatum(geo *Coordinate) error {
	p, err := t.srcConv.ToGeocentric(geo.X, geo.Y, geo.Z)
	if err != nil {
		return err
	}
	if t.src.datum.HasShiftParameters() {
		p = t.src.datum.ToWGS84(p)
	}
	if t.dst.datum.HasShiftParameters() {
		p = t.dst.datum.FromWGS84(p)
	}
	geo.X, geo.Y, geo.Z, err = t.dstConv.ToGeodetic(p)
	return err
}
