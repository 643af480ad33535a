// Package environment bundles celestial bodies — each with pluggable
// ephemeris, gravitational, magnetic, and atmospheric models — behind a
// shared current instant and frame registry, the top-level object client
// code constructs to evaluate fields and query shapes.
package environment

import (
	"fmt"
	"math"
	"sync"

	"github.com/pkg/errors"

	"github.com/open-space-collective/ostk-physics-go/coord"
	"github.com/open-space-collective/ostk-physics-go/coordinate"
	"github.com/open-space-collective/ostk-physics-go/environment/object"
	"github.com/open-space-collective/ostk-physics-go/frame"
	"github.com/open-space-collective/ostk-physics-go/gravity"
	"github.com/open-space-collective/ostk-physics-go/instant"
	"github.com/open-space-collective/ostk-physics-go/magnetic"
)

// Ephemeris is the position source a Celestial queries — satisfied by
// *spiceephem.Manager, and narrowed to one method here so tests can supply
// a fake without loading real SPK kernels.
type Ephemeris interface {
	GeocentricPositionOf(target int, tdbJD float64) ([3]float64, error)
}

// Celestial bundles the models describing one celestial body: where it is
// (ephemeris), and what fields it produces around itself (gravitational,
// magnetic, atmospheric). Any model may be the package's Null value,
// signaling the body was constructed without that concern.
type Celestial struct {
	Name                string
	NAIFID              int
	EquatorialRadiusKm  float64
	Flattening          float64
	BodyFixedFrame      string // e.g. frame.ITRF for Earth
	Ephemeris           Ephemeris
	Gravity             gravity.Model
	Magnetic            magnetic.Model
	Atmospheric         AtmosphericModel

	mu        sync.Mutex
	nedFrames map[nedKey]*frame.Frame
}

type nedKey struct {
	frameType  string
	latMilliDeg int
	lonMilliDeg int
}

// NewCelestial builds a Celestial, defaulting any nil model to the
// package's "undefined" signal so FieldAt-style queries always have a
// well-defined (if error-returning) model to call.
func NewCelestial(name string, naifID int, equatorialRadiusKm, flattening float64, bodyFixedFrame string, ephemeris Ephemeris) *Celestial {
	return &Celestial{
		Name:               name,
		NAIFID:             naifID,
		EquatorialRadiusKm: equatorialRadiusKm,
		Flattening:         flattening,
		BodyFixedFrame:     bodyFixedFrame,
		Ephemeris:          ephemeris,
		Gravity:            gravity.Null{},
		Magnetic:           magnetic.Null{},
		Atmospheric:        NullAtmosphere{},
		nedFrames:          make(map[nedKey]*frame.Frame),
	}
}

// PositionIn returns the Celestial's position at instant i, in targetFrame,
// as seen geocentrically from the ephemeris manager (light-time
// uncorrected) and reframed through registry.
func (c *Celestial) PositionIn(targetFrame string, i instant.Instant, registry *frame.Registry) (coordinate.Position, error) {
	tdbJD := i.ToJulianDate(instant.TDB)
	pos, err := c.Ephemeris.GeocentricPositionOf(c.NAIFID, tdbJD)
	if err != nil {
		return coordinate.Position{}, errors.Wrapf(err, "environment: position of %q", c.Name)
	}
	return coordinate.NewPosition(pos, frame.GCRF).In(targetFrame, i, registry)
}

// GravitationalFieldAt evaluates the Celestial's gravitational model at a
// position (km) expressed in the body's own body-fixed frame.
func (c *Celestial) GravitationalFieldAt(positionBodyFixed [3]float64) ([3]float64, error) {
	return c.Gravity.FieldAt(positionBodyFixed)
}

// MagneticFieldAt evaluates the Celestial's magnetic model at a position
// (km) expressed in the body's own body-fixed frame.
func (c *Celestial) MagneticFieldAt(positionBodyFixed [3]float64) ([3]float64, error) {
	return c.Magnetic.FieldAt(positionBodyFixed)
}

// AtmosphericDensityAt evaluates the Celestial's atmospheric model at a
// given altitude (km) above the reference ellipsoid.
func (c *Celestial) AtmosphericDensityAt(altitudeKm float64) (float64, error) {
	return c.Atmospheric.DensityAt(altitudeKm)
}

// FrameAt dynamically registers (or returns the cached) NED frame for
// (lat, lon), rounded to the nearest milli-degree so repeated queries for
// the "same" location share a single registered frame instead of growing
// the registry unbounded.
func (c *Celestial) FrameAt(latDeg, lonDeg float64, frameType string, registry *frame.Registry) (*frame.Frame, error) {
	key := nedKey{
		frameType:   frameType,
		latMilliDeg: int(math.Round(latDeg * 1000)),
		lonMilliDeg: int(math.Round(lonDeg * 1000)),
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if f, ok := c.nedFrames[key]; ok {
		return f, nil
	}

	if frameType != "NED" {
		return nil, errors.Errorf("environment: unsupported frame type %q", frameType)
	}
	if c.BodyFixedFrame == "" {
		return nil, errors.Errorf("environment: %q has no body-fixed frame registered", c.Name)
	}

	name := fmt.Sprintf("%s_%s_%d_%d", c.Name, frameType, key.latMilliDeg, key.lonMilliDeg)
	f := &frame.Frame{
		Name:       name,
		ParentName: c.BodyFixedFrame,
		Provider:   frame.NewNEDProvider(latDeg, lonDeg, c.EquatorialRadiusKm, c.Flattening),
	}
	registry.Register(f)
	c.nedFrames[key] = f
	return f, nil
}

// GeodeticOf converts a body-fixed position (km) into latitude, longitude
// (degrees), and height above c's reference ellipsoid (km) — the inverse of
// the conversion FrameAt's NED provider performs, grounded on
// coord.BodyFixedToGeodetic.
func (c *Celestial) GeodeticOf(positionBodyFixed [3]float64) (latDeg, lonDeg, heightKm float64) {
	return coord.BodyFixedToGeodetic(
		positionBodyFixed[0], positionBodyFixed[1], positionBodyFixed[2],
		c.EquatorialRadiusKm, c.Flattening,
	)
}

// Geometry returns the Celestial's spherical envelope centered at
// positionInFrame (the body's own position, already resolved in whatever
// frame the caller is working in).
func (c *Celestial) Geometry(positionInFrame [3]float64) object.Geometry {
	return object.NewSphere(positionInFrame, c.EquatorialRadiusKm)
}

// TerminatorGeometry returns the great-circle-like boundary separating this
// Celestial's lit and dark hemispheres, given the Sun's position relative
// to this body's center, in the same frame as the returned Terminator.
func (c *Celestial) TerminatorGeometry(sunPositionRelative [3]float64) (object.Terminator, error) {
	return object.NewSphere([3]float64{}, c.EquatorialRadiusKm).TerminatorOf(sunPositionRelative)
}
