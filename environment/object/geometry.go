// Package object provides the shape primitives a Celestial exposes for
// intersection and occultation queries: a spherical envelope and the
// great-circle-like terminator boundary separating a body's lit and dark
// hemispheres.
package object

import (
	"math"

	"github.com/pkg/errors"

	"github.com/open-space-collective/ostk-physics-go/geometry"
)

// errOriginInsideBody is returned by TerminatorOf when the source direction
// places the illuminating source inside or on the sphere's own surface, a
// degenerate case the horizon-circle construction doesn't cover.
var errOriginInsideBody = errors.New("object: illuminating source is not outside the body")

// Geometry is a body's spherical envelope, center and radius expressed in
// the same frame as the points passed to its query methods (typically the
// body's own body-fixed or body-centered inertial frame).
type Geometry struct {
	Center   [3]float64
	RadiusKm float64
}

// NewSphere builds a spherical Geometry.
func NewSphere(center [3]float64, radiusKm float64) Geometry {
	return Geometry{Center: center, RadiusKm: radiusKm}
}

// IntersectsSegment reports whether the closed line segment [from, to]
// intersects the sphere. This is the occultation predicate: from is the
// observer position, to is the occulted body's position (e.g. the Sun), and
// g is the occulting body's envelope.
func (g Geometry) IntersectsSegment(from, to [3]float64) bool {
	dir := [3]float64{to[0] - from[0], to[1] - from[1], to[2] - from[2]}
	segLen := math.Sqrt(dir[0]*dir[0] + dir[1]*dir[1] + dir[2]*dir[2])
	if segLen == 0 {
		return false
	}

	centerRel := [3]float64{g.Center[0] - from[0], g.Center[1] - from[1], g.Center[2] - from[2]}
	near, far := geometry.IntersectLineSphere(dir, centerRel, g.RadiusKm)
	if math.IsNaN(near) {
		return false
	}

	// near/far are distances along the unit direction vector from "from";
	// the segment covers [0, segLen].
	return far >= 0 && near <= segLen
}

// Terminator is the circle on a sphere's surface separating the hemisphere
// lit by a point source (e.g. the Sun) from the dark hemisphere: the locus
// of points where the source is exactly on the local horizon. For a point
// source at distance d > RadiusKm from the sphere's center, this is the
// circle of radius RadiusKm*sin(phi) lying in the plane perpendicular to
// the source direction at distance RadiusKm*cos(phi) from center, where
// cos(phi) = RadiusKm/d — the standard horizon-circle construction for a
// sphere viewed from an external point.
type Terminator struct {
	Center   [3]float64 // plane center, in the same frame as Geometry.Center
	Normal   [3]float64 // unit vector from the body's center toward the source
	RadiusKm float64
}

// TerminatorOf computes the Terminator of a spherical body given the
// direction (not necessarily unit) from the body's center to the
// illuminating source.
func (g Geometry) TerminatorOf(sourceDirection [3]float64) (Terminator, error) {
	d := math.Sqrt(sourceDirection[0]*sourceDirection[0] + sourceDirection[1]*sourceDirection[1] + sourceDirection[2]*sourceDirection[2])
	if d <= g.RadiusKm {
		return Terminator{}, errOriginInsideBody
	}

	normal := [3]float64{sourceDirection[0] / d, sourceDirection[1] / d, sourceDirection[2] / d}
	cosPhi := g.RadiusKm / d
	sinPhi := math.Sqrt(1 - cosPhi*cosPhi)

	planeDistance := g.RadiusKm * cosPhi
	center := [3]float64{
		g.Center[0] + planeDistance*normal[0],
		g.Center[1] + planeDistance*normal[1],
		g.Center[2] + planeDistance*normal[2],
	}

	return Terminator{Center: center, Normal: normal, RadiusKm: g.RadiusKm * sinPhi}, nil
}
