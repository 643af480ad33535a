package frame

import (
	"math"

	"github.com/open-space-collective/ostk-physics-go/instant"
)

// NewBodyFixedProvider builds a parent->body-fixed provider from an
// orientation function (typically derived from an ephemeris manager's
// orientation kernel, or — for Earth — the ITRF provider chain already
// registered by RegisterStandardFrames). Kept generic so `environment`
// can register a body-fixed frame for any Celestial, not just Earth.
func NewBodyFixedProvider(orientationAt func(i instant.Instant) (Transform, error)) Provider {
	return ProviderFunc(orientationAt)
}

// NewNEDProvider builds a fixed-location, body-fixed-parent->NED(lat,lon)
// provider: a translation to the surface point plus the standard
// North-East-Down axis rotation, grounded on coord/geodetic.go's
// ITRFToGeodetic (this is its inverse direction: geodetic -> body-fixed
// Cartesian, then oriented NED).
//
// equatorialRadiusKm and flattening describe the body's reference
// ellipsoid (Earth: 6378.137 km, 1/298.257223563) so the same provider
// works for any Celestial, not just Earth.
func NewNEDProvider(latDeg, lonDeg, equatorialRadiusKm, flattening float64) Provider {
	return ProviderFunc(func(instant.Instant) (Transform, error) {
		const deg2rad = math.Pi / 180.0
		lat := latDeg * deg2rad
		lon := lonDeg * deg2rad
		sinLat, cosLat := math.Sincos(lat)
		sinLon, cosLon := math.Sincos(lon)

		e2 := flattening * (2.0 - flattening)
		N := equatorialRadiusKm / math.Sqrt(1.0-e2*sinLat*sinLat)

		origin := [3]float64{
			N * cosLat * cosLon,
			N * cosLat * sinLon,
			N * (1.0 - e2) * sinLat,
		}

		// NED axes expressed in body-fixed Cartesian coordinates (the
		// North, East, Down unit vectors become the matrix rows below).
		north := [3]float64{-sinLat * cosLon, -sinLat * sinLon, cosLat}
		east := [3]float64{-sinLon, cosLon, 0}
		down := [3]float64{-cosLat * cosLon, -cosLat * sinLon, -sinLat}

		// Orientation rotates a body-fixed vector into NED components:
		// row i = dot product with axis i.
		m := [3][3]float64{north, east, down}

		return Transform{
			Translation: origin,
			Orientation: quatFromArray(m),
		}, nil
	})
}
