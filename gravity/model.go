// Package gravity provides a pluggable gravitational-field interface plus
// the data manager that fetches and caches gravity coefficient files
// (e.g. EGM2008). Numerically evaluating a real spherical-harmonic series
// is outside this library's scope — the manager hands callers the cached
// file; a Model evaluates a field from whatever coefficients it holds.
package gravity

import (
	"math"

	"github.com/pkg/errors"
)

// ErrModelUndefined is returned by Null.FieldAt: the "no model" signal a
// Celestial reports when it was built without a gravitational model.
var ErrModelUndefined = errors.New("gravity: model undefined")

// Model computes the gravitational acceleration, in km/s^2, at a position
// expressed in the model's own body-fixed frame (in km).
type Model interface {
	FieldAt(position [3]float64) ([3]float64, error)
}

// Null is the "no model" signal: every query fails with ErrModelUndefined.
type Null struct{}

func (Null) FieldAt([3]float64) ([3]float64, error) { return [3]float64{}, ErrModelUndefined }

// Spherical is the point-mass (degree-0) approximation: a = -GM r / |r|^3.
type Spherical struct {
	GM float64 // km^3/s^2
}

func (m Spherical) FieldAt(position [3]float64) ([3]float64, error) {
	r := math.Sqrt(position[0]*position[0] + position[1]*position[1] + position[2]*position[2])
	if r == 0 {
		return [3]float64{}, errors.New("gravity: position is at the origin")
	}
	scale := -m.GM / (r * r * r)
	return [3]float64{position[0] * scale, position[1] * scale, position[2] * scale}, nil
}

// J2 adds the dominant oblateness perturbation to the point-mass term,
// expressed in the body-fixed equatorial frame (Z along the spin axis).
type J2 struct {
	GM                  float64 // km^3/s^2
	EquatorialRadiusKm  float64
	J2                  float64 // dimensionless zonal coefficient
}

func (m J2) FieldAt(position [3]float64) ([3]float64, error) {
	x, y, z := position[0], position[1], position[2]
	r2 := x*x + y*y + z*z
	r := math.Sqrt(r2)
	if r == 0 {
		return [3]float64{}, errors.New("gravity: position is at the origin")
	}

	pointMassScale := -m.GM / (r2 * r)
	field := [3]float64{x * pointMassScale, y * pointMassScale, z * pointMassScale}

	// Vallado eq. 8-21: J2 zonal perturbation.
	re := m.EquatorialRadiusKm
	factor := 1.5 * m.J2 * m.GM * re * re / (r2 * r2 * r)
	zr2 := (z * z) / r2
	cx := factor * x * (5*zr2 - 1)
	cy := factor * y * (5*zr2 - 1)
	cz := factor * z * (5*zr2 - 3)

	return [3]float64{field[0] + cx, field[1] + cy, field[2] + cz}, nil
}
