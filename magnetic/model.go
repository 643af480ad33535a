// Package magnetic provides a pluggable magnetic-field interface plus the
// data manager that fetches and caches magnetic coefficient files (e.g.
// WMM). As in gravity, numerically evaluating a real spherical-harmonic
// magnetic series is outside this library's scope; the manager hands
// callers the cached file, a Model evaluates a field from whatever
// coefficients it holds.
package magnetic

import (
	"math"

	"github.com/pkg/errors"
)

// ErrModelUndefined is returned by Null.FieldAt: the "no model" signal a
// Celestial reports when it was built without a magnetic model.
var ErrModelUndefined = errors.New("magnetic: model undefined")

// Model computes the magnetic flux density, in Tesla, at a position
// expressed in the model's own body-fixed frame (in km).
type Model interface {
	FieldAt(position [3]float64) ([3]float64, error)
}

// Null is the "no model" signal: every query fails with ErrModelUndefined.
type Null struct{}

func (Null) FieldAt([3]float64) ([3]float64, error) { return [3]float64{}, ErrModelUndefined }

// Dipole is the centered-dipole approximation of a body's main field,
// moment M pointing along the body-fixed Z axis.
//
//	B = (mu0/4pi) * (3(m.r_hat)r_hat - m) / r^3
type Dipole struct {
	MomentZ float64 // A*m^2, aligned with the body-fixed Z axis
}

const mu0Over4Pi = 1e-7 // T*m/A

func (d Dipole) FieldAt(position [3]float64) ([3]float64, error) {
	x, y, z := position[0]*1000, position[1]*1000, position[2]*1000 // km -> m
	r2 := x*x + y*y + z*z
	r := math.Sqrt(r2)
	if r == 0 {
		return [3]float64{}, errors.New("magnetic: position is at the origin")
	}

	mDotRHat := d.MomentZ * z / r // m is (0,0,MomentZ), r_hat = position/r
	scale := mu0Over4Pi / (r2 * r)

	bx := scale * 3 * mDotRHat * x / r
	by := scale * 3 * mDotRHat * y / r
	bz := scale * (3*mDotRHat*z/r - d.MomentZ)

	return [3]float64{bx, by, bz}, nil
}
