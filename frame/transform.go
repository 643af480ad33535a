// Package frame implements the reference-frame graph and the rigid-body
// transform composition pipeline used to move positions, velocities, and
// orientations between named frames at a given instant.
package frame

import (
	"gonum.org/v1/gonum/num/quat"
)

// Transform is a time-tagged rigid-body transform from one frame to
// another: a translation and rotation of the origin, plus their first
// derivatives (needed to carry velocity and angular velocity along).
type Transform struct {
	Translation     [3]float64  // [km] position of `to` frame's origin, expressed in `from`
	Velocity        [3]float64  // [km/s] translational derivative
	Orientation     quat.Number // rotates a `from`-frame vector into `to`-frame
	AngularVelocity [3]float64  // [rad/s] of `to` frame w.r.t. `from`, expressed in `to`
}

// Identity is the no-op transform.
var Identity = Transform{Orientation: quat.Number{Real: 1}}

// rotate applies q to a 3-vector: v' = q v q^-1, treating v as a pure
// quaternion (0, vx, vy, vz).
func rotate(q quat.Number, v [3]float64) [3]float64 {
	p := quat.Number{Imag: v[0], Jmag: v[1], Kmag: v[2]}
	r := quat.Mul(quat.Mul(q, p), quat.Conj(q))
	return [3]float64{r.Imag, r.Jmag, r.Kmag}
}

func cross(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func addVec(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

// rectifySign flips a quaternion to its canonical hemisphere (Real >= 0) so
// that composing many small transforms doesn't accumulate a sign flip that
// would otherwise make consecutive interpolated orientations discontinuous.
func rectifySign(q quat.Number) quat.Number {
	if q.Real < 0 {
		return quat.Scale(-1, q)
	}
	return q
}

// ApplyPosition transforms a position vector (in `from`) into `to`.
func (t Transform) ApplyPosition(r [3]float64) [3]float64 {
	shifted := [3]float64{r[0] - t.Translation[0], r[1] - t.Translation[1], r[2] - t.Translation[2]}
	return rotate(t.Orientation, shifted)
}

// ApplyVelocity transforms a velocity vector (in `from`, co-located with
// position r in `from`) into `to`: v' = R(v - vOrigin) - w x R(r - rOrigin).
func (t Transform) ApplyVelocity(r, v [3]float64) [3]float64 {
	rShifted := [3]float64{r[0] - t.Translation[0], r[1] - t.Translation[1], r[2] - t.Translation[2]}
	vShifted := [3]float64{v[0] - t.Velocity[0], v[1] - t.Velocity[1], v[2] - t.Velocity[2]}
	rRot := rotate(t.Orientation, rShifted)
	vRot := rotate(t.Orientation, vShifted)
	wxr := cross(t.AngularVelocity, rRot)
	return [3]float64{vRot[0] - wxr[0], vRot[1] - wxr[1], vRot[2] - wxr[2]}
}

// Inverse returns the transform that undoes t.
func (t Transform) Inverse() Transform {
	qInv := quat.Conj(t.Orientation) // unit quaternion: conjugate == inverse
	rotatedTranslation := rotate(t.Orientation, t.Translation)
	negTranslation := [3]float64{-rotatedTranslation[0], -rotatedTranslation[1], -rotatedTranslation[2]}
	rotatedVelocity := rotate(t.Orientation, t.Velocity)
	wxt := cross(t.AngularVelocity, rotatedTranslation)
	negVelocity := [3]float64{wxt[0] - rotatedVelocity[0], wxt[1] - rotatedVelocity[1], wxt[2] - rotatedVelocity[2]}
	return Transform{
		Translation:     negTranslation,
		Velocity:        negVelocity,
		Orientation:     rectifySign(qInv),
		AngularVelocity: rotate(qInv, [3]float64{-t.AngularVelocity[0], -t.AngularVelocity[1], -t.AngularVelocity[2]}),
	}
}

// Compose returns the transform equivalent to applying t first, then next:
// from -t-> mid -next-> to.
func Compose(t, next Transform) Transform {
	orientation := rectifySign(quat.Mul(next.Orientation, t.Orientation))

	qInv := quat.Conj(t.Orientation)
	translation := addVec(t.Translation, rotate(qInv, next.Translation))
	wxt := cross(t.AngularVelocity, next.Translation)
	velocity := addVec(t.Velocity, rotate(qInv, addVec(next.Velocity, wxt)))

	angularVelocity := addVec(rotate(next.Orientation, t.AngularVelocity), next.AngularVelocity)

	return Transform{
		Translation:     translation,
		Velocity:        velocity,
		Orientation:     orientation,
		AngularVelocity: angularVelocity,
	}
}
