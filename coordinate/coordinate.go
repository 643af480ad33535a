// Package coordinate provides the frame-tagged value types — Position,
// Velocity, and Axes — used to express a state vector in a named frame and
// move it between frames through the frame package's registry.
package coordinate

import (
	"math"

	"github.com/pkg/errors"

	"github.com/open-space-collective/ostk-physics-go/frame"
	"github.com/open-space-collective/ostk-physics-go/instant"
	"github.com/open-space-collective/ostk-physics-go/units"
)

// ErrFrameMismatch is returned by IsNear (and similar binary operations)
// when both operands don't already share a frame: reframing happens only
// when the caller explicitly asks for it via In, never silently.
var ErrFrameMismatch = errors.New("coordinate: operands are expressed in different frames")

// Position is a 3-vector position, in kilometers, expressed in a named frame.
type Position struct {
	Coordinates [3]float64
	Frame       string
}

// NewPosition builds a Position from kilometer components.
func NewPosition(coordinates [3]float64, frameName string) Position {
	return Position{Coordinates: coordinates, Frame: frameName}
}

// In reframes the position into targetFrame at instant i.
func (p Position) In(targetFrame string, i instant.Instant, registry *frame.Registry) (Position, error) {
	if p.Frame == targetFrame {
		return p, nil
	}
	t, err := registry.TransformAt(p.Frame, targetFrame, i)
	if err != nil {
		return Position{}, errors.Wrapf(err, "coordinate: reframing position from %q to %q", p.Frame, targetFrame)
	}
	return Position{Coordinates: t.ApplyPosition(p.Coordinates), Frame: targetFrame}, nil
}

// Norm returns the magnitude of the position vector, in kilometers.
func (p Position) Norm() units.Length {
	v := p.Coordinates
	return units.NewLength(norm3(v), units.Kilometer)
}

// IsNear reports whether p and other are within tolerance of each other.
// Both must already be in the same frame; if not, ErrFrameMismatch is
// returned rather than silently reframing one operand.
func (p Position) IsNear(other Position, tolerance units.Length) (bool, error) {
	if p.Frame != other.Frame {
		return false, ErrFrameMismatch
	}
	d := sub3(p.Coordinates, other.Coordinates)
	return norm3(d) <= tolerance.Km(), nil
}

// Velocity is a 3-vector velocity, in kilometers per second, co-located with
// a Position expressed in the same frame.
type Velocity struct {
	Coordinates [3]float64
	Frame       string
}

// NewVelocity builds a Velocity from km/s components.
func NewVelocity(coordinates [3]float64, frameName string) Velocity {
	return Velocity{Coordinates: coordinates, Frame: frameName}
}

// In reframes the velocity into targetFrame at instant i, given the
// co-located position p (also expressed in the velocity's current frame).
// Reframing a velocity needs the position too: v' = R·(v − v0) − ω × R·(r − r0),
// where r0, v0 are the transform's origin position and velocity and ω its
// angular velocity (see frame.Transform.ApplyVelocity).
func (v Velocity) In(targetFrame string, p Position, i instant.Instant, registry *frame.Registry) (Velocity, error) {
	if v.Frame != p.Frame {
		return Velocity{}, ErrFrameMismatch
	}
	if v.Frame == targetFrame {
		return v, nil
	}
	t, err := registry.TransformAt(v.Frame, targetFrame, i)
	if err != nil {
		return Velocity{}, errors.Wrapf(err, "coordinate: reframing velocity from %q to %q", v.Frame, targetFrame)
	}
	return Velocity{Coordinates: t.ApplyVelocity(p.Coordinates, v.Coordinates), Frame: targetFrame}, nil
}

// IsNear reports whether v and other are within tolerance (km/s) of each
// other; both must already share a frame.
func (v Velocity) IsNear(other Velocity, toleranceKmPerSec float64) (bool, error) {
	if v.Frame != other.Frame {
		return false, ErrFrameMismatch
	}
	d := sub3(v.Coordinates, other.Coordinates)
	return norm3(d) <= toleranceKmPerSec, nil
}

// Axes is an orthonormal (x, y, z) basis expressed in a named frame.
type Axes struct {
	X, Y, Z [3]float64
	Frame   string
}

// NewAxes builds an Axes triad in frameName.
func NewAxes(x, y, z [3]float64, frameName string) Axes {
	return Axes{X: x, Y: y, Z: z, Frame: frameName}
}

// In reframes every basis vector into targetFrame at instant i, rotating
// each by the orientation delta (the translation component of the
// transform doesn't apply to a basis vector).
func (a Axes) In(targetFrame string, i instant.Instant, registry *frame.Registry) (Axes, error) {
	if a.Frame == targetFrame {
		return a, nil
	}
	t, err := registry.TransformAt(a.Frame, targetFrame, i)
	if err != nil {
		return Axes{}, errors.Wrapf(err, "coordinate: reframing axes from %q to %q", a.Frame, targetFrame)
	}
	rotationOnly := frame.Transform{Orientation: t.Orientation}
	return Axes{
		X:     rotationOnly.ApplyPosition(a.X),
		Y:     rotationOnly.ApplyPosition(a.Y),
		Z:     rotationOnly.ApplyPosition(a.Z),
		Frame: targetFrame,
	}, nil
}

func sub3(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func norm3(v [3]float64) float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}
