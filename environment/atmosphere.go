package environment

import (
	"math"

	"github.com/pkg/errors"
)

// ErrAtmosphericModelUndefined is returned by NullAtmosphere.DensityAt, mirroring
// gravity.ErrModelUndefined and magnetic.ErrModelUndefined.
var ErrAtmosphericModelUndefined = errors.New("environment: atmospheric model undefined")

// AtmosphericModel computes mass density, in kg/m^3, from the altitude (km)
// above the reference ellipsoid alone. Numerically
// evaluating NRLMSISE-00 (the original's reference model) from real solar
// and geomagnetic indices is outside this library's scope; this package
// only offers the analytically closed forms a caller can plug in in its
// place.
type AtmosphericModel interface {
	DensityAt(altitudeKm float64) (float64, error)
}

// NullAtmosphere is the "no model" signal: every query fails with
// ErrAtmosphericModelUndefined.
type NullAtmosphere struct{}

func (NullAtmosphere) DensityAt(float64) (float64, error) {
	return 0, ErrAtmosphericModelUndefined
}

// ExponentialAtmosphere is the classic exponential atmosphere approximation
// (Vallado table 8-4): density decays as rho0 * exp(-(h-h0)/H) from a
// reference altitude/density/scale-height triplet. Below MinAltitudeKm it
// reports an error rather than extrapolating into the model's breakdown
// region.
type ExponentialAtmosphere struct {
	ReferenceAltitudeKm float64
	ReferenceDensity    float64 // kg/m^3
	ScaleHeightKm       float64
	MinAltitudeKm       float64
}

func (a ExponentialAtmosphere) DensityAt(altitudeKm float64) (float64, error) {
	if altitudeKm < a.MinAltitudeKm {
		return 0, errors.Errorf("environment: altitude %g km is below the model's minimum %g km", altitudeKm, a.MinAltitudeKm)
	}
	return a.ReferenceDensity * math.Exp(-(altitudeKm-a.ReferenceAltitudeKm)/a.ScaleHeightKm), nil
}
