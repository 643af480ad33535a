package frame

import (
	"math"

	"gonum.org/v1/gonum/num/quat"

	"github.com/open-space-collective/ostk-physics-go/coord"
	"github.com/open-space-collective/ostk-physics-go/instant"
)

const j2000JDTT = 2451545.0
const julianCenturyDays = 36525.0

func julianCenturiesTT(i instant.Instant) float64 {
	return (i.ToJulianDate(instant.TT) - j2000JDTT) / julianCenturyDays
}

// j2000BiasProvider is GCRF->J2000: the small, time-invariant frame-bias
// rotation, grounded on coord.ICRSToJ2000Matrix.
var j2000BiasProvider = ProviderFunc(func(instant.Instant) (Transform, error) {
	return Transform{Orientation: quatFromArray(coord.ICRSToJ2000Matrix)}, nil
})

// modProvider is J2000->MOD: IAU 2006 precession. coord.PrecessionMatrixDateToJ2000
// returns P^T (date->J2000); this provider needs the opposite direction, so
// it conjugates the corresponding quaternion.
var modProvider = ProviderFunc(func(i instant.Instant) (Transform, error) {
	T := julianCenturiesTT(i)
	PT := coord.PrecessionMatrixDateToJ2000(T)
	return Transform{Orientation: quat.Conj(quatFromArray(PT))}, nil
})

// todProvider is MOD->TOD: IAU 2000A nutation, corrected by the EOP
// celestial pole offsets dX, dY when eop supplies them.
// coord.NutationMatrixTrueToMean returns N^T (true->mean); this provider
// needs mean->true.
func todProvider(eop instant.EOPSource) Provider {
	return ProviderFunc(func(i instant.Instant) (Transform, error) {
		T := julianCenturiesTT(i)
		dpsi, deps := correctedNutationAngles(eop, i, T)
		epsM := coord.MeanObliquity(T)
		NT := coord.NutationMatrixTrueToMean(dpsi, deps, epsM)
		return Transform{Orientation: quat.Conj(quatFromArray(NT))}, nil
	})
}

// CelestialPoleOffsetSource supplies the Bulletin A celestial pole offsets
// dX, dY against the IAU 2000A precession-nutation model, in arcseconds.
// Satisfied by *iers.Manager.
type CelestialPoleOffsetSource interface {
	CelestialPoleOffsetAt(mjdUTC float64) (dX, dY float64, err error)
}

// celestialPoleOffsetAt returns the EOP celestial pole offset, in radians,
// at i, or (0, 0) if eop doesn't supply one or has no coverage there: an
// unavailable correction leaves the nutation series uncorrected rather
// than failing the transform.
func celestialPoleOffsetAt(eop instant.EOPSource, i instant.Instant) (dXRad, dYRad float64) {
	cpo, ok := eop.(CelestialPoleOffsetSource)
	if !ok {
		return 0, 0
	}
	dX, dY, err := cpo.CelestialPoleOffsetAt(i.ToModifiedJulianDate(instant.UTC))
	if err != nil {
		return 0, 0
	}
	const asec2rad = math.Pi / (180.0 * 3600.0)
	return dX * asec2rad, dY * asec2rad
}

// correctedNutationAngles applies the small-angle dX, dY celestial pole
// correction to the IAU 2000A series: dX is along the mean-obliquity
// projection of dpsi, dY adds directly to deps (IERS Conventions 2010,
// eq. 5.25).
func correctedNutationAngles(eop instant.EOPSource, i instant.Instant, T float64) (dpsiRad, depsRad float64) {
	dpsiRad, depsRad = coord.NutationAngles(T)
	dXRad, dYRad := celestialPoleOffsetAt(eop, i)
	epsA := coord.MeanObliquity(T)
	if sinEpsA := math.Sin(epsA); sinEpsA != 0 {
		dpsiRad += dXRad / sinEpsA
	}
	depsRad += dYRad
	return
}

// temeProvider is GCRF->TEME, grounded on coord.TEMEToICRF (already the
// full TEME->ICRF rotation pipeline): the provider derives the rotation
// matrix by running the three orthonormal basis vectors through it, then
// inverts (conjugates) to get the GCRF->TEME direction this package's
// parent->child convention expects.
func temeProvider(eop instant.EOPSource) Provider {
	return ProviderFunc(func(i instant.Instant) (Transform, error) {
		jdUT1, err := i.ToUT1(eop)
		if err != nil {
			return Transform{}, err
		}
		var m [3][3]float64
		basis := [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
		for col := 0; col < 3; col++ {
			v := coord.TEMEToICRF(basis[col], jdUT1)
			m[0][col], m[1][col], m[2][col] = v[0], v[1], v[2]
		}
		// m is ICRF_from_TEME (TEME->ICRF); this provider wants GCRF->TEME.
		return Transform{Orientation: quat.Conj(quatFromArray(m))}, nil
	})
}

// cirfProvider is GCRF->CIRF: frame bias + IAU 2006 precession + IAU 2000A
// nutation (the same series as j2000BiasProvider/modProvider/todProvider,
// corrected by EOP dX, dY), composed directly from GCRF rather than routed
// through the registry's J2000->MOD->TOD chain. This approximates the CIP
// by the true equator/equinox pole rather than carrying the separate
// CIO-locator (the "equation of the origins", about 13" at J2000.0 and
// growing by roughly 46" per year); the
// dominant bias+precession+nutation rotation — the part that was
// previously missing entirely — is exact.
func cirfProvider(eop instant.EOPSource) Provider {
	return ProviderFunc(func(i instant.Instant) (Transform, error) {
		T := julianCenturiesTT(i)

		bias := Transform{Orientation: quatFromArray(coord.ICRSToJ2000Matrix)}
		precession := Transform{Orientation: quat.Conj(quatFromArray(coord.PrecessionMatrixDateToJ2000(T)))}

		dpsi, deps := correctedNutationAngles(eop, i, T)
		epsM := coord.MeanObliquity(T)
		nutation := Transform{Orientation: quat.Conj(quatFromArray(coord.NutationMatrixTrueToMean(dpsi, deps, epsM)))}

		return Compose(Compose(bias, precession), nutation), nil
	})
}

// tirfProvider is CIRF->TIRF: rotation by the Earth Rotation Angle about
// the Z axis, grounded on coord.EarthRotationAngle.
func tirfProvider(eop instant.EOPSource) Provider {
	return ProviderFunc(func(i instant.Instant) (Transform, error) {
		jdUT1, err := i.ToUT1(eop)
		if err != nil {
			return Transform{}, err
		}
		eraRad := coord.EarthRotationAngle(jdUT1) * math.Pi / 180.0
		sinE, cosE := math.Sincos(eraRad)
		m := [3][3]float64{
			{cosE, sinE, 0},
			{-sinE, cosE, 0},
			{0, 0, 1},
		}
		return Transform{Orientation: quatFromArray(m)}, nil
	})
}

// itrfProvider is TIRF->ITRF: the linearized polar-motion matrix (Vallado
// eq. 3-78's small-angle form), grounded on the teacher's own toleration of
// linearized approximations elsewhere (e.g. NutationStandard).
func itrfProvider(eop instant.EOPSource) Provider {
	const asec2rad = math.Pi / (180.0 * 3600.0)
	return ProviderFunc(func(i instant.Instant) (Transform, error) {
		mjdUTC := i.ToModifiedJulianDate(instant.UTC)
		xpAsec, ypAsec, err := polarMotionAt(eop, mjdUTC)
		if err != nil {
			return Transform{}, err
		}
		xp := xpAsec * asec2rad
		yp := ypAsec * asec2rad
		m := [3][3]float64{
			{1, 0, xp},
			{0, 1, -yp},
			{-xp, yp, 1},
		}
		return Transform{Orientation: quatFromArray(m)}, nil
	})
}

// PolarMotionSource supplies polar motion; satisfied by *iers.Manager.
type PolarMotionSource interface {
	PolarMotionAt(mjdUTC float64) (x, y float64, err error)
}

func polarMotionAt(eop instant.EOPSource, mjdUTC float64) (float64, float64, error) {
	if pm, ok := eop.(PolarMotionSource); ok {
		return pm.PolarMotionAt(mjdUTC)
	}
	return 0, 0, nil
}

// SetNutationPrecision selects the IAU 2000A nutation series' term count used
// by every Earth-rotation provider (todProvider, cirfProvider, and — via
// coord.TEMEToICRF — temeProvider): coord.NutationStandard (30 terms, fast)
// or coord.NutationFull (678 luni-solar + 687 planetary terms, ~0.001").
// Not safe for concurrent use — call once during setup, before registering
// frames.
func SetNutationPrecision(p coord.NutationPrecision) {
	coord.SetNutationPrecision(p)
}

// RegisterStandardFrames registers GCRF (already the registry's implicit
// root), J2000, MOD, TOD, TEME, CIRF, TIRF, and ITRF on r, using eop for
// every UT1- and polar-motion-dependent provider.
func RegisterStandardFrames(r *Registry, eop instant.EOPSource) {
	r.Register(&Frame{Name: GCRF, Provider: identityProvider})
	r.Register(&Frame{Name: J2000, ParentName: GCRF, Provider: j2000BiasProvider})
	r.Register(&Frame{Name: MOD, ParentName: J2000, Provider: modProvider})
	r.Register(&Frame{Name: TOD, ParentName: MOD, Provider: todProvider(eop)})
	r.Register(&Frame{Name: TEME, ParentName: GCRF, Provider: temeProvider(eop)})
	r.Register(&Frame{Name: CIRF, ParentName: GCRF, Provider: cirfProvider(eop)})
	r.Register(&Frame{Name: TIRF, ParentName: CIRF, Provider: tirfProvider(eop)})
	r.Register(&Frame{Name: ITRF, ParentName: TIRF, Provider: itrfProvider(eop)})
}
