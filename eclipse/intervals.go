package eclipse

import (
	"github.com/pkg/errors"

	"github.com/open-space-collective/ostk-physics-go/coordinate"
	"github.com/open-space-collective/ostk-physics-go/environment"
	"github.com/open-space-collective/ostk-physics-go/instant"
	"github.com/open-space-collective/ostk-physics-go/search"
)

// coarseStepDays is the occultation-predicate sampling step: order 10 s.
const coarseStepDays = 10.0 / 86400.0

// refineEpsilonDays is the bisection refinement tolerance: 1 s, the tight
// end of the configurable "duration tolerance" target.
const refineEpsilonDays = 1.0 / 86400.0

// EclipseIntervalsAtPosition returns the ordered list of intervals, within
// analysisInterval, during which the Sun as seen from position is occluded
// by one of occludingBodyNames (default: env's central body). position is
// treated as fixed for the whole analysis interval — this traces shadow
// passages of a stationary point, not a moving trajectory; callers wanting
// eclipse intervals along an orbit call this once per sampled state.
//
// Algorithm: sample the occultation predicate at a coarse step (order 10s),
// bisect each bracketed transition down to a 1 s tolerance, and pair
// occultation-start/occultation-end transitions into closed intervals.
// Penumbra is not modeled: a body either fully occults the Sun as a point,
// or it doesn't.
func EclipseIntervalsAtPosition(analysisInterval instant.Interval, position coordinate.Position, env *environment.Environment, occludingBodyNames ...string) ([]instant.Interval, error) {
	bodies, err := resolveOccludingBodies(env, occludingBodyNames)
	if err != nil {
		return nil, err
	}

	sun, err := env.BodyByName("Sun")
	if err != nil {
		return nil, errors.Wrap(err, "eclipse: environment has no Sun body")
	}

	startJD := analysisInterval.Start.ToJulianDate(instant.TDB)
	endJD := analysisInterval.End.ToJulianDate(instant.TDB)

	occulted := func(tdbJD float64) int {
		i := instant.FromJulianDate(tdbJD, instant.TDB)
		sunPos, err := sun.PositionIn(position.Frame, i, env.Registry())
		if err != nil {
			return 0
		}
		for _, b := range bodies {
			bodyPos, err := b.PositionIn(position.Frame, i, env.Registry())
			if err != nil {
				continue
			}
			if b.Geometry(bodyPos.Coordinates).IntersectsSegment(position.Coordinates, sunPos.Coordinates) {
				return 1
			}
		}
		return 0
	}

	events, err := search.FindDiscrete(startJD, endJD, coarseStepDays, occulted, refineEpsilonDays)
	if err != nil {
		return nil, errors.Wrap(err, "eclipse: searching for occultation transitions")
	}

	var intervals []instant.Interval
	inEclipse := occulted(startJD) == 1
	startT := startJD

	for _, e := range events {
		if e.NewValue == 1 {
			startT = e.T
			inEclipse = true
			continue
		}
		if inEclipse {
			if iv, err := instant.NewInterval(instant.FromJulianDate(startT, instant.TDB), instant.FromJulianDate(e.T, instant.TDB), instant.Closed); err == nil {
				intervals = append(intervals, iv)
			}
			inEclipse = false
		}
	}

	if inEclipse {
		if iv, err := instant.NewInterval(instant.FromJulianDate(startT, instant.TDB), analysisInterval.End, instant.Closed); err == nil {
			intervals = append(intervals, iv)
		}
	}

	return intervals, nil
}

func resolveOccludingBodies(env *environment.Environment, names []string) ([]*environment.Celestial, error) {
	if len(names) == 0 {
		central, ok := env.CentralBody()
		if !ok {
			return nil, errors.New("eclipse: environment has no central body and none was specified")
		}
		return []*environment.Celestial{central}, nil
	}

	bodies := make([]*environment.Celestial, 0, len(names))
	for _, name := range names {
		b, err := env.BodyByName(name)
		if err != nil {
			return nil, err
		}
		bodies = append(bodies, b)
	}
	return bodies, nil
}
