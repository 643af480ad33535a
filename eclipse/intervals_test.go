package eclipse

import (
	"testing"

	"github.com/open-space-collective/ostk-physics-go/coordinate"
	"github.com/open-space-collective/ostk-physics-go/environment"
	"github.com/open-space-collective/ostk-physics-go/frame"
	"github.com/open-space-collective/ostk-physics-go/instant"
)

// stepSunEphemeris places the Sun on the -X axis (occulting, as seen from a
// +X observer past Earth) before switchJD and on the +X axis (clear) after.
type stepSunEphemeris struct {
	switchJD float64
}

func (e stepSunEphemeris) GeocentricPositionOf(target int, tdbJD float64) ([3]float64, error) {
	if target != sunNAIFID {
		return [3]float64{0, 0, 0}, nil // Earth, fixed at its own center
	}
	if tdbJD < e.switchJD {
		return [3]float64{-400000, 0, 0}, nil
	}
	return [3]float64{400000, 0, 0}, nil
}

const sunNAIFID = 10
const earthNAIFID = 399

func newTestEnvironment(switchJD float64) *environment.Environment {
	eph := stepSunEphemeris{switchJD: switchJD}

	r := frame.New()
	r.Register(&frame.Frame{Name: frame.GCRF, Provider: frame.ProviderFunc(func(instant.Instant) (frame.Transform, error) {
		return frame.Identity, nil
	})})

	earth := environment.NewCelestial("Earth", earthNAIFID, 6378.137, 0, frame.GCRF, eph)
	sun := environment.NewCelestial("Sun", sunNAIFID, 695700, 0, "", eph)

	env := environment.New(instant.J2000, r, earth, sun)
	_ = env.SetCentralBody("Earth")
	return env
}

func TestEclipseIntervalsAtPosition_FindsOneOccultationInterval(t *testing.T) {
	start := instant.J2000
	end := start.Add(instant.DurationFromSeconds(3600))
	mid := start.Add(instant.DurationFromSeconds(1800))
	midJD := mid.ToJulianDate(instant.TDB)

	env := newTestEnvironment(midJD)
	analysisInterval, err := instant.NewInterval(start, end, instant.Closed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	position := coordinate.NewPosition([3]float64{10000, 0, 0}, frame.GCRF)

	intervals, err := EclipseIntervalsAtPosition(analysisInterval, position, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(intervals) != 1 {
		t.Fatalf("expected exactly one occultation interval, got %d", len(intervals))
	}

	iv := intervals[0]
	if !iv.Start.IsNear(start, instant.DurationFromSeconds(2)) {
		t.Fatalf("expected interval to start near the analysis start, got %v", iv.Start)
	}
	if !iv.End.IsNear(mid, instant.DurationFromSeconds(2)) {
		t.Fatalf("expected interval to end near the switch time, got %v", iv.End)
	}
}

func TestEclipseIntervalsAtPosition_NoOccultationWhenSunNeverOccluded(t *testing.T) {
	start := instant.J2000
	end := start.Add(instant.DurationFromSeconds(3600))
	// switchJD before start: Sun is always on the clear (+X) side.
	env := newTestEnvironment(start.ToJulianDate(instant.TDB) - 1)

	analysisInterval, err := instant.NewInterval(start, end, instant.Closed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	position := coordinate.NewPosition([3]float64{10000, 0, 0}, frame.GCRF)

	intervals, err := EclipseIntervalsAtPosition(analysisInterval, position, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(intervals) != 0 {
		t.Fatalf("expected no occultation intervals, got %d", len(intervals))
	}
}

func TestEclipseIntervalsAtPosition_ExplicitOccludingBody(t *testing.T) {
	start := instant.J2000
	end := start.Add(instant.DurationFromSeconds(3600))
	mid := start.Add(instant.DurationFromSeconds(1800))

	env := newTestEnvironment(mid.ToJulianDate(instant.TDB))
	analysisInterval, _ := instant.NewInterval(start, end, instant.Closed)
	position := coordinate.NewPosition([3]float64{10000, 0, 0}, frame.GCRF)

	intervals, err := EclipseIntervalsAtPosition(analysisInterval, position, env, "Earth")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(intervals) != 1 {
		t.Fatalf("expected exactly one occultation interval, got %d", len(intervals))
	}
}

func TestEclipseIntervalsAtPosition_NoCentralBodyErrors(t *testing.T) {
	eph := stepSunEphemeris{switchJD: 0}
	r := frame.New()
	r.Register(&frame.Frame{Name: frame.GCRF, Provider: frame.ProviderFunc(func(instant.Instant) (frame.Transform, error) {
		return frame.Identity, nil
	})})
	earth := environment.NewCelestial("Earth", earthNAIFID, 6378.137, 0, frame.GCRF, eph)
	sun := environment.NewCelestial("Sun", sunNAIFID, 695700, 0, "", eph)
	env := environment.New(instant.J2000, r, earth, sun) // no central body set

	start := instant.J2000
	end := start.Add(instant.DurationFromSeconds(3600))
	analysisInterval, _ := instant.NewInterval(start, end, instant.Closed)
	position := coordinate.NewPosition([3]float64{10000, 0, 0}, frame.GCRF)

	if _, err := EclipseIntervalsAtPosition(analysisInterval, position, env); err == nil {
		t.Fatalf("expected an error when no central body is configured and none is named")
	}
}
