package environment

import (
	"math"
	"testing"
)

func TestNullAtmosphere_AlwaysErrors(t *testing.T) {
	var m AtmosphericModel = NullAtmosphere{}
	if _, err := m.DensityAt(400); err != ErrAtmosphericModelUndefined {
		t.Fatalf("expected ErrAtmosphericModelUndefined, got %v", err)
	}
}

func TestExponentialAtmosphere_MatchesReferenceAtReferenceAltitude(t *testing.T) {
	m := ExponentialAtmosphere{
		ReferenceAltitudeKm: 400,
		ReferenceDensity:    2.803e-13,
		ScaleHeightKm:       58.515,
		MinAltitudeKm:       0,
	}
	density, err := m.DensityAt(400)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(density-m.ReferenceDensity) > 1e-20 {
		t.Fatalf("expected density at the reference altitude to equal the reference density, got %v", density)
	}
}

func TestExponentialAtmosphere_DecaysWithAltitude(t *testing.T) {
	m := ExponentialAtmosphere{
		ReferenceAltitudeKm: 400,
		ReferenceDensity:    2.803e-13,
		ScaleHeightKm:       58.515,
		MinAltitudeKm:       0,
	}
	low, err := m.DensityAt(400)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	high, err := m.DensityAt(500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if high >= low {
		t.Fatalf("expected density to decrease with altitude, got %v at 400km and %v at 500km", low, high)
	}
}

func TestExponentialAtmosphere_BelowMinAltitudeErrors(t *testing.T) {
	m := ExponentialAtmosphere{ReferenceAltitudeKm: 400, ReferenceDensity: 1, ScaleHeightKm: 50, MinAltitudeKm: 100}
	if _, err := m.DensityAt(50); err == nil {
		t.Fatalf("expected an error below the model's minimum altitude")
	}
}
