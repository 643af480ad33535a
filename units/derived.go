package units

import "errors"

// ErrUnitIncompatible is returned when two Derived quantities do not share
// the same SI exponent tuple and therefore cannot be compared or combined.
var ErrUnitIncompatible = errors.New("units: incompatible derived unit orders")

// Rational is a rational exponent p/q, kept unreduced on construction and
// compared by cross-multiplication so 2/4 and 1/2 are recognized as equal.
type Rational struct {
	Num, Den int
}

// R is a convenience constructor for a Rational exponent. Den defaults to 1
// when omitted.
func R(num int, den ...int) Rational {
	d := 1
	if len(den) > 0 {
		d = den[0]
	}
	return Rational{Num: num, Den: d}
}

func (r Rational) equal(o Rational) bool {
	return r.Num*o.Den == o.Num*r.Den
}

// DerivedUnit is a compound SI unit expressed as the rational exponents of
// its five base dimensions: length (L), mass (M), time (T), electric
// current (I), and luminous intensity (Θ).
type DerivedUnit struct {
	Length, Mass, Time, Current, Luminous Rational
}

// Compatible reports whether two DerivedUnits share the same exponent tuple.
func (a DerivedUnit) Compatible(b DerivedUnit) bool {
	return a.Length.equal(b.Length) &&
		a.Mass.equal(b.Mass) &&
		a.Time.equal(b.Time) &&
		a.Current.equal(b.Current) &&
		a.Luminous.equal(b.Luminous)
}

// Common derived units used by the gravitational/magnetic/atmospheric models.
var (
	// GravitationalParameterUnit is L^3 T^-2 (e.g. km^3/s^2).
	GravitationalParameterUnit = DerivedUnit{Length: R(3), Time: R(-2)}
	// AccelerationUnit is L T^-2.
	AccelerationUnit = DerivedUnit{Length: R(1), Time: R(-2)}
	// DensityUnit is M L^-3.
	DensityUnit = DerivedUnit{Mass: R(1), Length: R(-3)}
	// MagneticFluxDensityUnit is M T^-2 I^-1 (tesla).
	MagneticFluxDensityUnit = DerivedUnit{Mass: R(1), Time: R(-2), Current: R(-1)}
)

// Derived is a scalar value tagged with a DerivedUnit.
type Derived struct {
	value float64
	unit  DerivedUnit
}

// NewDerived creates a Derived value of the given magnitude and unit.
func NewDerived(value float64, unit DerivedUnit) Derived { return Derived{value: value, unit: unit} }

// Unit returns the DerivedUnit the value was constructed with.
func (d Derived) Unit() DerivedUnit { return d.unit }

// Value returns the raw magnitude.
func (d Derived) Value() float64 { return d.value }

// Add returns d + other if their units are compatible, else ErrUnitIncompatible.
func (d Derived) Add(other Derived) (Derived, error) {
	if !d.unit.Compatible(other.unit) {
		return Derived{}, ErrUnitIncompatible
	}
	return Derived{value: d.value + other.value, unit: d.unit}, nil
}

// Sub returns d - other if their units are compatible, else ErrUnitIncompatible.
func (d Derived) Sub(other Derived) (Derived, error) {
	if !d.unit.Compatible(other.unit) {
		return Derived{}, ErrUnitIncompatible
	}
	return Derived{value: d.value - other.value, unit: d.unit}, nil
}

// Compare returns -1, 0, or 1 if d is less than, equal to, or greater than
// other, or ErrUnitIncompatible if the units' dimensions differ.
func (d Derived) Compare(other Derived) (int, error) {
	if !d.unit.Compatible(other.unit) {
		return 0, ErrUnitIncompatible
	}
	switch {
	case d.value < other.value:
		return -1, nil
	case d.value > other.value:
		return 1, nil
	default:
		return 0, nil
	}
}
