package units

// MassUnit identifies the unit a Mass was expressed in.
type MassUnit int

const (
	Kilogram MassUnit = iota
	Gram
	Pound
	Tonne
)

var massToKilograms = map[MassUnit]float64{
	Kilogram: 1.0,
	Gram:     1e-3,
	Pound:    0.45359237,
	Tonne:    1000.0,
}

func (u MassUnit) String() string {
	switch u {
	case Kilogram:
		return "kg"
	case Gram:
		return "g"
	case Pound:
		return "lb"
	case Tonne:
		return "t"
	default:
		return "?"
	}
}

// Mass is a mass quantity tagged with the unit it was constructed with.
type Mass struct {
	value float64
	unit  MassUnit
}

// NewMass creates a Mass of value expressed in unit.
func NewMass(value float64, unit MassUnit) Mass { return Mass{value: value, unit: unit} }

// Unit returns the unit the Mass was constructed with.
func (m Mass) Unit() MassUnit { return m.unit }

// Value returns the raw magnitude in the Mass's own unit.
func (m Mass) Value() float64 { return m.value }

// In converts the Mass to unit, returning a new Mass tagged with it.
func (m Mass) In(unit MassUnit) Mass {
	kg := m.value * massToKilograms[m.unit]
	return Mass{value: kg / massToKilograms[unit], unit: unit}
}

// Kg returns the mass in kilograms.
func (m Mass) Kg() float64 { return m.value * massToKilograms[m.unit] }

// Add returns m + other, converting other to m's unit first.
func (m Mass) Add(other Mass) Mass {
	return Mass{value: m.value + other.In(m.unit).value, unit: m.unit}
}

// Sub returns m - other, converting other to m's unit first.
func (m Mass) Sub(other Mass) Mass {
	return Mass{value: m.value - other.In(m.unit).value, unit: m.unit}
}
