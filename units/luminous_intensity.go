package units

// LuminousIntensityUnit identifies the unit a LuminousIntensity was expressed in.
type LuminousIntensityUnit int

const (
	Candela LuminousIntensityUnit = iota
)

var luminousToCandela = map[LuminousIntensityUnit]float64{
	Candela: 1.0,
}

func (u LuminousIntensityUnit) String() string {
	switch u {
	case Candela:
		return "cd"
	default:
		return "?"
	}
}

// LuminousIntensity is a luminous intensity quantity tagged with its unit.
type LuminousIntensity struct {
	value float64
	unit  LuminousIntensityUnit
}

// NewLuminousIntensity creates a LuminousIntensity of value expressed in unit.
func NewLuminousIntensity(value float64, unit LuminousIntensityUnit) LuminousIntensity {
	return LuminousIntensity{value: value, unit: unit}
}

// Unit returns the unit the LuminousIntensity was constructed with.
func (l LuminousIntensity) Unit() LuminousIntensityUnit { return l.unit }

// Value returns the raw magnitude in the LuminousIntensity's own unit.
func (l LuminousIntensity) Value() float64 { return l.value }

// Candelas returns the intensity in candela.
func (l LuminousIntensity) Candelas() float64 { return l.value * luminousToCandela[l.unit] }
