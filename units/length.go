package units

// LengthUnit identifies the unit a Length was expressed in.
type LengthUnit int

const (
	Meter LengthUnit = iota
	Kilometer
	AstronomicalUnit
	Foot
	NauticalMile
	LightYear
)

// lengthToMeters is the SI ratio (home unit = Meter) for each LengthUnit.
var lengthToMeters = map[LengthUnit]float64{
	Meter:            1.0,
	Kilometer:        1000.0,
	AstronomicalUnit: AUToKm * 1000.0,
	Foot:             0.3048,
	NauticalMile:     1852.0,
	LightYear:        9.4607304725808e15,
}

func (u LengthUnit) String() string {
	switch u {
	case Meter:
		return "m"
	case Kilometer:
		return "km"
	case AstronomicalUnit:
		return "AU"
	case Foot:
		return "ft"
	case NauticalMile:
		return "nmi"
	case LightYear:
		return "ly"
	default:
		return "?"
	}
}

// Length is a length quantity tagged with the unit it was constructed with.
type Length struct {
	value float64
	unit  LengthUnit
}

// NewLength creates a Length of value expressed in unit.
func NewLength(value float64, unit LengthUnit) Length { return Length{value: value, unit: unit} }

// Unit returns the unit the Length was constructed with.
func (l Length) Unit() LengthUnit { return l.unit }

// Value returns the raw magnitude in the Length's own unit.
func (l Length) Value() float64 { return l.value }

// In converts the Length to unit, returning a new Length tagged with it.
func (l Length) In(unit LengthUnit) Length {
	meters := l.value * lengthToMeters[l.unit]
	return Length{value: meters / lengthToMeters[unit], unit: unit}
}

// Km returns the length in kilometers.
func (l Length) Km() float64 { return l.In(Kilometer).value }

// M returns the length in meters.
func (l Length) M() float64 { return l.value * lengthToMeters[l.unit] }

// AU returns the length in astronomical units.
func (l Length) AU() float64 { return l.In(AstronomicalUnit).value }

// LightSeconds returns the length in light-seconds.
func (l Length) LightSeconds() float64 { return l.M() / 1000.0 / 299792.458 }

// Add returns l + other, converting other to l's unit first (left-hand unit wins).
func (l Length) Add(other Length) Length {
	return Length{value: l.value + other.In(l.unit).value, unit: l.unit}
}

// Sub returns l - other, converting other to l's unit first (left-hand unit wins).
func (l Length) Sub(other Length) Length {
	return Length{value: l.value - other.In(l.unit).value, unit: l.unit}
}

// Scale returns l scaled by a dimensionless factor, in l's own unit.
func (l Length) Scale(factor float64) Length {
	return Length{value: l.value * factor, unit: l.unit}
}
