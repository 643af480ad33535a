package frame

// Well-known frame names registered by RegisterStandardFrames.
const (
	GCRF = "GCRF"
	J2000 = "J2000"
	MOD   = "MOD"
	TOD   = "TOD"
	TEME  = "TEME"
	CIRF  = "CIRF"
	TIRF  = "TIRF"
	ITRF  = "ITRF"
)
