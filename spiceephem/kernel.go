package spiceephem

import (
	"path/filepath"
	"strings"
)

// KernelType identifies a SPICE kernel's content.
type KernelType int

const (
	KernelUnknown KernelType = iota
	SCLK                     // spacecraft clock
	LSK                      // leap seconds
	PCK                      // planetary constants
	IK                       // instrument
	FK                       // frame
	EK                       // events
	MK                       // meta-kernel (furnsh list)
	SPK                      // ephemeris (binary DAF, parsed by the spk package)
	BPCK                     // binary planetary constants
	CK                       // camera/attitude
	BEK                      // binary events
)

func (t KernelType) String() string {
	switch t {
	case SCLK:
		return "SCLK"
	case LSK:
		return "LSK"
	case PCK:
		return "PCK"
	case IK:
		return "IK"
	case FK:
		return "FK"
	case EK:
		return "EK"
	case MK:
		return "MK"
	case SPK:
		return "SPK"
	case BPCK:
		return "BPCK"
	case CK:
		return "CK"
	case BEK:
		return "BEK"
	default:
		return "Unknown"
	}
}

// kernelTypeByExtension maps a SPICE kernel's conventional file extension to
// its KernelType; see NAIF's "Kernel Required Reading" naming conventions.
var kernelTypeByExtension = map[string]KernelType{
	".tsc": SCLK,
	".tls": LSK,
	".tpc": PCK,
	".ti":  IK,
	".tf":  FK,
	".tm":  MK,
	".bsp": SPK,
	".bpc": BPCK,
	".bc":  CK,
	".bek": BEK,
}

// Kernel is one loaded or registered SPICE kernel file.
type Kernel struct {
	Type KernelType
	Path string
}

// NewKernel builds a Kernel, deriving its Type from path's extension.
func NewKernel(path string) Kernel {
	ext := strings.ToLower(filepath.Ext(path))
	return Kernel{Type: kernelTypeByExtension[ext], Path: path}
}
