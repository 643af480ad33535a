// Package spiceephem provides the ephemeris data manager: it tracks loaded
// SPICE kernels and serves body position/velocity queries by delegating the
// binary SPK decoding to the spk package.
package spiceephem

import (
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/open-space-collective/ostk-physics-go/manager"
	"github.com/open-space-collective/ostk-physics-go/spk"
)

const envModeVar = "OSTK_GO_SPICEEPHEM_MANAGER_MODE"
const envRepositoryVar = "OSTK_GO_SPICEEPHEM_MANAGER_LOCAL_REPOSITORY"
const envTimeoutVar = "OSTK_GO_SPICEEPHEM_MANAGER_LOCAL_REPOSITORY_LOCK_TIMEOUT"
const defaultLocalRepository = "./.open-space-toolkit/physics/data/environment/ephemeris/spice"
const defaultTimeout = 60 * time.Second

// ErrBodyUnavailable is returned when no loaded SPK kernel carries a chain
// to the Solar System Barycenter for the requested body.
var ErrBodyUnavailable = errors.New("spiceephem: body not present in any loaded kernel")

// Manager tracks loaded SPICE kernels and serves ephemeris queries. SPK
// kernels are parsed eagerly on load (via the spk package); other kernel
// types are recorded but not parsed, matching this library's scope (binary
// ephemeris only — text kernels like LSK/FK are outside it).
type Manager struct {
	*manager.Manager

	mu       sync.RWMutex
	kernels  []Kernel
	spkFiles []*spk.SPK
}

var (
	instance     *Manager
	instanceOnce sync.Once
)

// Get returns the process-wide Manager singleton.
func Get() *Manager {
	instanceOnce.Do(func() {
		instance = newManager()
	})
	return instance
}

func defaultConfig() manager.Config {
	return manager.Config{
		ModeEnvVar:             envModeVar,
		RepositoryEnvVar:       envRepositoryVar,
		TimeoutEnvVar:          envTimeoutVar,
		DefaultLocalRepository: defaultLocalRepository,
		DefaultTimeout:         defaultTimeout,
	}
}

func newManager() *Manager {
	return &Manager{Manager: manager.New(defaultConfig())}
}

// LoadKernel registers a kernel at path, deriving its type from the file
// extension. SPK kernels are parsed immediately; other types are recorded
// in Kernels() only.
func (m *Manager) LoadKernel(path string) (Kernel, error) {
	k := NewKernel(path)

	m.mu.Lock()
	defer m.mu.Unlock()

	if k.Type == SPK {
		parsed, err := spk.Open(path)
		if err != nil {
			return Kernel{}, errors.Wrapf(err, "spiceephem: loading SPK kernel %q", path)
		}
		m.spkFiles = append(m.spkFiles, parsed)
	}
	m.kernels = append(m.kernels, k)
	return k, nil
}

// Kernels returns every kernel registered via LoadKernel, in load order.
func (m *Manager) Kernels() []Kernel {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Kernel, len(m.kernels))
	copy(out, m.kernels)
	return out
}

// HasBody reports whether any loaded SPK kernel can serve position/velocity
// queries for the given NAIF body id.
func (m *Manager) HasBody(id int) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, f := range m.spkFiles {
		if f.HasBody(id) {
			return true
		}
	}
	return false
}

// PositionOf returns the light-time-corrected position of target as seen
// from observer, in km, ICRF frame, at the given TDB Julian Date — the
// first loaded SPK kernel with a chain for both bodies serves the query.
func (m *Manager) PositionOf(target, observer int, tdbJD float64) ([3]float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, f := range m.spkFiles {
		if f.HasBody(target) && f.HasBody(observer) {
			return f.ObserveFrom(observer, target, tdbJD), nil
		}
	}
	return [3]float64{}, errors.Wrapf(ErrBodyUnavailable, "target=%d observer=%d", target, observer)
}

// GeocentricPositionOf returns the geometric (no light-time correction)
// geocentric position of target, in km, ICRF frame, at the given TDB
// Julian Date.
func (m *Manager) GeocentricPositionOf(target int, tdbJD float64) ([3]float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, f := range m.spkFiles {
		if f.HasBody(target) && f.HasBody(spk.Earth) {
			return f.GeocentricPosition(target, tdbJD), nil
		}
	}
	return [3]float64{}, errors.Wrapf(ErrBodyUnavailable, "target=%d", target)
}

// VelocityOf returns the barycentric velocity of target, in km/day, ICRF
// frame, at the given TDB Julian Date.
func (m *Manager) VelocityOf(target int, tdbJD float64) ([3]float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if target != spk.Earth {
		return [3]float64{}, errors.Wrap(ErrBodyUnavailable, "spiceephem: only Earth velocity is exposed by the underlying SPK decoder")
	}
	for _, f := range m.spkFiles {
		if f.HasBody(target) {
			return f.EarthVelocity(tdbJD), nil
		}
	}
	return [3]float64{}, errors.Wrapf(ErrBodyUnavailable, "target=%d", target)
}

// Reset drops every loaded kernel and re-reads manager configuration from
// the environment.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.kernels = nil
	m.spkFiles = nil
	m.Manager.Reset(defaultConfig())
}
