package iers

import (
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/interp"

	"github.com/open-space-collective/ostk-physics-go/manager"
)

const envModeVar = "OSTK_GO_IERS_MANAGER_MODE"
const envRepositoryVar = "OSTK_GO_IERS_MANAGER_LOCAL_REPOSITORY"
const envTimeoutVar = "OSTK_GO_IERS_MANAGER_LOCAL_REPOSITORY_LOCK_TIMEOUT"
const defaultLocalRepository = "./.open-space-toolkit/physics/data/coordinate/frame/provider/iers"
const defaultTimeout = 60 * time.Second

// ErrNoCoverage is returned when a query instant falls outside the loaded
// Finals2000A/BulletinA span.
var ErrNoCoverage = errors.New("iers: instant outside loaded EOP coverage")

// Manager serves Earth-orientation data (polar motion, UT1-UTC, length of
// day) and is a singleton obtained through Get, mirroring the process-wide
// manager this library's frame providers consult for Earth rotation.
type Manager struct {
	*manager.Manager

	mu           sync.RWMutex
	bulletinA    BulletinA
	finals2000A  Finals2000A
	merged       []Record // finals2000A records plus any BulletinA predicted tail, MJD-ordered
	pmxInterp    *interp.PiecewiseLinear
	pmyInterp    *interp.PiecewiseLinear
	ut1Interp    *interp.PiecewiseLinear
	lodInterp    *interp.PiecewiseLinear
	dxInterp     *interp.PiecewiseLinear
	dyInterp     *interp.PiecewiseLinear
	lastIdxHint  int
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

func newManager() *Manager {
	cfg := manager.Config{
		ModeEnvVar:             envModeVar,
		RepositoryEnvVar:       envRepositoryVar,
		TimeoutEnvVar:          envTimeoutVar,
		DefaultLocalRepository: defaultLocalRepository,
		DefaultTimeout:         defaultTimeout,
	}
	return &Manager{Manager: manager.New(cfg)}
}

// LoadBulletinA loads a BulletinA into the manager, merging its predicted
// tail with any already-loaded Finals2000A data.
func (m *Manager) LoadBulletinA(b BulletinA) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bulletinA = b
	m.rebuildLocked()
}

// LoadFinals2000A loads a Finals2000A product into the manager.
func (m *Manager) LoadFinals2000A(f Finals2000A) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.finals2000A = f
	m.rebuildLocked()
}

// BulletinA returns the currently loaded BulletinA.
func (m *Manager) BulletinA() BulletinA {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.bulletinA
}

// Finals2000A returns the currently loaded Finals2000A.
func (m *Manager) Finals2000A() Finals2000A {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.finals2000A
}

func (m *Manager) rebuildLocked() {
	byMJD := make(map[float64]Record, len(m.finals2000A.Records)+len(m.bulletinA.Records))
	for _, r := range m.finals2000A.Records {
		byMJD[r.MJD] = r
	}
	for _, r := range m.bulletinA.Records {
		if _, ok := byMJD[r.MJD]; !ok {
			byMJD[r.MJD] = r
		}
	}

	merged := make([]Record, 0, len(byMJD))
	for _, r := range byMJD {
		merged = append(merged, r)
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].MJD < merged[j].MJD })
	m.merged = merged
	m.lastIdxHint = 0

	if len(merged) < 2 {
		m.pmxInterp, m.pmyInterp, m.ut1Interp, m.lodInterp = nil, nil, nil, nil
		m.dxInterp, m.dyInterp = nil, nil
		return
	}

	mjds := make([]float64, len(merged))
	pmx := make([]float64, len(merged))
	pmy := make([]float64, len(merged))
	ut1 := make([]float64, len(merged))
	lod := make([]float64, len(merged))
	dx := make([]float64, len(merged))
	dy := make([]float64, len(merged))
	for i, r := range merged {
		mjds[i] = r.MJD
		pmx[i] = r.PolarMotionX
		pmy[i] = r.PolarMotionY
		ut1[i] = r.UT1MinusUTC
		lod[i] = r.LOD
		dx[i] = r.CelestialPoleOffsetX
		dy[i] = r.CelestialPoleOffsetY
	}

	m.pmxInterp = fitPiecewiseLinear(mjds, pmx)
	m.pmyInterp = fitPiecewiseLinear(mjds, pmy)
	m.ut1Interp = fitPiecewiseLinear(mjds, ut1)
	m.lodInterp = fitPiecewiseLinear(mjds, lod)
	m.dxInterp = fitPiecewiseLinear(mjds, dx)
	m.dyInterp = fitPiecewiseLinear(mjds, dy)
}

func fitPiecewiseLinear(xs, ys []float64) *interp.PiecewiseLinear {
	pl := &interp.PiecewiseLinear{}
	if err := pl.Fit(xs, ys); err != nil {
		return nil
	}
	return pl
}

// coverageLocked reports whether mjd falls within [merged[0].MJD,
// merged[len-1].MJD]. It is a plain bounds check; the last-accessed index
// hint used for repeated nearby queries lives in indexHintLocked.
func (m *Manager) coverageLocked(mjd float64) bool {
	if len(m.merged) == 0 {
		return false
	}
	return mjd >= m.merged[0].MJD && mjd <= m.merged[len(m.merged)-1].MJD
}

func (m *Manager) indexHintLocked(mjd float64) int {
	n := len(m.merged)
	hint := m.lastIdxHint
	if hint >= 0 && hint < n-1 && m.merged[hint].MJD <= mjd && mjd <= m.merged[hint+1].MJD {
		return hint
	}
	idx := sort.Search(n, func(i int) bool { return m.merged[i].MJD >= mjd })
	if idx > 0 {
		idx--
	}
	if idx > n-2 {
		idx = n - 2
	}
	m.lastIdxHint = idx
	return idx
}

// PolarMotionAt returns (x, y) polar motion, in arcseconds, at the given
// UTC Modified Julian Date.
func (m *Manager) PolarMotionAt(mjdUTC float64) (x, y float64, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.coverageLocked(mjdUTC) || m.pmxInterp == nil || m.pmyInterp == nil {
		return 0, 0, ErrNoCoverage
	}
	m.indexHintLocked(mjdUTC)
	return m.pmxInterp.Predict(mjdUTC), m.pmyInterp.Predict(mjdUTC), nil
}

// Ut1MinusUtcAt returns UT1-UTC, in seconds, at the given UTC Modified
// Julian Date. It satisfies instant.EOPSource.
func (m *Manager) Ut1MinusUtcAt(mjdUTC float64) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.coverageLocked(mjdUTC) || m.ut1Interp == nil {
		return 0, ErrNoCoverage
	}
	m.indexHintLocked(mjdUTC)
	return m.ut1Interp.Predict(mjdUTC), nil
}

// LodAt returns the length-of-day excess, in milliseconds, at the given
// UTC Modified Julian Date.
func (m *Manager) LodAt(mjdUTC float64) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.coverageLocked(mjdUTC) || m.lodInterp == nil {
		return 0, ErrNoCoverage
	}
	m.indexHintLocked(mjdUTC)
	return m.lodInterp.Predict(mjdUTC), nil
}

// CelestialPoleOffsetAt returns (dX, dY), the Bulletin A celestial pole
// offsets with respect to the IAU 2000A precession-nutation model, in
// arcseconds, at the given UTC Modified Julian Date. Coverage gaps in the
// offset series (it runs behind the polar-motion/UT1-UTC series) yield
// (0, 0) rather than ErrNoCoverage, since zero offset is the correct
// "no correction available" value, not a failure.
func (m *Manager) CelestialPoleOffsetAt(mjdUTC float64) (dX, dY float64, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.coverageLocked(mjdUTC) {
		return 0, 0, ErrNoCoverage
	}
	if m.dxInterp == nil || m.dyInterp == nil {
		return 0, 0, nil
	}
	m.indexHintLocked(mjdUTC)
	return m.dxInterp.Predict(mjdUTC), m.dyInterp.Predict(mjdUTC), nil
}

// DataAt returns the full interpolated Record at the given UTC Modified
// Julian Date (Predicted is true if either neighboring row is Predicted).
func (m *Manager) DataAt(mjdUTC float64) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.coverageLocked(mjdUTC) {
		return Record{}, ErrNoCoverage
	}
	idx := m.indexHintLocked(mjdUTC)
	predicted := m.merged[idx].Predicted || m.merged[idx+1].Predicted

	x, y, err := func() (float64, float64, error) {
		if m.pmxInterp == nil || m.pmyInterp == nil {
			return 0, 0, ErrNoCoverage
		}
		return m.pmxInterp.Predict(mjdUTC), m.pmyInterp.Predict(mjdUTC), nil
	}()
	if err != nil {
		return Record{}, err
	}
	ut1 := m.ut1Interp.Predict(mjdUTC)
	lod := m.lodInterp.Predict(mjdUTC)

	var dx, dy float64
	if m.dxInterp != nil && m.dyInterp != nil {
		dx, dy = m.dxInterp.Predict(mjdUTC), m.dyInterp.Predict(mjdUTC)
	}

	return Record{
		MJD:                  mjdUTC,
		PolarMotionX:         x,
		PolarMotionY:         y,
		UT1MinusUTC:          ut1,
		LOD:                  lod,
		CelestialPoleOffsetX: dx,
		CelestialPoleOffsetY: dy,
		Predicted:            predicted,
	}, nil
}

// Reset drops all loaded EOP data and re-reads manager configuration from
// the environment.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bulletinA = BulletinA{}
	m.finals2000A = Finals2000A{}
	m.merged = nil
	m.pmxInterp, m.pmyInterp, m.ut1Interp, m.lodInterp = nil, nil, nil, nil
	m.dxInterp, m.dyInterp = nil, nil
	m.Manager.Reset(manager.Config{
		ModeEnvVar:             envModeVar,
		RepositoryEnvVar:       envRepositoryVar,
		TimeoutEnvVar:          envTimeoutVar,
		DefaultLocalRepository: defaultLocalRepository,
		DefaultTimeout:         defaultTimeout,
	})
}
