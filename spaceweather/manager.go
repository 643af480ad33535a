// Package spaceweather provides the CSSI space-weather data manager:
// parsing the daily Kp/Ap/F10.7 flat file and serving indices at a given
// calendar day.
package spaceweather

import (
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/open-space-collective/ostk-physics-go/manager"
)

const envModeVar = "OSTK_GO_SPACEWEATHER_MANAGER_MODE"
const envRepositoryVar = "OSTK_GO_SPACEWEATHER_MANAGER_LOCAL_REPOSITORY"
const envTimeoutVar = "OSTK_GO_SPACEWEATHER_MANAGER_LOCAL_REPOSITORY_LOCK_TIMEOUT"
const defaultLocalRepository = "./.open-space-toolkit/physics/data/environment/atmospheric/earth/CSSISpaceWeather"
const defaultTimeout = 60 * time.Second

// ErrNoCoverage is returned when a query date falls outside the loaded file.
var ErrNoCoverage = errors.New("spaceweather: date outside loaded coverage")

// Manager serves CSSI space-weather records and is a singleton obtained
// through Get.
type Manager struct {
	*manager.Manager

	mu      sync.RWMutex
	records []Record // sorted by Date
	byDate  map[int64]int
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

// Load parses records and indexes them by calendar day, replacing any
// previously loaded data.
func (m *Manager) Load(records []Record) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sorted := make([]Record, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	byDate := make(map[int64]int, len(sorted))
	for i, r := range sorted {
		byDate[dayKey(r.Date)] = i
	}

	m.records = sorted
	m.byDate = byDate
}

// Records returns every currently loaded record, in date order.
func (m *Manager) Records() []Record {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Record, len(m.records))
	copy(out, m.records)
	return out
}

// At returns the Record for the calendar day containing i (time-of-day is
// ignored), or ErrNoCoverage if that day has no loaded record.
func (m *Manager) At(i time.Time) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	idx, ok := m.byDate[dayKey(i)]
	if !ok {
		return Record{}, ErrNoCoverage
	}
	return m.records[idx], nil
}

// KpAt returns the 3-hourly Kp index covering the given time (UTC hour
// selects one of the day's 8 values), or ErrNoCoverage outside coverage.
func (m *Manager) KpAt(t time.Time) (float64, error) {
	rec, err := m.At(t)
	if err != nil {
		return 0, err
	}
	return rec.Kp[kpApBucket(t)], nil
}

// ApAt returns the 3-hourly Ap index covering the given time, or
// ErrNoCoverage outside coverage.
func (m *Manager) ApAt(t time.Time) (int, error) {
	rec, err := m.At(t)
	if err != nil {
		return 0, err
	}
	return rec.Ap[kpApBucket(t)], nil
}

// F107At returns the observed and adjusted F10.7 solar radio flux for the
// calendar day containing t, or ErrNoCoverage outside coverage.
func (m *Manager) F107At(t time.Time) (observed, adjusted float64, err error) {
	rec, e := m.At(t)
	if e != nil {
		return 0, 0, e
	}
	return rec.F107Observed, rec.F107Adjusted, nil
}

// Reset drops all loaded records and re-reads manager configuration from
// the environment.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = nil
	m.byDate = nil
	m.Manager.Reset(defaultConfig())
}

func dayKey(t time.Time) int64 {
	y, mo, d := t.UTC().Date()
	return int64(y)*10000 + int64(mo)*100 + int64(d)
}

// kpApBucket maps an hour-of-day to one of the 8 three-hourly index slots.
func kpApBucket(t time.Time) int {
	return t.UTC().Hour() / 3
}
