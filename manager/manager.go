// Package manager provides the shared base behavior for this library's
// data managers (iers, spaceweather, spiceephem, gravity, magnetic): a
// local repository directory, a manifest of known remote resources, and a
// file-lock protocol so multiple processes sharing one repository don't
// corrupt each other's downloads.
package manager

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Mode selects whether a manager may reach out to remote sources.
type Mode int

const (
	// Manual managers only ever serve data explicitly loaded by the caller.
	Manual Mode = iota
	// Automatic managers fetch, cache, and refresh data from remote
	// sources on their own.
	Automatic
)

func (m Mode) String() string {
	if m == Automatic {
		return "Automatic"
	}
	return "Manual"
}

// ErrLockTimeout is returned when the local repository's lock file could
// not be acquired before the configured timeout elapsed.
var ErrLockTimeout = errors.New("manager: timed out acquiring local repository lock")

const lockPollInterval = 1 * time.Second
const lockFileName = ".lock"

// Manager is the embeddable base type for this library's data managers. It
// is safe for concurrent use.
type Manager struct {
	mu sync.Mutex

	mode                   Mode
	localRepository        string
	localRepositoryTimeout time.Duration

	viper *viper.Viper
}

// Config carries the environment-variable names and defaults a concrete
// manager configures its embedded Manager with.
type Config struct {
	ModeEnvVar    string
	RepositoryEnvVar string
	TimeoutEnvVar string

	DefaultLocalRepository string
	DefaultTimeout         time.Duration
}

// New constructs a Manager, reading overrides from the environment
// variables named in cfg via viper (each manager gets its own *viper.Viper
// instance so concurrently constructed managers never share global state).
func New(cfg Config) *Manager {
	m := &Manager{viper: viper.New()}
	m.configure(cfg)
	return m
}

func (m *Manager) configure(cfg Config) {
	v := m.viper
	v.SetDefault("mode", "Manual")
	v.SetDefault("repository", cfg.DefaultLocalRepository)
	v.SetDefault("timeout", cfg.DefaultTimeout.String())

	if cfg.ModeEnvVar != "" {
		_ = v.BindEnv("mode", cfg.ModeEnvVar)
	}
	if cfg.RepositoryEnvVar != "" {
		_ = v.BindEnv("repository", cfg.RepositoryEnvVar)
	}
	if cfg.TimeoutEnvVar != "" {
		_ = v.BindEnv("timeout", cfg.TimeoutEnvVar)
	}

	m.mode = Manual
	if v.GetString("mode") == "Automatic" {
		m.mode = Automatic
	}
	m.localRepository = v.GetString("repository")

	if d, err := time.ParseDuration(v.GetString("timeout")); err == nil && d > 0 {
		m.localRepositoryTimeout = d
	} else {
		m.localRepositoryTimeout = cfg.DefaultTimeout
	}
}

// Mode returns the manager's current mode.
func (m *Manager) Mode() Mode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mode
}

// SetMode changes the manager's mode.
func (m *Manager) SetMode(mode Mode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mode = mode
}

// LocalRepository returns the directory this manager caches data in.
func (m *Manager) LocalRepository() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.localRepository
}

// SetLocalRepository changes the directory this manager caches data in,
// creating it if necessary.
func (m *Manager) SetLocalRepository(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "manager: creating local repository %q", dir)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.localRepository = dir
	return nil
}

// LocalRepositoryLockTimeout returns the maximum time AcquireLock will poll
// for the lock file before giving up.
func (m *Manager) LocalRepositoryLockTimeout() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.localRepositoryTimeout
}

// EnsureLocalRepository creates the local repository directory if it does
// not already exist.
func (m *Manager) EnsureLocalRepository() error {
	return os.MkdirAll(m.LocalRepository(), 0o755)
}

// AcquireLock creates the repository's `.lock` sentinel file, polling at
// 1 Hz until it succeeds or the configured timeout elapses. The returned
// release function must be called to remove the sentinel.
func (m *Manager) AcquireLock() (release func(), err error) {
	if err := m.EnsureLocalRepository(); err != nil {
		return nil, err
	}
	lockPath := filepath.Join(m.LocalRepository(), lockFileName)
	deadline := time.Now().Add(m.LocalRepositoryLockTimeout())

	for {
		f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err == nil {
			_ = f.Close()
			return func() { _ = os.Remove(lockPath) }, nil
		}
		if !os.IsExist(err) {
			return nil, errors.Wrap(err, "manager: creating lock file")
		}
		if time.Now().After(deadline) {
			return nil, ErrLockTimeout
		}
		time.Sleep(lockPollInterval)
	}
}

// Reset drops any in-memory state and re-reads configuration from the
// environment. Concrete managers override this to also clear their loaded
// records; they should call Manager.Reset as part of doing so.
func (m *Manager) Reset(cfg Config) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.configure(cfg)
}

// ClearLocalRepository removes every file in the local repository
// directory (but not the directory itself).
func (m *Manager) ClearLocalRepository() error {
	dir := m.LocalRepository()
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, "manager: reading local repository %q", dir)
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(dir, e.Name())); err != nil {
			return errors.Wrapf(err, "manager: clearing %q", e.Name())
		}
	}
	return nil
}

// ResourceEntry is one row of the shared Manifest: a named resource and
// where/how often to refresh it from.
type ResourceEntry struct {
	RemoteURLs      []string  `json:"remote_urls"`
	LastModified    time.Time `json:"last_modified"`
	CheckFrequency  string    `json:"check_frequency"` // e.g. "24h"
}

// Manifest maps a resource id (e.g. "finals2000A", "CSSI_2.0") to its
// ResourceEntry. It is a single global file, conventionally loaded once by
// a root manager and consulted by each concrete manager.
type Manifest struct {
	Resources map[string]ResourceEntry `json:"resources"`
}

// LoadManifest reads and parses a Manifest JSON file.
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, errors.Wrapf(err, "manager: reading manifest %q", path)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, errors.Wrapf(err, "manager: parsing manifest %q", path)
	}
	return m, nil
}

// Save writes the Manifest back out as JSON.
func (m Manifest) Save(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return errors.Wrap(err, "manager: marshaling manifest")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "manager: writing manifest %q", path)
	}
	return nil
}
