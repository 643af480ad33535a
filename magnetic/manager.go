package magnetic

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/open-space-collective/ostk-physics-go/manager"
)

const envModeVar = "OSTK_GO_MAGNETIC_MANAGER_MODE"
const envRepositoryVar = "OSTK_GO_MAGNETIC_MANAGER_LOCAL_REPOSITORY"
const envTimeoutVar = "OSTK_GO_MAGNETIC_MANAGER_LOCAL_REPOSITORY_LOCK_TIMEOUT"
const defaultLocalRepository = "./.open-space-toolkit/physics/environment/magnetic/earth"
const defaultTimeout = 60 * time.Second

// CoefficientFile is a cached magnetic-model coefficient file (e.g. a WMM
// .cof file). Like gravity.CoefficientFile, this type never parses the
// coefficient bytes themselves.
type CoefficientFile struct {
	ModelName string // e.g. "wmm2020", "emm2017"
	Path      string
	Degree    int
	Order     int
}

// Manager tracks cached magnetic coefficient files and is a singleton
// obtained through Get.
type Manager struct {
	*manager.Manager

	mu    sync.RWMutex
	files map[string]CoefficientFile // by ModelName
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
	return &Manager{Manager: manager.New(defaultConfig()), files: make(map[string]CoefficientFile)}
}

// RegisterCoefficientFile records a coefficient file already present in the
// manager's local repository, keyed by modelName (e.g. "wmm2020").
func (m *Manager) RegisterCoefficientFile(modelName, path string, degree, order int) CoefficientFile {
	cf := CoefficientFile{ModelName: modelName, Path: path, Degree: degree, Order: order}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[modelName] = cf
	return cf
}

// CoefficientFileFor returns the registered coefficient file for modelName,
// and whether one was found.
func (m *Manager) CoefficientFileFor(modelName string) (CoefficientFile, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cf, ok := m.files[modelName]
	return cf, ok
}

// LocalPathFor joins the manager's local repository with a model's
// conventional filename, without checking the file actually exists.
func (m *Manager) LocalPathFor(filename string) string {
	return filepath.Join(m.LocalRepository(), filename)
}

// Reset drops every registered coefficient file and re-reads manager
// configuration from the environment.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files = make(map[string]CoefficientFile)
	m.Manager.Reset(defaultConfig())
}
