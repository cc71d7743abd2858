package snapstore

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/mcarrero/laborstat/internal/contract"
	"github.com/mcarrero/laborstat/schema"
)

const (
	archiveDirName    = ".laborstat"
	archiveDBFileName = "laborstat.db"
)

// GetArchiveDBFilePath returns the default SQLite archive location under the
// user's home directory.
func GetArchiveDBFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	dir := filepath.Join(home, archiveDirName)
	_ = os.MkdirAll(dir, 0o755)
	return filepath.Join(dir, archiveDBFileName)
}

// StoreManager holds the process-wide run archive.
type StoreManager struct {
	mu        sync.RWMutex
	initOnce  sync.Once
	closeOnce sync.Once
	runStore  contract.RunStore
}

var _ contract.SnapshotManager = &StoreManager{} // Compile-time check

// Manager is the global archive manager used by command executors.
var Manager = &StoreManager{}

// InitStores initializes the run archive exactly once per process.
func (m *StoreManager) InitStores(backend schema.DatabaseBackend, connStr string) error {
	var initErr error
	m.initOnce.Do(func() {
		store, err := NewRunStore(backend, connStr)
		if err != nil {
			initErr = err
			return
		}
		m.mu.Lock()
		m.runStore = store
		m.mu.Unlock()
	})
	return initErr
}

// GetRunStore returns the initialized run archive, or nil when InitStores has
// not run or failed.
func (m *StoreManager) GetRunStore() contract.RunStore {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.runStore
}

// CloseStores closes the archive connection exactly once.
func (m *StoreManager) CloseStores() error {
	var closeErr error
	m.closeOnce.Do(func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.runStore != nil {
			closeErr = m.runStore.Close()
			m.runStore = nil
		}
	})
	return closeErr
}

// ClearArchive wipes the archive for the given backend. For SQLite this
// removes the database file itself; for server backends it truncates the
// archive tables.
func ClearArchive(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = GetArchiveDBFilePath()
		}
		if err := os.Remove(dbPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove archive file %q: %w", dbPath, err)
		}
		return nil

	case schema.MySQLBackend, schema.PostgreSQLBackend:
		store, err := NewRunStore(backend, connStr)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		return store.Clear()

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported store backend: %s", backend)
	}
}
