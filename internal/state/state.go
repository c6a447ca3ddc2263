// Package state is the local persistence tier: a small sqlite key/value
// store for preferences and per-item playback positions.
package state

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/llehouerou/lanshelf/internal/db"
)

const (
	appName           = "lanshelf"
	dbFileName        = "lanshelf.db"
	defaultMaxEntries = 2000
)

type Manager struct {
	db         *sql.DB
	mu         sync.Mutex
	maxEntries int
	now        func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithMaxEntries caps the number of per-item positions kept.
func WithMaxEntries(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.maxEntries = n
		}
	}
}

// WithClock sets the time source used for updated_at.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// Open opens the store in the XDG data directory.
func Open(opts ...Option) (*Manager, error) {
	dbPath, err := getDBPath()
	if err != nil {
		return nil, err
	}
	return OpenPath(dbPath, opts...)
}

// OpenPath opens the store at path. ":memory:" gives a private in-memory store.
func OpenPath(path string, opts ...Option) (*Manager, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}

	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// One connection serializes writers and keeps ":memory:" shared.
	sqlDB.SetMaxOpenConns(1)

	if err := initSchema(sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}

	m := &Manager{db: sqlDB, maxEntries: defaultMaxEntries, now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

func (m *Manager) Close() error {
	return m.db.Close()
}

func (m *Manager) DB() *sql.DB {
	return m.db
}

// Get returns the stored value for key.
func (m *Manager) Get(key string) (string, bool, error) {
	var value string
	err := m.db.QueryRow(`SELECT value FROM prefs WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set stores value under key.
func (m *Manager) Set(key, value string) error {
	return m.SetMany(map[string]string{key: value})
}

// SetMany stores all values in a single transaction.
func (m *Manager) SetMany(values map[string]string) error {
	if len(values) == 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	ts := m.now().Unix()
	return db.WithTx(context.Background(), m.db, func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`
			INSERT INTO prefs (key, value, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET
				value = excluded.value,
				updated_at = excluded.updated_at
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for k, v := range values {
			if _, err := stmt.Exec(k, v, ts); err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes key.
func (m *Manager) Delete(key string) error {
	_, err := m.db.Exec(`DELETE FROM prefs WHERE key = ?`, key)
	return err
}

// Progress returns the saved position of an item, in seconds.
func (m *Manager) Progress(itemID string) (float64, bool, error) {
	var pos sql.NullFloat64
	err := m.db.QueryRow(`SELECT position FROM item_progress WHERE item_id = ?`, itemID).Scan(&pos)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return db.NullFloat64Value(pos), true, nil
}

// SaveProgress records the position of an item, evicting the least
// recently updated rows beyond the configured cap.
func (m *Manager) SaveProgress(itemID string, position float64) error {
	if position < 0 {
		position = 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	ts := m.now().UnixNano()
	return db.WithTx(context.Background(), m.db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO item_progress (item_id, position, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(item_id) DO UPDATE SET
				position = excluded.position,
				updated_at = excluded.updated_at
		`, itemID, position, ts)
		if err != nil {
			return err
		}

		_, err = tx.Exec(`
			DELETE FROM item_progress WHERE item_id NOT IN (
				SELECT item_id FROM item_progress
				ORDER BY updated_at DESC, item_id
				LIMIT ?
			)
		`, m.maxEntries)
		return err
	})
}

// ProgressCount returns the number of stored item positions.
func (m *Manager) ProgressCount() (int, error) {
	var n int
	err := m.db.QueryRow(`SELECT COUNT(*) FROM item_progress`).Scan(&n)
	return n, err
}

func getDBPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}
