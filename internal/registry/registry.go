// Package registry tracks the open tabs and sessions of a vtmux instance and
// persists their metadata to disk so a detached daemon and an attaching
// client agree on what exists.
package registry

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// lockTimeout bounds how long withFileLock waits for the companion lock file
// before giving up, so a crashed holder can't wedge every other process.
const lockTimeout = 2 * time.Second

// PaneEntry describes one pane's bound session for persistence purposes.
type PaneEntry struct {
	SessionID string    `yaml:"session_id"`
	Activity  Activity  `yaml:"activity"`
	UpdatedAt time.Time `yaml:"updated_at"`
}

// TabEntry is one tab: an ordered, named collection of panes.
type TabEntry struct {
	ID      int         `yaml:"id"`
	Name    string      `yaml:"name"`
	Dir     string      `yaml:"dir"`
	Panes   []PaneEntry `yaml:"panes"`
	Created time.Time   `yaml:"created"`
}

// document is the on-disk shape of the registry file.
type document struct {
	ActiveTabID int        `yaml:"active_tab_id"`
	NextTabID   int        `yaml:"next_tab_id"`
	Tabs        []TabEntry `yaml:"tabs"`
}

// Registry is an in-memory, file-backed record of a running vtmux instance's
// tabs and panes. All mutating methods hold an exclusive file lock for the
// duration of the read-modify-write cycle, so multiple processes (a daemon
// and an attaching client) never race on the same file.
type Registry struct {
	mu   sync.Mutex
	path string
	lock *flock.Flock

	doc document
}

// Open loads (or creates) the registry file at path.
func Open(path string) (*Registry, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	r := &Registry{path: path, lock: flock.New(path + ".lock")}
	if err := r.reload(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Registry) reload() error {
	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		r.doc = document{NextTabID: 1}
		return nil
	}
	if err != nil {
		return err
	}
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	if doc.NextTabID == 0 {
		doc.NextTabID = 1
	}
	r.doc = doc
	return nil
}

func (r *Registry) persist() error {
	data, err := yaml.Marshal(r.doc)
	if err != nil {
		return err
	}
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, r.path)
}

// withFileLock runs fn while holding an exclusive lock on the registry's
// companion lock file, reloading state before and persisting after.
func (r *Registry) withFileLock(fn func() error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), lockTimeout)
	defer cancel()
	locked, err := r.lock.TryLockContext(ctx, 50*time.Millisecond)
	if err != nil {
		return err
	}
	if !locked {
		log.Printf("registry: timed out waiting for lock on %s", r.path)
		return context.DeadlineExceeded
	}
	defer r.lock.Unlock()

	if err := r.reload(); err != nil {
		return err
	}
	if err := fn(); err != nil {
		return err
	}
	return r.persist()
}

// AddTab creates a new tab named name with working directory dir, and
// returns its assigned id.
func (r *Registry) AddTab(name, dir string) (int, error) {
	var id int
	err := r.withFileLock(func() error {
		id = r.doc.NextTabID
		r.doc.NextTabID++
		r.doc.Tabs = append(r.doc.Tabs, TabEntry{
			ID:      id,
			Name:    name,
			Dir:     dir,
			Created: time.Now(),
		})
		r.doc.ActiveTabID = id
		return nil
	})
	return id, err
}

// RemoveTab deletes the tab with the given id.
func (r *Registry) RemoveTab(id int) error {
	return r.withFileLock(func() error {
		for i, tab := range r.doc.Tabs {
			if tab.ID == id {
				r.doc.Tabs = append(r.doc.Tabs[:i], r.doc.Tabs[i+1:]...)
				break
			}
		}
		if r.doc.ActiveTabID == id && len(r.doc.Tabs) > 0 {
			r.doc.ActiveTabID = r.doc.Tabs[0].ID
		}
		return nil
	})
}

// SetActiveTab marks id as the active tab.
func (r *Registry) SetActiveTab(id int) error {
	return r.withFileLock(func() error {
		r.doc.ActiveTabID = id
		return nil
	})
}

// AddPane attaches a new pane bound to sessionID to the tab with id tabID.
func (r *Registry) AddPane(tabID int, sessionID string) error {
	return r.withFileLock(func() error {
		for i := range r.doc.Tabs {
			if r.doc.Tabs[i].ID == tabID {
				r.doc.Tabs[i].Panes = append(r.doc.Tabs[i].Panes, PaneEntry{
					SessionID: sessionID,
					UpdatedAt: time.Now(),
				})
				return nil
			}
		}
		return nil
	})
}

// UpdateActivity records the current Activity for the pane bound to
// sessionID, wherever it lives in the tree.
func (r *Registry) UpdateActivity(sessionID string, activity Activity) error {
	return r.withFileLock(func() error {
		for ti := range r.doc.Tabs {
			for pi := range r.doc.Tabs[ti].Panes {
				if r.doc.Tabs[ti].Panes[pi].SessionID == sessionID {
					r.doc.Tabs[ti].Panes[pi].Activity = activity
					r.doc.Tabs[ti].Panes[pi].UpdatedAt = time.Now()
					return nil
				}
			}
		}
		return nil
	})
}

// Snapshot returns a copy of the current tab list and the active tab id,
// without acquiring the file lock (the in-memory copy may be briefly stale
// relative to a concurrent writer; callers needing freshness should Open a
// fresh Registry).
func (r *Registry) Snapshot() (tabs []TabEntry, activeTabID int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tabs = make([]TabEntry, len(r.doc.Tabs))
	copy(tabs, r.doc.Tabs)
	return tabs, r.doc.ActiveTabID
}

// NewSessionID generates a fresh, globally unique session id for a pane.
func NewSessionID() string {
	return uuid.New().String()
}
