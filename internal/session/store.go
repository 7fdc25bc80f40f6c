package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"roomassistant/internal/logging"
)

// Store persists the single Session record as a JSON file. Every write
// replaces the whole record; there is no merge at this layer. The record is
// shared between flows that may run in separate processes (a settings save
// racing reconciliation), so all access goes through an advisory lock file.
type Store struct {
	path   string
	lock   *flock.Flock
	logger *slog.Logger
}

// NewStore creates a store backed by the file at path.
func NewStore(path string, logger *slog.Logger) *Store {
	return &Store{
		path:   path,
		lock:   flock.New(path + ".lock"),
		logger: logging.NewComponentLogger(logger, "session"),
	}
}

// Load returns the persisted Session, or ok=false when no record exists.
// A payload that fails to deserialize is treated as absent, not as an
// error: a corrupt session is equivalent to logged-out.
func (s *Store) Load() (Session, bool, error) {
	if err := s.lock.RLock(); err != nil {
		return Session{}, false, fmt.Errorf("lock session record: %w", err)
	}
	defer s.lock.Unlock()
	return s.loadLocked()
}

func (s *Store) loadLocked() (Session, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Session{}, false, nil
		}
		return Session{}, false, fmt.Errorf("read session record: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil || !sess.Valid() {
		s.logger.Warn("discarding unreadable session record",
			logging.String(logging.FieldEventType, "session_record_corrupt"),
			logging.String("path", s.path),
			logging.String(logging.FieldImpact, "user is treated as logged out"))
		return Session{}, false, nil
	}
	return sess, true, nil
}

// Save replaces the persisted record wholesale.
func (s *Store) Save(sess Session) error {
	if !sess.Valid() {
		return errors.New("session requires email and plan")
	}
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("lock session record: %w", err)
	}
	defer s.lock.Unlock()
	return s.saveLocked(sess)
}

func (s *Store) saveLocked(sess Session) error {
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create session directory: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Mutate re-reads the record under the write lock, applies fn, and saves the
// result. Callers must not assume the value they last wrote is still
// current, because reconciliation may race a user-initiated save.
func (s *Store) Mutate(fn func(*Session)) (Session, error) {
	if err := s.lock.Lock(); err != nil {
		return Session{}, fmt.Errorf("lock session record: %w", err)
	}
	defer s.lock.Unlock()

	sess, ok, err := s.loadLocked()
	if err != nil {
		return Session{}, err
	}
	if !ok {
		return Session{}, errors.New("no session record")
	}
	fn(&sess)
	if err := s.saveLocked(sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// Clear removes the persisted record. Clearing an absent record is not an error.
func (s *Store) Clear() error {
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("lock session record: %w", err)
	}
	defer s.lock.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove session record: %w", err)
	}
	return nil
}
