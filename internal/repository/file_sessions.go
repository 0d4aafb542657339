package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"antisocial-agent/internal/domain"
)

const sessionFileExt = ".json"

// FileSessionStore keeps sessions in memory and mirrors each one to
// <dir>/<session_id>.json. Sessions written by an earlier process are loaded
// lazily on first access.
type FileSessionStore struct {
	dir string
	now func() time.Time

	mu       sync.Mutex
	sessions map[string]domain.Session
}

// NewFileSessionStore creates the data directory if needed.
func NewFileSessionStore(dir string) (*FileSessionStore, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("repository: data directory must not be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("repository: create data directory: %w", err)
	}
	return &FileSessionStore{
		dir:      dir,
		now:      time.Now,
		sessions: make(map[string]domain.Session),
	}, nil
}

func (s *FileSessionStore) path(id string) string {
	return filepath.Join(s.dir, id+sessionFileExt)
}

// GetSession returns the session with id, reading it from disk when it is not
// cached yet.
func (s *FileSessionStore) GetSession(_ context.Context, id string) (domain.Session, error) {
	if !validSessionID(id) {
		return domain.Session{}, ErrNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[id]; ok {
		return sess.Clone(), nil
	}

	sess, err := readSessionFile(s.path(id))
	if errors.Is(err, os.ErrNotExist) {
		return domain.Session{}, ErrNotFound
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("repository: GetSession: %w", err)
	}
	s.sessions[id] = sess
	return sess.Clone(), nil
}

// SaveSession refreshes sess.UpdatedAt and writes the record to disk.
func (s *FileSessionStore) SaveSession(_ context.Context, sess *domain.Session) error {
	if sess == nil || !validSessionID(sess.SessionID) {
		return errors.New("repository: SaveSession: valid session id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := sess.Clone()
	next.Touch(s.now())

	raw, err := json.MarshalIndent(next, "", "  ")
	if err != nil {
		return fmt.Errorf("repository: SaveSession marshal: %w", err)
	}
	if err := writeFileAtomic(s.path(next.SessionID), raw); err != nil {
		return fmt.Errorf("repository: SaveSession: %w", err)
	}

	s.sessions[next.SessionID] = next
	sess.UpdatedAt = next.UpdatedAt
	return nil
}

// ListSessions merges sessions on disk with the in-memory ones, newest first.
// Files that cannot be decoded are skipped.
func (s *FileSessionStore) ListSessions(_ context.Context) ([]domain.SessionSummary, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("repository: ListSessions read dir: %w", err)
	}

	all := make(map[string]domain.SessionSummary)
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != sessionFileExt {
			continue
		}
		sess, err := readSessionFile(filepath.Join(s.dir, name))
		if err != nil {
			slog.Warn("skipping unreadable session file", "file", name, "err", err)
			continue
		}
		if sess.SessionID == "" {
			sess.SessionID = strings.TrimSuffix(name, sessionFileExt)
		}
		all[sess.SessionID] = sess.Summary()
	}

	s.mu.Lock()
	for id, sess := range s.sessions {
		all[id] = sess.Summary()
	}
	s.mu.Unlock()

	out := make([]domain.SessionSummary, 0, len(all))
	for _, sum := range all {
		out = append(out, sum)
	}
	sortSummaries(out)
	return out, nil
}

func sortSummaries(out []domain.SessionSummary) {
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].SessionID < out[j].SessionID
	})
}

func readSessionFile(path string) (domain.Session, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.Session{}, err
	}
	var sess domain.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return domain.Session{}, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return sess, nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".session-*.tmp")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
