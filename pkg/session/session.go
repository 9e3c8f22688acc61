package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/enum"
)

// Session is the persisted identity of the signed-in user. Its absence means
// the application runs as a guest.
type Session struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	AccessToken string `json:"access_token"`
}

type EventType string

var (
	SignedIn       = enum.New(EventType("signed_in"))
	SignedOut      = enum.New(EventType("signed_out"))
	TokenRefreshed = enum.New(EventType("token_refreshed"))
)

type Store interface {
	// Load returns the persisted session, or nil if there is none.
	Load() (*Session, error)
	Save(session *Session) error
	Clear() error
}

type fileStore struct {
	path string
}

// NewFileStore persists the session as a JSON file, so it survives restarts
// of the application.
func NewFileStore(path string) Store {
	return &fileStore{path: path}
}

func (s *fileStore) Load() (*Session, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	session := &Session{}
	if err := json.Unmarshal(b, session); err != nil {
		return nil, err
	}

	return session, nil
}

func (s *fileStore) Save(session *Session) error {
	b, err := json.Marshal(session)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}

	return os.WriteFile(s.path, b, 0o600)
}

func (s *fileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	return nil
}
