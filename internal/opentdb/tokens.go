package opentdb

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/outsmart/catalogue/internal/filelock"
)

// tokenFileName holds the single global token. The API's session tokens
// track served questions across all categories, so one token serves the
// whole download.
const tokenFileName = "global_token.json"

// TokenStore persists the global session token between runs so interrupted
// downloads resume without re-serving questions.
type TokenStore struct {
	dir  string
	lock *filelock.FileLock
}

// NewTokenStore creates a token store rooted at dir.
func NewTokenStore(dir string) *TokenStore {
	return &TokenStore{
		dir:  dir,
		lock: filelock.NewForDir(dir),
	}
}

type tokenRecord struct {
	Token     string `json:"token"`
	CreatedAt string `json:"created_at"`
	Note      string `json:"note"`
}

// Load returns the persisted token, or "" when none is stored or the file
// cannot be read.
func (s *TokenStore) Load() string {
	var token string
	_ = s.lock.WithLock(func() error {
		data, err := os.ReadFile(filepath.Join(s.dir, tokenFileName))
		if err != nil {
			return err
		}
		var rec tokenRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return err
		}
		token = rec.Token
		return nil
	})
	return token
}

// Save persists a token.
func (s *TokenStore) Save(token string) error {
	return s.lock.WithLock(func() error {
		if err := os.MkdirAll(s.dir, 0755); err != nil {
			return err
		}

		rec := tokenRecord{
			Token:     token,
			CreatedAt: time.Now().UTC().Format(time.RFC3339),
			Note:      "This token is global and tracks questions across all categories",
		}
		data, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return err
		}

		return os.WriteFile(filepath.Join(s.dir, tokenFileName), data, 0644)
	})
}

// Clear removes the persisted token.
func (s *TokenStore) Clear() error {
	return s.lock.WithLock(func() error {
		err := os.Remove(filepath.Join(s.dir, tokenFileName))
		if os.IsNotExist(err) {
			return nil
		}
		return err
	})
}
