package storage

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/splitio/go-toolkit/v5/logging"
)

// FileStore is a KVStore keeping one small file per key under a directory.
// It is the durable store: values survive process restarts the way browser
// local storage survives page reloads.
type FileStore struct {
	dir    string
	logger logging.LoggerInterface
}

// NewFileStore returns a FileStore rooted at dir, creating it if needed.
// A dir that cannot be created still yields a usable store; every access will
// simply miss.
func NewFileStore(dir string, logger logging.LoggerInterface) *FileStore {
	if err := os.MkdirAll(dir, 0o700); err != nil && logger != nil {
		logger.Warning("Durable storage unavailable at ", dir, ": ", err.Error())
	}
	return &FileStore{dir: dir, logger: logger}
}

func (f *FileStore) path(key string) string {
	// Keys are internal constants, but keep path traversal out regardless.
	return filepath.Join(f.dir, filepath.Base(key))
}

// Get reads the file for key. Missing or unreadable files report a miss.
func (f *FileStore) Get(key string) (string, bool) {
	raw, err := os.ReadFile(f.path(key))
	if err != nil {
		return "", false
	}
	value := strings.TrimSpace(string(raw))
	if value == "" {
		return "", false
	}
	return value, true
}

// Set writes the file for key. Failures are logged and swallowed.
func (f *FileStore) Set(key string, value string) {
	if err := os.WriteFile(f.path(key), []byte(value), 0o600); err != nil {
		if f.logger != nil {
			f.logger.Debug("Could not persist ", key, ": ", err.Error())
		}
	}
}
