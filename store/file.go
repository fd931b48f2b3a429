package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FileStore implements the Store interface with one file per entry under
// Dir. Entry expiration rides on file modification times.
type FileStore struct {
	Dir    string
	MaxAge time.Duration
}

// NewFileStore creates a FileStore rooted under the system temp dir.
func NewFileStore() *FileStore {
	return &FileStore{
		Dir:    filepath.Join(os.TempDir(), "interpose", "store"),
		MaxAge: DefaultMaxAge,
	}
}

// Start initializes the storage directory.
func (s *FileStore) Start(_ context.Context) error {
	fileInfo, err := os.Stat(s.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			if err := os.MkdirAll(s.Dir, 0o774); err != nil {
				return fmt.Errorf("error creating store dir %s: %v", s.Dir,
					err)
			}
			return nil
		}
		return fmt.Errorf("error stating store dir %s: %v", s.Dir, err)
	}
	if fileInfo.Mode().IsRegular() {
		return fmt.Errorf("there is a file named as %s, it is not possible "+
			"to create the store dir", s.Dir)
	}
	return nil
}

// Stop is a no-op for FileStore.
func (s *FileStore) Stop(ctx context.Context) error {
	return nil
}

func (s *FileStore) entryFile(id string) string {
	return filepath.Join(s.Dir, fmt.Sprintf("%s.entry", id))
}

// Delete removes any entry for the given id.
func (s *FileStore) Delete(ctx context.Context, id string) error {
	err := os.Remove(s.entryFile(id))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Exists checks if an entry with the given id exists in file storage.
func (s *FileStore) Exists(ctx context.Context, id string) (bool, error) {
	_, err := os.Stat(s.entryFile(id))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Get retrieves the value for the given id. Returns ErrNotFound if absent.
func (s *FileStore) Get(ctx context.Context, id string) ([]byte, error) {
	val, err := os.ReadFile(s.entryFile(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return val, nil
}

// GetString retrieves the string value for the given id.
func (s *FileStore) GetString(ctx context.Context, id string) (string, error) {
	val, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return string(val), nil
}

// Set saves or updates a value for the given id.
func (s *FileStore) Set(ctx context.Context, id string, val []byte) error {
	return os.WriteFile(s.entryFile(id), val, 0o644)
}

// SetString stores a string value as bytes.
func (s *FileStore) SetString(ctx context.Context, id string, val string) error {
	return s.Set(ctx, id, []byte(val))
}

// Touch renews the entry's modification time for sliding expiration.
func (s *FileStore) Touch(ctx context.Context, id string) error {
	now := time.Now()
	if err := os.Chtimes(s.entryFile(id), now, now); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// Purge removes entries older than MaxAge from file storage.
func (s *FileStore) Purge(ctx context.Context) error {
	files, err := os.ReadDir(s.Dir)
	if err != nil {
		return err
	}
	for _, file := range files {
		info, err := file.Info()
		if err != nil {
			return err
		}
		if time.Since(info.ModTime()) > s.MaxAge {
			err := os.Remove(filepath.Join(s.Dir, file.Name()))
			if err != nil {
				return err
			}
		}
	}
	return nil
}
