package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"gopkg.in/yaml.v3"
)

const lockTimeout = 5 * time.Second

// FileStore keeps preferences in a YAML file.
//
// Every access takes an advisory lock on <path>.lock so that several deck
// processes can share the file. Writes replace the file atomically.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore returns a store backed by path. The file is created on the
// first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Get(key string, v any) (bool, error) {
	var (
		found bool
		derr  error
	)
	err := s.withLock(false, func() error {
		values, err := s.read()
		if err != nil {
			return err
		}
		found, derr = decodeValue(values, key, v)
		return nil
	})
	if err != nil {
		return false, err
	}
	return found, derr
}

func (s *FileStore) Set(key string, v any) error {
	n, err := encodeValue(key, v)
	if err != nil {
		return err
	}
	return s.update(func(values map[string]*yaml.Node) {
		values[key] = n
	})
}

func (s *FileStore) Delete(key string) error {
	return s.update(func(values map[string]*yaml.Node) {
		delete(values, key)
	})
}

// Keys returns the stored keys in lexicographic order.
func (s *FileStore) Keys() ([]string, error) {
	var keys []string
	err := s.withLock(false, func() error {
		values, err := s.read()
		if err != nil {
			return err
		}
		keys = sortedKeys(values)
		return nil
	})
	return keys, err
}

func (s *FileStore) update(fn func(map[string]*yaml.Node)) error {
	return s.withLock(true, func() error {
		values, err := s.read()
		if err != nil {
			return err
		}
		fn(values)
		return s.write(values)
	})
}

func (s *FileStore) read() (map[string]*yaml.Node, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string]*yaml.Node), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read preferences %s: %w", s.path, err)
	}
	values, err := parseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("invalid preferences file %s: %w", s.path, err)
	}
	return values, nil
}

func (s *FileStore) write(values map[string]*yaml.Node) error {
	data, err := renderDocument(values)
	if err != nil {
		return fmt.Errorf("cannot marshal preferences: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("cannot write preferences: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("cannot write preferences: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("cannot write preferences: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("cannot replace preferences %s: %w", s.path, err)
	}
	return nil
}

// withLock runs fn while holding the file lock, exclusive when write is set.
func (s *FileStore) withLock(write bool, fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("cannot create preferences directory: %w", err)
	}
	l := flock.New(s.path + ".lock")
	try := l.TryRLock
	if write {
		try = l.TryLock
	}

	deadline := time.Now().Add(lockTimeout)
	for {
		locked, err := try()
		if err != nil {
			return fmt.Errorf("cannot lock preferences: %w", err)
		}
		if locked {
			break
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("preferences are locked by another process (lock: %s)", l.Path())
		}
		time.Sleep(50 * time.Millisecond)
	}
	defer func() { _ = l.Unlock() }()

	return fn()
}
