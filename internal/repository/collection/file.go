package collection

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

type fileRepo struct {
	dir    string
	logger *log.Logger
	mu     sync.Mutex
}

// NewFile returns a Repository storing each collection as <dir>/<name>.json.
func NewFile(dir string, logger *log.Logger) (Repository, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &fileRepo{dir: dir, logger: logger}, nil
}

func (r *fileRepo) Load(name string, v interface{}) error {
	path, err := r.path(name)
	if err != nil {
		return err
	}
	r.mu.Lock()
	data, err := os.ReadFile(path)
	r.mu.Unlock()
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			r.logger.Printf("collection repo: load %s error=%v", name, err)
		}
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		// Corrupt stored data resolves to an empty collection.
		r.logger.Printf("collection repo: load %s corrupt, resetting: %v", name, err)
		return nil
	}
	return nil
}

func (r *fileRepo) Save(name string, v interface{}) error {
	path, err := r.path(name)
	if err != nil {
		return err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Write-then-rename so a crashed save never leaves a half-written file.
	tmp, err := os.CreateTemp(r.dir, name+"-*.json")
	if err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("save %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("save %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("save %s: %w", name, err)
	}
	return nil
}

func (r *fileRepo) path(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("invalid collection name %q", name)
	}
	return filepath.Join(r.dir, name+".json"), nil
}
