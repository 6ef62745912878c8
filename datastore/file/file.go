/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package file stores each key as a JSON file inside a directory.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/suparena/bookshelf/errors"
	"go.uber.org/zap"
)

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9_.-]*$`)

// DataStore implements datastore.KeyValueStore on top of a directory.
// Each key lives in <dir>/<key>.json and is replaced atomically on Save.
type DataStore struct {
	dir    string
	logger *zap.Logger
}

// Option configures a DataStore
type Option func(*DataStore)

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(d *DataStore) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// New creates the directory if needed and returns a DataStore rooted at it.
func New(dir string, opts ...Option) (*DataStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	d := &DataStore{dir: dir, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Dir returns the directory backing the store.
func (d *DataStore) Dir() string {
	return d.dir
}

func (d *DataStore) path(key string) (string, error) {
	if !keyPattern.MatchString(key) {
		return "", errors.NewValidationError("key", fmt.Sprintf("%q is not a valid file key", key))
	}
	return filepath.Join(d.dir, key+".json"), nil
}

// Load reads the file for key.
func (d *DataStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	p, err := d.path(key)
	if err != nil {
		return nil, false, err
	}

	data, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read %s: %w", p, err)
	}
	return data, true, nil
}

// Save writes data to a temporary file and renames it over the file for key.
func (d *DataStore) Save(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := d.path(key)
	if err != nil {
		return err
	}

	f, err := os.CreateTemp(d.dir, "."+key+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", p, err)
	}
	tmp := f.Name()
	defer func() {
		// No-op once the rename succeeded.
		_ = os.Remove(tmp)
	}()

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to sync %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, p); err != nil {
		return fmt.Errorf("failed to replace %s: %w", p, err)
	}

	d.logger.Debug("slot saved", zap.String("key", key), zap.Int("bytes", len(data)))
	return nil
}

// Remove deletes the file for key.
func (d *DataStore) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := d.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", p, err)
	}
	d.logger.Debug("slot removed", zap.String("key", key))
	return nil
}
