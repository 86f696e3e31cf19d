package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/UnknownOlympus/eos/internal/models"
)

// FileRepository is a geocode cache backed by a single JSON file holding one
// object per cache key. The file is read fully on lookup and rewritten fully
// on store, which is acceptable at one store per unique city ever queried.
// Stores replace the file atomically (write-temp-then-rename) under a mutex so
// concurrent evaluation requests cannot interleave partial writes.
type FileRepository struct {
	path string
	log  *slog.Logger
	mu   sync.Mutex
}

// NewFileRepository creates a file-backed geocode cache at the given path.
// The file does not need to exist yet.
func NewFileRepository(path string, log *slog.Logger) *FileRepository {
	return &FileRepository{path: path, log: log}
}

// Lookup returns the cached record for key. An unreadable or corrupt cache
// file degrades to a miss so the pipeline falls through to live resolution.
func (r *FileRepository) Lookup(ctx context.Context, key string) (models.LocationRecord, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cache, err := r.read()
	if err != nil {
		r.log.DebugContext(ctx, "Failed to read geocode cache, treating as miss", "path", r.path, "error", err)
		return models.LocationRecord{}, false
	}

	record, ok := cache[key]
	return record, ok
}

// Store persists the record for key. Failures are logged and swallowed; the
// overall request must not fail because the cache could not be written.
func (r *FileRepository) Store(ctx context.Context, key string, record models.LocationRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cache, err := r.read()
	if err != nil {
		r.log.DebugContext(ctx, "Rebuilding geocode cache after read failure", "path", r.path, "error", err)
		cache = make(map[string]models.LocationRecord)
	}

	cache[key] = record

	if err = r.write(cache); err != nil {
		r.log.ErrorContext(ctx, "Failed to persist geocode cache", "path", r.path, "key", key, "error", err)
	}
}

func (r *FileRepository) read() (map[string]models.LocationRecord, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string]models.LocationRecord), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}

	var cache map[string]models.LocationRecord
	if err = json.Unmarshal(data, &cache); err != nil {
		return nil, fmt.Errorf("failed to decode cache file: %w", err)
	}
	if cache == nil {
		cache = make(map[string]models.LocationRecord)
	}

	return cache, nil
}

func (r *FileRepository) write(cache map[string]models.LocationRecord) error {
	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode cache: %w", err)
	}

	// Temp file must live in the target directory, rename is only atomic
	// within one filesystem.
	tmp, err := os.CreateTemp(filepath.Dir(r.path), filepath.Base(r.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp cache file: %w", err)
	}

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write temp cache file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp cache file: %w", err)
	}

	if err = os.Rename(tmp.Name(), r.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace cache file: %w", err)
	}

	return nil
}
