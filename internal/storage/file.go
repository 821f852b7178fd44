package storage

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"sync"
	"time"

	json "github.com/goccy/go-json"

	"nomadix/internal/models"
	"nomadix/internal/providers"
	"nomadix/internal/storage/interfaces"
)

// FileStore keeps every key in one compressed JSON envelope on disk.
// The file is read once and rewritten whole, through a temp file and rename, on every Set.
type FileStore struct {
	path       string
	legacyKey  string
	compressor interfaces.CompressorInterface
	logger     providers.Logger

	mu      sync.Mutex
	entries map[string][]models.LocationRecord
}

// NewFileStore opens a store at path. A file holding a bare record list, as written
// before the envelope existed, is read as the contents of legacyKey.
func NewFileStore(path, legacyKey string, compressor interfaces.CompressorInterface, logger providers.Logger) *FileStore {
	return &FileStore{
		path:       path,
		legacyKey:  legacyKey,
		compressor: compressor,
		logger:     logger,
	}
}

func (f *FileStore) Get(_ context.Context, key string) ([]models.LocationRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.loadLocked(); err != nil {
		return nil, fmt.Errorf("storage.FileStore.Get: %w", err)
	}
	return models.CloneRecords(f.entries[key]), nil
}

func (f *FileStore) Set(_ context.Context, key string, records []models.LocationRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.loadLocked(); err != nil {
		return fmt.Errorf("storage.FileStore.Set: %w", err)
	}

	next := maps.Clone(f.entries)
	next[key] = records
	if err := f.writeLocked(next); err != nil {
		return fmt.Errorf("storage.FileStore.Set: %w", err)
	}
	f.entries = next
	return nil
}

func (f *FileStore) loadLocked() error {
	if f.entries != nil {
		return nil
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			f.entries = make(map[string][]models.LocationRecord)
			return nil
		}
		return err
	}

	raw, err := f.compressor.Decompress(data)
	if err != nil {
		return fmt.Errorf("decompress %s: %w", f.path, err)
	}

	var envelope models.Storage
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Entries != nil {
		f.entries = envelope.Entries
		return nil
	}

	f.logger.Warnf(providers.TypeApp, "No storage envelope in %s, trying plain record list", f.path)
	var records []models.LocationRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return fmt.Errorf("decode %s: %w", f.path, err)
	}
	f.logger.Warnf(providers.TypeApp, "Loaded %d records from plain list into key %s", len(records), f.legacyKey)
	f.entries = map[string][]models.LocationRecord{f.legacyKey: records}
	return nil
}

func (f *FileStore) writeLocked(entries map[string][]models.LocationRecord) error {
	jsonData, err := json.Marshal(models.Storage{
		Version: models.StorageVersion,
		SavedAt: time.Now().UTC(),
		Entries: entries,
	})
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	if err = os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}

	tmpFile := f.path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	if _, err = file.Write(data); err != nil {
		_ = file.Close()
		_ = os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		_ = file.Close()
		_ = os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		_ = os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, f.path)
}
