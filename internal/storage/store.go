package storage

import (
	"context"
	"fmt"

	"nomadix/internal/models"
	"nomadix/internal/providers"
	"nomadix/internal/storage/interfaces"
	"nomadix/internal/structures"
)

// RecordStore persists record lists by key. Writes are last-write-wins.
//
// Set takes ownership of the slice: callers pass a freshly built list and never
// mutate it afterwards. Get returns a slice the caller may keep. A missing key
// yields an empty list, not an error.
type RecordStore interface {
	Get(ctx context.Context, key string) ([]models.LocationRecord, error)
	Set(ctx context.Context, key string, records []models.LocationRecord) error
}

// NewRecordStore builds the backend selected by storage.driver.
// The returned cleanup releases connections and is safe to call once.
func NewRecordStore(conf *structures.Config, compressor interfaces.CompressorInterface, logger providers.Logger) (RecordStore, func(), error) {
	switch conf.Storage.Driver {
	case "memory":
		logger.Infof(providers.TypeApp, "Record store: memory")
		return NewMemoryStore(), func() {}, nil

	case "file":
		logger.Infof(providers.TypeApp, "Record store: file %s", conf.Storage.FilePath)
		return NewFileStore(conf.Storage.FilePath, conf.Storage.Key, compressor, logger), func() {}, nil

	case "redis":
		store, err := NewRedisStore(context.Background(), conf.Storage.Redis)
		if err != nil {
			return nil, nil, err
		}
		logger.Infof(providers.TypeApp, "Record store: redis %s db %d", conf.Storage.Redis.Addr, conf.Storage.Redis.DB)
		return store, func() {
			if err := store.Close(); err != nil {
				logger.Errorf(providers.TypeApp, "Error closing redis client: %s", err)
			}
		}, nil

	case "postgres":
		store, err := NewPostgresStore(context.Background(), conf.Storage.Postgres.DSN)
		if err != nil {
			return nil, nil, err
		}
		logger.Infof(providers.TypeApp, "Record store: postgres")
		return store, store.Close, nil
	}

	return nil, nil, fmt.Errorf("storage.NewRecordStore: unknown driver %q", conf.Storage.Driver)
}
