package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nomadix/internal/models"
	"nomadix/internal/structures"
	"nomadix/internal/testutil"
)

func sampleRecords() []models.LocationRecord {
	return []models.LocationRecord{
		{ID: "1", City: "Paris", Country: "France", Continent: "Europe", Latitude: 48.8566, Longitude: 2.3522, Date: "2023-01-15", IsSynced: true},
		{ID: "city-Lyon-1710072000000", City: "Lyon", Country: "France", Continent: "Europe", Latitude: 45.764, Longitude: 4.8357, Date: "2024-03-10T12:00:00.000Z"},
	}
}

// storeContract checks the behavior every backend shares.
func storeContract(t *testing.T, store RecordStore) {
	t.Helper()
	ctx := context.Background()

	empty, err := store.Get(ctx, "contract-missing")
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, store.Set(ctx, "contract", sampleRecords()))
	got, err := store.Get(ctx, "contract")
	require.NoError(t, err)
	assert.Equal(t, sampleRecords(), got)

	// last write wins
	require.NoError(t, store.Set(ctx, "contract", sampleRecords()[:1]))
	got, err = store.Get(ctx, "contract")
	require.NoError(t, err)
	assert.Equal(t, sampleRecords()[:1], got)

	require.NoError(t, store.Set(ctx, "contract", []models.LocationRecord{}))
	got, err = store.Get(ctx, "contract")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMemoryStore_Contract(t *testing.T) {
	storeContract(t, NewMemoryStore())
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "k", sampleRecords()))

	got, _ := store.Get(ctx, "k")
	got[0].City = "Rome"

	again, _ := store.Get(ctx, "k")
	assert.Equal(t, "Paris", again[0].City)
}

func TestNewRecordStore_Selects(t *testing.T) {
	logger := &testutil.MockLogger{}

	conf := &structures.Config{Storage: structures.StorageConfig{Driver: "memory", Key: "travelHistory"}}
	store, cleanup, err := NewRecordStore(conf, &testutil.MockCompressor{}, logger)
	require.NoError(t, err)
	cleanup()
	assert.IsType(t, &MemoryStore{}, store)

	conf.Storage.Driver = "file"
	conf.Storage.FilePath = filepath.Join(t.TempDir(), "history.dat")
	store, cleanup, err = NewRecordStore(conf, &testutil.MockCompressor{}, logger)
	require.NoError(t, err)
	cleanup()
	assert.IsType(t, &FileStore{}, store)

	conf.Storage.Driver = "sqlite"
	_, _, err = NewRecordStore(conf, &testutil.MockCompressor{}, logger)
	assert.Error(t, err)
}
