package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"nomadix/internal/models"
)

func rec(id, city, country, continent, date string, synced bool) models.LocationRecord {
	return models.LocationRecord{ID: id, City: city, Country: country, Continent: continent, Date: date, IsSynced: synced}
}

func baseHistory() []models.LocationRecord {
	return []models.LocationRecord{
		rec("1", "Paris", "France", "Europe", "2023-01-15", true),
		rec("2", "Tokyo", "Japan", "Asia", "2023-05-20", true),
	}
}

func TestMerge_AppendsNewPlacesSorted(t *testing.T) {
	merged, added := Merge(baseHistory(), []models.LocationRecord{
		rec("c", "Lyon", "France", "Europe", "2024-03-10T12:00:00.000Z", false),
		rec("b", "Rome", "Italy", "Europe", "2023-03-01", false),
	})

	assert.Equal(t, 2, added)
	cities := make([]string, 0, len(merged))
	for _, r := range merged {
		cities = append(cities, r.City)
	}
	assert.Equal(t, []string{"Paris", "Rome", "Tokyo", "Lyon"}, cities)
}

func TestMerge_SyncedNeverShadowed(t *testing.T) {
	merged, added := Merge(baseHistory(), []models.LocationRecord{
		rec("x", "Paris", "France", "Europe", "2020-01-01", false),
	})

	assert.Equal(t, 0, added)
	assert.Equal(t, baseHistory(), merged)
}

func TestMerge_ExistingUnsyncedKeepsFirst(t *testing.T) {
	existing := []models.LocationRecord{rec("a", "Lyon", "France", "Europe", "2024-01-01", false)}

	merged, added := Merge(existing, []models.LocationRecord{rec("b", "Lyon", "France", "Europe", "2024-02-01", false)})

	assert.Equal(t, 0, added)
	assert.Equal(t, existing, merged)
}

func TestMerge_SameCityDifferentCountryIsDistinct(t *testing.T) {
	merged, added := Merge(baseHistory(), []models.LocationRecord{
		rec("p", "Paris", "USA", "North America", "2024-01-01", false),
	})

	assert.Equal(t, 1, added)
	assert.Len(t, merged, 3)
}

func TestMerge_Idempotent(t *testing.T) {
	batch := []models.LocationRecord{
		rec("c", "Lyon", "France", "Europe", "2024-03-10T12:00:00.000Z", false),
		rec("d", "Hue", "Vietnam", "Asia", "2024-03-11T12:00:00.000Z", false),
	}

	once, _ := Merge(baseHistory(), batch)
	twice, added := Merge(once, batch)

	assert.Equal(t, 0, added)
	assert.Equal(t, once, twice)
}

func TestMerge_OrderIndependent(t *testing.T) {
	a := rec("a", "Lyon", "France", "Europe", "2024-03-10T12:00:00.000Z", false)
	b := rec("b", "Lyon", "France", "Europe", "2024-03-09T12:00:00.000Z", false)
	c := rec("c", "Hue", "Vietnam", "Asia", "2024-03-11T12:00:00.000Z", false)

	first, _ := Merge(baseHistory(), []models.LocationRecord{a, b, c})
	second, _ := Merge(baseHistory(), []models.LocationRecord{c, a, b})
	third, _ := Merge(baseHistory(), []models.LocationRecord{b, c, a})

	assert.Equal(t, first, second)
	assert.Equal(t, first, third)
	assert.Contains(t, first, b, "earliest candidate for a place wins")
	assert.NotContains(t, first, a)
}

func TestMerge_SameDateAndIDResolvedByCoordinates(t *testing.T) {
	a := rec("city-Lyon-1710072000000", "Lyon", "France", "Europe", "2024-03-10T12:00:00.000Z", false)
	a.Latitude, a.Longitude = 45.76, 4.83
	b := a
	b.Latitude, b.Longitude = 10, 4.83

	first, added := Merge(nil, []models.LocationRecord{a, b})
	second, _ := Merge(nil, []models.LocationRecord{b, a})

	assert.Equal(t, 1, added)
	assert.Equal(t, first, second)
	assert.Equal(t, []models.LocationRecord{b}, first)
}

func TestMerge_DoesNotModifyInputs(t *testing.T) {
	existing := []models.LocationRecord{
		rec("2", "Tokyo", "Japan", "Asia", "2023-05-20", true),
		rec("1", "Paris", "France", "Europe", "2023-01-15", true),
	}
	candidates := []models.LocationRecord{
		rec("z", "Hue", "Vietnam", "Asia", "2024-03-11", false),
		rec("y", "Rome", "Italy", "Europe", "2023-03-01", false),
	}

	Merge(existing, candidates)

	assert.Equal(t, "Tokyo", existing[0].City)
	assert.Equal(t, "Hue", candidates[0].City)
}

func TestMerge_EmptyInputs(t *testing.T) {
	merged, added := Merge(nil, nil)
	assert.Equal(t, 0, added)
	assert.Empty(t, merged)
}

func TestReconcile(t *testing.T) {
	local := []models.LocationRecord{
		rec("old", "Paris", "France", "Europe", "2023-01-15", true),
		rec("stale", "Berlin", "Germany", "Europe", "2022-01-01", true),
		rec("l1", "Lyon", "France", "Europe", "2024-03-10T12:00:00.000Z", false),
		rec("l2", "Tokyo", "Japan", "Asia", "2024-05-01T12:00:00.000Z", false),
	}
	remote := []models.LocationRecord{
		rec("1", "Paris", "France", "Europe", "2023-01-15", true),
		rec("2", "Tokyo", "Japan", "Asia", "2023-05-20", false),
	}

	out := Reconcile(local, remote)

	assert.Equal(t, []models.LocationRecord{
		rec("1", "Paris", "France", "Europe", "2023-01-15", true),
		rec("2", "Tokyo", "Japan", "Asia", "2023-05-20", true),
		rec("l1", "Lyon", "France", "Europe", "2024-03-10T12:00:00.000Z", false),
	}, out)
}
