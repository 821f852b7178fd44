package services

import (
	"sort"

	"nomadix/internal/models"
)

// Merge folds candidates into existing by identity key and returns the new date-ordered list
// and how many candidates were appended. Neither input is modified.
//
// A candidate whose key is already present is dropped, whether the present record is
// synced or not, so remote rows are never shadowed and repeated batches add nothing.
// Candidates are folded in candidateLess order, which makes the result independent of the
// order they arrive in: among candidates sharing a key the earliest one wins.
func Merge(existing, candidates []models.LocationRecord) ([]models.LocationRecord, int) {
	ordered := models.CloneRecords(candidates)
	sort.SliceStable(ordered, func(i, j int) bool {
		return candidateLess(ordered[i], ordered[j])
	})

	seen := make(map[models.IdentityKey]struct{}, len(existing)+len(ordered))
	for _, r := range existing {
		seen[r.Key()] = struct{}{}
	}

	merged := make([]models.LocationRecord, len(existing), len(existing)+len(ordered))
	copy(merged, existing)

	added := 0
	for _, c := range ordered {
		if _, ok := seen[c.Key()]; ok {
			continue
		}
		seen[c.Key()] = struct{}{}
		merged = append(merged, c)
		added++
	}

	models.SortByDate(merged)
	return merged, added
}

// candidateLess orders by date, then id, then every remaining field, so only identical
// records compare equal.
func candidateLess(a, b models.LocationRecord) bool {
	switch {
	case a.Date != b.Date:
		return a.Date < b.Date
	case a.ID != b.ID:
		return a.ID < b.ID
	case a.Latitude != b.Latitude:
		return a.Latitude < b.Latitude
	case a.Longitude != b.Longitude:
		return a.Longitude < b.Longitude
	case a.City != b.City:
		return a.City < b.City
	case a.Country != b.Country:
		return a.Country < b.Country
	case a.Continent != b.Continent:
		return a.Continent < b.Continent
	}
	return !a.IsSynced && b.IsSynced
}

// Reconcile builds the list after a remote fetch: every remote record, marked synced,
// plus the local unsynced records the remote does not know yet.
func Reconcile(local, remote []models.LocationRecord) []models.LocationRecord {
	out := make([]models.LocationRecord, 0, len(remote)+len(local))
	keys := make(map[models.IdentityKey]struct{}, len(remote))
	for _, r := range remote {
		r.IsSynced = true
		out = append(out, r)
		keys[r.Key()] = struct{}{}
	}

	for _, r := range local {
		if r.IsSynced {
			continue
		}
		if _, ok := keys[r.Key()]; ok {
			continue
		}
		out = append(out, r)
	}

	models.SortByDate(out)
	return out
}
