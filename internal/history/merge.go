// Package history combines the server trip list with the local cache into a
// single view.
package history

import (
	"sort"

	"github.com/planit-app/planit/internal/models"
)

// Merge combines a server history snapshot with the local cache snapshot.
// The result is deduplicated by id with the server version winning on
// collision (server data may include edits synced from other devices), and
// sorted by UpdatedAt descending. Sessions present only locally (typically
// created moments ago and not yet visible server-side) are retained.
//
// Merge is pure: callers must not pass an empty server list to mean "the
// fetch failed". A failed fetch is an error the caller handles by falling
// back to the local list alone.
func Merge(serverTrips, localTrips []models.TripSession) []models.TripSession {
	seen := make(map[string]struct{}, len(serverTrips)+len(localTrips))
	merged := make([]models.TripSession, 0, len(serverTrips)+len(localTrips))

	for _, t := range serverTrips {
		if _, ok := seen[t.ID]; ok {
			continue
		}
		seen[t.ID] = struct{}{}
		merged = append(merged, t)
	}
	for _, t := range localTrips {
		if _, ok := seen[t.ID]; ok {
			continue
		}
		seen[t.ID] = struct{}{}
		merged = append(merged, t)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].UpdatedAt.After(merged[j].UpdatedAt)
	})

	return merged
}
