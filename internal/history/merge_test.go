package history

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planit-app/planit/internal/models"
)

func trip(id, title string, updated time.Time) models.TripSession {
	return models.TripSession{
		ID:        id,
		Title:     title,
		UpdatedAt: updated,
	}
}

func TestMerge_ServerWinsOnCollision(t *testing.T) {
	now := time.Now()
	server := []models.TripSession{trip("a", "Server Title", now)}
	local := []models.TripSession{trip("a", "Local Title", now.Add(-time.Hour))}

	merged := Merge(server, local)

	require.Len(t, merged, 1)
	assert.Equal(t, "Server Title", merged[0].Title)
}

func TestMerge_Idempotent(t *testing.T) {
	now := time.Now()
	list := []models.TripSession{
		trip("a", "A", now),
		trip("b", "B", now.Add(-time.Minute)),
	}

	merged := Merge(list, list)

	require.Len(t, merged, 2)
	ids := map[string]int{}
	for _, tr := range merged {
		ids[tr.ID]++
	}
	assert.Equal(t, map[string]int{"a": 1, "b": 1}, ids)
}

func TestMerge_LocalOnlyRetainedAndSorted(t *testing.T) {
	now := time.Now()
	server := []models.TripSession{
		trip("old", "Old Server", now.Add(-2*time.Hour)),
	}
	local := []models.TripSession{
		trip("fresh", "Fresh Local", now), // not yet confirmed server-side
	}

	merged := Merge(server, local)

	require.Len(t, merged, 2)
	assert.Equal(t, "fresh", merged[0].ID)
	assert.Equal(t, "old", merged[1].ID)
}

func TestMerge_OrderedByUpdatedAtDescending(t *testing.T) {
	now := time.Now()
	server := []models.TripSession{
		trip("b", "B", now.Add(-time.Hour)),
		trip("a", "A", now),
	}
	local := []models.TripSession{
		trip("c", "C", now.Add(-30 * time.Minute)),
	}

	merged := Merge(server, local)

	require.Len(t, merged, 3)
	assert.Equal(t, []string{"a", "c", "b"}, []string{merged[0].ID, merged[1].ID, merged[2].ID})
}

func TestMerge_Empty(t *testing.T) {
	assert.Empty(t, Merge(nil, nil))
}

type stubFetcher struct {
	trips []models.TripSession
	err   error
}

func (s *stubFetcher) History(ctx context.Context) ([]models.TripSession, error) {
	return s.trips, s.err
}

type stubCache struct {
	trips []models.TripSession
	err   error
}

func (s *stubCache) ListTrips(ctx context.Context) ([]models.TripSession, error) {
	return s.trips, s.err
}

func testLogger() *logrus.Entry {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return logrus.NewEntry(l)
}

func TestService_FetchFailureFallsBackToLocal(t *testing.T) {
	now := time.Now()
	local := []models.TripSession{trip("l1", "Local", now)}

	svc := NewService(
		&stubFetcher{err: errors.New("network down")},
		&stubCache{trips: local},
		testLogger(),
	)

	trips, offline, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.True(t, offline)
	assert.Equal(t, local, trips)
}

func TestService_MergesServerAndLocal(t *testing.T) {
	now := time.Now()
	svc := NewService(
		&stubFetcher{trips: []models.TripSession{trip("s1", "Server", now)}},
		&stubCache{trips: []models.TripSession{trip("l1", "Local", now.Add(-time.Minute))}},
		testLogger(),
	)

	trips, offline, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.False(t, offline)
	require.Len(t, trips, 2)
	assert.Equal(t, "s1", trips[0].ID)
}

func TestService_LocalReadFailureTreatedAsEmpty(t *testing.T) {
	now := time.Now()
	svc := NewService(
		&stubFetcher{trips: []models.TripSession{trip("s1", "Server", now)}},
		&stubCache{err: errors.New("disk error")},
		testLogger(),
	)

	trips, offline, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.False(t, offline)
	require.Len(t, trips, 1)
}
