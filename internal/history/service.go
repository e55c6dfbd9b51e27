package history

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/planit-app/planit/internal/models"
)

// Fetcher is the slice of the backend client the history service needs.
type Fetcher interface {
	History(ctx context.Context) ([]models.TripSession, error)
}

// Cache is the slice of the local store the history service needs.
type Cache interface {
	ListTrips(ctx context.Context) ([]models.TripSession, error)
}

// Service produces the merged trip list for display.
type Service struct {
	api   Fetcher
	cache Cache
	log   *logrus.Entry
}

// NewService creates a history service.
func NewService(api Fetcher, cache Cache, log *logrus.Entry) *Service {
	return &Service{api: api, cache: cache, log: log}
}

type fetchResult struct {
	trips []models.TripSession
	err   error
}

// List returns the merged trip history. The server fetch and the local read
// run concurrently; neither shares state with the other and the merge itself
// is pure. When the server fetch fails the local list is returned as-is and
// offline is true; the failure is never conflated with an empty server
// history. Local read failures are logged and treated as no data.
func (s *Service) List(ctx context.Context) (trips []models.TripSession, offline bool, err error) {
	ch := make(chan fetchResult, 1)
	go func() {
		t, err := s.api.History(ctx)
		ch <- fetchResult{trips: t, err: err}
	}()

	local, lerr := s.cache.ListTrips(ctx)
	if lerr != nil {
		s.log.WithError(lerr).Warn("local trip cache read failed, treating as empty")
		local = nil
	}

	res := <-ch
	if res.err != nil {
		s.log.WithError(res.err).Warn("history fetch failed, falling back to local cache")
		return local, true, nil
	}

	return Merge(res.trips, local), false, nil
}
