package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/planit-app/planit/internal/api"
	"github.com/planit-app/planit/internal/models"
	"github.com/planit-app/planit/internal/store"
)

// ErrAlreadyPending is returned when a draft already has a request in
// flight. The trigger is a no-op; the caller waits for the first submit.
var ErrAlreadyPending = errors.New("session submit already pending")

// ErrNotFound is returned when a session id is in neither the cache nor
// reachable remotely.
var ErrNotFound = errors.New("session not found")

// Planner is the slice of the backend client the manager needs.
type Planner interface {
	Plan(ctx context.Context, search models.SearchData, userMessage string) (*api.PlanResult, error)
	DeleteChat(ctx context.Context, id string) error
}

const remoteDeleteTimeout = 10 * time.Second

// Manager runs the drafting/pending/reconciled lifecycle and owns
// session-level cache writes.
type Manager struct {
	api   Planner
	cache *store.Store
	log   *logrus.Entry

	mu      sync.Mutex
	pending map[string]struct{} // provisional ids with an in-flight submit
}

// NewManager creates a session manager.
func NewManager(planner Planner, cache *store.Store, log *logrus.Entry) *Manager {
	return &Manager{
		api:     planner,
		cache:   cache,
		log:     log,
		pending: make(map[string]struct{}),
	}
}

// Submit sends the draft to the planning backend and reconciles the answer.
// On success the returned session carries the server-assigned id, both
// message ids rewritten to derive from it, and has been persisted. No other
// version of the session is ever persisted. On failure nothing is persisted, the
// draft returns to drafting and Submit may be called again with the same
// draft to retry.
//
// A second Submit while one is in flight returns ErrAlreadyPending.
func (m *Manager) Submit(ctx context.Context, d *Draft) (*models.TripSession, error) {
	m.mu.Lock()
	if _, inFlight := m.pending[d.ProvisionalID]; inFlight {
		m.mu.Unlock()
		return nil, ErrAlreadyPending
	}
	m.pending[d.ProvisionalID] = struct{}{}
	d.setStatus(StatusPending)
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		delete(m.pending, d.ProvisionalID)
		m.mu.Unlock()
	}()

	res, err := m.api.Plan(ctx, d.Search, d.Search.Query)
	if err != nil {
		d.setStatus(StatusFailed)
		return nil, fmt.Errorf("plan request: %w", err)
	}

	sess := m.reconcile(d, res)
	if err := m.cache.SaveTrip(ctx, sess); err != nil {
		// The backend owns the session now; a cache write failure only
		// costs offline availability.
		m.log.WithError(err).WithField("session_id", sess.ID).
			Warn("failed to cache reconciled session")
	}

	d.setStatus(StatusReconciled)
	return sess, nil
}

// reconcile builds the durable session from a draft and the backend's
// answer. The provisional id is discarded; message ids are rewritten to
// user_<id>_0 / ai_<id>_1 so they stay derivable from the session id alone.
func (m *Manager) reconcile(d *Draft, res *api.PlanResult) *models.TripSession {
	id := res.ChatID

	title := res.Title
	if title == "" {
		title = d.Title
	}
	location := res.Location
	if location == "" {
		location = res.City
	}
	if location == "" {
		location = d.Location
	}

	userMsg := d.UserMessage()
	userMsg.ID = models.UserMessageID(id)

	aiMsg := models.Message{
		ID:            models.AIMessageID(id),
		Type:          models.MessageAI,
		Content:       res.Response,
		Locations:     res.Locations,
		City:          res.City,
		PracticalTips: res.PracticalTips,
	}

	return &models.TripSession{
		ID:         id,
		Title:      title,
		Location:   location,
		Messages:   []models.Message{userMsg, aiMsg},
		SearchData: d.Search,
		CreatedAt:  d.CreatedAt,
	}
}

// Open hydrates an existing session by id from the cache. Reconciliation is
// long done for anything in the cache, so this is a plain read; a miss is
// ErrNotFound (a backend session fetch is not part of the contract).
func (m *Manager) Open(ctx context.Context, id string) (*models.TripSession, error) {
	sess, err := m.cache.GetTrip(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return sess, nil
}

// Delete removes a session. The local removal happens first and is
// authoritative; the remote DELETE follows before Delete returns so it
// cannot be lost to process exit, but it stays best-effort: a failure is
// logged only, never rolled back. Without the remote call the server copy
// would win the next history merge and the trip would reappear.
func (m *Manager) Delete(ctx context.Context, id string) error {
	if err := m.cache.DeleteTrip(ctx, id); err != nil {
		return fmt.Errorf("delete cached session: %w", err)
	}

	rctx, cancel := context.WithTimeout(ctx, remoteDeleteTimeout)
	defer cancel()
	if err := m.api.DeleteChat(rctx, id); err != nil {
		m.log.WithError(err).WithField("session_id", id).
			Warn("remote session delete failed, local removal stands")
	}

	return nil
}
