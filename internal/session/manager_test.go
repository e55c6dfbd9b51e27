package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planit-app/planit/internal/api"
	"github.com/planit-app/planit/internal/models"
	"github.com/planit-app/planit/internal/store"
)

type fakePlanner struct {
	mu          sync.Mutex
	planResult  *api.PlanResult
	planErr     error
	planCalls   int
	planBlock   chan struct{} // when set, Plan waits until closed
	deleteErr   error
	deleteCalls int
}

func (f *fakePlanner) Plan(ctx context.Context, search models.SearchData, userMessage string) (*api.PlanResult, error) {
	f.mu.Lock()
	f.planCalls++
	block := f.planBlock
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	if f.planErr != nil {
		return nil, f.planErr
	}
	return f.planResult, nil
}

func (f *fakePlanner) DeleteChat(ctx context.Context, id string) error {
	f.mu.Lock()
	f.deleteCalls++
	f.mu.Unlock()
	return f.deleteErr
}

func testLogger() *logrus.Entry {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return logrus.NewEntry(l)
}

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func searchData(query string) models.SearchData {
	return models.SearchData{
		Query: query,
		Filters: models.Filters{
			TimesOfDay:  []models.TimeOfDay{models.TimeEvening},
			Environment: models.EnvMixed,
			GroupSize:   models.GroupSmall,
		},
	}
}

func okResult() *api.PlanResult {
	return &api.PlanResult{
		Response:      "Here's the plan.",
		City:          "Toronto",
		Locations:     []models.Location{{Name: "High Park"}},
		PracticalTips: []string{"Go early."},
		ChatID:        "srv-abc",
		Title:         "Evening in Toronto",
		Location:      "Toronto",
	}
}

func TestSubmit_ReconcilesAndPersists(t *testing.T) {
	cache := openTestStore(t)
	planner := &fakePlanner{planResult: okResult()}
	m := NewManager(planner, cache, testLogger())

	d := NewDraft(searchData("evening fun in toronto"))
	assert.Equal(t, StatusDrafting, d.Status())

	sess, err := m.Submit(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, StatusReconciled, d.Status())

	assert.Equal(t, "srv-abc", sess.ID)
	require.Len(t, sess.Messages, 2)
	assert.Equal(t, "user_srv-abc_0", sess.Messages[0].ID)
	assert.Equal(t, "ai_srv-abc_1", sess.Messages[1].ID)
	assert.Equal(t, models.MessageUser, sess.Messages[0].Type)
	assert.Equal(t, models.MessageAI, sess.Messages[1].Type)
	assert.Equal(t, "evening fun in toronto", sess.Messages[0].Content)
	assert.Equal(t, "Toronto", sess.Location)

	// Only the reconciled session is in the cache, under the server id.
	got, err := cache.GetTrip(context.Background(), "srv-abc")
	require.NoError(t, err)
	assert.Equal(t, sess.Messages, got.Messages)

	_, err = cache.GetTrip(context.Background(), d.ProvisionalID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSubmit_BackendFieldsSupersedeDerived(t *testing.T) {
	cache := openTestStore(t)
	planner := &fakePlanner{planResult: okResult()}
	m := NewManager(planner, cache, testLogger())

	d := NewDraft(searchData("something in montreal"))
	assert.Equal(t, "Montreal", d.Location) // heuristic placeholder

	sess, err := m.Submit(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, "Toronto", sess.Location) // backend wins
	assert.Equal(t, "Evening in Toronto", sess.Title)
}

func TestSubmit_FallsBackToDerivedLabels(t *testing.T) {
	cache := openTestStore(t)
	res := okResult()
	res.Title = ""
	res.Location = ""
	res.City = ""
	planner := &fakePlanner{planResult: res}
	m := NewManager(planner, cache, testLogger())

	d := NewDraft(searchData("cheap eats in kensington market"))
	sess, err := m.Submit(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, d.Title, sess.Title)
	assert.Equal(t, "Kensington Market", sess.Location)
}

func TestSubmit_FailurePersistsNothingAndRetries(t *testing.T) {
	cache := openTestStore(t)
	planner := &fakePlanner{planErr: errors.New("network down")}
	m := NewManager(planner, cache, testLogger())

	d := NewDraft(searchData("a day in ottawa"))
	_, err := m.Submit(context.Background(), d)
	require.Error(t, err)
	assert.Equal(t, StatusFailed, d.Status())

	trips, err := cache.ListTrips(context.Background())
	require.NoError(t, err)
	assert.Empty(t, trips)

	// Retry with the same draft succeeds once the network is back.
	planner.planErr = nil
	planner.planResult = okResult()
	sess, err := m.Submit(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, "srv-abc", sess.ID)
	assert.Equal(t, StatusReconciled, d.Status())
}

func TestSubmit_SecondSubmitWhilePendingIsNoOp(t *testing.T) {
	cache := openTestStore(t)
	block := make(chan struct{})
	planner := &fakePlanner{planResult: okResult(), planBlock: block}
	m := NewManager(planner, cache, testLogger())

	d := NewDraft(searchData("brunch in leslieville"))

	done := make(chan error, 1)
	go func() {
		_, err := m.Submit(context.Background(), d)
		done <- err
	}()

	// Wait for the first submit to enter pending.
	require.Eventually(t, func() bool {
		return d.Status() == StatusPending
	}, time.Second, time.Millisecond)

	_, err := m.Submit(context.Background(), d)
	assert.ErrorIs(t, err, ErrAlreadyPending)

	close(block)
	require.NoError(t, <-done)

	planner.mu.Lock()
	defer planner.mu.Unlock()
	assert.Equal(t, 1, planner.planCalls)
}

func TestOpen_HydratesFromCache(t *testing.T) {
	cache := openTestStore(t)
	planner := &fakePlanner{planResult: okResult()}
	m := NewManager(planner, cache, testLogger())

	d := NewDraft(searchData("evening in toronto"))
	_, err := m.Submit(context.Background(), d)
	require.NoError(t, err)

	sess, err := m.Open(context.Background(), "srv-abc")
	require.NoError(t, err)
	assert.Equal(t, "srv-abc", sess.ID)
	require.Len(t, sess.Messages, 2)

	// No extra network call for a cache hit.
	planner.mu.Lock()
	defer planner.mu.Unlock()
	assert.Equal(t, 1, planner.planCalls)
}

func TestOpen_Miss(t *testing.T) {
	m := NewManager(&fakePlanner{}, openTestStore(t), testLogger())

	_, err := m.Open(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete_LocalRemovalIsImmediateAndAuthoritative(t *testing.T) {
	cache := openTestStore(t)
	planner := &fakePlanner{planResult: okResult(), deleteErr: errors.New("remote down")}
	m := NewManager(planner, cache, testLogger())

	d := NewDraft(searchData("evening in toronto"))
	_, err := m.Submit(context.Background(), d)
	require.NoError(t, err)

	require.NoError(t, m.Delete(context.Background(), "srv-abc"))

	// Gone locally, regardless of the remote call failing.
	_, err = cache.GetTrip(context.Background(), "srv-abc")
	assert.ErrorIs(t, err, store.ErrNotFound)

	// The remote delete was attempted before Delete returned. Deferring it
	// to a goroutine would lose it when the process exits right after, and
	// the trip would come back from the server on the next history merge.
	planner.mu.Lock()
	defer planner.mu.Unlock()
	assert.Equal(t, 1, planner.deleteCalls)
}

func TestNewDraft_Placeholders(t *testing.T) {
	d := NewDraft(searchData("after work hangout and food in downtown toronto"))

	assert.NotEmpty(t, d.ProvisionalID)
	assert.Equal(t, "Downtown Toronto", d.Location)
	assert.Equal(t, "After work hangout and food in", d.Title)
	assert.Equal(t, StatusDrafting, d.Status())

	msg := d.UserMessage()
	assert.Equal(t, "user_"+d.ProvisionalID+"_0", msg.ID)
	assert.Equal(t, models.MessageUser, msg.Type)
}

func TestDeriveTitle(t *testing.T) {
	assert.Equal(t, "New Trip", DeriveTitle("   "))
	assert.Equal(t, "Quiet cafes", DeriveTitle("quiet cafes"))
	long := "a very long query that keeps going well past thirty characters"
	assert.Len(t, []rune(DeriveTitle(long)), 30)
}
