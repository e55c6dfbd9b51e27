package stub

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planit-app/planit/internal/models"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return New("test-secret", logrus.NewEntry(log))
}

func doJSON(t *testing.T, s *Server, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestStub_SignupLoginProfileFlow(t *testing.T) {
	s := testServer(t)

	code, out := doJSON(t, s, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name": "Sam", "email": "sam@example.com", "password": "longenough",
	})
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, true, out["success"])
	token := out["token"].(string)
	require.NotEmpty(t, token)

	// Duplicate signup is rejected.
	code, _ = doJSON(t, s, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name": "Sam", "email": "sam@example.com", "password": "longenough",
	})
	assert.Equal(t, http.StatusConflict, code)

	// Wrong password comes back success:false, not a 5xx.
	code, out = doJSON(t, s, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "sam@example.com", "password": "wrong",
	})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, out["success"])

	code, out = doJSON(t, s, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "sam@example.com", "password": "longenough",
	})
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, true, out["success"])

	// Profile requires auth.
	code, _ = doJSON(t, s, http.MethodGet, "/api/auth/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, out = doJSON(t, s, http.MethodGet, "/api/auth/profile", token, nil)
	require.Equal(t, http.StatusOK, code)
	user := out["user"].(map[string]interface{})
	assert.Equal(t, "Sam", user["name"])

	code, out = doJSON(t, s, http.MethodPut, "/api/auth/profile", token, map[string]string{"name": "Samantha"})
	require.Equal(t, http.StatusOK, code)
	user = out["user"].(map[string]interface{})
	assert.Equal(t, "Samantha", user["name"])
}

func TestStub_PlanHistoryDeleteFlow(t *testing.T) {
	s := testServer(t)

	search := map[string]interface{}{
		"query": "evening food in downtown toronto",
		"filters": map[string]interface{}{
			"timesOfDay":    []string{"evening", "night"},
			"environment":   "mixed",
			"groupSize":     "small",
			"planTransit":   true,
			"planFood":      true,
			"priceRange":    "moderate",
			"specialOption": "none",
		},
	}

	code, out := doJSON(t, s, http.MethodPost, "/api/plan", "", map[string]interface{}{
		"searchData":  search,
		"userMessage": "evening food in downtown toronto",
	})
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, true, out["success"])
	chatID := out["chatId"].(string)
	require.NotEmpty(t, chatID)
	assert.Equal(t, "Downtown Toronto", out["city"])
	assert.NotEmpty(t, out["response"])
	assert.NotEmpty(t, out["locations"])

	code, out = doJSON(t, s, http.MethodGet, "/api/history", "", nil)
	require.Equal(t, http.StatusOK, code)
	trips := out["trips"].([]interface{})
	require.Len(t, trips, 1)
	first := trips[0].(map[string]interface{})
	assert.Equal(t, chatID, first["id"])

	code, _ = doJSON(t, s, http.MethodDelete, "/api/chat/"+chatID, "", nil)
	require.Equal(t, http.StatusOK, code)
	// Idempotent delete.
	code, _ = doJSON(t, s, http.MethodDelete, "/api/chat/"+chatID, "", nil)
	require.Equal(t, http.StatusOK, code)

	code, out = doJSON(t, s, http.MethodGet, "/api/history", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, out["trips"])
}

func TestStub_PlanRequiresMessage(t *testing.T) {
	s := testServer(t)

	code, _ := doJSON(t, s, http.MethodPost, "/api/plan", "", map[string]interface{}{
		"searchData":  map[string]interface{}{},
		"userMessage": "  ",
	})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestStub_HistoryIsPerUser(t *testing.T) {
	s := testServer(t)

	_, out := doJSON(t, s, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name": "A", "email": "a@example.com", "password": "longenough",
	})
	token := out["token"].(string)

	doJSON(t, s, http.MethodPost, "/api/plan", token, map[string]interface{}{
		"searchData":  map[string]interface{}{"query": "fun in ottawa"},
		"userMessage": "fun in ottawa",
	})

	// Anonymous history does not see the authenticated user's trip.
	_, out = doJSON(t, s, http.MethodGet, "/api/history", "", nil)
	assert.Empty(t, out["trips"])

	_, out = doJSON(t, s, http.MethodGet, "/api/history", token, nil)
	assert.Len(t, out["trips"].([]interface{}), 1)
}

func TestBuildMapURL(t *testing.T) {
	locs := []models.Location{
		{Name: "Riverside Park", Address: "1 Riverside Dr"},
		{Name: "The Corner Bistro"},
	}

	got := buildMapURL(locs, "transit")
	assert.Contains(t, got, "https://www.google.com/maps/dir/?")
	assert.Contains(t, got, "travelmode=transit")
	assert.Contains(t, got, "destination=The+Corner+Bistro")
	assert.Contains(t, got, "waypoints=")

	// Default travel mode.
	got = buildMapURL(locs[:1], "")
	assert.Contains(t, got, "travelmode=walking")
	assert.NotContains(t, got, "waypoints=")
}

func TestStub_MapIt(t *testing.T) {
	s := testServer(t)

	code, out := doJSON(t, s, http.MethodPost, "/api/plan/mapit", "", map[string]interface{}{
		"locations":  []map[string]string{{"name": "A"}, {"name": "B"}},
		"travelMode": "walking",
	})
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, out["mapUrl"], "destination=B")

	code, _ = doJSON(t, s, http.MethodPost, "/api/plan/mapit", "", map[string]interface{}{
		"locations": []map[string]string{},
	})
	assert.Equal(t, http.StatusBadRequest, code)
}
