// Package api is the HTTP client for the PlanIT planning backend. The
// backend itself, including all AI planning logic, lives behind this
// contract; this package only speaks JSON over HTTP.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/planit-app/planit/internal/models"
)

// Client talks to the planning backend. Safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logrus.Entry

	mu    sync.RWMutex
	token string
}

// New creates a backend client.
func New(baseURL string, timeout time.Duration, log *logrus.Entry) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// SetToken sets the bearer token attached to subsequent requests. An empty
// token means unauthenticated.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// doJSON performs one request. Non-2xx responses become *StatusError (401
// becomes ErrUnauthorized); out may be nil when the body is irrelevant.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.bearer(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.log.WithFields(logrus.Fields{
		"method":  method,
		"path":    path,
		"status":  resp.StatusCode,
		"elapsed": time.Since(start),
	}).Debug("backend request")

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var er errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&er)
		return &StatusError{Code: resp.StatusCode, Message: er.Message}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

type historyTrip struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Location    string            `json:"location"`
	LastUpdated time.Time         `json:"lastUpdated"`
	SearchData  models.SearchData `json:"searchData"`
	Image       string            `json:"image"`
}

type historyResponse struct {
	Success    bool                   `json:"success"`
	Trips      []historyTrip          `json:"trips"`
	Pagination map[string]interface{} `json:"pagination,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}

// History fetches the server-side trip list, newest first. History entries
// carry no messages; those are hydrated from the cache or a session fetch.
func (c *Client) History(ctx context.Context) ([]models.TripSession, error) {
	var resp historyResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/history", nil, &resp); err != nil {
		return nil, err
	}

	trips := make([]models.TripSession, 0, len(resp.Trips))
	for _, t := range resp.Trips {
		trips = append(trips, models.TripSession{
			ID:         t.ID,
			Title:      t.Title,
			Location:   t.Location,
			Image:      t.Image,
			SearchData: t.SearchData,
			UpdatedAt:  t.LastUpdated,
		})
	}
	return trips, nil
}

// DeleteChat deletes a session server-side. The backend treats this as
// idempotent.
func (c *Client) DeleteChat(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/chat/"+id, nil, nil)
}

type planRequest struct {
	SearchData  models.SearchData `json:"searchData"`
	UserMessage string            `json:"userMessage"`
}

type planResponse struct {
	Success       bool              `json:"success"`
	Response      string            `json:"response"`
	City          string            `json:"city"`
	Locations     []models.Location `json:"locations"`
	PracticalTips []string          `json:"practicalTips"`
	ChatID        string            `json:"chatId"`
	Title         string            `json:"title"`
	Location      string            `json:"location"`
}

// PlanResult is the backend's answer to a plan request. ChatID is the
// canonical session id the client reconciles against.
type PlanResult struct {
	Response      string
	City          string
	Locations     []models.Location
	PracticalTips []string
	ChatID        string
	Title         string
	Location      string
}

// Plan submits a search and returns the generated itinerary.
func (c *Client) Plan(ctx context.Context, search models.SearchData, userMessage string) (*PlanResult, error) {
	var resp planResponse
	req := planRequest{SearchData: search, UserMessage: userMessage}
	if err := c.doJSON(ctx, http.MethodPost, "/api/plan", req, &resp); err != nil {
		return nil, err
	}
	if resp.ChatID == "" {
		return nil, fmt.Errorf("plan response missing chat id")
	}

	return &PlanResult{
		Response:      resp.Response,
		City:          resp.City,
		Locations:     resp.Locations,
		PracticalTips: resp.PracticalTips,
		ChatID:        resp.ChatID,
		Title:         resp.Title,
		Location:      resp.Location,
	}, nil
}

type mapItRequest struct {
	Locations  []models.Location `json:"locations"`
	TravelMode string            `json:"travelMode"`
}

type mapItResponse struct {
	MapURL string `json:"mapUrl"`
}

// MapIt exports itinerary locations into a single routable map URL.
func (c *Client) MapIt(ctx context.Context, locations []models.Location, travelMode string) (string, error) {
	var resp mapItResponse
	req := mapItRequest{Locations: locations, TravelMode: travelMode}
	if err := c.doJSON(ctx, http.MethodPost, "/api/plan/mapit", req, &resp); err != nil {
		return "", err
	}
	return resp.MapURL, nil
}
