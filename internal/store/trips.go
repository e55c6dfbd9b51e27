package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/planit-app/planit/internal/models"
)

type tripRow struct {
	ID         string    `db:"id"`
	Title      string    `db:"title"`
	Location   string    `db:"location"`
	Image      string    `db:"image"`
	SearchData string    `db:"search_data"`
	Messages   string    `db:"messages"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func (r *tripRow) toSession() (models.TripSession, error) {
	t := models.TripSession{
		ID:        r.ID,
		Title:     r.Title,
		Location:  r.Location,
		Image:     r.Image,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if err := json.Unmarshal([]byte(r.SearchData), &t.SearchData); err != nil {
		return t, fmt.Errorf("decode search data: %w", err)
	}
	if err := json.Unmarshal([]byte(r.Messages), &t.Messages); err != nil {
		return t, fmt.Errorf("decode messages: %w", err)
	}
	return t, nil
}

func rowFromSession(t *models.TripSession) (*tripRow, error) {
	search, err := json.Marshal(t.SearchData)
	if err != nil {
		return nil, fmt.Errorf("encode search data: %w", err)
	}
	msgs, err := json.Marshal(t.Messages)
	if err != nil {
		return nil, fmt.Errorf("encode messages: %w", err)
	}
	return &tripRow{
		ID:         t.ID,
		Title:      t.Title,
		Location:   t.Location,
		Image:      t.Image,
		SearchData: string(search),
		Messages:   string(msgs),
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}, nil
}

// SaveTrip upserts a session and bumps its UpdatedAt. CreatedAt is set on
// first save only.
func (s *Store) SaveTrip(ctx context.Context, t *models.TripSession) error {
	now := time.Now().UTC()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now

	row, err := rowFromSession(t)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO trips (id, title, location, image, search_data, messages, created_at, updated_at)
		VALUES (:id, :title, :location, :image, :search_data, :messages, :created_at, :updated_at)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			location = excluded.location,
			image = excluded.image,
			search_data = excluded.search_data,
			messages = excluded.messages,
			updated_at = excluded.updated_at
	`

	_, err = s.db.NamedExecContext(ctx, query, row)
	return err
}

// GetTrip retrieves a session by id. Returns ErrNotFound when absent.
func (s *Store) GetTrip(ctx context.Context, id string) (*models.TripSession, error) {
	var row tripRow
	query := `
		SELECT id, title, location, image, search_data, messages, created_at, updated_at
		FROM trips
		WHERE id = $1
	`

	err := s.db.GetContext(ctx, &row, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}

	t, err := row.toSession()
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListTrips returns all cached sessions, newest first.
func (s *Store) ListTrips(ctx context.Context) ([]models.TripSession, error) {
	var rows []tripRow
	query := `
		SELECT id, title, location, image, search_data, messages, created_at, updated_at
		FROM trips
		ORDER BY updated_at DESC
	`

	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}

	trips := make([]models.TripSession, 0, len(rows))
	for i := range rows {
		t, err := rows[i].toSession()
		if err != nil {
			return nil, err
		}
		trips = append(trips, t)
	}
	return trips, nil
}

// DeleteTrip removes a session from the cache. Deleting an absent id is not
// an error.
func (s *Store) DeleteTrip(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM trips WHERE id = $1", id)
	return err
}
