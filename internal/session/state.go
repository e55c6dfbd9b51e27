// Package session bridges "user pressed send" and "backend assigned an id":
// it creates drafts with provisional ids, submits them, and reconciles the
// result into the local cache under the server's canonical id.
package session

import (
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/planit-app/planit/internal/extract"
	"github.com/planit-app/planit/internal/models"
)

// Status is the lifecycle phase of a draft.
type Status string

const (
	// StatusDrafting: built locally, nothing sent yet.
	StatusDrafting Status = "drafting"
	// StatusPending: the plan request is in flight. One per draft.
	StatusPending Status = "pending"
	// StatusReconciled: the backend confirmed and assigned the canonical id.
	StatusReconciled Status = "reconciled"
	// StatusFailed: the request failed; nothing was persisted. Retryable.
	StatusFailed Status = "failed"
)

// Draft is a session before the backend has confirmed it. Its provisional id
// is timestamp-derived and never reaches durable storage: only the
// reconciled session, carrying the server id, is persisted.
type Draft struct {
	ProvisionalID string
	Search        models.SearchData
	Title         string
	Location      string
	CreatedAt     time.Time

	mu     sync.Mutex
	status Status
}

// Status returns the draft's current phase.
func (d *Draft) Status() Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.status
}

func (d *Draft) setStatus(s Status) {
	d.mu.Lock()
	d.status = s
	d.mu.Unlock()
}

// NewDraft builds a draft for a submitted search. Title and Location are
// placeholders derived from the query so the UI can label the session
// immediately; both are superseded by the backend's answer.
func NewDraft(search models.SearchData) *Draft {
	now := time.Now()
	search.Filters.Normalize()
	return &Draft{
		ProvisionalID: strconv.FormatInt(now.UnixMilli(), 10),
		Search:        search,
		Title:         DeriveTitle(search.Query),
		Location:      extract.Location(search.Query),
		CreatedAt:     now,
		status:        StatusDrafting,
	}
}

// UserMessage is the draft's user message as shown before reconciliation,
// keyed by the provisional id.
func (d *Draft) UserMessage() models.Message {
	return models.Message{
		ID:      models.UserMessageID(d.ProvisionalID),
		Type:    models.MessageUser,
		Content: d.Search.Query,
	}
}

const maxDerivedTitleLen = 30

// DeriveTitle labels a session from its query: the first 30 characters with
// the first letter upper-cased. Used until the backend supplies a title.
func DeriveTitle(query string) string {
	q := strings.TrimSpace(query)
	if q == "" {
		return "New Trip"
	}
	r := []rune(q)
	if len(r) > maxDerivedTitleLen {
		r = r[:maxDerivedTitleLen]
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
