package models

import "time"

// MessageType distinguishes the two sides of a trip conversation.
type MessageType string

const (
	MessageUser MessageType = "user"
	MessageAI   MessageType = "ai"
)

// Location is a single stop in a generated itinerary.
type Location struct {
	Name     string  `json:"name"`
	Address  string  `json:"address,omitempty"`
	Category string  `json:"category,omitempty"`
	Time     string  `json:"time,omitempty"`
	Price    string  `json:"price,omitempty"`
	Rating   float64 `json:"rating,omitempty"`
	Hours    string  `json:"hours,omitempty"`
}

// Message is one entry in a session's conversation. Locations, City and
// PracticalTips are only set on AI messages.
type Message struct {
	ID            string      `json:"id"`
	Type          MessageType `json:"type"`
	Content       string      `json:"content"`
	Locations     []Location  `json:"locations,omitempty"`
	City          string      `json:"city,omitempty"`
	PracticalTips []string    `json:"practicalTips,omitempty"`
}

// TripSession is one user query plus its generated itinerary, the unit of
// history and of local persistence.
type TripSession struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Location   string     `json:"location"`
	Image      string     `json:"image,omitempty"`
	Messages   []Message  `json:"messages"`
	SearchData SearchData `json:"searchData"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// UserMessageID returns the id of a session's user message. Message ids are
// derivable from the session id alone: the user message is index 0, the AI
// message index 1.
func UserMessageID(sessionID string) string {
	return "user_" + sessionID + "_0"
}

// AIMessageID returns the id of a session's AI message.
func AIMessageID(sessionID string) string {
	return "ai_" + sessionID + "_1"
}
