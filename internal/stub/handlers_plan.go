package stub

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/planit-app/planit/internal/extract"
	"github.com/planit-app/planit/internal/models"
	"github.com/planit-app/planit/internal/session"
)

type planRequest struct {
	SearchData  models.SearchData `json:"searchData"`
	UserMessage string            `json:"userMessage"`
}

func (s *Server) handlePlan(c *fiber.Ctx) error {
	var req planRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid request body",
		})
	}
	if strings.TrimSpace(req.UserMessage) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "userMessage is required",
		})
	}

	city := extract.Location(req.UserMessage)
	chatID := uuid.New().String()
	locations := cannedLocations(req.SearchData.Filters)
	tips := cannedTips(req.SearchData.Filters)
	title := session.DeriveTitle(req.UserMessage)
	response := cannedResponse(city, locations)

	trip := models.TripSession{
		ID:         chatID,
		Title:      title,
		Location:   city,
		SearchData: req.SearchData,
		Messages: []models.Message{
			{
				ID:      models.UserMessageID(chatID),
				Type:    models.MessageUser,
				Content: req.UserMessage,
			},
			{
				ID:            models.AIMessageID(chatID),
				Type:          models.MessageAI,
				Content:       response,
				Locations:     locations,
				City:          city,
				PracticalTips: tips,
			},
		},
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	key := owner(c)
	s.mu.Lock()
	s.trips[key] = append([]models.TripSession{trip}, s.trips[key]...)
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{
		"chat_id": chatID,
		"city":    city,
		"owner":   key,
	}).Info("plan created")

	return c.JSON(fiber.Map{
		"success":       true,
		"response":      response,
		"city":          city,
		"locations":     locations,
		"practicalTips": tips,
		"chatId":        chatID,
		"title":         title,
		"location":      city,
	})
}

func (s *Server) handleHistory(c *fiber.Ctx) error {
	key := owner(c)

	s.mu.RLock()
	trips := make([]fiber.Map, 0, len(s.trips[key]))
	for _, t := range s.trips[key] {
		trips = append(trips, fiber.Map{
			"id":          t.ID,
			"title":       t.Title,
			"location":    t.Location,
			"lastUpdated": t.UpdatedAt,
			"searchData":  t.SearchData,
			"image":       t.Image,
		})
	}
	s.mu.RUnlock()

	return c.JSON(fiber.Map{
		"success": true,
		"trips":   trips,
		"pagination": fiber.Map{
			"page":  1,
			"total": len(trips),
		},
		"metadata": fiber.Map{
			"source": "stub",
		},
	})
}

func (s *Server) handleDeleteChat(c *fiber.Ctx) error {
	id := c.Params("id")
	key := owner(c)

	s.mu.Lock()
	list := s.trips[key]
	for i, t := range list {
		if t.ID == id {
			s.trips[key] = append(list[:i], list[i+1:]...)
			break
		}
	}
	s.deleted[id] = struct{}{}
	s.mu.Unlock()

	// Idempotent: deleting an unknown or already-deleted id still succeeds.
	return c.JSON(fiber.Map{"success": true})
}

type mapItRequest struct {
	Locations  []models.Location `json:"locations"`
	TravelMode string            `json:"travelMode"`
}

func (s *Server) handleMapIt(c *fiber.Ctx) error {
	var req mapItRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid request body",
		})
	}
	if len(req.Locations) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "at least one location is required",
		})
	}

	return c.JSON(fiber.Map{"mapUrl": buildMapURL(req.Locations, req.TravelMode)})
}

// buildMapURL assembles a single navigable route URL: the last location is
// the destination, everything before it a waypoint.
func buildMapURL(locations []models.Location, travelMode string) string {
	if travelMode == "" {
		travelMode = "walking"
	}

	names := make([]string, 0, len(locations))
	for _, l := range locations {
		label := l.Name
		if l.Address != "" {
			label = fmt.Sprintf("%s, %s", l.Name, l.Address)
		}
		names = append(names, label)
	}

	dest := names[len(names)-1]
	q := url.Values{}
	q.Set("api", "1")
	q.Set("destination", dest)
	q.Set("travelmode", travelMode)
	if len(names) > 1 {
		q.Set("waypoints", strings.Join(names[:len(names)-1], "|"))
	}

	return "https://www.google.com/maps/dir/?" + q.Encode()
}
