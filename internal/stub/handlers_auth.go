package stub

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/planit-app/planit/internal/auth"
)

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleSignup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid request body",
		})
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "a valid email is required",
		})
	}
	if err := auth.ValidatePassword(req.Password); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if _, exists := s.users[req.Email]; exists {
		s.mu.Unlock()
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"message": "email already registered",
		})
	}
	u := &user{
		ID:           uuid.New().String(),
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	s.users[req.Email] = u
	s.byID[u.ID] = u
	s.mu.Unlock()

	return s.respondWithToken(c, u)
}

func (s *Server) handleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid request body",
		})
	}

	s.mu.RLock()
	u := s.users[strings.ToLower(strings.TrimSpace(req.Email))]
	s.mu.RUnlock()

	if u == nil || !auth.CheckPassword(req.Password, u.PasswordHash) {
		return c.JSON(fiber.Map{
			"success": false,
			"message": "invalid email or password",
		})
	}

	return s.respondWithToken(c, u)
}

func (s *Server) respondWithToken(c *fiber.Ctx, u *user) error {
	token, err := s.jwt.Generate(u.ID, u.Email, u.Name)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"token":   token,
		"user":    u.toModel(),
	})
}

func (s *Server) handleGetProfile(c *fiber.Ctx) error {
	s.mu.RLock()
	u := s.byID[c.Locals("user_id").(string)]
	s.mu.RUnlock()

	if u == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "user not found",
		})
	}
	return c.JSON(fiber.Map{"success": true, "user": u.toModel()})
}

type updateProfileRequest struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

func (s *Server) handleUpdateProfile(c *fiber.Ctx) error {
	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid request body",
		})
	}

	s.mu.Lock()
	u := s.byID[c.Locals("user_id").(string)]
	if u != nil {
		if req.Name != "" {
			u.Name = req.Name
		}
		if req.AvatarURL != "" {
			u.AvatarURL = req.AvatarURL
		}
	}
	s.mu.Unlock()

	if u == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "user not found",
		})
	}
	return c.JSON(fiber.Map{"success": true, "user": u.toModel()})
}
