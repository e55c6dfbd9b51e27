// Package stub is a development stand-in for the PlanIT planning backend.
// It implements the documented HTTP contract with canned itineraries and an
// in-memory user store so the client can be exercised end to end without the
// real AI backend. Nothing here survives a restart.
package stub

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"

	"github.com/planit-app/planit/internal/auth"
	"github.com/planit-app/planit/internal/models"
)

type user struct {
	ID           string
	Email        string
	Name         string
	AvatarURL    string
	PasswordHash string
	CreatedAt    time.Time
}

func (u *user) toModel() models.User {
	return models.User{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
	}
}

// anonOwner keys trips created without a bearer token.
const anonOwner = "anonymous"

// Server is the stub backend.
type Server struct {
	app *fiber.App
	jwt *auth.JWTService
	log *logrus.Entry

	mu      sync.RWMutex
	users   map[string]*user                // by email
	byID    map[string]*user                // by user id
	trips   map[string][]models.TripSession // by owner, newest first
	deleted map[string]struct{}             // tombstones for idempotent delete
}

// New creates the stub server with its routes registered.
func New(jwtSecret string, log *logrus.Entry) *Server {
	s := &Server{
		jwt:     auth.NewJWTService(jwtSecret, "planit-stub"),
		log:     log,
		users:   make(map[string]*user),
		byID:    make(map[string]*user),
		trips:   make(map[string][]models.TripSession),
		deleted: make(map[string]struct{}),
	}

	app := fiber.New(fiber.Config{
		AppName:      "PlanIT Stub Backend",
		ErrorHandler: errorHandler,
	})
	app.Use(recover.New())
	app.Use(cors.New())

	api := app.Group("/api")
	api.Post("/auth/signup", s.handleSignup)
	api.Post("/auth/login", s.handleLogin)
	api.Get("/auth/profile", s.requireAuth, s.handleGetProfile)
	api.Put("/auth/profile", s.requireAuth, s.handleUpdateProfile)

	api.Post("/plan", s.optionalAuth, s.handlePlan)
	api.Get("/history", s.optionalAuth, s.handleHistory)
	api.Delete("/chat/:id", s.optionalAuth, s.handleDeleteChat)
	api.Post("/plan/mapit", s.handleMapIt)

	s.app = app
	return s
}

// Listen starts serving on addr. Blocks.
func (s *Server) Listen(addr string) error {
	s.log.WithField("addr", addr).Info("stub backend listening")
	return s.app.Listen(addr)
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"message": err.Error(),
	})
}

// requireAuth rejects requests without a valid bearer token.
func (s *Server) requireAuth(c *fiber.Ctx) error {
	token := auth.ExtractTokenFromBearer(c.Get("Authorization"))
	if token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "authentication required",
		})
	}

	claims, err := s.jwt.Validate(token)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "invalid or expired token",
		})
	}

	c.Locals("user_id", claims.UserID)
	return c.Next()
}

// optionalAuth attaches the user when a valid token is present and carries
// on anonymously otherwise.
func (s *Server) optionalAuth(c *fiber.Ctx) error {
	token := auth.ExtractTokenFromBearer(c.Get("Authorization"))
	if token != "" {
		if claims, err := s.jwt.Validate(token); err == nil {
			c.Locals("user_id", claims.UserID)
		}
	}
	return c.Next()
}

// owner returns the trip-list key for the request: the user id when
// authenticated, the shared anonymous bucket otherwise.
func owner(c *fiber.Ctx) string {
	if id, ok := c.Locals("user_id").(string); ok && id != "" {
		return id
	}
	return anonOwner
}
