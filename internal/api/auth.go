package api

import (
	"context"
	"net/http"

	"github.com/planit-app/planit/internal/models"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Token   string       `json:"token"`
	User    *models.User `json:"user"`
}

// Credentials is a successful auth result.
type Credentials struct {
	Token string
	User  models.User
}

func (c *Client) auth(ctx context.Context, path string, body interface{}) (*Credentials, error) {
	var resp authResponse
	if err := c.doJSON(ctx, http.MethodPost, path, body, &resp); err != nil {
		return nil, err
	}
	if !resp.Success || resp.User == nil {
		return nil, &AuthError{Message: resp.Message}
	}
	return &Credentials{Token: resp.Token, User: *resp.User}, nil
}

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, email, password string) (*Credentials, error) {
	return c.auth(ctx, "/api/auth/login", loginRequest{Email: email, Password: password})
}

// Signup registers a new account.
func (c *Client) Signup(ctx context.Context, name, email, password string) (*Credentials, error) {
	return c.auth(ctx, "/api/auth/signup", signupRequest{Name: name, Email: email, Password: password})
}

type profileResponse struct {
	Success bool         `json:"success"`
	User    *models.User `json:"user"`
}

// Profile reads the authenticated profile.
func (c *Client) Profile(ctx context.Context) (*models.User, error) {
	var resp profileResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/auth/profile", nil, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

type updateProfileRequest struct {
	Name      string `json:"name,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// UpdateProfile updates the authenticated profile's mutable fields.
func (c *Client) UpdateProfile(ctx context.Context, name, avatarURL string) (*models.User, error) {
	var resp profileResponse
	req := updateProfileRequest{Name: name, AvatarURL: avatarURL}
	if err := c.doJSON(ctx, http.MethodPut, "/api/auth/profile", req, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}
