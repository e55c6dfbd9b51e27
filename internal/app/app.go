// Package app wires the client's components together. All state is held in
// an explicitly constructed App passed to callers, never in package-level
// singletons: load on startup, flush on logout, close on exit.
package app

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/planit-app/planit/internal/api"
	"github.com/planit-app/planit/internal/auth"
	"github.com/planit-app/planit/internal/config"
	"github.com/planit-app/planit/internal/history"
	"github.com/planit-app/planit/internal/models"
	"github.com/planit-app/planit/internal/session"
	"github.com/planit-app/planit/internal/store"
)

// App is the assembled client.
type App struct {
	Config   *config.Config
	Log      *logrus.Logger
	Store    *store.Store
	Client   *api.Client
	Sessions *session.Manager
	History  *history.Service
}

// New loads configuration, opens the local store, and builds the client
// stack. A stored auth token is attached only if it is still usable; a stale
// one is cleared.
func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logrus.New()
	if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		log.SetLevel(level)
	}

	st, err := store.Open(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}

	client := api.New(cfg.API.BaseURL, cfg.API.Timeout, logrus.NewEntry(log))

	token, err := st.AuthToken(ctx)
	if err != nil {
		log.WithError(err).Warn("auth token read failed, continuing unauthenticated")
	} else if auth.TokenUsable(token) {
		client.SetToken(token)
	} else if token != "" {
		log.Debug("stored auth token expired, clearing")
		if err := st.ClearAuthToken(ctx); err != nil {
			log.WithError(err).Warn("failed to clear stale auth token")
		}
	}

	return &App{
		Config:   cfg,
		Log:      log,
		Store:    st,
		Client:   client,
		Sessions: session.NewManager(client, st, logrus.NewEntry(log)),
		History:  history.NewService(client, st, logrus.NewEntry(log)),
	}, nil
}

// Close releases the app's resources.
func (a *App) Close() error {
	return a.Store.Close()
}

// SaveCredentials persists a successful login and attaches the token to the
// client.
func (a *App) SaveCredentials(ctx context.Context, creds *api.Credentials) error {
	if err := a.Store.SetAuthToken(ctx, creds.Token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	acct := models.LocalAccount{Name: creds.User.Name, Email: creds.User.Email}
	if err := a.Store.SetLocalAccount(ctx, acct); err != nil {
		a.Log.WithError(err).Warn("failed to persist local account fallback")
	}
	a.Client.SetToken(creds.Token)
	return nil
}

// Logout flushes the persisted token and detaches it from the client. The
// local account fallback and trip cache stay for offline use.
func (a *App) Logout(ctx context.Context) error {
	a.Client.SetToken("")
	return a.Store.ClearAuthToken(ctx)
}
