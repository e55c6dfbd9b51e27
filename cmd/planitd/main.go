// planitd is the development stub of the PlanIT planning backend. It serves
// the documented HTTP contract with canned itineraries so the client can be
// developed and demoed without the real backend.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/planit-app/planit/internal/config"
	"github.com/planit-app/planit/internal/stub"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}

	log := logrus.New()
	if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		log.SetLevel(level)
	}

	secret := cfg.Server.JWTSecret
	if secret == "" {
		secret = "change-me-in-production"
		log.Warn("using default JWT secret, set PLANIT_JWT_SECRET for anything real")
	}

	srv := stub.New(secret, logrus.NewEntry(log))

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	if err := srv.Listen(addr); err != nil {
		log.WithError(err).Error("server exited")
		os.Exit(1)
	}
}
