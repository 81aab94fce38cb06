package cmd

import (
	"context"
	"fmt"

	"github.com/Iron-Ham/teamboard/internal/config"
	"github.com/Iron-Ham/teamboard/internal/errors"
	"github.com/Iron-Ham/teamboard/internal/event"
	"github.com/Iron-Ham/teamboard/internal/logging"
	"github.com/Iron-Ham/teamboard/internal/session"
)

// app bundles what every command needs: validated config, a logger, the
// event bus and the local stores.
type app struct {
	cfg       *config.Config
	logger    *logging.Logger
	bus       *event.Bus
	positions *session.FileStore
	auth      *session.AuthStore
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := logging.NopLogger()
	if cfg.Logging.Enabled {
		logger, err = logging.NewLogger(cfg.Logging.ResolveDir(), cfg.Logging.Level)
		if err != nil {
			return nil, err
		}
	}

	positions, err := session.NewFileStore(cfg.Wizard.ResolveStateDir())
	if err != nil {
		_ = logger.Close()
		return nil, err
	}
	authFiles, err := session.NewFileStore(cfg.Session.ResolveDir())
	if err != nil {
		_ = logger.Close()
		return nil, err
	}

	bus := event.NewBus(logger)
	bus.SubscribeAll(func(e event.Event) {
		logger.Debug("wizard event", "type", e.EventType())
	})

	return &app{
		cfg:       cfg,
		logger:    logger,
		bus:       bus,
		positions: positions,
		auth:      session.NewAuthStore(authFiles),
	}, nil
}

// loadAuth returns the stored session, treating a missing one as signed out.
func (a *app) loadAuth(ctx context.Context) (session.Auth, error) {
	auth, err := a.auth.Load(ctx)
	if errors.Is(err, errors.ErrSessionNotFound) {
		return session.Auth{}, nil
	}
	return auth, err
}

func (a *app) Close() {
	_ = a.logger.Close()
}
