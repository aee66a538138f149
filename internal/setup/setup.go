package setup

import (
	"context"
	"fmt"

	"github.com/fileflow-dev/fileflow/internal/config"
	"github.com/fileflow-dev/fileflow/internal/handler"
	"github.com/fileflow-dev/fileflow/internal/logger"
	"github.com/fileflow-dev/fileflow/internal/mailer"
	"github.com/fileflow-dev/fileflow/internal/service"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Config  *config.Config
	Mailer  mailer.Mailer
	Handler *handler.Handler
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	m, err := newMailer(ctx, &cfg.Private.Mailer)
	if err != nil {
		return nil, err
	}
	logger.Log.Info("delivery provider configured", "provider", m.Name())

	delivery := service.NewDelivery(m)
	h := handler.New(delivery)

	return &Dependencies{
		Config:  cfg,
		Mailer:  m,
		Handler: h,
	}, nil
}

func newMailer(ctx context.Context, cfg *config.Mailer) (mailer.Mailer, error) {
	switch cfg.Provider {
	case "smtp":
		return mailer.NewSMTP(cfg), nil
	case "ses":
		return mailer.NewSES(ctx, cfg)
	case "stdout":
		return mailer.NewStdout(), nil
	default:
		return nil, fmt.Errorf("unknown mailer provider: %q", cfg.Provider)
	}
}
