package bootstrap

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/GoSim-25-26J-441/property-listing-backend/config"
)

// InitSentry configures error reporting when SENTRY_DSN is set. The returned
// func flushes buffered events and is safe to call when Sentry is disabled.
func InitSentry(cfg *config.AppConfig) (func(), error) {
	if cfg.SentryDSN == "" {
		return func() {}, nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.SentryDSN,
		Environment: cfg.Environment,
		Release:     cfg.ServiceName + "@" + cfg.Version,
	})
	if err != nil {
		return nil, fmt.Errorf("sentry init: %w", err)
	}

	return func() { sentry.Flush(2 * time.Second) }, nil
}
