package bootstrap

import (
	"context"
	"log"

	firebase "firebase.google.com/go/v4"

	"github.com/GoSim-25-26J-441/property-listing-backend/config"
	"github.com/GoSim-25-26J-441/property-listing-backend/internal/auth"
)

// NeedsFirebase reports whether any configured component talks to Firebase.
func NeedsFirebase(cfg *config.Config) bool {
	return cfg.Firebase.AuthMode == config.AuthModeFirebase || cfg.Store.Backend == config.StoreFirestore
}

// NewVerifier returns the token verifier for the configured AUTH_MODE.
func NewVerifier(ctx context.Context, cfg *config.Config, app *firebase.App) (auth.TokenVerifier, error) {
	if cfg.Firebase.AuthMode == config.AuthModeDev {
		log.Println("[warn] AUTH_MODE=dev: id tokens are treated as uids, do not use in production")
		return auth.NewDevVerifier(), nil
	}
	verifier, err := auth.NewFirebaseVerifier(ctx, app)
	if err != nil {
		return nil, err
	}
	return verifier, nil
}
