package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	httpapi "github.com/GoSim-25-26J-441/property-listing-backend/internal/api/http"
	"github.com/GoSim-25-26J-441/property-listing-backend/internal/api/http/middleware"
	"github.com/GoSim-25-26J-441/property-listing-backend/internal/api/http/routes"
	"github.com/GoSim-25-26J-441/property-listing-backend/internal/auth"
	"github.com/GoSim-25-26J-441/property-listing-backend/internal/docstore"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	AllowedOrigins []string
	Store          docstore.Store
	Verifier       auth.TokenVerifier
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(cors.New(corsConfig(dep.AllowedOrigins)))

	var pinger docstore.Pinger
	if p, ok := dep.Store.(docstore.Pinger); ok {
		pinger = p
	}
	httpapi.NewHealthHandler(dep.ServiceName, dep.Version, pinger).RegisterRoutes(r)

	routes.RegisterAPI(r, routes.APIDeps{
		Store:    dep.Store,
		Verifier: dep.Verifier,
	})

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders: []string{middleware.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
