package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/property-listing-backend/internal/auth"
	"github.com/GoSim-25-26J-441/property-listing-backend/internal/docstore"
	listingshttp "github.com/GoSim-25-26J-441/property-listing-backend/internal/listings/http"
	"github.com/GoSim-25-26J-441/property-listing-backend/internal/listings/service"
)

type APIDeps struct {
	Store    docstore.Store
	Verifier auth.TokenVerifier
}

// RegisterAPI mounts the listing endpoints under /api.
func RegisterAPI(r *gin.Engine, dep APIDeps) {
	api := r.Group("/api")

	propertyService := service.NewPropertyService(dep.Store, dep.Verifier)
	userService := service.NewUserService(dep.Store, dep.Verifier)

	listingshttp.New(propertyService, userService).Register(api)
}
