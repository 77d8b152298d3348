package http

import "github.com/GoSim-25-26J-441/property-listing-backend/internal/listings/service"

type Handler struct {
	properties *service.PropertyService
	users      *service.UserService
}

func New(properties *service.PropertyService, users *service.UserService) *Handler {
	return &Handler{
		properties: properties,
		users:      users,
	}
}

type tokenRequest struct {
	IDToken string `json:"idToken"`
}

type updatePropertyRequest struct {
	IDToken    string                 `json:"idToken"`
	PropertyID string                 `json:"propertyId"`
	Property   map[string]interface{} `json:"property"`
}

type deletePropertyRequest struct {
	IDToken    string `json:"idToken"`
	PropertyID string `json:"propertyId"`
}

type createUserResponse struct {
	Status   string `json:"status"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	PhotoURL string `json:"photoURL"`
}
