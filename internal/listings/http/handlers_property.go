package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/property-listing-backend/internal/listings/domain"
	"github.com/GoSim-25-26J-441/property-listing-backend/internal/listings/service"
)

// GetProperty returns a property's fields with its id. Any failure, including
// a missing document, is a 500.
func (h *Handler) GetProperty(c *gin.Context) {
	propertyID := c.Param("propertyId")

	property, err := h.properties.GetProperty(c.Request.Context(), propertyID)
	if err != nil {
		service.NewLogger(c.Request.Context()).LogError("get_property", err)
		c.String(http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, property.JSON())
}

// ListUserProperties returns the caller's properties. The token normally comes
// in the body, so this is a POST.
func (h *Handler) ListUserProperties(c *gin.Context) {
	var req tokenRequest
	if err := bindJSON(c, &req); err != nil {
		c.String(http.StatusForbidden, "Server Error")
		return
	}

	properties, err := h.properties.ListUserProperties(c.Request.Context(), idToken(c, req.IDToken))
	if err != nil {
		service.NewLogger(c.Request.Context()).LogError("list_user_properties", err)
		c.String(http.StatusForbidden, "Server Error")
		return
	}

	out := make([]map[string]interface{}, 0, len(properties))
	for _, p := range properties {
		out = append(out, p.JSON())
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) UpdateProperty(c *gin.Context) {
	var req updatePropertyRequest
	if err := bindJSON(c, &req); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	err := h.properties.UpdateProperty(c.Request.Context(), idToken(c, req.IDToken), req.PropertyID, req.Property)
	if errors.Is(err, domain.ErrNotOwner) {
		c.String(http.StatusForbidden, "Unauthorized")
		return
	}
	if err != nil {
		service.NewLogger(c.Request.Context()).LogError("update_property", err)
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	c.String(http.StatusOK, "Property updated")
}

func (h *Handler) DeleteProperty(c *gin.Context) {
	var req deletePropertyRequest
	if err := bindJSON(c, &req); err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}

	err := h.properties.DeleteProperty(c.Request.Context(), idToken(c, req.IDToken), req.PropertyID)
	switch {
	case err == nil:
		service.NewLogger(c.Request.Context()).LogInfof("delete_property", "property_id=%s", req.PropertyID)
		c.String(http.StatusOK, "Property deleted successfully")
	case errors.Is(err, domain.ErrPropertyNotFound):
		c.String(http.StatusNotFound, "Property not found")
	case errors.Is(err, domain.ErrNotAuthorized):
		c.String(http.StatusUnauthorized, "You are not authorized to delete this property")
	default:
		service.NewLogger(c.Request.Context()).LogError("delete_property", err)
		c.String(http.StatusInternalServerError, err.Error())
	}
}

// CreateProperty reads the property fields straight from the top level of the body.
func (h *Handler) CreateProperty(c *gin.Context) {
	var body map[string]interface{}
	if err := bindJSON(c, &body); err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}

	token, _ := body["idToken"].(string)

	propertyID, err := h.properties.CreateProperty(c.Request.Context(), idToken(c, token), body)
	if errors.Is(err, domain.ErrUnauthenticated) || errors.Is(err, domain.ErrMissingIdentity) {
		c.String(http.StatusUnauthorized, "Unauthorized")
		return
	}
	if err != nil {
		service.NewLogger(c.Request.Context()).LogError("create_property", err)
		c.String(http.StatusInternalServerError, err.Error())
		return
	}

	service.NewLogger(c.Request.Context()).LogInfof("create_property", "property_id=%s", propertyID)
	c.String(http.StatusCreated, "Property added")
}
