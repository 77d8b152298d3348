package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/property-listing-backend/internal/listings/domain"
	"github.com/GoSim-25-26J-441/property-listing-backend/internal/listings/service"
)

// CreateUser creates the caller's user record from the verified token and the
// identity profile.
func (h *Handler) CreateUser(c *gin.Context) {
	var req tokenRequest
	if err := bindJSON(c, &req); err != nil {
		c.String(http.StatusForbidden, "Invalid token")
		return
	}

	user, err := h.users.CreateUser(c.Request.Context(), idToken(c, req.IDToken))
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrMissingIdentity):
		c.String(http.StatusUnauthorized, "Unauthorized")
		return
	case errors.Is(err, domain.ErrUnauthenticated), errors.Is(err, domain.ErrIdentityUnavailable):
		service.NewLogger(c.Request.Context()).LogWarnf("create_user", "error=%v", err)
		c.String(http.StatusForbidden, "Invalid token")
		return
	default:
		service.NewLogger(c.Request.Context()).LogError("create_user", err)
		c.String(http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, createUserResponse{
		Status:   "success",
		Email:    user.Email,
		Name:     user.Name,
		PhotoURL: user.PhotoURL,
	})
}
