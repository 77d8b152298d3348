package http

import "github.com/gin-gonic/gin"

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/property/:propertyId", h.GetProperty)
	rg.POST("/property", h.CreateProperty)
	rg.DELETE("/property", h.DeleteProperty)

	rg.POST("/user/property", h.ListUserProperties)
	rg.PUT("/user/property", h.UpdateProperty)

	rg.POST("/createUser", h.CreateUser)
}
