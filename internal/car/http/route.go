package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the car endpoints: a public storefront listing under
// /user/cars and the owner fleet management endpoints under /owner.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, ownerMiddleware gin.HandlerFunc) {
	g.GET("/user/cars", h.ListListed)

	owner := g.Group("/owner")
	owner.Use(authMiddleware, ownerMiddleware)
	{
		owner.POST("/add-car", h.Add)
		owner.GET("/cars", h.ListByOwner)
		owner.POST("/toggle-car", h.Toggle)
		owner.POST("/delete-car", h.Delete)
	}
}
