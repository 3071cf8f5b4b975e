package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the booking endpoints. The availability search is
// public; everything else needs an authenticated user, and the owner-side
// endpoints additionally require the owner role.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, ownerMiddleware gin.HandlerFunc) {
	group := g.Group("/booking")

	group.POST("/check-availability", h.CheckAvailability)

	group.POST("/create", authMiddleware, h.Create)
	group.GET("/user", authMiddleware, h.ListForUser)
	group.GET("/owner", authMiddleware, ownerMiddleware, h.ListForOwner)
	group.POST("/change-status", authMiddleware, ownerMiddleware, h.ChangeStatus)

	g.GET("/owner/dashboard", authMiddleware, ownerMiddleware, h.Dashboard)
}
