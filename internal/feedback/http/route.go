package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	group := g.Group("/feedback")
	{
		group.POST("", h.Create)
		group.GET("", h.List)
	}
}
