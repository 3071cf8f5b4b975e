package http

import "github.com/gin-gonic/gin"

// Car photos are public so the listing pages can embed them directly.
func RegisterRoutes(r gin.IRouter, h *Handler) {
	group := r.Group("/files")

	group.GET("/:id", h.ServeFile)
	group.GET("/:id/thumbnail", h.ServeThumbnail)
}
