package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	userGroup := g.Group("/user")
	{
		userGroup.POST("/register", h.Register)
		userGroup.POST("/login", h.Login)
		userGroup.GET("/data", authMiddleware, h.Me)
	}

	g.POST("/owner/change-role", authMiddleware, h.ChangeRole)

	favoriteGroup := g.Group("/favorite", authMiddleware)
	{
		favoriteGroup.POST("/add", h.AddFavorite)
		favoriteGroup.POST("/remove", h.RemoveFavorite)
		favoriteGroup.GET("/list", h.ListFavorites)
	}
}
