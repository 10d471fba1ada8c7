package handler

import (
	"net/http"

	"playmatch/lobby/internal/auth"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Register mounts the lobby API on router.
func Register(router *gin.Engine, h *Handler) {
	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	apiV1 := router.Group("/api/v1")
	apiV1.Use(auth.OptionalAuthMiddleware(h.Creds), h.ReconnectOnRefresh())
	{
		apiV1.POST("/session/token", h.SetToken)
		apiV1.GET("/handoffs", h.ListHandoffs)

		lobbyRoutes := apiV1.Group("/lobby")
		{
			lobbyRoutes.GET("", h.GetLobby)
			lobbyRoutes.GET("/events", h.Events)
			lobbyRoutes.POST("/roster/refresh", h.RefreshRoster)
			lobbyRoutes.PUT("/mode", h.SelectMode)
			lobbyRoutes.POST("/queue", h.ToggleQueue)
			lobbyRoutes.POST("/deeplink/confirm", h.ConfirmDeepLink)
			lobbyRoutes.POST("/deeplink/dismiss", h.DismissDeepLink)
			lobbyRoutes.DELETE("/notices/:id", h.DismissNotice)

			users := lobbyRoutes.Group("/users/:username")
			{
				users.POST("/invitation", h.SendInvitation)
				users.DELETE("/invitation", h.CancelInvitation)
				users.POST("/incoming/accept", h.AcceptIncoming)
				users.POST("/incoming/reject", h.RejectIncoming)
			}
		}
	}
}
