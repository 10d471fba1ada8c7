package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetToken godoc
// @Summary      Hand over a fresh access token
// @Description  Stores the token returned by the login flow and reconnects the channel with it.
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        input body TokenInput true "Access token"
// @Success      200  {object}  lobby.View
// @Failure      400  {object}  ErrorResponse "Malformed token"
// @Router       /session/token [post]
func (h *Handler) SetToken(c *gin.Context) {
	var input TokenInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if err := h.Creds.Set(input.Token); err != nil {
		h.respond(c, err)
		return
	}
	log.Println("[CHANNEL] Access token replaced, reconnecting")
	h.respond(c, h.Lobby.Reconnect(c.Request.Context()))
}

// ReconnectOnRefresh reconnects the channel when OptionalAuthMiddleware
// picked up a new bearer token on this request.
func (h *Handler) ReconnectOnRefresh() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetBool("tokenRefreshed") {
			if err := h.Lobby.Reconnect(c.Request.Context()); err != nil {
				log.Printf("[CHANNEL] Reconnect after token refresh failed: %v", err)
			}
		}
		c.Next()
	}
}
