package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetLobby godoc
// @Summary      Get the lobby
// @Description  Returns the roster, invitation and queue state, notices and any pending handoff.
// @Tags         lobby
// @Produce      json
// @Success      200  {object}  lobby.View
// @Failure      503  {object}  ErrorResponse "Lobby closed"
// @Router       /lobby [get]
func (h *Handler) GetLobby(c *gin.Context) {
	h.respond(c, nil)
}

// RefreshRoster godoc
// @Summary      Refresh the roster
// @Description  Fetches a roster snapshot now instead of waiting for the next poll.
// @Tags         lobby
// @Produce      json
// @Success      200  {object}  lobby.View
// @Failure      502  {object}  ErrorResponse "Coordination server error"
// @Router       /lobby/roster/refresh [post]
func (h *Handler) RefreshRoster(c *gin.Context) {
	h.respond(c, h.Lobby.Refresh(c.Request.Context()))
}

// SelectMode godoc
// @Summary      Select the game mode
// @Description  Chooses the mode used by the queue and by invitations.
// @Tags         lobby
// @Accept       json
// @Produce      json
// @Param        input body ModeInput true "Game mode"
// @Success      200  {object}  lobby.View
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse "Mode locked, queued or invitation outstanding"
// @Router       /lobby/mode [put]
func (h *Handler) SelectMode(c *gin.Context) {
	var input ModeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	mode, err := parseMode(input.Mode)
	if err != nil {
		h.respond(c, err)
		return
	}
	h.respond(c, h.Lobby.SelectMode(c.Request.Context(), mode))
}

// SendInvitation godoc
// @Summary      Invite a user
// @Description  Invites an online user. Without a mode in the body the selected mode is used.
// @Tags         invitations
// @Accept       json
// @Produce      json
// @Param        username path string          true  "Username"
// @Param        input    body InvitationInput false "Mode override"
// @Success      200  {object}  lobby.View
// @Failure      400  {object}  ErrorResponse "No mode selected"
// @Failure      404  {object}  ErrorResponse "User not in the lobby"
// @Failure      409  {object}  ErrorResponse "Queued or invitation outstanding"
// @Failure      502  {object}  ErrorResponse "Coordination server error"
// @Router       /lobby/users/{username}/invitation [post]
func (h *Handler) SendInvitation(c *gin.Context) {
	var input InvitationInput
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
	}
	mode, err := parseMode(input.Mode)
	if err != nil {
		h.respond(c, err)
		return
	}
	h.respond(c, h.Lobby.SendInvitation(c.Request.Context(), c.Param("username"), mode))
}

// CancelInvitation godoc
// @Summary      Cancel an invitation
// @Tags         invitations
// @Produce      json
// @Param        username path string true "Username"
// @Success      200  {object}  lobby.View
// @Failure      404  {object}  ErrorResponse "No outstanding invitation to this user"
// @Failure      502  {object}  ErrorResponse "Coordination server error"
// @Router       /lobby/users/{username}/invitation [delete]
func (h *Handler) CancelInvitation(c *gin.Context) {
	h.respond(c, h.Lobby.CancelInvitation(c.Request.Context(), c.Param("username")))
}

// AcceptIncoming godoc
// @Summary      Accept an incoming invitation
// @Description  Accepts the invitation the user sent; the game starts after the grace delay.
// @Tags         invitations
// @Produce      json
// @Param        username path string true "Username"
// @Success      200  {object}  lobby.View
// @Failure      404  {object}  ErrorResponse "No invitation from this user"
// @Failure      409  {object}  ErrorResponse
// @Router       /lobby/users/{username}/incoming/accept [post]
func (h *Handler) AcceptIncoming(c *gin.Context) {
	h.respond(c, h.Lobby.AcceptIncoming(c.Request.Context(), c.Param("username")))
}

// RejectIncoming godoc
// @Summary      Reject an incoming invitation
// @Tags         invitations
// @Produce      json
// @Param        username path string true "Username"
// @Success      200  {object}  lobby.View
// @Failure      404  {object}  ErrorResponse "No invitation from this user"
// @Router       /lobby/users/{username}/incoming/reject [post]
func (h *Handler) RejectIncoming(c *gin.Context) {
	h.respond(c, h.Lobby.RejectIncoming(c.Request.Context(), c.Param("username")))
}

// ToggleQueue godoc
// @Summary      Join or leave the queue
// @Description  Joins the matchmaking queue with the selected mode, or leaves it when already queued.
// @Tags         queue
// @Produce      json
// @Success      200  {object}  lobby.View
// @Failure      400  {object}  ErrorResponse "No mode selected"
// @Failure      409  {object}  ErrorResponse "Invitation outstanding"
// @Failure      503  {object}  ErrorResponse "Channel not connected"
// @Router       /lobby/queue [post]
func (h *Handler) ToggleQueue(c *gin.Context) {
	h.respond(c, h.Lobby.ToggleQueue(c.Request.Context()))
}

// ConfirmDeepLink godoc
// @Summary      Confirm the invitation link
// @Description  Picks the mode for the invitation the lobby was opened with and sends it.
// @Tags         invitations
// @Accept       json
// @Produce      json
// @Param        input body ModeInput true "Game mode"
// @Success      200  {object}  lobby.View
// @Failure      404  {object}  ErrorResponse "No invitation link waiting"
// @Router       /lobby/deeplink/confirm [post]
func (h *Handler) ConfirmDeepLink(c *gin.Context) {
	var input ModeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	mode, err := parseMode(input.Mode)
	if err != nil {
		h.respond(c, err)
		return
	}
	h.respond(c, h.Lobby.ConfirmDeepLink(c.Request.Context(), mode))
}

// DismissDeepLink godoc
// @Summary      Dismiss the invitation link
// @Tags         invitations
// @Produce      json
// @Success      200  {object}  lobby.View
// @Failure      404  {object}  ErrorResponse "No invitation link waiting"
// @Router       /lobby/deeplink/dismiss [post]
func (h *Handler) DismissDeepLink(c *gin.Context) {
	h.respond(c, h.Lobby.DismissDeepLink(c.Request.Context()))
}

// DismissNotice godoc
// @Summary      Dismiss a notice
// @Tags         lobby
// @Produce      json
// @Param        id path string true "Notice ID"
// @Success      200  {object}  lobby.View
// @Failure      404  {object}  ErrorResponse "Notice not found"
// @Failure      409  {object}  ErrorResponse "Blocking notices cannot be dismissed"
// @Router       /lobby/notices/{id} [delete]
func (h *Handler) DismissNotice(c *gin.Context) {
	h.respond(c, h.Lobby.DismissNotice(c.Request.Context(), c.Param("id")))
}

// Events godoc
// @Summary      Stream lobby events
// @Description  Server-sent events carrying every new lobby view and the login and game transitions.
// @Tags         lobby
// @Produce      text/event-stream
// @Success      200
// @Router       /lobby/events [get]
func (h *Handler) Events(c *gin.Context) {
	client := h.Hub.Subscribe()
	defer h.Hub.Unsubscribe(client)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-client:
			if !ok {
				return
			}
			c.SSEvent("lobby", string(msg))
			c.Writer.Flush()
		}
	}
}
