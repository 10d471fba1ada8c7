package handler

import (
	"context"
	"errors"
	"net/http"

	"playmatch/lobby/internal/apiclient"
	"playmatch/lobby/internal/auth"
	"playmatch/lobby/internal/channel"
	"playmatch/lobby/internal/database"
	"playmatch/lobby/internal/hub"
	"playmatch/lobby/internal/lobby"
	"playmatch/lobby/internal/models"
	"playmatch/lobby/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

// ModeInput selects a game mode.
type ModeInput struct {
	Mode string `json:"mode" binding:"required" example:"classic"`
}

// InvitationInput optionally overrides the selected mode for one invitation.
type InvitationInput struct {
	Mode string `json:"mode" example:"bonus"`
}

// TokenInput carries a fresh access token from the login flow.
type TokenInput struct {
	Token string `json:"token" binding:"required"`
}

// endregion

// LobbyService is the part of the lobby the HTTP API drives.
type LobbyService interface {
	View(ctx context.Context) (lobby.View, error)
	Refresh(ctx context.Context) error
	SelectMode(ctx context.Context, mode models.GameMode) error
	SendInvitation(ctx context.Context, username string, mode models.GameMode) error
	CancelInvitation(ctx context.Context, username string) error
	AcceptIncoming(ctx context.Context, username string) error
	RejectIncoming(ctx context.Context, username string) error
	ToggleQueue(ctx context.Context) error
	ConfirmDeepLink(ctx context.Context, mode models.GameMode) error
	DismissDeepLink(ctx context.Context) error
	DismissNotice(ctx context.Context, id string) error
	Reconnect(ctx context.Context) error
}

// Handler serves the local lobby API.
type Handler struct {
	Lobby   LobbyService
	Hub     *hub.Hub
	Creds   *auth.Credentials
	Journal *database.Journal // nil when no database is configured
}

// respond writes the lobby view after a successful command, or the error it failed with.
func (h *Handler) respond(c *gin.Context, err error) {
	if err != nil {
		c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
		return
	}
	view, err := h.Lobby.View(c.Request.Context())
	if err != nil {
		c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, view)
}

var errInvalidMode = errors.New("unknown game mode")

func parseMode(s string) (models.GameMode, error) {
	if s == "" {
		return models.ModeUnset, nil
	}
	mode, ok := models.ParseGameMode(s)
	if !ok {
		return models.ModeUnset, errInvalidMode
	}
	return mode, nil
}

func statusFor(err error) int {
	var upstream *apiclient.StatusError
	switch {
	case errors.Is(err, errInvalidMode),
		errors.Is(err, lobby.ErrModeUnset),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrTokenExpired),
		errors.Is(err, jwt.ErrMalformed):
		return http.StatusBadRequest
	case errors.Is(err, lobby.ErrUnknownUser),
		errors.Is(err, lobby.ErrNotInvited),
		errors.Is(err, lobby.ErrNoIncomingInvitation),
		errors.Is(err, lobby.ErrNoDeepLink),
		errors.Is(err, lobby.ErrNoticeNotFound):
		return http.StatusNotFound
	case errors.Is(err, lobby.ErrModeLocked),
		errors.Is(err, lobby.ErrInvitationPending),
		errors.Is(err, lobby.ErrInQueue),
		errors.Is(err, lobby.ErrRequestInFlight),
		errors.Is(err, lobby.ErrHandoffStarted),
		errors.Is(err, lobby.ErrNoticeBlocking):
		return http.StatusConflict
	case errors.Is(err, channel.ErrNotConnected),
		errors.Is(err, channel.ErrSendBufferFull),
		errors.Is(err, lobby.ErrClosed):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &upstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
