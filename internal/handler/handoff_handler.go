package handler

import (
	"net/http"

	"playmatch/lobby/internal/models"

	"github.com/gin-gonic/gin"
)

// HandoffResponse is one journaled transition into a game session.
type HandoffResponse struct {
	ID        uint                 `json:"id" example:"1"`
	SessionID string               `json:"session_id" example:"g42"`
	Source    models.HandoffSource `json:"source" example:"queue"`
	Opponent  string               `json:"opponent,omitempty" example:"alice"`
	Mode      models.GameMode      `json:"mode,omitempty" example:"classic"`
	CreatedAt string               `json:"created_at"`
}

// PaginatedHandoffResponse defines the structure for a paginated list of handoffs.
type PaginatedHandoffResponse struct {
	Data []HandoffResponse `json:"data"`
	Meta PaginationMeta    `json:"meta"`
}

func newHandoffResponse(rec models.HandoffRecord) HandoffResponse {
	return HandoffResponse{
		ID:        rec.ID,
		SessionID: rec.SessionID,
		Source:    rec.Source,
		Opponent:  rec.Opponent,
		Mode:      rec.Mode,
		CreatedAt: rec.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

// ListHandoffs godoc
// @Summary      List past game handoffs
// @Description  Gets a paginated list of the games this lobby handed off to, newest first.
// @Tags         handoffs
// @Produce      json
// @Param        source query string false "Filter by source (queue, invitation, incoming)"
// @Param        page   query int    false "Page number" default(1)
// @Param        limit  query int    false "Items per page" default(10)
// @Success      200 {object} PaginatedHandoffResponse
// @Failure      503 {object} ErrorResponse "No database configured"
// @Router       /handoffs [get]
func (h *Handler) ListHandoffs(c *gin.Context) {
	if h.Journal == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Handoff journal not configured"})
		return
	}
	page, limit := parsePage(c)

	result, err := Paginate[models.HandoffRecord](h.Journal.Query(models.HandoffSource(c.Query("source"))), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list handoffs"})
		return
	}

	data := make([]HandoffResponse, 0, len(result.Data))
	for _, rec := range result.Data {
		data = append(data, newHandoffResponse(rec))
	}
	c.JSON(http.StatusOK, PaginatedHandoffResponse{Data: data, Meta: result.Meta})
}
