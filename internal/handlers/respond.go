package handlers

import (
	"errors"
	"net/http"
	"strconv"

	dom "Socialmedia/internal/domain"
	"Socialmedia/internal/dto"
	"Socialmedia/internal/metrics"

	"github.com/gin-gonic/gin"
)

// respondError writes the JSON error body for err. Validation failures are
// 400 with the rule's message; anything unrecognised is a 500 whose cause
// is attached to the context for the access log.
func respondError(c *gin.Context, err error) {
	var ve *dom.ValidationError
	switch {
	case errors.As(err, &ve):
		metrics.ValidationFailures.WithLabelValues(string(ve.Violation)).Inc()
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: ve.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: msg})
}

func parseID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}

func accountToResponse(a dom.Account) dto.AccountResponse {
	return dto.AccountResponse{ID: a.ID, Username: a.Username, Password: a.Password}
}

func messageToResponse(m dom.Message) dto.MessageResponse {
	return dto.MessageResponse{
		ID:       m.ID,
		PostedBy: m.AuthorID,
		Text:     m.Text,
		PostedAt: m.PostedAt,
	}
}

func messagesToResponses(list []dom.Message) []dto.MessageResponse {
	out := make([]dto.MessageResponse, len(list))
	for i := range list {
		out[i] = messageToResponse(list[i])
	}
	return out
}
