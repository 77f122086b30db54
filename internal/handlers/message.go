package handlers

import (
	"context"
	"errors"
	"net/http"

	dom "Socialmedia/internal/domain"
	"Socialmedia/internal/dto"
	"Socialmedia/internal/metrics"

	"github.com/gin-gonic/gin"
)

type MessageService interface {
	PostMessage(ctx context.Context, candidate dom.Message) (dom.Message, error)
	GetAllMessages(ctx context.Context) ([]dom.Message, error)
	GetMessageByID(ctx context.Context, id int64) (dom.Message, bool, error)
	DeleteMessage(ctx context.Context, id int64) (bool, error)
	UpdateMessageText(ctx context.Context, id int64, text string) (dom.Message, error)
	GetMessagesByUserID(ctx context.Context, authorID int64) ([]dom.Message, error)
}

type MessageHandler struct {
	messages MessageService
	accounts AccountService
}

func NewMessageHandler(messages MessageService, accounts AccountService) *MessageHandler {
	return &MessageHandler{messages: messages, accounts: accounts}
}

// Create godoc
// @Summary      Post a message
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateMessageRequest  true  "Message"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /messages [post]
func (h *MessageHandler) Create(c *gin.Context) {
	var req dto.CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	ctx := c.Request.Context()
	if !h.accounts.Exists(ctx, req.PostedBy) {
		badRequest(c, "posted_by does not reference an existing account")
		return
	}
	m, err := h.messages.PostMessage(ctx, dom.Message{
		AuthorID: req.PostedBy,
		Text:     req.Text,
		PostedAt: req.PostedAt,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	metrics.MessagesPosted.Inc()
	c.JSON(http.StatusOK, messageToResponse(m))
}

// List godoc
// @Summary      List all messages
// @Tags         messages
// @Produce      json
// @Success      200  {array}   dto.MessageResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /messages [get]
func (h *MessageHandler) List(c *gin.Context) {
	list, err := h.messages.GetAllMessages(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, messagesToResponses(list))
}

// GetByID godoc
// @Summary      Get a message by ID
// @Description  An unknown id answers 200 with an empty body.
// @Tags         messages
// @Produce      json
// @Param        message_id  path      int  true  "Message ID"
// @Success      200         {object}  dto.MessageResponse
// @Failure      400         {object}  dto.ErrorResponse
// @Failure      500         {object}  dto.ErrorResponse
// @Router       /messages/{message_id} [get]
func (h *MessageHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "message_id")
	if !ok {
		return
	}
	m, found, err := h.messages.GetMessageByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !found {
		c.Status(http.StatusOK)
		return
	}
	c.JSON(http.StatusOK, messageToResponse(m))
}

// Delete godoc
// @Summary      Delete a message
// @Description  Returns the deleted message; an unknown id answers 200 with an empty body.
// @Tags         messages
// @Produce      json
// @Param        message_id  path      int  true  "Message ID"
// @Success      200         {object}  dto.MessageResponse
// @Failure      400         {object}  dto.ErrorResponse
// @Failure      500         {object}  dto.ErrorResponse
// @Router       /messages/{message_id} [delete]
func (h *MessageHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "message_id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	m, found, err := h.messages.GetMessageByID(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !found {
		c.Status(http.StatusOK)
		return
	}
	removed, err := h.messages.DeleteMessage(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !removed {
		c.Status(http.StatusOK)
		return
	}
	metrics.MessagesDeleted.Inc()
	c.JSON(http.StatusOK, messageToResponse(m))
}

// Update godoc
// @Summary      Update message text
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        message_id  path      int                       true  "Message ID"
// @Param        body        body      dto.UpdateMessageRequest  true  "New text"
// @Success      200         {object}  dto.MessageResponse
// @Failure      400         {object}  dto.ErrorResponse
// @Failure      500         {object}  dto.ErrorResponse
// @Router       /messages/{message_id} [patch]
func (h *MessageHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "message_id")
	if !ok {
		return
	}
	var req dto.UpdateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	m, err := h.messages.UpdateMessageText(c.Request.Context(), id, req.Text)
	if err != nil {
		if errors.Is(err, dom.ErrNotFound) {
			badRequest(c, "message not found")
			return
		}
		respondError(c, err)
		return
	}
	metrics.MessagesUpdated.Inc()
	c.JSON(http.StatusOK, messageToResponse(m))
}

// ListByAccount godoc
// @Summary      List messages posted by an account
// @Tags         messages
// @Produce      json
// @Param        account_id  path      int  true  "Account ID"
// @Success      200         {array}   dto.MessageResponse
// @Failure      400         {object}  dto.ErrorResponse
// @Failure      500         {object}  dto.ErrorResponse
// @Router       /accounts/{account_id}/messages [get]
func (h *MessageHandler) ListByAccount(c *gin.Context) {
	id, ok := parseID(c, "account_id")
	if !ok {
		return
	}
	list, err := h.messages.GetMessagesByUserID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, messagesToResponses(list))
}
