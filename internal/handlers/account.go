package handlers

import (
	"context"
	"net/http"

	dom "Socialmedia/internal/domain"
	"Socialmedia/internal/dto"
	"Socialmedia/internal/metrics"

	"github.com/gin-gonic/gin"
)

// AccountService is the account side of the domain used by the handlers.
type AccountService interface {
	Register(ctx context.Context, candidate dom.Account) (dom.Account, error)
	Login(ctx context.Context, username, password string) (dom.Account, bool, error)
	Exists(ctx context.Context, id int64) bool
}

// AccountHandler handles registration and login.
type AccountHandler struct {
	accounts AccountService
}

// NewAccountHandler returns a new AccountHandler.
func NewAccountHandler(accounts AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// Register godoc
// @Summary      Register an account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        body  body      dto.AccountRequest  true  "Credentials"
// @Success      200   {object}  dto.AccountResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /register [post]
func (h *AccountHandler) Register(c *gin.Context) {
	var req dto.AccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	a, err := h.accounts.Register(c.Request.Context(), dom.Account{Username: req.Username, Password: req.Password})
	if err != nil {
		respondError(c, err)
		return
	}
	metrics.AccountsRegistered.Inc()
	c.JSON(http.StatusOK, accountToResponse(a))
}

// Login godoc
// @Summary      Login
// @Description  Stateless credential check; no session or token is issued.
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        body  body      dto.AccountRequest  true  "Credentials"
// @Success      200   {object}  dto.AccountResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /login [post]
func (h *AccountHandler) Login(c *gin.Context) {
	var req dto.AccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	a, ok, err := h.accounts.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	if !ok {
		metrics.Logins.WithLabelValues("rejected").Inc()
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "invalid username or password"})
		return
	}
	metrics.Logins.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, accountToResponse(a))
}
