package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/hendrawijaya/pembukuan_app/internal/apperrors"
	portssvc "github.com/hendrawijaya/pembukuan_app/internal/core/ports/services"
	"github.com/hendrawijaya/pembukuan_app/internal/dto"
	"github.com/hendrawijaya/pembukuan_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to the chart of accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := &accountHandler{accountService: accountService}

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("/:id", h.getAccount)
		accounts.GET("", h.listAccounts)
	}
}

func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor := middleware.GetActorFromContext(c)
	account, err := h.accountService.CreateAccount(c.Request.Context(), req, actor)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error creating account", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrDuplicate):
			logger.Warn("Duplicate account code", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Parent account not found", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create account", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	account, err := h.accountService.GetAccountByID(c.Request.Context(), accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			logger.Error("Failed to get account", slog.String("account_id", accountID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve account"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), limit, offset)
	if err != nil {
		logger.Error("Failed to list accounts", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list accounts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"accounts": dto.ToAccountResponses(accounts)})
}
