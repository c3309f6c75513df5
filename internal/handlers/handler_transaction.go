package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/hendrawijaya/pembukuan_app/internal/apperrors"
	"github.com/hendrawijaya/pembukuan_app/internal/core/domain"
	portssvc "github.com/hendrawijaya/pembukuan_app/internal/core/ports/services"
	"github.com/hendrawijaya/pembukuan_app/internal/core/services"
	"github.com/hendrawijaya/pembukuan_app/internal/dto"
	"github.com/hendrawijaya/pembukuan_app/internal/middleware"
	"github.com/hendrawijaya/pembukuan_app/internal/utils/accounting"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests for the transaction lifecycle.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

// registerTransactionRoutes registers routes related to transactions.
func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade) {
	h := &transactionHandler{transactionService: transactionService}

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.createDraft)
		transactions.POST("/preview", h.previewTransaction)
		transactions.GET("/:id", h.getTransaction)
		transactions.GET("", h.listTransactions)
		transactions.POST("/:id/post", h.postTransaction)
		transactions.POST("/:id/void", h.voidTransaction)
		transactions.DELETE("/:id", h.deleteDraft)
	}
}

// respondLifecycleError maps service errors from posting and voiding to HTTP
// responses. Line-level problems are reported in full so the caller can fix
// everything in one round trip.
func respondLifecycleError(c *gin.Context, logger *slog.Logger, action string, err error) {
	var postingErr *services.PostingError
	var unbalancedErr *accounting.UnbalancedError
	var transitionErr *services.IllegalStateTransitionError

	switch {
	case errors.As(err, &postingErr):
		logger.Warn("Line errors during "+action, slog.Int("error_count", len(postingErr.LineErrors)))
		c.JSON(http.StatusBadRequest, gin.H{"error": "transaction lines failed validation", "details": postingErr.Messages()})
	case errors.As(err, &unbalancedErr):
		logger.Warn("Unbalanced transaction during "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error":       unbalancedErr.Error(),
			"totalDebit":  unbalancedErr.TotalDebit,
			"totalCredit": unbalancedErr.TotalCredit,
		})
	case errors.As(err, &transitionErr):
		c.JSON(http.StatusConflict, gin.H{"error": transitionErr.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "transaction was modified concurrently, reload and retry"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("Failed to "+action+" transaction", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action + " transaction"})
	}
}

func (h *transactionHandler) createDraft(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateDraft", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor := middleware.GetActorFromContext(c)
	txn, err := h.transactionService.CreateDraft(c.Request.Context(), req, actor)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error creating draft", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Dependency not found creating draft", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create draft", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create draft"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

func (h *transactionHandler) previewTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PreviewTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Preview", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	preview, err := h.transactionService.Preview(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
		} else {
			logger.Error("Failed to preview transaction", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to preview transaction"})
		}
		return
	}

	c.JSON(http.StatusOK, preview)
}

func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	txn, err := h.transactionService.GetTransactionByID(c.Request.Context(), transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		} else {
			logger.Error("Failed to get transaction", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve transaction"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	var status *domain.TransactionStatus
	if raw := c.Query("status"); raw != "" {
		s := domain.TransactionStatus(raw)
		if s != domain.StatusDraft && s != domain.StatusPosted && s != domain.StatusVoid {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status filter: " + raw})
			return
		}
		status = &s
	}

	transactions, err := h.transactionService.ListTransactions(c.Request.Context(), status, limit, offset)
	if err != nil {
		logger.Error("Failed to list transactions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": dto.ToTransactionResponses(transactions)})
}

func (h *transactionHandler) postTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")
	actor := middleware.GetActorFromContext(c)

	txn, err := h.transactionService.Post(c.Request.Context(), transactionID, actor)
	if err != nil {
		respondLifecycleError(c, logger, "post", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

func (h *transactionHandler) voidTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	var req dto.VoidTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Void", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor := middleware.GetActorFromContext(c)
	txn, err := h.transactionService.Void(c.Request.Context(), transactionID, req.Reason, req.Notes, actor)
	if err != nil {
		respondLifecycleError(c, logger, "void", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

func (h *transactionHandler) deleteDraft(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	if err := h.transactionService.DeleteDraft(c.Request.Context(), transactionID); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to delete draft", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete draft"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
