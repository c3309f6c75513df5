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

// templateHandler handles HTTP requests related to journal templates.
type templateHandler struct {
	templateService portssvc.TemplateSvcFacade
}

// registerTemplateRoutes registers routes related to journal templates.
func registerTemplateRoutes(rg *gin.RouterGroup, templateService portssvc.TemplateSvcFacade) {
	h := &templateHandler{templateService: templateService}

	templates := rg.Group("/templates")
	{
		templates.POST("", h.createTemplate)
		templates.GET("/:id", h.getTemplate)
		templates.GET("", h.listTemplates)
	}
}

func (h *templateHandler) createTemplate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTemplate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor := middleware.GetActorFromContext(c)
	template, err := h.templateService.CreateTemplate(c.Request.Context(), req, actor)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error creating template", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Line account not found creating template", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create template", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create template"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToTemplateResponse(template))
}

func (h *templateHandler) getTemplate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	templateID := c.Param("id")

	template, err := h.templateService.GetTemplateByID(c.Request.Context(), templateID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
		} else {
			logger.Error("Failed to get template", slog.String("template_id", templateID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve template"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTemplateResponse(template))
}

func (h *templateHandler) listTemplates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	templates, err := h.templateService.ListTemplates(c.Request.Context(), limit, offset)
	if err != nil {
		logger.Error("Failed to list templates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list templates"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"templates": dto.ToTemplateResponses(templates)})
}
