package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/zhiyar-dev/finman_backend/internal/core/ports/services"
	"github.com/zhiyar-dev/finman_backend/internal/dto"
	"github.com/zhiyar-dev/finman_backend/internal/middleware"
)

// auditHandler exposes the audit trail read endpoint.
type auditHandler struct {
	auditService portssvc.AuditSvc
}

// newAuditHandler creates a new auditHandler.
func newAuditHandler(s portssvc.AuditSvc) *auditHandler {
	return &auditHandler{auditService: s}
}

// registerAuditRoutes registers routes related to the audit log.
func registerAuditRoutes(rg *gin.RouterGroup, auditService portssvc.AuditSvc) {
	h := newAuditHandler(auditService)

	audit := rg.Group("/audit-log")
	{
		audit.GET("", h.listAuditEntries)
	}
}

func (h *auditHandler) listAuditEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = parsed
	}

	entries, err := h.auditService.ListRecent(c.Request.Context(), limit)
	if err != nil {
		logger.Error("Failed to list audit entries", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list audit entries"})
		return
	}

	responses := make([]dto.AuditEntryResponse, len(entries))
	for i := range entries {
		responses[i] = dto.ToAuditEntryResponse(&entries[i])
	}
	c.JSON(http.StatusOK, gin.H{"entries": responses})
}
