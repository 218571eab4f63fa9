package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// adminHandler exposes maintenance operations to configured administrators.
type adminHandler struct {
	backupService portssvc.BackupService
	isAdmin       func(username string) bool
}

func registerAdminRoutes(rg *gin.RouterGroup, backupService portssvc.BackupService, isAdmin func(string) bool) {
	h := &adminHandler{backupService: backupService, isAdmin: isAdmin}

	admin := rg.Group("/admin")
	{
		admin.POST("/backup", h.backup)
	}
}

// backup godoc
// @Summary Back up all collections
// @Description Copies every collection to a timestamped backup. Only usernames listed in ADMIN_USERNAMES may call it.
// @Tags admin
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/backup [post]
func (h *adminHandler) backup(c *gin.Context) {
	username, ok := currentUser(c)
	if !ok {
		return
	}
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if !h.isAdmin(username) {
		logger.Warn("Backup refused for non-admin user")
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
		return
	}
	if err := h.backupService.Backup(c.Request.Context()); err != nil {
		respondError(c, err, "Backup failed")
		return
	}
	logger.Info("Backup requested", slog.String("admin", username))
	c.Status(http.StatusNoContent)
}
