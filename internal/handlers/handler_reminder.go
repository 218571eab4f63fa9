package handlers

import (
	"net/http"
	"time"

	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/gin-gonic/gin"
)

// reminderHandler handles HTTP requests for bill reminders.
type reminderHandler struct {
	reminderService portssvc.ReminderSvcFacade
	now             func() time.Time
}

func registerReminderRoutes(rg *gin.RouterGroup, reminderService portssvc.ReminderSvcFacade, now func() time.Time) {
	h := &reminderHandler{reminderService: reminderService, now: now}

	reminders := rg.Group("/reminders")
	{
		reminders.POST("", h.createReminder)
		reminders.GET("", h.listReminders)
		reminders.GET("/due", h.dueReminders)
		reminders.GET("/:id", h.getReminder)
		reminders.PUT("/:id", h.updateReminder)
		reminders.DELETE("/:id", h.deleteReminder)
	}
}

// createReminder godoc
// @Summary Create a bill reminder
// @Tags reminders
// @Accept json
// @Produce json
// @Param reminder body dto.CreateReminderRequest true "Reminder details"
// @Success 201 {object} domain.Reminder
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /reminders [post]
func (h *reminderHandler) createReminder(c *gin.Context) {
	username, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.CreateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	reminder, err := h.reminderService.AddReminder(c.Request.Context(), username, req)
	if err != nil {
		respondError(c, err, "Failed to create reminder")
		return
	}
	c.JSON(http.StatusCreated, reminder)
}

// listReminders godoc
// @Summary List bill reminders
// @Tags reminders
// @Produce json
// @Success 200 {array} domain.Reminder
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /reminders [get]
func (h *reminderHandler) listReminders(c *gin.Context) {
	username, ok := currentUser(c)
	if !ok {
		return
	}
	reminders, err := h.reminderService.ListReminders(c.Request.Context(), username)
	if err != nil {
		respondError(c, err, "Failed to list reminders")
		return
	}
	c.JSON(http.StatusOK, reminders)
}

// dueReminders godoc
// @Summary List reminders with a due notice
// @Description Overdue, due today, or due in two to five days, nearest deadline first
// @Tags reminders
// @Produce json
// @Success 200 {array} domain.ReminderDue
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /reminders/due [get]
func (h *reminderHandler) dueReminders(c *gin.Context) {
	username, ok := currentUser(c)
	if !ok {
		return
	}
	due, err := h.reminderService.DueReminders(c.Request.Context(), username, h.now())
	if err != nil {
		respondError(c, err, "Failed to list due reminders")
		return
	}
	c.JSON(http.StatusOK, due)
}

// getReminder godoc
// @Summary Get a bill reminder
// @Tags reminders
// @Produce json
// @Param id path string true "Reminder ID or prefix"
// @Success 200 {object} domain.Reminder
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /reminders/{id} [get]
func (h *reminderHandler) getReminder(c *gin.Context) {
	username, ok := currentUser(c)
	if !ok {
		return
	}
	reminder, err := h.reminderService.GetReminder(c.Request.Context(), username, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve reminder")
		return
	}
	c.JSON(http.StatusOK, reminder)
}

// updateReminder godoc
// @Summary Edit a bill reminder
// @Tags reminders
// @Accept json
// @Produce json
// @Param id path string true "Reminder ID or prefix"
// @Param reminder body dto.UpdateReminderRequest true "Fields to change"
// @Success 200 {object} dto.ReminderEditResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /reminders/{id} [put]
func (h *reminderHandler) updateReminder(c *gin.Context) {
	username, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.UpdateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	reminder, rejected, err := h.reminderService.UpdateReminder(c.Request.Context(), username, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update reminder")
		return
	}
	c.JSON(http.StatusOK, dto.ReminderEditResponse{Reminder: *reminder, RejectedFields: rejected})
}

// deleteReminder godoc
// @Summary Delete a bill reminder
// @Tags reminders
// @Param id path string true "Reminder ID or prefix"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /reminders/{id} [delete]
func (h *reminderHandler) deleteReminder(c *gin.Context) {
	username, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.reminderService.DeleteReminder(c.Request.Context(), username, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete reminder")
		return
	}
	c.Status(http.StatusNoContent)
}
