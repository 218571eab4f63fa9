package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/gin-gonic/gin"
)

// goalHandler handles HTTP requests for savings goals.
type goalHandler struct {
	goalService portssvc.GoalSvcFacade
}

func registerGoalRoutes(rg *gin.RouterGroup, goalService portssvc.GoalSvcFacade) {
	h := &goalHandler{goalService: goalService}

	goals := rg.Group("/goals")
	{
		goals.POST("", h.createGoal)
		goals.GET("", h.listGoals)
		goals.GET("/:id", h.getGoal)
		goals.PUT("/:id", h.updateGoal)
		goals.DELETE("/:id", h.deleteGoal)
	}
}

// createGoal godoc
// @Summary Create a savings goal
// @Tags goals
// @Accept json
// @Produce json
// @Param goal body dto.CreateGoalRequest true "Goal details"
// @Success 201 {object} dto.GoalResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /goals [post]
func (h *goalHandler) createGoal(c *gin.Context) {
	username, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	goal, err := h.goalService.AddGoal(c.Request.Context(), username, req)
	if err != nil {
		respondError(c, err, "Failed to create goal")
		return
	}
	c.JSON(http.StatusCreated, dto.ToGoalResponse(*goal))
}

// listGoals godoc
// @Summary List savings goals
// @Tags goals
// @Produce json
// @Success 200 {array} dto.GoalResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /goals [get]
func (h *goalHandler) listGoals(c *gin.Context) {
	username, ok := currentUser(c)
	if !ok {
		return
	}
	goals, err := h.goalService.ListGoals(c.Request.Context(), username)
	if err != nil {
		respondError(c, err, "Failed to list goals")
		return
	}
	c.JSON(http.StatusOK, dto.ToGoalResponses(goals))
}

// getGoal godoc
// @Summary Get a savings goal
// @Tags goals
// @Produce json
// @Param id path string true "Goal ID or prefix"
// @Success 200 {object} dto.GoalResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /goals/{id} [get]
func (h *goalHandler) getGoal(c *gin.Context) {
	username, ok := currentUser(c)
	if !ok {
		return
	}
	goal, err := h.goalService.GetGoal(c.Request.Context(), username, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve goal")
		return
	}
	c.JSON(http.StatusOK, dto.ToGoalResponse(*goal))
}

// updateGoal godoc
// @Summary Edit a savings goal
// @Description Applies each valid provided field. Status is derived from the amounts and may only restate it.
// @Tags goals
// @Accept json
// @Produce json
// @Param id path string true "Goal ID or prefix"
// @Param goal body dto.UpdateGoalRequest true "Fields to change"
// @Success 200 {object} dto.GoalEditResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /goals/{id} [put]
func (h *goalHandler) updateGoal(c *gin.Context) {
	username, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	goal, rejected, err := h.goalService.UpdateGoal(c.Request.Context(), username, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update goal")
		return
	}
	c.JSON(http.StatusOK, dto.GoalEditResponse{Goal: dto.ToGoalResponse(*goal), RejectedFields: rejected})
}

// deleteGoal godoc
// @Summary Delete a savings goal
// @Tags goals
// @Param id path string true "Goal ID or prefix"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /goals/{id} [delete]
func (h *goalHandler) deleteGoal(c *gin.Context) {
	username, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.goalService.DeleteGoal(c.Request.Context(), username, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete goal")
		return
	}
	c.Status(http.StatusNoContent)
}
