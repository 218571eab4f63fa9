package handlers

import (
	"net/http"
	"time"

	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/gin-gonic/gin"
)

// reportingHandler serves the read-only aggregate reports.
type reportingHandler struct {
	reportingService portssvc.ReportingService
	now              func() time.Time
}

// RecentParams bounds the recent transactions report.
type RecentParams struct {
	Limit int `form:"limit,default=5" binding:"min=0"`
}

func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService, now func() time.Time) {
	h := &reportingHandler{reportingService: reportingService, now: now}

	reports := rg.Group("/reports")
	{
		reports.GET("/summary", h.summary)
		reports.GET("/top-categories", h.topCategories)
		reports.GET("/breakdown", h.breakdown)
		reports.GET("/monthly", h.monthly)
		reports.GET("/recent", h.recent)
		reports.GET("/dashboard", h.dashboard)
	}
}

// summary godoc
// @Summary Income and expense summary
// @Description Totals income, expense and net per currency. Currencies are never mixed.
// @Tags reports
// @Produce json
// @Success 200 {object} dto.SummaryResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/summary [get]
func (h *reportingHandler) summary(c *gin.Context) {
	username, ok := currentUser(c)
	if !ok {
		return
	}
	sum, err := h.reportingService.Summary(c.Request.Context(), username)
	if err != nil {
		respondError(c, err, "Failed to build summary")
		return
	}
	c.JSON(http.StatusOK, dto.SummaryResponse{Currencies: sum})
}

// topCategories godoc
// @Summary Top spending categories
// @Tags reports
// @Produce json
// @Param currency query string false "Restrict to one currency"
// @Param n query int false "Number of categories" default(5)
// @Success 200 {array} domain.CategoryShare
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/top-categories [get]
func (h *reportingHandler) topCategories(c *gin.Context) {
	username, ok := currentUser(c)
	if !ok {
		return
	}
	var params dto.TopCategoriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}
	shares, err := h.reportingService.TopCategories(c.Request.Context(), username, params.Currency, params.N)
	if err != nil {
		respondError(c, err, "Failed to build top categories")
		return
	}
	c.JSON(http.StatusOK, shares)
}

// breakdown godoc
// @Summary Expense breakdown by category
// @Tags reports
// @Produce json
// @Param currency query string false "Restrict to one currency"
// @Success 200 {object} dto.BreakdownResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/breakdown [get]
func (h *reportingHandler) breakdown(c *gin.Context) {
	username, ok := currentUser(c)
	if !ok {
		return
	}
	var params dto.BreakdownParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}
	categories, err := h.reportingService.CategoryBreakdown(c.Request.Context(), username, params.Currency)
	if err != nil {
		respondError(c, err, "Failed to build breakdown")
		return
	}
	c.JSON(http.StatusOK, dto.BreakdownResponse{Currency: params.Currency, Categories: categories})
}

// monthly godoc
// @Summary Monthly report
// @Description Totals and category statistics for one calendar month. Omitted year or month default to the current one.
// @Tags reports
// @Produce json
// @Param year query int false "Year"
// @Param month query int false "Month (1-12)"
// @Success 200 {object} domain.MonthlyReport
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/monthly [get]
func (h *reportingHandler) monthly(c *gin.Context) {
	username, ok := currentUser(c)
	if !ok {
		return
	}
	var params dto.MonthlyReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}
	now := h.now()
	if params.Year == 0 {
		params.Year = now.Year()
	}
	if params.Month == 0 {
		params.Month = int(now.Month())
	}
	report, err := h.reportingService.MonthlyReport(c.Request.Context(), username, params.Year, time.Month(params.Month))
	if err != nil {
		respondError(c, err, "Failed to build monthly report")
		return
	}
	c.JSON(http.StatusOK, report)
}

// recent godoc
// @Summary Most recent transactions
// @Tags reports
// @Produce json
// @Param limit query int false "Number of transactions" default(5)
// @Success 200 {array} domain.Transaction
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/recent [get]
func (h *reportingHandler) recent(c *gin.Context) {
	username, ok := currentUser(c)
	if !ok {
		return
	}
	var params RecentParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}
	txns, err := h.reportingService.RecentTransactions(c.Request.Context(), username, params.Limit)
	if err != nil {
		respondError(c, err, "Failed to list recent transactions")
		return
	}
	c.JSON(http.StatusOK, txns)
}

// dashboard godoc
// @Summary Dashboard overview
// @Description Totals in the preferred currency, top categories, recent transactions and due reminders
// @Tags reports
// @Produce json
// @Success 200 {object} domain.Dashboard
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/dashboard [get]
func (h *reportingHandler) dashboard(c *gin.Context) {
	username, ok := currentUser(c)
	if !ok {
		return
	}
	dash, err := h.reportingService.Dashboard(c.Request.Context(), username, h.now())
	if err != nil {
		respondError(c, err, "Failed to build dashboard")
		return
	}
	c.JSON(http.StatusOK, dash)
}
