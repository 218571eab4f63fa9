package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/SscSPs/finance_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests for income and expense records.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
	searchService      portssvc.SearchService
}

// registerTransactionRoutes registers the transaction routes.
func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade, searchService portssvc.SearchService) {
	h := &transactionHandler{transactionService: transactionService, searchService: searchService}

	txns := rg.Group("/transactions")
	{
		txns.POST("", h.createTransaction)
		txns.GET("", h.listTransactions)
		txns.GET("/search", h.searchTransactions)
		txns.GET("/:id", h.getTransaction)
		txns.PUT("/:id", h.updateTransaction)
		txns.DELETE("/:id", h.deleteTransaction)
	}
}

// createTransaction godoc
// @Summary Record a transaction
// @Description Records an income or expense. A blank category is stored as "Other" and a blank payment as "cash".
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} domain.Transaction
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	username, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	tx, err := h.transactionService.AddTransaction(c.Request.Context(), username, req)
	if err != nil {
		respondError(c, err, "Failed to record transaction")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Transaction recorded", slog.String("transaction_id", tx.ID))
	c.JSON(http.StatusCreated, tx)
}

// listTransactions godoc
// @Summary List transactions
// @Description Lists the caller's transactions in insertion order, one page at a time
// @Tags transactions
// @Produce json
// @Param limit query int false "Page size" default(50)
// @Param nextToken query string false "Token returned by the previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	username, ok := currentUser(c)
	if !ok {
		return
	}
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}
	page, err := h.transactionService.ListTransactionsPage(c.Request.Context(), username, params)
	if err != nil {
		respondError(c, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, page)
}

// searchTransactions godoc
// @Summary Search transactions
// @Description Filters by date range, category and amount bounds, then sorts
// @Tags transactions
// @Produce json
// @Param start_date query string false "Inclusive start date (YYYY-MM-DD)"
// @Param end_date query string false "Inclusive end date (YYYY-MM-DD)"
// @Param category query string false "Category, matched ignoring case and surrounding spaces"
// @Param min_amount query string false "Minimum amount"
// @Param max_amount query string false "Maximum amount"
// @Param sort_by query string false "date, amount or category"
// @Param reverse query bool false "Descending order"
// @Success 200 {array} domain.Transaction
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/search [get]
func (h *transactionHandler) searchTransactions(c *gin.Context) {
	username, ok := currentUser(c)
	if !ok {
		return
	}
	var params dto.SearchTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}
	txns, err := h.searchService.SearchTransactions(c.Request.Context(), username, params)
	if err != nil {
		respondError(c, err, "Failed to search transactions")
		return
	}
	c.JSON(http.StatusOK, txns)
}

// getTransaction godoc
// @Summary Get a transaction
// @Description Retrieves a transaction by id or unique id prefix
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID or prefix"
// @Success 200 {object} domain.Transaction
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Ambiguous prefix"
// @Security BearerAuth
// @Router /transactions/{id} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	username, ok := currentUser(c)
	if !ok {
		return
	}
	tx, err := h.transactionService.GetTransaction(c.Request.Context(), username, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve transaction")
		return
	}
	c.JSON(http.StatusOK, tx)
}

// updateTransaction godoc
// @Summary Edit a transaction
// @Description Applies each valid provided field. Invalid fields keep their old value and are listed in rejectedFields.
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID or prefix"
// @Param transaction body dto.UpdateTransactionRequest true "Fields to change"
// @Success 200 {object} dto.TransactionEditResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{id} [put]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	username, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	tx, rejected, err := h.transactionService.UpdateTransaction(c.Request.Context(), username, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update transaction")
		return
	}
	c.JSON(http.StatusOK, dto.TransactionEditResponse{Transaction: *tx, RejectedFields: rejected})
}

// deleteTransaction godoc
// @Summary Delete a transaction
// @Tags transactions
// @Param id path string true "Transaction ID or prefix"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{id} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	username, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.transactionService.DeleteTransaction(c.Request.Context(), username, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete transaction")
		return
	}
	c.Status(http.StatusNoContent)
}
