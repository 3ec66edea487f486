package handler

import (
	"net/http"
	"strconv"

	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/remittance-backoffice/internal/domain/port/core"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactions usecase.TransactionUseCase
	logger       coreport.Logger
}

// NewTransactionHandler creates a new transaction handler instance
func NewTransactionHandler(transactions usecase.TransactionUseCase, logger coreport.Logger) *TransactionHandler {
	return &TransactionHandler{
		transactions: transactions,
		logger:       logger,
	}
}

// Create handles POST /api/transactions
func (h *TransactionHandler) Create(c *gin.Context) {
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, "create", invalidRequest(err))
		return
	}

	txn, err := h.transactions.Create(c.Request.Context(), middleware.Actor(c), usecase.CreateTransactionRequest{
		Type:        req.Type,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Description: req.Description,
		Agency:      req.Agency,
		Details:     req.Details,
	})
	if err != nil {
		respondError(c, h.logger, "create", err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromTransaction(txn))
}

// List handles GET /api/transactions
func (h *TransactionHandler) List(c *gin.Context) {
	filter := persistence.TransactionFilter{
		Status:     entity.TransactionStatus(c.Query("status")),
		Type:       entity.TransactionType(c.Query("type")),
		Agency:     c.Query("agency"),
		ExecutorID: c.Query("executorId"),
	}

	var err error
	if filter.Limit, err = queryInt(c, "limit"); err != nil {
		respondError(c, h.logger, "list", invalidRequest(err))
		return
	}
	if filter.Offset, err = queryInt(c, "offset"); err != nil {
		respondError(c, h.logger, "list", invalidRequest(err))
		return
	}

	txns, err := h.transactions.List(c.Request.Context(), middleware.Actor(c), filter)
	if err != nil {
		respondError(c, h.logger, "list", err)
		return
	}

	c.JSON(http.StatusOK, dto.TransactionListResponse{
		Items: dto.FromTransactions(txns),
		Count: len(txns),
	})
}

// Get handles GET /api/transactions/:id
func (h *TransactionHandler) Get(c *gin.Context) {
	txn, err := h.transactions.Get(c.Request.Context(), middleware.Actor(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, "get", err)
		return
	}
	c.JSON(http.StatusOK, dto.FromTransaction(txn))
}

// Events handles GET /api/transactions/:id/events
func (h *TransactionHandler) Events(c *gin.Context) {
	events, err := h.transactions.History(c.Request.Context(), middleware.Actor(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, "history", err)
		return
	}
	c.JSON(http.StatusOK, dto.FromEvents(events))
}

// SubmitRealAmount handles POST /api/transactions/:id/real-amount
func (h *TransactionHandler) SubmitRealAmount(c *gin.Context) {
	var req dto.RealAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, "submit real amount", invalidRequest(err))
		return
	}

	txn, err := h.transactions.SubmitRealAmount(c.Request.Context(), middleware.Actor(c), c.Param("id"), req.RealAmountEUR)
	if err != nil {
		respondError(c, h.logger, "submit real amount", err)
		return
	}
	c.JSON(http.StatusOK, dto.FromTransaction(txn))
}

// Execute handles POST /api/transactions/:id/execute
func (h *TransactionHandler) Execute(c *gin.Context) {
	var req dto.ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, "execute", invalidRequest(err))
		return
	}

	txn, err := h.transactions.Execute(c.Request.Context(), middleware.Actor(c), c.Param("id"), usecase.ExecuteRequest{
		ReceiptURL: req.ReceiptURL,
		Comment:    req.Comment,
	})
	if err != nil {
		respondError(c, h.logger, "execute", err)
		return
	}
	c.JSON(http.StatusOK, dto.FromTransaction(txn))
}

// Close handles POST /api/transactions/:id/close
func (h *TransactionHandler) Close(c *gin.Context) {
	txn, err := h.transactions.Close(c.Request.Context(), middleware.Actor(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, "close", err)
		return
	}
	c.JSON(http.StatusOK, dto.FromTransaction(txn))
}

// RequestDelete handles POST /api/transactions/:id/delete-request
func (h *TransactionHandler) RequestDelete(c *gin.Context) {
	txn, err := h.transactions.RequestDelete(c.Request.Context(), middleware.Actor(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, "request delete", err)
		return
	}
	c.JSON(http.StatusOK, dto.FromTransaction(txn))
}

// ApproveDelete handles POST /api/transactions/:id/delete-approval
func (h *TransactionHandler) ApproveDelete(c *gin.Context) {
	result, err := h.transactions.ApproveDelete(c.Request.Context(), middleware.Actor(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, "approve delete", err)
		return
	}
	c.JSON(http.StatusOK, dto.DeleteResponse{
		TransactionID: result.TransactionID,
		Deleted:       true,
		ApprovedBy:    result.ApprovedBy,
		ApprovedAt:    result.ApprovedAt,
	})
}

// queryInt reads an optional integer query parameter, 0 when absent
func queryInt(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
