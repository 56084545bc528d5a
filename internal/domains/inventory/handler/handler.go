package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"fishtrade-backend/internal/domains/inventory/model"
	"fishtrade-backend/internal/domains/inventory/service"
	"fishtrade-backend/internal/shared/middleware"
	"fishtrade-backend/internal/shared/response"
	"fishtrade-backend/pkg/logger"
)

// Handler exposes the inventory ledger over HTTP.
type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// ListItems - GET /v1/inventory
func (h *Handler) ListItems(c *gin.Context) {
	items, err := h.service.ListItems(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, "Failed to list inventory")
		return
	}
	response.Success(c, http.StatusOK, items)
}

// GetItem - GET /v1/inventory/:id
func (h *Handler) GetItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	item, err := h.service.GetItem(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrItemNotFound) {
			response.NotFound(c, "Inventory item not found")
			return
		}
		response.InternalServerError(c, "Failed to load inventory item")
		return
	}
	response.Success(c, http.StatusOK, item)
}

// CreateItem - POST /v1/inventory
func (h *Handler) CreateItem(c *gin.Context) {
	var req model.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.service.CreateItem(c.Request.Context(), req, actorID(c))
	if err != nil {
		if errors.Is(err, model.ErrDuplicateItemName) {
			response.Conflict(c, "An item with this name already exists")
			return
		}
		serviceError(c, err, "failed to create inventory item", "Failed to create inventory item")
		return
	}

	response.Success(c, http.StatusCreated, item)
}

// UpdateItem - PUT /v1/inventory/:id
func (h *Handler) UpdateItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.service.UpdateItem(c.Request.Context(), id, req, actorID(c))
	if err != nil {
		switch {
		case errors.Is(err, model.ErrItemNotFound):
			response.NotFound(c, "Inventory item not found")
		case errors.Is(err, model.ErrDuplicateItemName):
			response.Conflict(c, "An item with this name already exists")
		default:
			serviceError(c, err, "failed to update inventory item", "Failed to update inventory item")
		}
		return
	}

	response.Success(c, http.StatusOK, item)
}

// AdjustStock - POST /v1/inventory/:id/stock
func (h *Handler) AdjustStock(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.service.AdjustStock(c.Request.Context(), id, req, actorID(c))
	if err != nil {
		switch {
		case errors.Is(err, model.ErrItemNotFound):
			response.NotFound(c, "Inventory item not found")
		case errors.Is(err, model.ErrNegativeStock):
			response.UnprocessableEntity(c, "Stock cannot go below zero")
		default:
			serviceError(c, err, "failed to adjust stock", "Failed to adjust stock")
		}
		return
	}

	response.Success(c, http.StatusOK, item)
}

// DeleteItem - DELETE /v1/inventory/:id
func (h *Handler) DeleteItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteItem(c.Request.Context(), id); err != nil {
		if errors.Is(err, model.ErrItemNotFound) {
			response.NotFound(c, "Inventory item not found")
			return
		}
		response.InternalServerError(c, "Failed to delete inventory item")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Inventory item deleted"})
}

// ListAlerts - GET /v1/inventory/alerts
func (h *Handler) ListAlerts(c *gin.Context) {
	items, err := h.service.ListAlerts(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, "Failed to list stock alerts")
		return
	}
	response.Success(c, http.StatusOK, items)
}

// ListTransactions - GET /v1/inventory/transactions
// Query params: inventory_id, type, limit
func (h *Handler) ListTransactions(c *gin.Context) {
	var inventoryID *uuid.UUID
	if raw := c.Query("inventory_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "Invalid inventory_id")
			return
		}
		inventoryID = &id
	}

	var txType *model.TransactionType
	if raw := c.Query("type"); raw != "" {
		t := model.TransactionType(raw)
		txType = &t
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		l, err := strconv.Atoi(raw)
		if err != nil || l < 0 {
			response.BadRequest(c, "Invalid limit")
			return
		}
		limit = l
	}

	entries, err := h.service.ListTransactions(c.Request.Context(), inventoryID, txType, limit)
	if err != nil {
		if errors.Is(err, model.ErrInvalidTxType) {
			response.BadRequest(c, "Invalid transaction type, expected add, remove or update")
			return
		}
		response.InternalServerError(c, "Failed to list inventory transactions")
		return
	}
	response.Success(c, http.StatusOK, entries)
}

// serviceError separates validation failures (422 with details) from
// internal errors, which are logged and answered with a generic 500.
func serviceError(c *gin.Context, err error, logMsg, clientMsg string) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity,
			"VALIDATION_ERROR", "Validation failed", verrs)
		return
	}
	logger.Error(logMsg, err)
	response.InternalServerError(c, clientMsg)
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid inventory item ID")
		return uuid.Nil, false
	}
	return id, true
}

func actorID(c *gin.Context) *uuid.UUID {
	id := middleware.UserIDFromContext(c)
	if id == uuid.Nil {
		return nil
	}
	return &id
}
