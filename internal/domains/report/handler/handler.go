package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	inventorymodel "fishtrade-backend/internal/domains/inventory/model"
	"fishtrade-backend/internal/domains/report/model"
	"fishtrade-backend/internal/domains/report/service"
	"fishtrade-backend/internal/shared/middleware"
	"fishtrade-backend/internal/shared/response"
	"fishtrade-backend/pkg/logger"
)

// Handler exposes daily reports over HTTP.
type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// CreateReport - POST /v1/reports
func (h *Handler) CreateReport(c *gin.Context) {
	var payload model.ReportPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	userID := middleware.UserIDFromContext(c)
	report, err := h.service.Create(c.Request.Context(), userID, payload)
	if err != nil {
		var insufficient *inventorymodel.InsufficientStockError
		if errors.As(err, &insufficient) {
			response.ErrorWithDetails(c, http.StatusConflict, "INV_001",
				"Insufficient stock for this report", insufficient.Shortfalls)
			return
		}
		serviceError(c, err, "failed to create report", "Failed to create report")
		return
	}

	response.Success(c, http.StatusCreated, report)
}

// GetReport - GET /v1/reports/:id
func (h *Handler) GetReport(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	report, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrReportNotFound) {
			response.NotFound(c, "Report not found")
			return
		}
		response.InternalServerError(c, "Failed to load report")
		return
	}
	response.Success(c, http.StatusOK, report)
}

// UpdateReport - PUT /v1/reports/:id
func (h *Handler) UpdateReport(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var payload model.ReportPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	report, err := h.service.Update(c.Request.Context(), id, payload)
	if err != nil {
		if errors.Is(err, model.ErrReportNotFound) {
			response.NotFound(c, "Report not found")
			return
		}
		serviceError(c, err, "failed to update report", "Failed to update report")
		return
	}

	response.Success(c, http.StatusOK, report)
}

// DeleteReport - DELETE /v1/reports/:id
func (h *Handler) DeleteReport(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, model.ErrReportNotFound) {
			response.NotFound(c, "Report not found")
			return
		}
		response.InternalServerError(c, "Failed to delete report")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Report deleted"})
}

// ListReports - GET /v1/reports
// Query params: date_from, date_to, user_id
func (h *Handler) ListReports(c *gin.Context) {
	filter, ok := parseFilter(c)
	if !ok {
		return
	}

	reports, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		if errors.Is(err, model.ErrInvalidDateRange) {
			response.BadRequest(c, "date_from must not be after date_to")
			return
		}
		response.InternalServerError(c, "Failed to list reports")
		return
	}
	response.Success(c, http.StatusOK, reports)
}

// Summary - GET /v1/reports/summary
// Same filters as ListReports.
func (h *Handler) Summary(c *gin.Context) {
	filter, ok := parseFilter(c)
	if !ok {
		return
	}

	summary, err := h.service.Summary(c.Request.Context(), filter)
	if err != nil {
		if errors.Is(err, model.ErrInvalidDateRange) {
			response.BadRequest(c, "date_from must not be after date_to")
			return
		}
		response.InternalServerError(c, "Failed to build summary")
		return
	}
	response.Success(c, http.StatusOK, summary)
}

// serviceError handles whatever the explicit branches above did not:
// validation failures go back as 422 with the per-field details,
// anything else is logged and answered with a generic 500 so storage
// internals never reach the caller.
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
		response.BadRequest(c, "Invalid report ID")
		return uuid.Nil, false
	}
	return id, true
}

func parseFilter(c *gin.Context) (model.Filter, bool) {
	var filter model.Filter

	if raw := c.Query("date_from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.BadRequest(c, "Invalid date_from, expected YYYY-MM-DD")
			return filter, false
		}
		filter.DateFrom = &t
	}
	if raw := c.Query("date_to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.BadRequest(c, "Invalid date_to, expected YYYY-MM-DD")
			return filter, false
		}
		filter.DateTo = &t
	}
	if raw := c.Query("user_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "Invalid user_id")
			return filter, false
		}
		filter.UserID = &id
	}
	return filter, true
}
