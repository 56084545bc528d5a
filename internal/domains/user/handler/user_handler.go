package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"fishtrade-backend/internal/domains/user"
	"fishtrade-backend/internal/shared/middleware"
	"fishtrade-backend/internal/shared/response"
	"fishtrade-backend/pkg/logger"
)

// Handler exposes authentication and user management over HTTP.
type Handler struct {
	service user.Service
}

func NewHandler(service user.Service) *Handler {
	return &Handler{service: service}
}

// Login - POST /v1/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrInvalidCredentials):
			response.Unauthorized(c, "Invalid username or password")
		case errors.Is(err, user.ErrUserInactive):
			response.Forbidden(c, "Account is deactivated")
		case errors.Is(err, user.ErrTooManyAttempts):
			response.ErrorResponse(c, http.StatusTooManyRequests, "AUTH_004", "Too many login attempts, try again later")
		default:
			serviceError(c, err, "login failed", "Failed to log in")
		}
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// Logout - POST /v1/auth/logout
func (h *Handler) Logout(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if err := h.service.Logout(c.Request.Context(), userID); err != nil {
		response.InternalServerError(c, "Failed to log out")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Logged out"})
}

// Me - GET /v1/auth/me
func (h *Handler) Me(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	dto, err := h.service.GetUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			response.NotFound(c, "User not found")
			return
		}
		response.InternalServerError(c, "Failed to load profile")
		return
	}
	response.Success(c, http.StatusOK, dto)
}

// ListUsers - GET /v1/users
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, "Failed to list users")
		return
	}
	response.Success(c, http.StatusOK, users)
}

// GetUser - GET /v1/users/:id
func (h *Handler) GetUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	dto, err := h.service.GetUser(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			response.NotFound(c, "User not found")
			return
		}
		response.InternalServerError(c, "Failed to load user")
		return
	}
	response.Success(c, http.StatusOK, dto)
}

// CreateUser - POST /v1/users
func (h *Handler) CreateUser(c *gin.Context) {
	var req user.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	dto, err := h.service.CreateUser(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, user.ErrUsernameAlreadyExists) {
			response.Conflict(c, "Username already exists")
			return
		}
		serviceError(c, err, "failed to create user", "Failed to create user")
		return
	}

	response.Success(c, http.StatusCreated, dto)
}

// UpdateUser - PUT /v1/users/:id
func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req user.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	dto, err := h.service.UpdateUser(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserNotFound):
			response.NotFound(c, "User not found")
		case errors.Is(err, user.ErrUsernameAlreadyExists):
			response.Conflict(c, "Username already exists")
		default:
			serviceError(c, err, "failed to update user", "Failed to update user")
		}
		return
	}

	response.Success(c, http.StatusOK, dto)
}

// ToggleUserStatus - PATCH /v1/users/:id/toggle
func (h *Handler) ToggleUserStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.ToggleUserStatus(c.Request.Context(), id); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			response.NotFound(c, "User not found")
			return
		}
		response.InternalServerError(c, "Failed to toggle user status")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "User status updated"})
}

// DeleteUser - DELETE /v1/users/:id
func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteUser(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, user.ErrUserNotFound):
			response.NotFound(c, "User not found")
		case errors.Is(err, user.ErrCannotDeleteAdmin):
			response.Forbidden(c, "The admin account cannot be deleted")
		default:
			response.InternalServerError(c, "Failed to delete user")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "User deleted"})
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
		response.BadRequest(c, "Invalid user ID")
		return uuid.Nil, false
	}
	return id, true
}
