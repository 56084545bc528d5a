package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fishtrade-backend/internal/domains/user"
	"fishtrade-backend/pkg/jwt"
)

func newGatedRouter(t *testing.T, manager *jwt.Manager, gate gin.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthMiddleware(manager), gate, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func doRequest(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	return body.Error.Message
}

func TestAuthMiddleware_UniformDenials(t *testing.T) {
	manager := jwt.NewManager("test-secret", 1)
	router := newGatedRouter(t, manager, RequirePermission(user.PermissionDailyReport))

	tests := []struct {
		name  string
		token string
	}{
		{"missing header", ""},
		{"garbage token", "not-a-jwt"},
		{"wrong secret", mustToken(t, jwt.NewManager("other-secret", 1), "staff", nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, tt.token)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, "Not authenticated", errorMessage(t, w))
		})
	}
}

func TestPermissionGate_StaffWithoutTagDenied(t *testing.T) {
	manager := jwt.NewManager("test-secret", 1)
	router := newGatedRouter(t, manager, RequirePermission(user.PermissionManageUsers))

	token := mustToken(t, manager, "staff", []string{"daily_report"})
	w := doRequest(router, token)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "No access, please contact the developer", errorMessage(t, w))
}

func TestPermissionGate_StaffWithTagPasses(t *testing.T) {
	manager := jwt.NewManager("test-secret", 1)
	router := newGatedRouter(t, manager, RequirePermission(user.PermissionDailyReport))

	token := mustToken(t, manager, "staff", []string{"daily_report"})
	w := doRequest(router, token)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPermissionGate_AdminBypassesTags(t *testing.T) {
	manager := jwt.NewManager("test-secret", 1)
	router := newGatedRouter(t, manager, RequirePermission(user.PermissionManageUsers))

	token := mustToken(t, manager, "admin", nil)
	w := doRequest(router, token)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPermissionGate_AnyOfSeveralTags(t *testing.T) {
	manager := jwt.NewManager("test-secret", 1)
	gate := RequireAnyPermission(user.PermissionDailyReport, user.PermissionS3MSR)
	router := newGatedRouter(t, manager, gate)

	token := mustToken(t, manager, "staff", []string{"s3_msr"})
	w := doRequest(router, token)

	assert.Equal(t, http.StatusOK, w.Code)
}

func mustToken(t *testing.T, manager *jwt.Manager, role string, permissions []string) string {
	t.Helper()
	token, err := manager.GenerateToken("a7f4f53e-6d96-4f3a-9f07-2f2b14f3de20", "tester", role, permissions)
	require.NoError(t, err)
	return token
}
