package auth

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupAuthRouter(t *testing.T) (*gin.Engine, *memOTPStore, *MockUserRepository) {
	gin.SetMode(gin.TestMode)
	mockRepo := new(MockUserRepository)
	store := newMemOTPStore()
	service := NewService(mockRepo, store, testAuthConfig(), zap.NewNop())
	handler := NewHandler(service, zap.NewNop())

	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api, testAuthConfig().JWTSecret)
	return router, store, mockRepo
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequestOTPEndpointRejectsAdminRole(t *testing.T) {
	router, store, _ := setupAuthRouter(t)

	w := postJSON(router, "/api/v1/auth/request-otp", `{"phone":"9876543210","role":"ADMIN"}`)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, store.codes)
}

func TestVerifyOTPEndpointRejectsAdminRole(t *testing.T) {
	// A valid seeker code must not be redeemable for an admin account.
	router, store, mockRepo := setupAuthRouter(t)

	w := postJSON(router, "/api/v1/auth/request-otp", `{"phone":"9876543210","role":"SEEKER"}`)
	require.Equal(t, http.StatusOK, w.Code)
	code := store.codes["9876543210"]
	require.NotEmpty(t, code)

	w = postJSON(router, "/api/v1/auth/verify-otp",
		fmt.Sprintf(`{"phone":"9876543210","code":%q,"role":"ADMIN"}`, code))

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
