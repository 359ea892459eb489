package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/staffdesk/employee-manager/internal/api"
	"github.com/staffdesk/employee-manager/internal/config"
	"github.com/staffdesk/employee-manager/internal/database/models"
	"github.com/staffdesk/employee-manager/internal/database/repository"
	"github.com/staffdesk/employee-manager/internal/database/service"
	"github.com/staffdesk/employee-manager/internal/handler"
	"github.com/staffdesk/employee-manager/internal/middleware"
)

// envelope mirrors the response shape with Data left as raw JSON so each
// test can decode it into whatever it expects.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

func setupTestAPI(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Employee{}))

	cfg := &config.Config{
		JWTSecret:       "test-secret",
		TokenExpiration: 604800,
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	userRepo := repository.NewUserRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)

	authService := service.NewAuthService(userRepo, cfg, log)
	employeeService := service.NewEmployeeService(employeeRepo, log)

	limiter := middleware.NewNoOpLoginLimiter(log)
	authHandler := handler.NewAuthHandler(authService, limiter, log)
	employeeHandler := handler.NewEmployeeHandler(employeeService, log)
	authMiddleware := middleware.NewAuthMiddleware(authService, log)

	return api.SetupRouter(authHandler, employeeHandler, authMiddleware)
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}
