package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"caseFilesCPT/internal/config"
)

func TestCORSMiddleware(t *testing.T) {
	allowed := []string{"http://localhost:3000", "https://casefiles.example"}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	handler := CORSMiddleware(allowed)(next)

	t.Run("Разрешенный origin получает credentials", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/cases", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, "http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"))
		assert.Equal(t, http.StatusTeapot, rr.Code)
	})

	t.Run("Чужой origin не получает credentials", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/cases", nil)
		req.Header.Set("Origin", "https://evil.example")
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, rr.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("OPTIONS закрывается сразу с пустым телом", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/payments/verify", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Empty(t, rr.Body.String())
	})
}

func TestAuthMiddleware_PublicPaths(t *testing.T) {
	cfg := &config.Config{JWTSecretKey: "test-secret-key"}

	reached := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
	})

	handler := AuthMiddleware(cfg)(next)

	t.Run("Публичный путь проходит без токена", func(t *testing.T) {
		reached = false
		req := httptest.NewRequest(http.MethodPost, "/api/payments/verify", nil)
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.True(t, reached)
	})

	t.Run("Карточка дела публичная", func(t *testing.T) {
		reached = false
		req := httptest.NewRequest(http.MethodGet, "/api/cases/case-1", nil)
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.True(t, reached)
	})

	t.Run("Смена пароля без заголовка доходит до обработчика", func(t *testing.T) {
		reached = false
		req := httptest.NewRequest(http.MethodPost, "/api/auth/update-password", nil)
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		// токен сброса из тела проверит сам обработчик
		assert.True(t, reached)
	})

	t.Run("Улики требуют токен", func(t *testing.T) {
		reached = false
		req := httptest.NewRequest(http.MethodGet, "/api/cases/case-1/media", nil)
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.False(t, reached)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
