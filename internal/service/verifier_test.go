package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPVerifier(t *testing.T) {
	req := VerifyRequest{
		OrderID: "order-1",
		UserID:  "user-1",
		CaseID:  "case-1",
		Amount:  decimal.NewFromFloat(9.99),
	}

	t.Run("Успешный ответ сервера", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"success": true, "data": {"id": "p-1"}}`))
		}))
		defer srv.Close()

		v := NewHTTPVerifier(srv.URL)
		err := v.VerifyPurchase(context.Background(), req)

		assert.NoError(t, err)
	})

	t.Run("Отказ сервера не считается недоступностью", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error": "Database error: connection lost"}`))
		}))
		defer srv.Close()

		v := NewHTTPVerifier(srv.URL)
		err := v.VerifyPurchase(context.Background(), req)

		require.Error(t, err)
		assert.False(t, errors.Is(err, ErrVerifyUnreachable))
		assert.Contains(t, err.Error(), "Database error")
	})

	t.Run("Сетевая ошибка оборачивается в ErrVerifyUnreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // сервер уже остановлен, соединение не установится

		v := NewHTTPVerifier(srv.URL)
		err := v.VerifyPurchase(context.Background(), req)

		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrVerifyUnreachable))
	})
}
