package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"caseFilesCPT/internal/service"

	"github.com/shopspring/decimal"
)

type VerifyPaymentRequest struct {
	OrderID string           `json:"orderId"`
	UserID  string           `json:"userId"`
	CaseID  string           `json:"caseId"`
	Amount  *decimal.Decimal `json:"amount"`
}

// VerifyPayment - POST подтверждает и записывает покупку, GET отвечает
// проверкой живости
func (h *Handlers) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		WriteSuccess(w, map[string]string{
			"status":  "ok",
			"message": "Эндпоинт верификации платежей работает",
		}, http.StatusOK)
		return
	}

	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req VerifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteEnvelopeError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	// все четыре поля обязательны, ошибка называет конкретное поле
	if req.OrderID == "" {
		WriteEnvelopeError(w, "Missing required parameter: orderId", http.StatusBadRequest)
		return
	}
	if req.UserID == "" {
		WriteEnvelopeError(w, "Missing required parameter: userId", http.StatusBadRequest)
		return
	}
	if req.CaseID == "" {
		WriteEnvelopeError(w, "Missing required parameter: caseId", http.StatusBadRequest)
		return
	}
	if req.Amount == nil {
		WriteEnvelopeError(w, "Missing required parameter: amount", http.StatusBadRequest)
		return
	}

	purchase, err := h.PurchaseService.VerifyPurchase(r.Context(), service.VerifyRequest{
		OrderID: req.OrderID,
		UserID:  req.UserID,
		CaseID:  req.CaseID,
		Amount:  *req.Amount,
	})
	if err != nil {
		WriteEnvelopeError(w, "Database error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, Envelope{
		Success: true,
		Data:    purchase,
		Message: "Покупка подтверждена",
	}, http.StatusOK)
}

type CreateOrderRequest struct {
	CaseID string `json:"caseId" validate:"required"`
}

// CreateOrder отдает параметры заказа для платежного виджета
func (h *Handlers) CreateOrder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Отсутствует caseId", http.StatusBadRequest)
		return
	}

	params, err := h.CheckoutService.CreateOrder(r.Context(), req.CaseID)
	if err != nil {
		if strings.Contains(err.Error(), "не найдено") {
			WriteError(w, err.Error(), http.StatusNotFound)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	WriteSuccess(w, params, http.StatusOK)
}

type CaptureRequest struct {
	OrderID string `json:"orderId" validate:"required"`
	CaseID  string `json:"caseId" validate:"required"`
}

// Capture запускает списание средств и запись покупки после одобрения
// покупателем; итоговое состояние попытки возвращается клиенту
func (h *Handlers) Capture(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	var req CaptureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Отсутствует orderId или caseId", http.StatusBadRequest)
		return
	}

	status := h.CheckoutService.CompletePurchase(r.Context(), req.OrderID, userID, req.CaseID)

	code := http.StatusOK
	if status.State == service.StateFailed {
		code = http.StatusBadGateway
	}

	WriteSuccess(w, status, code)
}
