package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"caseFilesCPT/internal/config"
	"caseFilesCPT/internal/models"
	"caseFilesCPT/internal/payment"
	"caseFilesCPT/internal/repository"
)

// Состояния одной попытки покупки
const (
	StateIdle          = "idle"
	StateOrderCreated  = "order-created"
	StateCapturing     = "capturing"
	StateVerifying     = "verifying"
	StateVerified      = "verified"
	StateFallbackSaved = "fallback-saved"
	StateFailed        = "failed"
)

// ErrVerifyUnreachable - сам вызов верификации не дошел до сервера.
// Отказ сервера (4xx/5xx с ответом) - это не ErrVerifyUnreachable.
var ErrVerifyUnreachable = errors.New("сервис верификации недоступен")

type Verifier interface {
	VerifyPurchase(ctx context.Context, req VerifyRequest) error
}

type CheckoutStatus struct {
	State   string `json:"state"`
	Message string `json:"message"`
}

type CheckoutService interface {
	CreateOrder(ctx context.Context, caseID string) (*payment.OrderParams, error)
	CompletePurchase(ctx context.Context, orderID, userID, caseID string) *CheckoutStatus
}

type checkoutService struct {
	catalog      CatalogService
	provider     payment.Provider
	verifier     Verifier
	purchaseRepo repository.PurchaseRepository
	cfg          *config.Config
}

func NewCheckoutService(
	catalog CatalogService,
	provider payment.Provider,
	verifier Verifier,
	purchaseRepo repository.PurchaseRepository,
	cfg *config.Config,
) CheckoutService {
	return &checkoutService{
		catalog:      catalog,
		provider:     provider,
		verifier:     verifier,
		purchaseRepo: purchaseRepo,
		cfg:          cfg,
	}
}

// CreateOrder отдает параметры заказа для виджета провайдера: сам заказ
// у провайдера создает виджет, сервис только поставляет параметры
func (s *checkoutService) CreateOrder(ctx context.Context, caseID string) (*payment.OrderParams, error) {
	c, err := s.catalog.GetCase(ctx, caseID)
	if err != nil {
		return nil, err
	}

	if c == nil {
		return nil, fmt.Errorf("дело %s не найдено в каталоге", caseID)
	}

	return &payment.OrderParams{
		CaseID:   c.CaseID,
		Title:    c.Title,
		Amount:   c.Price.StringFixed(2),
		Currency: s.cfg.Payment.Currency,
	}, nil
}

// CompletePurchase: capturing -> verifying -> {verified | fallback-saved | failed}.
// Деньги покупателя списаны уже на шаге capture, поэтому успешная оплата не
// должна остаться незаписанной, пока есть хоть какой-то способ ее записать -
// отсюда резервная прямая запись при недоступной верификации
func (s *checkoutService) CompletePurchase(ctx context.Context, orderID, userID, caseID string) *CheckoutStatus {
	c, err := s.catalog.GetCase(ctx, caseID)
	if err != nil || c == nil {
		return &CheckoutStatus{State: StateFailed, Message: "Дело не найдено в каталоге"}
	}

	// capturing: запрос провайдеру наперегонки с таймаутом
	captureCtx, cancel := context.WithTimeout(ctx, s.cfg.Payment.CaptureTimeout)
	defer cancel()

	capture, err := s.provider.CaptureOrder(captureCtx, orderID)
	if err != nil {
		if errors.Is(captureCtx.Err(), context.DeadlineExceeded) {
			return &CheckoutStatus{State: StateFailed, Message: "Время ожидания оплаты истекло. Попробуйте еще раз"}
		}
		if errors.Is(err, payment.ErrOrderNotApproved) {
			return &CheckoutStatus{State: StateFailed, Message: "Окно оплаты было закрыто"}
		}
		return &CheckoutStatus{State: StateFailed, Message: "Не удалось выполнить оплату. Попробуйте еще раз"}
	}

	// После capture деньги уже списаны: обрыв запроса клиентом не должен
	// прерывать ни верификацию, ни резервную запись
	postCtx := context.WithoutCancel(ctx)

	// verifying
	req := VerifyRequest{
		OrderID: capture.OrderID,
		UserID:  userID,
		CaseID:  caseID,
		Amount:  c.Price,
	}

	err = s.verifier.VerifyPurchase(postCtx, req)
	if err == nil {
		return &CheckoutStatus{State: StateVerified, Message: "Покупка подтверждена"}
	}

	if !errors.Is(err, ErrVerifyUnreachable) {
		// сервер явно отклонил верификацию - резервная запись не выполняется
		return &CheckoutStatus{State: StateFailed, Message: "Не удалось подтвердить покупку. Обратитесь в поддержку"}
	}

	// fallback: верификация не дошла до сервера, а деньги уже списаны -
	// пишем строку покупки напрямую с пометкой о деградации
	purchase := &models.Purchase{
		UserID:    userID,
		CaseID:    caseID,
		PaymentID: capture.OrderID,
		Amount:    c.Price,
		Note:      "degraded: записано без серверной верификации",
	}

	if err := s.purchaseRepo.Upsert(postCtx, purchase); err != nil {
		return &CheckoutStatus{State: StateFailed, Message: "Оплата прошла, но покупку не удалось сохранить. Обратитесь в поддержку"}
	}

	return &CheckoutStatus{State: StateFallbackSaved, Message: "Покупка сохранена без подтверждения сервера"}
}

// HTTPVerifier гоняет верификацию через сам эндпоинт /api/payments/verify,
// как это делает клиент: сетевая ошибка и отказ сервера различаются
type HTTPVerifier struct {
	Endpoint   string
	HTTPClient *http.Client
}

func NewHTTPVerifier(endpoint string) *HTTPVerifier {
	return &HTTPVerifier{
		Endpoint:   endpoint,
		HTTPClient: &http.Client{},
	}
}

func (v *HTTPVerifier) VerifyPurchase(ctx context.Context, req VerifyRequest) error {
	body, err := json.Marshal(map[string]string{
		"orderId": req.OrderID,
		"userId":  req.UserID,
		"caseId":  req.CaseID,
		"amount":  req.Amount.StringFixed(2),
	})
	if err != nil {
		return fmt.Errorf("ошибка формирования запроса верификации: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, v.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("ошибка формирования запроса верификации: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := v.HTTPClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrVerifyUnreachable, err)
	}
	defer resp.Body.Close()

	var envelope struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("ошибка разбора ответа верификации: %w", err)
	}

	if resp.StatusCode != http.StatusOK || envelope.Error != "" {
		return fmt.Errorf("верификация отклонена: %s", envelope.Error)
	}

	return nil
}

// LocalVerifier - верификация в том же процессе, без сетевого перехода
type LocalVerifier struct {
	Purchases PurchaseService
}

func (v *LocalVerifier) VerifyPurchase(ctx context.Context, req VerifyRequest) error {
	_, err := v.Purchases.VerifyPurchase(ctx, req)
	return err
}
