package service

import (
	"context"

	"caseFilesCPT/internal/models"
	"caseFilesCPT/internal/repository"

	"github.com/shopspring/decimal"
)

type VerifyRequest struct {
	OrderID string          `json:"orderId"`
	UserID  string          `json:"userId"`
	CaseID  string          `json:"caseId"`
	Amount  decimal.Decimal `json:"amount"`
	Note    string          `json:"note"`
}

type PurchaseService interface {
	VerifyPurchase(ctx context.Context, req VerifyRequest) (*models.Purchase, error)
	ListByUser(ctx context.Context, userID string) ([]models.Purchase, error)
}

type purchaseService struct {
	purchaseRepo repository.PurchaseRepository
}

func NewPurchaseService(purchaseRepo repository.PurchaseRepository) PurchaseService {
	return &purchaseService{purchaseRepo: purchaseRepo}
}

// VerifyPurchase фиксирует подтвержденную оплату. Уникальный ключ
// (user_id, case_id) делает повторные подтверждения безопасными -
// вторая запись перезаписывает первую, а не дублирует
func (s *purchaseService) VerifyPurchase(ctx context.Context, req VerifyRequest) (*models.Purchase, error) {
	purchase := &models.Purchase{
		UserID:    req.UserID,
		CaseID:    req.CaseID,
		PaymentID: req.OrderID,
		Amount:    req.Amount,
		Note:      req.Note,
	}

	err := s.purchaseRepo.Upsert(ctx, purchase)
	if err != nil {
		return nil, err
	}

	return purchase, nil
}

// ListByUser - история покупок пользователя, в порядке подтверждения
func (s *purchaseService) ListByUser(ctx context.Context, userID string) ([]models.Purchase, error) {
	return s.purchaseRepo.GetByUserID(ctx, userID)
}
