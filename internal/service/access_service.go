package service

import (
	"context"

	"caseFilesCPT/internal/repository"
)

type AccessService interface {
	HasAccess(ctx context.Context, caseID, userID string) (bool, error)
}

type accessService struct {
	purchaseRepo repository.PurchaseRepository
}

func NewAccessService(purchaseRepo repository.PurchaseRepository) AccessService {
	return &accessService{purchaseRepo: purchaseRepo}
}

// HasAccess - при любой ошибке запроса доступ не выдается: (false, err),
// ошибка возвращается вызывающему только для показа
func (s *accessService) HasAccess(ctx context.Context, caseID, userID string) (bool, error) {
	purchase, err := s.purchaseRepo.GetByUserAndCase(ctx, userID, caseID)
	if err != nil {
		return false, err
	}

	return purchase != nil, nil
}
