package service

import (
	"caseFilesCPT/internal/config"
	"caseFilesCPT/internal/payment"
	"caseFilesCPT/internal/repository"
	"caseFilesCPT/internal/storage"
)

type Service struct {
	Catalog  CatalogService
	Access   AccessService
	Media    MediaService
	Purchase PurchaseService
	Checkout CheckoutService
	Auth     AuthService
	User     UserService
	Tables   TablesService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage, provider payment.Provider, verifier Verifier) *Service {
	catalog := NewCatalogService(rep.Case, NewCatalogCache())
	purchase := NewPurchaseService(rep.Purchase)

	if verifier == nil {
		verifier = &LocalVerifier{Purchases: purchase}
	}

	return &Service{
		Catalog:  catalog,
		Access:   NewAccessService(rep.Purchase),
		Media:    NewMediaService(rep.Media, storage, cfg.MinIO.URLExpiry),
		Purchase: purchase,
		Checkout: NewCheckoutService(catalog, provider, verifier, rep.Purchase, cfg),
		Auth:     NewAuthService(rep.User, cfg),
		User:     NewUserService(rep.User, rep.Preferences),
		Tables:   NewTablesService(rep.Tables),
	}
}
