package handlers

import (
	"caseFilesCPT/internal/config"
	"caseFilesCPT/internal/repository"
	"caseFilesCPT/internal/service"

	"github.com/go-playground/validator/v10"
)

type Handlers struct {
	CatalogService  service.CatalogService
	AccessService   service.AccessService
	MediaService    service.MediaService
	PurchaseService service.PurchaseService
	CheckoutService service.CheckoutService
	AuthService     service.AuthService
	UserService     service.UserService
	UserRepo        repository.UserRepository
	TablesRepo      repository.TablesRepository
	TablesService   service.TablesService
	Cfg             *config.Config
	Validate        *validator.Validate
}

func NewHandlers(repo *repository.Repository, service *service.Service, config *config.Config) *Handlers {
	return &Handlers{
		CatalogService:  service.Catalog,
		AccessService:   service.Access,
		MediaService:    service.Media,
		PurchaseService: service.Purchase,
		CheckoutService: service.Checkout,
		AuthService:     service.Auth,
		UserService:     service.User,
		UserRepo:        repo.User,
		TablesRepo:      repo.Tables,
		TablesService:   service.Tables,
		Cfg:             config,
		Validate:        validator.New(),
	}
}
