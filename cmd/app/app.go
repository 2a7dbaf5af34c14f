package app

import (
	"log"

	"caseFilesCPT/internal/config"
	"caseFilesCPT/internal/database"
	"caseFilesCPT/internal/payment"
	"caseFilesCPT/internal/repository"
	"caseFilesCPT/internal/service"
	"caseFilesCPT/internal/storage"
)

func App(cfg *config.Config) (*database.DB, *repository.Repository, *service.Service) {
	// connection DB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}

	// connection MinIO
	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		log.Fatalf("Не удалось инициализировать MinIO: %v", err)
	}

	// enabling dependencies
	repo := repository.NewRepository(db.DB)

	provider := payment.NewClient(cfg)

	// верификация идет через сам verify-эндпоинт, как у клиента;
	// без настроенного адреса - напрямую в том же процессе
	var verifier service.Verifier
	if cfg.Payment.VerifyURL != "" {
		verifier = service.NewHTTPVerifier(cfg.Payment.VerifyURL)
	}

	services := service.NewService(repo, cfg, minioClient, provider, verifier)

	return db, repo, services
}
