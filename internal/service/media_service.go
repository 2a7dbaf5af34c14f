package service

import (
	"context"
	"log"
	"time"

	"caseFilesCPT/internal/models"
	"caseFilesCPT/internal/repository"
	"caseFilesCPT/internal/storage"
)

type MediaService interface {
	GetMedia(ctx context.Context, caseID string) ([]models.MediaItem, error)
}

type mediaService struct {
	mediaRepo repository.MediaRepository
	storage   storage.Storage
	urlExpiry time.Duration
}

func NewMediaService(mediaRepo repository.MediaRepository, storage storage.Storage, urlExpiry time.Duration) MediaService {
	return &mediaService{
		mediaRepo: mediaRepo,
		storage:   storage,
		urlExpiry: urlExpiry,
	}
}

// GetMedia отдает улики дела по display_order. Проверка доступа здесь не
// выполняется - за нее отвечает вызывающий.
// video использует external_url без подписи; для остальных типов подписывается
// storage_path. Если подпись не удалась, улика остается в списке без ссылки.
func (s *mediaService) GetMedia(ctx context.Context, caseID string) ([]models.MediaItem, error) {
	media, err := s.mediaRepo.GetByCaseID(ctx, caseID)
	if err != nil {
		return nil, err
	}

	items := make([]models.MediaItem, 0, len(media))

	for _, m := range media {
		item := models.MediaItem{CaseMedia: m}

		if m.MediaType == "video" {
			item.SignedURL = m.ExternalURL
		} else if m.StoragePath != "" {
			signedURL, err := s.storage.SignURL(ctx, m.StoragePath, s.urlExpiry)
			if err != nil {
				log.Printf("Предупреждение: не удалось подписать ссылку для %s: %v", m.StoragePath, err)
			} else {
				item.SignedURL = signedURL
			}
		}

		items = append(items, item)
	}

	return items, nil
}
