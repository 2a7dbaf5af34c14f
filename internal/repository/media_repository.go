package repository

import (
	"context"
	"fmt"

	"caseFilesCPT/internal/models"

	"github.com/jmoiron/sqlx"
)

type MediaRepositoryImpl struct {
	db *sqlx.DB
}

func NewMediaRepository(db *sqlx.DB) *MediaRepositoryImpl {
	return &MediaRepositoryImpl{db: db}
}

func (r *MediaRepositoryImpl) GetByCaseID(ctx context.Context, caseID string) ([]models.CaseMedia, error) {
	query := `SELECT * FROM case_media WHERE case_id = $1 ORDER BY display_order`

	var media []models.CaseMedia
	err := r.db.SelectContext(ctx, &media, query, caseID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении улик дела: %w", err)
	}

	return media, nil
}
