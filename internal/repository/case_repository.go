package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"caseFilesCPT/internal/models"

	"github.com/jmoiron/sqlx"
)

type CaseRepositoryImpl struct {
	db *sqlx.DB
}

func NewCaseRepository(db *sqlx.DB) *CaseRepositoryImpl {
	return &CaseRepositoryImpl{db: db}
}

func (r *CaseRepositoryImpl) ListCases(ctx context.Context) ([]models.Case, error) {
	query := `
        SELECT * FROM detective_cases
        WHERE published = TRUE
        ORDER BY created_at
    `

	var cases []models.Case
	err := r.db.SelectContext(ctx, &cases, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении каталога дел: %w", err)
	}

	return cases, nil
}

// GetCaseByID: отсутствие дела - не ошибка, возвращается (nil, nil)
func (r *CaseRepositoryImpl) GetCaseByID(ctx context.Context, caseID string) (*models.Case, error) {
	query := `SELECT * FROM detective_cases WHERE case_id = $1`

	var c models.Case
	err := r.db.GetContext(ctx, &c, query, caseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка при получении дела: %w", err)
	}

	return &c, nil
}
