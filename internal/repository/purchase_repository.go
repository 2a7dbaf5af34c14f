package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"caseFilesCPT/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type PurchaseRepositoryImpl struct {
	db *sqlx.DB
}

func NewPurchaseRepository(db *sqlx.DB) *PurchaseRepositoryImpl {
	return &PurchaseRepositoryImpl{db: db}
}

// Upsert - уникальный ключ (user_id, case_id): повторная запись той же пары
// перезаписывает payment_id/amount, а не создает вторую строку
func (r *PurchaseRepositoryImpl) Upsert(ctx context.Context, purchase *models.Purchase) error {
	query := `
        INSERT INTO user_purchases
        (purchase_id, user_id, case_id, payment_id, amount, note, verified_at)
        VALUES
        (:purchase_id, :user_id, :case_id, :payment_id, :amount, :note, :verified_at)
        ON CONFLICT (user_id, case_id) DO UPDATE SET
            payment_id = EXCLUDED.payment_id,
            amount = EXCLUDED.amount,
            note = EXCLUDED.note,
            verified_at = EXCLUDED.verified_at
    `

	if purchase.PurchaseID == "" {
		purchase.PurchaseID = uuid.New().String()
	}

	if purchase.VerifiedAt.IsZero() {
		purchase.VerifiedAt = time.Now()
	}

	_, err := r.db.NamedExecContext(ctx, query, purchase)
	if err != nil {
		return fmt.Errorf("ошибка при сохранении покупки: %w", err)
	}

	return nil
}

func (r *PurchaseRepositoryImpl) GetByUserAndCase(ctx context.Context, userID, caseID string) (*models.Purchase, error) {
	query := `
        SELECT * FROM user_purchases
        WHERE user_id = $1 AND case_id = $2
    `

	var purchase models.Purchase
	err := r.db.GetContext(ctx, &purchase, query, userID, caseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка при получении покупки: %w", err)
	}

	return &purchase, nil
}

func (r *PurchaseRepositoryImpl) GetByUserID(ctx context.Context, userID string) ([]models.Purchase, error) {
	query := `
        SELECT * FROM user_purchases
        WHERE user_id = $1
        ORDER BY verified_at
    `

	var purchases []models.Purchase
	err := r.db.SelectContext(ctx, &purchases, query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении покупок пользователя: %w", err)
	}

	return purchases, nil
}
