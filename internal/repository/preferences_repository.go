package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"caseFilesCPT/internal/models"

	"github.com/jmoiron/sqlx"
)

type PreferencesRepositoryImpl struct {
	db *sqlx.DB
}

func NewPreferencesRepository(db *sqlx.DB) *PreferencesRepositoryImpl {
	return &PreferencesRepositoryImpl{db: db}
}

// GetByUserID - отсутствие строки означает настройки по умолчанию
func (r *PreferencesRepositoryImpl) GetByUserID(ctx context.Context, userID string) (*models.UserPreferences, error) {
	query := `SELECT * FROM user_preferences WHERE user_id = $1`

	var prefs models.UserPreferences
	err := r.db.GetContext(ctx, &prefs, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &models.UserPreferences{UserID: userID}, nil
		}
		return nil, fmt.Errorf("ошибка при получении настроек пользователя: %w", err)
	}

	return &prefs, nil
}

func (r *PreferencesRepositoryImpl) Upsert(ctx context.Context, prefs *models.UserPreferences) error {
	query := `
		INSERT INTO user_preferences (user_id, onboarding_completed, updated_at)
		VALUES (:user_id, :onboarding_completed, :updated_at)
		ON CONFLICT (user_id) DO UPDATE SET
			onboarding_completed = EXCLUDED.onboarding_completed,
			updated_at = EXCLUDED.updated_at
	`

	prefs.UpdatedAt = time.Now()

	_, err := r.db.NamedExecContext(ctx, query, prefs)
	if err != nil {
		return fmt.Errorf("ошибка при сохранении настроек пользователя: %w", err)
	}

	return nil
}
