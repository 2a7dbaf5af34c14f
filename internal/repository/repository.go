package repository

import (
	"context"
	"time"

	"caseFilesCPT/internal/models"

	"github.com/jmoiron/sqlx"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	VerifyPassword(ctx context.Context, email, password string) (*models.User, error)
	UpdatePassword(ctx context.Context, userID, newPassword string) error
	SoftDeleteUser(ctx context.Context, userID string) error
	ConfirmEmail(ctx context.Context, userID string) error
	UpdateRefreshToken(ctx context.Context, userID, refreshToken string, expiryTime time.Time) error
	GetUserByRefreshToken(ctx context.Context, refreshToken string) (*models.User, error)
}

type PreferencesRepository interface {
	GetByUserID(ctx context.Context, userID string) (*models.UserPreferences, error)
	Upsert(ctx context.Context, prefs *models.UserPreferences) error
}

type CaseRepository interface {
	ListCases(ctx context.Context) ([]models.Case, error)
	GetCaseByID(ctx context.Context, caseID string) (*models.Case, error)
}

type PurchaseRepository interface {
	Upsert(ctx context.Context, purchase *models.Purchase) error
	GetByUserAndCase(ctx context.Context, userID, caseID string) (*models.Purchase, error)
	GetByUserID(ctx context.Context, userID string) ([]models.Purchase, error)
}

type MediaRepository interface {
	GetByCaseID(ctx context.Context, caseID string) ([]models.CaseMedia, error)
}

type TablesRepository interface {
	CountTablesDB() (int, error)
}

type Repository struct {
	User        UserRepository
	Preferences PreferencesRepository
	Case        CaseRepository
	Purchase    PurchaseRepository
	Media       MediaRepository
	Tables      TablesRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:        NewUserRepository(db),
		Preferences: NewPreferencesRepository(db),
		Case:        NewCaseRepository(db),
		Purchase:    NewPurchaseRepository(db),
		Media:       NewMediaRepository(db),
		Tables:      NewTablesRepository(db),
	}
}
