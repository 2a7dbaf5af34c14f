package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	UserID                 string       `json:"userId" db:"user_id"`
	Email                  string       `json:"email" db:"email"`
	PasswordHash           string       `json:"passwordHash" db:"password_hash"`
	Provider               string       `json:"provider" db:"provider"`
	EmailConfirmed         bool         `json:"emailConfirmed" db:"email_confirmed"`
	RefreshToken           string       `json:"refreshToken" db:"refresh_token"`
	RefreshTokenExpiryTime time.Time    `json:"refreshTokenExpiryTime" db:"refresh_token_expiry_time"`
	IsDeleted              bool         `json:"isDeleted" db:"is_deleted"`
	DeletedAt              sql.NullTime `json:"deletedAt" db:"deleted_at"`
	CreatedAt              time.Time    `json:"createdAt" db:"created_at"`
}

type UserPreferences struct {
	UserID              string    `json:"userId" db:"user_id"`
	OnboardingCompleted bool      `json:"onboardingCompleted" db:"onboarding_completed"`
	UpdatedAt           time.Time `json:"updatedAt" db:"updated_at"`
}

type Case struct {
	CaseID      string          `json:"caseId" db:"case_id"`
	Title       string          `json:"title" db:"title"`
	Description string          `json:"description" db:"description"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Difficulty  string          `json:"difficulty" db:"difficulty"`
	CoverImage  string          `json:"coverImage" db:"cover_image"`
	Content     string          `json:"content" db:"content"`
	Published   bool            `json:"published" db:"published"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
}

type Purchase struct {
	PurchaseID string          `json:"purchaseId" db:"purchase_id"`
	UserID     string          `json:"userId" db:"user_id"`
	CaseID     string          `json:"caseId" db:"case_id"`
	PaymentID  string          `json:"paymentId" db:"payment_id"`
	Amount     decimal.Decimal `json:"amount" db:"amount"`
	Note       string          `json:"note" db:"note"`
	VerifiedAt time.Time       `json:"verifiedAt" db:"verified_at"`
}

type CaseMedia struct {
	MediaID      string `json:"mediaId" db:"media_id"`
	CaseID       string `json:"caseId" db:"case_id"`
	Title        string `json:"title" db:"title"`
	Description  string `json:"description" db:"description"`
	MediaType    string `json:"mediaType" db:"media_type"`
	StoragePath  string `json:"storagePath" db:"storage_path"`
	ExternalURL  string `json:"externalUrl" db:"external_url"`
	CoverImage   string `json:"coverImage" db:"cover_image"`
	DisplayOrder int    `json:"displayOrder" db:"display_order"`
}

// MediaItem - улика для выдачи клиенту: SignedURL выводится из
// storage_path и нигде не хранится
type MediaItem struct {
	CaseMedia
	SignedURL string `json:"signedUrl,omitempty"`
}
