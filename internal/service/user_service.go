package service

import (
	"context"
	"fmt"
	"unicode/utf8"

	"caseFilesCPT/internal/models"
	"caseFilesCPT/internal/repository"
)

type UserService interface {
	DeleteAccount(ctx context.Context, userID string) error
	UpdatePassword(ctx context.Context, userID, newPassword string) error
	GetPreferences(ctx context.Context, userID string) (*models.UserPreferences, error)
	SetOnboardingCompleted(ctx context.Context, userID string, completed bool) error
}

type userService struct {
	userRepo  repository.UserRepository
	prefsRepo repository.PreferencesRepository
}

func NewUserService(userRepo repository.UserRepository, prefsRepo repository.PreferencesRepository) UserService {
	return &userService{
		userRepo:  userRepo,
		prefsRepo: prefsRepo,
	}
}

// DeleteAccount - мягкое удаление: история покупок остается, выход из
// сессии выполняет вызывающий отдельным запросом
func (s *userService) DeleteAccount(ctx context.Context, userID string) error {
	err := s.userRepo.SoftDeleteUser(ctx, userID)
	if err != nil {
		return err
	}

	return nil
}

func (s *userService) UpdatePassword(ctx context.Context, userID, newPassword string) error {
	if utf8.RuneCountInString(newPassword) < 6 {
		return fmt.Errorf("пароль должен быть не менее 6 символов")
	}

	err := s.userRepo.UpdatePassword(ctx, userID, newPassword)
	if err != nil {
		return err
	}

	return nil
}

func (s *userService) GetPreferences(ctx context.Context, userID string) (*models.UserPreferences, error) {
	return s.prefsRepo.GetByUserID(ctx, userID)
}

func (s *userService) SetOnboardingCompleted(ctx context.Context, userID string, completed bool) error {
	prefs := &models.UserPreferences{
		UserID:              userID,
		OnboardingCompleted: completed,
	}

	return s.prefsRepo.Upsert(ctx, prefs)
}
