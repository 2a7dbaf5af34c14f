package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"caseFilesCPT/internal/config"
	"caseFilesCPT/internal/models"
	"caseFilesCPT/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Закрытый набор нормализованных ошибок аутентификации
const (
	AuthErrEmailExists        = "email-already-exists"
	AuthErrInvalidCredentials = "invalid-credentials"
	AuthErrWeakPassword       = "weak-password"
	AuthErrExpiredToken       = "expired-token"
	AuthErrUnknown            = "unknown"
)

// Тексты для показа пользователю по каждому типу
var AuthErrorMessages = map[string]string{
	AuthErrEmailExists:        "Пользователь с таким email уже зарегистрирован",
	AuthErrInvalidCredentials: "Неверный email или пароль",
	AuthErrWeakPassword:       "Пароль должен быть не менее 6 символов",
	AuthErrExpiredToken:       "Срок действия ссылки истек. Запросите новую",
	AuthErrUnknown:            "Что-то пошло не так. Попробуйте еще раз",
}

// NormalizeAuthError сводит текст ошибки провайдера к закрытому набору
// по вхождению подстрок; все, что не распознано - unknown
func NormalizeAuthError(message string) string {
	msg := strings.ToLower(message)

	switch {
	case strings.Contains(msg, "уже существует"),
		strings.Contains(msg, "already registered"),
		strings.Contains(msg, "already exists"),
		strings.Contains(msg, "duplicate key"):
		return AuthErrEmailExists
	case strings.Contains(msg, "неверный пароль"),
		strings.Contains(msg, "не найден"),
		strings.Contains(msg, "invalid login credentials"),
		strings.Contains(msg, "invalid credentials"):
		return AuthErrInvalidCredentials
	case strings.Contains(msg, "не менее 6"),
		strings.Contains(msg, "password should be at least"),
		strings.Contains(msg, "weak password"):
		return AuthErrWeakPassword
	case strings.Contains(msg, "истек"),
		strings.Contains(msg, "просрочен"),
		strings.Contains(msg, "token is expired"),
		strings.Contains(msg, "token has expired"):
		return AuthErrExpiredToken
	default:
		return AuthErrUnknown
	}
}

type AuthService interface {
	Register(ctx context.Context, req repository.CreateUserRequest) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, string, string, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*models.User, string, string, error)
	ValidateToken(tokenString string) (*jwt.Token, error)
	CheckEmail(ctx context.Context, email string) (bool, string, bool, error)
	ResetPassword(ctx context.Context, email string) error
	ResendVerification(ctx context.Context, email string) error
}

type authService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

func (s *authService) Register(ctx context.Context, req repository.CreateUserRequest) (*models.User, error) {
	existingUser, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err == nil && existingUser != nil {
		return nil, fmt.Errorf("пользователь с email %s уже существует", req.Email)
	}

	refreshToken, refreshTokenExpiry := s.generateRefreshToken()

	user := &models.User{
		Email:                  req.Email,
		Provider:               "email",
		RefreshToken:           refreshToken,
		RefreshTokenExpiryTime: refreshTokenExpiry,
	}

	err = s.userRepo.CreateUser(ctx, user, req.Password)
	if err != nil {
		return nil, fmt.Errorf("ошибка при создании пользователя: %w", err)
	}

	// письмо с подтверждением уходит через почтовый хук
	s.sendMail(user.Email, "confirm-signup")

	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.User, string, string, error) {
	user, err := s.userRepo.VerifyPassword(ctx, email, password)
	if err != nil {
		return nil, "", "", fmt.Errorf("ошибка аутентификации: %w", err)
	}

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, "", "", fmt.Errorf("ошибка генерации access token: %w", err)
	}

	refreshToken, refreshTokenExpiry := s.generateRefreshToken()

	err = s.userRepo.UpdateRefreshToken(ctx, user.UserID, refreshToken, refreshTokenExpiry)
	if err != nil {
		return nil, "", "", fmt.Errorf("ошибка сохранения refresh token: %w", err)
	}

	return user, accessToken, refreshToken, nil
}

func (s *authService) RefreshTokens(ctx context.Context, refreshToken string) (*models.User, string, string, error) {
	user, err := s.userRepo.GetUserByRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, "", "", fmt.Errorf("недействительный refresh token: %w", err)
	}

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, "", "", fmt.Errorf("ошибка генерации access token: %w", err)
	}

	newRefreshToken, refreshTokenExpiry := s.generateRefreshToken()

	err = s.userRepo.UpdateRefreshToken(ctx, user.UserID, newRefreshToken, refreshTokenExpiry)
	if err != nil {
		return nil, "", "", fmt.Errorf("ошибка обновления refresh token: %w", err)
	}

	return user, accessToken, newRefreshToken, nil
}

// CheckEmail отвечает, зарегистрирован ли email, каким провайдером и
// подтвержден ли он
func (s *authService) CheckEmail(ctx context.Context, email string) (bool, string, bool, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if strings.Contains(err.Error(), "не найден") {
			return false, "", false, nil
		}
		return false, "", false, err
	}

	if user.IsDeleted {
		return false, "", false, nil
	}

	return true, user.Provider, user.EmailConfirmed, nil
}

func (s *authService) ResetPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		// не раскрываем, существует ли email
		log.Printf("Сброс пароля для незарегистрированного email: %s", email)
		return nil
	}

	claims := jwt.MapClaims{
		"userId":  user.UserID,
		"purpose": "password-reset",
		"exp":     time.Now().Add(s.cfg.ResetTokenDuration).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	resetToken, err := token.SignedString([]byte(s.cfg.JWTSecretKey))
	if err != nil {
		return fmt.Errorf("ошибка подписи токена сброса: %w", err)
	}

	s.sendMail(user.Email, "reset-password:"+resetToken)

	return nil
}

func (s *authService) ResendVerification(ctx context.Context, email string) error {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("пользователь с email %s не найден", email)
	}

	if user.EmailConfirmed {
		return fmt.Errorf("email %s уже подтвержден", email)
	}

	s.sendMail(user.Email, "confirm-signup")

	return nil
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"userId": user.UserID,
		"email":  user.Email,
		"exp":    time.Now().Add(s.cfg.AccessTokenDuration).Unix(),
		"iat":    time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecretKey))
	if err != nil {
		return "", fmt.Errorf("ошибка подписи токена: %w", err)
	}

	return tokenString, nil
}

func (s *authService) generateRefreshToken() (string, time.Time) {
	refreshToken := uuid.New().String()

	expiryTime := time.Now().Add(s.cfg.RefreshTokenDuration)

	return refreshToken, expiryTime
}

func (s *authService) ValidateToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неожиданный метод подписи: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecretKey), nil
	})

	if err != nil {
		return nil, fmt.Errorf("ошибка парсинга токена: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("недействительный токен")
	}

	return token, nil
}

// sendMail - почтовый хук; в dev письма только логируются
func (s *authService) sendMail(email, kind string) {
	log.Printf("Письмо для %s: %s", email, kind)
}
