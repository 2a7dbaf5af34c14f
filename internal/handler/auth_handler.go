package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"

	"caseFilesCPT/internal/repository"
	"caseFilesCPT/internal/service"
)

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type UserResponse struct {
	UserId string `json:"userId"`
	Email  string `json:"email"`
}

type AuthResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         UserResponse `json:"user"`
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	// check method
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	// email verification
	patternEmail := `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	matched, err := regexp.MatchString(patternEmail, req.Email)
	if err != nil || !matched {
		WriteError(w, "Неверный формат email", http.StatusBadRequest)
		return
	}

	// password verification
	if utf8.RuneCountInString(req.Password) < 6 {
		WriteError(w, service.AuthErrorMessages[service.AuthErrWeakPassword], http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные", http.StatusBadRequest)
		return
	}

	serviceReq := repository.CreateUserRequest{
		Email:    req.Email,
		Password: req.Password,
	}

	// registering a user in the service
	_, err = h.AuthService.Register(r.Context(), serviceReq)
	if err != nil {
		kind := service.NormalizeAuthError(err.Error())
		if kind == service.AuthErrEmailExists {
			WriteError(w, service.AuthErrorMessages[kind], http.StatusForbidden)
		} else {
			WriteError(w, service.AuthErrorMessages[kind], http.StatusInternalServerError)
		}
		return
	}

	// logging in
	user, accessToken, refreshToken, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteError(w, service.AuthErrorMessages[service.NormalizeAuthError(err.Error())], http.StatusInternalServerError)
		return
	}

	response := AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: UserResponse{
			UserId: user.UserID,
			Email:  user.Email,
		},
	}

	WriteSuccess(w, response, http.StatusOK)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	// check method
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		if strings.Contains(err.Error(), "Email") {
			WriteError(w, "Неверный формат email", http.StatusBadRequest)
		} else {
			WriteError(w, "Неверные данные", http.StatusBadRequest)
		}
		return
	}

	user, accessToken, refreshToken, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteError(w, service.AuthErrorMessages[service.AuthErrInvalidCredentials], http.StatusForbidden)
		return
	}

	response := AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: UserResponse{
			UserId: user.UserID,
			Email:  user.Email,
		},
	}

	WriteSuccess(w, response, http.StatusOK)
}

func (h *Handlers) RefreshToken(w http.ResponseWriter, r *http.Request) {
	// check method
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		RefreshToken string `json:"refreshToken" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	// token missing
	if req.RefreshToken == "" {
		WriteError(w, "Отсуствует refreshToken", http.StatusBadRequest)
		return
	}

	user, accessToken, refreshToken, err := h.AuthService.RefreshTokens(r.Context(), req.RefreshToken)
	if err != nil {
		WriteError(w, "Refresh Token истек или недействителен", http.StatusBadRequest)
		return
	}

	response := AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: UserResponse{
			UserId: user.UserID,
			Email:  user.Email,
		},
	}

	WriteSuccess(w, response, http.StatusOK)
}

type CheckEmailResponse struct {
	Exists         bool   `json:"exists"`
	Provider       string `json:"provider,omitempty"`
	EmailConfirmed *bool  `json:"email_confirmed,omitempty"`
}

func (h *Handlers) CheckEmail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Email string `json:"email" validate:"required,email"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверный формат email", http.StatusBadRequest)
		return
	}

	exists, provider, confirmed, err := h.AuthService.CheckEmail(r.Context(), req.Email)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	response := CheckEmailResponse{Exists: exists}
	if exists {
		response.Provider = provider
		response.EmailConfirmed = &confirmed
	}

	WriteSuccess(w, response, http.StatusOK)
}

func (h *Handlers) ResendVerification(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Email string `json:"email" validate:"required,email"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверный формат email", http.StatusBadRequest)
		return
	}

	if err := h.AuthService.ResendVerification(r.Context(), req.Email); err != nil {
		WriteError(w, service.AuthErrorMessages[service.NormalizeAuthError(err.Error())], http.StatusBadRequest)
		return
	}

	WriteSuccess(w, map[string]string{"message": "Письмо с подтверждением отправлено повторно"}, http.StatusOK)
}

func (h *Handlers) ResetPassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Email string `json:"email" validate:"required,email"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверный формат email", http.StatusBadRequest)
		return
	}

	if err := h.AuthService.ResetPassword(r.Context(), req.Email); err != nil {
		WriteError(w, service.AuthErrorMessages[service.NormalizeAuthError(err.Error())], http.StatusInternalServerError)
		return
	}

	// ответ одинаковый независимо от того, зарегистрирован ли email
	WriteSuccess(w, map[string]string{"message": "Если email зарегистрирован, на него отправлено письмо"}, http.StatusOK)
}

// UpdatePassword принимает либо аутентифицированную сессию, либо токен
// сброса из письма (claim purpose = password-reset)
func (h *Handlers) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		NewPassword string `json:"newPassword" validate:"required,min=6"`
		ResetToken  string `json:"resetToken"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		var err error
		userID, err = h.userIDFromResetToken(req.ResetToken)
		if err != nil {
			WriteError(w, "Требуется аутентификация или действующий токен сброса", http.StatusUnauthorized)
			return
		}
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, service.AuthErrorMessages[service.AuthErrWeakPassword], http.StatusBadRequest)
		return
	}

	if err := h.UserService.UpdatePassword(r.Context(), userID, req.NewPassword); err != nil {
		WriteError(w, service.AuthErrorMessages[service.NormalizeAuthError(err.Error())], http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, map[string]string{"message": "Пароль обновлен"}, http.StatusOK)
}

func (h *Handlers) userIDFromResetToken(resetToken string) (string, error) {
	if resetToken == "" {
		return "", fmt.Errorf("токен сброса не передан")
	}

	token, err := h.AuthService.ValidateToken(resetToken)
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("неверные claims токена")
	}

	// токен сброса годится только для смены пароля
	if purpose, _ := claims["purpose"].(string); purpose != "password-reset" {
		return "", fmt.Errorf("недействительный токен сброса")
	}

	userID, ok := claims["userId"].(string)
	if !ok {
		return "", fmt.Errorf("неверные данные в токене")
	}

	return userID, nil
}
