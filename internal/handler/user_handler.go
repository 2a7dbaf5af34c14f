package handlers

import (
	"encoding/json"
	"net/http"
)

// DeleteUser - мягкое удаление аккаунта: DELETE /api/user/delete?userId=<id>.
// Выход из сессии клиент выполняет отдельным запросом сразу после
func (h *Handlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID := r.URL.Query().Get("userId")
	if userID == "" {
		WriteEnvelopeError(w, "Missing required parameter: userId", http.StatusBadRequest)
		return
	}

	currentUserID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	if userID != currentUserID {
		WriteError(w, "Нет прав для удаления этого пользователя", http.StatusForbidden)
		return
	}

	if err := h.UserService.DeleteAccount(r.Context(), userID); err != nil {
		WriteEnvelopeError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, Envelope{Success: true}, http.StatusOK)
}

func (h *Handlers) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	// get user by id
	user, err := h.UserRepo.GetUserByID(r.Context(), userID)
	if err != nil {
		WriteError(w, err.Error(), http.StatusUnauthorized)
		return
	}

	// forming the response
	response := map[string]interface{}{
		"userId":         user.UserID,
		"email":          user.Email,
		"emailConfirmed": user.EmailConfirmed,
	}

	WriteSuccess(w, response, http.StatusOK)
}

// GetMyPurchases - история покупок текущего пользователя
func (h *Handlers) GetMyPurchases(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	purchases, err := h.PurchaseService.ListByUser(r.Context(), userID)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, purchases, http.StatusOK)
}

func (h *Handlers) GetPreferences(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	prefs, err := h.UserService.GetPreferences(r.Context(), userID)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, prefs, http.StatusOK)
}

func (h *Handlers) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	var req struct {
		OnboardingCompleted bool `json:"onboardingCompleted"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.UserService.SetOnboardingCompleted(r.Context(), userID, req.OnboardingCompleted); err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, map[string]string{"message": "Настройки обновлены"}, http.StatusOK)
}
