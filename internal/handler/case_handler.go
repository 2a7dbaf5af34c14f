package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
)

func (h *Handlers) ListCases(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	cases, err := h.CatalogService.ListCases(r.Context())
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, cases, http.StatusOK)
}

func (h *Handlers) GetCase(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	caseID := mux.Vars(r)["id"]
	if caseID == "" {
		WriteError(w, "Неверный URL", http.StatusBadRequest)
		return
	}

	c, err := h.CatalogService.GetCase(r.Context(), caseID)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if c == nil {
		WriteError(w, "Дело не найдено", http.StatusNotFound)
		return
	}

	WriteSuccess(w, c, http.StatusOK)
}

// CheckAccess отвечает, есть ли у текущего пользователя купленный доступ;
// состояние доступа всегда берется из хранилища, а не из клиента
func (h *Handlers) CheckAccess(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	caseID := mux.Vars(r)["id"]

	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	hasAccess, err := h.AccessService.HasAccess(r.Context(), caseID, userID)

	response := map[string]interface{}{
		"hasAccess": hasAccess,
	}
	if err != nil {
		response["error"] = err.Error()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// GetMedia - улики отдаются только после подтвержденной покупки;
// проверка доступа выполняется один раз здесь
func (h *Handlers) GetMedia(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	caseID := mux.Vars(r)["id"]

	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	hasAccess, err := h.AccessService.HasAccess(r.Context(), caseID, userID)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if !hasAccess {
		WriteError(w, "Дело не куплено", http.StatusForbidden)
		return
	}

	media, err := h.MediaService.GetMedia(r.Context(), caseID)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, media, http.StatusOK)
}
