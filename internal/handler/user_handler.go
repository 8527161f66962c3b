package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"vconnect/internal/repository"
)

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
	user, err := h.UserService.Profile(r.Context(), userID)
	if err != nil {
		WriteError(w, err.Error(), statusFromError(err))
		return
	}

	WriteJSON(w, user, http.StatusOK)
}

func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID := mux.Vars(r)["id"]
	if userID == "" {
		WriteError(w, "Неверный URL", http.StatusBadRequest)
		return
	}

	user, err := h.UserService.Profile(r.Context(), userID)
	if err != nil {
		WriteError(w, err.Error(), statusFromError(err))
		return
	}

	// чужой профиль без списка заявок
	response := map[string]interface{}{
		"userId":        user.UserID,
		"name":          user.Name,
		"country":       user.Country,
		"profilePic":    user.ProfilePic,
		"bio":           user.Bio,
		"numberOfPosts": user.NumberOfPosts,
		"friendList":    user.FriendList,
	}

	WriteJSON(w, response, http.StatusOK)
}

func (h *Handlers) UpdateDetails(w http.ResponseWriter, r *http.Request) {
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
		Bio        string `json:"bio" validate:"required"`
		ProfilePic string `json:"profilePic" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные", http.StatusBadRequest)
		return
	}

	serviceReq := repository.UpdateDetailsRequest{
		UserID:     userID,
		Bio:        req.Bio,
		ProfilePic: req.ProfilePic,
	}

	if err := h.UserService.UpdateDetails(r.Context(), serviceReq); err != nil {
		WriteError(w, err.Error(), statusFromError(err))
		return
	}

	WriteJSON(w, MessageResponse{Message: "Профиль обновлен"}, http.StatusOK)
}

func (h *Handlers) SearchUsers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	prefix := r.URL.Query().Get("q")
	if prefix == "" {
		WriteError(w, "Отсутствует параметр q", http.StatusBadRequest)
		return
	}

	users, err := h.UserService.Search(r.Context(), prefix)
	if err != nil {
		WriteError(w, err.Error(), statusFromError(err))
		return
	}

	WriteJSON(w, users, http.StatusOK)
}

func (h *Handlers) FriendRequests(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	users, err := h.UserService.FriendRequestList(r.Context(), userID)
	if err != nil {
		WriteError(w, err.Error(), statusFromError(err))
		return
	}

	WriteJSON(w, users, http.StatusOK)
}

func (h *Handlers) Notifications(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	notifications, err := h.UserService.Notifications(r.Context(), userID)
	if err != nil {
		WriteError(w, err.Error(), statusFromError(err))
		return
	}

	WriteJSON(w, notifications, http.StatusOK)
}
