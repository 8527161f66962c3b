package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// GlobalFeed - лента всех видимых зрителю постов, кроме его собственных
func (h *Handlers) GlobalFeed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	viewerID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	posts, err := h.PostService.GlobalFeed(r.Context(), viewerID)
	if err != nil {
		WriteError(w, err.Error(), statusFromError(err))
		return
	}

	WriteJSON(w, posts, http.StatusOK)
}

// MyFeed - собственные посты пользователя без фильтра видимости
func (h *Handlers) MyFeed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	posts, err := h.PostService.UserFeed(r.Context(), userID)
	if err != nil {
		WriteError(w, err.Error(), statusFromError(err))
		return
	}

	WriteJSON(w, posts, http.StatusOK)
}

// UserFeed - посты другого пользователя, видимые текущему зрителю
func (h *Handlers) UserFeed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	viewerID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	targetID := mux.Vars(r)["id"]
	if targetID == "" {
		WriteError(w, "Неверный URL", http.StatusBadRequest)
		return
	}

	posts, err := h.PostService.OtherUserFeed(r.Context(), targetID, viewerID)
	if err != nil {
		WriteError(w, err.Error(), statusFromError(err))
		return
	}

	WriteJSON(w, posts, http.StatusOK)
}
