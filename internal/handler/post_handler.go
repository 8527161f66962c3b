package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"vconnect/internal/repository"
)

type CreatePostBody struct {
	Body      string `json:"body" validate:"required"`
	Picture   string `json:"picture"`
	Public    bool   `json:"public"`
	Weight    string `json:"weight"`
	Style     string `json:"style"`
	MediaType string `json:"mediaType"`
}

type PictureResponse struct {
	PictureURL string `json:"pictureUrl"`
	FileName   string `json:"fileName"`
	FileSize   int64  `json:"fileSize"`
	MimeType   string `json:"mimeType"`
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	authorID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	var req CreatePostBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Отсутствует текст поста", http.StatusBadRequest)
		return
	}

	serviceReq := repository.CreatePostRequest{
		Body:      req.Body,
		Picture:   req.Picture,
		Public:    req.Public,
		Weight:    req.Weight,
		Style:     req.Style,
		MediaType: req.MediaType,
	}

	// creating a post
	post, err := h.PostService.CreatePost(r.Context(), authorID, serviceReq)
	if err != nil {
		WriteError(w, err.Error(), statusFromError(err))
		return
	}

	WriteJSON(w, post, http.StatusCreated)
}

func (h *Handlers) SharePost(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	authorID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	originalPostID := mux.Vars(r)["id"]
	if originalPostID == "" {
		WriteError(w, "Неверный URL", http.StatusBadRequest)
		return
	}

	var req CreatePostBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Отсутствует текст поста", http.StatusBadRequest)
		return
	}

	serviceReq := repository.CreatePostRequest{
		Body:      req.Body,
		Picture:   req.Picture,
		Public:    req.Public,
		Weight:    req.Weight,
		Style:     req.Style,
		MediaType: req.MediaType,
	}

	post, err := h.PostService.CreateSharedPost(r.Context(), authorID, originalPostID, serviceReq)
	if err != nil {
		WriteError(w, err.Error(), statusFromError(err))
		return
	}

	WriteJSON(w, post, http.StatusCreated)
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	postID := mux.Vars(r)["id"]
	if postID == "" {
		WriteError(w, "Неверный URL", http.StatusBadRequest)
		return
	}

	// we receive a post on id
	post, err := h.PostService.GetPost(r.Context(), postID)
	if err != nil {
		WriteError(w, err.Error(), statusFromError(err))
		return
	}

	WriteJSON(w, post, http.StatusOK)
}

func (h *Handlers) LikePost(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	postID := mux.Vars(r)["id"]
	if postID == "" {
		WriteError(w, "Неверный URL", http.StatusBadRequest)
		return
	}

	if err := h.PostService.LikePost(r.Context(), userID, postID); err != nil {
		WriteError(w, err.Error(), statusFromError(err))
		return
	}

	WriteJSON(w, MessageResponse{Message: "Лайк добавлен"}, http.StatusOK)
}

func (h *Handlers) UnlikePost(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	postID := mux.Vars(r)["id"]
	if postID == "" {
		WriteError(w, "Неверный URL", http.StatusBadRequest)
		return
	}

	if err := h.PostService.UnlikePost(r.Context(), userID, postID); err != nil {
		WriteError(w, err.Error(), statusFromError(err))
		return
	}

	WriteJSON(w, MessageResponse{Message: "Лайк удален"}, http.StatusOK)
}

func (h *Handlers) UploadPicture(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	// setting the size limit from the config
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		if err.Error() == "http: request body too large" {
			WriteError(w, fmt.Sprintf("Файл слишком большой (макс. %d MB)",
				h.Cfg.MaxUploadSize/(1024*1024)), http.StatusBadRequest)
		} else {
			WriteError(w, "Ошибка при обработке файла", http.StatusBadRequest)
		}
		return
	}

	// getting the file
	file, handler, err := r.FormFile("picture")
	if err != nil {
		WriteError(w, "Не удалось получить файл", http.StatusBadRequest)
		return
	}
	defer file.Close()

	// formats image
	allowedTypes := map[string]bool{
		"image/jpeg": true,
		"image/jpg":  true,
		"image/png":  true,
		"image/gif":  true,
		"image/webp": true,
	}

	// check formats
	contentType := handler.Header.Get("Content-Type")
	if !allowedTypes[contentType] {
		WriteError(w, "Неподдерживаемый тип файла. Разрешены: JPEG, PNG, GIF, WebP", http.StatusBadRequest)
		return
	}

	pictureURL, err := h.PostService.UploadPicture(r.Context(), userID, handler.Filename, file, handler.Size)
	if err != nil {
		WriteError(w, "Ошибка загрузки изображения", http.StatusInternalServerError)
		return
	}

	// forming the response
	response := PictureResponse{
		PictureURL: pictureURL,
		FileName:   handler.Filename,
		FileSize:   handler.Size,
		MimeType:   contentType,
	}

	WriteJSON(w, response, http.StatusCreated)
}
