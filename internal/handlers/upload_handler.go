package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"kiosk-gateway/internal/middleware"
	"kiosk-gateway/internal/upstream"
)

const maxUploadBytes = 5 << 20

// Uploader forwards an image to the platform's object store.
type Uploader interface {
	UploadImage(ctx context.Context, token, filename string, file io.Reader) (*upstream.UploadResult, error)
}

// UploadHandler proxies image uploads for menu items and branding.
type UploadHandler struct {
	backend Uploader
	logger  *slog.Logger
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(backend Uploader, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{
		backend: backend,
		logger:  logger,
	}
}

// Image handles POST /api/upload/image
func (h *UploadHandler) Image(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid multipart form", h.logger)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Field 'file' is required", h.logger)
		return
	}
	defer file.Close()

	name := filepath.Base(header.Filename)
	if !allowedImageName(name) {
		WriteError(w, http.StatusBadRequest, "Invalid file type. Allowed: .jpg, .jpeg, .png, .gif, .webp", h.logger)
		return
	}

	result, err := h.backend.UploadImage(r.Context(), middleware.Token(r.Context()), name, file)
	if err != nil {
		h.logger.Error("image upload failed", "filename", name, "error", err)
		WriteUpstreamError(w, err, h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, result, h.logger)
}

func allowedImageName(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return true
	}
	return false
}
