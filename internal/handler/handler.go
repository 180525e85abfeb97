package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/feedline-dev/feedline/internal/config"
	"github.com/feedline-dev/feedline/internal/domain"
	internal_errors "github.com/feedline-dev/feedline/internal/errors"
	"github.com/feedline-dev/feedline/internal/logger"
	"github.com/feedline-dev/feedline/internal/service"
	"github.com/feedline-dev/feedline/internal/utils"
	"github.com/feedline-dev/feedline/internal/validation"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	auth   service.AuthService
	posts  service.PostService
	health Pinger
	cfg    *config.Config
}

func New(auth service.AuthService, posts service.PostService, health Pinger, cfg *config.Config) *Handler {
	return &Handler{auth, posts, health, cfg}
}

func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
	}
}

// parsePostForm extracts title, content and the optional uploaded image from
// a multipart post form. cleanup closes the uploaded file and must be called
// once the image has been consumed.
func (h *Handler) parsePostForm(r *http.Request) (title, content string, image *domain.PendingFile, cleanup func(), err error) {
	cleanup = func() {}

	if err = r.ParseMultipartForm(validation.MaxImageBytes); err != nil {
		err = internal_errors.NewValidation("Could not parse multipart form")
		return
	}

	title = r.FormValue("title")
	content = r.FormValue("content")

	body := struct {
		Title   string `validate:"required,min=5"`
		Content string `validate:"required,min=5"`
	}{title, content}
	if err = utils.Validate(&body); err != nil {
		return
	}

	files := r.MultipartForm.File["image"]
	if len(files) == 0 {
		return
	}

	image, err = validation.ValidateImage(files[0], h.cfg.Public.AllowedImageMimeTypes)
	if err != nil {
		err = internal_errors.NewValidation(err.Error())
		image = nil
		return
	}
	cleanup = func() {
		if closer, ok := image.Data.(io.Closer); ok {
			closer.Close()
		}
	}
	return
}
