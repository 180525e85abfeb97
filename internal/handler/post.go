package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/feedline-dev/feedline/internal/domain"
	"github.com/feedline-dev/feedline/internal/middleware"
	"github.com/feedline-dev/feedline/internal/utils"
)

func (h *Handler) GetPosts(w http.ResponseWriter, r *http.Request) {
	page := 1
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		parsed, err := strconv.Atoi(pageStr)
		if err != nil {
			http.Error(w, "Bad request", http.StatusBadRequest)
			return
		}
		page = parsed
	}

	feedPage, err := h.posts.List(page)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":    "Posts fetched successfully",
		"posts":      feedPage.Posts,
		"totalItems": feedPage.TotalItems,
	})
}

func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	title, content, image, cleanup, err := h.parsePostForm(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	defer cleanup()

	post, creator, err := h.posts.Create(user.Id, title, content, image)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Post created successfully!",
		"post":    post,
		"creator": creator,
	})
}

func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	postId, err := parsePostId(r)
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	post, err := h.posts.Get(postId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"message": "Post fetched.", "post": post})
}

func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	postId, err := parsePostId(r)
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	title, content, image, cleanup, err := h.parsePostForm(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	defer cleanup()

	// when no new file is uploaded the client resends the current path
	existingImagePath := r.FormValue("image")

	post, err := h.posts.Update(postId, user.Id, title, content, image, existingImagePath)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"message": "Post Edited Successfully", "post": post})
}

func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	postId, err := parsePostId(r)
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	if err := h.posts.Delete(postId, user.Id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"message": "Post Deleted!"})
}

func parsePostId(r *http.Request) (domain.PostId, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "postId"), 10, 64)
	if err != nil {
		return 0, err
	}
	return id, nil
}
