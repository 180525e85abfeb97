package handler

import (
	"net/http"

	"github.com/feedline-dev/feedline/internal/middleware"
	"github.com/feedline-dev/feedline/internal/utils"
)

type signupBody struct {
	Email    string `validate:"required,email" json:"email"`
	Name     string `validate:"required" json:"name"`
	Password string `validate:"required,min=5" json:"password"`
}

type loginBody struct {
	Email    string `validate:"required" json:"email"`
	Password string `validate:"required" json:"password"`
}

type statusBody struct {
	Status string `validate:"required" json:"status"`
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var body signupBody
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	userId, err := h.auth.Signup(body.Email, body.Name, body.Password)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"message": "User Created!", "userId": userId})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var body loginBody
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	token, userId, err := h.auth.Login(body.Email, body.Password)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"token": token, "userId": userId})
}

func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	status, err := h.auth.Status(user.Id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"message": "Status Fetched!", "status": status})
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	var body statusBody
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	updated, err := h.auth.SetStatus(user.Id, body.Status)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"message": "Status updated successfully!", "result": updated})
}
