package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/dukerupert/mealbook/internal/registry"
)

// AdminHandler serves the admin credential and bulk operations behind it.
type AdminHandler struct {
	reg *registry.Registry
}

func NewAdminHandler(reg *registry.Registry) *AdminHandler {
	return &AdminHandler{reg: reg}
}

func (h *AdminHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	ok, err := h.reg.VerifyAdminPassword(req.Password)
	if err != nil {
		log.Printf("failed to verify admin password: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to verify password"})
		return
	}
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "incorrect password"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "verified"})
}

func (h *AdminHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	if req.NewPassword == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "new password is required"})
		return
	}

	ok, err := h.reg.VerifyAdminPassword(req.CurrentPassword)
	if err != nil {
		log.Printf("failed to verify admin password: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to verify password"})
		return
	}
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "incorrect password"})
		return
	}

	if err := h.reg.SetAdminPassword(req.NewPassword); err != nil {
		log.Printf("failed to set admin password: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to set password"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "password changed"})
}

func (h *AdminHandler) ResetMeals(w http.ResponseWriter, r *http.Request) {
	if err := h.reg.ResetAllMeals(); err != nil {
		log.Printf("failed to reset meals: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to reset meals"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
