package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/dukerupert/mealbook/internal/model"
	"github.com/dukerupert/mealbook/internal/registry"
)

type MemberHandler struct {
	reg *registry.Registry
}

func NewMemberHandler(reg *registry.Registry) *MemberHandler {
	return &MemberHandler{reg: reg}
}

func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	members := h.reg.Snapshot()
	if members == nil {
		members = []model.Member{}
	}
	writeJSON(w, http.StatusOK, members)
}

func (h *MemberHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name       string `json:"name"`
		RoomNumber string `json:"room_number"`
		Phone      string `json:"phone"`
		Password   string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	member, err := h.reg.AddMember(req.Name, req.RoomNumber, req.Phone, req.Password)
	if err != nil {
		log.Printf("failed to add member: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to add member"})
		return
	}

	writeJSON(w, http.StatusCreated, member)
}

func (h *MemberHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.reg.DeleteMember(r.PathValue("id")); err != nil {
		writeRegistryError(w, err, "failed to delete member")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *MemberHandler) SetContinuous(w http.ResponseWriter, r *http.Request) {
	var req struct {
		On bool `json:"on"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	if err := h.reg.SetContinuous(r.PathValue("id"), req.On); err != nil {
		writeRegistryError(w, err, "failed to update continuous status")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"on": req.On})
}

func (h *MemberHandler) SetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	// Empty passwords are allowed: a member may opt out of note protection.
	if err := h.reg.SetMemberPassword(r.PathValue("id"), req.Password); err != nil {
		writeRegistryError(w, err, "failed to update password")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "password set"})
}

func (h *MemberHandler) VerifyPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	ok, err := h.reg.VerifyMemberPassword(r.PathValue("id"), req.Password)
	if err != nil {
		writeRegistryError(w, err, "failed to verify password")
		return
	}
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "incorrect password"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "verified"})
}

func writeRegistryError(w http.ResponseWriter, err error, msg string) {
	if errors.Is(err, registry.ErrMemberNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "member not found"})
		return
	}
	log.Printf("%s: %v", msg, err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
