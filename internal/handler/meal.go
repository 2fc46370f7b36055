package handler

import (
	"encoding/json"
	"net/http"

	"github.com/dukerupert/mealbook/internal/dateutil"
	"github.com/dukerupert/mealbook/internal/model"
	"github.com/dukerupert/mealbook/internal/registry"
)

// MealHandler serves the per-member, per-day mutations: meal on/off, guest
// counts, and the day note.
type MealHandler struct {
	reg *registry.Registry
}

func NewMealHandler(reg *registry.Registry) *MealHandler {
	return &MealHandler{reg: reg}
}

// dayParams validates the {date} and {meal} path values. On failure it has
// already written the error response and returns ok=false.
func dayParams(w http.ResponseWriter, r *http.Request) (date string, meal model.MealType, ok bool) {
	date = r.PathValue("date")
	if !dateutil.Valid(date) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "date must be YYYY-MM-DD"})
		return "", "", false
	}
	meal, err := model.ParseMealType(r.PathValue("meal"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "meal must be breakfast, lunch, or dinner"})
		return "", "", false
	}
	return date, meal, true
}

func (h *MealHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	date, meal, ok := dayParams(w, r)
	if !ok {
		return
	}

	var req struct {
		On bool `json:"on"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	if err := h.reg.SetMealStatus(r.PathValue("id"), date, meal, req.On); err != nil {
		writeRegistryError(w, err, "failed to update meal status")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"on": req.On})
}

func (h *MealHandler) AdjustGuests(w http.ResponseWriter, r *http.Request) {
	date, meal, ok := dayParams(w, r)
	if !ok {
		return
	}

	var req struct {
		Increment bool `json:"increment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	count, err := h.reg.AdjustGuestMeals(r.PathValue("id"), date, meal, req.Increment)
	if err != nil {
		writeRegistryError(w, err, "failed to adjust guest meals")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"count": count})
}

func (h *MealHandler) SetNote(w http.ResponseWriter, r *http.Request) {
	date := r.PathValue("date")
	if !dateutil.Valid(date) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "date must be YYYY-MM-DD"})
		return
	}

	var req struct {
		Note string `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	if err := h.reg.SetNote(r.PathValue("id"), date, req.Note); err != nil {
		writeRegistryError(w, err, "failed to update note")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "note saved"})
}
