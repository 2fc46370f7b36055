package handler

import (
	"net/http"
	"time"

	"github.com/dukerupert/mealbook/internal/dateutil"
	"github.com/dukerupert/mealbook/internal/registry"
	"github.com/dukerupert/mealbook/internal/summary"
)

// SummaryHandler serves the projected meal counts for a date.
type SummaryHandler struct {
	reg *registry.Registry
	now func() time.Time
}

func NewSummaryHandler(reg *registry.Registry, clock func() time.Time) *SummaryHandler {
	if clock == nil {
		clock = time.Now
	}
	return &SummaryHandler{reg: reg, now: clock}
}

func (h *SummaryHandler) Get(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = dateutil.ISO(h.now())
	}
	if !dateutil.Valid(date) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "date must be YYYY-MM-DD"})
		return
	}

	stats := summary.Compute(h.reg.Snapshot(), date)
	writeJSON(w, http.StatusOK, stats)
}
