package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/dukerupert/mealbook/internal/handler"
	"github.com/dukerupert/mealbook/internal/middleware"
	"github.com/dukerupert/mealbook/internal/model"
	"github.com/dukerupert/mealbook/internal/registry"
	ws "github.com/dukerupert/mealbook/internal/websocket"
)

type Server struct {
	reg         *registry.Registry
	hub         *ws.Hub
	memberH     *handler.MemberHandler
	mealH       *handler.MealHandler
	summaryH    *handler.SummaryHandler
	adminH      *handler.AdminHandler
	rateLimiter *middleware.RateLimiter
	logger      *slog.Logger
}

// New wires the API around a loaded registry. Committed mutations flow to
// WebSocket clients through the registry's subscription channel.
func New(reg *registry.Registry, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))
	reg.Subscribe(func(members []model.Member) {
		hub.Broadcast(ws.MembersMessage(members))
	})

	return &Server{
		reg:         reg,
		hub:         hub,
		memberH:     handler.NewMemberHandler(reg),
		mealH:       handler.NewMealHandler(reg),
		summaryH:    handler.NewSummaryHandler(reg, nil),
		adminH:      handler.NewAdminHandler(reg),
		rateLimiter: middleware.NewRateLimiter(),
		logger:      logger,
	}
}

// Hub returns the WebSocket hub, exposed for shutdown diagnostics.
func (s *Server) Hub() *ws.Hub {
	return s.hub
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthHandler)
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub, s.reg.Snapshot))

	mux.HandleFunc("GET /api/members", s.memberH.List)
	mux.HandleFunc("POST /api/members", s.memberH.Create)
	mux.HandleFunc("DELETE /api/members/{id}", s.memberH.Delete)
	mux.HandleFunc("PUT /api/members/{id}/continuous", s.memberH.SetContinuous)
	mux.HandleFunc("PUT /api/members/{id}/password", s.memberH.SetPassword)
	mux.HandleFunc("POST /api/members/{id}/password/verify", s.rateLimited(s.memberH.VerifyPassword))

	mux.HandleFunc("PUT /api/members/{id}/days/{date}/meals/{meal}", s.mealH.SetStatus)
	mux.HandleFunc("POST /api/members/{id}/days/{date}/guest-meals/{meal}", s.mealH.AdjustGuests)
	mux.HandleFunc("PUT /api/members/{id}/days/{date}/note", s.mealH.SetNote)

	mux.HandleFunc("GET /api/summary", s.summaryH.Get)

	mux.HandleFunc("POST /api/admin/verify", s.rateLimited(s.adminH.Verify))
	mux.HandleFunc("PUT /api/admin/password", s.adminH.ChangePassword)
	mux.HandleFunc("POST /api/admin/reset-meals", s.adminH.ResetMeals)

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimited(h http.HandlerFunc) http.HandlerFunc {
	rl := middleware.RateLimit(s.rateLimiter, middleware.RealIP, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}
