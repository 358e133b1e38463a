package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/cors"
	"github.com/sebuszqo/FinanceTracker/internal/auth"
	"github.com/sebuszqo/FinanceTracker/internal/config"
	"github.com/sebuszqo/FinanceTracker/internal/finance/interfaces"
	"github.com/sebuszqo/FinanceTracker/internal/logger"
	"github.com/sebuszqo/FinanceTracker/internal/user"
)

// HealthChecker reports storage health; database.DBService satisfies it.
type HealthChecker interface {
	Health(ctx context.Context) map[string]string
}

type Handlers struct {
	Auth         *auth.Handler
	User         *user.Handler
	Transactions *interfaces.TransactionHandler
	Goals        *interfaces.GoalHandler
	Categories   *interfaces.CategoryHandler
	Reports      *interfaces.ReportHandler
}

type Server struct {
	router      http.Handler
	httpServer  *http.Server
	handlers    Handlers
	authService auth.Service
	health      HealthChecker
	logger      *slog.Logger
	cors        config.CORS
}

// New wires the routes. health may be nil when storage is in memory.
func New(cfg config.HTTP, corsCfg config.CORS, log *slog.Logger, handlers Handlers, authService auth.Service, health HealthChecker) *Server {
	s := &Server{
		handlers:    handlers,
		authService: authService,
		health:      health,
		logger:      log,
		cors:        corsCfg,
	}
	s.RegisterRoutes()
	s.httpServer = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		stats := s.health.Health(r.Context())
		if stats["status"] != "up" {
			s.logger.Error("storage is not ready", slog.String("error", stats["error"]))
			RespondError(w, http.StatusServiceUnavailable, "storage unavailable")
			return
		}
	}
	RespondJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
	})
}

func (s *Server) RegisterRoutes() {
	protect := s.authService.JWTAccessTokenMiddleware()
	router := http.NewServeMux()

	// Public routes
	router.HandleFunc("POST /api/auth/register", s.handlers.Auth.HandleRegister)
	router.HandleFunc("POST /api/auth/login", s.handlers.Auth.HandleLogin)
	router.HandleFunc("GET /api/categories", s.handlers.Categories.GetCategories)
	router.HandleFunc("GET /api/ready", s.handleReady)

	// Protected routes
	router.Handle("GET /api/users/me", protect(http.HandlerFunc(s.handlers.User.HandleGetCurrentUser)))

	router.Handle("GET /api/transactions", protect(http.HandlerFunc(s.handlers.Transactions.GetUserTransactions)))
	router.Handle("POST /api/transactions", protect(http.HandlerFunc(s.handlers.Transactions.CreateTransaction)))
	router.Handle("PUT /api/transactions/{id}", protect(http.HandlerFunc(s.handlers.Transactions.UpdateTransaction)))
	router.Handle("DELETE /api/transactions/{id}", protect(http.HandlerFunc(s.handlers.Transactions.DeleteTransaction)))
	router.Handle("GET /api/transactions/export", protect(http.HandlerFunc(s.handlers.Reports.ExportTransactions)))

	router.Handle("GET /api/goals", protect(http.HandlerFunc(s.handlers.Goals.GetUserGoals)))
	router.Handle("POST /api/goals", protect(http.HandlerFunc(s.handlers.Goals.CreateGoal)))
	router.Handle("DELETE /api/goals/{id}", protect(http.HandlerFunc(s.handlers.Goals.DeleteGoal)))

	router.Handle("GET /api/reports/summary", protect(http.HandlerFunc(s.handlers.Reports.GetSummary)))

	router.HandleFunc("/", notFoundHandler)

	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins:   s.cors.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	})

	s.router = logger.Middleware(s.logger)(corsHandler(router))
}

func (s *Server) Start() error {
	s.logger.Info("Starting server", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// MustStart blocks until the server stops and panics on anything but a clean shutdown.
func (s *Server) MustStart() {
	err := s.Start()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		panic("Failed to start server: " + err.Error())
	}
}

func (s *Server) Stop(ctx context.Context) error {
	defer s.logger.Info("Server successfully stopped")
	return s.httpServer.Shutdown(ctx)
}
