package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bank-ledger/internal/app"
	"bank-ledger/internal/config"
	"bank-ledger/internal/handler"
	"bank-ledger/internal/service"
)

// Server represents the HTTP server
type Server struct {
	router *mux.Router
	server *http.Server
	db     *app.Database
	logger *slog.Logger
	port   string
}

// NewServer creates a new server instance over the card ledger
func NewServer(bank *service.Bank[uint64], registry *prometheus.Registry, db *app.Database, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if db == nil {
		db = &app.Database{}
	}

	// Initialize handlers
	accountHandler := handler.NewAccountHandler(bank.Accounts)
	transactionHandler := handler.NewTransactionHandler(bank.Transactions, bank.Credit)

	// Setup router
	router := mux.NewRouter()

	// Add middleware for logging
	router.Use(loggingMiddleware(logger))

	// Account routes
	router.HandleFunc("/accounts", accountHandler.CreateAccount).Methods("POST")
	router.HandleFunc("/accounts/{account_number}", accountHandler.GetAccount).Methods("GET")
	router.HandleFunc("/accounts/{account_number}/transactions", accountHandler.History).Methods("GET")

	// Money routes
	router.HandleFunc("/accounts/{account_number}/withdrawals", transactionHandler.Withdraw).Methods("POST")
	router.HandleFunc("/accounts/{account_number}/deposits", transactionHandler.Deposit).Methods("POST")
	router.HandleFunc("/accounts/{account_number}/loans", transactionHandler.Apply(service.LoanProduct)).Methods("POST")
	router.HandleFunc("/accounts/{account_number}/loan-payments", transactionHandler.Pay(service.LoanProduct)).Methods("POST")
	router.HandleFunc("/accounts/{account_number}/mortgages", transactionHandler.Apply(service.MortgageProduct)).Methods("POST")
	router.HandleFunc("/accounts/{account_number}/mortgage-payments", transactionHandler.Pay(service.MortgageProduct)).Methods("POST")
	router.HandleFunc("/transfers", transactionHandler.Transfer).Methods("POST")

	// Health check
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := pingDatabase(r.Context(), db.DB); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"status": "unhealthy", "error": "database unavailable"})
			return
		}

		json.NewEncoder(w).Encode(map[string]string{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}).Methods("GET")

	if registry != nil {
		router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{})).Methods("GET")
	}

	return &Server{
		router: router,
		db:     db,
		logger: logger,
	}
}

func pingDatabase(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return nil
	}
	return db.PingContext(ctx)
}

// loggingMiddleware adds request logging
func loggingMiddleware(logger *slog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Create response wrapper to capture status code
			ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(ww, r)

			logger.Info("request completed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.statusCode,
				"duration", time.Since(start),
				"user_agent", r.UserAgent(),
			)
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Start starts the HTTP server on the specified port
func (s *Server) Start(port string) (string, error) {
	// Create listener first to get actual port
	listener, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return "", err
	}

	addr := listener.Addr().(*net.TCPAddr)
	s.port = strconv.Itoa(addr.Port)

	s.server = &http.Server{
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("Starting server", "port", s.port)

	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.logger.Error("Server failed to start", "error", err)
		}
	}()

	return s.port, nil
}

// Stop gracefully shuts down the server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down server")

	var err error
	if s.server != nil {
		err = s.server.Shutdown(ctx)
	}

	// Close database connection once requests have drained
	if closeErr := s.db.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}

// GetPort returns the port the server is listening on
func (s *Server) GetPort() string {
	return s.port
}

// GetBaseURL returns the base URL for the server
func (s *Server) GetBaseURL() string {
	return "http://localhost:" + s.port
}

// GetRouter returns the router for testing purposes
func (s *Server) GetRouter() *mux.Router {
	return s.router
}

// StartServer wires the services from cfg and starts the server
func StartServer(cfg *config.Config) (*Server, string, error) {
	var logger *slog.Logger
	if cfg.ServerPort == "0" {
		// Test environment - use discard logger
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	} else {
		logger = app.NewLogger(cfg)
	}

	var srv *Server
	injector := app.BootstrapServices(cfg, logger)
	if err := injector(func(bank *service.Bank[uint64], registry *prometheus.Registry, db *app.Database) {
		srv = NewServer(bank, registry, db, logger)
	}); err != nil {
		return nil, "", err
	}

	port, err := srv.Start(cfg.ServerPort)
	if err != nil {
		return nil, "", err
	}

	return srv, port, nil
}
