package server

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agridesk/fieldbook/internal/alert"
	"github.com/agridesk/fieldbook/internal/dashboard"
	"github.com/agridesk/fieldbook/internal/handler"
	"github.com/agridesk/fieldbook/internal/logger"
	"github.com/agridesk/fieldbook/internal/metrics"
	"github.com/agridesk/fieldbook/internal/records"
	"github.com/agridesk/fieldbook/internal/repository"
	"github.com/agridesk/fieldbook/internal/stock"
	syncpkg "github.com/agridesk/fieldbook/internal/sync"
	"github.com/agridesk/fieldbook/internal/usage"
)

// Services bundles everything the router needs
type Services struct {
	Stock     stock.Service
	Usage     usage.Service
	Alerts    alert.Service
	Sync      syncpkg.Service
	Dashboard dashboard.Service
	Records   records.Service
	Farms     repository.Farms
}

type Server struct {
	httpServer *http.Server
	db         *sql.DB
	services   Services
}

// NewServer creates a new Server instance
func NewServer(port int, db *sql.DB, services Services) *Server {
	r := chi.NewRouter()

	// Middleware stack, outermost first
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestSize(MaxRequestBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(db))

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Farm routes
		r.Route("/farms", func(r chi.Router) {
			r.Post("/", handler.HandleCreateFarm(services.Farms))

			r.Route("/{farmID}", func(r chi.Router) {
				r.Get("/", handler.HandleGetFarm(services.Farms))
				r.Get("/dashboard", handler.HandleDashboard(services.Dashboard))

				// Inventory item routes
				r.Route("/items", func(r chi.Router) {
					r.Post("/", handler.HandleCreateItem(services.Stock))
					r.Get("/", handler.HandleListItems(services.Stock))
					r.Get("/{itemID}", handler.HandleGetItem(services.Stock))
					r.Put("/{itemID}", handler.HandleUpdateItem(services.Stock))
					r.Get("/{itemID}/movements", handler.HandleListMovements(services.Stock))
				})

				// Stock ledger routes
				r.Route("/stock", func(r chi.Router) {
					r.Get("/", handler.HandleCurrentStockAll(services.Stock))
					r.Post("/movements", handler.HandleRecordMovement(services.Stock))
					r.Get("/{itemID}", handler.HandleCurrentStock(services.Stock))
				})

				// Plot and crop routes
				r.Route("/plots", func(r chi.Router) {
					r.Post("/", handler.HandleCreatePlot(services.Records))
					r.Get("/", handler.HandleListPlots(services.Records))
				})
				r.Route("/crops", func(r chi.Router) {
					r.Post("/", handler.HandleCreateCrop(services.Records))
					r.Get("/", handler.HandleListActiveCrops(services.Records))
					r.Get("/{cropID}", handler.HandleGetCrop(services.Records))
					r.Put("/{cropID}", handler.HandleUpdateCrop(services.Records))
				})

				// Expense and supplier routes
				r.Route("/expenses", func(r chi.Router) {
					r.Post("/", handler.HandleCreateExpense(services.Records))
				})
				r.Route("/suppliers", func(r chi.Router) {
					r.Post("/", handler.HandleCreateSupplier(services.Records))
					r.Get("/", handler.HandleListSuppliers(services.Records))
				})

				// Field usage routes
				r.Route("/usage", func(r chi.Router) {
					r.Post("/", handler.HandleRecordUsage(services.Usage))
					r.Get("/", handler.HandleListUsage(services.Usage))
				})

				// Alert routes
				r.Route("/alerts", func(r chi.Router) {
					r.Get("/", handler.HandleListRecentAlerts(services.Alerts))
					r.Get("/unread", handler.HandleListUnreadAlerts(services.Alerts))
					r.Get("/unread/count", handler.HandleCountUnreadAlerts(services.Alerts))
					r.Post("/check", handler.HandleCheckAlerts(services.Alerts))
				})

				// Sync visibility routes
				r.Route("/sync", func(r chi.Router) {
					r.Get("/status", handler.HandleSyncStatus(services.Sync))
					r.Get("/pending", handler.HandleListPending(services.Sync))
				})
			})
		})

		// Alert state transitions are keyed by alert, not farm
		r.Post("/alerts/{alertID}/read", handler.HandleMarkAlertRead(services.Alerts))

		// Sync engine routes
		r.Route("/sync", func(r chi.Router) {
			r.Post("/drain", handler.HandleDrain(services.Sync))
			r.Post("/conflicts/resolve", handler.HandleResolveConflict(services.Sync))
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + strconv.Itoa(port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		db:       db,
		services: services,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		// Use HasPrefix to catch potential variations (e.g. /healthz/)
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		// Generate unique request ID
		requestID := logger.GenerateRequestID()

		// Add request ID to context
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		// Get scoped logger
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		// Wrap response writer to capture status code
		rw := newResponseWriter(w)

		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
