package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/neo84716/ro-data/internal/enchant"
	"github.com/neo84716/ro-data/internal/gacha"
	"github.com/neo84716/ro-data/internal/handler"
	"github.com/neo84716/ro-data/internal/logger"
	"github.com/neo84716/ro-data/internal/metrics"
	"github.com/neo84716/ro-data/internal/tracker"
)

// Options configures the HTTP surface
type Options struct {
	Port           int
	APIKey         string
	TrustedProxies []string
	Version        string
	MaxBodyBytes   int64
	RateLimit      int // requests per client per RateWindow
}

// Services are the backends the routes dispatch to
type Services struct {
	Gacha    gacha.Service
	Enchant  enchant.Service
	Tracker  tracker.Service
	ExpTable handler.ExpTable
	Store    handler.Pinger
}

type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance
func NewServer(opts Options, svc Services) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           NewRouter(opts, svc),
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
	}
}

// NewRouter builds the middleware stack and every route
func NewRouter(opts Options, svc Services) http.Handler {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}

	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector(opts.RateLimit)
	proxies := newProxySet(opts.TrustedProxies)

	r.Use(SecurityHeadersMiddleware())
	r.Use(loggingMiddleware)
	r.Use(AuthMiddleware(opts.APIKey, proxies, detector))
	r.Use(RateLimitMiddleware(proxies, detector))
	r.Use(RequestSizeLimitMiddleware(opts.MaxBodyBytes))
	r.Use(metrics.Middleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(svc.Store))
	r.Get("/version", handler.HandleVersion(opts.Version))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		gachaHandler := handler.NewGachaHandler(svc.Gacha)
		r.Route("/gacha", func(r chi.Router) {
			r.Get("/pools", gachaHandler.HandleListPools)
			r.Post("/pools", gachaHandler.HandleRegisterPool)
			r.Get("/pools/{poolID}", gachaHandler.HandleGetPool)
			r.Post("/sessions", gachaHandler.HandleCreateSession)
			r.Route("/sessions/{sessionID}", func(r chi.Router) {
				r.Get("/", gachaHandler.HandleGetSession)
				r.Post("/pull", gachaHandler.HandlePull)
				r.Post("/seek", gachaHandler.HandlePullUntil)
				r.Post("/reset", gachaHandler.HandleReset)
			})
		})

		enchantHandler := handler.NewEnchantHandler(svc.Enchant)
		r.Route("/enchant", func(r chi.Router) {
			r.Get("/profiles", enchantHandler.HandleListProfiles)
			r.Post("/sessions", enchantHandler.HandleCreateSession)
			r.Route("/sessions/{sessionID}", func(r chi.Router) {
				r.Get("/", enchantHandler.HandleGetSession)
				r.Post("/slots/{slotID}", enchantHandler.HandleEnchantSlot)
				r.Post("/all", enchantHandler.HandleEnchantAll)
				r.Post("/seek", enchantHandler.HandleSeekCombo)
				r.Post("/reset", enchantHandler.HandleReset)
			})
		})

		expHandler := handler.NewExpHandler(svc.Tracker, svc.ExpTable)
		r.Route("/exp", func(r chi.Router) {
			r.Get("/categories", expHandler.HandleCategories)
			r.Get("/required", expHandler.HandleRequired)
			r.Get("/accumulated", expHandler.HandleAccumulated)
			r.Post("/difference", expHandler.HandleDifference)
			r.Post("/resolve", expHandler.HandleResolve)
		})

		trackerHandler := handler.NewTrackerHandler(svc.Tracker)
		r.Route("/tracker", func(r chi.Router) {
			r.Post("/estimate", trackerHandler.HandleEstimate)
			r.Post("/hours-to-level", trackerHandler.HandleHoursToLevel)
			r.Get("/records", trackerHandler.HandleListRecords)
			r.Post("/records", trackerHandler.HandleSaveRecord)
			r.Delete("/records/{recordID}", trackerHandler.HandleDeleteRecord)
		})
	})

	return r
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
		statusCode:     http.StatusOK,
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

func quiet(path string) bool {
	for _, p := range QuietPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if quiet(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		ctx := logger.WithRequestID(r.Context(), logger.GenerateRequestID())
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start starts the server; it returns http.ErrServerClosed after Stop
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
