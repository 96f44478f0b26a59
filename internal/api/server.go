package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/xtding233/gacha-tracker/internal/api/response"
	"github.com/xtding233/gacha-tracker/internal/stats"
)

// Config holds HTTP-level settings.
type Config struct {
	RateLimit      float64  // requests per second across all clients; <= 0 disables
	RateBurst      int      // burst size for RateLimit
	MaxBodyBytes   int64    // request body cap
	AllowedOrigins []string // CORS origins for the UI
}

// DefaultConfig returns the default API configuration.
func DefaultConfig() Config {
	return Config{
		RateLimit:      20,
		RateBurst:      40,
		MaxBodyBytes:   32 << 20,
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*", "tauri://localhost"},
	}
}

// Server exposes the analytics over HTTP.
type Server struct {
	router  *chi.Mux
	svc     *stats.Service
	cfg     Config
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewServer wires middleware and routes.
func NewServer(svc *stats.Service, cfg Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	if cfg.RateBurst <= 0 {
		cfg.RateBurst = 1
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultConfig().MaxBodyBytes
	}
	s := &Server{
		router:  chi.NewRouter(),
		svc:     svc,
		cfg:     cfg,
		limiter: rate.NewLimiter(limit, cfg.RateBurst),
		logger:  logger,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))
	s.router.Use(s.rateLimit)
	s.router.Use(s.jsonContentType)
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.health)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Post("/report", s.report)
		r.Post("/banners/{bannerID}", s.banner)
		r.Post("/banners/{bannerID}/forecast", s.forecast)
		r.Post("/banners/{bannerID}/topup", s.topUp)
		r.Post("/pools/{pool}/pity", s.pool)
		r.Get("/rewards/next", s.nextReward)
		r.Get("/shop/budget", s.budget)
	})
}

// requestLogger logs one line per request through slog.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			response.TooManyRequests(w, errors.New("rate limit exceeded"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// jsonContentType enforces application/json on POST bodies.
func (s *Server) jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && r.ContentLength != 0 {
			ct := r.Header.Get("Content-Type")
			if ct != "application/json" && !strings.HasPrefix(ct, "application/json;") {
				response.Error(w, http.StatusUnsupportedMediaType, errors.New("content-type must be application/json"))
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
