// internal/api/handler.go
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github-profile-analyzer/internal/analyzer"
	custom_errors "github-profile-analyzer/internal/errors"
	"github-profile-analyzer/internal/model"
	"github-profile-analyzer/internal/validation"
)

// ProfileService is the subset of *analyzer.Service used by the HTTP layer.
type ProfileService interface {
	GetProfile(ctx context.Context, username string, forceRefresh bool) (*analyzer.ProfileResult, error)
	GetStats(ctx context.Context, username string) (*model.AnalysisResult, error)
	GetLanguages(ctx context.Context, username string) (*analyzer.LanguageBreakdown, error)
	ClearCache(ctx context.Context, username string) error
	ListAnalyzedUsers(ctx context.Context, page, limit int) (*analyzer.UserPage, error)
}

// Options configures the router's middleware.
type Options struct {
	CORSAllowedOrigins []string
	RateLimitRequests  int
	RateLimitWindow    time.Duration
}

// Handler is the container for API dependencies.
type Handler struct {
	svc     ProfileService
	logger  *slog.Logger
	started time.Time
}

// NewRouter creates and configures a new chi router with all API routes.
func NewRouter(svc ProfileService, logger *slog.Logger, opts Options) http.Handler {
	h := &Handler{
		svc:     svc,
		logger:  logger,
		started: time.Now(),
	}

	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(securityHeaders)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsHandler(opts.CORSAllowedOrigins))
	r.Use(rateLimit(opts.RateLimitRequests, opts.RateLimitWindow))

	r.NotFound(h.notFound)
	r.MethodNotAllowed(h.notFound)

	r.Get("/health", h.healthCheck)
	r.Get("/", h.index)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/github", func(r chi.Router) {
		r.Route("/profile/{username}", func(r chi.Router) {
			r.Use(h.validateUsername)
			r.With(cacheControl(300)).Get("/", h.getProfile)
			r.With(cacheControl(600)).Get("/stats", h.getStats)
			r.With(cacheControl(600)).Get("/languages", h.getLanguages)
			r.Delete("/cache", h.clearCache)
		})
		r.With(cacheControl(120)).Get("/users/analyzed", h.listAnalyzedUsers)
	})

	return r
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeEnvelope(w, http.StatusOK, envelope{
		Success: true,
		Data: map[string]any{
			"status": "OK",
			"uptime": time.Since(h.started).Seconds(),
		},
		Meta: withTimestamp(nil),
	})
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]any{
		"message": "GitHub Profile Analyzer API",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"profile":       "/api/github/profile/:username",
			"stats":         "/api/github/profile/:username/stats",
			"languages":     "/api/github/profile/:username/languages",
			"clearCache":    "DELETE /api/github/profile/:username/cache",
			"analyzedUsers": "/api/github/users/analyzed",
			"metrics":       "/metrics",
		},
	}, nil)
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.logger.Warn("Route not found", "url", r.URL.RequestURI(), "method", r.Method, "ip", r.RemoteAddr)
	respondWithError(w, r, http.StatusNotFound, "Route "+r.URL.RequestURI()+" not found")
}

// GET /api/github/profile/{username}?forceRefresh=true
func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	forceRefresh := r.URL.Query().Get("forceRefresh") == "true"

	res, err := h.svc.GetProfile(r.Context(), username, forceRefresh)
	if err != nil {
		h.fail(w, r, "Failed to get profile", username, err)
		return
	}

	respondWithJSON(w, http.StatusOK, res, map[string]any{
		"username": username,
		"cached":   res.Cached,
	})
}

// GET /api/github/profile/{username}/stats
func (h *Handler) getStats(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	stats, err := h.svc.GetStats(r.Context(), username)
	if err != nil {
		h.fail(w, r, "Failed to get stats", username, err)
		return
	}

	respondWithJSON(w, http.StatusOK, stats, map[string]any{"username": username})
}

// GET /api/github/profile/{username}/languages
func (h *Handler) getLanguages(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	langs, err := h.svc.GetLanguages(r.Context(), username)
	if err != nil {
		h.fail(w, r, "Failed to get languages", username, err)
		return
	}

	respondWithJSON(w, http.StatusOK, langs, map[string]any{"username": username})
}

// DELETE /api/github/profile/{username}/cache
func (h *Handler) clearCache(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	if err := h.svc.ClearCache(r.Context(), username); err != nil {
		h.fail(w, r, "Failed to clear cache", username, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"message": "Cache cleared for user: " + model.NormalizeUsername(username),
	}, map[string]any{"username": username})
}

// GET /api/github/users/analyzed?page=N&limit=N
func (h *Handler) listAnalyzedUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p, err := validation.ParsePagination(q.Get("page"), q.Get("limit"))
	if err != nil {
		respondWithError(w, r, http.StatusBadRequest, custom_errors.Message(err))
		return
	}

	page, err := h.svc.ListAnalyzedUsers(r.Context(), p.Page, p.Limit)
	if err != nil {
		h.fail(w, r, "Failed to list analyzed users", "", err)
		return
	}

	respondWithJSON(w, http.StatusOK, page, map[string]any{
		"page":  p.Page,
		"limit": p.Limit,
	})
}

// fail logs err and writes the error envelope with the status for its kind.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, msg, username string, err error) {
	status := statusFor(err)
	logger := h.logger.With("request_id", middleware.GetReqID(r.Context()), "status", status)
	if username != "" {
		logger = logger.With("username", username)
	}
	if status >= http.StatusInternalServerError {
		logger.Error(msg, "error", err)
	} else {
		logger.Warn(msg, "error", err)
	}
	respondWithError(w, r, status, custom_errors.Message(err))
}
