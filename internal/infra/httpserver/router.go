package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/bryanwahyu/checkops/internal/application/console"
	"github.com/bryanwahyu/checkops/internal/application/dashboard"
	"github.com/bryanwahyu/checkops/internal/application/uploads"
	"github.com/bryanwahyu/checkops/internal/domain/screening"
	"github.com/bryanwahyu/checkops/internal/logger"
	"github.com/bryanwahyu/checkops/internal/middleware"
)

const defaultMaxUploadBytes = 10 << 20

type Services struct {
	Dashboard *dashboard.Service
	Console   *console.Service
	Uploads   *uploads.Service
}

type Options struct {
	Logger         logger.Logger
	Metrics        *middleware.Metrics      // optional
	RateLimiter    *middleware.RateLimiter  // optional
	HealthCheckers map[string]middleware.HealthChecker
	AllowedOrigins []string
	DefaultUser    string
	MaxUploadBytes int64
}

type Router struct {
	dashboard *dashboard.Service
	console   *console.Service
	uploads   *uploads.Service
	log       logger.Logger
	maxUpload int64
}

func NewRouter(svc Services, opts Options) http.Handler {
	r := &Router{
		dashboard: svc.Dashboard,
		console:   svc.Console,
		uploads:   svc.Uploads,
		log:       opts.Logger,
		maxUpload: opts.MaxUploadBytes,
	}
	if r.log == nil {
		r.log = logger.NewNop()
	}
	if r.maxUpload <= 0 {
		r.maxUpload = defaultMaxUploadBytes
	}

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	mux := chi.NewRouter()
	mux.Use(chimw.RequestID)
	mux.Use(chimw.Recoverer)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.UserHeader},
		MaxAge:         300,
	}))
	mux.Use(middleware.IdentifyUser(opts.DefaultUser))
	mux.Use(middleware.Logging(r.log))
	if opts.Metrics != nil {
		mux.Use(opts.Metrics.Middleware)
	}
	if opts.RateLimiter != nil {
		mux.Use(opts.RateLimiter.Middleware)
	}

	mux.Get("/health", middleware.LivenessHandler)
	mux.Get("/healthz", middleware.HealthHandler(opts.HealthCheckers))
	mux.Get("/readyz", middleware.ReadinessHandler)
	if opts.Metrics != nil {
		mux.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}

	mux.Route("/v1", func(rt chi.Router) {
		rt.Get("/dashboard", r.wrap(r.handleDashboard))

		rt.Get("/applicants", r.wrap(r.handleListApplicants))
		rt.Post("/applicants", r.wrap(r.handleAddApplicant))
		rt.Delete("/applicants/{id}", r.wrap(r.handleRemoveApplicant))

		rt.Get("/cases", r.wrap(r.handleCases))
		rt.Get("/benchmarks", r.wrap(r.handleBenchmarks))
		rt.Get("/verifications", r.wrap(r.handleVerifications))
		rt.Get("/delays", r.wrap(r.handleDelays))
		rt.Get("/alerts", r.wrap(r.handleAlerts))

		rt.Get("/history", r.wrap(r.handleListHistory))
		rt.Post("/history", r.wrap(r.handleRecordHistory))
		rt.Get("/recommendations", r.wrap(r.handleRecommendations))

		rt.Post("/what-if", r.wrap(r.handleWhatIf))
		rt.Post("/uploads", r.wrap(r.handleUpload))
		rt.Post("/console/query", r.wrap(r.handleConsoleQuery))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}
		var verr *screening.ValidationError
		switch {
		case errors.As(err, &verr), errors.Is(err, screening.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, screening.ErrNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, screening.ErrStorageUnavailable):
			writeError(w, http.StatusInternalServerError, screening.ErrStorageUnavailable.Error())
		case errors.Is(err, screening.ErrUpstream):
			r.log.WithError(err).Error("upstream failure", map[string]any{"path": req.URL.Path})
			writeError(w, http.StatusBadGateway, "upstream storage failed")
		default:
			r.log.WithError(err).Error("request failed", map[string]any{"path": req.URL.Path})
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	_ = writeJSON(w, status, map[string]string{"message": msg})
}

func decodeJSON(req *http.Request, v any) error {
	if err := json.NewDecoder(req.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: malformed JSON body: %v", screening.ErrInvalidInput, err)
	}
	return nil
}

func currentUser(req *http.Request) string {
	return middleware.GetUserFromContext(req.Context())
}
