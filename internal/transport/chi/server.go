package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/softhub/internal/domain"
	"github.com/kailas-cloud/softhub/internal/domain/catalog/query"
	adminuc "github.com/kailas-cloud/softhub/internal/usecase/admin"
	cataloguc "github.com/kailas-cloud/softhub/internal/usecase/catalog"
	healthuc "github.com/kailas-cloud/softhub/internal/usecase/health"
	softwareuc "github.com/kailas-cloud/softhub/internal/usecase/software"
)

// Error codes returned in ErrorResponse.Code.
const (
	codeBadRequest          = "bad_request"
	codeInvalidQuery        = "invalid_query"
	codeValidationFailed    = "validation_failed"
	codeInvalidCredentials  = "invalid_credentials"
	codeUnauthorized        = "unauthorized"
	codeNotFound            = "software_not_found"
	codeDownloadUnavailable = "download_unavailable"
	codeAlreadyExists       = "already_exists"
	codeTooManyAttempts     = "too_many_attempts"
	codeInternalError       = "internal_error"
)

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the public catalog and admin HTTP API.
type Server struct {
	catalog       *cataloguc.Service
	software      *softwareuc.Service
	admins        *adminuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	limits        query.Limits
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	catalog *cataloguc.Service,
	software *softwareuc.Service,
	admins *adminuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		catalog:  catalog,
		software: software,
		admins:   admins,
		health:   health,
		logger:   logger,
		limits:   query.DefaultLimits(),
	}
	s.errorHandlers = []errorHandler{
		validationHandler,
		sentinelHandler(domain.ErrInvalidSpec, http.StatusBadRequest, codeInvalidQuery),
		sentinelHandler(domain.ErrInvalidCredentials, http.StatusUnauthorized, codeInvalidCredentials),
		sentinelHandler(domain.ErrUnauthorized, http.StatusUnauthorized, codeUnauthorized),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(domain.ErrDownloadUnavailable, http.StatusNotFound, codeDownloadUnavailable),
		sentinelHandler(domain.ErrAlreadyExists, http.StatusConflict, codeAlreadyExists),
		sentinelHandler(domain.ErrTooManyAttempts, http.StatusTooManyRequests, codeTooManyAttempts),
	}
	return s
}

// WithPagination overrides the default and maximum catalog page sizes.
func (s *Server) WithPagination(defaultSize, maxSize int) *Server {
	if defaultSize > 0 {
		s.limits.DefaultPageSize = defaultSize
	}
	if maxSize > 0 {
		s.limits.MaxPageSize = maxSize
	}
	return s
}

// Routes mounts the API on r. Admin routes except login require a Bearer token.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/software", s.BrowseSoftware)
		r.Get("/software/{id}", s.GetSoftware)
		r.Get("/software/{id}/download", s.DownloadSoftware)
		r.Get("/featured", s.ListFeatured)
		r.Get("/categories", s.ListCategories)

		r.Route("/admin", func(r chi.Router) {
			r.Use(BearerAuthMiddleware(s.admins))
			r.Post("/login", s.Login)
			r.Post("/logout", s.Logout)
			r.Get("/stats", s.AdminStats)
			r.Get("/software", s.AdminListSoftware)
			r.Post("/software", s.CreateSoftware)
			r.Put("/software/{id}", s.UpdateSoftware)
			r.Delete("/software/{id}", s.DeleteSoftware)
		})
	})
}

// Handler returns a router with middlewares applied, the API mounted and
// JSON responses for unknown routes.
func (s *Server) Handler(middlewares ...func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middlewares...)
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "route_not_found", "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, codeBadRequest, "method not allowed")
	})
	s.Routes(r)
	return r
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status:   string(report.Status),
		Checks:   checks,
		Listings: report.Listings,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeError(w, http.StatusBadRequest, codeBadRequest, message)
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidSpec,
		domain.ErrValidation,
		domain.ErrInvalidCredentials,
		domain.ErrUnauthorized,
		domain.ErrNotFound,
		domain.ErrDownloadUnavailable,
		domain.ErrAlreadyExists,
		domain.ErrTooManyAttempts,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// validationHandler reports the offending form field alongside ErrValidation.
func validationHandler(w http.ResponseWriter, err error, msg string) bool {
	if !errors.Is(err, domain.ErrValidation) {
		return false
	}
	var fe *domain.FieldError
	if errors.As(err, &fe) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Code:    codeValidationFailed,
			Message: fe.Error(),
			Field:   fe.Field,
		})
		return true
	}
	writeError(w, http.StatusBadRequest, codeValidationFailed, msg)
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
