// Package authapi exposes the identity core over HTTP: login, register,
// and current-tenant introspection. The CRUD surfaces of the wider
// application mount alongside it; this package only covers the
// credential endpoints.
package authapi

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/tenantkit/pkg/credentials"
	"github.com/dmitrymomot/tenantkit/pkg/tenant"
)

// Service wires the credential issuer into HTTP handlers.
type Service struct {
	issuer *credentials.Issuer
	log    *slog.Logger
}

// NewService creates the auth API service.
func NewService(issuer *credentials.Issuer, log *slog.Logger) *Service {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{issuer: issuer, log: log}
}

// Router returns the HTTP routes of the auth API. Mount behind the
// tenant resolution middleware so login picks up tenant-specific signing
// parameters.
func (s *Service) Router() http.Handler {
	r := chi.NewRouter()
	r.Post("/auth/login", s.login)
	r.Post("/auth/register", s.register)
	r.Get("/tenant", s.currentTenant)
	return r
}

type authRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Service) login(w http.ResponseWriter, r *http.Request) {
	var req authRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cred, err := s.issuer.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeAuthError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cred)
}

func (s *Service) register(w http.ResponseWriter, r *http.Request) {
	var req authRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cred, err := s.issuer.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeAuthError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, cred)
}

// currentTenant reports the tenant the request resolved to, or 204 when
// the request carries none (single-tenant deployments resolve always).
func (s *Service) currentTenant(w http.ResponseWriter, r *http.Request) {
	t, ok := tenant.FromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Service) writeAuthError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, credentials.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, credentials.ErrEmailAlreadyExists):
		writeError(w, http.StatusConflict, "email already exists")
	case errors.Is(err, credentials.ErrInvalidEmail),
		errors.Is(err, credentials.ErrWeakPassword):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		s.log.ErrorContext(r.Context(), "auth request failed", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
