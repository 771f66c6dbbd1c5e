package chi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/kailas-cloud/softhub/internal/domain"
)

// maxBodyBytes caps admin request bodies.
const maxBodyBytes = 1 << 20

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return errors.New("invalid JSON body")
	}
	return nil
}

// Login handles POST /api/v1/admin/login.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if req.Email == "" || req.Password == "" {
		writeBadRequest(w, "email and password are required")
		return
	}

	sess, err := s.admins.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sessionToResponse(sess))
}

// Logout handles POST /api/v1/admin/logout.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		s.handleDomainError(w, domain.ErrUnauthorized)
		return
	}

	if err := s.admins.Logout(r.Context(), claims); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AdminStats handles GET /api/v1/admin/stats.
func (s *Server) AdminStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.software.Stats(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, statsToResponse(st))
}

// AdminListSoftware handles GET /api/v1/admin/software.
func (s *Server) AdminListSoftware(w http.ResponseWriter, r *http.Request) {
	params, err := bindAdminListParams(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	recs, err := s.software.List(r.Context(), deref(params.Search))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, SoftwareList{
		Items: softwareListToResponse(recs),
		Total: len(recs),
	})
}

// CreateSoftware handles POST /api/v1/admin/software.
func (s *Server) CreateSoftware(w http.ResponseWriter, r *http.Request) {
	var in SoftwareInput
	if err := decodeBody(w, r, &in); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	rec, err := s.software.Create(r.Context(), in.toFields())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.Header().Set("Location", "/api/v1/software/"+rec.ID())
	writeJSON(w, http.StatusCreated, softwareToResponse(rec))
}

// UpdateSoftware handles PUT /api/v1/admin/software/{id}.
func (s *Server) UpdateSoftware(w http.ResponseWriter, r *http.Request) {
	id, err := bindID(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	var in SoftwareInput
	if err := decodeBody(w, r, &in); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	rec, err := s.software.Update(r.Context(), id, in.toFields())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, softwareToResponse(rec))
}

// DeleteSoftware handles DELETE /api/v1/admin/software/{id}.
func (s *Server) DeleteSoftware(w http.ResponseWriter, r *http.Request) {
	id, err := bindID(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	if err := s.software.Delete(r.Context(), id); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
