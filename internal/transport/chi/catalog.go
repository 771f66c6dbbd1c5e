package chi

import (
	"net/http"

	"github.com/kailas-cloud/softhub/internal/domain/catalog/order"
	"github.com/kailas-cloud/softhub/internal/domain/catalog/query"
	"github.com/kailas-cloud/softhub/internal/domain/catalog/sortkey"
)

const maxFeaturedLimit = 50

// BrowseSoftware handles GET /api/v1/software.
func (s *Server) BrowseSoftware(w http.ResponseWriter, r *http.Request) {
	params, err := bindBrowseParams(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	spec, err := query.New(
		deref(params.Search),
		deref(params.Category),
		sortkey.Key(deref(params.Sort)),
		order.Direction(deref(params.Order)),
		deref(params.Page),
		deref(params.PageSize),
		s.limits,
	)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	res, err := s.catalog.Browse(r.Context(), spec)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, pageToResponse(res))
}

// GetSoftware handles GET /api/v1/software/{id}.
func (s *Server) GetSoftware(w http.ResponseWriter, r *http.Request) {
	id, err := bindID(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	rec, err := s.catalog.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, softwareToResponse(rec))
}

// DownloadSoftware handles GET /api/v1/software/{id}/download.
// It counts the download and redirects to the external file URL.
func (s *Server) DownloadSoftware(w http.ResponseWriter, r *http.Request) {
	id, err := bindID(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	target, err := s.catalog.Download(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	http.Redirect(w, r, target, http.StatusFound)
}

// ListFeatured handles GET /api/v1/featured.
func (s *Server) ListFeatured(w http.ResponseWriter, r *http.Request) {
	params, err := bindFeaturedParams(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	limit := min(deref(params.Limit), maxFeaturedLimit)
	recs, err := s.catalog.Featured(r.Context(), limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, SoftwareList{
		Items: softwareListToResponse(recs),
		Total: len(recs),
	})
}

// ListCategories handles GET /api/v1/categories.
func (s *Server) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.catalog.Categories(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, categoriesToResponse(cats))
}
