package chi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// BrowseParams are the query parameters of GET /api/v1/software.
type BrowseParams struct {
	Search   *string
	Category *string
	Sort     *string
	Order    *string
	Page     *int
	PageSize *int
}

// FeaturedParams are the query parameters of GET /api/v1/featured.
type FeaturedParams struct {
	Limit *int
}

// AdminListParams are the query parameters of GET /api/v1/admin/software.
type AdminListParams struct {
	Search *string
}

func bindQuery(r *http.Request, name string, dest any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), dest); err != nil {
		return fmt.Errorf("invalid format for parameter %s: %w", name, err)
	}
	return nil
}

func bindBrowseParams(r *http.Request) (BrowseParams, error) {
	var p BrowseParams
	bindings := []struct {
		name string
		dest any
	}{
		{"search", &p.Search},
		{"category", &p.Category},
		{"sort", &p.Sort},
		{"order", &p.Order},
		{"page", &p.Page},
		{"page_size", &p.PageSize},
	}
	for _, b := range bindings {
		if err := bindQuery(r, b.name, b.dest); err != nil {
			return BrowseParams{}, err
		}
	}
	return p, nil
}

func bindFeaturedParams(r *http.Request) (FeaturedParams, error) {
	var p FeaturedParams
	if err := bindQuery(r, "limit", &p.Limit); err != nil {
		return FeaturedParams{}, err
	}
	return p, nil
}

func bindAdminListParams(r *http.Request) (AdminListParams, error) {
	var p AdminListParams
	if err := bindQuery(r, "search", &p.Search); err != nil {
		return AdminListParams{}, err
	}
	return p, nil
}

// bindID reads the {id} path parameter.
func bindID(r *http.Request) (string, error) {
	var id string
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return "", fmt.Errorf("invalid format for parameter id: %w", err)
	}
	if id == "" {
		return "", errors.New("parameter id is required")
	}
	return id, nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
