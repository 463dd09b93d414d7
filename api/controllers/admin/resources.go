package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/vibeoutfit-backend/api/responses"
	"github.com/angelmondragon/vibeoutfit-backend/api/validators"
	adminsvc "github.com/angelmondragon/vibeoutfit-backend/internal/admin"
	pkgerrors "github.com/angelmondragon/vibeoutfit-backend/pkg/errors"
	"github.com/angelmondragon/vibeoutfit-backend/pkg/logger"
	"github.com/angelmondragon/vibeoutfit-backend/pkg/pagination"
)

const maxSearchLength = 100

var reservedListParams = map[string]struct{}{
	"page":      {},
	"page_size": {},
	"q":         {},
	"is_active": {},
}

// MountResource registers list/get/create/update/delete for one admin resource.
func MountResource[C, U, D any](r chi.Router, res adminsvc.Resource[C, U, D], logg *logger.Logger) {
	r.Get("/", ListResource(res, logg))
	r.Post("/", CreateResource(res, logg))
	r.Get("/{id}", GetResource(res, logg))
	r.Patch("/{id}", UpdateResource(res, logg))
	r.Delete("/{id}", DeleteResource(res, logg))
}

func ListResource[C, U, D any](res adminsvc.Resource[C, U, D], logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if res == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin resource unavailable"))
			return
		}
		query, err := parseListQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		list, err := res.List(r.Context(), query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func GetResource[C, U, D any](res adminsvc.Resource[C, U, D], logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if res == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin resource unavailable"))
			return
		}
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		item, err := res.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

func CreateResource[C, U, D any](res adminsvc.Resource[C, U, D], logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if res == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin resource unavailable"))
			return
		}
		var body C
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		item, err := res.Create(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

func UpdateResource[C, U, D any](res adminsvc.Resource[C, U, D], logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if res == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin resource unavailable"))
			return
		}
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body U
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		item, err := res.Update(r.Context(), id, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

func DeleteResource[C, U, D any](res adminsvc.Resource[C, U, D], logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if res == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin resource unavailable"))
			return
		}
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := res.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// parseListQuery reads page, page_size, q and is_active; every other query
// value is handed to the resource as a filter.
func parseListQuery(r *http.Request) (adminsvc.ListQuery, error) {
	page, err := validators.ParseQueryInt(r, "page", 1, 1, 1<<20)
	if err != nil {
		return adminsvc.ListQuery{}, err
	}
	size, err := validators.ParseQueryInt(r, "page_size", 0, 0, pagination.MaxLimit)
	if err != nil {
		return adminsvc.ListQuery{}, err
	}
	active, err := validators.ParseQueryBool(r, "is_active")
	if err != nil {
		return adminsvc.ListQuery{}, err
	}

	filters := map[string]string{}
	for key, values := range r.URL.Query() {
		if _, reserved := reservedListParams[key]; reserved || len(values) == 0 {
			continue
		}
		filters[key] = values[0]
	}

	return adminsvc.ListQuery{
		Page:     page,
		PageSize: size,
		Search:   validators.SanitizeString(r.URL.Query().Get("q"), maxSearchLength),
		IsActive: active,
		Filters:  filters,
	}, nil
}
