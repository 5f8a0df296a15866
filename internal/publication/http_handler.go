package publication

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"researchpub/internal/fields"
	"researchpub/internal/httpx"
	"researchpub/internal/posttype"
)

// ContentTypes resolves REST bases to registered content types.
type ContentTypes interface {
	Route(base string) (string, bool)
	ContentType(name string) (posttype.Descriptor, error)
}

type HTTPHandler struct {
	service *Service
	types   ContentTypes
}

func NewHTTPHandler(service *Service, types ContentTypes) *HTTPHandler {
	return &HTTPHandler{service: service, types: types}
}

// descriptor resolves the {base} path value. It writes a 404 and returns
// false when the base does not belong to research publications.
func (h *HTTPHandler) descriptor(w http.ResponseWriter, r *http.Request) (posttype.Descriptor, bool) {
	name, ok := h.types.Route(r.PathValue("base"))
	if !ok || name != posttype.Name {
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Route not found", nil)
		return posttype.Descriptor{}, false
	}
	d, err := h.types.ContentType(name)
	if err != nil {
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Route not found", nil)
		return posttype.Descriptor{}, false
	}
	return d, true
}

// writeError maps service errors onto responses.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *fields.ValidationError
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Publication not found", nil)
	case errors.Is(err, ErrVariantImmutable):
		httpx.JSONError(w, r, http.StatusConflict, "CONFLICT", err.Error(), nil)
	case errors.Is(err, ErrUnknownAuthor):
		httpx.JSONError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid input",
			[]httpx.ErrorDetail{{Field: fields.KeyAuthors, Message: err.Error()}})
	case errors.As(err, &verr):
		details := make([]httpx.ErrorDetail, 0, len(verr.Violations))
		for _, v := range verr.Violations {
			details = append(details, httpx.ErrorDetail{Field: v.Field, Message: v.Message})
		}
		httpx.JSONError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid input", details)
	default:
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}

// List handles GET /v1/{base}
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.descriptor(w, r); !ok {
		return
	}
	query := r.URL.Query()

	params := Query{
		Variant: Variant(query.Get("type")),
		Q:       query.Get("q"),
	}
	if params.Variant != "" && !params.Variant.Known() {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Unknown publication type", nil)
		return
	}

	page, _ := strconv.Atoi(query.Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(query.Get("page_size"))
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	params.Limit = pageSize
	params.Offset = (page - 1) * pageSize

	pubs, total, err := h.service.List(r.Context(), params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.JSONSuccess(w, r, pubs, map[string]any{
		"page":        page,
		"page_size":   pageSize,
		"total":       total,
		"total_pages": (total + pageSize - 1) / pageSize,
	})
}

// Get handles GET /v1/{base}/{id}
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.descriptor(w, r); !ok {
		return
	}
	p, err := h.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, p, nil)
}

// Markup handles GET /v1/{base}/{id}/markup
func (h *HTTPHandler) Markup(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.descriptor(w, r); !ok {
		return
	}
	html, err := h.service.Render(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.HTMLFragment(w, html)
}

func decode(w http.ResponseWriter, r *http.Request) (Publication, bool) {
	var p Publication
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid JSON body", nil)
		return Publication{}, false
	}
	if details := httpx.ValidateStruct(p); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid input", details)
		return Publication{}, false
	}
	return p, true
}

// Create handles POST /v1/{base}
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.descriptor(w, r); !ok {
		return
	}
	p, ok := decode(w, r)
	if !ok {
		return
	}
	if err := h.service.Create(r.Context(), &p); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSONSuccessCreated(w, r, p)
}

// Update handles PUT /v1/{base}/{id}
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.descriptor(w, r); !ok {
		return
	}
	p, ok := decode(w, r)
	if !ok {
		return
	}
	p.ID = r.PathValue("id")
	if err := h.service.Update(r.Context(), &p); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, p, nil)
}

// Delete handles DELETE /v1/{base}/{id}
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.descriptor(w, r); !ok {
		return
	}
	if err := h.service.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSONSuccessNoContent(w)
}

// Revisions handles GET /v1/{base}/{id}/revisions
func (h *HTTPHandler) Revisions(w http.ResponseWriter, r *http.Request) {
	d, ok := h.descriptor(w, r)
	if !ok {
		return
	}
	if !d.Has(posttype.SupportRevisions) {
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Revisions are not supported", nil)
		return
	}
	revs, err := h.service.Revisions(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, revs, nil)
}
