package plugin

import (
	"errors"
	"net/http"

	"researchpub/internal/httpx"
)

type HTTPHandler struct {
	registry *Registry
}

func NewHTTPHandler(registry *Registry) *HTTPHandler {
	return &HTTPHandler{registry: registry}
}

// ContentType handles GET /v1/types/{name}
func (h *HTTPHandler) ContentType(w http.ResponseWriter, r *http.Request) {
	d, err := h.registry.ContentType(r.PathValue("name"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Content type not registered", nil)
			return
		}
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSONSuccess(w, r, d, nil)
}

// FieldGroup handles GET /v1/field-groups/{key}
func (h *HTTPHandler) FieldGroup(w http.ResponseWriter, r *http.Request) {
	g, err := h.registry.FieldGroup(r.PathValue("key"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Field group not registered", nil)
			return
		}
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSONSuccess(w, r, g, nil)
}
