package customer

import (
	"net/http"

	"github.com/noah-isme/backend-editions/internal/common"
)

// Handler exposes REST endpoints for customers.
type Handler struct {
	Service      *Service
	DefaultLimit int
	MaxLimit     int
}

// List handles GET /api/v1/customers.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, err := common.ParsePageParams(r, h.DefaultLimit, h.MaxLimit)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	result, err := h.Service.List(r.Context(), common.QueryString(r, "q"), page)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, result)
}

// Get handles GET /api/v1/customers/{customerID}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := common.URLParamID(r, "customerID")
	if err != nil {
		common.WriteError(w, err)
		return
	}
	c, err := h.Service.Get(r.Context(), id)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, c)
}

// Create handles POST /api/v1/customers.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in CreateInput
	if err := common.DecodeJSON(r, &in); err != nil {
		common.WriteError(w, err)
		return
	}
	c, err := h.Service.Create(r.Context(), in)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, c)
}

// Update handles PATCH /api/v1/customers/{customerID}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := common.URLParamID(r, "customerID")
	if err != nil {
		common.WriteError(w, err)
		return
	}
	var in UpdateInput
	if err := common.DecodeJSON(r, &in); err != nil {
		common.WriteError(w, err)
		return
	}
	c, err := h.Service.Update(r.Context(), id, in)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, c)
}

// Delete handles DELETE /api/v1/customers/{customerID}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := common.URLParamID(r, "customerID")
	if err != nil {
		common.WriteError(w, err)
		return
	}
	if err := h.Service.Delete(r.Context(), id); err != nil {
		common.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
