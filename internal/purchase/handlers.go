package purchase

import (
	"net/http"

	"github.com/noah-isme/backend-editions/internal/common"
)

// Handler exposes REST endpoints for purchases.
type Handler struct {
	Service      *Service
	DefaultLimit int
	MaxLimit     int
}

// List handles GET /api/v1/purchases.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, err := common.ParsePageParams(r, h.DefaultLimit, h.MaxLimit)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	editionID, err := common.QueryInt64(r, "edition_id")
	if err != nil {
		common.WriteError(w, err)
		return
	}
	ingredientID, err := common.QueryInt64(r, "ingredient_id")
	if err != nil {
		common.WriteError(w, err)
		return
	}
	result, err := h.Service.List(r.Context(), ListParams{
		Search:       common.QueryString(r, "q"),
		EditionID:    editionID,
		IngredientID: ingredientID,
		Page:         page,
	})
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, result)
}

// Get handles GET /api/v1/purchases/{purchaseID}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := common.URLParamID(r, "purchaseID")
	if err != nil {
		common.WriteError(w, err)
		return
	}
	item, err := h.Service.Get(r.Context(), id)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, item)
}

// Create handles POST /api/v1/purchases.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in CreateInput
	if err := common.DecodeJSON(r, &in); err != nil {
		common.WriteError(w, err)
		return
	}
	item, err := h.Service.Create(r.Context(), in)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, item)
}

// Update handles PATCH /api/v1/purchases/{purchaseID}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := common.URLParamID(r, "purchaseID")
	if err != nil {
		common.WriteError(w, err)
		return
	}
	var in UpdateInput
	if err := common.DecodeJSON(r, &in); err != nil {
		common.WriteError(w, err)
		return
	}
	item, err := h.Service.Update(r.Context(), id, in)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, item)
}

// Delete handles DELETE /api/v1/purchases/{purchaseID}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := common.URLParamID(r, "purchaseID")
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
