package editioningredient

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/noah-isme/backend-editions/internal/common"
)

// Handler exposes REST endpoints for edition ingredient ledgers.
type Handler struct {
	Service         *Service
	Reconciler      *Reconciler
	DefaultLimit    int
	MaxLimit        int
	DefaultStrategy Strategy
	DefaultMode     Mode
}

// ReconcileRequest is the body of POST /api/v1/edition_ingredients/{editionID}.
type ReconcileRequest struct {
	IngredientID int64    `json:"ingredient_id" validate:"required,gt=0"`
	Quantity     *float64 `json:"quantity" validate:"required,gte=0"`
	UnitPrice    *float64 `json:"unit_price" validate:"omitempty,gte=0"`
	Notes        *string  `json:"notes"`
}

func queryCategories(r *http.Request) []string {
	var out []string
	for _, raw := range r.URL.Query()["categories"] {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, editionID *int64) {
	page, err := common.ParsePageParams(r, h.DefaultLimit, h.MaxLimit)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	result, err := h.Service.List(r.Context(), ListParams{
		EditionID:  editionID,
		Query:      common.QueryString(r, "q"),
		Categories: queryCategories(r),
		Page:       page,
	})
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, result)
}

// ListAll handles GET /api/v1/edition_ingredients.
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, nil)
}

// ListForEdition handles GET /api/v1/edition_ingredients/{editionID}.
func (h *Handler) ListForEdition(w http.ResponseWriter, r *http.Request) {
	editionID, err := common.URLParamID(r, "editionID")
	if err != nil {
		common.WriteError(w, err)
		return
	}
	h.list(w, r, &editionID)
}

func (h *Handler) strategyAndMode(r *http.Request) (Strategy, Mode, error) {
	strategy, mode := h.DefaultStrategy, h.DefaultMode
	if strategy == 0 {
		strategy = StrategySum
	}
	if mode == "" {
		mode = ModeIndependent
	}
	if raw := common.QueryString(r, "strategy"); raw != nil {
		s, ok := ParseStrategy(*raw)
		if !ok {
			return 0, "", common.Validation("invalid strategy", map[string]string{"strategy": "oneof sum replace reject"})
		}
		strategy = s
	}
	if raw := common.QueryString(r, "mode"); raw != nil {
		m, ok := ParseMode(*raw)
		if !ok {
			return 0, "", common.Validation("invalid mode", map[string]string{"mode": "oneof independent joined"})
		}
		mode = m
	}
	return strategy, mode, nil
}

// Reconcile handles POST /api/v1/edition_ingredients/{editionID}?strategy=&mode=.
func (h *Handler) Reconcile(w http.ResponseWriter, r *http.Request) {
	editionID, err := common.URLParamID(r, "editionID")
	if err != nil {
		common.WriteError(w, err)
		return
	}
	strategy, mode, err := h.strategyAndMode(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	var req ReconcileRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, err)
		return
	}
	if err := common.ValidateStruct(req); err != nil {
		common.WriteError(w, err)
		return
	}
	in := ReconcileInput{
		EditionID:    editionID,
		IngredientID: req.IngredientID,
		Quantity:     *req.Quantity,
		UnitPrice:    req.UnitPrice,
		Notes:        req.Notes,
		Strategy:     strategy,
	}

	var detail Detail
	if mode == ModeJoined {
		detail, err = h.reconcileJoined(r.Context(), in)
	} else {
		detail, err = h.Reconciler.Reconcile(r.Context(), Independent(), in)
	}
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, detail)
}

// reconcileJoined opens a request transaction, reconciles inside it as a savepoint and
// commits. A reject conflict still commits so the recorded purchase is kept.
func (h *Handler) reconcileJoined(ctx context.Context, in ReconcileInput) (Detail, error) {
	if h.Reconciler == nil || h.Reconciler.Pool == nil {
		return Detail{}, errors.New("edition ingredient reconciler not configured")
	}
	tx, err := h.Reconciler.Pool.Begin(ctx)
	if err != nil {
		return Detail{}, common.Internal(err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()
	detail, err := h.Reconciler.Reconcile(ctx, Joined(tx), in)
	if err != nil && !errors.Is(err, ErrAlreadyAdded) {
		return Detail{}, err
	}
	if cerr := tx.Commit(ctx); cerr != nil {
		return Detail{}, common.Internal(cerr)
	}
	return detail, err
}

// Get handles GET /api/v1/edition_ingredients/entries/{entryID}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := common.URLParamID(r, "entryID")
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

// Update handles PATCH /api/v1/edition_ingredients/entries/{entryID}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := common.URLParamID(r, "entryID")
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

// Delete handles DELETE /api/v1/edition_ingredients/entries/{entryID}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := common.URLParamID(r, "entryID")
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
