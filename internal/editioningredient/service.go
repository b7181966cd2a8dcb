// Package editioningredient maintains the per-edition ingredient ledger: reconciliation of
// purchases into ledger entries, single-entry maintenance and category cost summaries.
package editioningredient

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"

	"github.com/noah-isme/backend-editions/internal/common"
	"github.com/noah-isme/backend-editions/internal/db"
	dbgen "github.com/noah-isme/backend-editions/internal/db/gen"
	"github.com/noah-isme/backend-editions/internal/pricing"
)

// Store captures the pool-level queries used outside reconciliations.
type Store interface {
	GetEdition(ctx context.Context, id int64) (dbgen.Edition, error)
	GetEditionIngredient(ctx context.Context, id int64) (dbgen.EditionIngredient, error)
	GetEditionIngredientDetail(ctx context.Context, id int64) (dbgen.GetEditionIngredientDetailRow, error)
	UpdateEditionIngredient(ctx context.Context, arg dbgen.UpdateEditionIngredientParams) (dbgen.EditionIngredient, error)
	DeleteEditionIngredient(ctx context.Context, id int64) (int64, error)
	CountEditionIngredients(ctx context.Context, arg dbgen.CountEditionIngredientsParams) (int64, error)
	ListEditionIngredientDetails(ctx context.Context, arg dbgen.ListEditionIngredientDetailsParams) ([]dbgen.ListEditionIngredientDetailsRow, error)
	SumEditionIngredientsByCategory(ctx context.Context, arg dbgen.SumEditionIngredientsByCategoryParams) ([]dbgen.SumEditionIngredientsByCategoryRow, error)
	SumEditionIngredientSubtotals(ctx context.Context, arg dbgen.SumEditionIngredientSubtotalsParams) (float64, error)
	SumPurchaseTotals(ctx context.Context, editionID pgtype.Int8) (float64, error)
}

// UpdateInput patches a single ledger entry. Subtotal is recomputed when quantity or
// unit_price is supplied.
type UpdateInput struct {
	IngredientID *int64   `json:"ingredient_id" validate:"omitempty,gt=0"`
	Quantity     *float64 `json:"quantity" validate:"omitempty,gte=0"`
	UnitPrice    *float64 `json:"unit_price" validate:"omitempty,gte=0"`
	Notes        *string  `json:"notes"`
}

// Service serves ledger reads and single-entry maintenance.
type Service struct {
	Q      Store
	Logger *zerolog.Logger
}

var errNotConfigured = errors.New("edition ingredient service not configured")

func (s *Service) log() *zerolog.Logger {
	if s.Logger == nil {
		return &nopLogger
	}
	return s.Logger
}

// storageError logs a failed query with the ids it touched and wraps it with op.
func (s *Service) storageError(op string, err error, ids map[string]any) error {
	s.log().Error().Err(err).Str("op", op).Fields(ids).Msg("edition ingredient storage failure")
	return fmt.Errorf("%s: %w", op, err)
}

// Get loads one ledger entry with its previews.
func (s *Service) Get(ctx context.Context, id int64) (Detail, error) {
	if s == nil || s.Q == nil {
		return Detail{}, errNotConfigured
	}
	row, err := s.Q.GetEditionIngredientDetail(ctx, id)
	if err != nil {
		if db.IsNoRows(err) {
			return Detail{}, common.NotFound("edition ingredient")
		}
		return Detail{}, s.storageError("get edition ingredient", err, map[string]any{"entry_id": id})
	}
	return detailFromRow(row), nil
}

// Update applies a partial update to a ledger entry.
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (Detail, error) {
	if s == nil || s.Q == nil {
		return Detail{}, errNotConfigured
	}
	if err := common.ValidateStruct(in); err != nil {
		return Detail{}, err
	}
	current, err := s.Q.GetEditionIngredient(ctx, id)
	if err != nil {
		if db.IsNoRows(err) {
			return Detail{}, common.NotFound("edition ingredient")
		}
		return Detail{}, s.storageError("get edition ingredient", err, map[string]any{"entry_id": id})
	}
	params := dbgen.UpdateEditionIngredientParams{
		ID:           id,
		IngredientID: current.IngredientID,
		Quantity:     current.Quantity,
		UnitPrice:    current.UnitPrice,
		Subtotal:     current.Subtotal,
		Notes:        current.Notes,
	}
	if in.IngredientID != nil {
		params.IngredientID = *in.IngredientID
	}
	if in.Quantity != nil {
		params.Quantity = *in.Quantity
	}
	if in.UnitPrice != nil {
		params.UnitPrice = *in.UnitPrice
	}
	if in.Notes != nil {
		params.Notes = db.Text(in.Notes)
	}
	if in.Quantity != nil || in.UnitPrice != nil {
		params.Subtotal = pricing.Subtotal(params.Quantity, params.UnitPrice)
	}
	if _, err := s.Q.UpdateEditionIngredient(ctx, params); err != nil {
		switch {
		case db.IsNoRows(err):
			return Detail{}, common.NotFound("edition ingredient")
		case db.IsUniqueViolation(err):
			return Detail{}, common.Conflict(ErrAlreadyAdded.Error(), err)
		case db.IsForeignKeyViolation(err):
			return Detail{}, common.NotFound("ingredient")
		}
		return Detail{}, s.storageError("update edition ingredient", err, map[string]any{"entry_id": id})
	}
	return s.Get(ctx, id)
}

// Delete removes a ledger entry. Its purchases stay recorded.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if s == nil || s.Q == nil {
		return errNotConfigured
	}
	n, err := s.Q.DeleteEditionIngredient(ctx, id)
	if err != nil {
		return s.storageError("delete edition ingredient", err, map[string]any{"entry_id": id})
	}
	if n == 0 {
		return common.NotFound("edition ingredient")
	}
	return nil
}
