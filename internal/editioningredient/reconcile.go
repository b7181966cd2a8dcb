package editioningredient

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"

	"github.com/noah-isme/backend-editions/internal/common"
	"github.com/noah-isme/backend-editions/internal/db"
	dbgen "github.com/noah-isme/backend-editions/internal/db/gen"
	"github.com/noah-isme/backend-editions/internal/obs"
	"github.com/noah-isme/backend-editions/internal/pricing"
)

// TxStore is the set of queries a reconciliation runs inside its transaction.
type TxStore interface {
	GetEdition(ctx context.Context, id int64) (dbgen.Edition, error)
	GetIngredient(ctx context.Context, id int64) (dbgen.Ingredient, error)
	AcquirePairLock(ctx context.Context, key int64) error
	GetEditionIngredientForUpdate(ctx context.Context, arg dbgen.GetEditionIngredientForUpdateParams) (dbgen.EditionIngredient, error)
	CreatePurchase(ctx context.Context, arg dbgen.CreatePurchaseParams) (dbgen.Purchase, error)
	CreateEditionIngredient(ctx context.Context, arg dbgen.CreateEditionIngredientParams) (dbgen.EditionIngredient, error)
	ApplyEditionIngredientLedger(ctx context.Context, arg dbgen.ApplyEditionIngredientLedgerParams) (dbgen.EditionIngredient, error)
	GetEditionIngredientDetail(ctx context.Context, id int64) (dbgen.GetEditionIngredientDetailRow, error)
}

// ErrAlreadyAdded is wrapped by the conflict returned from the reject strategy.
// The purchase recorded by that call has been committed.
var ErrAlreadyAdded = errors.New("ingredient already added to this edition")

// ReconcileInput describes one purchase to fold into an edition's ledger.
type ReconcileInput struct {
	EditionID    int64
	IngredientID int64
	Quantity     float64
	// UnitPrice overrides the ingredient's catalogue price when set.
	UnitPrice *float64
	Notes     *string
	Strategy  Strategy
}

// Reconciler records ingredient purchases against an edition and keeps exactly one
// ledger entry per (edition, ingredient) pair.
type Reconciler struct {
	Pool    db.Beginner
	Queries func(tx pgx.Tx) TxStore
	Logger  *zerolog.Logger
}

// TxQueries binds the generated queries to a reconciliation transaction.
func TxQueries(tx pgx.Tx) TxStore {
	return dbgen.New(tx)
}

var nopLogger = zerolog.Nop()

func (r *Reconciler) log() *zerolog.Logger {
	if r.Logger == nil {
		return &nopLogger
	}
	return r.Logger
}

// PairKey derives the advisory lock key of an (edition, ingredient) pair.
func PairKey(editionID, ingredientID int64) int64 {
	h := fnv.New64a()
	_, _ = fmt.Fprintf(h, "edition_ingredient:%d:%d", editionID, ingredientID)
	return int64(h.Sum64())
}

// Reconcile records a purchase and merges it into the ledger entry of the pair using
// in.Strategy. Concurrent calls for the same pair are serialized by a transaction-scoped
// advisory lock and a row lock on the existing entry.
func (r *Reconciler) Reconcile(ctx context.Context, scope TxScope, in ReconcileInput) (Detail, error) {
	if r == nil || r.Queries == nil {
		return Detail{}, errors.New("edition ingredient reconciler not configured")
	}
	if err := validateInput(in); err != nil {
		obs.ObserveReconciliation(in.Strategy.String(), "invalid")
		return Detail{}, err
	}

	tx, err := scope.begin(ctx, r.Pool)
	if err != nil {
		return Detail{}, r.fail(in, "begin", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()
	q := r.Queries(tx)

	if _, err := q.GetEdition(ctx, in.EditionID); err != nil {
		return Detail{}, r.fail(in, "load edition", notFound("edition", err))
	}
	ingredient, err := q.GetIngredient(ctx, in.IngredientID)
	if err != nil {
		return Detail{}, r.fail(in, "load ingredient", notFound("ingredient", err))
	}
	if err := q.AcquirePairLock(ctx, PairKey(in.EditionID, in.IngredientID)); err != nil {
		return Detail{}, r.fail(in, "lock pair", err)
	}
	existing, err := q.GetEditionIngredientForUpdate(ctx, dbgen.GetEditionIngredientForUpdateParams{
		EditionID:    in.EditionID,
		IngredientID: in.IngredientID,
	})
	found := err == nil
	if err != nil && !db.IsNoRows(err) {
		return Detail{}, r.fail(in, "lock entry", err)
	}

	price := ingredient.UnitPrice
	if in.UnitPrice != nil {
		price = *in.UnitPrice
	}
	subtotal := pricing.Subtotal(in.Quantity, price)
	purchase, err := q.CreatePurchase(ctx, dbgen.CreatePurchaseParams{
		IngredientID:  in.IngredientID,
		EditionID:     pgtype.Int8{Int64: in.EditionID, Valid: true},
		Quantity:      in.Quantity,
		UnitPrice:     price,
		TotalAmount:   subtotal,
		PaymentStatus: dbgen.PaymentStatusPENDING,
		Notes:         db.Text(in.Notes),
	})
	if err != nil {
		return Detail{}, r.fail(in, "create purchase", err)
	}
	purchaseID := pgtype.Int8{Int64: purchase.ID, Valid: true}

	var entry dbgen.EditionIngredient
	outcome := "created"
	if !found {
		entry, err = q.CreateEditionIngredient(ctx, dbgen.CreateEditionIngredientParams{
			EditionID:    in.EditionID,
			IngredientID: in.IngredientID,
			PurchaseID:   purchaseID,
			Quantity:     in.Quantity,
			UnitPrice:    price,
			Subtotal:     subtotal,
			Notes:        db.Text(in.Notes),
		})
	} else {
		switch in.Strategy {
		case StrategyReject:
			if err := tx.Commit(ctx); err != nil {
				return Detail{}, r.fail(in, "commit rejected purchase", err)
			}
			obs.ObserveReconciliation(in.Strategy.String(), "rejected")
			return Detail{}, common.Conflict(ErrAlreadyAdded.Error(), ErrAlreadyAdded)
		case StrategyReplace:
			outcome = "replaced"
			entry, err = q.ApplyEditionIngredientLedger(ctx, dbgen.ApplyEditionIngredientLedgerParams{
				ID:         existing.ID,
				Quantity:   in.Quantity,
				UnitPrice:  price,
				Subtotal:   subtotal,
				Notes:      db.Text(in.Notes),
				PurchaseID: purchaseID,
			})
		case StrategySum:
			outcome = "summed"
			unitPrice := existing.UnitPrice
			if in.UnitPrice != nil {
				unitPrice = *in.UnitPrice
			}
			notes := existing.Notes
			if n := db.Text(in.Notes); n.Valid {
				notes = n
			}
			entry, err = q.ApplyEditionIngredientLedger(ctx, dbgen.ApplyEditionIngredientLedgerParams{
				ID:         existing.ID,
				Quantity:   pricing.SumQuantity(existing.Quantity, in.Quantity),
				UnitPrice:  unitPrice,
				Subtotal:   pricing.Add(existing.Subtotal, subtotal),
				Notes:      notes,
				PurchaseID: purchaseID,
			})
		default:
			err = fmt.Errorf("unhandled strategy %d", in.Strategy)
		}
	}
	if err != nil {
		return Detail{}, r.fail(in, "write entry", err)
	}

	row, err := q.GetEditionIngredientDetail(ctx, entry.ID)
	if err != nil {
		return Detail{}, r.fail(in, "load entry", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return Detail{}, r.fail(in, "commit", err)
	}
	obs.ObserveReconciliation(in.Strategy.String(), outcome)
	return detailFromRow(row), nil
}

func validateInput(in ReconcileInput) error {
	details := map[string]string{}
	if in.EditionID <= 0 {
		details["edition_id"] = "gt=0"
	}
	if in.IngredientID <= 0 {
		details["ingredient_id"] = "gt=0"
	}
	if in.Quantity < 0 {
		details["quantity"] = "gte=0"
	}
	if in.UnitPrice != nil && *in.UnitPrice < 0 {
		details["unit_price"] = "gte=0"
	}
	switch in.Strategy {
	case StrategySum, StrategyReplace, StrategyReject:
	default:
		details["strategy"] = "oneof sum replace reject"
	}
	if len(details) > 0 {
		return common.Validation("invalid reconciliation input", details)
	}
	return nil
}

func notFound(entity string, err error) error {
	if db.IsNoRows(err) {
		return common.NotFound(entity)
	}
	return err
}

// fail maps err to the error surfaced to callers. The deferred rollback undoes the
// purchase and any entry write.
func (r *Reconciler) fail(in ReconcileInput, step string, err error) error {
	strategy := in.Strategy.String()
	if common.IsAppError(err) {
		obs.ObserveReconciliation(strategy, "rejected")
		return err
	}
	if db.IsUniqueViolation(err) {
		obs.ObserveReconciliation(strategy, "conflict")
		return common.Conflict("conflict (unique violation)", err)
	}
	obs.ObserveReconciliation(strategy, "error")
	r.log().Error().Err(err).
		Int64("edition_id", in.EditionID).
		Int64("ingredient_id", in.IngredientID).
		Str("strategy", strategy).
		Str("step", step).
		Msg("edition ingredient reconciliation failed")
	return common.Internal(err)
}
