package editioningredient

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-editions/internal/common"
	dbgen "github.com/noah-isme/backend-editions/internal/db/gen"
)

func ptr[T any](v T) *T { return &v }

func newReconciler() (*Reconciler, *memDB) {
	m := newMemDB()
	return &Reconciler{Pool: m, Queries: m.store}, m
}

func TestParseStrategy(t *testing.T) {
	cases := map[string]Strategy{
		"sum":     StrategySum,
		"REPLACE": StrategyReplace,
		"reject":  StrategyReject,
		"nothing": StrategyReject,
	}
	for raw, want := range cases {
		got, ok := ParseStrategy(raw)
		require.True(t, ok, raw)
		require.Equal(t, want, got, raw)
	}
	_, ok := ParseStrategy("merge")
	require.False(t, ok)

	mode, ok := ParseMode("Joined")
	require.True(t, ok)
	require.Equal(t, ModeJoined, mode)
	_, ok = ParseMode("nested")
	require.False(t, ok)
}

func TestPairKey(t *testing.T) {
	require.Equal(t, PairKey(1, 2), PairKey(1, 2))
	require.NotEqual(t, PairKey(1, 2), PairKey(2, 1))
	require.NotEqual(t, PairKey(1, 2), PairKey(1, 3))
}

func TestReconcileCreatesEntry(t *testing.T) {
	r, m := newReconciler()
	ctx := context.Background()

	d, err := r.Reconcile(ctx, Independent(), ReconcileInput{EditionID: 1, IngredientID: 1, Quantity: 2, Notes: ptr("first"), Strategy: StrategySum})
	require.NoError(t, err)
	require.Equal(t, 2.0, d.Quantity)
	require.Equal(t, 3.0, d.UnitPrice)
	require.Equal(t, 6.0, d.Subtotal)
	require.Equal(t, "first", *d.Notes)
	require.Equal(t, "Beef", d.Ingredient.Name)
	require.Equal(t, dbgen.IngredientCategoryMEAT, d.Ingredient.Category)
	require.Equal(t, "Spring", d.Edition.Name)
	require.NotNil(t, d.Purchase)
	require.Equal(t, *d.PurchaseID, d.Purchase.ID)
	require.Equal(t, 6.0, d.Purchase.TotalAmount)
	require.Equal(t, "PENDING", d.Purchase.PaymentStatus)

	require.Equal(t, 1, m.purchaseCount())
	p := m.state.purchases[d.Purchase.ID]
	require.True(t, p.EditionID.Valid)
	require.Equal(t, int64(1), p.EditionID.Int64)
	require.Equal(t, []int64{PairKey(1, 1)}, m.locks)
}

func TestReconcileSumTwice(t *testing.T) {
	r, m := newReconciler()
	ctx := context.Background()
	in := ReconcileInput{EditionID: 1, IngredientID: 1, Quantity: 2, Strategy: StrategySum}

	first, err := r.Reconcile(ctx, Independent(), in)
	require.NoError(t, err)
	second, err := r.Reconcile(ctx, Independent(), in)
	require.NoError(t, err)

	require.Equal(t, first.ID, second.ID)
	require.Equal(t, 4.0, second.Quantity)
	require.Equal(t, 12.0, second.Subtotal)
	require.NotEqual(t, *first.PurchaseID, *second.PurchaseID)
	require.Len(t, m.state.entries, 1)
	require.Equal(t, 2, m.purchaseCount())
	for _, p := range m.state.purchases {
		require.Equal(t, 6.0, p.TotalAmount)
	}
}

func TestReconcileSumKeepsRoundedAddends(t *testing.T) {
	r, _ := newReconciler()
	ctx := context.Background()
	in := ReconcileInput{EditionID: 1, IngredientID: 2, Quantity: 0.5, UnitPrice: ptr(0.01), Strategy: StrategySum}

	_, err := r.Reconcile(ctx, Independent(), in)
	require.NoError(t, err)
	d, err := r.Reconcile(ctx, Independent(), in)
	require.NoError(t, err)
	require.Equal(t, 1.0, d.Quantity)
	require.Equal(t, 0.02, d.Subtotal)
}

func TestReconcileSumPriceAndNotes(t *testing.T) {
	r, m := newReconciler()
	ctx := context.Background()

	_, err := r.Reconcile(ctx, Independent(), ReconcileInput{EditionID: 1, IngredientID: 1, Quantity: 1, UnitPrice: ptr(5.0), Notes: ptr("butcher"), Strategy: StrategySum})
	require.NoError(t, err)
	d, err := r.Reconcile(ctx, Independent(), ReconcileInput{EditionID: 1, IngredientID: 1, Quantity: 1, Strategy: StrategySum})
	require.NoError(t, err)

	require.Equal(t, 5.0, d.UnitPrice, "unit price only changes with an override")
	require.Equal(t, 8.0, d.Subtotal)
	require.Equal(t, "butcher", *d.Notes)
	require.Equal(t, 3.0, m.state.purchases[*d.PurchaseID].UnitPrice)
}

func TestReconcileReplace(t *testing.T) {
	r, m := newReconciler()
	ctx := context.Background()

	_, err := r.Reconcile(ctx, Independent(), ReconcileInput{EditionID: 1, IngredientID: 1, Quantity: 2, Notes: ptr("old"), Strategy: StrategySum})
	require.NoError(t, err)
	d, err := r.Reconcile(ctx, Independent(), ReconcileInput{EditionID: 1, IngredientID: 1, Quantity: 5, UnitPrice: ptr(2.0), Strategy: StrategyReplace})
	require.NoError(t, err)

	require.Equal(t, 5.0, d.Quantity)
	require.Equal(t, 2.0, d.UnitPrice)
	require.Equal(t, 10.0, d.Subtotal)
	require.Nil(t, d.Notes)
	require.Len(t, m.state.entries, 1)
	require.Equal(t, 2, m.purchaseCount())
}

func TestReconcileRejectKeepsPurchase(t *testing.T) {
	r, m := newReconciler()
	ctx := context.Background()
	in := ReconcileInput{EditionID: 1, IngredientID: 3, Quantity: 2, Strategy: StrategyReject}

	first, err := r.Reconcile(ctx, Independent(), in)
	require.NoError(t, err)
	_, err = r.Reconcile(ctx, Independent(), in)
	require.True(t, common.HasCode(err, common.CodeConflict))
	require.ErrorIs(t, err, ErrAlreadyAdded)

	require.Len(t, m.state.entries, 1)
	require.Equal(t, 2, m.purchaseCount())
	require.Equal(t, first.Quantity, m.state.entries[first.ID].Quantity)
}

func TestReconcileNotFound(t *testing.T) {
	r, m := newReconciler()
	ctx := context.Background()

	_, err := r.Reconcile(ctx, Independent(), ReconcileInput{EditionID: 9, IngredientID: 1, Quantity: 1, Strategy: StrategySum})
	require.True(t, common.HasCode(err, common.CodeNotFound))
	require.Equal(t, "edition not found", err.Error())

	_, err = r.Reconcile(ctx, Independent(), ReconcileInput{EditionID: 1, IngredientID: 9, Quantity: 1, Strategy: StrategySum})
	require.True(t, common.HasCode(err, common.CodeNotFound))
	require.Equal(t, "ingredient not found", err.Error())
	require.Zero(t, m.purchaseCount())
}

func TestReconcileValidation(t *testing.T) {
	r, m := newReconciler()
	ctx := context.Background()

	_, err := r.Reconcile(ctx, Independent(), ReconcileInput{EditionID: 1, IngredientID: 1, Quantity: -1, Strategy: StrategySum})
	require.True(t, common.HasCode(err, common.CodeValidation))

	_, err = r.Reconcile(ctx, Independent(), ReconcileInput{EditionID: 1, IngredientID: 1, Quantity: 1, UnitPrice: ptr(-0.5), Strategy: StrategySum})
	require.True(t, common.HasCode(err, common.CodeValidation))

	_, err = r.Reconcile(ctx, Independent(), ReconcileInput{EditionID: 1, IngredientID: 1, Quantity: 1})
	require.True(t, common.HasCode(err, common.CodeValidation))
	require.Zero(t, m.begun)
}

func TestReconcileFailureRollsBackPurchase(t *testing.T) {
	r, m := newReconciler()
	ctx := context.Background()
	in := ReconcileInput{EditionID: 1, IngredientID: 1, Quantity: 1, Strategy: StrategySum}

	_, err := r.Reconcile(ctx, Independent(), in)
	require.NoError(t, err)

	m.failOn = "apply"
	_, err = r.Reconcile(ctx, Independent(), in)
	require.True(t, common.HasCode(err, common.CodeInternal))
	require.True(t, errors.Is(err, errInjected))
	require.Equal(t, 1, m.purchaseCount())
	for _, e := range m.state.entries {
		require.Equal(t, 1.0, e.Quantity)
	}
}

func TestReconcileUniqueViolationIsConflict(t *testing.T) {
	r, m := newReconciler()
	m.dupeOnce = true

	_, err := r.Reconcile(context.Background(), Independent(), ReconcileInput{EditionID: 1, IngredientID: 1, Quantity: 1, Strategy: StrategySum})
	require.True(t, common.HasCode(err, common.CodeConflict))
	var appErr *common.AppError
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, "conflict (unique violation)", appErr.Message)
	require.Zero(t, m.purchaseCount())
	require.Empty(t, m.state.entries)
}

func TestReconcileJoinedLeavesCommitToCaller(t *testing.T) {
	r, m := newReconciler()
	ctx := context.Background()

	outer, err := m.Begin(ctx)
	require.NoError(t, err)
	d, err := r.Reconcile(ctx, Joined(outer), ReconcileInput{EditionID: 1, IngredientID: 1, Quantity: 2, Strategy: StrategySum})
	require.NoError(t, err)
	require.Equal(t, 6.0, d.Subtotal)
	require.Equal(t, 1, m.begun, "joined scope must not open a pool transaction")
	require.Len(t, m.state.entries, 1)

	require.NoError(t, outer.Rollback(ctx))
	require.Empty(t, m.state.entries)
	require.Zero(t, m.purchaseCount())
}

func TestReconcileJoinedSeesCallerRows(t *testing.T) {
	r, m := newReconciler()
	ctx := context.Background()

	outer, err := m.Begin(ctx)
	require.NoError(t, err)
	m.state.editions[7] = dbgen.Edition{ID: 7, Name: "Created in request"}

	d, err := r.Reconcile(ctx, Joined(outer), ReconcileInput{EditionID: 7, IngredientID: 3, Quantity: 4, Strategy: StrategySum})
	require.NoError(t, err)
	require.Equal(t, 6.0, d.Subtotal)
	require.NoError(t, outer.Commit(ctx))
	require.Len(t, m.state.entries, 1)
}
