//go:build integration

package editioningredient

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/noah-isme/backend-editions/internal/common"
	dbgen "github.com/noah-isme/backend-editions/internal/db/gen"
	"github.com/noah-isme/backend-editions/internal/db/migrations"
)

func setupPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:alpine",
		postgres.WithDatabase("editions"),
		postgres.WithUsername("editions"),
		postgres.WithPassword("editions"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("terminate postgres container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	require.NoError(t, migrations.Up(dsn))

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func seedPair(t *testing.T, pool *pgxpool.Pool) (dbgen.Edition, dbgen.Ingredient) {
	t.Helper()
	ctx := context.Background()
	q := dbgen.New(pool)
	edition, err := q.CreateEdition(ctx, dbgen.CreateEditionParams{
		Date:   pgtype.Date{Time: time.Now().UTC().Truncate(24 * time.Hour), Valid: true},
		Name:   "Integration",
		Status: dbgen.EditionStatusPENDING,
	})
	require.NoError(t, err)
	ing, err := q.CreateIngredient(ctx, dbgen.CreateIngredientParams{Name: "Beef", UnitPrice: 3, Unit: "kg", Category: dbgen.IngredientCategoryMEAT})
	require.NoError(t, err)
	return edition, ing
}

func TestConcurrentReconcileCreatesOneEntry(t *testing.T) {
	pool := setupPostgres(t)
	edition, ing := seedPair(t, pool)
	r := &Reconciler{Pool: pool, Queries: TxQueries}

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = r.Reconcile(context.Background(), Independent(), ReconcileInput{
				EditionID:    edition.ID,
				IngredientID: ing.ID,
				Quantity:     1,
				Strategy:     StrategySum,
			})
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}

	svc := &Service{Q: dbgen.New(pool)}
	editionID := edition.ID
	res, err := svc.List(context.Background(), ListParams{EditionID: &editionID, Page: common.PageParams{Limit: 10}})
	require.NoError(t, err)
	require.Equal(t, int64(1), res.Total)
	require.Equal(t, float64(workers), res.Items[0].Quantity)
	require.Equal(t, float64(workers*3), res.IngredientsTotal)
	require.Equal(t, float64(workers*3), res.TotalExpenses)
}

func TestConcurrentRejectKeepsOneEntry(t *testing.T) {
	pool := setupPostgres(t)
	edition, ing := seedPair(t, pool)
	r := &Reconciler{Pool: pool, Queries: TxQueries}

	const workers = 4
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = r.Reconcile(context.Background(), Independent(), ReconcileInput{
				EditionID:    edition.ID,
				IngredientID: ing.ID,
				Quantity:     2,
				Strategy:     StrategyReject,
			})
		}(i)
	}
	wg.Wait()

	var ok, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case common.HasCode(err, common.CodeConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 1, ok)
	require.Equal(t, workers-1, conflicts)

	expenses, err := dbgen.New(pool).SumPurchaseTotals(context.Background(), pgtype.Int8{Int64: edition.ID, Valid: true})
	require.NoError(t, err)
	require.Equal(t, float64(workers*6), expenses)
}

func TestJoinedReconcileRollsBackWithCaller(t *testing.T) {
	pool := setupPostgres(t)
	edition, ing := seedPair(t, pool)
	r := &Reconciler{Pool: pool, Queries: TxQueries}
	ctx := context.Background()

	tx, err := pool.Begin(ctx)
	require.NoError(t, err)
	_, err = r.Reconcile(ctx, Joined(tx), ReconcileInput{EditionID: edition.ID, IngredientID: ing.ID, Quantity: 1, Strategy: StrategySum})
	require.NoError(t, err)
	require.NoError(t, tx.Rollback(ctx))

	n, err := dbgen.New(pool).CountEditionIngredients(ctx, dbgen.CountEditionIngredientsParams{EditionID: pgtype.Int8{Int64: edition.ID, Valid: true}})
	require.NoError(t, err)
	require.Zero(t, n)
}
