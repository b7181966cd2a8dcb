package editioningredient

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	dbgen "github.com/noah-isme/backend-editions/internal/db/gen"
)

// memState is the committed content of the fake database.
type memState struct {
	editions    map[int64]dbgen.Edition
	ingredients map[int64]dbgen.Ingredient
	purchases   map[int64]dbgen.Purchase
	entries     map[int64]dbgen.EditionIngredient
	nextID      int64
}

func (s memState) clone() memState {
	out := memState{
		editions:    map[int64]dbgen.Edition{},
		ingredients: map[int64]dbgen.Ingredient{},
		purchases:   map[int64]dbgen.Purchase{},
		entries:     map[int64]dbgen.EditionIngredient{},
		nextID:      s.nextID,
	}
	for k, v := range s.editions {
		out.editions[k] = v
	}
	for k, v := range s.ingredients {
		out.ingredients[k] = v
	}
	for k, v := range s.purchases {
		out.purchases[k] = v
	}
	for k, v := range s.entries {
		out.entries[k] = v
	}
	return out
}

// memDB is an in-memory stand-in for PostgreSQL. Transactions snapshot the state on
// begin and restore it on rollback; nested Begin calls behave like savepoints.
type memDB struct {
	state    memState
	locks    []int64
	failOn   string
	dupeOnce bool
	begun    int
}

func newMemDB() *memDB {
	return &memDB{state: memState{
		editions: map[int64]dbgen.Edition{
			1: {ID: 1, Name: "Spring", PortionPrice: pgtype.Float8{Float64: 10, Valid: true}},
			2: {ID: 2, Name: "Summer"},
		},
		ingredients: map[int64]dbgen.Ingredient{
			1: {ID: 1, Name: "Beef", UnitPrice: 3, Unit: "kg", Category: dbgen.IngredientCategoryMEAT},
			2: {ID: 2, Name: "Onion", UnitPrice: 0.01, Unit: "kg", Category: dbgen.IngredientCategoryVEGETABLES},
			3: {ID: 3, Name: "Plates", UnitPrice: 1.5, Unit: "pack", Category: dbgen.IngredientCategoryDISPOSABLE},
		},
		purchases: map[int64]dbgen.Purchase{},
		entries:   map[int64]dbgen.EditionIngredient{},
		nextID:    1,
	}}
}

func (m *memDB) Begin(ctx context.Context) (pgx.Tx, error) {
	m.begun++
	return &memTx{db: m, snapshot: m.state.clone()}, nil
}

func (m *memDB) store(pgx.Tx) TxStore { return &memStore{db: m} }

func (m *memDB) purchaseCount() int { return len(m.state.purchases) }

type memTx struct {
	pgx.Tx
	db       *memDB
	snapshot memState
	done     bool
}

func (t *memTx) Begin(ctx context.Context) (pgx.Tx, error) {
	return &memTx{db: t.db, snapshot: t.db.state.clone()}, nil
}

func (t *memTx) Commit(ctx context.Context) error {
	if t.done {
		return pgx.ErrTxClosed
	}
	t.done = true
	return nil
}

func (t *memTx) Rollback(ctx context.Context) error {
	if t.done {
		return pgx.ErrTxClosed
	}
	t.done = true
	t.db.state = t.snapshot
	return nil
}

type memStore struct {
	db *memDB
}

var errInjected = errors.New("injected failure")

func (s *memStore) fail(op string) error {
	if s.db.failOn == op {
		return errInjected
	}
	return nil
}

func (s *memStore) id() int64 {
	id := s.db.state.nextID
	s.db.state.nextID++
	return id
}

func (s *memStore) GetEdition(ctx context.Context, id int64) (dbgen.Edition, error) {
	e, ok := s.db.state.editions[id]
	if !ok {
		return dbgen.Edition{}, pgx.ErrNoRows
	}
	return e, nil
}

func (s *memStore) GetIngredient(ctx context.Context, id int64) (dbgen.Ingredient, error) {
	i, ok := s.db.state.ingredients[id]
	if !ok {
		return dbgen.Ingredient{}, pgx.ErrNoRows
	}
	return i, nil
}

func (s *memStore) AcquirePairLock(ctx context.Context, key int64) error {
	s.db.locks = append(s.db.locks, key)
	return s.fail("lock")
}

func (s *memStore) GetEditionIngredientForUpdate(ctx context.Context, arg dbgen.GetEditionIngredientForUpdateParams) (dbgen.EditionIngredient, error) {
	for _, e := range s.db.state.entries {
		if e.EditionID == arg.EditionID && e.IngredientID == arg.IngredientID {
			return e, nil
		}
	}
	return dbgen.EditionIngredient{}, pgx.ErrNoRows
}

func (s *memStore) CreatePurchase(ctx context.Context, arg dbgen.CreatePurchaseParams) (dbgen.Purchase, error) {
	if err := s.fail("purchase"); err != nil {
		return dbgen.Purchase{}, err
	}
	p := dbgen.Purchase{
		ID:            s.id(),
		IngredientID:  arg.IngredientID,
		EditionID:     arg.EditionID,
		PurchasedAt:   arg.PurchasedAt,
		Quantity:      arg.Quantity,
		UnitPrice:     arg.UnitPrice,
		TotalAmount:   arg.TotalAmount,
		PaymentStatus: arg.PaymentStatus,
		Supplier:      arg.Supplier,
		Notes:         arg.Notes,
	}
	s.db.state.purchases[p.ID] = p
	return p, nil
}

func (s *memStore) CreateEditionIngredient(ctx context.Context, arg dbgen.CreateEditionIngredientParams) (dbgen.EditionIngredient, error) {
	if s.db.dupeOnce {
		s.db.dupeOnce = false
		return dbgen.EditionIngredient{}, &pgconn.PgError{Code: "23505", ConstraintName: "uq_edition_ingredient"}
	}
	if err := s.fail("create"); err != nil {
		return dbgen.EditionIngredient{}, err
	}
	e := dbgen.EditionIngredient{
		ID:           s.id(),
		EditionID:    arg.EditionID,
		IngredientID: arg.IngredientID,
		PurchaseID:   arg.PurchaseID,
		Quantity:     arg.Quantity,
		UnitPrice:    arg.UnitPrice,
		Subtotal:     arg.Subtotal,
		Notes:        arg.Notes,
	}
	s.db.state.entries[e.ID] = e
	return e, nil
}

func (s *memStore) ApplyEditionIngredientLedger(ctx context.Context, arg dbgen.ApplyEditionIngredientLedgerParams) (dbgen.EditionIngredient, error) {
	if err := s.fail("apply"); err != nil {
		return dbgen.EditionIngredient{}, err
	}
	e, ok := s.db.state.entries[arg.ID]
	if !ok {
		return dbgen.EditionIngredient{}, pgx.ErrNoRows
	}
	e.Quantity, e.UnitPrice, e.Subtotal, e.Notes, e.PurchaseID = arg.Quantity, arg.UnitPrice, arg.Subtotal, arg.Notes, arg.PurchaseID
	s.db.state.entries[arg.ID] = e
	return e, nil
}

func (s *memStore) GetEditionIngredientDetail(ctx context.Context, id int64) (dbgen.GetEditionIngredientDetailRow, error) {
	e, ok := s.db.state.entries[id]
	if !ok {
		return dbgen.GetEditionIngredientDetailRow{}, pgx.ErrNoRows
	}
	ing := s.db.state.ingredients[e.IngredientID]
	ed := s.db.state.editions[e.EditionID]
	row := dbgen.GetEditionIngredientDetailRow{
		EditionIngredient:  e,
		IngredientName:     ing.Name,
		IngredientCategory: ing.Category,
		EditionName:        ed.Name,
		EditionCreatedAt:   ed.CreatedAt,
	}
	if e.PurchaseID.Valid {
		if p, ok := s.db.state.purchases[e.PurchaseID.Int64]; ok {
			row.PurchaseIngredientID = pgtype.Int8{Int64: p.IngredientID, Valid: true}
			row.PurchaseQuantity = pgtype.Float8{Float64: p.Quantity, Valid: true}
			row.PurchaseUnitPrice = pgtype.Float8{Float64: p.UnitPrice, Valid: true}
			row.PurchaseTotalAmount = pgtype.Float8{Float64: p.TotalAmount, Valid: true}
			row.PurchasePurchasedAt = p.PurchasedAt
			row.PurchasePaymentStatus = pgtype.Text{String: string(p.PaymentStatus), Valid: true}
		}
	}
	return row, nil
}

func (s *memStore) GetEditionIngredient(ctx context.Context, id int64) (dbgen.EditionIngredient, error) {
	e, ok := s.db.state.entries[id]
	if !ok {
		return dbgen.EditionIngredient{}, pgx.ErrNoRows
	}
	return e, nil
}

func (s *memStore) UpdateEditionIngredient(ctx context.Context, arg dbgen.UpdateEditionIngredientParams) (dbgen.EditionIngredient, error) {
	e, ok := s.db.state.entries[arg.ID]
	if !ok {
		return dbgen.EditionIngredient{}, pgx.ErrNoRows
	}
	for _, other := range s.db.state.entries {
		if other.ID != arg.ID && other.EditionID == e.EditionID && other.IngredientID == arg.IngredientID {
			return dbgen.EditionIngredient{}, &pgconn.PgError{Code: "23505", ConstraintName: "uq_edition_ingredient"}
		}
	}
	e.IngredientID, e.Quantity, e.UnitPrice, e.Subtotal, e.Notes = arg.IngredientID, arg.Quantity, arg.UnitPrice, arg.Subtotal, arg.Notes
	s.db.state.entries[arg.ID] = e
	return e, nil
}

func (s *memStore) DeleteEditionIngredient(ctx context.Context, id int64) (int64, error) {
	if _, ok := s.db.state.entries[id]; !ok {
		return 0, nil
	}
	delete(s.db.state.entries, id)
	return 1, nil
}

func (s *memStore) filtered(editionID pgtype.Int8, search pgtype.Text, categories []string) []dbgen.EditionIngredient {
	var out []dbgen.EditionIngredient
	for _, e := range s.db.state.entries {
		if editionID.Valid && e.EditionID != editionID.Int64 {
			continue
		}
		if search.Valid && !strings.Contains(strings.ToLower(e.Notes.String), strings.ToLower(search.String)) {
			continue
		}
		if len(categories) > 0 {
			cat := string(s.db.state.ingredients[e.IngredientID].Category)
			match := false
			for _, c := range categories {
				match = match || c == cat
			}
			if !match {
				continue
			}
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (s *memStore) CountEditionIngredients(ctx context.Context, arg dbgen.CountEditionIngredientsParams) (int64, error) {
	return int64(len(s.filtered(arg.EditionID, arg.Search, arg.Categories))), nil
}

func (s *memStore) ListEditionIngredientDetails(ctx context.Context, arg dbgen.ListEditionIngredientDetailsParams) ([]dbgen.ListEditionIngredientDetailsRow, error) {
	rows := s.filtered(arg.EditionID, arg.Search, arg.Categories)
	start := int(arg.Offset)
	if start > len(rows) {
		start = len(rows)
	}
	end := start + int(arg.Limit)
	if end > len(rows) {
		end = len(rows)
	}
	out := []dbgen.ListEditionIngredientDetailsRow{}
	for _, e := range rows[start:end] {
		d, _ := s.GetEditionIngredientDetail(ctx, e.ID)
		out = append(out, dbgen.ListEditionIngredientDetailsRow(d))
	}
	return out, nil
}

func (s *memStore) SumEditionIngredientsByCategory(ctx context.Context, arg dbgen.SumEditionIngredientsByCategoryParams) ([]dbgen.SumEditionIngredientsByCategoryRow, error) {
	totals := map[dbgen.IngredientCategory]float64{}
	for _, e := range s.filtered(arg.EditionID, arg.Search, nil) {
		totals[s.db.state.ingredients[e.IngredientID].Category] += e.Subtotal
	}
	out := []dbgen.SumEditionIngredientsByCategoryRow{}
	for c, total := range totals {
		out = append(out, dbgen.SumEditionIngredientsByCategoryRow{Category: c, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

func (s *memStore) SumEditionIngredientSubtotals(ctx context.Context, arg dbgen.SumEditionIngredientSubtotalsParams) (float64, error) {
	var total float64
	for _, e := range s.filtered(arg.EditionID, arg.Search, nil) {
		total += e.Subtotal
	}
	return total, nil
}

func (s *memStore) SumPurchaseTotals(ctx context.Context, editionID pgtype.Int8) (float64, error) {
	var total float64
	for _, p := range s.db.state.purchases {
		if editionID.Valid && (!p.EditionID.Valid || p.EditionID.Int64 != editionID.Int64) {
			continue
		}
		total += p.TotalAmount
	}
	return total, nil
}
