package ingredient

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-editions/internal/common"
	dbgen "github.com/noah-isme/backend-editions/internal/db/gen"
)

type stubQueries struct {
	rows   map[int64]dbgen.Ingredient
	nextID int64
}

func newStubQueries() *stubQueries {
	return &stubQueries{rows: map[int64]dbgen.Ingredient{}, nextID: 1}
}

func (s *stubQueries) CountIngredients(ctx context.Context, search pgtype.Text) (int64, error) {
	return int64(len(s.rows)), nil
}

func (s *stubQueries) ListIngredients(ctx context.Context, arg dbgen.ListIngredientsParams) ([]dbgen.Ingredient, error) {
	var out []dbgen.Ingredient
	for id := int64(1); id < s.nextID; id++ {
		if row, ok := s.rows[id]; ok {
			out = append(out, row)
		}
	}
	return out, nil
}

func (s *stubQueries) GetIngredient(ctx context.Context, id int64) (dbgen.Ingredient, error) {
	row, ok := s.rows[id]
	if !ok {
		return dbgen.Ingredient{}, pgx.ErrNoRows
	}
	return row, nil
}

func (s *stubQueries) CreateIngredient(ctx context.Context, arg dbgen.CreateIngredientParams) (dbgen.Ingredient, error) {
	for _, row := range s.rows {
		if row.Name == arg.Name {
			return dbgen.Ingredient{}, &pgconn.PgError{Code: "23505", ConstraintName: "uq_ingredients_name"}
		}
	}
	row := dbgen.Ingredient{ID: s.nextID, Name: arg.Name, UnitPrice: arg.UnitPrice, Unit: arg.Unit, Category: arg.Category}
	s.rows[row.ID] = row
	s.nextID++
	return row, nil
}

func (s *stubQueries) UpdateIngredient(ctx context.Context, arg dbgen.UpdateIngredientParams) (dbgen.Ingredient, error) {
	row, ok := s.rows[arg.ID]
	if !ok {
		return dbgen.Ingredient{}, pgx.ErrNoRows
	}
	row.Name, row.UnitPrice, row.Unit, row.Category = arg.Name, arg.UnitPrice, arg.Unit, arg.Category
	s.rows[arg.ID] = row
	return row, nil
}

func (s *stubQueries) DeleteIngredient(ctx context.Context, id int64) (int64, error) {
	if _, ok := s.rows[id]; !ok {
		return 0, nil
	}
	delete(s.rows, id)
	return 1, nil
}

func TestParseCategory(t *testing.T) {
	c, ok := ParseCategory(" meat ")
	require.True(t, ok)
	require.Equal(t, dbgen.IngredientCategoryMEAT, c)

	_, ok = ParseCategory("FISH")
	require.False(t, ok)
}

func TestCreateDefaults(t *testing.T) {
	svc := &Service{Q: newStubQueries()}
	item, err := svc.Create(context.Background(), CreateInput{Name: "Beef", Category: "MEAT"})
	require.NoError(t, err)
	require.Equal(t, DefaultUnit, item.Unit)
	require.Equal(t, 0.0, item.UnitPrice)
	require.Equal(t, dbgen.IngredientCategoryMEAT, item.Category)
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	svc := &Service{Q: newStubQueries()}
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{Name: "Salmon", Category: "FISH"})
	require.True(t, common.HasCode(err, common.CodeValidation))

	negative := -1.0
	_, err = svc.Create(ctx, CreateInput{Name: "Beans", Category: "LEGUMES", UnitPrice: &negative})
	require.True(t, common.HasCode(err, common.CodeValidation))
}

func TestCreateDuplicateName(t *testing.T) {
	svc := &Service{Q: newStubQueries()}
	ctx := context.Background()
	_, err := svc.Create(ctx, CreateInput{Name: "Beef", Category: "MEAT"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateInput{Name: "Beef", Category: "MEAT"})
	require.True(t, common.HasCode(err, common.CodeConflict))
}

func TestUpdateCategory(t *testing.T) {
	svc := &Service{Q: newStubQueries()}
	ctx := context.Background()
	item, err := svc.Create(ctx, CreateInput{Name: "Onion", Category: "OTHER"})
	require.NoError(t, err)

	cat := "vegetables"
	price := 2.5
	updated, err := svc.Update(ctx, item.ID, UpdateInput{Category: &cat, UnitPrice: &price})
	require.NoError(t, err)
	require.Equal(t, dbgen.IngredientCategoryVEGETABLES, updated.Category)
	require.Equal(t, 2.5, updated.UnitPrice)
	require.Equal(t, "Onion", updated.Name)

	bad := "fish"
	_, err = svc.Update(ctx, item.ID, UpdateInput{Category: &bad})
	require.True(t, common.HasCode(err, common.CodeValidation))
}
