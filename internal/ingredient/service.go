package ingredient

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/noah-isme/backend-editions/internal/common"
	"github.com/noah-isme/backend-editions/internal/db"
	dbgen "github.com/noah-isme/backend-editions/internal/db/gen"
)

// DefaultUnit is used when an ingredient is created without a unit.
const DefaultUnit = "kg"

// Categories lists the accepted ingredient categories in display order.
var Categories = []dbgen.IngredientCategory{
	dbgen.IngredientCategoryMEAT,
	dbgen.IngredientCategorySAUSAGES,
	dbgen.IngredientCategoryLEGUMES,
	dbgen.IngredientCategoryVEGETABLES,
	dbgen.IngredientCategorySTORE,
	dbgen.IngredientCategoryDISPOSABLE,
	dbgen.IngredientCategoryOTHER,
}

// ParseCategory normalises and validates a category name.
func ParseCategory(raw string) (dbgen.IngredientCategory, bool) {
	candidate := dbgen.IngredientCategory(strings.ToUpper(strings.TrimSpace(raw)))
	for _, c := range Categories {
		if c == candidate {
			return c, true
		}
	}
	return "", false
}

// Querier captures the database methods required by the ingredient service.
type Querier interface {
	CountIngredients(ctx context.Context, search pgtype.Text) (int64, error)
	ListIngredients(ctx context.Context, arg dbgen.ListIngredientsParams) ([]dbgen.Ingredient, error)
	GetIngredient(ctx context.Context, id int64) (dbgen.Ingredient, error)
	CreateIngredient(ctx context.Context, arg dbgen.CreateIngredientParams) (dbgen.Ingredient, error)
	UpdateIngredient(ctx context.Context, arg dbgen.UpdateIngredientParams) (dbgen.Ingredient, error)
	DeleteIngredient(ctx context.Context, id int64) (int64, error)
}

// Ingredient is the API representation of a catalogue ingredient.
type Ingredient struct {
	ID        int64                    `json:"id"`
	Name      string                   `json:"name"`
	UnitPrice float64                  `json:"unit_price"`
	Unit      string                   `json:"unit"`
	Category  dbgen.IngredientCategory `json:"category"`
	CreatedAt time.Time                `json:"created_at"`
	UpdatedAt time.Time                `json:"updated_at"`
}

// CreateInput is the payload for adding an ingredient.
type CreateInput struct {
	Name      string   `json:"name" validate:"required,max=255"`
	UnitPrice *float64 `json:"unit_price" validate:"omitempty,gte=0"`
	Unit      *string  `json:"unit" validate:"omitempty,max=32"`
	Category  string   `json:"category" validate:"required"`
}

// UpdateInput carries a partial update.
type UpdateInput struct {
	Name      *string  `json:"name" validate:"omitempty,min=1,max=255"`
	UnitPrice *float64 `json:"unit_price" validate:"omitempty,gte=0"`
	Unit      *string  `json:"unit" validate:"omitempty,min=1,max=32"`
	Category  *string  `json:"category"`
}

// Service manages the ingredient catalogue.
type Service struct {
	Q Querier
}

var errNotConfigured = errors.New("ingredient service not configured")

func invalidCategory(raw string) error {
	return common.Validation("invalid category values: "+raw, map[string]string{"category": "oneof MEAT SAUSAGES LEGUMES VEGETABLES STORE DISPOSABLE OTHER"})
}

// List returns ingredients matching search on name, unit or category.
func (s *Service) List(ctx context.Context, search *string, page common.PageParams) (common.Page[Ingredient], error) {
	if s == nil || s.Q == nil {
		return common.Page[Ingredient]{}, errNotConfigured
	}
	filter := db.Text(search)
	total, err := s.Q.CountIngredients(ctx, filter)
	if err != nil {
		return common.Page[Ingredient]{}, fmt.Errorf("count ingredients: %w", err)
	}
	rows, err := s.Q.ListIngredients(ctx, dbgen.ListIngredientsParams{
		Search: filter,
		Limit:  int32(page.Limit),
		Offset: int32(page.Offset),
	})
	if err != nil {
		return common.Page[Ingredient]{}, fmt.Errorf("list ingredients: %w", err)
	}
	items := make([]Ingredient, 0, len(rows))
	for _, row := range rows {
		items = append(items, FromModel(row))
	}
	return common.NewPage(items, total, page), nil
}

// Get loads a single ingredient.
func (s *Service) Get(ctx context.Context, id int64) (Ingredient, error) {
	if s == nil || s.Q == nil {
		return Ingredient{}, errNotConfigured
	}
	row, err := s.Q.GetIngredient(ctx, id)
	if err != nil {
		if db.IsNoRows(err) {
			return Ingredient{}, common.NotFound("ingredient")
		}
		return Ingredient{}, fmt.Errorf("get ingredient: %w", err)
	}
	return FromModel(row), nil
}

// Create adds an ingredient. Names are unique.
func (s *Service) Create(ctx context.Context, in CreateInput) (Ingredient, error) {
	if s == nil || s.Q == nil {
		return Ingredient{}, errNotConfigured
	}
	if err := common.ValidateStruct(in); err != nil {
		return Ingredient{}, err
	}
	category, ok := ParseCategory(in.Category)
	if !ok {
		return Ingredient{}, invalidCategory(in.Category)
	}
	params := dbgen.CreateIngredientParams{
		Name:     strings.TrimSpace(in.Name),
		Unit:     DefaultUnit,
		Category: category,
	}
	if in.UnitPrice != nil {
		params.UnitPrice = *in.UnitPrice
	}
	if in.Unit != nil && strings.TrimSpace(*in.Unit) != "" {
		params.Unit = strings.TrimSpace(*in.Unit)
	}
	row, err := s.Q.CreateIngredient(ctx, params)
	if err != nil {
		return Ingredient{}, mapWriteError("create ingredient", err)
	}
	return FromModel(row), nil
}

// Update applies a partial update.
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (Ingredient, error) {
	if s == nil || s.Q == nil {
		return Ingredient{}, errNotConfigured
	}
	if err := common.ValidateStruct(in); err != nil {
		return Ingredient{}, err
	}
	current, err := s.Q.GetIngredient(ctx, id)
	if err != nil {
		if db.IsNoRows(err) {
			return Ingredient{}, common.NotFound("ingredient")
		}
		return Ingredient{}, fmt.Errorf("get ingredient: %w", err)
	}
	params := dbgen.UpdateIngredientParams{
		ID:        id,
		Name:      current.Name,
		UnitPrice: current.UnitPrice,
		Unit:      current.Unit,
		Category:  current.Category,
	}
	if in.Name != nil {
		params.Name = strings.TrimSpace(*in.Name)
	}
	if in.UnitPrice != nil {
		params.UnitPrice = *in.UnitPrice
	}
	if in.Unit != nil {
		params.Unit = strings.TrimSpace(*in.Unit)
	}
	if in.Category != nil {
		category, ok := ParseCategory(*in.Category)
		if !ok {
			return Ingredient{}, invalidCategory(*in.Category)
		}
		params.Category = category
	}
	row, err := s.Q.UpdateIngredient(ctx, params)
	if err != nil {
		if db.IsNoRows(err) {
			return Ingredient{}, common.NotFound("ingredient")
		}
		return Ingredient{}, mapWriteError("update ingredient", err)
	}
	return FromModel(row), nil
}

// Delete removes an ingredient together with its purchases and ledger entries.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if s == nil || s.Q == nil {
		return errNotConfigured
	}
	n, err := s.Q.DeleteIngredient(ctx, id)
	if err != nil {
		return fmt.Errorf("delete ingredient: %w", err)
	}
	if n == 0 {
		return common.NotFound("ingredient")
	}
	return nil
}

func mapWriteError(op string, err error) error {
	if db.IsUniqueViolation(err) {
		return common.Conflict("ingredient name already exists", err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// FromModel converts the generated row into the API shape.
func FromModel(i dbgen.Ingredient) Ingredient {
	return Ingredient{
		ID:        i.ID,
		Name:      i.Name,
		UnitPrice: i.UnitPrice,
		Unit:      i.Unit,
		Category:  i.Category,
		CreatedAt: db.Time(i.CreatedAt),
		UpdatedAt: db.Time(i.UpdatedAt),
	}
}
