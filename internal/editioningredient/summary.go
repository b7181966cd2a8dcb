package editioningredient

import (
	"context"
	"strings"

	"github.com/noah-isme/backend-editions/internal/common"
	"github.com/noah-isme/backend-editions/internal/db"
	dbgen "github.com/noah-isme/backend-editions/internal/db/gen"
	"github.com/noah-isme/backend-editions/internal/ingredient"
	"github.com/noah-isme/backend-editions/internal/pricing"
)

// ListParams filters ledger entries. Categories narrow the item page only; the totals
// follow the edition and notes filters.
type ListParams struct {
	EditionID  *int64
	Query      *string
	Categories []string
	Page       common.PageParams
}

// CategoryTotal is the summed subtotal of one ingredient category.
type CategoryTotal struct {
	Category dbgen.IngredientCategory `json:"category"`
	Total    float64                  `json:"total"`
}

// ListResult is a page of ledger entries with cost summaries.
type ListResult struct {
	common.Page[Detail]
	CategoryTotals   []CategoryTotal `json:"category_totals"`
	IngredientsTotal float64         `json:"ingredients_total"`
	TotalExpenses    float64         `json:"total_expenses"`
}

// ParseCategories validates category names and returns them in canonical form.
func ParseCategories(raw []string) ([]string, error) {
	var out, invalid []string
	for _, r := range raw {
		c, ok := ingredient.ParseCategory(r)
		if !ok {
			invalid = append(invalid, strings.TrimSpace(r))
			continue
		}
		out = append(out, string(c))
	}
	if len(invalid) > 0 {
		return nil, common.Validation("invalid category values: "+strings.Join(invalid, ", "),
			map[string]string{"categories": "oneof MEAT SAUSAGES LEGUMES VEGETABLES STORE DISPOSABLE OTHER"})
	}
	return out, nil
}

// List returns the ledger entries page together with per-category totals, the ingredients
// total and the purchase expenses of the edition (all purchases when no edition is given).
func (s *Service) List(ctx context.Context, p ListParams) (ListResult, error) {
	if s == nil || s.Q == nil {
		return ListResult{}, errNotConfigured
	}
	categories, err := ParseCategories(p.Categories)
	if err != nil {
		return ListResult{}, err
	}
	if p.EditionID != nil {
		if _, err := s.Q.GetEdition(ctx, *p.EditionID); err != nil {
			if db.IsNoRows(err) {
				return ListResult{}, common.NotFound("edition")
			}
			return ListResult{}, s.storageError("get edition", err, map[string]any{"edition_id": *p.EditionID})
		}
	}
	editionID := db.Int8(p.EditionID)
	search := db.Text(p.Query)
	ids := map[string]any{}
	if p.EditionID != nil {
		ids["edition_id"] = *p.EditionID
	}

	total, err := s.Q.CountEditionIngredients(ctx, dbgen.CountEditionIngredientsParams{
		EditionID:  editionID,
		Search:     search,
		Categories: categories,
	})
	if err != nil {
		return ListResult{}, s.storageError("count edition ingredients", err, ids)
	}
	rows, err := s.Q.ListEditionIngredientDetails(ctx, dbgen.ListEditionIngredientDetailsParams{
		EditionID:  editionID,
		Search:     search,
		Categories: categories,
		Limit:      int32(p.Page.Limit),
		Offset:     int32(p.Page.Offset),
	})
	if err != nil {
		return ListResult{}, s.storageError("list edition ingredients", err, ids)
	}
	items := make([]Detail, 0, len(rows))
	for _, row := range rows {
		items = append(items, detailFromRow(dbgen.GetEditionIngredientDetailRow(row)))
	}

	byCategory, err := s.Q.SumEditionIngredientsByCategory(ctx, dbgen.SumEditionIngredientsByCategoryParams{
		EditionID: editionID,
		Search:    search,
	})
	if err != nil {
		return ListResult{}, s.storageError("sum edition ingredients by category", err, ids)
	}
	categoryTotals := make([]CategoryTotal, 0, len(byCategory))
	for _, c := range byCategory {
		categoryTotals = append(categoryTotals, CategoryTotal{Category: c.Category, Total: pricing.Round2(c.Total)})
	}
	ingredientsTotal, err := s.Q.SumEditionIngredientSubtotals(ctx, dbgen.SumEditionIngredientSubtotalsParams{
		EditionID: editionID,
		Search:    search,
	})
	if err != nil {
		return ListResult{}, s.storageError("sum edition ingredient subtotals", err, ids)
	}
	expenses, err := s.Q.SumPurchaseTotals(ctx, editionID)
	if err != nil {
		return ListResult{}, s.storageError("sum purchase totals", err, ids)
	}

	return ListResult{
		Page:             common.NewPage(items, total, p.Page),
		CategoryTotals:   categoryTotals,
		IngredientsTotal: pricing.Round2(ingredientsTotal),
		TotalExpenses:    pricing.Round2(expenses),
	}, nil
}
