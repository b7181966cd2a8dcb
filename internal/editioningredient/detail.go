package editioningredient

import (
	"time"

	"github.com/noah-isme/backend-editions/internal/db"
	dbgen "github.com/noah-isme/backend-editions/internal/db/gen"
)

// IngredientPreview is the ingredient summary embedded in a ledger entry.
type IngredientPreview struct {
	ID       int64                    `json:"id"`
	Name     string                   `json:"name"`
	Category dbgen.IngredientCategory `json:"category"`
}

// EditionPreview is the edition summary embedded in a ledger entry.
type EditionPreview struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// PurchasePreview is the purchase behind the latest change of a ledger entry.
type PurchasePreview struct {
	ID            int64     `json:"id"`
	IngredientID  int64     `json:"ingredient_id"`
	Quantity      float64   `json:"quantity"`
	UnitPrice     float64   `json:"unit_price"`
	TotalAmount   float64   `json:"total_amount"`
	PurchasedAt   time.Time `json:"purchased_at"`
	PaymentStatus string    `json:"payment_status"`
}

// Detail is an edition ingredient with its related previews.
type Detail struct {
	ID           int64             `json:"id"`
	EditionID    int64             `json:"edition_id"`
	IngredientID int64             `json:"ingredient_id"`
	PurchaseID   *int64            `json:"purchase_id"`
	Quantity     float64           `json:"quantity"`
	UnitPrice    float64           `json:"unit_price"`
	Subtotal     float64           `json:"subtotal"`
	Notes        *string           `json:"notes"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
	Ingredient   IngredientPreview `json:"ingredient"`
	Edition      EditionPreview    `json:"edition"`
	Purchase     *PurchasePreview  `json:"purchase"`
}

func detailFromRow(row dbgen.GetEditionIngredientDetailRow) Detail {
	ei := row.EditionIngredient
	d := Detail{
		ID:           ei.ID,
		EditionID:    ei.EditionID,
		IngredientID: ei.IngredientID,
		PurchaseID:   db.Int8Ptr(ei.PurchaseID),
		Quantity:     ei.Quantity,
		UnitPrice:    ei.UnitPrice,
		Subtotal:     ei.Subtotal,
		Notes:        db.TextPtr(ei.Notes),
		CreatedAt:    db.Time(ei.CreatedAt),
		UpdatedAt:    db.Time(ei.UpdatedAt),
		Ingredient:   IngredientPreview{ID: ei.IngredientID, Name: row.IngredientName, Category: row.IngredientCategory},
		Edition:      EditionPreview{ID: ei.EditionID, Name: row.EditionName, CreatedAt: db.Time(row.EditionCreatedAt)},
	}
	if ei.PurchaseID.Valid && row.PurchaseIngredientID.Valid {
		d.Purchase = &PurchasePreview{
			ID:            ei.PurchaseID.Int64,
			IngredientID:  row.PurchaseIngredientID.Int64,
			Quantity:      db.Float8Or(row.PurchaseQuantity, 0),
			UnitPrice:     db.Float8Or(row.PurchaseUnitPrice, 0),
			TotalAmount:   db.Float8Or(row.PurchaseTotalAmount, 0),
			PurchasedAt:   db.Time(row.PurchasePurchasedAt),
			PaymentStatus: row.PurchasePaymentStatus.String,
		}
	}
	return d
}
