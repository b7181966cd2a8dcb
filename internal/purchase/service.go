package purchase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/noah-isme/backend-editions/internal/common"
	"github.com/noah-isme/backend-editions/internal/db"
	dbgen "github.com/noah-isme/backend-editions/internal/db/gen"
	"github.com/noah-isme/backend-editions/internal/pricing"
)

// Querier captures the database methods required by the purchase service.
type Querier interface {
	CountPurchases(ctx context.Context, arg dbgen.CountPurchasesParams) (int64, error)
	ListPurchases(ctx context.Context, arg dbgen.ListPurchasesParams) ([]dbgen.Purchase, error)
	GetPurchase(ctx context.Context, id int64) (dbgen.Purchase, error)
	CreatePurchase(ctx context.Context, arg dbgen.CreatePurchaseParams) (dbgen.Purchase, error)
	UpdatePurchase(ctx context.Context, arg dbgen.UpdatePurchaseParams) (dbgen.Purchase, error)
	DeletePurchase(ctx context.Context, id int64) (int64, error)
}

// Purchase is the API representation of an ingredient purchase.
type Purchase struct {
	ID            int64               `json:"id"`
	IngredientID  int64               `json:"ingredient_id"`
	EditionID     *int64              `json:"edition_id"`
	Quantity      float64             `json:"quantity"`
	UnitPrice     float64             `json:"unit_price"`
	TotalAmount   float64             `json:"total_amount"`
	PaymentStatus dbgen.PaymentStatus `json:"payment_status"`
	Supplier      *string             `json:"supplier"`
	Notes         *string             `json:"notes"`
	PurchasedAt   time.Time           `json:"purchased_at"`
	CreatedAt     time.Time           `json:"created_at"`
}

// CreateInput is the payload for recording a purchase. total_amount is always derived.
type CreateInput struct {
	IngredientID  int64      `json:"ingredient_id" validate:"required,gt=0"`
	EditionID     *int64     `json:"edition_id" validate:"omitempty,gt=0"`
	Quantity      float64    `json:"quantity" validate:"gte=0"`
	UnitPrice     float64    `json:"unit_price" validate:"gte=0"`
	PaymentStatus *string    `json:"payment_status"`
	Supplier      *string    `json:"supplier" validate:"omitempty,max=255"`
	Notes         *string    `json:"notes"`
	PurchasedAt   *time.Time `json:"purchased_at"`
}

// UpdateInput carries a partial update.
type UpdateInput struct {
	IngredientID  *int64     `json:"ingredient_id" validate:"omitempty,gt=0"`
	EditionID     *int64     `json:"edition_id" validate:"omitempty,gt=0"`
	Quantity      *float64   `json:"quantity" validate:"omitempty,gte=0"`
	UnitPrice     *float64   `json:"unit_price" validate:"omitempty,gte=0"`
	PaymentStatus *string    `json:"payment_status"`
	Supplier      *string    `json:"supplier" validate:"omitempty,max=255"`
	Notes         *string    `json:"notes"`
	PurchasedAt   *time.Time `json:"purchased_at"`
}

// ListParams filters the purchase list.
type ListParams struct {
	Search       *string
	EditionID    *int64
	IngredientID *int64
	Page         common.PageParams
}

// Service manages purchases.
type Service struct {
	Q Querier
}

var errNotConfigured = errors.New("purchase service not configured")

func parseStatus(raw *string, def dbgen.PaymentStatus) (dbgen.PaymentStatus, error) {
	if raw == nil {
		return def, nil
	}
	status, ok := db.ParsePaymentStatus(*raw)
	if !ok {
		return "", common.Validation("invalid payment_status", map[string]string{"payment_status": "oneof PENDING PAID CANCELLED REFUNDED FAILED"})
	}
	return status, nil
}

// List returns purchases, newest first.
func (s *Service) List(ctx context.Context, p ListParams) (common.Page[Purchase], error) {
	if s == nil || s.Q == nil {
		return common.Page[Purchase]{}, errNotConfigured
	}
	search := db.Text(p.Search)
	total, err := s.Q.CountPurchases(ctx, dbgen.CountPurchasesParams{
		Search:       search,
		EditionID:    db.Int8(p.EditionID),
		IngredientID: db.Int8(p.IngredientID),
	})
	if err != nil {
		return common.Page[Purchase]{}, fmt.Errorf("count purchases: %w", err)
	}
	rows, err := s.Q.ListPurchases(ctx, dbgen.ListPurchasesParams{
		Search:       search,
		EditionID:    db.Int8(p.EditionID),
		IngredientID: db.Int8(p.IngredientID),
		Limit:        int32(p.Page.Limit),
		Offset:       int32(p.Page.Offset),
	})
	if err != nil {
		return common.Page[Purchase]{}, fmt.Errorf("list purchases: %w", err)
	}
	items := make([]Purchase, 0, len(rows))
	for _, row := range rows {
		items = append(items, FromModel(row))
	}
	return common.NewPage(items, total, p.Page), nil
}

// Get loads a single purchase.
func (s *Service) Get(ctx context.Context, id int64) (Purchase, error) {
	if s == nil || s.Q == nil {
		return Purchase{}, errNotConfigured
	}
	row, err := s.Q.GetPurchase(ctx, id)
	if err != nil {
		if db.IsNoRows(err) {
			return Purchase{}, common.NotFound("purchase")
		}
		return Purchase{}, fmt.Errorf("get purchase: %w", err)
	}
	return FromModel(row), nil
}

// Create records a purchase with total_amount = Subtotal(quantity, unit_price).
func (s *Service) Create(ctx context.Context, in CreateInput) (Purchase, error) {
	if s == nil || s.Q == nil {
		return Purchase{}, errNotConfigured
	}
	if err := common.ValidateStruct(in); err != nil {
		return Purchase{}, err
	}
	status, err := parseStatus(in.PaymentStatus, dbgen.PaymentStatusPENDING)
	if err != nil {
		return Purchase{}, err
	}
	row, err := s.Q.CreatePurchase(ctx, dbgen.CreatePurchaseParams{
		IngredientID:  in.IngredientID,
		EditionID:     db.Int8(in.EditionID),
		PurchasedAt:   db.Timestamptz(in.PurchasedAt),
		Quantity:      in.Quantity,
		UnitPrice:     in.UnitPrice,
		TotalAmount:   pricing.Subtotal(in.Quantity, in.UnitPrice),
		PaymentStatus: status,
		Supplier:      db.Text(in.Supplier),
		Notes:         db.Text(in.Notes),
	})
	if err != nil {
		return Purchase{}, mapWriteError("create purchase", err)
	}
	return FromModel(row), nil
}

// Update applies a partial update and recomputes total_amount from the resulting values.
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (Purchase, error) {
	if s == nil || s.Q == nil {
		return Purchase{}, errNotConfigured
	}
	if err := common.ValidateStruct(in); err != nil {
		return Purchase{}, err
	}
	current, err := s.Q.GetPurchase(ctx, id)
	if err != nil {
		if db.IsNoRows(err) {
			return Purchase{}, common.NotFound("purchase")
		}
		return Purchase{}, fmt.Errorf("get purchase: %w", err)
	}
	status, err := parseStatus(in.PaymentStatus, current.PaymentStatus)
	if err != nil {
		return Purchase{}, err
	}
	params := dbgen.UpdatePurchaseParams{
		ID:            id,
		IngredientID:  current.IngredientID,
		EditionID:     current.EditionID,
		PurchasedAt:   current.PurchasedAt,
		Quantity:      current.Quantity,
		UnitPrice:     current.UnitPrice,
		PaymentStatus: status,
		Supplier:      current.Supplier,
		Notes:         current.Notes,
	}
	if in.IngredientID != nil {
		params.IngredientID = *in.IngredientID
	}
	if in.EditionID != nil {
		params.EditionID = db.Int8(in.EditionID)
	}
	if in.PurchasedAt != nil {
		params.PurchasedAt = db.Timestamptz(in.PurchasedAt)
	}
	if in.Quantity != nil {
		params.Quantity = *in.Quantity
	}
	if in.UnitPrice != nil {
		params.UnitPrice = *in.UnitPrice
	}
	if in.Supplier != nil {
		params.Supplier = db.Text(in.Supplier)
	}
	if in.Notes != nil {
		params.Notes = db.Text(in.Notes)
	}
	params.TotalAmount = pricing.Subtotal(params.Quantity, params.UnitPrice)
	row, err := s.Q.UpdatePurchase(ctx, params)
	if err != nil {
		if db.IsNoRows(err) {
			return Purchase{}, common.NotFound("purchase")
		}
		return Purchase{}, mapWriteError("update purchase", err)
	}
	return FromModel(row), nil
}

// Delete removes a purchase. Ledger entries pointing at it keep their figures.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if s == nil || s.Q == nil {
		return errNotConfigured
	}
	n, err := s.Q.DeletePurchase(ctx, id)
	if err != nil {
		return fmt.Errorf("delete purchase: %w", err)
	}
	if n == 0 {
		return common.NotFound("purchase")
	}
	return nil
}

func mapWriteError(op string, err error) error {
	if db.IsForeignKeyViolation(err) {
		if entity := db.ReferencedEntity(err); entity != "" {
			return common.NotFound(entity)
		}
		return common.Validation("invalid reference", nil)
	}
	if db.IsCheckViolation(err) {
		return common.Validation("quantity and unit_price must be >= 0", nil)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// FromModel converts the generated row into the API shape.
func FromModel(p dbgen.Purchase) Purchase {
	return Purchase{
		ID:            p.ID,
		IngredientID:  p.IngredientID,
		EditionID:     db.Int8Ptr(p.EditionID),
		Quantity:      p.Quantity,
		UnitPrice:     p.UnitPrice,
		TotalAmount:   p.TotalAmount,
		PaymentStatus: p.PaymentStatus,
		Supplier:      db.TextPtr(p.Supplier),
		Notes:         db.TextPtr(p.Notes),
		PurchasedAt:   db.Time(p.PurchasedAt),
		CreatedAt:     db.Time(p.CreatedAt),
	}
}
