// Package sale records portion sales per edition and customer. Sale totals are always
// derived from the edition's portion price and never accepted from clients.
package sale

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"

	"github.com/noah-isme/backend-editions/internal/common"
	"github.com/noah-isme/backend-editions/internal/db"
	dbgen "github.com/noah-isme/backend-editions/internal/db/gen"
	"github.com/noah-isme/backend-editions/internal/obs"
	"github.com/noah-isme/backend-editions/internal/pricing"
)

// Store captures the database methods required by the sale service.
type Store interface {
	GetEdition(ctx context.Context, id int64) (dbgen.Edition, error)
	GetCustomer(ctx context.Context, id int64) (dbgen.Customer, error)
	CountSales(ctx context.Context, arg dbgen.CountSalesParams) (int64, error)
	ListSaleDetails(ctx context.Context, arg dbgen.ListSaleDetailsParams) ([]dbgen.ListSaleDetailsRow, error)
	GetSaleDetail(ctx context.Context, id int64) (dbgen.GetSaleDetailRow, error)
	GetSaleForUpdate(ctx context.Context, id int64) (dbgen.Sale, error)
	CreateSale(ctx context.Context, arg dbgen.CreateSaleParams) (dbgen.Sale, error)
	UpdateSale(ctx context.Context, arg dbgen.UpdateSaleParams) (dbgen.Sale, error)
	DeleteSale(ctx context.Context, id int64) (int64, error)
}

// Sale is the API representation of a sale with its customer and edition names.
type Sale struct {
	ID              int64               `json:"id"`
	EditionID       int64               `json:"edition_id"`
	CustomerID      int64               `json:"customer_id"`
	TotalPortions   int64               `json:"total_portions"`
	TotalAmount     float64             `json:"total_amount"`
	PaymentStatus   dbgen.PaymentStatus `json:"payment_status"`
	PaymentTransfer bool                `json:"payment_transfer"`
	Delivered       bool                `json:"delivered"`
	Saved           bool                `json:"saved"`
	AdditionalCost  *float64            `json:"additional_cost"`
	DiscountPrice   *float64            `json:"discount_price"`
	SoldBy          *int64              `json:"sold_by"`
	SellerName      *string             `json:"seller_name"`
	CreatedAt       time.Time           `json:"created_at"`
	CustomerName    string              `json:"customer_name"`
	EditionName     string              `json:"edition_name"`
	EditionDate     string              `json:"edition_date"`
}

// CreateInput is the payload for recording a sale.
type CreateInput struct {
	EditionID       int64    `json:"edition_id" validate:"required,gt=0"`
	CustomerID      int64    `json:"customer_id" validate:"required,gt=0"`
	TotalPortions   int64    `json:"total_portions"`
	PaymentStatus   *string  `json:"payment_status"`
	PaymentTransfer bool     `json:"payment_transfer"`
	Delivered       bool     `json:"delivered"`
	Saved           bool     `json:"saved"`
	AdditionalCost  *float64 `json:"additional_cost" validate:"omitempty,gte=0"`
	DiscountPrice   *float64 `json:"discount_price" validate:"omitempty,gte=0"`
	SoldBy          *int64   `json:"sold_by" validate:"omitempty,gt=0"`
	SellerName      *string  `json:"seller_name" validate:"omitempty,max=255"`
}

// UpdateInput carries a partial update. A total_amount sent by the client is ignored.
type UpdateInput struct {
	EditionID       *int64   `json:"edition_id" validate:"omitempty,gt=0"`
	CustomerID      *int64   `json:"customer_id" validate:"omitempty,gt=0"`
	TotalPortions   *int64   `json:"total_portions"`
	PaymentStatus   *string  `json:"payment_status"`
	PaymentTransfer *bool    `json:"payment_transfer"`
	Delivered       *bool    `json:"delivered"`
	Saved           *bool    `json:"saved"`
	AdditionalCost  *float64 `json:"additional_cost" validate:"omitempty,gte=0"`
	DiscountPrice   *float64 `json:"discount_price" validate:"omitempty,gte=0"`
	SoldBy          *int64   `json:"sold_by" validate:"omitempty,gt=0"`
	SellerName      *string  `json:"seller_name" validate:"omitempty,max=255"`
}

func (in UpdateInput) touchesTotal() bool {
	return in.EditionID != nil || in.TotalPortions != nil || in.DiscountPrice != nil || in.AdditionalCost != nil
}

// ListParams filters the sale list.
type ListParams struct {
	EditionID     *int64
	CustomerID    *int64
	PaymentStatus *string
	Page          common.PageParams
}

// Service manages sales. Updates run in a transaction that locks the sale row.
type Service struct {
	Pool    db.Beginner
	Q       Store
	Queries func(tx pgx.Tx) Store
	Logger  *zerolog.Logger
}

var (
	errNotConfigured = errors.New("sale service not configured")
	nopLogger        = zerolog.Nop()
)

func (s *Service) log() *zerolog.Logger {
	if s.Logger == nil {
		return &nopLogger
	}
	return s.Logger
}

// List returns sales, newest first.
func (s *Service) List(ctx context.Context, p ListParams) (common.Page[Sale], error) {
	if s == nil || s.Q == nil {
		return common.Page[Sale]{}, errNotConfigured
	}
	var status pgtype.Text
	if p.PaymentStatus != nil {
		parsed, err := parseStatus(p.PaymentStatus, "")
		if err != nil {
			return common.Page[Sale]{}, err
		}
		status = pgtype.Text{String: string(parsed), Valid: true}
	}
	total, err := s.Q.CountSales(ctx, dbgen.CountSalesParams{
		EditionID:     db.Int8(p.EditionID),
		CustomerID:    db.Int8(p.CustomerID),
		PaymentStatus: status,
	})
	if err != nil {
		return common.Page[Sale]{}, fmt.Errorf("count sales: %w", err)
	}
	rows, err := s.Q.ListSaleDetails(ctx, dbgen.ListSaleDetailsParams{
		EditionID:     db.Int8(p.EditionID),
		CustomerID:    db.Int8(p.CustomerID),
		PaymentStatus: status,
		Limit:         int32(p.Page.Limit),
		Offset:        int32(p.Page.Offset),
	})
	if err != nil {
		return common.Page[Sale]{}, fmt.Errorf("list sales: %w", err)
	}
	items := make([]Sale, 0, len(rows))
	for _, row := range rows {
		items = append(items, fromDetail(dbgen.GetSaleDetailRow(row)))
	}
	return common.NewPage(items, total, p.Page), nil
}

// Get loads a single sale.
func (s *Service) Get(ctx context.Context, id int64) (Sale, error) {
	if s == nil || s.Q == nil {
		return Sale{}, errNotConfigured
	}
	row, err := s.Q.GetSaleDetail(ctx, id)
	if err != nil {
		if db.IsNoRows(err) {
			return Sale{}, common.NotFound("sale")
		}
		return Sale{}, fmt.Errorf("get sale: %w", err)
	}
	return fromDetail(row), nil
}

// Create records a sale after checking that its edition and customer exist.
// total_amount = portions*price - discount + additional cost, never below zero.
func (s *Service) Create(ctx context.Context, in CreateInput) (out Sale, err error) {
	if s == nil || s.Q == nil {
		return Sale{}, errNotConfigured
	}
	defer func() { obs.ObserveSale("create", outcome(err), out.TotalAmount) }()
	if err := common.ValidateStruct(in); err != nil {
		return Sale{}, err
	}
	if err := checkPortions(in.TotalPortions); err != nil {
		return Sale{}, err
	}
	status, err := parseStatus(in.PaymentStatus, dbgen.PaymentStatusPENDING)
	if err != nil {
		return Sale{}, err
	}
	edition, err := s.Q.GetEdition(ctx, in.EditionID)
	if err != nil {
		return Sale{}, lookupError("edition", err)
	}
	if _, err := s.Q.GetCustomer(ctx, in.CustomerID); err != nil {
		return Sale{}, lookupError("customer", err)
	}
	total, err := computeTotal(in.TotalPortions, edition, in.DiscountPrice, in.AdditionalCost)
	if err != nil {
		return Sale{}, err
	}
	row, err := s.Q.CreateSale(ctx, dbgen.CreateSaleParams{
		EditionID:       in.EditionID,
		CustomerID:      in.CustomerID,
		TotalPortions:   int32(in.TotalPortions),
		TotalAmount:     total,
		PaymentStatus:   status,
		PaymentTransfer: in.PaymentTransfer,
		Delivered:       in.Delivered,
		Saved:           in.Saved,
		AdditionalCost:  db.Float8(in.AdditionalCost),
		DiscountPrice:   db.Float8(in.DiscountPrice),
		SoldBy:          db.Int8(in.SoldBy),
		SellerName:      db.Text(in.SellerName),
	})
	if err != nil {
		return Sale{}, s.mapWriteError("create sale", in.EditionID, in.CustomerID, err)
	}
	return s.Get(ctx, row.ID)
}

// Update applies a partial update. The total is recomputed with the post-update values
// whenever edition_id, total_portions, discount_price or additional_cost is supplied.
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (out Sale, err error) {
	if s == nil || s.Q == nil || s.Pool == nil || s.Queries == nil {
		return Sale{}, errNotConfigured
	}
	defer func() { obs.ObserveSale("update", outcome(err), out.TotalAmount) }()
	if err := common.ValidateStruct(in); err != nil {
		return Sale{}, err
	}
	if in.TotalPortions != nil {
		if err := checkPortions(*in.TotalPortions); err != nil {
			return Sale{}, err
		}
	}

	tx, err := s.Pool.Begin(ctx)
	if err != nil {
		return Sale{}, fmt.Errorf("begin sale update: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()
	qtx := s.Queries(tx)

	current, err := qtx.GetSaleForUpdate(ctx, id)
	if err != nil {
		return Sale{}, lookupError("sale", err)
	}
	params := dbgen.UpdateSaleParams{
		ID:              id,
		EditionID:       current.EditionID,
		CustomerID:      current.CustomerID,
		TotalPortions:   current.TotalPortions,
		TotalAmount:     current.TotalAmount,
		PaymentTransfer: current.PaymentTransfer,
		Delivered:       current.Delivered,
		Saved:           current.Saved,
		AdditionalCost:  current.AdditionalCost,
		DiscountPrice:   current.DiscountPrice,
		SoldBy:          current.SoldBy,
		SellerName:      current.SellerName,
	}
	if params.PaymentStatus, err = parseStatus(in.PaymentStatus, current.PaymentStatus); err != nil {
		return Sale{}, err
	}
	if in.EditionID != nil {
		params.EditionID = *in.EditionID
	}
	if in.CustomerID != nil {
		params.CustomerID = *in.CustomerID
		if _, err := qtx.GetCustomer(ctx, params.CustomerID); err != nil {
			return Sale{}, lookupError("customer", err)
		}
	}
	if in.TotalPortions != nil {
		params.TotalPortions = int32(*in.TotalPortions)
	}
	if in.PaymentTransfer != nil {
		params.PaymentTransfer = *in.PaymentTransfer
	}
	if in.Delivered != nil {
		params.Delivered = *in.Delivered
	}
	if in.Saved != nil {
		params.Saved = *in.Saved
	}
	if in.AdditionalCost != nil {
		params.AdditionalCost = db.Float8(in.AdditionalCost)
	}
	if in.DiscountPrice != nil {
		params.DiscountPrice = db.Float8(in.DiscountPrice)
	}
	if in.SoldBy != nil {
		params.SoldBy = db.Int8(in.SoldBy)
	}
	if in.SellerName != nil {
		params.SellerName = db.Text(in.SellerName)
	}
	if in.touchesTotal() {
		edition, err := qtx.GetEdition(ctx, params.EditionID)
		if err != nil {
			return Sale{}, lookupError("edition", err)
		}
		total, err := computeTotal(int64(params.TotalPortions), edition,
			db.Float8Ptr(params.DiscountPrice), db.Float8Ptr(params.AdditionalCost))
		if err != nil {
			return Sale{}, err
		}
		params.TotalAmount = total
	}

	if _, err := qtx.UpdateSale(ctx, params); err != nil {
		return Sale{}, s.mapWriteError("update sale", params.EditionID, params.CustomerID, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return Sale{}, s.mapWriteError("commit sale update", params.EditionID, params.CustomerID, err)
	}
	return s.Get(ctx, id)
}

// Delete removes a sale.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if s == nil || s.Q == nil {
		return errNotConfigured
	}
	n, err := s.Q.DeleteSale(ctx, id)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	if n == 0 {
		return common.NotFound("sale")
	}
	return nil
}

func computeTotal(portions int64, edition dbgen.Edition, discount, additional *float64) (float64, error) {
	total, err := pricing.SaleTotal(pricing.SaleInput{
		Portions:       portions,
		PortionPrice:   db.Float8Ptr(edition.PortionPrice),
		Discount:       discount,
		AdditionalCost: additional,
	})
	switch {
	case errors.Is(err, pricing.ErrPriceNotSet):
		return 0, common.Precondition("edition portion price is not set", err)
	case errors.Is(err, pricing.ErrNegativePortions):
		return 0, common.Validation(err.Error(), map[string]string{"total_portions": "gte=0"})
	case err != nil:
		return 0, err
	}
	return total, nil
}

func checkPortions(portions int64) error {
	if portions < 0 {
		return common.Validation(pricing.ErrNegativePortions.Error(), map[string]string{"total_portions": "gte=0"})
	}
	if portions > math.MaxInt32 {
		return common.Validation("total_portions is too large", map[string]string{"total_portions": "max=2147483647"})
	}
	return nil
}

func lookupError(entity string, err error) error {
	if db.IsNoRows(err) {
		return common.NotFound(entity)
	}
	return fmt.Errorf("get %s: %w", entity, err)
}

func (s *Service) mapWriteError(op string, editionID, customerID int64, err error) error {
	switch {
	case db.IsUniqueViolation(err):
		return common.Conflict("sale already exists for this customer and edition", err)
	case db.IsForeignKeyViolation(err):
		if entity := db.ReferencedEntity(err); entity != "" {
			return common.NotFound(entity)
		}
		return common.Validation("invalid reference", nil)
	case db.IsCheckViolation(err):
		return common.Validation("sale violates a value constraint", nil)
	}
	s.log().Error().Err(err).
		Int64("edition_id", editionID).
		Int64("customer_id", customerID).
		Msg(op + " failed")
	return fmt.Errorf("%s: %w", op, err)
}

func parseStatus(raw *string, def dbgen.PaymentStatus) (dbgen.PaymentStatus, error) {
	if raw == nil {
		return def, nil
	}
	status, ok := db.ParsePaymentStatus(*raw)
	if !ok {
		return "", invalidStatus()
	}
	return status, nil
}

func invalidStatus() error {
	return common.Validation("invalid payment_status", map[string]string{"payment_status": "oneof PENDING PAID CANCELLED REFUNDED FAILED"})
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case common.HasCode(err, common.CodeConflict):
		return "conflict"
	case common.IsAppError(err):
		return "rejected"
	default:
		return "error"
	}
}

func fromDetail(row dbgen.GetSaleDetailRow) Sale {
	s := row.Sale
	return Sale{
		ID:              s.ID,
		EditionID:       s.EditionID,
		CustomerID:      s.CustomerID,
		TotalPortions:   int64(s.TotalPortions),
		TotalAmount:     s.TotalAmount,
		PaymentStatus:   s.PaymentStatus,
		PaymentTransfer: s.PaymentTransfer,
		Delivered:       s.Delivered,
		Saved:           s.Saved,
		AdditionalCost:  db.Float8Ptr(s.AdditionalCost),
		DiscountPrice:   db.Float8Ptr(s.DiscountPrice),
		SoldBy:          db.Int8Ptr(s.SoldBy),
		SellerName:      db.TextPtr(s.SellerName),
		CreatedAt:       db.Time(s.CreatedAt),
		CustomerName:    row.CustomerName,
		EditionName:     row.EditionName,
		EditionDate:     db.DateString(row.EditionDate),
	}
}
