package edition

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"

	"github.com/noah-isme/backend-editions/internal/common"
	"github.com/noah-isme/backend-editions/internal/db"
	dbgen "github.com/noah-isme/backend-editions/internal/db/gen"
)

// Querier captures the database methods required by the edition service.
type Querier interface {
	CountEditions(ctx context.Context, search pgtype.Text) (int64, error)
	ListEditionLedgers(ctx context.Context, arg dbgen.ListEditionLedgersParams) ([]dbgen.ListEditionLedgersRow, error)
	GetEditionLedger(ctx context.Context, id int64) (dbgen.GetEditionLedgerRow, error)
	GetEdition(ctx context.Context, id int64) (dbgen.Edition, error)
	CreateEdition(ctx context.Context, arg dbgen.CreateEditionParams) (dbgen.Edition, error)
	UpdateEdition(ctx context.Context, arg dbgen.UpdateEditionParams) (dbgen.Edition, error)
	DeleteEdition(ctx context.Context, id int64) (int64, error)
}

// CreateInput is the payload for creating an edition.
type CreateInput struct {
	Date         string   `json:"date" validate:"required"`
	Name         string   `json:"name" validate:"required,max=255"`
	PortionPrice *float64 `json:"portion_price" validate:"omitempty,gte=0"`
	Notes        *string  `json:"notes"`
	Status       *string  `json:"status"`
}

// UpdateInput carries a partial update. Fields left nil keep their value.
type UpdateInput struct {
	Date         *string  `json:"date"`
	Name         *string  `json:"name" validate:"omitempty,min=1,max=255"`
	PortionPrice *float64 `json:"portion_price" validate:"omitempty,gte=0"`
	Notes        *string  `json:"notes"`
	Status       *string  `json:"status"`
}

// ListParams filters the edition ledger list.
type ListParams struct {
	Query *string
	Page  common.PageParams
}

// Service exposes edition CRUD and the per-edition ledger.
type Service struct {
	Q      Querier
	Logger *zerolog.Logger
}

var (
	errNotConfigured = errors.New("edition service not configured")
	nopLogger        = zerolog.Nop()
)

func (s *Service) log() *zerolog.Logger {
	if s.Logger == nil {
		return &nopLogger
	}
	return s.Logger
}

// storageError logs a failed query and wraps it with op. editionID is 0 for list queries.
func (s *Service) storageError(op string, editionID int64, err error) error {
	evt := s.log().Error().Err(err).Str("op", op)
	if editionID > 0 {
		evt = evt.Int64("edition_id", editionID)
	}
	evt.Msg("edition storage failure")
	return fmt.Errorf("%s: %w", op, err)
}

// List returns ledgers ordered by date, newest first.
func (s *Service) List(ctx context.Context, p ListParams) (common.Page[Edition], error) {
	if s == nil || s.Q == nil {
		return common.Page[Edition]{}, errNotConfigured
	}
	search := db.Text(p.Query)
	total, err := s.Q.CountEditions(ctx, search)
	if err != nil {
		return common.Page[Edition]{}, s.storageError("count editions", 0, err)
	}
	rows, err := s.Q.ListEditionLedgers(ctx, dbgen.ListEditionLedgersParams{
		Search: search,
		Limit:  int32(p.Page.Limit),
		Offset: int32(p.Page.Offset),
	})
	if err != nil {
		return common.Page[Edition]{}, s.storageError("list edition ledgers", 0, err)
	}
	items := make([]Edition, 0, len(rows))
	for _, row := range rows {
		items = append(items, ledgerFromRow(ledgerRow(row)))
	}
	return common.NewPage(items, total, p.Page), nil
}

// Get returns the ledger of one edition.
func (s *Service) Get(ctx context.Context, id int64) (Edition, error) {
	if s == nil || s.Q == nil {
		return Edition{}, errNotConfigured
	}
	row, err := s.Q.GetEditionLedger(ctx, id)
	if err != nil {
		if db.IsNoRows(err) {
			return Edition{}, common.NotFound("edition")
		}
		return Edition{}, s.storageError("get edition ledger", id, err)
	}
	return ledgerFromRow(ledgerRow(row)), nil
}

// Create stores a new edition. A fresh edition has an empty ledger.
func (s *Service) Create(ctx context.Context, in CreateInput) (Edition, error) {
	if s == nil || s.Q == nil {
		return Edition{}, errNotConfigured
	}
	if err := common.ValidateStruct(in); err != nil {
		return Edition{}, err
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return Edition{}, err
	}
	status, err := parseStatus(in.Status, dbgen.EditionStatusPENDING)
	if err != nil {
		return Edition{}, err
	}
	row, err := s.Q.CreateEdition(ctx, dbgen.CreateEditionParams{
		Date:         date,
		Name:         strings.TrimSpace(in.Name),
		PortionPrice: db.Float8(in.PortionPrice),
		Notes:        db.Text(in.Notes),
		Status:       status,
	})
	if err != nil {
		return Edition{}, s.storageError("create edition", 0, err)
	}
	return ledgerFromRow(ledgerRow{Edition: row}), nil
}

// Update applies a partial update and returns the refreshed ledger.
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (Edition, error) {
	if s == nil || s.Q == nil {
		return Edition{}, errNotConfigured
	}
	if err := common.ValidateStruct(in); err != nil {
		return Edition{}, err
	}
	current, err := s.Q.GetEdition(ctx, id)
	if err != nil {
		if db.IsNoRows(err) {
			return Edition{}, common.NotFound("edition")
		}
		return Edition{}, s.storageError("get edition", id, err)
	}
	params := dbgen.UpdateEditionParams{
		ID:           id,
		Date:         current.Date,
		Name:         current.Name,
		PortionPrice: current.PortionPrice,
		Notes:        current.Notes,
		Status:       current.Status,
	}
	if in.Date != nil {
		if params.Date, err = parseDate(*in.Date); err != nil {
			return Edition{}, err
		}
	}
	if in.Name != nil {
		params.Name = strings.TrimSpace(*in.Name)
	}
	if in.PortionPrice != nil {
		params.PortionPrice = db.Float8(in.PortionPrice)
	}
	if in.Notes != nil {
		params.Notes = db.Text(in.Notes)
	}
	if params.Status, err = parseStatus(in.Status, current.Status); err != nil {
		return Edition{}, err
	}
	if _, err := s.Q.UpdateEdition(ctx, params); err != nil {
		if db.IsNoRows(err) {
			return Edition{}, common.NotFound("edition")
		}
		return Edition{}, s.storageError("update edition", id, err)
	}
	return s.Get(ctx, id)
}

// Delete removes an edition with its sales, ledger entries and purchases.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if s == nil || s.Q == nil {
		return errNotConfigured
	}
	n, err := s.Q.DeleteEdition(ctx, id)
	if err != nil {
		return s.storageError("delete edition", id, err)
	}
	if n == 0 {
		return common.NotFound("edition")
	}
	return nil
}

func parseDate(raw string) (pgtype.Date, error) {
	d, err := db.ParseDate(raw)
	if err != nil {
		return pgtype.Date{}, common.Validation("invalid date", map[string]string{"date": "format=" + db.DateLayout})
	}
	return d, nil
}

func parseStatus(raw *string, def dbgen.EditionStatus) (dbgen.EditionStatus, error) {
	if raw == nil {
		return def, nil
	}
	status, ok := db.ParseEditionStatus(*raw)
	if !ok {
		return "", common.Validation("invalid status", map[string]string{"status": "oneof PENDING ACTIVE FINISHED CANCELLED"})
	}
	return status, nil
}
