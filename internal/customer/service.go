package customer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/noah-isme/backend-editions/internal/common"
	"github.com/noah-isme/backend-editions/internal/db"
	dbgen "github.com/noah-isme/backend-editions/internal/db/gen"
)

// Querier captures the database methods required by the customer service.
type Querier interface {
	CountCustomers(ctx context.Context, search pgtype.Text) (int64, error)
	ListCustomers(ctx context.Context, arg dbgen.ListCustomersParams) ([]dbgen.Customer, error)
	GetCustomer(ctx context.Context, id int64) (dbgen.Customer, error)
	CreateCustomer(ctx context.Context, arg dbgen.CreateCustomerParams) (dbgen.Customer, error)
	UpdateCustomer(ctx context.Context, arg dbgen.UpdateCustomerParams) (dbgen.Customer, error)
	DeleteCustomer(ctx context.Context, id int64) (int64, error)
}

// Customer is the API representation of a buyer.
type Customer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email"`
	Phone     *string   `json:"phone"`
	Address   *string   `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateInput is the payload for registering a customer.
type CreateInput struct {
	Name    string  `json:"name" validate:"required,max=255"`
	Email   *string `json:"email" validate:"omitempty,email,max=255"`
	Phone   *string `json:"phone" validate:"omitempty,max=32"`
	Address *string `json:"address" validate:"omitempty,max=512"`
}

// UpdateInput carries a partial update; nil fields are left untouched.
type UpdateInput struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=255"`
	Email   *string `json:"email" validate:"omitempty,email,max=255"`
	Phone   *string `json:"phone" validate:"omitempty,max=32"`
	Address *string `json:"address" validate:"omitempty,max=512"`
}

// Service manages customers.
type Service struct {
	Q Querier
}

var errNotConfigured = errors.New("customer service not configured")

// List returns customers matching search on name, email or phone, ordered by name.
func (s *Service) List(ctx context.Context, search *string, page common.PageParams) (common.Page[Customer], error) {
	if s == nil || s.Q == nil {
		return common.Page[Customer]{}, errNotConfigured
	}
	filter := db.Text(search)
	total, err := s.Q.CountCustomers(ctx, filter)
	if err != nil {
		return common.Page[Customer]{}, fmt.Errorf("count customers: %w", err)
	}
	rows, err := s.Q.ListCustomers(ctx, dbgen.ListCustomersParams{
		Search: filter,
		Limit:  int32(page.Limit),
		Offset: int32(page.Offset),
	})
	if err != nil {
		return common.Page[Customer]{}, fmt.Errorf("list customers: %w", err)
	}
	items := make([]Customer, 0, len(rows))
	for _, row := range rows {
		items = append(items, fromModel(row))
	}
	return common.NewPage(items, total, page), nil
}

// Get loads a single customer.
func (s *Service) Get(ctx context.Context, id int64) (Customer, error) {
	if s == nil || s.Q == nil {
		return Customer{}, errNotConfigured
	}
	row, err := s.Q.GetCustomer(ctx, id)
	if err != nil {
		if db.IsNoRows(err) {
			return Customer{}, common.NotFound("customer")
		}
		return Customer{}, fmt.Errorf("get customer: %w", err)
	}
	return fromModel(row), nil
}

// Create registers a customer. Duplicate email or phone yields a conflict.
func (s *Service) Create(ctx context.Context, in CreateInput) (Customer, error) {
	if s == nil || s.Q == nil {
		return Customer{}, errNotConfigured
	}
	if err := common.ValidateStruct(in); err != nil {
		return Customer{}, err
	}
	row, err := s.Q.CreateCustomer(ctx, dbgen.CreateCustomerParams{
		Name:    in.Name,
		Email:   db.Text(in.Email),
		Phone:   db.Text(in.Phone),
		Address: db.Text(in.Address),
	})
	if err != nil {
		return Customer{}, mapWriteError("create customer", err)
	}
	return fromModel(row), nil
}

// Update applies a partial update.
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (Customer, error) {
	if s == nil || s.Q == nil {
		return Customer{}, errNotConfigured
	}
	if err := common.ValidateStruct(in); err != nil {
		return Customer{}, err
	}
	current, err := s.Q.GetCustomer(ctx, id)
	if err != nil {
		if db.IsNoRows(err) {
			return Customer{}, common.NotFound("customer")
		}
		return Customer{}, fmt.Errorf("get customer: %w", err)
	}
	params := dbgen.UpdateCustomerParams{
		ID:      id,
		Name:    current.Name,
		Email:   current.Email,
		Phone:   current.Phone,
		Address: current.Address,
	}
	if in.Name != nil {
		params.Name = *in.Name
	}
	if in.Email != nil {
		params.Email = db.Text(in.Email)
	}
	if in.Phone != nil {
		params.Phone = db.Text(in.Phone)
	}
	if in.Address != nil {
		params.Address = db.Text(in.Address)
	}
	row, err := s.Q.UpdateCustomer(ctx, params)
	if err != nil {
		if db.IsNoRows(err) {
			return Customer{}, common.NotFound("customer")
		}
		return Customer{}, mapWriteError("update customer", err)
	}
	return fromModel(row), nil
}

// Delete removes a customer and, by cascade, their sales.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if s == nil || s.Q == nil {
		return errNotConfigured
	}
	n, err := s.Q.DeleteCustomer(ctx, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	if n == 0 {
		return common.NotFound("customer")
	}
	return nil
}

func mapWriteError(op string, err error) error {
	if db.IsUniqueViolation(err) {
		switch db.ConstraintName(err) {
		case "uq_customers_email":
			return common.Conflict("email already registered", err)
		case "uq_customers_phone":
			return common.Conflict("phone already registered", err)
		default:
			return common.Conflict("customer already exists", err)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func fromModel(c dbgen.Customer) Customer {
	return Customer{
		ID:        c.ID,
		Name:      c.Name,
		Email:     db.TextPtr(c.Email),
		Phone:     db.TextPtr(c.Phone),
		Address:   db.TextPtr(c.Address),
		CreatedAt: db.Time(c.CreatedAt),
	}
}
