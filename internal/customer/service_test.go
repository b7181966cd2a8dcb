package customer

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-editions/internal/common"
	dbgen "github.com/noah-isme/backend-editions/internal/db/gen"
)

type stubQueries struct {
	rows   map[int64]dbgen.Customer
	nextID int64
}

func newStubQueries() *stubQueries {
	return &stubQueries{rows: map[int64]dbgen.Customer{}, nextID: 1}
}

func matches(c dbgen.Customer, search pgtype.Text) bool {
	if !search.Valid {
		return true
	}
	needle := strings.ToLower(search.String)
	for _, field := range []string{c.Name, c.Email.String, c.Phone.String} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func (s *stubQueries) CountCustomers(ctx context.Context, search pgtype.Text) (int64, error) {
	var n int64
	for _, c := range s.rows {
		if matches(c, search) {
			n++
		}
	}
	return n, nil
}

func (s *stubQueries) ListCustomers(ctx context.Context, arg dbgen.ListCustomersParams) ([]dbgen.Customer, error) {
	var out []dbgen.Customer
	for id := int64(1); id < s.nextID; id++ {
		c, ok := s.rows[id]
		if ok && matches(c, arg.Search) {
			out = append(out, c)
		}
	}
	start := int(arg.Offset)
	if start > len(out) {
		start = len(out)
	}
	end := start + int(arg.Limit)
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], nil
}

func (s *stubQueries) GetCustomer(ctx context.Context, id int64) (dbgen.Customer, error) {
	c, ok := s.rows[id]
	if !ok {
		return dbgen.Customer{}, pgx.ErrNoRows
	}
	return c, nil
}

func (s *stubQueries) unique(id int64, email, phone pgtype.Text) error {
	for _, c := range s.rows {
		if c.ID == id {
			continue
		}
		if email.Valid && c.Email.Valid && c.Email.String == email.String {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_customers_email"}
		}
		if phone.Valid && c.Phone.Valid && c.Phone.String == phone.String {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_customers_phone"}
		}
	}
	return nil
}

func (s *stubQueries) CreateCustomer(ctx context.Context, arg dbgen.CreateCustomerParams) (dbgen.Customer, error) {
	if err := s.unique(0, arg.Email, arg.Phone); err != nil {
		return dbgen.Customer{}, err
	}
	c := dbgen.Customer{
		ID:        s.nextID,
		Name:      arg.Name,
		Email:     arg.Email,
		Phone:     arg.Phone,
		Address:   arg.Address,
		CreatedAt: pgtype.Timestamptz{Time: time.Now(), Valid: true},
	}
	s.rows[c.ID] = c
	s.nextID++
	return c, nil
}

func (s *stubQueries) UpdateCustomer(ctx context.Context, arg dbgen.UpdateCustomerParams) (dbgen.Customer, error) {
	c, ok := s.rows[arg.ID]
	if !ok {
		return dbgen.Customer{}, pgx.ErrNoRows
	}
	if err := s.unique(arg.ID, arg.Email, arg.Phone); err != nil {
		return dbgen.Customer{}, err
	}
	c.Name, c.Email, c.Phone, c.Address = arg.Name, arg.Email, arg.Phone, arg.Address
	s.rows[arg.ID] = c
	return c, nil
}

func (s *stubQueries) DeleteCustomer(ctx context.Context, id int64) (int64, error) {
	if _, ok := s.rows[id]; !ok {
		return 0, nil
	}
	delete(s.rows, id)
	return 1, nil
}

func strPtr(s string) *string { return &s }

func TestCreateRejectsDuplicateEmailAndPhone(t *testing.T) {
	svc := &Service{Q: newStubQueries()}
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{Name: "Ana", Email: strPtr("ana@example.com"), Phone: strPtr("555-1")})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateInput{Name: "Ana B", Email: strPtr("ana@example.com")})
	require.True(t, common.HasCode(err, common.CodeConflict))
	require.Contains(t, err.(*common.AppError).Message, "email")

	_, err = svc.Create(ctx, CreateInput{Name: "Other", Phone: strPtr("555-1")})
	require.True(t, common.HasCode(err, common.CodeConflict))
	require.Contains(t, err.(*common.AppError).Message, "phone")
}

func TestCreateValidatesPayload(t *testing.T) {
	svc := &Service{Q: newStubQueries()}
	_, err := svc.Create(context.Background(), CreateInput{Name: "", Email: strPtr("not-an-email")})
	require.True(t, common.HasCode(err, common.CodeValidation))
}

func TestUpdateIsPartial(t *testing.T) {
	svc := &Service{Q: newStubQueries()}
	ctx := context.Background()
	created, err := svc.Create(ctx, CreateInput{Name: "Ana", Email: strPtr("ana@example.com"), Address: strPtr("Main St 1")})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, UpdateInput{Phone: strPtr("555-9")})
	require.NoError(t, err)
	require.Equal(t, "Ana", updated.Name)
	require.Equal(t, "ana@example.com", *updated.Email)
	require.Equal(t, "555-9", *updated.Phone)
	require.Equal(t, "Main St 1", *updated.Address)

	_, err = svc.Update(ctx, 999, UpdateInput{Name: strPtr("x")})
	require.True(t, common.HasCode(err, common.CodeNotFound))
}

func TestListSearchAndPaging(t *testing.T) {
	svc := &Service{Q: newStubQueries()}
	ctx := context.Background()
	for _, name := range []string{"Ana", "Bruno", "Anabel"} {
		_, err := svc.Create(ctx, CreateInput{Name: name})
		require.NoError(t, err)
	}

	page, err := svc.List(ctx, strPtr("ana"), common.PageParams{Limit: 1, Offset: 0})
	require.NoError(t, err)
	require.Equal(t, int64(2), page.Total)
	require.Len(t, page.Items, 1)
	require.NotNil(t, page.NextOffset)
	require.Equal(t, 1, *page.NextOffset)
}

func TestDeleteMissing(t *testing.T) {
	svc := &Service{Q: newStubQueries()}
	err := svc.Delete(context.Background(), 7)
	require.True(t, common.HasCode(err, common.CodeNotFound))
}
