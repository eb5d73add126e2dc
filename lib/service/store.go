package service

import (
	"context"
	"strings"
	"time"

	"github.com/getAlby/invoicehub.go/db/models"
	"github.com/uptrace/bun"
)

// InvoiceStore is everything the handlers and pages need from the database.
// Every method issues a single statement.
type InvoiceStore interface {
	InsertInvoice(ctx context.Context, invoice *models.Invoice) error
	UpdateInvoice(ctx context.Context, invoice *models.Invoice) error
	DeleteInvoice(ctx context.Context, id string) error
	FindInvoiceByID(ctx context.Context, id string) (*models.Invoice, error)
	FilteredInvoices(ctx context.Context, query string, limit, offset int) ([]models.Invoice, error)
	CountInvoices(ctx context.Context, query string) (int, error)
	ListCustomers(ctx context.Context) ([]models.Customer, error)
	InsertCustomer(ctx context.Context, customer *models.Customer) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	InsertUser(ctx context.Context, user *models.User) error
}

// BunStore implements InvoiceStore on a bun database. Each statement runs
// under its own deadline.
type BunStore struct {
	DB      *bun.DB
	Timeout time.Duration
}

func NewBunStore(db *bun.DB, timeout time.Duration) *BunStore {
	return &BunStore{DB: db, Timeout: timeout}
}

func (s *BunStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.Timeout)
}

func (s *BunStore) InsertInvoice(ctx context.Context, invoice *models.Invoice) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	_, err := s.DB.NewInsert().Model(invoice).Exec(ctx)
	return err
}

// UpdateInvoice writes customer, amount and status of the row matching invoice.ID.
// Updating an id that does not exist is not an error.
func (s *BunStore) UpdateInvoice(ctx context.Context, invoice *models.Invoice) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	_, err := s.DB.NewUpdate().
		Model(invoice).
		Column("customer_id", "amount", "status").
		WherePK().
		Exec(ctx)
	return err
}

func (s *BunStore) DeleteInvoice(ctx context.Context, id string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	_, err := s.DB.NewDelete().
		Model((*models.Invoice)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

func (s *BunStore) FindInvoiceByID(ctx context.Context, id string) (*models.Invoice, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	var invoice models.Invoice
	err := s.DB.NewSelect().
		Model(&invoice).
		Where("invoice.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// searchInvoices matches the query against customer name and email, the
// amount in cents, the date and the status, case-insensitively.
func searchInvoices(q *bun.SelectQuery, query string) *bun.SelectQuery {
	query = strings.TrimSpace(query)
	if query == "" {
		return q
	}
	pattern := "%" + strings.ToLower(query) + "%"
	return q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.
			Where("LOWER(customer.name) LIKE ?", pattern).
			WhereOr("LOWER(customer.email) LIKE ?", pattern).
			WhereOr("CAST(invoice.amount AS TEXT) LIKE ?", pattern).
			WhereOr("CAST(invoice.date AS TEXT) LIKE ?", pattern).
			WhereOr("LOWER(invoice.status) LIKE ?", pattern)
	})
}

func (s *BunStore) FilteredInvoices(ctx context.Context, query string, limit, offset int) ([]models.Invoice, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	invoices := []models.Invoice{}
	q := s.DB.NewSelect().
		Model(&invoices).
		Relation("Customer")
	err := searchInvoices(q, query).
		OrderExpr("invoice.date DESC").
		OrderExpr("invoice.id").
		Limit(limit).
		Offset(offset).
		Scan(ctx)
	return invoices, err
}

func (s *BunStore) CountInvoices(ctx context.Context, query string) (int, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	q := s.DB.NewSelect().
		Model((*models.Invoice)(nil)).
		Relation("Customer")
	return searchInvoices(q, query).Count(ctx)
}

func (s *BunStore) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	customers := []models.Customer{}
	err := s.DB.NewSelect().
		Model(&customers).
		Column("id", "name").
		Order("name").
		Scan(ctx)
	return customers, err
}

func (s *BunStore) InsertCustomer(ctx context.Context, customer *models.Customer) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	_, err := s.DB.NewInsert().Model(customer).Exec(ctx)
	return err
}

func (s *BunStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	var user models.User
	err := s.DB.NewSelect().
		Model(&user).
		Where("email = ?", email).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *BunStore) InsertUser(ctx context.Context, user *models.User) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	_, err := s.DB.NewInsert().Model(user).Exec(ctx)
	return err
}
