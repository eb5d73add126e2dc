package service_test

import (
	"context"
	"database/sql"
	"io"
	"net/url"
	"testing"
	"time"

	"github.com/getAlby/invoicehub.go/common"
	"github.com/getAlby/invoicehub.go/db"
	"github.com/getAlby/invoicehub.go/db/models"
	"github.com/getAlby/invoicehub.go/lib/cache"
	"github.com/getAlby/invoicehub.go/lib/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/uptrace/bun"
	"github.com/ziflex/lecho/v3"
)

type BunStoreTestSuite struct {
	suite.Suite
	db    *bun.DB
	store *service.BunStore
	delba *models.Customer
	lee   *models.Customer
}

func (suite *BunStoreTestSuite) SetupTest() {
	dbConn, err := db.Open(&service.Config{DatabaseUri: "sqlite://:memory:"})
	require.NoError(suite.T(), err)
	_, err = db.Migrate(context.Background(), dbConn)
	require.NoError(suite.T(), err)

	suite.db = dbConn
	suite.store = service.NewBunStore(dbConn, 5*time.Second)
	suite.delba = &models.Customer{Name: "Delba de Oliveira", Email: "delba@oliveira.com"}
	suite.lee = &models.Customer{Name: "Lee Robinson", Email: "lee@robinson.com"}
	ctx := context.Background()
	require.NoError(suite.T(), suite.store.InsertCustomer(ctx, suite.delba))
	require.NoError(suite.T(), suite.store.InsertCustomer(ctx, suite.lee))
}

func (suite *BunStoreTestSuite) TearDownTest() {
	suite.db.Close()
}

func (suite *BunStoreTestSuite) insertInvoice(customer *models.Customer, amount int64, status, date string) *models.Invoice {
	d, err := time.Parse(common.DateLayout, date)
	require.NoError(suite.T(), err)
	invoice := &models.Invoice{CustomerID: customer.ID, Amount: amount, Status: status, Date: d}
	require.NoError(suite.T(), suite.store.InsertInvoice(context.Background(), invoice))
	return invoice
}

func (suite *BunStoreTestSuite) TestInsertUpdateDelete() {
	ctx := context.Background()
	invoice := suite.insertInvoice(suite.delba, 5000, common.InvoiceStatusPending, "2024-03-05")
	assert.NotEmpty(suite.T(), invoice.ID)

	found, err := suite.store.FindInvoiceByID(ctx, invoice.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(5000), found.Amount)
	assert.Equal(suite.T(), "2024-03-05", found.Date.Format(common.DateLayout))

	err = suite.store.UpdateInvoice(ctx, &models.Invoice{ID: invoice.ID, CustomerID: suite.lee.ID, Amount: 1234, Status: common.InvoiceStatusPaid})
	require.NoError(suite.T(), err)
	found, err = suite.store.FindInvoiceByID(ctx, invoice.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.lee.ID, found.CustomerID)
	assert.Equal(suite.T(), int64(1234), found.Amount)
	assert.Equal(suite.T(), common.InvoiceStatusPaid, found.Status)
	// the date is not part of an update
	assert.Equal(suite.T(), "2024-03-05", found.Date.Format(common.DateLayout))

	require.NoError(suite.T(), suite.store.DeleteInvoice(ctx, invoice.ID))
	_, err = suite.store.FindInvoiceByID(ctx, invoice.ID)
	assert.ErrorIs(suite.T(), err, sql.ErrNoRows)
	assert.True(suite.T(), service.IsNotFound(err))

	// deleting a missing row is not an error
	assert.NoError(suite.T(), suite.store.DeleteInvoice(ctx, invoice.ID))
}

func (suite *BunStoreTestSuite) TestInsertWithUnknownCustomer() {
	invoice := &models.Invoice{CustomerID: "3958dc9e-0000-0000-0000-000000000000", Amount: 5000, Status: "pending", Date: time.Now()}
	err := suite.store.InsertInvoice(context.Background(), invoice)
	require.Error(suite.T(), err)
	assert.Equal(suite.T(), service.KindForeignKey, service.Kind(err))
}

func (suite *BunStoreTestSuite) TestFilteredInvoices() {
	ctx := context.Background()
	suite.insertInvoice(suite.delba, 15795, common.InvoiceStatusPending, "2022-12-06")
	suite.insertInvoice(suite.lee, 20348, common.InvoiceStatusPending, "2022-11-14")
	suite.insertInvoice(suite.lee, 3040, common.InvoiceStatusPaid, "2022-10-29")

	invoices, err := suite.store.FilteredInvoices(ctx, "LEE", 10, 0)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), invoices, 2)
	// newest first
	assert.Equal(suite.T(), int64(20348), invoices[0].Amount)
	assert.Equal(suite.T(), "Lee Robinson", invoices[0].Customer.Name)

	count, err := suite.store.CountInvoices(ctx, "paid")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, count)

	count, err = suite.store.CountInvoices(ctx, "")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 3, count)

	invoices, err = suite.store.FilteredInvoices(ctx, "", 2, 2)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), invoices, 1)
	assert.Equal(suite.T(), int64(3040), invoices[0].Amount)
}

func (suite *BunStoreTestSuite) TestListCustomersAndUsers() {
	ctx := context.Background()
	customers, err := suite.store.ListCustomers(ctx)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), customers, 2)
	assert.Equal(suite.T(), "Delba de Oliveira", customers[0].Name)

	_, err = suite.store.FindUserByEmail(ctx, "user@nextmail.com")
	assert.ErrorIs(suite.T(), err, sql.ErrNoRows)

	svc := &service.InvoiceService{Store: suite.store, Logger: lecho.New(io.Discard)}
	created, err := svc.CreateUser(ctx, "User", " User@Nextmail.com ", "")
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), created.Password, 20)

	user, err := suite.store.FindUserByEmail(ctx, "user@nextmail.com")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), created.ID, user.ID)
	assert.NotEqual(suite.T(), created.Password, user.Password)
}

func (suite *BunStoreTestSuite) TestCreateInvoiceThroughService() {
	ctx := context.Background()
	svc := &service.InvoiceService{
		Config: &service.Config{ItemsPerPage: 6},
		Store:  suite.store,
		Cache:  cache.NewMemory(10, time.Minute),
		Logger: lecho.New(io.Discard),
	}
	form := url.Values{}
	form.Set("customerId", suite.lee.ID)
	form.Set("amount", "12.34")
	form.Set("status", "pending")

	outcome := svc.CreateInvoice(ctx, service.ActionState{}, form)
	require.True(suite.T(), outcome.Redirected(), outcome.State.Message)

	page, err := svc.FetchInvoicePage(ctx, "", 1)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), page.Invoices, 1)
	assert.Equal(suite.T(), int64(1234), page.Invoices[0].Amount)
	assert.Equal(suite.T(), time.Now().UTC().Format(common.DateLayout), page.Invoices[0].Date.Format(common.DateLayout))
	assert.Equal(suite.T(), 1, page.TotalPages)

	form.Set("customerId", "3958dc9e-0000-0000-0000-000000000000")
	outcome = svc.CreateInvoice(ctx, service.ActionState{}, form)
	assert.Equal(suite.T(), service.CreateFailedMessage, outcome.State.Message)
}

func TestBunStoreTestSuite(t *testing.T) {
	suite.Run(t, new(BunStoreTestSuite))
}
