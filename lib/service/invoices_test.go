package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/url"
	"testing"
	"time"

	"github.com/getAlby/invoicehub.go/common"
	"github.com/getAlby/invoicehub.go/db/models"
	"github.com/getAlby/invoicehub.go/lib/service/mock_service"
	"github.com/getAlby/invoicehub.go/lib/validation"
	"github.com/getAlby/invoicehub.go/rabbitmq"
	"github.com/golang/mock/gomock"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/ziflex/lecho/v3"
)

type revalidations struct {
	paths []string
}

func (r *revalidations) RevalidatePath(path string) {
	r.paths = append(r.paths, path)
}

type InvoiceServiceTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	store       *mock_service.MockInvoiceStore
	events      *mock_service.MockEventPublisher
	revalidated *revalidations
	svc         *InvoiceService
	now         time.Time
}

func (suite *InvoiceServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.store = mock_service.NewMockInvoiceStore(suite.ctrl)
	suite.events = mock_service.NewMockEventPublisher(suite.ctrl)
	suite.revalidated = &revalidations{}
	suite.now = time.Date(2024, 3, 5, 23, 30, 0, 0, time.UTC)
	suite.svc = &InvoiceService{
		Config: &Config{ItemsPerPage: 6},
		Store:  suite.store,
		Cache:  suite.revalidated,
		Events: suite.events,
		Logger: lecho.New(io.Discard),
		Now:    func() time.Time { return suite.now },
	}
}

func (suite *InvoiceServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func invoiceForm(customerID, amount, status string) url.Values {
	form := url.Values{}
	form.Set("customerId", customerID)
	form.Set("amount", amount)
	form.Set("status", status)
	return form
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoiceInsertsAndRedirects() {
	suite.store.EXPECT().
		InsertInvoice(gomock.Any(), gomock.Any()).
		Times(1).
		DoAndReturn(func(ctx context.Context, invoice *models.Invoice) error {
			assert.Equal(suite.T(), "c1", invoice.CustomerID)
			assert.Equal(suite.T(), int64(5000), invoice.Amount)
			assert.Equal(suite.T(), common.InvoiceStatusPending, invoice.Status)
			assert.Equal(suite.T(), "2024-03-05", invoice.Date.Format(common.DateLayout))
			invoice.ID = "inv-1"
			return nil
		})
	suite.events.EXPECT().
		PublishInvoiceEvent(gomock.Any(), gomock.Any()).
		Times(1).
		DoAndReturn(func(ctx context.Context, event rabbitmq.InvoiceEvent) error {
			assert.Equal(suite.T(), common.InvoiceEventCreated, event.Type)
			assert.Equal(suite.T(), "inv-1", event.InvoiceID)
			assert.Equal(suite.T(), common.InvoicesPath, event.Path)
			return nil
		})

	outcome := suite.svc.CreateInvoice(context.Background(), ActionState{}, invoiceForm("c1", "50", "pending"))

	assert.True(suite.T(), outcome.Redirected())
	assert.Equal(suite.T(), common.InvoicesPath, outcome.RedirectTo)
	assert.Equal(suite.T(), []string{common.InvoicesPath}, suite.revalidated.paths)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoiceConvertsToCents() {
	suite.store.EXPECT().
		InsertInvoice(gomock.Any(), gomock.Any()).
		Times(1).
		DoAndReturn(func(ctx context.Context, invoice *models.Invoice) error {
			assert.Equal(suite.T(), int64(1234), invoice.Amount)
			return nil
		})
	suite.events.EXPECT().PublishInvoiceEvent(gomock.Any(), gomock.Any()).Return(nil)

	outcome := suite.svc.CreateInvoice(context.Background(), ActionState{}, invoiceForm("c1", "12.34", "paid"))
	assert.True(suite.T(), outcome.Redirected())
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoiceInvalidInputSkipsDatabase() {
	prev := ActionState{Message: "Missing Fields. Failed to Create Invoice."}

	outcome := suite.svc.CreateInvoice(context.Background(), prev, invoiceForm("c1", "0", "pending"))

	assert.False(suite.T(), outcome.Redirected())
	assert.Equal(suite.T(), map[string][]string{"amount": {validation.AmountMessage}}, outcome.State.Errors)
	assert.Equal(suite.T(), prev.Message, outcome.State.Message)
	assert.Empty(suite.T(), suite.revalidated.paths)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoiceReportsAllFieldErrors() {
	outcome := suite.svc.CreateInvoice(context.Background(), ActionState{}, url.Values{})

	assert.Equal(suite.T(), map[string][]string{
		"customerId": {validation.CustomerMessage},
		"amount":     {validation.AmountMessage},
		"status":     {validation.StatusMessage},
	}, outcome.State.Errors)
}

// Amounts that round to zero cents or overflow them never reach the store.
func (suite *InvoiceServiceTestSuite) TestAmountOutsideMinorUnitsSkipsDatabase() {
	for _, amount := range []string{"0.001", "1e17", "100000000000000000", "1e300"} {
		outcome := suite.svc.CreateInvoice(context.Background(), ActionState{}, invoiceForm("c1", amount, "pending"))
		assert.False(suite.T(), outcome.Redirected(), amount)
		assert.Equal(suite.T(), map[string][]string{"amount": {validation.AmountMessage}}, outcome.State.Errors, amount)

		outcome = suite.svc.UpdateInvoice(context.Background(), "inv-1", invoiceForm("c1", amount, "paid"))
		assert.False(suite.T(), outcome.Redirected(), amount)
		assert.Equal(suite.T(), map[string][]string{"amount": {validation.AmountMessage}}, outcome.State.Errors, amount)
	}
	assert.Empty(suite.T(), suite.revalidated.paths)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoiceRoundsHalfCentUp() {
	suite.store.EXPECT().
		InsertInvoice(gomock.Any(), gomock.Any()).
		Times(1).
		DoAndReturn(func(ctx context.Context, invoice *models.Invoice) error {
			assert.Equal(suite.T(), int64(1), invoice.Amount)
			return nil
		})
	suite.events.EXPECT().PublishInvoiceEvent(gomock.Any(), gomock.Any()).Return(nil)

	outcome := suite.svc.CreateInvoice(context.Background(), ActionState{}, invoiceForm("c1", "0.005", "pending"))
	assert.True(suite.T(), outcome.Redirected())
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoicePersistenceFailure() {
	suite.store.EXPECT().
		InsertInvoice(gomock.Any(), gomock.Any()).
		Return(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintForeignKey})
	prev := ActionState{Errors: map[string][]string{"status": {validation.StatusMessage}}}

	outcome := suite.svc.CreateInvoice(context.Background(), prev, invoiceForm("unknown", "50", "pending"))

	assert.False(suite.T(), outcome.Redirected())
	assert.Equal(suite.T(), CreateFailedMessage, outcome.State.Message)
	assert.Equal(suite.T(), prev.Errors, outcome.State.Errors)
	assert.Empty(suite.T(), suite.revalidated.paths)
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoice() {
	suite.store.EXPECT().
		UpdateInvoice(gomock.Any(), &models.Invoice{ID: "inv-1", CustomerID: "c2", Amount: 15075, Status: "paid"}).
		Times(1).
		Return(nil)
	suite.events.EXPECT().PublishInvoiceEvent(gomock.Any(), gomock.Any()).Return(nil)

	outcome := suite.svc.UpdateInvoice(context.Background(), "inv-1", invoiceForm("c2", "150.75", "paid"))

	assert.Equal(suite.T(), common.InvoicesPath, outcome.RedirectTo)
	assert.Equal(suite.T(), []string{common.InvoicesPath}, suite.revalidated.paths)
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoiceInvalidInputSkipsDatabase() {
	outcome := suite.svc.UpdateInvoice(context.Background(), "inv-1", invoiceForm("c2", "150", "overdue"))

	assert.False(suite.T(), outcome.Redirected())
	assert.Equal(suite.T(), map[string][]string{"status": {validation.StatusMessage}}, outcome.State.Errors)
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoicePersistenceFailure() {
	suite.store.EXPECT().
		UpdateInvoice(gomock.Any(), gomock.Any()).
		Return(errors.New("connection reset by peer"))

	outcome := suite.svc.UpdateInvoice(context.Background(), "inv-1", invoiceForm("c2", "150", "paid"))

	assert.False(suite.T(), outcome.Redirected())
	assert.Equal(suite.T(), "Database Error: Failed to Update Invoice.", outcome.State.Message)
	assert.Empty(suite.T(), suite.revalidated.paths)
}

func (suite *InvoiceServiceTestSuite) TestDeleteInvoice() {
	suite.store.EXPECT().DeleteInvoice(gomock.Any(), "inv-1").Times(1).Return(nil)
	suite.events.EXPECT().PublishInvoiceEvent(gomock.Any(), gomock.Any()).Return(nil)

	outcome := suite.svc.DeleteInvoice(context.Background(), "inv-1")

	assert.False(suite.T(), outcome.Redirected())
	assert.Equal(suite.T(), DeletedMessage, outcome.State.Message)
	assert.Equal(suite.T(), []string{common.InvoicesPath}, suite.revalidated.paths)
}

func (suite *InvoiceServiceTestSuite) TestDeleteInvoicePersistenceFailure() {
	suite.store.EXPECT().DeleteInvoice(gomock.Any(), "inv-1").Return(context.DeadlineExceeded)

	outcome := suite.svc.DeleteInvoice(context.Background(), "inv-1")

	assert.Equal(suite.T(), DeleteFailedMessage, outcome.State.Message)
	assert.Empty(suite.T(), suite.revalidated.paths)
}

func (suite *InvoiceServiceTestSuite) TestPublishFailureDoesNotUndoMutation() {
	suite.store.EXPECT().DeleteInvoice(gomock.Any(), "inv-1").Return(nil)
	suite.events.EXPECT().PublishInvoiceEvent(gomock.Any(), gomock.Any()).Return(errors.New("amqp: channel closed"))

	outcome := suite.svc.DeleteInvoice(context.Background(), "inv-1")

	assert.Equal(suite.T(), DeletedMessage, outcome.State.Message)
	assert.Equal(suite.T(), []string{common.InvoicesPath}, suite.revalidated.paths)
}

func (suite *InvoiceServiceTestSuite) TestMutationsWithoutEventPublisher() {
	suite.svc.Events = nil
	suite.store.EXPECT().DeleteInvoice(gomock.Any(), "inv-1").Return(nil)

	outcome := suite.svc.DeleteInvoice(context.Background(), "inv-1")
	assert.Equal(suite.T(), DeletedMessage, outcome.State.Message)
}

func (suite *InvoiceServiceTestSuite) TestFetchInvoicePage() {
	suite.store.EXPECT().CountInvoices(gomock.Any(), "lee").Return(13, nil)
	suite.store.EXPECT().FilteredInvoices(gomock.Any(), "lee", 6, 6).Return([]models.Invoice{{ID: "inv-7"}}, nil)

	page, err := suite.svc.FetchInvoicePage(context.Background(), "lee", 2)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 3, page.TotalPages)
	assert.Equal(suite.T(), 2, page.CurrentPage)
	assert.Len(suite.T(), page.Invoices, 1)
}

func (suite *InvoiceServiceTestSuite) TestFetchFilteredInvoicesClampsPage() {
	suite.store.EXPECT().FilteredInvoices(gomock.Any(), "", 6, 0).Return([]models.Invoice{}, nil)

	_, err := suite.svc.FetchFilteredInvoices(context.Background(), "", -3)
	assert.NoError(suite.T(), err)
}

func TestInvoiceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}

func TestKind(t *testing.T) {
	assert.Equal(t, "", Kind(nil))
	assert.Equal(t, KindTimeout, Kind(fmt.Errorf("insert: %w", context.DeadlineExceeded)))
	assert.Equal(t, KindCanceled, Kind(context.Canceled))
	assert.Equal(t, KindNotFound, Kind(sql.ErrNoRows))
	assert.Equal(t, KindForeignKey, Kind(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintForeignKey}))
	assert.Equal(t, KindInvalidInput, Kind(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintCheck}))
	assert.Equal(t, KindInternal, Kind(errors.New("boom")))
}

func TestActionErrorKeepsCause(t *testing.T) {
	cause := sql.ErrConnDone
	err := newActionError(UpdateFailedMessage, cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, KindInternal, err.Kind)
	assert.Equal(t, UpdateFailedMessage, err.Message)
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(sql.ErrNoRows))
	assert.False(t, IsNotFound(errors.New("boom")))
}
