package service

import (
	"context"
	"net/url"

	"github.com/getAlby/invoicehub.go/common"
	"github.com/getAlby/invoicehub.go/db/models"
	"github.com/getAlby/invoicehub.go/lib/validation"
)

// ActionState is what a form gets back after a submission that did not
// navigate away.
type ActionState struct {
	Errors  map[string][]string
	Message string
}

// Outcome of a mutation: either a State to render or a RedirectTo target.
type Outcome struct {
	State      ActionState
	RedirectTo string
}

func (o Outcome) Redirected() bool {
	return o.RedirectTo != ""
}

func (svc *InvoiceService) CreateInvoice(ctx context.Context, prev ActionState, form url.Values) Outcome {
	result := validation.CreateInvoice.SafeParse(validation.FieldsFromForm(form))
	if !result.Success {
		state := prev
		state.Errors = validation.FormatIssues(result.Issues)
		return Outcome{State: state}
	}

	invoice := &models.Invoice{
		CustomerID: result.Data.CustomerID,
		Amount:     result.Data.Cents,
		Status:     result.Data.Status,
		Date:       svc.today(),
	}
	if err := svc.Store.InsertInvoice(ctx, invoice); err != nil {
		svc.reportFailure(ctx, "create", newActionError(CreateFailedMessage, err))
		state := prev
		state.Message = CreateFailedMessage
		return Outcome{State: state}
	}

	svc.revalidate(ctx, common.InvoiceEventCreated, invoice.ID, common.InvoicesPath)
	return Outcome{RedirectTo: common.InvoicesPath}
}

func (svc *InvoiceService) UpdateInvoice(ctx context.Context, id string, form url.Values) Outcome {
	result := validation.UpdateInvoice.SafeParse(validation.FieldsFromForm(form))
	if !result.Success {
		return Outcome{State: ActionState{Errors: validation.FormatIssues(result.Issues)}}
	}

	invoice := &models.Invoice{
		ID:         id,
		CustomerID: result.Data.CustomerID,
		Amount:     result.Data.Cents,
		Status:     result.Data.Status,
	}
	if err := svc.Store.UpdateInvoice(ctx, invoice); err != nil {
		svc.reportFailure(ctx, "update", newActionError(UpdateFailedMessage, err))
		return Outcome{State: ActionState{Message: UpdateFailedMessage}}
	}

	svc.revalidate(ctx, common.InvoiceEventUpdated, id, common.InvoicesPath)
	return Outcome{RedirectTo: common.InvoicesPath}
}

func (svc *InvoiceService) DeleteInvoice(ctx context.Context, id string) Outcome {
	if err := svc.Store.DeleteInvoice(ctx, id); err != nil {
		svc.reportFailure(ctx, "delete", newActionError(DeleteFailedMessage, err))
		return Outcome{State: ActionState{Message: DeleteFailedMessage}}
	}

	svc.revalidate(ctx, common.InvoiceEventDeleted, id, common.InvoicesPath)
	return Outcome{State: ActionState{Message: DeletedMessage}}
}

// InvoicePage is one page of the filtered invoice list.
type InvoicePage struct {
	Query       string
	CurrentPage int
	TotalPages  int
	Invoices    []models.Invoice
}

func (svc *InvoiceService) itemsPerPage() int {
	if svc.Config == nil || svc.Config.ItemsPerPage <= 0 {
		return 6
	}
	return svc.Config.ItemsPerPage
}

func (svc *InvoiceService) FetchFilteredInvoices(ctx context.Context, query string, page int) ([]models.Invoice, error) {
	if page < 1 {
		page = 1
	}
	perPage := svc.itemsPerPage()
	return svc.Store.FilteredInvoices(ctx, query, perPage, (page-1)*perPage)
}

// FetchInvoicesPages returns how many pages the filtered list spans.
func (svc *InvoiceService) FetchInvoicesPages(ctx context.Context, query string) (int, error) {
	count, err := svc.Store.CountInvoices(ctx, query)
	if err != nil {
		return 0, err
	}
	perPage := svc.itemsPerPage()
	return (count + perPage - 1) / perPage, nil
}

func (svc *InvoiceService) FetchInvoicePage(ctx context.Context, query string, page int) (*InvoicePage, error) {
	totalPages, err := svc.FetchInvoicesPages(ctx, query)
	if err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}
	invoices, err := svc.FetchFilteredInvoices(ctx, query, page)
	if err != nil {
		return nil, err
	}
	return &InvoicePage{
		Query:       query,
		CurrentPage: page,
		TotalPages:  totalPages,
		Invoices:    invoices,
	}, nil
}

// FetchInvoiceByID returns sql.ErrNoRows when no invoice has that id.
func (svc *InvoiceService) FetchInvoiceByID(ctx context.Context, id string) (*models.Invoice, error) {
	return svc.Store.FindInvoiceByID(ctx, id)
}

func (svc *InvoiceService) FetchCustomers(ctx context.Context) ([]models.Customer, error) {
	return svc.Store.ListCustomers(ctx)
}
