package controllers

import (
	"net/http"
	"strconv"

	"github.com/getAlby/invoicehub.go/common"
	"github.com/getAlby/invoicehub.go/db/models"
	"github.com/getAlby/invoicehub.go/lib"
	"github.com/getAlby/invoicehub.go/lib/responses"
	"github.com/getAlby/invoicehub.go/lib/service"
	"github.com/getAlby/invoicehub.go/lib/validation"
	"github.com/labstack/echo/v4"
)

// InvoicesController : InvoicesController struct
type InvoicesController struct {
	svc *service.InvoiceService
}

func NewInvoicesController(svc *service.InvoiceService) *InvoicesController {
	return &InvoicesController{
		svc: svc,
	}
}

type InvoicesPage struct {
	Page    *service.InvoicePage
	Message string
}

type InvoiceFormPage struct {
	Action    string
	Invoice   *models.Invoice
	Customers []models.Customer
	Values    validation.Fields
	State     service.ActionState
}

// List : List Controller
func (controller *InvoicesController) List(c echo.Context) error {
	return controller.renderList(c, http.StatusOK, "")
}

func (controller *InvoicesController) renderList(c echo.Context, status int, message string) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	invoicePage, err := controller.svc.FetchInvoicePage(c.Request().Context(), c.QueryParam("query"), page)
	if err != nil {
		c.Logger().Errorf("Failed to fetch invoices: %v", err)
		return err
	}
	return c.Render(status, "invoices", InvoicesPage{Page: invoicePage, Message: message})
}

// CreateForm : CreateForm Controller
func (controller *InvoicesController) CreateForm(c echo.Context) error {
	return controller.renderForm(c, http.StatusOK, InvoiceFormPage{Action: common.InvoiceCreatePath})
}

// Create : Create Controller
func (controller *InvoicesController) Create(c echo.Context) error {
	form, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, responses.BadArgumentsError)
	}

	outcome := controller.svc.CreateInvoice(c.Request().Context(), service.ActionState{}, form)
	if outcome.Redirected() {
		return c.Redirect(http.StatusSeeOther, outcome.RedirectTo)
	}
	return controller.renderForm(c, stateStatus(outcome.State), InvoiceFormPage{
		Action: common.InvoiceCreatePath,
		Values: validation.FieldsFromForm(form),
		State:  outcome.State,
	})
}

// EditForm : EditForm Controller
func (controller *InvoicesController) EditForm(c echo.Context) error {
	invoice, err := controller.findInvoice(c)
	if err != nil {
		return err
	}
	return controller.renderForm(c, http.StatusOK, InvoiceFormPage{
		Action:  editPath(invoice.ID),
		Invoice: invoice,
		Values: validation.Fields{
			CustomerID: invoice.CustomerID,
			Amount:     lib.FromMinorUnits(invoice.Amount).StringFixed(2),
			Status:     invoice.Status,
		},
	})
}

// Update : Update Controller
func (controller *InvoicesController) Update(c echo.Context) error {
	form, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, responses.BadArgumentsError)
	}

	id := c.Param("id")
	outcome := controller.svc.UpdateInvoice(c.Request().Context(), id, form)
	if outcome.Redirected() {
		return c.Redirect(http.StatusSeeOther, outcome.RedirectTo)
	}
	return controller.renderForm(c, stateStatus(outcome.State), InvoiceFormPage{
		Action:  editPath(id),
		Invoice: &models.Invoice{ID: id},
		Values:  validation.FieldsFromForm(form),
		State:   outcome.State,
	})
}

// Delete : Delete Controller
func (controller *InvoicesController) Delete(c echo.Context) error {
	outcome := controller.svc.DeleteInvoice(c.Request().Context(), c.Param("id"))
	return controller.renderList(c, stateStatus(outcome.State), outcome.State.Message)
}

func (controller *InvoicesController) findInvoice(c echo.Context) (*models.Invoice, error) {
	invoice, err := controller.svc.FetchInvoiceByID(c.Request().Context(), c.Param("id"))
	if service.IsNotFound(err) {
		return nil, echo.NewHTTPError(http.StatusNotFound, responses.NotFoundError)
	}
	if err != nil {
		c.Logger().Errorf("Failed to fetch invoice %s: %v", c.Param("id"), err)
		return nil, err
	}
	return invoice, nil
}

func (controller *InvoicesController) renderForm(c echo.Context, status int, page InvoiceFormPage) error {
	customers, err := controller.svc.FetchCustomers(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("Failed to fetch customers: %v", err)
		return err
	}
	page.Customers = customers
	return c.Render(status, "invoice_form", page)
}

func editPath(id string) string {
	return common.InvoicesPath + "/" + id + "/edit"
}

// stateStatus maps a returned ActionState to the response status: field
// errors are the client's, a message without field errors is either a
// store failure or the delete confirmation.
func stateStatus(state service.ActionState) int {
	switch {
	case len(state.Errors) > 0:
		return http.StatusUnprocessableEntity
	case state.Message == service.DeletedMessage:
		return http.StatusOK
	case state.Message != "":
		return http.StatusInternalServerError
	default:
		return http.StatusOK
	}
}
