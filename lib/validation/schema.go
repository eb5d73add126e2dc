package validation

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/getAlby/invoicehub.go/lib"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const (
	CustomerMessage      = "Please select a customer."
	AmountMessage        = "Please enter an amount greater than $0."
	AmountInvalidMessage = "Please enter a valid amount."
	StatusMessage        = "Please select an invoice status."
	RequiredMessage      = "This field is required."
)

// Fields holds the raw, untrusted values of an invoice form submission.
type Fields struct {
	ID         string
	CustomerID string
	Amount     string
	Status     string
	Date       string
}

// FieldsFromForm picks the invoice keys out of a submitted form. Missing keys
// are read as empty strings.
func FieldsFromForm(form url.Values) Fields {
	return Fields{
		ID:         form.Get("id"),
		CustomerID: form.Get("customerId"),
		Amount:     form.Get("amount"),
		Status:     form.Get("status"),
		Date:       form.Get("date"),
	}
}

// InvoiceInput is the typed result of a successful parse.
type InvoiceInput struct {
	ID         string          `json:"id" validate:"required"`
	CustomerID string          `json:"customerId" validate:"required"`
	Amount     decimal.Decimal `json:"amount" validate:"gt=0"`
	Status     string          `json:"status" validate:"oneof=pending paid"`
	Date       string          `json:"date" validate:"required"`
	// Cents is Amount in minor units, set only on success.
	Cents      int64           `json:"-"`
}

// fieldOrder is the declaration order of InvoiceInput, keyed by form name.
var fieldOrder = []string{"id", "customerId", "amount", "status", "date"}

var messages = map[string]string{
	"customerId": CustomerMessage,
	"amount":     AmountMessage,
	"status":     StatusMessage,
}

// Schema is an immutable set of invoice rules. The zero value checks every field.
type Schema struct {
	name string
	omit []string
}

var (
	InvoiceSchema = Schema{name: "invoice"}
	// CreateInvoice and UpdateInvoice accept {customerId, amount, status}.
	CreateInvoice = InvoiceSchema.Omit("create", "ID", "Date")
	UpdateInvoice = InvoiceSchema.Omit("update", "ID", "Date")
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// Omit derives a schema that skips the given InvoiceInput struct fields.
func (s Schema) Omit(name string, fields ...string) Schema {
	omit := make([]string, 0, len(s.omit)+len(fields))
	omit = append(omit, s.omit...)
	omit = append(omit, fields...)
	return Schema{name: name, omit: omit}
}

func (s Schema) Name() string {
	return s.name
}

// Result is the outcome of SafeParse: either Data or Issues is meaningful.
type Result struct {
	Success bool
	Data    InvoiceInput
	Issues  []Issue
}

// Error is returned by Parse when the input does not satisfy the schema.
type Error struct {
	Schema string
	Issues []Issue
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", strings.Join(issue.Path, "."), issue.Message))
	}
	return fmt.Sprintf("%s validation failed: %s", e.Schema, strings.Join(parts, "; "))
}

// FieldErrors returns the issues keyed by field name.
func (e *Error) FieldErrors() map[string][]string {
	return FormatIssues(e.Issues)
}

// SafeParse validates the fields and never fails; the result says whether it succeeded.
func (s Schema) SafeParse(fields Fields) Result {
	input := InvoiceInput{
		ID:         fields.ID,
		CustomerID: fields.CustomerID,
		Status:     fields.Status,
		Date:       fields.Date,
	}
	found := map[string][]Issue{}

	except := make([]string, 0, len(s.omit)+1)
	except = append(except, s.omit...)
	amount, err := coerceAmount(fields.Amount)
	if err != nil {
		found["amount"] = append(found["amount"], Issue{
			Path:    []string{"amount"},
			Code:    "invalid_type",
			Message: AmountInvalidMessage,
		})
		except = append(except, "Amount")
	}
	input.Amount = amount
	if err == nil {
		if issue, ok := checkMinorUnits(amount, &input); !ok {
			found["amount"] = append(found["amount"], issue)
			except = append(except, "Amount")
		}
	}

	if err := validate.StructExcept(input, except...); err != nil {
		var fieldErrors validator.ValidationErrors
		if !errors.As(err, &fieldErrors) {
			// only reachable with a broken schema definition
			panic(err)
		}
		for _, fe := range fieldErrors {
			found[fe.Field()] = append(found[fe.Field()], issueFor(fe))
		}
	}

	if len(found) == 0 {
		return Result{Success: true, Data: input}
	}
	issues := []Issue{}
	for _, name := range fieldOrder {
		issues = append(issues, found[name]...)
	}
	return Result{Issues: issues}
}

// Parse is the strict variant of SafeParse and returns an *Error on failure.
func (s Schema) Parse(fields Fields) (InvoiceInput, error) {
	result := s.SafeParse(fields)
	if !result.Success {
		return InvoiceInput{}, &Error{Schema: s.name, Issues: result.Issues}
	}
	return result.Data, nil
}

func issueFor(fe validator.FieldError) Issue {
	msg, ok := messages[fe.Field()]
	if !ok {
		msg = RequiredMessage
	}
	return Issue{
		Path:    []string{fe.Field()},
		Code:    fe.Tag(),
		Message: msg,
	}
}

// checkMinorUnits requires the stored cent value to be at least one cent and
// to fit an int64. Positive amounts below half a cent round to zero.
func checkMinorUnits(amount decimal.Decimal, input *InvoiceInput) (Issue, bool) {
	cents, err := lib.ToMinorUnits(amount)
	switch {
	case err != nil:
		return Issue{Path: []string{"amount"}, Code: "too_big", Message: AmountMessage}, false
	case cents < 1:
		return Issue{Path: []string{"amount"}, Code: "too_small", Message: AmountMessage}, false
	}
	input.Cents = cents
	return Issue{}, true
}

// coerceAmount reads a form amount the way a numeric coercion does: blank is zero.
func coerceAmount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(raw)
}
