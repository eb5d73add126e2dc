package common

const (
	InvoiceStatusPending = "pending"
	InvoiceStatusPaid    = "paid"

	InvoicesPath      = "/dashboard/invoices"
	InvoiceCreatePath = "/dashboard/invoices/create"
	LoginPath         = "/login"

	InvoiceEventCreated = "invoice.created"
	InvoiceEventUpdated = "invoice.updated"
	InvoiceEventDeleted = "invoice.deleted"

	SessionCookieName   = "session"
	CredentialsProvider = "credentials"

	// amounts are stored in cents
	MinorUnitsPerMajor = 100
	DateLayout         = "2006-01-02"
)

// InvoiceStatuses is the closed set of accepted invoice statuses.
var InvoiceStatuses = []string{InvoiceStatusPending, InvoiceStatusPaid}
