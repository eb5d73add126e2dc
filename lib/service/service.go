package service

import (
	"context"
	"time"

	"github.com/getAlby/invoicehub.go/lib/cache"
	"github.com/getAlby/invoicehub.go/lib/identity"
	"github.com/getAlby/invoicehub.go/rabbitmq"
	"github.com/getsentry/sentry-go"
	"github.com/ziflex/lecho/v3"
)

//go:generate mockgen -destination=./mock_service/service.go github.com/getAlby/invoicehub.go/lib/service InvoiceStore,EventPublisher

// EventPublisher announces persisted invoice mutations to other instances.
type EventPublisher interface {
	PublishInvoiceEvent(ctx context.Context, event rabbitmq.InvoiceEvent) error
}

type InvoiceService struct {
	Config   *Config
	Store    InvoiceStore
	Cache    cache.Revalidator
	Events   EventPublisher
	Identity identity.Provider
	Logger   *lecho.Logger
	Now      func() time.Time
}

func (svc *InvoiceService) now() time.Time {
	if svc.Now != nil {
		return svc.Now()
	}
	return time.Now()
}

// today is the current UTC calendar day at midnight.
func (svc *InvoiceService) today() time.Time {
	return svc.now().UTC().Truncate(24 * time.Hour)
}

// revalidate marks the invoice list stale and tells the other instances.
// Event publishing is best effort: the mutation is already committed.
func (svc *InvoiceService) revalidate(ctx context.Context, eventType, invoiceID, path string) {
	svc.Cache.RevalidatePath(path)
	if svc.Events == nil {
		return
	}
	err := svc.Events.PublishInvoiceEvent(ctx, rabbitmq.InvoiceEvent{
		Type:       eventType,
		InvoiceID:  invoiceID,
		Path:       path,
		OccurredAt: svc.now().UTC(),
	})
	if err != nil {
		svc.Logger.Errorf("Failed to publish %s for invoice %s: %v", eventType, invoiceID, err)
		sentry.CaptureException(err)
	}
}

func (svc *InvoiceService) reportFailure(ctx context.Context, action string, err *ActionError) {
	svc.Logger.Errorf("%s invoice failed: kind=%s error=%v", action, err.Kind, err.Err)
	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		hub.WithScope(func(scope *sentry.Scope) {
			scope.SetTag("kind", err.Kind)
			hub.CaptureException(err)
		})
		return
	}
	sentry.CaptureException(err)
}
