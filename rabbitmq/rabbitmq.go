package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/getAlby/invoicehub.go/lib/cache"
	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/ziflex/lecho/v3"
)

const (
	contentTypeJSON = "application/json"

	invoiceRoutingPattern = "invoice.#"
)

// InvoiceEvent is published after an invoice mutation was persisted.
type InvoiceEvent struct {
	Type       string    `json:"type"`
	InvoiceID  string    `json:"invoiceId"`
	Path       string    `json:"path"`
	Origin     string    `json:"origin"`
	OccurredAt time.Time `json:"occurredAt"`
}

type Client interface {
	PublishInvoiceEvent(ctx context.Context, event InvoiceEvent) error
	// ListenForRevalidation invalidates the local page cache for events
	// published by other instances. It blocks until ctx is done.
	ListenForRevalidation(ctx context.Context, revalidator cache.Revalidator) error
	// Close will close all connections to rabbitmq
	Close() error
}

type DefaultClient struct {
	amqpClient AMQPClient
	logger     *lecho.Logger

	instanceID      string
	invoiceExchange string
}

type ClientOption = func(client *DefaultClient)

func WithInvoiceExchange(exchange string) ClientOption {
	return func(client *DefaultClient) {
		client.invoiceExchange = exchange
	}
}

func WithInstanceID(id string) ClientOption {
	return func(client *DefaultClient) {
		client.instanceID = id
	}
}

func WithLogger(logger *lecho.Logger) ClientOption {
	return func(client *DefaultClient) {
		client.logger = logger
	}
}

func NewClient(amqpClient AMQPClient, options ...ClientOption) (*DefaultClient, error) {
	client := &DefaultClient{
		amqpClient:      amqpClient,
		logger:          lecho.New(io.Discard),
		instanceID:      uuid.NewString(),
		invoiceExchange: "invoicehub_invoice",
	}
	for _, opt := range options {
		opt(client)
	}
	return client, nil
}

// Dial connects to rabbitmq and declares the invoice exchange.
func Dial(uri string, options ...ClientOption) (*DefaultClient, error) {
	client, err := NewClient(nil, options...)
	if err != nil {
		return nil, err
	}
	amqpClient, err := DialAMQP(uri, client.logger)
	if err != nil {
		return nil, err
	}
	client.amqpClient = amqpClient

	err = amqpClient.ExchangeDeclare(
		client.invoiceExchange,
		"topic",
		// durable, not auto-deleted
		true,
		false,
		// accepts direct publishing
		false,
		false,
		nil,
	)
	if err != nil {
		amqpClient.Close()
		return nil, err
	}
	return client, nil
}

func (client *DefaultClient) Close() error { return client.amqpClient.Close() }

func (client *DefaultClient) InstanceID() string { return client.instanceID }

func (client *DefaultClient) PublishInvoiceEvent(ctx context.Context, event InvoiceEvent) error {
	if event.Origin == "" {
		event.Origin = client.instanceID
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	err = client.amqpClient.PublishWithContext(ctx,
		client.invoiceExchange,
		event.Type,
		false,
		false,
		amqp.Publishing{
			ContentType: contentTypeJSON,
			Timestamp:   event.OccurredAt,
			Body:        payload,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish %s for invoice %s: %w", event.Type, event.InvoiceID, err)
	}

	client.logger.Debugf("Published %s for invoice %s", event.Type, event.InvoiceID)
	return nil
}

func (client *DefaultClient) ListenForRevalidation(ctx context.Context, revalidator cache.Revalidator) error {
	deliveries, err := client.amqpClient.Listen(ctx,
		client.invoiceExchange,
		invoiceRoutingPattern,
		"invoicehub_revalidate_"+client.instanceID,
		// every instance needs its own copy of each event
		WithDurable(false),
		WithAutoDelete(true),
		WithExclusive(true),
	)
	if err != nil {
		return err
	}

	client.logger.Info("Starting revalidation consumer loop")
	for {
		select {
		case <-ctx.Done():
			return context.Canceled
		case delivery, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("disconnected from RabbitMQ")
			}
			client.handleDelivery(delivery, revalidator)
		}
	}
}

func (client *DefaultClient) handleDelivery(delivery amqp.Delivery, revalidator cache.Revalidator) {
	var event InvoiceEvent
	if err := json.Unmarshal(delivery.Body, &event); err != nil || event.Path == "" {
		if err == nil {
			err = fmt.Errorf("invoice event without path: %s", delivery.Body)
		}
		captureErr(client.logger, err)
		// malformed events are dropped
		if err := delivery.Nack(false, false); err != nil {
			captureErr(client.logger, err)
		}
		return
	}

	if event.Origin != client.instanceID {
		revalidator.RevalidatePath(event.Path)
		client.logger.Debugf("Revalidated %s after %s from %s", event.Path, event.Type, event.Origin)
	}

	if err := delivery.Ack(false); err != nil {
		captureErr(client.logger, err)
	}
}

func captureErr(logger *lecho.Logger, err error) {
	logger.Error(err)
	sentry.CaptureException(err)
}
