package nats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/EhteshamRajpot/shop-o-backend/internal/platform/logger"
	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("shop_o/nats-publisher")

type MessagePublisher interface {
	Publish(ctx context.Context, subject string, message interface{}) error
	Close()
}

type natsPublisher struct {
	conn *nats.Conn
	log  logger.Logger
}

func NewNATSPublisher(conn *nats.Conn, log logger.Logger) (MessagePublisher, error) {
	if conn == nil {
		return nil, errors.New("NATS connection cannot be nil")
	}
	return &natsPublisher{conn: conn, log: log.Named("nats_publisher")}, nil
}

func (p *natsPublisher) Publish(ctx context.Context, subject string, message interface{}) error {
	ctx, span := tracer.Start(ctx, "NATS.Publish."+subject)
	defer span.End()

	data, err := json.Marshal(message)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to marshal message to JSON for subject %s: %w", subject, err)
	}

	msg := nats.NewMsg(subject)
	msg.Data = data
	otel.GetTextMapPropagator().Inject(ctx, HeaderCarrier(msg.Header))

	if err := p.conn.PublishMsg(msg); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to publish message to NATS subject %s: %w", subject, err)
	}

	p.log.Debugw("Message published", "subject", subject, "size", len(data))
	return nil
}

// Close drains and closes the connection.
func (p *natsPublisher) Close() {
	if p.conn == nil || p.conn.IsClosed() {
		return
	}
	if err := p.conn.Drain(); err != nil {
		p.log.Errorw("Failed to drain NATS connection", "error", err)
	}
	p.conn.Close()
}

type nopPublisher struct{}

// NewNopPublisher is used when no NATS URL is configured.
func NewNopPublisher() MessagePublisher {
	return nopPublisher{}
}

func (nopPublisher) Publish(context.Context, string, interface{}) error { return nil }

func (nopPublisher) Close() {}

// HeaderCarrier adapts nats.Header for otel propagation.
type HeaderCarrier nats.Header

func (c HeaderCarrier) Get(key string) string {
	return nats.Header(c).Get(key)
}

func (c HeaderCarrier) Set(key string, value string) {
	nats.Header(c).Set(key, value)
}

func (c HeaderCarrier) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	return keys
}
