package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/platform/logger"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("agrilink-service/listing-events")

// Listing lifecycle subjects.
const (
	SubjectListingCreated = "listing.created"
	SubjectListingUpdated = "listing.updated"
	SubjectListingDeleted = "listing.deleted"
)

// msgIDHeader lets JetStream consumers drop redeliveries of the same event.
const msgIDHeader = "Nats-Msg-Id"

// Event is the envelope every listing event is published in.
type Event struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Source     string          `json:"source"`
	OccurredAt time.Time       `json:"occurredAt"`
	Data       json.RawMessage `json:"data"`
}

// msgPublisher is the part of *nats.Conn used for publishing.
type msgPublisher interface {
	PublishMsg(m *nats.Msg) error
}

// Publisher emits listing events on NATS core subjects.
type Publisher struct {
	conn   *nats.Conn
	pub    msgPublisher
	source string
	now    func() time.Time
	logger *logger.Logger
}

// NewPublisher connects to url. The connection keeps reconnecting in the background; events
// published while disconnected are buffered by the client.
func NewPublisher(url string, timeout time.Duration, log *logger.Logger, source string) (*Publisher, error) {
	log = log.Named("ListingEvents")
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	conn, err := nats.Connect(url,
		nats.Name(source+" listing events"),
		nats.Timeout(timeout),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn("Lost NATS connection", zap.Error(err))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("Reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS at %s: %w", url, err)
	}
	log.Info("Connected to NATS", zap.String("url", conn.ConnectedUrl()))
	return newPublisher(conn, source, log, conn), nil
}

func newPublisher(pub msgPublisher, source string, log *logger.Logger, conn *nats.Conn) *Publisher {
	return &Publisher{conn: conn, pub: pub, source: source, now: time.Now, logger: log}
}

// Publish wraps data in an Event and sends it on subject with the trace context in the headers.
func (p *Publisher) Publish(ctx context.Context, subject string, data interface{}) error {
	ctx, span := tracer.Start(ctx, "publish "+subject,
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(attribute.String("messaging.destination.name", subject)),
	)
	defer span.End()

	payload, err := json.Marshal(data)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("encode %s payload: %w", subject, err)
	}
	event := Event{
		ID:         uuid.NewString(),
		Type:       subject,
		Source:     p.source,
		OccurredAt: p.now().UTC(),
		Data:       payload,
	}
	body, err := json.Marshal(event)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("encode %s event: %w", subject, err)
	}

	msg := nats.NewMsg(subject)
	msg.Data = body
	msg.Header.Set(msgIDHeader, event.ID)
	msg.Header.Set("Content-Type", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, NATSHeaderCarrier(msg.Header))

	if err := p.pub.PublishMsg(msg); err != nil {
		span.RecordError(err)
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	p.logger.Debug("Listing event published", zap.String("subject", subject), zap.String("event_id", event.ID))
	return nil
}

// NATSHeaderCarrier adapts nats.Header to the OpenTelemetry TextMapCarrier.
type NATSHeaderCarrier nats.Header

func (c NATSHeaderCarrier) Get(key string) string { return nats.Header(c).Get(key) }

func (c NATSHeaderCarrier) Set(key, value string) { nats.Header(c).Set(key, value) }

func (c NATSHeaderCarrier) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	return keys
}

// Close flushes buffered events and closes the connection.
func (p *Publisher) Close() {
	if p.conn == nil || p.conn.IsClosed() {
		return
	}
	if err := p.conn.Drain(); err != nil {
		p.logger.Error("Failed to drain NATS connection", zap.Error(err))
		p.conn.Close()
	}
}
