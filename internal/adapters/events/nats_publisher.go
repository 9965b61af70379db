package events

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
)

// flushTimeout bounds the server round trip when the caller's context has no
// deadline; nats rejects deadline-less contexts in FlushWithContext.
const flushTimeout = 2 * time.Second

type natsConn interface {
	PublishMsg(msg *nats.Msg) error
	FlushWithContext(ctx context.Context) error
	Drain() error
}

// NATSPublisher publishes each event on "<prefix>.<event type>".
type NATSPublisher struct {
	conn   natsConn
	prefix string
}

func NewNATSPublisher(url, subjectPrefix, clientName string) (*NATSPublisher, error) {
	if strings.TrimSpace(url) == "" {
		return nil, fmt.Errorf("nats publisher requires a server url")
	}
	conn, err := nats.Connect(url, nats.Name(clientName), nats.MaxReconnects(-1))
	if err != nil {
		return nil, fmt.Errorf("connect nats %s: %w", url, err)
	}
	return &NATSPublisher{conn: conn, prefix: subjectPrefix}, nil
}

func (p *NATSPublisher) Publish(ctx context.Context, eventType string, payload []byte, partitionKey string) error {
	msg := nats.NewMsg(p.subjectFor(eventType))
	msg.Data = payload
	msg.Header.Set("Event-Type", eventType)
	msg.Header.Set("Partition-Key", partitionKey)
	if err := p.conn.PublishMsg(msg); err != nil {
		return fmt.Errorf("publish %s: %w", msg.Subject, err)
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, flushTimeout)
		defer cancel()
	}
	if err := p.conn.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("flush %s: %w", msg.Subject, err)
	}
	return nil
}

func (p *NATSPublisher) subjectFor(eventType string) string {
	if p.prefix == "" {
		return eventType
	}
	return strings.TrimSuffix(p.prefix, ".") + "." + eventType
}

func (p *NATSPublisher) Close() error {
	return p.conn.Drain()
}
