package natsbus

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/bft-labs/curvemark/internal/domain"
)

// MarkerPublisher implements ports.MarkerPublisher on a NATS subject.
type MarkerPublisher struct {
	conn    *nats.Conn
	subject string
}

// NewMarkerPublisher creates a publisher for subject.
func NewMarkerPublisher(conn *nats.Conn, subject string) *MarkerPublisher {
	return &MarkerPublisher{conn: conn, subject: subject}
}

// Name identifies the publisher in logs and metrics.
func (p *MarkerPublisher) Name() string {
	return "nats"
}

// Publish sends the batch as one message.
func (p *MarkerPublisher) Publish(ctx context.Context, b domain.MarkerBatch) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := domain.EncodeBatch(b)
	if err != nil {
		return err
	}

	msg := nats.NewMsg(p.subject)
	msg.Data = data
	msg.Header.Set(HeaderMessageID, uuid.NewString())
	msg.Header.Set(HeaderKind, batchKind(b))

	if err := p.conn.PublishMsg(msg); err != nil {
		return fmt.Errorf("publish %s: %w", p.subject, err)
	}
	return nil
}

func batchKind(b domain.MarkerBatch) string {
	if b.IsClear() {
		return "clear"
	}
	return "markers"
}
