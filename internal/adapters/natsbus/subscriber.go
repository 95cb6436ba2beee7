package natsbus

import (
	"context"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/bft-labs/curvemark/internal/domain"
	"github.com/bft-labs/curvemark/internal/mailbox"
	"github.com/bft-labs/curvemark/internal/ports"
)

// PathSubscriber implements ports.PathSource on a NATS subject.
// Only the most recent undelivered message is kept.
type PathSubscriber struct {
	sub    *nats.Subscription
	box    *mailbox.Latest[[]byte]
	logger ports.Logger
}

// NewPathSubscriber subscribes to subject on conn.
func NewPathSubscriber(conn *nats.Conn, subject string, logger ports.Logger) (*PathSubscriber, error) {
	s := &PathSubscriber{
		box:    mailbox.New[[]byte](),
		logger: logger,
	}
	sub, err := conn.Subscribe(subject, s.handle)
	if err != nil {
		return nil, fmt.Errorf("subscribe %s: %w", subject, err)
	}
	s.sub = sub
	return s, nil
}

func (s *PathSubscriber) handle(msg *nats.Msg) {
	if s.box.Put(msg.Data) {
		s.logger.Debug("superseded pending path", ports.String("subject", msg.Subject))
	}
}

// Next returns the latest path received. Undecodable payloads yield an error
// wrapping domain.ErrInvalidPath.
func (s *PathSubscriber) Next(ctx context.Context) (domain.Path, error) {
	data, err := s.box.Get(ctx)
	if err != nil {
		if errors.Is(err, mailbox.ErrClosed) {
			return domain.Path{}, domain.ErrSourceClosed
		}
		return domain.Path{}, err
	}
	return domain.DecodePath(data)
}

// Dropped returns how many paths were superseded before being processed.
func (s *PathSubscriber) Dropped() uint64 {
	return s.box.Dropped()
}

// Close unsubscribes and ends Next once the pending path is consumed.
func (s *PathSubscriber) Close() error {
	s.box.Close()
	if err := s.sub.Unsubscribe(); err != nil && !errors.Is(err, nats.ErrConnectionClosed) {
		return err
	}
	return nil
}
