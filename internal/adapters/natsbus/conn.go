// Package natsbus carries paths in and marker batches out over NATS core
// subjects, JSON encoded.
package natsbus

import (
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/bft-labs/curvemark/internal/ports"
)

// Message headers set on every published batch.
const (
	HeaderMessageID = "Curvemark-Msg-Id"
	HeaderKind      = "Curvemark-Kind"
)

// Connect dials url with reconnect handling that reports through logger.
func Connect(url string, logger ports.Logger) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name("curvemark"),
		nats.Timeout(5*time.Second),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", ports.Err(err))
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("nats reconnected", ports.String("url", c.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", url, err)
	}
	return nc, nil
}
