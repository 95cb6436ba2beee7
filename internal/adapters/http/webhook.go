// Package http posts marker batches to a webhook.
package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"runtime"

	"github.com/google/uuid"

	"github.com/bft-labs/curvemark/internal/domain"
	"github.com/bft-labs/curvemark/internal/ports"
)

// Request headers set on every POST.
const (
	HeaderMessageID = "X-Curvemark-Msg-Id"
	HeaderKind      = "X-Curvemark-Kind"
	HeaderOSArch    = "X-Curvemark-OSArch"
)

// WebhookPublisher implements ports.MarkerPublisher over HTTP POST.
type WebhookPublisher struct {
	client ports.HTTPClient
	url    string
}

// NewWebhookPublisher creates a publisher posting to url.
func NewWebhookPublisher(client ports.HTTPClient, url string) *WebhookPublisher {
	return &WebhookPublisher{
		client: client,
		url:    url,
	}
}

// Name identifies the publisher in logs and metrics.
func (p *WebhookPublisher) Name() string {
	return "http"
}

// Publish posts the batch as a MarkerArray JSON body.
func (p *WebhookPublisher) Publish(ctx context.Context, b domain.MarkerBatch) error {
	body, err := domain.EncodeBatch(b)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	kind := "markers"
	if b.IsClear() {
		kind = "clear"
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderMessageID, uuid.NewString())
	req.Header.Set(HeaderKind, kind)
	req.Header.Set(HeaderOSArch, runtime.GOOS+"/"+runtime.GOARCH)

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}
