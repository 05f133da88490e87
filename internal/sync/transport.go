package sync

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/agridesk/fieldbook/internal/domain"
)

// Transport delivers one queue entry to the remote authority. A nil
// return means the authority acknowledged the mutation.
type Transport interface {
	Deliver(ctx context.Context, entry *domain.SyncQueueEntry) error
}

const deliverTimeout = 15 * time.Second

type httpTransport struct {
	baseURL string
	client  *http.Client
}

// NewHTTPTransport creates a Transport that talks to the authority's
// sync API. baseURL is the server root, e.g. "http://sync.example.com".
func NewHTTPTransport(baseURL string, client *http.Client) Transport {
	if client == nil {
		client = &http.Client{Timeout: deliverTimeout}
	}
	return &httpTransport{baseURL: baseURL, client: client}
}

func (t *httpTransport) Deliver(ctx context.Context, entry *domain.SyncQueueEntry) error {
	if !domain.SyncTables[entry.TableName] {
		return fmt.Errorf("%w: %s", domain.ErrUnknownTable, entry.TableName)
	}

	endpoint := fmt.Sprintf("%s/api/sync/%s", t.baseURL, entry.TableName)

	var req *http.Request
	var err error
	switch entry.Operation {
	case domain.SyncOpCreate:
		req, err = http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(entry.Payload))
	case domain.SyncOpUpdate:
		req, err = http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(entry.Payload))
	case domain.SyncOpDelete:
		req, err = http.NewRequestWithContext(ctx, http.MethodDelete,
			endpoint+"?id="+url.QueryEscape(entry.RecordID), nil)
	default:
		return fmt.Errorf("%w: %q", domain.ErrInvalidOperation, entry.Operation)
	}
	if err != nil {
		return fmt.Errorf("failed to build sync request: %w", err)
	}
	if entry.Operation != domain.SyncOpDelete {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDeliveryFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: status %d: %s", domain.ErrDeliveryFailed, resp.StatusCode, body)
	}
	return nil
}
