// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/danielhkuo/order-watch/models"
)

// TokenSession supplies the bearer token and handles global 401 teardown.
// session.Manager satisfies it.
type TokenSession interface {
	Token() string
	Teardown()
}

// Client consumes the order API for one tenant.
type Client struct {
	baseURL  string
	tenantID string
	http     *http.Client
}

// UpdateResult reports an order mutation. The UI is optimistic: Applied is
// true even when the server rejected the change, so callers can assert on
// the applied-but-unconfirmed branch instead of swallowing errors.
type UpdateResult struct {
	// Applied: the local state should reflect the change.
	Applied bool
	// Confirmed: the server accepted the change.
	Confirmed bool
	// Order is the server's echo of the updated order, when confirmed.
	Order *models.Order
	// Err carries the rejection or transport failure, when not confirmed.
	Err error
}

// New builds a client. sess may be nil for unauthenticated use (tests).
func New(baseURL string, tenantID string, sess TokenSession) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		tenantID: tenantID,
		http: &http.Client{
			Timeout:   15 * time.Second,
			Transport: NewAuthTransport(sess, nil),
		},
	}
}

// FetchOrders retrieves the tenant's current orders. A failure here is
// transient by contract: the caller keeps its previous state and retries on
// the next poll.
func (c *Client) FetchOrders(ctx context.Context) ([]models.Order, error) {
	u := c.baseURL + "/orders"
	if c.tenantID != "" {
		u += "?tenant_id=" + url.QueryEscape(c.tenantID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build orders request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("orders fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("orders fetch returned %s", resp.Status)
	}

	var orders []models.Order
	if err := json.NewDecoder(resp.Body).Decode(&orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	return orders, nil
}

// UpdateOrder sends PUT /orders/{id}. The change is applied locally no
// matter what the server says; Confirmed and Err record what actually
// happened. There is no retry queue: responsiveness is chosen over strict
// consistency, and the result type keeps that tradeoff visible.
func (c *Client) UpdateOrder(ctx context.Context, id string, upd models.UpdateOrderRequest) UpdateResult {
	body, err := json.Marshal(upd)
	if err != nil {
		return UpdateResult{Applied: true, Err: fmt.Errorf("failed to encode update: %w", err)}
	}

	u := c.baseURL + "/orders/" + url.PathEscape(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, u, bytes.NewReader(body))
	if err != nil {
		return UpdateResult{Applied: true, Err: fmt.Errorf("failed to build update request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return UpdateResult{Applied: true, Err: fmt.Errorf("order update failed: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return UpdateResult{Applied: true, Err: fmt.Errorf("order update returned %s", resp.Status)}
	}

	var echoed models.Order
	if err := json.NewDecoder(resp.Body).Decode(&echoed); err != nil {
		// Confirmed by status code even if the echo is unreadable.
		return UpdateResult{Applied: true, Confirmed: true}
	}
	return UpdateResult{Applied: true, Confirmed: true, Order: &echoed}
}

// authTransport attaches the bearer token to every request and tears the
// session down on a 401, the same contract the dashboard's request
// interceptor implements.
type authTransport struct {
	sess TokenSession
	base http.RoundTripper
}

// NewAuthTransport wraps base (http.DefaultTransport when nil) with bearer
// auth and 401 teardown. sess may be nil, which disables both behaviors.
func NewAuthTransport(sess TokenSession, base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &authTransport{sess: sess, base: base}
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.sess != nil {
		if token := t.sess.Token(); token != "" {
			req = req.Clone(req.Context())
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized && t.sess != nil {
		t.sess.Teardown()
	}
	return resp, nil
}
