// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/order-watch/auth"
	"github.com/danielhkuo/order-watch/cliparse"
	"github.com/danielhkuo/order-watch/db"
	"github.com/danielhkuo/order-watch/models"
)

// SetupTestDB creates a fresh in-memory sqlite database with the full
// simulator schema. Each call returns an isolated database.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3380,
		DatabaseURL:  ":memory:",
		DatabaseType: "sqlite",
		TokenSalt:    "test-token-salt",
	}
}

// TenantToken returns the integration token for a tenant under the test salt
func TenantToken(tenantID string) string {
	return auth.GenerateTenantToken(tenantID, GetTestConfig().TokenSalt)
}

// CreateTestOrder inserts an order with items and returns its id
func CreateTestOrder(t *testing.T, conn *sql.DB, tenantID, status string, items []models.LineItem) string {
	t.Helper()

	orderID := uuid.NewString()
	var total float64
	for _, it := range items {
		total += it.Quantity * it.UnitPrice
	}

	_, err := conn.Exec(`
		INSERT INTO orders (id, tenant_id, client_name, phone, address, payment_method,
		                    observations, status, total, foi_alterado, created_at)
		VALUES (?, ?, 'Test Customer', '5500000', 'Test St, 1', 'pix', '', ?, ?, 0, ?)
	`, orderID, tenantID, status, total, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test order: %v", err)
	}

	for _, it := range items {
		_, err := conn.Exec(`
			INSERT INTO order_items (id, order_id, product_name, quantity, unit_price)
			VALUES (?, ?, ?, ?, ?)
		`, uuid.NewString(), orderID, it.ProductName, it.Quantity, it.UnitPrice)
		if err != nil {
			t.Fatalf("Failed to create test order item: %v", err)
		}
	}

	return orderID
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
