// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/order-watch/auth"
	"github.com/danielhkuo/order-watch/cliparse"
	"github.com/danielhkuo/order-watch/db"
	"github.com/danielhkuo/order-watch/middleware"
	"github.com/danielhkuo/order-watch/models"
)

type OrderHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewOrderHandler(conn *sql.DB, cfg cliparse.Config) *OrderHandler {
	return &OrderHandler{db: conn, cfg: cfg}
}

func (h *OrderHandler) rebind(query string) string {
	return db.Rebind(h.cfg.DatabaseType, query)
}

func (h *OrderHandler) authorize(w http.ResponseWriter, r *http.Request, tenantID string) bool {
	token := middleware.BearerToken(r)
	if err := auth.ValidateTenantToken(tenantID, token, h.cfg.TokenSalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid integration token")
		return false
	}
	return true
}

// ListOrders handles GET /orders?tenant_id=<id>&status=<status>
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	tenantID := r.URL.Query().Get("tenant_id")
	if tenantID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "tenant_id is required")
		return
	}
	if !h.authorize(w, r, tenantID) {
		return
	}

	query := `
		SELECT id, tenant_id, client_name, phone, address, payment_method,
		       observations, status, total, foi_alterado, created_at
		FROM orders WHERE tenant_id = ?`
	args := []interface{}{tenantID}

	if status := r.URL.Query().Get("status"); status != "" {
		query += ` AND status = ?`
		args = append(args, models.NormalizeStatus(status))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := h.db.Query(h.rebind(query), args...)
	if err != nil {
		slog.Error("failed to query orders", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			slog.Error("failed to scan order", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		slog.Error("order row iteration failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	for i := range orders {
		items, err := h.loadItems(orders[i].ID)
		if err != nil {
			slog.Error("failed to load order items", "order_id", orders[i].ID, "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		orders[i].LineItems = items
	}

	middleware.JSONResponse(w, http.StatusOK, orders)
}

// CreateOrder handles POST /orders
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req models.CreateOrderRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate input
	if req.SupermarketID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "supermarket_id is required")
		return
	}
	if req.ClientName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "client_name is required")
		return
	}
	if !h.authorize(w, r, req.SupermarketID) {
		return
	}

	status := models.NormalizeStatus(req.Status)
	if status == "" {
		status = models.StatusPending
	}
	if status != models.StatusPending && status != models.StatusInvoiced {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid status")
		return
	}

	orderID := uuid.NewString()
	total := itemsTotal(req.Items)

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create order")
		return
	}
	defer tx.Rollback()

	_, err = tx.Exec(h.rebind(`
		INSERT INTO orders (id, tenant_id, client_name, phone, address, payment_method,
		                    observations, status, total, foi_alterado, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?)
	`), orderID, req.SupermarketID, req.ClientName, req.Phone, req.Address,
		req.PaymentMethod, req.Observations, status, total, time.Now().UTC())
	if err != nil {
		slog.Error("failed to insert order", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create order")
		return
	}

	if err := insertItems(tx, h.cfg.DatabaseType, orderID, req.Items); err != nil {
		slog.Error("failed to insert order items", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create order")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit order", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create order")
		return
	}

	slog.Info("order created", "order_id", orderID, "tenant_id", req.SupermarketID)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateOrderResponse{
		OrderID: orderID,
	})
}

// UpdateOrder handles PUT /orders/{id}. A successful update marks the order
// altered (foi_alterado) for the dashboards; invoicing clears the mark.
func (h *OrderHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	orderID := r.PathValue("id")
	if orderID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "order id is required")
		return
	}

	var req models.UpdateOrderRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	var tenantID string
	err := h.db.QueryRow(h.rebind(`SELECT tenant_id FROM orders WHERE id = ?`), orderID).Scan(&tenantID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Order not found")
		return
	}
	if err != nil {
		slog.Error("failed to query order", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !h.authorize(w, r, tenantID) {
		return
	}

	status := models.NormalizeStatus(req.Status)
	if status != models.StatusPending && status != models.StatusInvoiced {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid status")
		return
	}

	total := req.Total
	if total == 0 {
		total = itemsTotal(req.Items)
	}
	// Invoicing clears the altered mark; any other update raises it.
	altered := 0
	if status != models.StatusInvoiced {
		altered = 1
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update order")
		return
	}
	defer tx.Rollback()

	_, err = tx.Exec(h.rebind(`
		UPDATE orders
		SET client_name = ?, phone = ?, address = ?, payment_method = ?,
		    observations = ?, status = ?, total = ?, foi_alterado = ?
		WHERE id = ?
	`), req.ClientName, req.Phone, req.Address, req.PaymentMethod,
		req.Observations, status, total, altered, orderID)
	if err != nil {
		slog.Error("failed to update order", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update order")
		return
	}

	if req.Items != nil {
		if _, err := tx.Exec(h.rebind(`DELETE FROM order_items WHERE order_id = ?`), orderID); err != nil {
			slog.Error("failed to clear order items", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update order")
			return
		}
		if err := insertItems(tx, h.cfg.DatabaseType, orderID, req.Items); err != nil {
			slog.Error("failed to insert order items", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update order")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit order update", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update order")
		return
	}

	slog.Info("order updated", "order_id", orderID, "status", status)

	o, err := h.loadOrder(orderID)
	if err != nil {
		slog.Error("failed to reload updated order", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, o)
}

func (h *OrderHandler) loadOrder(orderID string) (models.Order, error) {
	row := h.db.QueryRow(h.rebind(`
		SELECT id, tenant_id, client_name, phone, address, payment_method,
		       observations, status, total, foi_alterado, created_at
		FROM orders WHERE id = ?`), orderID)

	o, err := scanOrder(row)
	if err != nil {
		return models.Order{}, err
	}
	items, err := h.loadItems(orderID)
	if err != nil {
		return models.Order{}, err
	}
	o.LineItems = items
	return o, nil
}

func (h *OrderHandler) loadItems(orderID string) ([]models.LineItem, error) {
	rows, err := h.db.Query(h.rebind(`
		SELECT product_name, quantity, unit_price
		FROM order_items WHERE order_id = ?`), orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.LineItem{}
	for rows.Next() {
		var it models.LineItem
		if err := rows.Scan(&it.ProductName, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (models.Order, error) {
	var o models.Order
	var phone, address, payment, notes sql.NullString
	var total sql.NullFloat64
	var altered int

	err := row.Scan(&o.ID, &o.TenantID, &o.CustomerName, &phone, &address,
		&payment, &notes, &o.Status, &total, &altered, &o.OrderedAt)
	if err != nil {
		return models.Order{}, err
	}

	o.Phone = phone.String
	o.Address = address.String
	o.PaymentMethod = payment.String
	o.Notes = notes.String
	o.ServerAltered = altered != 0
	if total.Valid {
		t := total.Float64
		o.Total = &t
	}
	return o, nil
}

func insertItems(tx *sql.Tx, databaseType, orderID string, items []models.LineItem) error {
	for _, it := range items {
		_, err := tx.Exec(db.Rebind(databaseType, `
			INSERT INTO order_items (id, order_id, product_name, quantity, unit_price)
			VALUES (?, ?, ?, ?, ?)
		`), uuid.NewString(), orderID, it.ProductName, it.Quantity, it.UnitPrice)
		if err != nil {
			return err
		}
	}
	return nil
}

func itemsTotal(items []models.LineItem) float64 {
	var sum float64
	for _, it := range items {
		sum += it.Quantity * it.UnitPrice
	}
	return sum
}
