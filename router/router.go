// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/order-watch/cliparse"
	"github.com/danielhkuo/order-watch/handlers"
	"github.com/danielhkuo/order-watch/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	orderHandler := handlers.NewOrderHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Order operations (tenant-scoped)
	mux.HandleFunc("GET /orders", middleware.WithLogging(orderHandler.ListOrders))
	mux.HandleFunc("POST /orders", middleware.WithLogging(orderHandler.CreateOrder))
	mux.HandleFunc("PUT /orders/{id}", middleware.WithLogging(orderHandler.UpdateOrder))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ordersim API v1"))
	})

	return mux
}
