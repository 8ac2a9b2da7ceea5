// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the order-watch CLI.

order-watch polls a supermarket order API, detects edits made server-side
between polls, and keeps the set of altered orders sticky across restarts
in a local state store. Altered orders are surfaced once each as a printed
receipt; invoicing an order clears its flag everywhere.

# Starting the Watcher

The watcher requires an API endpoint and a tenant id:

	API_BASE_URL=https://orders.example.com TENANT_ID=7 API_TOKEN=... go run main.go

Or with flags:

	go run main.go -api https://orders.example.com -tenant 7 -token ...

# Configuration

Required settings:

  - API_BASE_URL (-api): Order API base URL
  - TENANT_ID (-tenant): Tenant (supermarket) id
  - API_TOKEN (-token): Bearer token, unless a remembered session exists

Optional settings:

  - POLL_INTERVAL (-interval): Poll cadence (default: 4s)
  - REMEMBER_TOKEN (-remember): Persist the token across runs
  - DATABASE_URL (-d): State store path or postgres URL (default: order-watch.db)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - ORDER_WATCH_CONFIG (-config): Optional YAML config file

# Architecture

The watcher composes small packages around a pure reconciliation core:

  - signature: canonical order fingerprints (SHA-256 over tracked fields)
  - tracker: snapshot diffing, the sticky-altered set, auto-surface policy
  - stickystore: durable key-value state (sqlite or postgres)
  - session: in-memory token with optional remember-me persistence
  - apiclient: HTTP client with bearer auth and 401 teardown
  - poller: fixed-interval fetch loop with stale-response discard
  - receipt: printable order receipts

cmd/ordersim runs a small order API (handlers, router, middleware, db,
auth) used for development and the end-to-end tests.

See package documentation for each component.
*/
package main
