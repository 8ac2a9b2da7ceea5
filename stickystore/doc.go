// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package stickystore persists the small amount of watcher state that must
survive restarts: the per-tenant sticky-altered id sets and the remember-me
session token.

# Layout

One table, kv_state(key, value, updated_at). Keys:

	stickyAlteredIds:<tenantID>  JSON array of order ids flagged altered
	stickyAlteredIds:global      fallback bucket when no tenant is set
	sessionToken                 remember-me bearer token

# Drivers

sqlite (modernc.org/sqlite, pure Go, default — a local file plays the role
a browser's localStorage plays for the web dashboard) or postgres (lib/pq)
for shared deployments. Queries are written with ? placeholders and rebound
to $N for postgres.

# Failure Semantics

Missing or corrupt sticky rows load as an empty set and never error; the
caller's in-memory set is authoritative for the session regardless of write
success. Two processes pointed at the same store are not synchronized and
may diverge until each reloads.
*/
package stickystore
