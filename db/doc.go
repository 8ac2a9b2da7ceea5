// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the simulator's order database and creates its schema.

Two tables: orders and order_items, with the orders row carrying the
advisory foi_alterado flag the watcher treats as a supplement to its own
value-based change detection.

The schema is portable between sqlite (modernc.org/sqlite) and postgres
(lib/pq); Rebind translates ? placeholders for the latter.
*/
package db
