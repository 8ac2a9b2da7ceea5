// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package apiclient is the typed consumer of the order API.

Two endpoints are consumed, matching the backend contract rather than
redesigning it:

	GET /orders?tenant_id=<id>   -> []models.Order
	PUT /orders/{id}             <- models.UpdateOrderRequest

Mutations are optimistic: UpdateResult.Applied is true on every path, with
Confirmed and Err distinguishing server acceptance from the
applied-locally-anyway fallback.

Authentication is a transport concern: NewAuthTransport attaches the bearer
token from a session.Manager and tears the session down globally on 401,
outside any individual call site.
*/
package apiclient
