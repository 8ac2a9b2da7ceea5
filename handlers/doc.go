// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers implements the simulator's HTTP endpoints for the consumed
order contract:

  - GET /orders?tenant_id=&status=  list a tenant's orders with line items
  - POST /orders                    create an order
  - PUT /orders/{id}                update an order; marks foi_alterado,
    cleared again when the update invoices the order

Every endpoint requires a bearer integration token valid for the tenant
being accessed (see the auth package).
*/
package handlers
