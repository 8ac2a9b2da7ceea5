// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the order wire types shared by the watcher and the
order API simulator.

# Domain Types

  - Order: the tracked entity (status, customer fields, line items, total)
  - LineItem: product_name, quantity, unit_price

# Request Types

  - CreateOrderRequest: POST /orders body
  - UpdateOrderRequest: PUT /orders/{id} body (key names are the contract)

# Wire Tolerance

The backend has shipped two generations of field names. Order and LineItem
decode both:

	client_name   <- nome_cliente, cliente_nome
	items         <- itens
	product_name  <- nome_produto, produto, nome
	quantity      <- quantidade
	unit_price    <- preco_unitario
	observations  <- observacao
	created_at    <- data_pedido
	total         <- valor_total

Numeric fields accept numbers or numeric strings with comma or dot decimal
separators (ParseDecimal); unparsable values decode to 0. Legacy status
values "pendente" and "faturado" normalize to "pending" and "invoiced".

# Constants

Status values:

	StatusPending  = "pending"
	StatusInvoiced = "invoiced"
*/
package models
