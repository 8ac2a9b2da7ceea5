// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package receipt renders the printable text receipt for an order, in the
// fixed-width layout the operators' thermal printers expect.
package receipt

import (
	"fmt"
	"strings"

	"github.com/danielhkuo/order-watch/models"
)

const divider = "-----------------------------"

// Format renders the full receipt for an order. Missing customer fields
// print as "not provided" rather than blank lines.
func Format(o models.Order) string {
	var b strings.Builder

	b.WriteString("SUPERMARKET\n")
	b.WriteString(divider + "\n")
	fmt.Fprintf(&b, "ORDER #%s\n", o.ID)
	if o.OrderedAt.IsZero() {
		b.WriteString("DATE: -\n")
	} else {
		fmt.Fprintf(&b, "DATE: %s\n", o.OrderedAt.Format("02/01/2006 15:04"))
	}
	b.WriteString(divider + "\n")
	fmt.Fprintf(&b, "CUSTOMER: %s\n", orDefault(o.CustomerName, "unknown customer"))
	fmt.Fprintf(&b, "PHONE: %s\n", orDefault(o.Phone, "not provided"))
	fmt.Fprintf(&b, "ADDRESS: %s\n", orDefault(o.Address, "not provided"))
	fmt.Fprintf(&b, "PAYMENT: %s\n", orDefault(o.PaymentMethod, "not provided"))
	b.WriteString(divider + "\n")
	b.WriteString("ITEMS:\n")
	for _, it := range o.LineItems {
		name := orDefault(it.ProductName, "item")
		fmt.Fprintf(&b, "%s x%s - R$ %.2f\n", name, trimQty(it.Quantity), it.Quantity*it.UnitPrice)
	}
	b.WriteString(divider + "\n")
	fmt.Fprintf(&b, "TOTAL: R$ %.2f\n", o.ComputedTotal())
	if o.Notes != "" {
		b.WriteString(divider + "\n")
		fmt.Fprintf(&b, "NOTES: %s\n", o.Notes)
	}
	b.WriteString(divider + "\n")
	b.WriteString("Thank you for your business!\n")

	return b.String()
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// trimQty prints whole quantities without a decimal point.
func trimQty(q float64) string {
	if q == float64(int64(q)) {
		return fmt.Sprintf("%d", int64(q))
	}
	return fmt.Sprintf("%g", q)
}
