// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"encoding/json"
	"testing"
)

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
	}{
		{"dot separator", "12.5", 12.5},
		{"comma separator", "12,5", 12.5},
		{"thousands dot, decimal comma", "1.234,56", 1234.56},
		{"thousands comma, decimal dot", "1,234.56", 1234.56},
		{"integer", "42", 42},
		{"surrounding space", " 9,90 ", 9.9},
		{"unparsable", "abc", 0},
		{"empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseDecimal(tt.in); got != tt.want {
				t.Errorf("ParseDecimal(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestOrderUnmarshal_CurrentShape(t *testing.T) {
	payload := `{
		"id": "a1b2",
		"supermarket_id": "7",
		"client_name": "Maria",
		"phone": "5599999",
		"address": "Rua A, 10",
		"payment_method": "pix",
		"observations": "no bags",
		"status": "pending",
		"total": 21.98,
		"created_at": "2026-08-28T10:00:00Z",
		"foi_alterado": true,
		"items": [{"product_name": "Rice", "quantity": 2, "unit_price": 10.99}]
	}`

	var o Order
	if err := json.Unmarshal([]byte(payload), &o); err != nil {
		t.Fatal(err)
	}

	if o.ID != "a1b2" || o.TenantID != "7" || o.CustomerName != "Maria" {
		t.Errorf("identity fields wrong: %+v", o)
	}
	if o.Status != StatusPending {
		t.Errorf("expected status pending, got %q", o.Status)
	}
	if !o.ServerAltered {
		t.Error("expected foi_alterado to decode as ServerAltered")
	}
	if total, ok := o.DeclaredTotal(); !ok || total != 21.98 {
		t.Errorf("expected declared total 21.98, got %v (%v)", total, ok)
	}
	if len(o.LineItems) != 1 || o.LineItems[0].ProductName != "Rice" || o.LineItems[0].Quantity != 2 {
		t.Errorf("items wrong: %+v", o.LineItems)
	}
}

func TestOrderUnmarshal_LegacyShape(t *testing.T) {
	payload := `{
		"id": 12,
		"tenant_id": 7,
		"nome_cliente": "João",
		"telefone": "5588888",
		"forma": "dinheiro",
		"observacao": "troco para 50",
		"status": "faturado",
		"valor_total": "1.234,56",
		"data_pedido": "2026-08-27 08:30:00",
		"foi_alterado": 1,
		"itens": [{"nome_produto": "Feijão", "quantidade": "3", "preco_unitario": "9,90"}]
	}`

	var o Order
	if err := json.Unmarshal([]byte(payload), &o); err != nil {
		t.Fatal(err)
	}

	if o.ID != "12" || o.TenantID != "7" {
		t.Errorf("numeric ids should coerce to strings: %+v", o)
	}
	if o.Status != StatusInvoiced {
		t.Errorf("legacy status should normalize: got %q", o.Status)
	}
	if total, ok := o.DeclaredTotal(); !ok || total != 1234.56 {
		t.Errorf("locale total should parse: got %v (%v)", total, ok)
	}
	if !o.ServerAltered {
		t.Error("numeric foi_alterado should decode as true")
	}
	if len(o.LineItems) != 1 {
		t.Fatalf("expected 1 item, got %d", len(o.LineItems))
	}
	it := o.LineItems[0]
	if it.ProductName != "Feijão" || it.Quantity != 3 || it.UnitPrice != 9.9 {
		t.Errorf("legacy item fields wrong: %+v", it)
	}
	if o.OrderedAt.IsZero() {
		t.Error("legacy timestamp should parse")
	}
}

func TestOrderUnmarshal_MalformedFieldsDefault(t *testing.T) {
	payload := `{
		"id": "x",
		"status": "pending",
		"total": "not a number",
		"items": [{"product_name": "Milk", "quantity": "??", "unit_price": null}]
	}`

	var o Order
	if err := json.Unmarshal([]byte(payload), &o); err != nil {
		t.Fatal(err)
	}

	if _, ok := o.DeclaredTotal(); ok {
		t.Error("unparsable total should not count as declared")
	}
	if got := o.LineItems[0].Quantity; got != 0 {
		t.Errorf("unparsable quantity should be 0, got %v", got)
	}
	if got := o.LineItems[0].UnitPrice; got != 0 {
		t.Errorf("null unit price should be 0, got %v", got)
	}
}

func TestComputedTotal_FallsBackToItems(t *testing.T) {
	o := Order{
		LineItems: []LineItem{
			{ProductName: "Rice", Quantity: 2, UnitPrice: 10},
			{ProductName: "Milk", Quantity: 1, UnitPrice: 5.5},
		},
	}
	if got := o.ComputedTotal(); got != 25.5 {
		t.Errorf("expected derived total 25.5, got %v", got)
	}

	declared := 99.0
	o.Total = &declared
	if got := o.ComputedTotal(); got != 99 {
		t.Errorf("declared total should win, got %v", got)
	}
}
