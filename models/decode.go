// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// The backend has carried two generations of field names: the current English
// contract (client_name, items, product_name, ...) and the legacy Portuguese
// one (nome_cliente, itens, nome_produto, ...). Decoding accepts both, with
// the English name winning when a payload carries duplicates. Numeric fields
// additionally accept numeric-looking strings with either comma or dot as the
// decimal separator.

// ParseDecimal parses a decimal number that may use a comma or a dot as the
// decimal separator (e.g. "12.5", "12,5", "1.234,56", "1,234.56").
// Unparsable input returns 0.
func ParseDecimal(s string) float64 {
	f, _ := parseDecimal(s)
	return f
}

func parseDecimal(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, " ", "")

	dot := strings.LastIndex(s, ".")
	comma := strings.LastIndex(s, ",")
	switch {
	case dot >= 0 && comma >= 0:
		// Both present: the later one is the decimal separator, the other
		// is a thousands separator.
		if comma > dot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case comma >= 0:
		s = strings.Replace(s, ",", ".", 1)
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func coerceString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	// Numeric ids arrive as bare numbers in legacy payloads.
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

func coerceNumber(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return parseDecimal(s)
	}
	return 0, false
}

func coerceBool(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b
	}
	// Some deployments store the flag as 0/1.
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f != 0
	}
	return false
}

func coerceTime(raw json.RawMessage) time.Time {
	s := coerceString(raw)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func firstRaw(m map[string]json.RawMessage, keys ...string) json.RawMessage {
	for _, k := range keys {
		if raw, ok := m[k]; ok && string(raw) != "null" {
			return raw
		}
	}
	return nil
}

// UnmarshalJSON accepts both the current and the legacy wire shape.
func (it *LineItem) UnmarshalJSON(data []byte) error {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}

	it.ProductName = coerceString(firstRaw(m, "product_name", "nome_produto", "produto", "nome", "name"))
	it.Quantity, _ = coerceNumber(firstRaw(m, "quantity", "quantidade", "qty"))
	it.UnitPrice, _ = coerceNumber(firstRaw(m, "unit_price", "preco_unitario", "price"))
	return nil
}

// UnmarshalJSON accepts both the current and the legacy wire shape and
// normalizes legacy status values. It never fails on missing fields; only
// malformed JSON itself is an error.
func (o *Order) UnmarshalJSON(data []byte) error {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}

	o.ID = coerceString(firstRaw(m, "id"))
	o.TenantID = coerceString(firstRaw(m, "supermarket_id", "tenant_id"))
	o.CustomerName = coerceString(firstRaw(m, "client_name", "nome_cliente", "cliente_nome"))
	o.Phone = coerceString(firstRaw(m, "phone", "telefone"))
	o.Address = coerceString(firstRaw(m, "address", "endereco"))
	o.PaymentMethod = coerceString(firstRaw(m, "payment_method", "forma"))
	o.Notes = coerceString(firstRaw(m, "observations", "observacao", "notes"))
	o.Status = NormalizeStatus(coerceString(firstRaw(m, "status")))
	o.OrderedAt = coerceTime(firstRaw(m, "created_at", "data_pedido"))
	o.ServerAltered = coerceBool(firstRaw(m, "foi_alterado", "server_altered"))
	o.Altered = coerceBool(firstRaw(m, "altered"))

	o.Total = nil
	if t, ok := coerceNumber(firstRaw(m, "total", "valor_total")); ok {
		o.Total = &t
	}

	o.LineItems = nil
	if raw := firstRaw(m, "items", "itens"); raw != nil {
		var items []LineItem
		if err := json.Unmarshal(raw, &items); err == nil {
			o.LineItems = items
		}
	}
	return nil
}
