// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package signature computes a canonical, line-item-order-independent
// encoding of an order's attention-relevant fields. Two polls of the same
// order are considered changed iff their signatures differ; comparing raw
// responses does not work because every poll allocates fresh objects.
package signature

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"math"
	"sort"

	"github.com/danielhkuo/order-watch/models"
)

// item is the normalized line-item form that enters the signature.
type item struct {
	Name  string  `json:"name"`
	Qty   float64 `json:"qty"`
	Price float64 `json:"price"`
}

// canonical is the full record the signature covers. Field order is fixed;
// adding a field here changes every signature and resets altered detection
// for one poll cycle, which is acceptable.
type canonical struct {
	Status   string  `json:"status"`
	Notes    string  `json:"notes"`
	Customer string  `json:"customer"`
	Payment  string  `json:"payment"`
	Address  string  `json:"address"`
	Phone    string  `json:"phone"`
	Items    []item  `json:"items"`
	Total    float64 `json:"total"`
}

// Compute returns the signature of an order as a SHA-256 hex digest of its
// canonical encoding. It is deterministic, independent of line-item order,
// and never fails: missing strings are empty, missing numbers are 0.
func Compute(o models.Order) string {
	items := normalizeItems(o.LineItems)
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })

	total, ok := o.DeclaredTotal()
	if !ok || math.IsNaN(total) || math.IsInf(total, 0) {
		total = 0
		for _, it := range items {
			total += it.Qty * it.Price
		}
	}

	c := canonical{
		Status:   models.NormalizeStatus(o.Status),
		Notes:    o.Notes,
		Customer: o.CustomerName,
		Payment:  o.PaymentMethod,
		Address:  o.Address,
		Phone:    o.Phone,
		Items:    items,
		Total:    total,
	}

	// Struct marshaling emits keys in declaration order, so the encoding is
	// stable without a canonical-JSON library.
	b, err := json.Marshal(c)
	if err != nil {
		// Only reachable with non-finite floats, which normalizeItems strips.
		return ""
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func normalizeItems(items []models.LineItem) []item {
	out := make([]item, 0, len(items))
	for _, it := range items {
		out = append(out, item{
			Name:  it.ProductName,
			Qty:   finite(it.Quantity),
			Price: finite(it.UnitPrice),
		})
	}
	return out
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
