// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package receipt

import (
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/order-watch/models"
)

func TestFormat_FullOrder(t *testing.T) {
	o := models.Order{
		ID:            "12",
		CustomerName:  "Maria",
		Phone:         "5599999",
		Address:       "Rua A, 10",
		PaymentMethod: "pix",
		Notes:         "no plastic bags",
		Status:        models.StatusPending,
		OrderedAt:     time.Date(2026, 8, 28, 14, 30, 0, 0, time.UTC),
		LineItems: []models.LineItem{
			{ProductName: "Rice", Quantity: 2, UnitPrice: 10.99},
			{ProductName: "Milk", Quantity: 1.5, UnitPrice: 4},
		},
	}

	got := Format(o)

	for _, want := range []string{
		"ORDER #12",
		"DATE: 28/08/2026 14:30",
		"CUSTOMER: Maria",
		"PHONE: 5599999",
		"PAYMENT: pix",
		"Rice x2 - R$ 21.98",
		"Milk x1.5 - R$ 6.00",
		"TOTAL: R$ 27.98",
		"NOTES: no plastic bags",
		"Thank you for your business!",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("receipt missing %q:\n%s", want, got)
		}
	}
}

func TestFormat_MissingFieldsGetPlaceholders(t *testing.T) {
	got := Format(models.Order{ID: "1"})

	for _, want := range []string{
		"CUSTOMER: unknown customer",
		"PHONE: not provided",
		"ADDRESS: not provided",
		"PAYMENT: not provided",
		"DATE: -",
		"TOTAL: R$ 0.00",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("receipt missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "NOTES:") {
		t.Error("empty notes must not print a notes block")
	}
}

func TestFormat_DeclaredTotalWins(t *testing.T) {
	total := 99.9
	o := models.Order{
		ID:        "2",
		Total:     &total,
		LineItems: []models.LineItem{{ProductName: "Rice", Quantity: 1, UnitPrice: 10}},
	}
	if !strings.Contains(Format(o), "TOTAL: R$ 99.90") {
		t.Error("declared total must appear on the receipt")
	}
}
