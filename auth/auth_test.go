// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"strings"
	"testing"
)

func TestGenerateID(t *testing.T) {
	id, err := GenerateID(16)
	if err != nil {
		t.Fatal(err)
	}
	if len(id) != 32 {
		t.Errorf("expected 32 hex chars, got %d", len(id))
	}

	other, _ := GenerateID(16)
	if id == other {
		t.Error("ids must be random")
	}
}

func TestTenantToken_RoundTrip(t *testing.T) {
	token := GenerateTenantToken("7", "salt")

	if err := ValidateTenantToken("7", token, "salt"); err != nil {
		t.Errorf("valid token rejected: %v", err)
	}
	if strings.ContainsAny(token, "=+/") {
		t.Errorf("token must be URL-safe without padding: %q", token)
	}
}

func TestTenantToken_Rejections(t *testing.T) {
	token := GenerateTenantToken("7", "salt")

	tests := []struct {
		name           string
		tenant, tok, salt string
	}{
		{"wrong tenant", "8", token, "salt"},
		{"wrong salt", "7", token, "other-salt"},
		{"garbage token", "7", "nonsense", "salt"},
		{"empty token", "7", "", "salt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateTenantToken(tt.tenant, tt.tok, tt.salt); err == nil {
				t.Error("expected rejection")
			}
		})
	}
}

func TestTenantToken_Deterministic(t *testing.T) {
	if GenerateTenantToken("7", "salt") != GenerateTenantToken("7", "salt") {
		t.Error("same tenant and salt must produce the same token")
	}
	if GenerateTenantToken("7", "salt") == GenerateTenantToken("9", "salt") {
		t.Error("different tenants must produce different tokens")
	}
}
