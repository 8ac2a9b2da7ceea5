// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidToken = errors.New("invalid integration token")

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateTenantToken creates an HMAC-based integration token for a tenant
// (supermarket). Deterministic and verifiable: the same tenant and salt
// always produce the same token, so validation needs no storage.
func GenerateTenantToken(tenantID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(tenantID))
	sum := h.Sum(nil)
	// URL-safe base64, padding trimmed for cleaner tokens
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateTenantToken checks the provided integration token for a tenant
func ValidateTenantToken(tenantID, token, salt string) error {
	expected := GenerateTenantToken(tenantID, salt)
	if !hmac.Equal([]byte(token), []byte(expected)) {
		return ErrInvalidToken
	}
	return nil
}
