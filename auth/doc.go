// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides the tenant integration token scheme used by the order
API simulator.

# Integration Tokens

Each tenant (supermarket) authenticates with an HMAC-SHA256 token derived
from its id and a server-side salt:

	token := auth.GenerateTenantToken(tenantID, salt)
	err := auth.ValidateTenantToken(tenantID, token, salt)

Tokens are URL-safe base64 without padding. Being deterministic, they can
be validated without any token storage.

# ID Generation

Random hex IDs for database records:

	id, err := auth.GenerateID(16)  // 32 hex characters
*/
package auth
