// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP helpers for the simulator:

  - WithLogging: request/completion logging via slog
  - JSONResponse / ErrorResponse: JSON encoding with consistent error shape
  - ParseJSONBody: request body decoding
  - BearerToken: Authorization header extraction
  - CORS: permissive cross-origin support for the dashboard frontend
*/
package middleware
