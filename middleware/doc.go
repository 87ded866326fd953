// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and request/response helpers.

# Middleware

  - WithLogging: logs request start and completion with duration
  - CORS: allows cross-origin requests and answers preflights

# Helpers

  - JSONResponse: writes a JSON body with status code
  - ErrorResponse: writes a models.ErrorResponse
  - ParseJSONBody: decodes a request body into a struct
  - GetClientIP: extracts the client IP from forwarding headers or RemoteAddr
*/
package middleware
