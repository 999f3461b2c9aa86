// Package middleware provides HTTP middleware for the SafeHaven API.
//
// The middleware package contains reusable middleware components for
// authentication, rate limiting, and request processing.
//
// # Available Middleware
//
// Core middleware components:
//
//   - Auth: JWT token validation for staff endpoints
//   - OptionalAuth: token validation that proceeds without credentials
//   - RateLimit: request rate limiting per user/IP
//   - RequestID, Logger, Recovery, CORS, Compress: request plumbing
//
// # Authentication
//
// The auth middleware validates JWT tokens and extracts user information:
//
//	mux.Handle("PATCH /v1/applications/{applicationId}/status",
//	    middleware.Auth(tokenService)(http.HandlerFunc(h.UpdateStatus)))
//
// After authentication, handlers can access user info:
//
//	userID := middleware.GetUserID(r.Context())
//	claims := middleware.GetClaims(r.Context())
//
// # Context Values
//
// Middleware sets context values accessible via helper functions:
//
//   - GetUserID(ctx): Returns authenticated user ID
//   - GetUserEmail(ctx): Returns authenticated user email
//   - GetClaims(ctx): Returns the full JWT claims
//   - GetRequestID(ctx): Returns unique request identifier
package middleware
