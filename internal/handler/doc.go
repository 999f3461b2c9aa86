// Package handler provides HTTP request handlers for the SafeHaven API.
//
// The handler package contains all HTTP endpoint implementations organized by
// domain. Each handler struct encapsulates the dependencies needed to serve
// requests for a specific feature area (authentication, applicants, shelters,
// applications).
//
// # Handler Pattern
//
// All handlers follow a consistent pattern:
//
//   - Constructor function (NewXxxHandler) accepts the services it needs
//   - Methods handle specific HTTP endpoints
//   - Response helpers from response.go standardize output format
//   - Errors are mapped to RFC 9457 Problem Details responses
//
// # Response Format
//
// Handlers use standardized response functions:
//
//   - WriteData: Single resource with optional HATEOAS links
//   - WriteCollection: List of resources with an item count
//   - WriteJSON: Raw JSON response
//   - WriteError: RFC 9457 Problem Details error response
//
// # Intake Boundary
//
// Applicant and shelter submissions arrive with the free-text answers the
// legacy intake forms produce ("Emergency (tonight)", "No pets allowed").
// The request converters in this package translate them into the closed
// enum types the matching engine operates on, so nothing past the handler
// layer ever sees raw form text.
//
// # Authentication
//
// Staff endpoints require authentication via JWT tokens. The auth middleware
// validates the token and makes the claims available via middleware.GetClaims
// and middleware.GetUserID.
package handler
