// Package service implements the business logic layer for the SafeHaven API.
//
// The service package contains all domain logic, validation rules, and
// orchestration of repository operations. Services are the primary
// abstraction between HTTP handlers and data access.
//
// # Service Pattern
//
// All services follow a consistent pattern:
//
//   - Constructor function (NewXxxService) accepts a config struct with repository dependencies
//   - Methods implement business operations with proper validation
//   - Errors are returned as sentinel errors or wrapped errors for context
//   - Context is passed through for cancellation and request-scoped values
//
// # Repository Interfaces
//
// Services define their own repository interfaces, allowing:
//
//   - Easy mocking for unit tests
//   - Decoupling from specific database implementations
//   - Clear contracts for data access requirements
//
// # Matching Engine
//
// The match engine (matching.go) is the heart of the system. It is a pure
// evaluator over one applicant/shelter pair: six hard eligibility gates
// applied in a fixed order, then a weighted score over a fixed table of
// preference checks. MatchService runs it across the shelter directory and
// ranks the results.
//
// # Error Handling
//
// Services return domain-specific errors defined as package-level variables:
//
//	var (
//	    ErrApplicantNotFound = errors.New("applicant not found")
//	    ErrShelterNotFound   = errors.New("shelter not found")
//	)
//
// # Example Usage
//
//	service := NewMatchService(MatchServiceConfig{
//	    ApplicantRepo: applicantRepository,
//	    ShelterRepo:   shelterRepository,
//	})
//	results, err := service.MatchShelters(ctx, applicantID)
package service
