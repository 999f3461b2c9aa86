package service

import "errors"

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable.

// ===== Authentication Errors =====
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrPasswordRequired   = errors.New("password is required")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrPasswordTooLong    = errors.New("password must be at most 128 characters")
	ErrInvalidEmail       = errors.New("invalid email format")
)

// ===== Token Errors =====
var (
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	ErrRefreshTokenRevoked = errors.New("refresh token revoked")
)

// ===== Applicant Errors =====
var (
	ErrApplicantNotFound    = errors.New("applicant not found")
	ErrFullNameRequired     = errors.New("full name is required")
	ErrLocationRequired     = errors.New("location or coordinates are required")
	ErrInvalidCoordinates   = errors.New("coordinates are out of range")
	ErrInvalidChildrenCount = errors.New("children count cannot be negative")
)

// ===== Shelter Errors =====
var (
	ErrShelterNotFound     = errors.New("shelter not found")
	ErrShelterNameRequired = errors.New("shelter name is required")
	ErrShelterNameTooLong  = errors.New("shelter name exceeds maximum length")
	ErrInvalidAgeRange     = errors.New("min age cannot exceed max age")
	ErrInvalidCapacity     = errors.New("capacity must be positive")
	ErrShelterInactive     = errors.New("shelter is not accepting applications")
)

// ===== Application Errors =====
var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrAlreadyApplied      = errors.New("already applied to this shelter")
	ErrInvalidStatus       = errors.New("invalid application status")
	ErrInvalidTransition   = errors.New("status transition not allowed")
	ErrNotShelterStaff     = errors.New("not authorized for this shelter")
	ErrNoteTooLong         = errors.New("note exceeds maximum length")
)
