// Package helpers provides test utility functions for the SafeHaven API.
//
// The helpers package contains common test utilities for assertions,
// pointer creation, and test data manipulation.
//
// # Pointer Helpers
//
// Create pointers to literal values:
//
//	name := helpers.StringPtr("test")
//	count := helpers.IntPtr(42)
//	flag := helpers.BoolPtr(true)
//
// # JWT Helpers
//
// Generate test JWT tokens signed with an in-memory key:
//
//	jwtHelper := helpers.NewJWTHelper(t)
//	token := jwtHelper.GenerateToken(user)
//
// # Assertion Helpers
//
// Common test assertions:
//
//	helpers.AssertRecordExists(t, db, "shelter", shelter.ID)
//	helpers.AssertRecordNotExists(t, db, "application", app.ID)
//
// # Request Building
//
// Construct HTTP requests against handlers:
//
//	req := helpers.NewRequest(t, "POST", "/v1/applications").
//	    WithBody(body).
//	    WithAuth(jwtHelper, staffUser).
//	    Build()
package helpers
