// Package fixtures provides test data factories for the SafeHaven API.
//
// The fixtures package contains factory functions for creating test data
// with sensible defaults and optional customization.
//
// # Factory Pattern
//
// Create a factory with a database connection:
//
//	f := fixtures.New(tdb.DB)
//
// # Creating Test Data
//
// Factory methods create domain entities:
//
//	user := f.CreateUser(t)                        // Staff account
//	applicant := f.CreateApplicant(t)              // Intake record
//	shelter := f.CreateShelter(t)                  // Active directory entry
//	app := f.CreateApplication(t, applicant, shelter)
//
// # Customization
//
// Use option functions for customization:
//
//	admin := f.CreateUser(t, func(o *fixtures.UserOpts) { o.Role = model.UserRoleAdmin })
//	closed := f.CreateShelter(t, func(o *fixtures.ShelterOpts) { o.Active = false })
//
// # Random Data
//
// Unique emails and names are generated automatically so fixtures never
// collide within a shared namespace.
//
// # Cleanup
//
// Test data is cleaned up when the test database is closed.
package fixtures
