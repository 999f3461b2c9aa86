// Package model defines the domain types for SafeHaven.
//
// The intake form and the shelter directory both originate from loosely-typed
// documents where nearly every field is an optional free-text string. This
// package is the typed boundary: repositories and handlers convert legacy
// string values into closed enums (GenderPolicy, StayCategory, GroupType,
// YesNo) using the Parse* helpers, and the matching engine only ever sees the
// typed form.
//
// # Conversion Policy
//
// Parse helpers never fail. Unrecognized input maps to the enum's permissive
// zero value (e.g. GroupTypeOther, YesNoUnknown) so that malformed intake data
// degrades to "no constraint" rather than an error. The single deliberate
// exception is a shelter with no max stay length, which the stay-length gate
// treats as ineligible because stay duration is load-bearing for placement.
//
// # Error Model
//
// HTTP-facing errors use RFC 9457 Problem Details (see errors.go). Service
// layer errors are sentinel errors defined in the service package; handlers
// map them to ProblemDetails via handler.MapServiceError.
package model
