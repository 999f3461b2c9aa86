// Package jwt provides JSON Web Token utilities for the SafeHaven API.
//
// The jwt package handles RS256 token signing, validation, and claims
// extraction for staff authentication.
//
// # Token Generation
//
// Sign tokens for authenticated staff accounts:
//
//	service, err := jwt.NewService(jwt.Config{
//	    PrivateKeyPath: "keys/private.pem",
//	    PublicKeyPath:  "keys/public.pem",
//	    Issuer:         "safehaven-api",
//	    ExpirationMins: 60,
//	})
//
//	token, err := service.Sign(jwt.Claims{UserID: user.ID, Email: user.Email})
//
// # Token Validation
//
// Validate and extract claims:
//
//	claims, err := service.Validate(tokenString)
//	if err != nil {
//	    // Invalid or expired token
//	}
//	userID := claims.UserID
//
// # Claims
//
// Alongside the standard JWT claims, tokens carry the custom claims the
// API needs for authorization:
//
//   - user_id: staff account record ID
//   - email: account email
//   - role: staff or admin
//   - shelter_id: the shelter the account manages, if any
package jwt
