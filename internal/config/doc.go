// Package config manages application configuration for the SafeHaven API.
//
// The config package loads and validates configuration from environment variables.
// All configuration is centralized here to provide a single source of truth.
//
// # Configuration Loading
//
// Configuration is loaded from environment variables:
//
//	cfg, err := config.Load()
//	if err := cfg.Validate(); err != nil {
//	    // report every missing or invalid setting at once
//	}
//
// # Configuration Groups
//
// Configuration is organized into logical groups:
//
//   - ServerConfig: HTTP server settings (port, timeouts, CORS origins)
//   - DatabaseConfig: SurrealDB connection settings
//   - JWTConfig: JWT signing and validation settings
//   - JobsConfig: background job intervals
//   - MatchingConfig: rate limiting for the matching endpoints
//
// # Environment Variables
//
// Key environment variables:
//
//	SERVER_PORT                  - HTTP server port (default: 8080)
//	SERVER_ENV                   - development, production, or test
//	DB_HOST / DB_PORT            - SurrealDB address
//	DB_NAMESPACE / DB_DATABASE   - namespace and database name
//	DB_USER / DB_PASSWORD        - database credentials
//	JWT_PRIVATE_KEY_PATH         - RS256 signing key
//	JWT_PUBLIC_KEY_PATH          - RS256 verification key
//	JWT_EXPIRATION_MINS          - access token lifetime
//	JOBS_MATCH_REFRESH_INTERVAL  - how often open applications are re-scored
//	JOBS_TOKEN_CLEANUP_INTERVAL  - how often expired tokens are purged
//
// Sensible defaults are provided for development.
package config
