// Package config handles configuration loading, parsing, and validation
// from environment variables and optional config files. It gives the rest
// of the application type-safe access to its settings while keeping
// configuration details out of the business logic.
package config
