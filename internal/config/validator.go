// internal/config/validator.go
//
// Thin wrapper around go-playground/validator.
//
// Context
// -------
// `internal/config/loader.go` calls `validateStruct` immediately after it
// resolves secrets in the merged Koanf tree.  Any tag mismatch or
// validation error aborts startup, ensuring the binary never runs with
// partial, malformed, or missing configuration.
//
// The rules used today are `required`, `hostname_port` on the listen
// address, and `min=16` on the JWT secret so a placeholder value cannot
// slip into production.  Custom rules can be registered here as the
// configuration surface grows.

package config

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

//
// validator instance (package-level singleton)
//

var v = validator.New()

var errVaultUnavailable = errors.New("config contains vault: references but no Vault client is configured")

//
// public API
//

// validateStruct returns the first validation error, or nil on success.
func validateStruct(c *Config) error {
	return v.Struct(c)
}
