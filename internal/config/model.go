// internal/config/model.go
//
// Typed configuration model.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `conf/.env`                    – dotenv values,
//   • `conf/global.yaml`                      – primary static file,
//   • `UMAPI_`-prefixed environment overrides – highest precedence.
//
// Any value whose string begins with the prefix `vault:` is resolved
// through the Vault client after unmarshalling, so the validated model
// never stores Vault URIs—only plain strings.
//
// Validation happens immediately after resolution; the app fails fast if
// required fields are missing.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`—Koanf ignores `yaml` tags
//     unless configured otherwise.
//   • The `Paths` block is filled at runtime; YAML must not try to set it.

package config

import "time"

//
// HTTP section
//

// HTTP holds web-server tunables.  DevMode loosens error redaction; never
// enable it in production.
type HTTP struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
	DevMode    bool   `koanf:"dev_mode"`
}

//
// Auth section
//

// Auth configures token issuance and the bootstrap API credential.  The
// secret is typically a `vault:` reference in YAML and a plain string here.
type Auth struct {
	JWTSecret     string        `koanf:"jwt_secret"     validate:"required,min=16"`
	TokenTTL      time.Duration `koanf:"token_ttl"`
	AdminUser     string        `koanf:"admin_user"     validate:"required"`
	AdminPassword string        `koanf:"admin_password" validate:"required"`
}

//
// Cache section
//

// Cache tunes the query result cache.  Zero values use package defaults.
type Cache struct {
	TTL      time.Duration `koanf:"ttl"`
	Capacity int           `koanf:"capacity"`
	Shards   int           `koanf:"shards"`
}

//
// Database section
//

// Database holds the optional seed source.  When SeedDSN is empty the
// service boots with an empty store; persistence is out of scope either
// way — the DSN is read once at startup and never touched again.
type Database struct {
	SeedDSN string `koanf:"seed_dsn"`
}

//
// GeoIP section
//

// GeoIP points at an optional GeoLite2-City database used to enrich audit
// log entries.  Leave empty to skip geo lookups.
type GeoIP struct {
	DBPath string `koanf:"db_path"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime—never set in YAML or env.  The loader
// discovers `Root` (repo root or UMAPI_ROOT override) so later code can
// build absolute file paths.
type Paths struct {
	Root string // UMAPI_ROOT or discovered parent
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads throughout the app lifetime.
type Config struct {
	HTTP     HTTP     `koanf:"http"`
	Auth     Auth     `koanf:"auth"`
	Cache    Cache    `koanf:"cache"`
	Database Database `koanf:"database"`
	GeoIP    GeoIP    `koanf:"geoip"`
	Paths    Paths    `koanf:"-"` // not loaded from config files
}
