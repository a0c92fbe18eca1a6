package config

import "time"

// Fallback values applied to optional settings that were not provided by any
// configuration source.
const (
	defaultHTTPAddress    = ":5000"
	defaultRequestTimeout = 30 * time.Second

	defaultTokenIssuer   = "clinic-registry"
	defaultTokenDuration = 7 * 24 * time.Hour

	defaultAdminUsername = "admin"
	defaultAdminEmail    = "admin@dentalclinic.com"
)

// applyDefaults fills optional settings that no source provided.
// Secrets (token sign key, admin password, DSN) deliberately have no
// defaults; validate rejects a config that leaves them empty.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = defaultHTTPAddress
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = defaultRequestTimeout
	}

	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = defaultTokenIssuer
	}
	if cfg.App.TokenDuration == 0 {
		cfg.App.TokenDuration = defaultTokenDuration
	}

	if cfg.App.Admin.Username == "" {
		cfg.App.Admin.Username = defaultAdminUsername
	}
	if cfg.App.Admin.Email == "" {
		cfg.App.Admin.Email = defaultAdminEmail
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a sentinel error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" {
		return ErrNoTokenSignKey
	}

	if cfg.App.Admin.Password == "" {
		return ErrNoAdminPassword
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrNoDatabaseDSN
	}

	return nil
}
