package config

// applyDefaults fills in package defaults for every optional value that is
// still zero after all sources have been merged.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = DefaultHTTPAddress
	}

	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}

	if cfg.App.RateLimit.MaxAttempts == 0 {
		cfg.App.RateLimit.MaxAttempts = DefaultMaxAttempts
	}

	if cfg.App.RateLimit.Window == 0 {
		cfg.App.RateLimit.Window = DefaultLockoutWindow
	}

	if cfg.App.RateLimit.MaxTrackedKeys == 0 {
		cfg.App.RateLimit.MaxTrackedKeys = DefaultMaxTrackedKeys
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// The admin secret and the database DSN have no safe defaults: refusing to
// start beats starting with an unauthenticated admin surface or no storage.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.AdminKey == "" {
		return ErrMissingAdminKey
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrMissingDatabaseDSN
	}

	return nil
}
